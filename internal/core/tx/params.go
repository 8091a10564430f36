package tx

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/weisyn/ethwallet/internal/core/schema"
	"github.com/weisyn/ethwallet/internal/core/units"
	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/types"
)

// DefaultParamsFile 交易参数模板的默认文件名
const DefaultParamsFile = "tx_params.json"

// Params 交易参数文件，所有字段都是字符串
type Params struct {
	Nonce         string `json:"nonce"`
	To            string `json:"to"`
	Value         string `json:"value"`
	ValueUnits    string `json:"valueUnits"`
	GasPrice      string `json:"gasPrice"`
	GasPriceUnits string `json:"gasPriceUnits"`
	GasLimit      string `json:"gasLimit"`
	Data          string `json:"data"`
	DataEnc       string `json:"dataEnc"`
}

//go:embed params.schema.json
var paramsSchemaJSON []byte

var paramsSchema = schema.MustCompile("transaction parameters", "tx-params.json", paramsSchemaJSON)

// DefaultParams 模板内容
func DefaultParams() Params {
	return Params{
		Nonce:         "0",
		To:            "0xbfe00b11baa36715cfbefb00c218bc7c5ca51075",
		Value:         "1.0",
		ValueUnits:    "milliether",
		GasPrice:      "5.0",
		GasPriceUnits: "gwei",
		GasLimit:      "50000",
		Data:          "hello",
		DataEnc:       "utf-8",
	}
}

// Marshal 序列化为缩进 JSON
func (p Params) Marshal() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// ParseParams 严格解析交易参数文件
//
// 要求恰好 9 个字符串字段，问题全部列在 ParseError 中。
func ParseParams(data []byte) (*Params, error) {
	doc := paramsSchema.Check(data)

	p := &Params{}
	fields := []struct {
		key string
		dst *string
	}{
		{"data", &p.Data},
		{"dataEnc", &p.DataEnc},
		{"gasLimit", &p.GasLimit},
		{"gasPrice", &p.GasPrice},
		{"gasPriceUnits", &p.GasPriceUnits},
		{"nonce", &p.Nonce},
		{"to", &p.To},
		{"value", &p.Value},
		{"valueUnits", &p.ValueUnits},
	}
	for _, f := range fields {
		*f.dst, _ = doc.String(f.key)
	}
	if err := doc.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// Resolve 校验参数并换算为待签名字段
//
// 校验内容：
//   - to 为有效地址，大小写混合时校验 EIP-55 校验和，输出为校验和形式
//   - valueUnits / gasPriceUnits 在单位表中
//   - nonce / gasLimit 为非负整数，value / gasPrice 为非负十进制数
//   - dataEnc 为支持的编码，且 data 可按该编码转换
//
// 失败返回 ValidationError。
func (p *Params) Resolve(addresses cryptointf.AddressManager) (*types.TxFields, error) {
	const op = "tx.Params.Resolve"

	if !addresses.IsValidAddress(p.To, true) {
		return nil, types.Validationf(op, "invalid address %q", p.To)
	}
	if !addresses.IsValidAddress(p.To, false) {
		return nil, types.Validationf(op, "address checksum failed for %q; use all lower-case letters to skip the checksum", p.To)
	}
	to, err := addresses.ToChecksumAddress(p.To)
	if err != nil {
		return nil, err
	}

	if _, ok := units.Lookup(p.ValueUnits); !ok {
		return nil, types.Validationf(op, "invalid units %q for value", p.ValueUnits)
	}
	if _, ok := units.Lookup(p.GasPriceUnits); !ok {
		return nil, types.Validationf(op, "invalid units %q for gasPrice", p.GasPriceUnits)
	}

	if !isUnsignedInteger(p.Nonce) {
		return nil, types.Validationf(op, "non-negative base 10 integer required for nonce, got %q", p.Nonce)
	}
	if !isUnsignedInteger(p.GasLimit) {
		return nil, types.Validationf(op, "non-negative base 10 integer required for gasLimit, got %q", p.GasLimit)
	}
	if !units.IsDecimal(p.Value) || strings.HasPrefix(p.Value, "-") {
		return nil, types.Validationf(op, "non-negative base 10 number required for value, got %q", p.Value)
	}
	if !units.IsDecimal(p.GasPrice) || strings.HasPrefix(p.GasPrice, "-") {
		return nil, types.Validationf(op, "non-negative base 10 number required for gasPrice, got %q", p.GasPrice)
	}

	value, err := units.ToWei(p.Value, p.ValueUnits)
	if err != nil {
		return nil, err
	}
	gasPrice, err := units.ToWei(p.GasPrice, p.GasPriceUnits)
	if err != nil {
		return nil, err
	}

	if !IsEncoding(p.DataEnc) {
		return nil, types.Validationf(op, "invalid data encoding %q", p.DataEnc)
	}
	if _, err := EncodeData(p.Data, p.DataEnc); err != nil {
		return nil, err
	}

	return &types.TxFields{
		Nonce:    p.Nonce,
		GasPrice: gasPrice,
		GasLimit: p.GasLimit,
		To:       to,
		Value:    value,
		Data:     p.Data,
		DataEnc:  p.DataEnc,
	}, nil
}

func isUnsignedInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
