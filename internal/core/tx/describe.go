package tx

import (
	"encoding/hex"
	"strconv"

	"github.com/holiman/uint256"

	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/types"
)

// Description 恢复交易的可读形式
type Description struct {
	To          string `json:"to"`   // 校验和地址，合约创建时为空
	From        string `json:"from"` // 校验和地址
	Nonce       string `json:"nonce"`
	ChainID     string `json:"chainId"`
	Value       string `json:"value"`    // wei
	GasPrice    string `json:"gasPrice"` // wei
	GasLimit    string `json:"gasLimit"`
	Data        string `json:"data"`
	MessageHash string `json:"messageHash"`
	V           string `json:"v"`
	R           string `json:"r"`
	S           string `json:"s"`
}

// Describe 把恢复结果转换为可读字符串
//
// 数值为十进制，地址为 EIP-55 校验和形式，哈希与签名分量为 0x 十六进制，
// data 按 dataEnc 还原（为空时按 hex）。
func Describe(rec *types.RecoveredTx, dataEnc string, addresses cryptointf.AddressManager) (*Description, error) {
	if rec == nil {
		return nil, types.Validationf("tx.Describe", "nil recovered transaction")
	}
	if dataEnc == "" {
		dataEnc = EncHex
	}

	from, err := addresses.ToChecksumAddress(hex.EncodeToString(rec.From))
	if err != nil {
		return nil, err
	}
	var to string
	if len(rec.To) > 0 {
		if to, err = addresses.ToChecksumAddress(hex.EncodeToString(rec.To)); err != nil {
			return nil, err
		}
	}
	data, err := DecodeData(rec.Data, dataEnc)
	if err != nil {
		return nil, err
	}

	return &Description{
		To:          to,
		From:        from,
		Nonce:       decimalString(rec.Nonce),
		ChainID:     strconv.FormatUint(rec.ChainID, 10),
		Value:       decimalString(rec.Value),
		GasPrice:    decimalString(rec.GasPrice),
		GasLimit:    decimalString(rec.GasLimit),
		Data:        data,
		MessageHash: "0x" + hex.EncodeToString(rec.MessageHash),
		V:           strconv.FormatUint(rec.V, 10),
		R:           "0x" + hex.EncodeToString(rec.R),
		S:           "0x" + hex.EncodeToString(rec.S),
	}, nil
}

// decimalString 大端字节转十进制字符串
func decimalString(b []byte) string {
	return new(uint256.Int).SetBytes(b).Dec()
}

// Sci 把十进制整数串表示为保留 digits 位小数的科学计数法，例如 "1.000e+15"
//
// 小于 1000 的值原样返回，多余的位直接截断。
func Sci(decimal string, digits int) string {
	if len(decimal) <= 3 {
		return decimal
	}
	exp := len(decimal) - 1
	mantissa := decimal[:1]
	if digits > 0 {
		frac := decimal[1:]
		if len(frac) > digits {
			frac = frac[:digits]
		}
		for len(frac) < digits {
			frac += "0"
		}
		mantissa += "." + frac
	}
	return mantissa + "e+" + strconv.Itoa(exp)
}
