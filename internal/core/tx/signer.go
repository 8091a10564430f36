// Package tx 实现以太坊 legacy 交易的 EIP-155 签名与恢复
//
// 签名流程：
//  1. FormatTxParams 生成 9 字段数组 [nonce, gasPrice, gasLimit, to, value, data, chainId, "", ""]
//  2. messageHash = keccak256(RLP(数组))
//  3. 对 messageHash 做 secp256k1 可恢复签名，v = recoveryID + 35 + 2*chainId
//  4. 输出 RLP([nonce, gasPrice, gasLimit, to, value, data, v, r, s])
//
// 恢复是签名的逆过程：chainId = (v - 35) / 2，recoveryID = (v - 27) mod 2。
package tx

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/weisyn/ethwallet/internal/core/rlp"
	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/ethwallet/pkg/types"
)

const (
	// TxFieldCount legacy 交易字段数
	TxFieldCount = 9
	// eip155Offset v = recoveryID + eip155Offset + 2*chainId
	eip155Offset = 35
	// legacyOffset 早期签名方案中的 v 偏移
	legacyOffset = 27
	// MaxChainID 保证 v 不溢出 uint64 的最大 chainId
	MaxChainID = (math.MaxUint64 - eip155Offset - 1) / 2
)

// Signer 交易签名与恢复
type Signer struct {
	keys      cryptointf.KeyManager
	sigs      cryptointf.SignatureManager
	hash      cryptointf.HashManager
	addresses cryptointf.AddressManager
	logger    log.Logger
}

// NewSigner 创建签名器
func NewSigner(
	keys cryptointf.KeyManager,
	sigs cryptointf.SignatureManager,
	hash cryptointf.HashManager,
	addresses cryptointf.AddressManager,
	logger log.Logger,
) *Signer {
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Signer{
		keys:      keys,
		sigs:      sigs,
		hash:      hash,
		addresses: addresses,
		logger:    logger,
	}
}

// FormatTxParams 生成待签名的 9 字段数组
//
// 参数：
//   - fields: 十进制数值字段与数据
//   - chainID: 链 ID，写入第 7 个字段
//
// 返回：
//   - [][]byte: 每个元素为一个 RLP 字节串，数值为最小大端表示
//   - error: to 无效或数值不合法时为 ValidationError
func (s *Signer) FormatTxParams(fields *types.TxFields, chainID uint64) ([][]byte, error) {
	const op = "tx.FormatTxParams"
	if fields == nil {
		return nil, types.Validationf(op, "nil transaction fields")
	}
	if !s.addresses.IsValidAddress(fields.To, false) {
		return nil, types.Validationf(op, "invalid address %q", fields.To)
	}
	to, err := s.addresses.ParseAddress(fields.To)
	if err != nil {
		return nil, err
	}

	nonce, err := decimalBytes("nonce", fields.Nonce)
	if err != nil {
		return nil, err
	}
	gasPrice, err := decimalBytes("gasPrice", fields.GasPrice)
	if err != nil {
		return nil, err
	}
	gasLimit, err := decimalBytes("gasLimit", fields.GasLimit)
	if err != nil {
		return nil, err
	}
	value, err := decimalBytes("value", fields.Value)
	if err != nil {
		return nil, err
	}
	data, err := EncodeData(fields.Data, fields.DataEnc)
	if err != nil {
		return nil, err
	}

	return [][]byte{nonce, gasPrice, gasLimit, to, value, data, rlp.MinimalBytes(chainID), {}, {}}, nil
}

// Sign 签名交易
//
// 私钥无效或 chainID 超过 MaxChainID 时返回 ValidationError。
func (s *Signer) Sign(fields *types.TxFields, chainID uint64, privateKey []byte) (*types.SignedTx, error) {
	const op = "tx.Sign"
	if chainID > MaxChainID {
		return nil, types.Validationf(op, "chain id %d out of range", chainID)
	}
	if err := s.keys.ValidatePrivateKey(privateKey); err != nil {
		return nil, err
	}

	txArr, err := s.FormatTxParams(fields, chainID)
	if err != nil {
		return nil, err
	}
	messageHash := s.hash.Keccak256(encodeList(txArr))

	sig, err := s.sigs.SignRecoverable(messageHash, privateKey)
	if err != nil {
		return nil, err
	}
	if sig.RecoveryID > 1 {
		return nil, types.Cryptof(op, "unexpected recovery id %d", sig.RecoveryID)
	}
	v := uint64(sig.RecoveryID) + eip155Offset + 2*chainID

	signedArr := make([][]byte, 0, TxFieldCount)
	signedArr = append(signedArr, txArr[:6]...)
	signedArr = append(signedArr, rlp.MinimalBytes(v), sig.R, sig.S)

	s.logger.Debugf("交易已签名: chainId=%d v=%d", chainID, v)

	return &types.SignedTx{
		TxArr:       txArr,
		MessageHash: messageHash,
		V:           v,
		R:           sig.R,
		S:           sig.S,
		SignedRLP:   encodeList(signedArr),
	}, nil
}

// Recover 解析签名交易并恢复发送方
//
// 错误分类：
//   - 非规范 RLP、字段数不是 9、v 超过 8 字节或 v < 35：EncodingError
//   - r / s 不是 32 字节、公钥恢复失败：CryptoError
func (s *Signer) Recover(signed []byte) (*types.RecoveredTx, error) {
	const op = "tx.Recover"

	items, err := rlp.DecodeList(signed)
	if err != nil {
		return nil, err
	}
	if len(items) != TxFieldCount {
		return nil, types.Encodingf(op, "expected %d fields, got %d", TxFieldCount, len(items))
	}
	fields := make([][]byte, TxFieldCount)
	for i, it := range items {
		if it.IsList() {
			return nil, types.Encodingf(op, "field %d is a list", i)
		}
		fields[i] = it.Bytes()
	}

	for _, i := range []int{0, 1, 2, 4} {
		if err := rlp.CheckCanonicalInt(fields[i], 32); err != nil {
			return nil, err
		}
	}
	if n := len(fields[3]); n != 0 && n != cryptointf.AddressLength {
		return nil, types.Encodingf(op, "recipient must be empty or %d bytes, got %d", cryptointf.AddressLength, n)
	}

	v, err := items[6].Uint()
	if err != nil {
		return nil, err
	}
	if v < eip155Offset {
		return nil, types.Encodingf(op, "v = %d: only EIP-155 signatures (v >= 35) are supported", v)
	}
	r, sv := fields[7], fields[8]
	if len(r) != cryptointf.ScalarLength || len(sv) != cryptointf.ScalarLength {
		return nil, types.Cryptof(op, "r and s must be %d bytes, got %d and %d", cryptointf.ScalarLength, len(r), len(sv))
	}

	chainID := (v - eip155Offset) / 2
	recoveryID := byte((v - legacyOffset) % 2)

	unsigned := make([][]byte, 0, TxFieldCount)
	unsigned = append(unsigned, fields[:6]...)
	unsigned = append(unsigned, rlp.MinimalBytes(chainID), []byte{}, []byte{})
	messageHash := s.hash.Keccak256(encodeList(unsigned))

	pub, err := s.sigs.RecoverPublicKey(messageHash, &cryptointf.RecoverableSignature{R: r, S: sv, RecoveryID: recoveryID})
	if err != nil {
		return nil, err
	}
	from, err := s.addresses.AddressFromPublicKey(pub)
	if err != nil {
		return nil, err
	}

	return &types.RecoveredTx{
		Nonce:       fields[0],
		GasPrice:    fields[1],
		GasLimit:    fields[2],
		To:          fields[3],
		Value:       fields[4],
		Data:        fields[5],
		V:           v,
		R:           r,
		S:           sv,
		ChainID:     chainID,
		MessageHash: messageHash,
		From:        from,
	}, nil
}

func encodeList(fields [][]byte) []byte {
	items := make([]rlp.Item, len(fields))
	for i, f := range fields {
		items[i] = rlp.Bytes(f)
	}
	return rlp.EncodeList(items...)
}

// decimalBytes 十进制字符串转最小大端字节，0 为空切片
func decimalBytes(name, s string) ([]byte, error) {
	if !isUnsignedInteger(s) {
		return nil, types.Validationf("tx.FormatTxParams", "%s must be a non-negative base 10 integer, got %q", name, s)
	}
	n, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, types.Validationf("tx.FormatTxParams", "%s overflows 256 bits", name)
	}
	return n.Bytes(), nil
}
