// Package secp256k1 提供 secp256k1 椭圆曲线封装
//
// 🎯 **设计目的**：
// 封装 btcd/btcec 与 decred secp256k1 的实现，对外提供钱包需要的最小曲线接口：
// 标量范围检查、公钥解析/序列化、可恢复签名与公钥恢复。
//
// 🔒 **安全原则**：
// - 签名使用 RFC6979 确定性 nonce，并规范化为 low-S
// - 私钥标量范围检查使用常量时间的 ModNScalar
package secp256k1

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/weisyn/ethwallet/pkg/types"
)

// 长度常量
const (
	PrivateKeyLength             = 32
	PublicKeyLength              = 64 // 未压缩、无头
	UncompressedPublicKeyLength  = 65 // 0x04 头
	CompressedPublicKeyLength    = 33 // 0x02/0x03 头
	CompactSignatureLength       = 65 // header + r + s
	compactSigMagicOffset        = 27
	compactSigCompressedPubKeyID = 4
)

// Curve 封装 secp256k1 椭圆曲线
type Curve struct{}

// NewCurve 创建新的 secp256k1 曲线实例
func NewCurve() *Curve {
	return &Curve{}
}

// Order 返回群阶 n 的副本
func (c *Curve) Order() *big.Int {
	return new(big.Int).Set(btcec.S256().Params().N)
}

// IsValidScalar 判断 32 字节是否为 (0, n) 区间内的标量
func (c *Curve) IsValidScalar(b []byte) bool {
	if len(b) != PrivateKeyLength {
		return false
	}
	var s secp.ModNScalar
	overflow := s.SetByteSlice(b)
	return !overflow && !s.IsZero()
}

// PublicKey 从私钥计算公钥点
func (c *Curve) PublicKey(privateKey []byte) (*btcec.PublicKey, error) {
	if !c.IsValidScalar(privateKey) {
		return nil, types.Validationf("secp256k1.PublicKey", "invalid private key")
	}
	_, pub := btcec.PrivKeyFromBytes(privateKey)
	return pub, nil
}

// ParsePublicKey 解析 64 字节（无头）、65 字节（0x04 头）或 33 字节（0x02/0x03 头）公钥
func (c *Curve) ParsePublicKey(publicKey []byte) (*btcec.PublicKey, error) {
	var serialized []byte
	switch len(publicKey) {
	case PublicKeyLength:
		serialized = make([]byte, 0, UncompressedPublicKeyLength)
		serialized = append(serialized, 0x04)
		serialized = append(serialized, publicKey...)
	case UncompressedPublicKeyLength:
		if publicKey[0] != 0x04 {
			return nil, types.Encodingf("secp256k1.ParsePublicKey", "unexpected uncompressed public key header 0x%02x", publicKey[0])
		}
		serialized = publicKey
	case CompressedPublicKeyLength:
		if publicKey[0] != 0x02 && publicKey[0] != 0x03 {
			return nil, types.Encodingf("secp256k1.ParsePublicKey", "unexpected compressed public key header 0x%02x", publicKey[0])
		}
		serialized = publicKey
	default:
		return nil, types.Encodingf("secp256k1.ParsePublicKey", "unexpected public key length %d", len(publicKey))
	}

	pub, err := btcec.ParsePubKey(serialized)
	if err != nil {
		return nil, types.WrapKind(types.KindEncoding, "secp256k1.ParsePublicKey", err)
	}
	return pub, nil
}

// SignCompact 生成紧凑可恢复签名
//
// 返回 65 字节：header(27 + recID) || r || s，对应未压缩公钥。
func (c *Curve) SignCompact(hash, privateKey []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, &ErrInvalidHashLength{Expected: 32, Got: len(hash)}
	}
	if !c.IsValidScalar(privateKey) {
		return nil, types.Validationf("secp256k1.SignCompact", "invalid private key")
	}

	priv, _ := btcec.PrivKeyFromBytes(privateKey)
	defer priv.Zero()

	compact := ecdsa.SignCompact(priv, hash, false)
	if len(compact) != CompactSignatureLength {
		return nil, &ErrInvalidSignatureLength{Expected: CompactSignatureLength, Got: len(compact)}
	}
	return compact, nil
}

// RecoveryID 从紧凑签名头部取出恢复 ID（0-3）
func RecoveryID(compact []byte) byte {
	return (compact[0] - compactSigMagicOffset) &^ compactSigCompressedPubKeyID
}

// RecoverCompact 从 r、s 和恢复 ID 恢复公钥
func (c *Curve) RecoverCompact(hash, r, s []byte, recoveryID byte) (*btcec.PublicKey, error) {
	if len(hash) != 32 {
		return nil, &ErrInvalidHashLength{Expected: 32, Got: len(hash)}
	}
	if recoveryID > 3 {
		return nil, &ErrRecoverPubkeyFailed{Err: fmt.Errorf("invalid recovery id: %d", recoveryID)}
	}

	compact := make([]byte, CompactSignatureLength)
	compact[0] = compactSigMagicOffset + recoveryID
	copy(compact[1:33], r)
	copy(compact[33:], s)

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, &ErrRecoverPubkeyFailed{Err: err}
	}
	return pub, nil
}

// 错误类型定义
// 三种错误都属于 CryptoError，可用 errors.Is(err, types.ErrCrypto) 匹配

// ErrInvalidSignatureLength 签名长度无效
type ErrInvalidSignatureLength struct {
	Expected int
	Got      int
}

func (e *ErrInvalidSignatureLength) Error() string {
	return fmt.Sprintf("无效的签名长度: 期望 %d 字节，实际 %d 字节", e.Expected, e.Got)
}

// Is 归入 CryptoError
func (e *ErrInvalidSignatureLength) Is(target error) bool { return isCrypto(target) }

// ErrInvalidHashLength 哈希长度无效
type ErrInvalidHashLength struct {
	Expected int
	Got      int
}

func (e *ErrInvalidHashLength) Error() string {
	return fmt.Sprintf("无效的哈希长度: 期望 %d 字节，实际 %d 字节", e.Expected, e.Got)
}

// Is 归入 CryptoError
func (e *ErrInvalidHashLength) Is(target error) bool { return isCrypto(target) }

// ErrRecoverPubkeyFailed 公钥恢复失败
type ErrRecoverPubkeyFailed struct {
	Err error
}

func (e *ErrRecoverPubkeyFailed) Error() string {
	return fmt.Sprintf("公钥恢复失败: %v", e.Err)
}

func (e *ErrRecoverPubkeyFailed) Unwrap() error {
	return e.Err
}

// Is 归入 CryptoError
func (e *ErrRecoverPubkeyFailed) Is(target error) bool { return isCrypto(target) }

func isCrypto(target error) bool {
	t, ok := target.(*types.Error)
	return ok && t.Kind == types.KindCrypto
}
