// Package key 实现私钥生成、校验与公钥派生
package key

import (
	"crypto/rand"
	"io"

	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/secp256k1"
	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/types"
)

// maxGenerateAttempts 连续抽样上限
// 随机 32 字节落在 [n, 2^256) 或为 0 的概率约 2^-128，
// 达到上限只可能是随机源本身有问题。
const maxGenerateAttempts = 64

// KeyManager 密钥管理器
//
// 🔐 **职责**：
// - 从密码学安全随机源生成 secp256k1 私钥
// - 校验私钥取值范围 0 < k < n
// - 派生压缩 / 未压缩公钥，并在 33/64/65 字节表示之间转换
type KeyManager struct {
	curve *secp256k1.Curve
	rand  io.Reader
}

// 确保实现接口
var _ cryptointf.KeyManager = (*KeyManager)(nil)

// NewKeyManager 创建使用 crypto/rand 的密钥管理器
func NewKeyManager() *KeyManager {
	return NewKeyManagerWithReader(rand.Reader)
}

// NewKeyManagerWithReader 使用指定随机源创建密钥管理器（测试注入用）
func NewKeyManagerWithReader(r io.Reader) *KeyManager {
	if r == nil {
		r = rand.Reader
	}
	return &KeyManager{curve: secp256k1.NewCurve(), rand: r}
}

// GeneratePrivateKey 生成随机私钥
//
// 每次整体重新抽取 32 字节，直到满足 0 < k < n。
// 不做取模，避免引入偏差。
func (km *KeyManager) GeneratePrivateKey() ([]byte, error) {
	candidate := make([]byte, secp256k1.PrivateKeyLength)
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		if _, err := io.ReadFull(km.rand, candidate); err != nil {
			SecureWipe(candidate)
			return nil, types.WrapKind(types.KindCrypto, "key.GeneratePrivateKey", err)
		}
		if km.curve.IsValidScalar(candidate) {
			return candidate, nil
		}
	}
	SecureWipe(candidate)
	return nil, types.Cryptof("key.GeneratePrivateKey", "random source produced %d invalid scalars in a row", maxGenerateAttempts)
}

// IsValidPrivateKey 私钥必须为 32 字节且 0 < k < n
func (km *KeyManager) IsValidPrivateKey(privateKey []byte) bool {
	return km.curve.IsValidScalar(privateKey)
}

// ValidatePrivateKey 校验私钥，无效时返回 ValidationError
func (km *KeyManager) ValidatePrivateKey(privateKey []byte) error {
	if len(privateKey) != secp256k1.PrivateKeyLength {
		return types.Validationf("key.ValidatePrivateKey", "私钥长度无效: 期望 %d 字节，实际 %d 字节",
			secp256k1.PrivateKeyLength, len(privateKey))
	}
	if !km.curve.IsValidScalar(privateKey) {
		return types.Validationf("key.ValidatePrivateKey", "私钥不在曲线阶范围内")
	}
	return nil
}

// DerivePublicKey 从私钥派生 33 字节压缩公钥
func (km *KeyManager) DerivePublicKey(privateKey []byte) ([]byte, error) {
	if err := km.ValidatePrivateKey(privateKey); err != nil {
		return nil, err
	}
	pub, err := km.curve.PublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	return pub.SerializeCompressed(), nil
}

// DeriveUncompressedPublicKey 从私钥派生 65 字节未压缩公钥（0x04 头）
func (km *KeyManager) DeriveUncompressedPublicKey(privateKey []byte) ([]byte, error) {
	if err := km.ValidatePrivateKey(privateKey); err != nil {
		return nil, err
	}
	pub, err := km.curve.PublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// CompressPublicKey 把 64/65/33 字节公钥转换为 33 字节压缩形式
func (km *KeyManager) CompressPublicKey(publicKey []byte) ([]byte, error) {
	pub, err := km.curve.ParsePublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	return pub.SerializeCompressed(), nil
}

// DecompressPublicKey 把 64/65/33 字节公钥转换为 65 字节未压缩形式
func (km *KeyManager) DecompressPublicKey(publicKey []byte) ([]byte, error) {
	pub, err := km.curve.ParsePublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// SecureWipe 安全擦除敏感数据
//
// 三阶段覆盖：随机数据、全 1、全 0。
func SecureWipe(data []byte) {
	if len(data) == 0 {
		return
	}

	randomData := make([]byte, len(data))
	_, _ = rand.Read(randomData)
	copy(data, randomData)

	for i := range data {
		data[i] = 0xFF
	}
	for i := range data {
		data[i] = 0x00
	}

	for i := range randomData {
		randomData[i] = 0
	}
}
