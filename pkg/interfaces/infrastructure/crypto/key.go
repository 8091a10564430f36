// Package crypto 定义钱包核心依赖的密码学能力接口
//
// 🔑 **能力接口 (Crypto Capabilities)**
//
// 钱包核心只负责编排（字段顺序、规范编码、EIP-155 运算），
// 随机数、KDF、对称加密、secp256k1 运算和 keccak256 都通过这里的接口注入，
// 由 internal/core/infrastructure/crypto 下经过审计的第三方库实现。
package crypto

// KeyManager 私钥生成与公钥派生
type KeyManager interface {
	// GeneratePrivateKey 生成随机私钥
	// 整体重复抽取 32 字节，直到 IsValidPrivateKey 成立
	GeneratePrivateKey() ([]byte, error)

	// IsValidPrivateKey 判断私钥是否有效：长度为 32 且 0 < k < n
	IsValidPrivateKey(privateKey []byte) bool

	// ValidatePrivateKey 同 IsValidPrivateKey，无效时返回 ValidationError
	ValidatePrivateKey(privateKey []byte) error

	// DerivePublicKey 从私钥派生压缩公钥（33字节）
	DerivePublicKey(privateKey []byte) ([]byte, error)

	// DeriveUncompressedPublicKey 从私钥派生未压缩公钥（65字节，0x04 头）
	DeriveUncompressedPublicKey(privateKey []byte) ([]byte, error)

	// CompressPublicKey 把 64/65/33 字节公钥转换为 33 字节压缩形式
	CompressPublicKey(publicKey []byte) ([]byte, error)

	// DecompressPublicKey 把 64/65/33 字节公钥转换为 65 字节未压缩形式
	DecompressPublicKey(publicKey []byte) ([]byte, error)
}
