package keystore

// keystore 配置默认值
// 与常见 V3 keystore 实现保持一致，便于其他钱包直接打开生成的文件
const (
	// === 密钥派生 ===

	// defaultKDF 默认使用 scrypt
	defaultKDF = KDFScrypt

	// defaultScryptN scrypt 成本参数 N = 2^18
	defaultScryptN = 262144

	// defaultScryptR scrypt 块大小参数
	defaultScryptR = 8

	// defaultScryptP scrypt 并行参数
	defaultScryptP = 1

	// defaultPBKDF2C pbkdf2 迭代次数
	defaultPBKDF2C = 262144

	// defaultPBKDF2PRF pbkdf2 伪随机函数
	defaultPBKDF2PRF = "hmac-sha256"

	// defaultDKLen 派生密钥长度：前 16 字节做加密密钥，后 16 字节参与 MAC
	defaultDKLen = 32

	// === 对称加密 ===

	// defaultCipher 默认对称加密算法
	defaultCipher = "aes-128-ctr"

	// === keyfile ===

	// defaultKeyfileHash keyfile 哈希算法
	defaultKeyfileHash = "sha512"

	// defaultKeyfileIterations keyfile 默认哈希次数
	defaultKeyfileIterations = 5

	// === 随机参数长度 ===

	defaultSaltBytes = 32
	defaultIVBytes   = 16
)

// minDKLen 派生密钥最小长度
const minDKLen = 32
