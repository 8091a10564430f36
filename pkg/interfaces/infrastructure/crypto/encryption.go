package crypto

// EncryptionManager 对称加密
type EncryptionManager interface {
	// Encrypt 使用具名算法加密
	Encrypt(cipherName string, key, iv, plaintext []byte) ([]byte, error)

	// Decrypt 使用具名算法解密
	Decrypt(cipherName string, key, iv, ciphertext []byte) ([]byte, error)

	// Supports 判断算法名称是否可用
	Supports(cipherName string) bool

	// KeySize 返回算法需要的密钥长度
	KeySize(cipherName string) (int, error)

	// IVSize 返回算法需要的 IV 长度
	IVSize(cipherName string) (int, error)
}
