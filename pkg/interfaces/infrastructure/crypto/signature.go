package crypto

// 签名相关长度常量
const (
	// HashLength 消息哈希长度
	HashLength = 32
	// ScalarLength 签名分量 r、s 的长度
	ScalarLength = 32
)

// RecoverableSignature 可恢复签名 (r, s, recoveryID)
type RecoverableSignature struct {
	R          []byte // 32 字节
	S          []byte // 32 字节，low-S
	RecoveryID byte   // 0 或 1
}

// SignatureManager secp256k1 可恢复签名与公钥恢复
type SignatureManager interface {
	// SignRecoverable 对 32 字节哈希做确定性（RFC6979）签名
	SignRecoverable(hash []byte, privateKey []byte) (*RecoverableSignature, error)

	// RecoverPublicKey 从签名恢复 65 字节未压缩公钥
	// r/s 不是 32 字节或 recoveryID 越界返回 CryptoError
	RecoverPublicKey(hash []byte, sig *RecoverableSignature) ([]byte, error)
}
