package crypto

// KDFManager 口令派生函数
//
// 派生是刻意昂贵的操作，实现不得跨 passcode 缓存结果。
type KDFManager interface {
	// Scrypt 使用 scrypt 派生 dkLen 字节
	Scrypt(passcode, salt []byte, n, r, p, dkLen int) ([]byte, error)

	// PBKDF2 使用 pbkdf2 派生 dkLen 字节，prf 例如 "hmac-sha256"
	PBKDF2(passcode, salt []byte, iterations int, prf string, dkLen int) ([]byte, error)

	// SupportsPRF 判断 pbkdf2 伪随机函数名称是否可用
	SupportsPRF(prf string) bool
}
