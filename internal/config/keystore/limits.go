package keystore

import "github.com/weisyn/ethwallet/pkg/types"

// KDF 成本上限
//
// 同时约束本地配置和从文件读入的记录：记录中的参数不可信，
// 超限的 n / r / p / c 会让派生耗尽内存或长时间不返回。
const (
	MaxScryptN      = 1 << 24
	MaxScryptP      = 16
	MaxScryptMemory = 1 << 31 // 128*r*n 字节
	MaxPBKDF2C      = 1 << 26
	MaxDKLen        = 1024
)

const limitsOp = "keystore.kdfparams"

// CheckScrypt 校验 scrypt 参数，超出上限返回 ConfigurationError
func CheckScrypt(n, r, p int) error {
	if n <= 1 || n&(n-1) != 0 {
		return types.Configurationf(limitsOp, "scrypt n must be a power of two greater than 1, got %d", n)
	}
	if n > MaxScryptN {
		return types.Configurationf(limitsOp, "scrypt n %d exceeds limit %d", n, MaxScryptN)
	}
	if r <= 0 || p <= 0 {
		return types.Configurationf(limitsOp, "scrypt r and p must be positive, got r=%d p=%d", r, p)
	}
	if p > MaxScryptP {
		return types.Configurationf(limitsOp, "scrypt p %d exceeds limit %d", p, MaxScryptP)
	}
	if r > MaxScryptMemory/(128*n) {
		return types.Configurationf(limitsOp, "scrypt n=%d r=%d needs more than %d bytes", n, r, MaxScryptMemory)
	}
	return nil
}

// CheckPBKDF2 校验 pbkdf2 迭代次数
func CheckPBKDF2(c int) error {
	if c <= 0 {
		return types.Configurationf(limitsOp, "pbkdf2 c must be positive, got %d", c)
	}
	if c > MaxPBKDF2C {
		return types.Configurationf(limitsOp, "pbkdf2 c %d exceeds limit %d", c, MaxPBKDF2C)
	}
	return nil
}

// CheckDKLen 校验派生密钥长度
func CheckDKLen(dklen int) error {
	if dklen < minDKLen || dklen > MaxDKLen {
		return types.Configurationf(limitsOp, "dklen must be between %d and %d, got %d", minDKLen, MaxDKLen, dklen)
	}
	return nil
}
