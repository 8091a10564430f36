// Package keystore 提供 keystore 加解密配置
//
// 配置是显式传递的值：keystore.Service 和 passcode.Deriver 在构造时接收 *Config，
// 不存在进程级的全局可变配置。
package keystore

import (
	"github.com/weisyn/ethwallet/pkg/types"
)

// KDF 名称
const (
	KDFScrypt = "scrypt"
	KDFPBKDF2 = "pbkdf2"
)

// ScryptOptions scrypt 参数
type ScryptOptions struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// PBKDF2Options pbkdf2 参数
type PBKDF2Options struct {
	C   int    `json:"c"`
	PRF string `json:"prf"`
}

// KeystoreOptions keystore 配置选项
type KeystoreOptions struct {
	KDF    string        `json:"kdf"`    // scrypt | pbkdf2
	Scrypt ScryptOptions `json:"scrypt"` // scrypt 参数
	PBKDF2 PBKDF2Options `json:"pbkdf2"` // pbkdf2 参数
	DKLen  int           `json:"dklen"`  // 派生密钥长度
	Cipher string        `json:"cipher"` // 对称加密算法

	KeyfileHash       string `json:"keyfile_hash"`       // keyfile 哈希算法
	KeyfileIterations int    `json:"keyfile_iterations"` // keyfile 默认哈希次数

	SaltBytes int `json:"salt_bytes"` // salt 长度
	IVBytes   int `json:"iv_bytes"`   // iv 长度
}

// Config keystore 配置实现
type Config struct {
	options *KeystoreOptions
}

// New 创建 keystore 配置
func New(userConfig *types.UserKeystoreConfig) *Config {
	// 1. 先创建完整的默认配置
	options := createDefaultKeystoreOptions()

	// 2. 如果有用户配置，应用用户配置覆盖默认值
	if userConfig != nil {
		applyUserKeystoreConfig(options, userConfig)
	}

	return &Config{options: options}
}

// NewFromOptions 直接使用完整选项（测试中用于降低 KDF 成本）
func NewFromOptions(options KeystoreOptions) *Config {
	o := options
	return &Config{options: &o}
}

// NewFromProvider 从配置提供者创建 keystore 配置
func NewFromProvider(provider interface{}) *Config {
	if p, ok := provider.(interface{ GetKeystore() *KeystoreOptions }); ok {
		if opts := p.GetKeystore(); opts != nil {
			return &Config{options: opts}
		}
	}
	return New(nil)
}

// Default 返回默认配置
func Default() *Config {
	return New(nil)
}

// createDefaultKeystoreOptions 创建默认配置
func createDefaultKeystoreOptions() *KeystoreOptions {
	return &KeystoreOptions{
		KDF: defaultKDF,
		Scrypt: ScryptOptions{
			N: defaultScryptN,
			R: defaultScryptR,
			P: defaultScryptP,
		},
		PBKDF2: PBKDF2Options{
			C:   defaultPBKDF2C,
			PRF: defaultPBKDF2PRF,
		},
		DKLen:  defaultDKLen,
		Cipher: defaultCipher,

		KeyfileHash:       defaultKeyfileHash,
		KeyfileIterations: defaultKeyfileIterations,

		SaltBytes: defaultSaltBytes,
		IVBytes:   defaultIVBytes,
	}
}

// applyUserKeystoreConfig 应用用户配置覆盖默认值
func applyUserKeystoreConfig(options *KeystoreOptions, user *types.UserKeystoreConfig) {
	if user.KDF != nil {
		options.KDF = *user.KDF
	}
	if user.Cipher != nil {
		options.Cipher = *user.Cipher
	}
	if user.DKLen != nil {
		options.DKLen = *user.DKLen
	}
	if s := user.Scrypt; s != nil {
		if s.N != nil {
			options.Scrypt.N = *s.N
		}
		if s.R != nil {
			options.Scrypt.R = *s.R
		}
		if s.P != nil {
			options.Scrypt.P = *s.P
		}
	}
	if p := user.PBKDF2; p != nil {
		if p.C != nil {
			options.PBKDF2.C = *p.C
		}
		if p.PRF != nil {
			options.PBKDF2.PRF = *p.PRF
		}
	}
	if k := user.Keyfile; k != nil {
		if k.Hash != nil {
			options.KeyfileHash = *k.Hash
		}
		if k.Iterations != nil {
			options.KeyfileIterations = *k.Iterations
		}
	}
}

// Validate 校验数值参数
//
// 算法名称是否受支持由具体的 crypto 服务判断（它们持有注册表），
// 这里只检查 KDF 名称与数值范围。
func (c *Config) Validate() error {
	o := c.options
	switch o.KDF {
	case KDFScrypt:
		if err := CheckScrypt(o.Scrypt.N, o.Scrypt.R, o.Scrypt.P); err != nil {
			return err
		}
	case KDFPBKDF2:
		if err := CheckPBKDF2(o.PBKDF2.C); err != nil {
			return err
		}
	default:
		return types.Configurationf("keystore.config", "unsupported kdf %q", o.KDF)
	}
	if err := CheckDKLen(o.DKLen); err != nil {
		return err
	}
	if o.SaltBytes <= 0 || o.IVBytes <= 0 {
		return types.Configurationf("keystore.config", "salt and iv sizes must be positive")
	}
	return nil
}

// GetOptions 获取完整配置选项（副本）
func (c *Config) GetOptions() KeystoreOptions {
	return *c.options
}

// === 访问方法 ===

// GetKDF 获取 KDF 名称
func (c *Config) GetKDF() string { return c.options.KDF }

// GetScrypt 获取 scrypt 参数
func (c *Config) GetScrypt() ScryptOptions { return c.options.Scrypt }

// GetPBKDF2 获取 pbkdf2 参数
func (c *Config) GetPBKDF2() PBKDF2Options { return c.options.PBKDF2 }

// GetDKLen 获取派生密钥长度
func (c *Config) GetDKLen() int { return c.options.DKLen }

// GetCipher 获取对称加密算法
func (c *Config) GetCipher() string { return c.options.Cipher }

// GetKeyfileHash 获取 keyfile 哈希算法
func (c *Config) GetKeyfileHash() string { return c.options.KeyfileHash }

// GetKeyfileIterations 获取 keyfile 默认哈希次数
func (c *Config) GetKeyfileIterations() int { return c.options.KeyfileIterations }

// GetSaltBytes 获取 salt 长度
func (c *Config) GetSaltBytes() int { return c.options.SaltBytes }

// GetIVBytes 获取 iv 长度
func (c *Config) GetIVBytes() int { return c.options.IVBytes }
