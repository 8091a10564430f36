// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// keystore 加解密配置
	Keystore *UserKeystoreConfig `json:"keystore,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level     *string `json:"level,omitempty"`      // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty"`  // 日志文件路径
	ToConsole *bool   `json:"to_console,omitempty"` // 是否输出到控制台（stderr）
}

// UserKeystoreConfig 用户 keystore 配置
// 未出现的字段使用 internal/config/keystore/defaults.go 中的默认值
type UserKeystoreConfig struct {
	KDF     *string            `json:"kdf,omitempty"`    // scrypt | pbkdf2
	Cipher  *string            `json:"cipher,omitempty"` // aes-128-ctr
	DKLen   *int               `json:"dklen,omitempty"`  // 派生密钥长度，至少 32
	Scrypt  *UserScryptConfig  `json:"scrypt,omitempty"`
	PBKDF2  *UserPBKDF2Config  `json:"pbkdf2,omitempty"`
	Keyfile *UserKeyfileConfig `json:"keyfile,omitempty"`
}

// UserScryptConfig scrypt 参数
type UserScryptConfig struct {
	N *int `json:"n,omitempty"`
	R *int `json:"r,omitempty"`
	P *int `json:"p,omitempty"`
}

// UserPBKDF2Config pbkdf2 参数
type UserPBKDF2Config struct {
	C   *int    `json:"c,omitempty"`
	PRF *string `json:"prf,omitempty"`
}

// UserKeyfileConfig keyfile 哈希参数
type UserKeyfileConfig struct {
	Hash       *string `json:"hash,omitempty"`       // 哈希算法名称，默认 sha512
	Iterations *int    `json:"iterations,omitempty"` // 默认哈希次数
}
