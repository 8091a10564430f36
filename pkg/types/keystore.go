package types

import "encoding/json"

// KeystoreRecord V3 keystore 记录
//
// 所有二进制字段都是不带 0x 前缀的小写十六进制字符串。
type KeystoreRecord struct {
	Address string         `json:"address"` // 40 位十六进制
	Crypto  KeystoreCrypto `json:"crypto"`
	ID      string         `json:"id"` // 8-4-4-4-12 分组十六进制
	Version int            `json:"version"`
}

// KeystoreCrypto 加密参数
type KeystoreCrypto struct {
	Cipher       string       `json:"cipher"` // "aes-128-ctr"
	Ciphertext   string       `json:"ciphertext"`
	CipherParams CipherParams `json:"cipherparams"`
	KDF          string       `json:"kdf"` // "scrypt" | "pbkdf2"
	KDFParams    KDFParams    `json:"kdfparams"`
	MAC          string       `json:"mac"`
}

// CipherParams 对称加密参数
type CipherParams struct {
	IV string `json:"iv"`
}

// KDFParams 密钥派生参数
//
// scrypt 使用 N/R/P，pbkdf2 使用 C/PRF；序列化时省略另一组。
type KDFParams struct {
	DKLen int    `json:"dklen"`
	Salt  string `json:"salt"`

	// scrypt
	N int `json:"n,omitempty"`
	P int `json:"p,omitempty"`
	R int `json:"r,omitempty"`

	// pbkdf2
	C   int    `json:"c,omitempty"`
	PRF string `json:"prf,omitempty"`
}

// Marshal 序列化为紧凑 JSON
func (r *KeystoreRecord) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
