// Package kdf 实现口令派生函数 scrypt 与 pbkdf2
package kdf

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	gohash "hash"
	"sort"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"

	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/types"
)

// PRF 名称
const (
	PRFHmacSHA256 = "hmac-sha256"
	PRFHmacSHA512 = "hmac-sha512"
	PRFHmacSHA1   = "hmac-sha1"
)

var prfs = map[string]func() gohash.Hash{
	PRFHmacSHA256: sha256.New,
	PRFHmacSHA512: sha512.New,
	PRFHmacSHA1:   sha1.New,
}

// KDFService 口令派生服务
type KDFService struct{}

var _ cryptointf.KDFManager = (*KDFService)(nil)

// NewKDFService 创建口令派生服务
func NewKDFService() *KDFService {
	return &KDFService{}
}

// Scrypt 使用 scrypt 派生 dkLen 字节
//
// 参数非法（n 不是大于 1 的 2 的幂、r*p 过大等）返回 ConfigurationError。
func (s *KDFService) Scrypt(passcode, salt []byte, n, r, p, dkLen int) ([]byte, error) {
	if dkLen <= 0 {
		return nil, types.Configurationf("kdf.Scrypt", "invalid dklen %d", dkLen)
	}
	dk, err := scrypt.Key(passcode, salt, n, r, p, dkLen)
	if err != nil {
		return nil, types.WrapKind(types.KindConfiguration, "kdf.Scrypt", err)
	}
	return dk, nil
}

// PBKDF2 使用 pbkdf2 派生 dkLen 字节
func (s *KDFService) PBKDF2(passcode, salt []byte, iterations int, prf string, dkLen int) ([]byte, error) {
	h, ok := prfs[prf]
	if !ok {
		return nil, types.Configurationf("kdf.PBKDF2", "unsupported prf %q", prf)
	}
	if iterations <= 0 {
		return nil, types.Configurationf("kdf.PBKDF2", "invalid iteration count %d", iterations)
	}
	if dkLen <= 0 {
		return nil, types.Configurationf("kdf.PBKDF2", "invalid dklen %d", dkLen)
	}
	return pbkdf2.Key(passcode, salt, iterations, dkLen, h), nil
}

// SupportsPRF 判断 pbkdf2 伪随机函数名称是否可用
func (s *KDFService) SupportsPRF(prf string) bool {
	_, ok := prfs[prf]
	return ok
}

// PRFs 返回全部 PRF 名称（有序）
func PRFs() []string {
	names := make([]string, 0, len(prfs))
	for name := range prfs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
