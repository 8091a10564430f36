package hash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	gohash "hash"
	"sort"

	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/types"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // keyfile 兼容需要 ripemd160
	"golang.org/x/crypto/sha3"
)

// 确保HashService实现了cryptointf.HashManager接口
var _ cryptointf.HashManager = (*HashService)(nil)

// 常用算法名称
const (
	AlgKeccak256 = "keccak256"
	AlgSHA256    = "sha256"
	AlgSHA512    = "sha512"
)

// registry 算法名称到构造函数的映射
var registry = map[string]func() gohash.Hash{
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	AlgSHA256:    sha256.New,
	"sha384":     sha512.New384,
	AlgSHA512:    sha512.New,
	"sha512-224": sha512.New512_224,
	"sha512-256": sha512.New512_256,
	"sha3-224":   sha3.New224,
	"sha3-256":   sha3.New256,
	"sha3-384":   sha3.New384,
	"sha3-512":   sha3.New512,
	AlgKeccak256: sha3.NewLegacyKeccak256,
	"keccak512":  sha3.NewLegacyKeccak512,
	"blake2b-256": func() gohash.Hash {
		h, _ := blake2b.New256(nil) // 无密钥时不会出错
		return h
	},
	"blake2b-512": func() gohash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
	"blake2s-256": func() gohash.Hash {
		h, _ := blake2s.New256(nil)
		return h
	},
	"ripemd160": ripemd160.New,
}

// HashService 提供哈希计算功能
//
// 不缓存结果：keyfile 的哈希链属于口令材料，不能驻留在内存缓存中。
type HashService struct {
	names []string
}

// NewHashService 创建新的哈希服务
func NewHashService() *HashService {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return &HashService{names: names}
}

// Keccak256 计算拼接后数据的Keccak-256哈希
//
// 返回:
//   - []byte: 32字节的Keccak-256哈希结果
func (s *HashService) Keccak256(data ...[]byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hasher.Write(d)
	}
	return hasher.Sum(nil)
}

// Sum 使用具名算法计算一次哈希
func (s *HashService) Sum(algorithm string, data []byte) ([]byte, error) {
	newHash, ok := registry[algorithm]
	if !ok {
		return nil, types.Configurationf("hash.Sum", "unsupported hash algorithm %q", algorithm)
	}
	hasher := newHash()
	hasher.Write(data)
	return hasher.Sum(nil), nil
}

// HashRepeated 对输入重复应用具名哈希
//
// iterations == 0 时返回输入的副本（恒等），负数按绝对值处理。
// 算法名称在任何情况下都会被校验。
func (s *HashService) HashRepeated(data []byte, algorithm string, iterations int) ([]byte, error) {
	newHash, ok := registry[algorithm]
	if !ok {
		return nil, types.Configurationf("hash.HashRepeated", "unsupported hash algorithm %q", algorithm)
	}
	digest := append([]byte(nil), data...)
	for i, n := uint64(0), iterationCount(iterations); i < n; i++ {
		hasher := newHash()
		hasher.Write(digest)
		digest = hasher.Sum(nil)
	}
	return digest, nil
}

// iterationCount 取绝对值，math.MinInt 也不会溢出
func iterationCount(iterations int) uint64 {
	if iterations >= 0 {
		return uint64(iterations)
	}
	return uint64(-(iterations + 1)) + 1
}

// Supports 判断算法名称是否可用
func (s *HashService) Supports(algorithm string) bool {
	_, ok := registry[algorithm]
	return ok
}

// Algorithms 返回全部可用算法名称（字典序）
func (s *HashService) Algorithms() []string {
	return append([]string(nil), s.names...)
}
