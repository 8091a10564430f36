package address

import (
	"encoding/hex"
	"strings"

	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/types"
)

// 地址系统常量
const (
	// HexLength 地址十六进制字符数
	HexLength = cryptointf.AddressLength * 2
	// checksumNibbleThreshold 哈希半字节不小于该值时对应字母大写
	checksumNibbleThreshold = 8
)

// AddressService 以太坊地址服务
//
// 地址 = keccak256(未压缩公钥去掉 0x04 头) 的后 20 字节；
// 字符串形式使用 EIP-55 大小写混合校验和。
type AddressService struct {
	// keyManager 用于公钥解压与私钥派生
	keyManager  cryptointf.KeyManager
	hashManager cryptointf.HashManager
}

// 确保AddressService实现了AddressManager接口
var _ cryptointf.AddressManager = (*AddressService)(nil)

// NewAddressService 创建新的地址服务实例
func NewAddressService(keyManager cryptointf.KeyManager, hashManager cryptointf.HashManager) *AddressService {
	return &AddressService{
		keyManager:  keyManager,
		hashManager: hashManager,
	}
}

// AddressFromPublicKey 从 64/65/33 字节公钥计算 20 字节地址
func (s *AddressService) AddressFromPublicKey(publicKey []byte) ([]byte, error) {
	uncompressed, err := s.keyManager.DecompressPublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	digest := s.hashManager.Keccak256(uncompressed[1:])
	addr := make([]byte, cryptointf.AddressLength)
	copy(addr, digest[len(digest)-cryptointf.AddressLength:])
	return addr, nil
}

// AddressFromPrivateKey 私钥 → 未压缩公钥 → 地址
func (s *AddressService) AddressFromPrivateKey(privateKey []byte) ([]byte, error) {
	pub, err := s.keyManager.DeriveUncompressedPublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	return s.AddressFromPublicKey(pub)
}

// IsValidAddress 校验十六进制地址字符串
//
// 全小写或全大写跳过校验和；真正大小写混合时必须等于自身的校验和形式。
func (s *AddressService) IsValidAddress(address string, skipChecksum bool) bool {
	body := strip0x(address)
	if len(body) != HexLength || !isHex(body) {
		return false
	}
	if skipChecksum || !isMixedCase(body) {
		return true
	}
	return body == s.checksumBody(strings.ToLower(body))
}

// IsValidAddressBytes 20 字节即有效
func (s *AddressService) IsValidAddressBytes(address []byte) bool {
	return len(address) == cryptointf.AddressLength
}

// ToChecksumAddress 返回 0x 前缀的 EIP-55 地址
func (s *AddressService) ToChecksumAddress(address string) (string, error) {
	if !s.IsValidAddress(address, true) {
		return "", types.Validationf("address.ToChecksumAddress", "invalid address %q", address)
	}
	return "0x" + s.checksumBody(strings.ToLower(strip0x(address))), nil
}

// ParseAddress 解析地址字符串为 20 字节，校验和错误返回 ValidationError
func (s *AddressService) ParseAddress(address string) ([]byte, error) {
	if !s.IsValidAddress(address, false) {
		return nil, types.Validationf("address.ParseAddress", "invalid address %q", address)
	}
	return hex.DecodeString(strings.ToLower(strip0x(address)))
}

// checksumBody 对小写十六进制逐位决定大小写
func (s *AddressService) checksumBody(lower string) string {
	digest := s.hashManager.Keccak256([]byte(lower))
	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= checksumNibbleThreshold {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}

func strip0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
