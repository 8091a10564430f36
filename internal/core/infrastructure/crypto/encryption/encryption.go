package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"sort"

	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/types"
)

// 支持的算法名称
const (
	CipherAES128CTR = "aes-128-ctr"
	CipherAES192CTR = "aes-192-ctr"
	CipherAES256CTR = "aes-256-ctr"
)

// cipherInfo 算法参数
type cipherInfo struct {
	keySize int
	ivSize  int
}

var ciphers = map[string]cipherInfo{
	CipherAES128CTR: {keySize: 16, ivSize: aes.BlockSize},
	CipherAES192CTR: {keySize: 24, ivSize: aes.BlockSize},
	CipherAES256CTR: {keySize: 32, ivSize: aes.BlockSize},
}

// EncryptionService 提供对称加密和解密功能
//
// 只支持 CTR 流模式：keystore 的 MAC 由调用方在密文上单独计算。
type EncryptionService struct{}

// NewEncryptionService 创建新的加密服务
func NewEncryptionService() *EncryptionService {
	return &EncryptionService{}
}

// Encrypt 使用具名算法加密
func (s *EncryptionService) Encrypt(cipherName string, key, iv, plaintext []byte) ([]byte, error) {
	return s.xorKeyStream("encryption.Encrypt", cipherName, key, iv, plaintext)
}

// Decrypt 使用具名算法解密
func (s *EncryptionService) Decrypt(cipherName string, key, iv, ciphertext []byte) ([]byte, error) {
	return s.xorKeyStream("encryption.Decrypt", cipherName, key, iv, ciphertext)
}

// Supports 判断算法名称是否可用
func (s *EncryptionService) Supports(cipherName string) bool {
	_, ok := ciphers[cipherName]
	return ok
}

// KeySize 返回算法需要的密钥长度
func (s *EncryptionService) KeySize(cipherName string) (int, error) {
	desc, err := lookup("encryption.KeySize", cipherName)
	if err != nil {
		return 0, err
	}
	return desc.keySize, nil
}

// IVSize 返回算法需要的 IV 长度
func (s *EncryptionService) IVSize(cipherName string) (int, error) {
	desc, err := lookup("encryption.IVSize", cipherName)
	if err != nil {
		return 0, err
	}
	return desc.ivSize, nil
}

// Ciphers 返回全部算法名称（有序）
func Ciphers() []string {
	names := make([]string, 0, len(ciphers))
	for name := range ciphers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CTR 模式加解密是同一个运算
func (s *EncryptionService) xorKeyStream(op, cipherName string, key, iv, data []byte) ([]byte, error) {
	desc, err := lookup(op, cipherName)
	if err != nil {
		return nil, err
	}
	if len(key) != desc.keySize {
		return nil, types.Validationf(op, "无效的密钥长度: %s 需要 %d 字节，实际 %d 字节", cipherName, desc.keySize, len(key))
	}
	if len(iv) != desc.ivSize {
		return nil, types.Validationf(op, "无效的IV长度: %s 需要 %d 字节，实际 %d 字节", cipherName, desc.ivSize, len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, types.WrapKind(types.KindCrypto, op, err)
	}
	out := make([]byte, len(data))
	cipher.NewCTR(block, iv).XORKeyStream(out, data)
	return out, nil
}

func lookup(op, cipherName string) (cipherInfo, error) {
	desc, ok := ciphers[cipherName]
	if !ok {
		return cipherInfo{}, types.Configurationf(op, "不支持的加密算法: %q", cipherName)
	}
	return desc, nil
}

// 确保EncryptionService实现了cryptointf.EncryptionManager接口
var _ cryptointf.EncryptionManager = (*EncryptionService)(nil)
