// Package keystore 实现 V3 keystore 的创建、解密与口令更换
//
// 加密流程：
//
//	derived    = KDF(passcode, salt)            // scrypt 或 pbkdf2，长度 dklen
//	ciphertext = Cipher(derived[:keySize], iv, privateKey)
//	mac        = keccak256(derived[16:32] || ciphertext)
//
// 解密时 MAC 不一致表示口令或 keyfile 错误，以 ok=false 返回而不是错误。
package keystore

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/google/uuid"

	keystoreconfig "github.com/weisyn/ethwallet/internal/config/keystore"
	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/ethwallet/pkg/types"
)

// macKeyOffset 参与 MAC 计算的派生密钥区间 [16, 32)
const (
	macKeyOffset = 16
	macKeyEnd    = 32
)

// Deps 服务依赖
type Deps struct {
	Config     *keystoreconfig.Config
	Key        cryptointf.KeyManager
	Address    cryptointf.AddressManager
	Hash       cryptointf.HashManager
	KDF        cryptointf.KDFManager
	Encryption cryptointf.EncryptionManager
	Rand       io.Reader  // 为 nil 时使用 crypto/rand
	Logger     log.Logger // 可选
}

// Service keystore 编解码服务
//
// Service 不持有可变状态，可以被多个 goroutine 同时使用。
type Service struct {
	cfg        *keystoreconfig.Config
	key        cryptointf.KeyManager
	address    cryptointf.AddressManager
	hash       cryptointf.HashManager
	kdf        cryptointf.KDFManager
	encryption cryptointf.EncryptionManager
	rand       io.Reader
	logger     log.Logger
}

// NewService 创建 keystore 服务
//
// 配置中的 kdf / cipher 不可用时返回 ConfigurationError。
func NewService(deps Deps) (*Service, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = keystoreconfig.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !deps.Encryption.Supports(cfg.GetCipher()) {
		return nil, types.Configurationf("keystore.NewService", "unsupported cipher %q", cfg.GetCipher())
	}
	if cfg.GetKDF() == keystoreconfig.KDFPBKDF2 && !deps.KDF.SupportsPRF(cfg.GetPBKDF2().PRF) {
		return nil, types.Configurationf("keystore.NewService", "unsupported prf %q", cfg.GetPBKDF2().PRF)
	}

	r := deps.Rand
	if r == nil {
		r = rand.Reader
	}
	logger := deps.Logger
	if logger == nil {
		logger = &noopLogger{}
	}

	return &Service{
		cfg:        cfg,
		key:        deps.Key,
		address:    deps.Address,
		hash:       deps.Hash,
		kdf:        deps.KDF,
		encryption: deps.Encryption,
		rand:       r,
		logger:     logger,
	}, nil
}

// Config 返回服务使用的配置
func (s *Service) Config() *keystoreconfig.Config {
	return s.cfg
}

// Create 用 passcode 加密私钥生成记录
//
// privateKey 为 nil 时随机生成；显式给出但无效时返回 ValidationError。
func (s *Service) Create(passcode, privateKey []byte) (*Record, error) {
	if privateKey == nil {
		generated, err := s.key.GeneratePrivateKey()
		if err != nil {
			return nil, fmt.Errorf("生成私钥失败: %w", err)
		}
		privateKey = generated
	} else if err := s.key.ValidatePrivateKey(privateKey); err != nil {
		return nil, err
	}

	address, err := s.address.AddressFromPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	salt, err := s.randomBytes(s.cfg.GetSaltBytes())
	if err != nil {
		return nil, err
	}
	iv, err := s.randomBytes(s.cfg.GetIVBytes())
	if err != nil {
		return nil, err
	}
	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	kdfName := s.cfg.GetKDF()
	params := KDFParams{DKLen: s.cfg.GetDKLen(), Salt: hex.EncodeToString(salt)}
	switch kdfName {
	case keystoreconfig.KDFScrypt:
		sc := s.cfg.GetScrypt()
		params.N, params.R, params.P = sc.N, sc.R, sc.P
	case keystoreconfig.KDFPBKDF2:
		pb := s.cfg.GetPBKDF2()
		params.C, params.PRF = pb.C, pb.PRF
	}

	derived, err := s.deriveKey(passcode, kdfName, params, salt)
	if err != nil {
		return nil, err
	}

	cipherName := s.cfg.GetCipher()
	encKey, err := s.cipherKey(cipherName, derived)
	if err != nil {
		return nil, err
	}
	ciphertext, err := s.encryption.Encrypt(cipherName, encKey, iv, privateKey)
	if err != nil {
		return nil, err
	}
	mac := s.mac(derived, ciphertext)

	s.logger.Debugf("keystore 已创建: kdf=%s cipher=%s", kdfName, cipherName)

	return &Record{
		Address: hex.EncodeToString(address),
		Crypto: CryptoRecord{
			Cipher:       cipherName,
			Ciphertext:   hex.EncodeToString(ciphertext),
			CipherParams: CipherParams{IV: hex.EncodeToString(iv)},
			KDF:          kdfName,
			KDFParams:    params,
			MAC:          hex.EncodeToString(mac),
		},
		ID:      id,
		Version: RecordVersion,
	}, nil
}

// Open 用 passcode 解密记录
//
// 返回 (privateKey, true, nil) 表示成功；(nil, false, nil) 表示口令或 keyfile 错误。
// 记录携带不支持的 kdf / cipher 时返回 ConfigurationError。
func (s *Service) Open(record *Record, passcode []byte) ([]byte, bool, error) {
	if record == nil {
		return nil, false, types.Validationf("keystore.Open", "nil record")
	}
	c := record.Crypto
	if !s.encryption.Supports(c.Cipher) {
		return nil, false, types.Configurationf("keystore.Open", "unsupported cipher %q", c.Cipher)
	}
	if c.KDF != keystoreconfig.KDFScrypt && c.KDF != keystoreconfig.KDFPBKDF2 {
		return nil, false, types.Configurationf("keystore.Open", "unsupported kdf %q", c.KDF)
	}

	salt, err := decodeField("crypto.kdfparams.salt", c.KDFParams.Salt)
	if err != nil {
		return nil, false, err
	}
	iv, err := decodeField("crypto.cipherparams.iv", c.CipherParams.IV)
	if err != nil {
		return nil, false, err
	}
	ciphertext, err := decodeField("crypto.ciphertext", c.Ciphertext)
	if err != nil {
		return nil, false, err
	}
	want, err := decodeField("crypto.mac", c.MAC)
	if err != nil {
		return nil, false, err
	}

	derived, err := s.deriveKey(passcode, c.KDF, c.KDFParams, salt)
	if err != nil {
		return nil, false, err
	}
	if subtle.ConstantTimeCompare(s.mac(derived, ciphertext), want) != 1 {
		s.logger.Debug("keystore MAC 不匹配")
		return nil, false, nil
	}

	encKey, err := s.cipherKey(c.Cipher, derived)
	if err != nil {
		return nil, false, err
	}
	privateKey, err := s.encryption.Decrypt(c.Cipher, encKey, iv, ciphertext)
	if err != nil {
		return nil, false, err
	}
	return privateKey, true, nil
}

// Verify 判断 passcode 能否打开记录，且解出的私钥与记录地址一致
func (s *Service) Verify(record *Record, passcode []byte) (bool, error) {
	privateKey, ok, err := s.Open(record, passcode)
	if err != nil || !ok {
		return false, err
	}
	stored, err := s.AddressOf(record)
	if err != nil {
		return false, err
	}
	derived, err := s.address.AddressFromPrivateKey(privateKey)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(stored, derived) == 1, nil
}

// AddressOf 返回记录中保存的 20 字节地址
func (s *Service) AddressOf(record *Record) ([]byte, error) {
	if record == nil {
		return nil, types.Validationf("keystore.AddressOf", "nil record")
	}
	return s.address.ParseAddress(record.Address)
}

// ChangePasscode 用新 passcode 重新加密记录中的私钥
//
// 当前 passcode 错误时返回 (nil, false, nil)。新记录使用新的 salt、iv 和 id，
// kdf / cipher 取服务配置。
func (s *Service) ChangePasscode(record *Record, current, next []byte) (*Record, bool, error) {
	privateKey, ok, err := s.Open(record, current)
	if err != nil || !ok {
		return nil, false, err
	}
	updated, err := s.Create(next, privateKey)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func (s *Service) deriveKey(passcode []byte, kdfName string, params KDFParams, salt []byte) ([]byte, error) {
	if err := keystoreconfig.CheckDKLen(params.DKLen); err != nil {
		return nil, err
	}
	switch kdfName {
	case keystoreconfig.KDFScrypt:
		if err := keystoreconfig.CheckScrypt(params.N, params.R, params.P); err != nil {
			return nil, err
		}
		s.logger.Debugf("scrypt 派生: n=%d r=%d p=%d dklen=%d", params.N, params.R, params.P, params.DKLen)
		return s.kdf.Scrypt(passcode, salt, params.N, params.R, params.P, params.DKLen)
	case keystoreconfig.KDFPBKDF2:
		if err := keystoreconfig.CheckPBKDF2(params.C); err != nil {
			return nil, err
		}
		s.logger.Debugf("pbkdf2 派生: c=%d prf=%s dklen=%d", params.C, params.PRF, params.DKLen)
		return s.kdf.PBKDF2(passcode, salt, params.C, params.PRF, params.DKLen)
	default:
		return nil, types.Configurationf("keystore.deriveKey", "unsupported kdf %q", kdfName)
	}
}

func (s *Service) cipherKey(cipherName string, derived []byte) ([]byte, error) {
	size, err := s.encryption.KeySize(cipherName)
	if err != nil {
		return nil, err
	}
	if size > len(derived) {
		return nil, types.Configurationf("keystore.cipherKey", "cipher %s needs %d key bytes, dklen is %d", cipherName, size, len(derived))
	}
	return derived[:size], nil
}

func (s *Service) mac(derived, ciphertext []byte) []byte {
	return s.hash.Keccak256(derived[macKeyOffset:macKeyEnd], ciphertext)
}

func (s *Service) randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(s.rand, b); err != nil {
		return nil, types.WrapKind(types.KindCrypto, "keystore.randomBytes", err)
	}
	return b, nil
}

// newID 16 个随机字节按 [4,2,2,2,6] 分组
func (s *Service) newID() (string, error) {
	b, err := s.randomBytes(16)
	if err != nil {
		return "", err
	}
	var id uuid.UUID
	copy(id[:], b)
	return id.String(), nil
}

func decodeField(path, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, types.Parsef("keystore.Open", "%s: expected hex string", path)
	}
	return b, nil
}
