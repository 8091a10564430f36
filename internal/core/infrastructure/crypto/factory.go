// Package crypto 提供加密服务工厂实现
package crypto

import (
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/encryption"
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/kdf"
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/key"
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/signature"
	"github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
)

// ServiceInput 定义加密服务工厂的输入参数
type ServiceInput struct {
	Logger log.Logger `optional:"true"`
}

// ServiceOutput 定义加密服务工厂的输出结果
type ServiceOutput struct {
	KeyManager        crypto.KeyManager
	AddressManager    crypto.AddressManager
	SignatureManager  crypto.SignatureManager
	HashManager       crypto.HashManager
	EncryptionManager crypto.EncryptionManager
	KDFManager        crypto.KDFManager
}

// CreateCryptoServices 创建加密服务
//
// 🏭 **加密服务工厂**：
// 负责创建加密模块的所有服务并处理服务间依赖（地址依赖密钥与哈希，签名依赖密钥）。
// 不依赖 fx，测试和命令行工具可以直接调用。
func CreateCryptoServices(input ServiceInput) (ServiceOutput, error) {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "crypto")
	} else {
		logger = &noopLogger{}
	}

	hashService := hash.NewHashService()
	keyManager := key.NewKeyManager()
	addressService := address.NewAddressService(keyManager, hashService)
	sigService := signature.NewSignatureService(keyManager)
	encryptionService := encryption.NewEncryptionService()
	kdfService := kdf.NewKDFService()

	logger.Debugf("加密模块初始化完成: hash=%d 种, cipher=%v, prf=%v",
		len(hashService.Algorithms()), encryption.Ciphers(), kdf.PRFs())

	return ServiceOutput{
		KeyManager:        keyManager,
		AddressManager:    addressService,
		SignatureManager:  sigService,
		HashManager:       hashService,
		EncryptionManager: encryptionService,
		KDFManager:        kdfService,
	}, nil
}
