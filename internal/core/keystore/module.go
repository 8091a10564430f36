package keystore

import (
	"go.uber.org/fx"

	keystoreconfig "github.com/weisyn/ethwallet/internal/config/keystore"
	logmodule "github.com/weisyn/ethwallet/internal/core/infrastructure/log"
	"github.com/weisyn/ethwallet/internal/core/passcode"
	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/ethwallet/pkg/interfaces/wallet"
)

var (
	_ wallet.KeystoreCodec   = (*Service)(nil)
	_ wallet.PasscodeDeriver = (*passcode.Deriver)(nil)
)

// ModuleParams keystore 模块依赖
type ModuleParams struct {
	fx.In

	Config     *keystoreconfig.Config
	Key        cryptointf.KeyManager
	Address    cryptointf.AddressManager
	Hash       cryptointf.HashManager
	KDF        cryptointf.KDFManager
	Encryption cryptointf.EncryptionManager
	Logger     log.Logger `optional:"true"`
}

// ModuleOutput keystore 模块输出
type ModuleOutput struct {
	fx.Out

	Service *Service
	Deriver *passcode.Deriver

	Codec           wallet.KeystoreCodec
	PasscodeDeriver wallet.PasscodeDeriver
}

// Module 返回 keystore 模块
func Module() fx.Option {
	return fx.Module("keystore",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建 keystore 服务与 passcode 派生器
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger := logmodule.NewModuleLogger(params.Logger, "keystore")

	service, err := NewService(Deps{
		Config:     params.Config,
		Key:        params.Key,
		Address:    params.Address,
		Hash:       params.Hash,
		KDF:        params.KDF,
		Encryption: params.Encryption,
		Logger:     logger,
	})
	if err != nil {
		return ModuleOutput{}, err
	}

	deriver, err := passcode.NewDeriver(params.Config, params.Hash, logmodule.NewModuleLogger(params.Logger, "passcode"))
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		Service:         service,
		Deriver:         deriver,
		Codec:           service,
		PasscodeDeriver: deriver,
	}, nil
}
