package tx

import (
	"go.uber.org/fx"

	logmodule "github.com/weisyn/ethwallet/internal/core/infrastructure/log"
	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/ethwallet/pkg/interfaces/wallet"
)

var _ wallet.TransactionSigner = (*Signer)(nil)

// ModuleParams 交易模块依赖
type ModuleParams struct {
	fx.In

	Key       cryptointf.KeyManager
	Signature cryptointf.SignatureManager
	Hash      cryptointf.HashManager
	Address   cryptointf.AddressManager
	Logger    log.Logger `optional:"true"`
}

// ModuleOutput 交易模块输出
type ModuleOutput struct {
	fx.Out

	Signer            *Signer
	TransactionSigner wallet.TransactionSigner
}

// Module 返回交易模块
func Module() fx.Option {
	return fx.Module("tx",
		fx.Provide(ProvideSigner),
	)
}

// ProvideSigner 创建交易签名器
func ProvideSigner(params ModuleParams) ModuleOutput {
	signer := NewSigner(
		params.Key,
		params.Signature,
		params.Hash,
		params.Address,
		logmodule.NewModuleLogger(params.Logger, "tx"),
	)
	return ModuleOutput{Signer: signer, TransactionSigner: signer}
}
