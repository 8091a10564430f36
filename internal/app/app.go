package app

import (
	keystoreconfig "github.com/weisyn/ethwallet/internal/config/keystore"
	"github.com/weisyn/ethwallet/internal/core/keystore"
	"github.com/weisyn/ethwallet/internal/core/passcode"
	"github.com/weisyn/ethwallet/internal/core/tx"
	"github.com/weisyn/ethwallet/pkg/interfaces/config"
	"github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// Wallet 装配完成的钱包核心服务
//
// 所有字段由 fx 依赖图填充，创建后只读。
type Wallet struct {
	Keystore *keystore.Service
	Passcode *passcode.Deriver
	Signer   *tx.Signer

	Keys    crypto.KeyManager
	Address crypto.AddressManager
	Hash    crypto.HashManager

	Config *keystoreconfig.Config
	Logger log.Logger
	Clock  clock.Clock
}

// populate 返回填充 Wallet 全部字段的 fx 选项
func (w *Wallet) populate() fx.Option {
	return fx.Populate(
		&w.Keystore,
		&w.Passcode,
		&w.Signer,
		&w.Keys,
		&w.Address,
		&w.Hash,
		&w.Config,
		&w.Logger,
		&w.Clock,
	)
}

// Close 刷新日志缓冲
func (w *Wallet) Close() {
	if w.Logger != nil {
		_ = w.Logger.Sync()
	}
}

// appModule 向 config 模块提供应用配置选项
func appModule(opts *options) fx.Option {
	return fx.Provide(func() config.AppOptions { return opts })
}
