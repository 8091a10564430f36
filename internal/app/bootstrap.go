package app

import (
	"fmt"

	config "github.com/weisyn/ethwallet/internal/config"
	"github.com/weisyn/ethwallet/internal/core/infrastructure/clock"
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto"
	log "github.com/weisyn/ethwallet/internal/core/infrastructure/log"
	"github.com/weisyn/ethwallet/internal/core/keystore"
	"github.com/weisyn/ethwallet/internal/core/tx"
	"go.uber.org/fx"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		appModule(b.opts),
		fx.Supply(log.LevelOverride(b.opts.logLevel)),

		config.Module(), // 1. 配置(不依赖其他)
		log.Module(),    // 2. 日志(依赖配置)
		crypto.Module(), // 3. 密码学(依赖日志)
		clock.Module(),  // 4. 时间源
	}
}

// SetupBusinessLayer 设置业务逻辑层模块
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		keystore.Module(), // keystore 编解码与口令派生
		tx.Module(),       // 交易签名与恢复
	}
}

// SetupModules 设置所有应用模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupBusinessLayer()...)
	return allModules
}

// CreateFxApp 创建fx应用，extra 一般是 fx.Populate
//
// 钱包没有后台服务，构造函数在 fx.New 内全部执行完毕，不需要 Start。
func (b *Bootstrap) CreateFxApp(extra ...fx.Option) error {
	appOptions := []fx.Option{
		fx.Options(b.SetupModules()...),
		// 禁用fx内部日志
		fx.NopLogger,
	}
	appOptions = append(appOptions, extra...)

	b.fxApp = fx.New(appOptions...)
	if err := b.fxApp.Err(); err != nil {
		return err
	}
	return nil
}

// BootstrapWallet 执行完整的引导过程并返回钱包实例
func BootstrapWallet(options ...Option) (*Wallet, error) {
	opts := newOptions(options...)
	if err := opts.load(); err != nil {
		return nil, err
	}

	bootstrap := NewBootstrap(opts)

	w := &Wallet{}
	if err := bootstrap.CreateFxApp(w.populate()); err != nil {
		return nil, fmt.Errorf("创建钱包失败: %w", err)
	}
	return w, nil
}
