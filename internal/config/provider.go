package config

import (
	"github.com/weisyn/ethwallet/internal/config/keystore"
	"github.com/weisyn/ethwallet/internal/config/log"
	"github.com/weisyn/ethwallet/pkg/interfaces/config"
	"github.com/weisyn/ethwallet/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// 编译时校验
var _ config.Provider = (*Provider)(nil)

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	// 直接传递用户日志配置给log.New，让它处理默认值和转换
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}

	return log.New(userLogConfig).GetOptions()
}

// GetKeystore 获取 keystore 加解密配置
func (p *Provider) GetKeystore() *keystore.KeystoreOptions {
	var userKeystoreConfig *types.UserKeystoreConfig
	if p.appConfig != nil {
		userKeystoreConfig = p.appConfig.Keystore
	}

	options := keystore.New(userKeystoreConfig).GetOptions()
	return &options
}
