package app

import (
	"fmt"

	"github.com/weisyn/ethwallet/internal/config"
	configintf "github.com/weisyn/ethwallet/pkg/interfaces/config"
	"github.com/weisyn/ethwallet/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 嵌入的配置内容（优先级高于configFilePath）
	embeddedConfig []byte

	// 用户配置
	appConfig *types.AppConfig

	// keystore 配置覆盖，在配置文件之后应用
	keystoreOverride *types.UserKeystoreConfig

	// 命令行日志级别，空表示使用配置文件
	logLevel string
}

// 编译时校验options是否实现了config.AppOptions接口
var _ configintf.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEmbeddedConfig 设置嵌入的配置内容（优先级高于WithConfigFile）
func WithEmbeddedConfig(configBytes []byte) Option {
	return func(o *options) {
		o.embeddedConfig = configBytes
	}
}

// WithKeystoreConfig 覆盖 keystore 加解密参数
func WithKeystoreConfig(cfg *types.UserKeystoreConfig) Option {
	return func(o *options) {
		o.keystoreOverride = cfg
	}
}

// WithLogLevel 设置日志级别（debug/info/warn/error）
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{
		appConfig: &types.AppConfig{},
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// load 读取配置文件或嵌入配置，然后应用覆盖项
//
// 配置文件缺失或格式错误直接返回错误，不回退到默认值。
func (o *options) load() error {
	var (
		loaded *types.AppConfig
		err    error
	)
	switch {
	case len(o.embeddedConfig) > 0:
		loaded, err = config.ParseAppConfig(o.embeddedConfig)
	case o.configFilePath != "":
		loaded, err = config.LoadAppConfig(o.configFilePath)
	}
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if loaded != nil {
		o.appConfig = loaded
	}
	if o.keystoreOverride != nil {
		o.appConfig.Keystore = o.keystoreOverride
	}
	if o.logLevel != "" {
		if _, ok := types.ParseLogLevel(o.logLevel); !ok {
			return types.Configurationf("app.options", "unknown log level %q", o.logLevel)
		}
	}
	return nil
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
