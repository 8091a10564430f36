package config

import (
	keystoreconfig "github.com/weisyn/ethwallet/internal/config/keystore"
	"github.com/weisyn/ethwallet/pkg/types"
)

// ValidateAppConfig 校验用户配置
//
// 只检查与具体算法实现无关的部分：日志级别和 keystore 数值参数。
// kdf 伪随机函数、cipher、keyfile 哈希名称由 keystore 服务在构造时对照注册表检查。
func ValidateAppConfig(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}

	if appConfig.Log != nil && appConfig.Log.Level != nil {
		if _, ok := types.ParseLogLevel(*appConfig.Log.Level); !ok {
			return types.Configurationf("config.Validate", "unknown log level %q", *appConfig.Log.Level)
		}
	}

	return keystoreconfig.New(appConfig.Keystore).Validate()
}
