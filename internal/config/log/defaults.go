package log

import "github.com/weisyn/ethwallet/pkg/types"

// 钱包是一次性运行的命令行工具，默认只记录警告及以上，且不写控制台
const defaultLogLevel = types.WarnLevel

func defaultLogOptions() LogOptions {
	return LogOptions{
		Level:     string(defaultLogLevel),
		ToConsole: false,
		FilePath:  "",
		Rotation: RotationOptions{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
			Compress:   true,
		},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}
