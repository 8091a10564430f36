// Package log 提供钱包日志配置
package log

import (
	"go.uber.org/zap/zapcore"

	"github.com/weisyn/ethwallet/pkg/types"
)

// LogOptions 日志配置选项
type LogOptions struct {
	Level     string `json:"level"`      // debug | info | warn | error | fatal
	ToConsole bool   `json:"to_console"` // 写 stderr
	FilePath  string `json:"file_path"`  // 空表示不写文件

	// 文件轮转，仅在 FilePath 非空时生效
	Rotation RotationOptions `json:"rotation"`

	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"` // Error 及以上附带堆栈
}

// RotationOptions lumberjack 轮转参数
type RotationOptions struct {
	MaxSizeMB  int  `json:"max_size_mb"`
	MaxBackups int  `json:"max_backups"`
	MaxAgeDays int  `json:"max_age_days"`
	Compress   bool `json:"compress"`
}

// Config 日志配置
type Config struct {
	options *LogOptions
}

// New 以默认值为基础应用用户配置
func New(userConfig *types.UserLogConfig) *Config {
	options := defaultLogOptions()
	if userConfig != nil {
		if userConfig.Level != nil {
			options.Level = *userConfig.Level
		}
		if userConfig.FilePath != nil {
			options.FilePath = *userConfig.FilePath
		}
		if userConfig.ToConsole != nil {
			options.ToConsole = *userConfig.ToConsole
		}
	}
	return &Config{options: &options}
}

// NewFromProvider 从配置提供者取出日志选项，提供者为 nil 时使用默认值
func NewFromProvider(provider interface{ GetLog() *LogOptions }) *Config {
	if provider == nil {
		return New(nil)
	}
	opts := provider.GetLog()
	if opts == nil {
		return New(nil)
	}
	return &Config{options: opts}
}

// WithLevel 返回覆盖了级别的副本，用于命令行 --log-level
//
// 显式给出级别即打开控制台输出。
func (c *Config) WithLevel(level string) *Config {
	options := *c.options
	options.Level = level
	options.ToConsole = true
	return &Config{options: &options}
}

// GetOptions 完整选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// GetLevel 配置中的级别名称
func (c *Config) GetLevel() string {
	return c.options.Level
}

// GetZapLevel 级别名称无法识别时退回默认级别
func (c *Config) GetZapLevel() zapcore.Level {
	level, ok := types.ParseLogLevel(c.options.Level)
	if !ok {
		level = defaultLogLevel
	}
	zl, err := zapcore.ParseLevel(string(level))
	if err != nil {
		return zapcore.WarnLevel
	}
	return zl
}

// IsConsoleEnabled 是否写 stderr
func (c *Config) IsConsoleEnabled() bool {
	return c.options.ToConsole
}

// GetFilePath 日志文件路径
func (c *Config) GetFilePath() string {
	return c.options.FilePath
}

// GetRotation 文件轮转参数
func (c *Config) GetRotation() RotationOptions {
	return c.options.Rotation
}

// IsCallerEnabled 是否记录调用位置
func (c *Config) IsCallerEnabled() bool {
	return c.options.EnableCaller
}

// IsStacktraceEnabled 是否附带堆栈
func (c *Config) IsStacktraceEnabled() bool {
	return c.options.EnableStacktrace
}

// FileEncoder 文件使用 JSON 行格式
func (c *Config) FileEncoder() zapcore.Encoder {
	enc := baseEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(enc)
}

// ConsoleEncoder stderr 可能被重定向到文件，不输出颜色
func (c *Config) ConsoleEncoder() zapcore.Encoder {
	enc := baseEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(enc)
}

func baseEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
