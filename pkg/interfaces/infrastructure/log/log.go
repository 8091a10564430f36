// Package log 定义钱包使用的日志记录接口
//
// 所有服务只依赖此接口，具体实现位于 internal/core/infrastructure/log（基于 zap）。
// 记录日志时不得写入口令、passcode 或私钥。
package log

import "go.uber.org/zap"

// Logger 定义日志记录器接口
type Logger interface {
	// Debug 记录调试级别的日志
	Debug(msg string)
	// Debugf 使用格式化字符串记录调试级别的日志
	Debugf(format string, args ...interface{})
	// Info 记录信息级别的日志
	Info(msg string)
	// Infof 使用格式化字符串记录信息级别的日志
	Infof(format string, args ...interface{})
	// Warn 记录警告级别的日志
	Warn(msg string)
	// Warnf 使用格式化字符串记录警告级别的日志
	Warnf(format string, args ...interface{})
	// Error 记录错误级别的日志
	Error(msg string)
	// Errorf 使用格式化字符串记录错误级别的日志
	Errorf(format string, args ...interface{})
	// Fatal 记录致命级别的日志，然后退出程序
	Fatal(msg string)
	// Fatalf 使用格式化字符串记录致命级别的日志，然后退出程序
	Fatalf(format string, args ...interface{})
	// With 返回一个带有额外字段的Logger
	With(args ...interface{}) Logger
	// Sync 同步日志缓冲区到输出
	Sync() error
	// GetZapLogger 获取原始的zap日志记录器
	GetZapLogger() *zap.Logger
}
