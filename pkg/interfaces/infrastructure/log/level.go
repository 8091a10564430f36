package log

import "github.com/weisyn/ethwallet/pkg/types"

// LogLevel 日志级别
type LogLevel = types.LogLevel

// 日志级别常量
const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
