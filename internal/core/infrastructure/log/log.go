// Package log 基于 zap 的日志实现
//
// 控制台日志写 stderr，stdout 留给命令输出（地址、签名后的交易等）；
// 配置了文件路径时另写一份 JSON 行日志，由 lumberjack 负责轮转。
package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	logconfig "github.com/weisyn/ethwallet/internal/config/log"
	logInterface "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
)

// 日志级别名称
const (
	DebugLevel = string(logInterface.DebugLevel)
	InfoLevel  = string(logInterface.InfoLevel)
	WarnLevel  = string(logInterface.WarnLevel)
	ErrorLevel = string(logInterface.ErrorLevel)
	FatalLevel = string(logInterface.FatalLevel)
)

// Logger zap 包装，实现 log.Logger
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

var _ logInterface.Logger = (*Logger)(nil)

// New 创建记录器，控制台输出到 stderr
func New(config *logconfig.Config) (logInterface.Logger, error) {
	return NewWithConsole(config, zapcore.Lock(os.Stderr))
}

// NewWithConsole 创建记录器，控制台输出到 console
//
// 控制台与文件都未启用时返回丢弃一切的记录器。
func NewWithConsole(config *logconfig.Config, console zapcore.WriteSyncer) (logInterface.Logger, error) {
	level := zap.NewAtomicLevelAt(config.GetZapLevel())

	cores := make([]zapcore.Core, 0, 2)
	if config.IsConsoleEnabled() && console != nil {
		cores = append(cores, zapcore.NewCore(config.ConsoleEncoder(), console, level))
	}
	if path := config.GetFilePath(); path != "" {
		writer, err := rotatingFile(path, config.GetRotation())
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(config.FileEncoder(), writer, level))
	}

	var opts []zap.Option
	if config.IsCallerEnabled() {
		// 跳过本文件的包装层
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if config.IsStacktraceEnabled() {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return wrap(zap.New(zapcore.NewTee(cores...), opts...)), nil
}

func wrap(z *zap.Logger) *Logger {
	return &Logger{zapLogger: z, sugar: z.Sugar()}
}

func rotatingFile(path string, rotation logconfig.RotationOptions) (zapcore.WriteSyncer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("解析日志文件路径失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o700); err != nil {
		return nil, fmt.Errorf("创建日志目录失败: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   abs,
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}), nil
}

// toZapFields 键值对转 zap 字段，奇数个参数时丢弃最后一个
func toZapFields(args ...interface{}) []zap.Field {
	n := len(args) / 2
	fields := make([]zap.Field, 0, n)
	for i := 0; i < n*2; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}

// GetZapLogger 底层 zap 记录器
func (l *Logger) GetZapLogger() *zap.Logger { return l.zapLogger }

func (l *Logger) Debug(msg string)                          { l.sugar.Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(msg string)                           { l.sugar.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.sugar.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.sugar.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Fatal 记录后退出进程
func (l *Logger) Fatal(msg string) { l.sugar.Fatal(msg) }

// Fatalf 记录后退出进程
func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// With 返回附加了字段的记录器
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	return wrap(l.zapLogger.With(toZapFields(args...)...))
}

// Sync 刷新缓冲
func (l *Logger) Sync() error { return l.zapLogger.Sync() }
