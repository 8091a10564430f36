// Package log 提供日志管理功能
package log

import (
	"fmt"

	logconfig "github.com/weisyn/ethwallet/internal/config/log"
	"github.com/weisyn/ethwallet/pkg/interfaces/config"
	logInterface "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Provider config.Provider // 配置提供者
	// LevelOverride 命令行给出的日志级别（可选），优先于配置文件
	LevelOverride LevelOverride `optional:"true"`
}

// LevelOverride 命令行日志级别覆盖，空字符串表示不覆盖
type LevelOverride string

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger // 日志记录器接口
	ZapLogger *zap.Logger         // zap.Logger 具体类型
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 按配置创建记录器，命令行级别优先
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logConfig := logconfig.NewFromProvider(params.Provider)
	if params.LevelOverride != "" {
		logConfig = logConfig.WithLevel(string(params.LevelOverride))
	}

	logger, err := New(logConfig)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("根据用户配置创建日志记录器失败: %w", err)
	}

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.GetZapLogger(),
	}, nil
}

// NewModuleLogger 创建带 module 字段的 logger
// baseLogger 为 nil 时返回 nil，由调用方决定回退
func NewModuleLogger(baseLogger logInterface.Logger, module string) logInterface.Logger {
	if baseLogger == nil {
		return nil
	}
	return baseLogger.With("module", module)
}
