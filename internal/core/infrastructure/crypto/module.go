// Package crypto 提供加密相关功能
package crypto

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
)

// CryptoParams 定义加密模块的依赖参数
type CryptoParams struct {
	fx.In

	Logger log.Logger `optional:"true"` // 日志记录器
}

// CryptoOutput 定义加密模块的输出结构
type CryptoOutput struct {
	fx.Out

	KeyManager        crypto.KeyManager
	AddressManager    crypto.AddressManager
	SignatureManager  crypto.SignatureManager
	HashManager       crypto.HashManager
	EncryptionManager crypto.EncryptionManager
	KDFManager        crypto.KDFManager
}

// Module 返回加密模块
func Module() fx.Option {
	return fx.Module("crypto",
		fx.Provide(ProvideCryptoServices),
	)
}

// ProvideCryptoServices 提供加密服务
func ProvideCryptoServices(params CryptoParams) (CryptoOutput, error) {
	serviceOutput, err := CreateCryptoServices(ServiceInput{Logger: params.Logger})
	if err != nil {
		return CryptoOutput{}, err
	}

	return CryptoOutput{
		KeyManager:        serviceOutput.KeyManager,
		AddressManager:    serviceOutput.AddressManager,
		SignatureManager:  serviceOutput.SignatureManager,
		HashManager:       serviceOutput.HashManager,
		EncryptionManager: serviceOutput.EncryptionManager,
		KDFManager:        serviceOutput.KDFManager,
	}, nil
}

// noopLogger 是一个无操作的Logger实现，用于可选Logger为nil时的回退
type noopLogger struct{}

func (l *noopLogger) Debug(msg string)                          {}
func (l *noopLogger) Debugf(format string, args ...interface{}) {}
func (l *noopLogger) Info(msg string)                           {}
func (l *noopLogger) Infof(format string, args ...interface{})  {}
func (l *noopLogger) Warn(msg string)                           {}
func (l *noopLogger) Warnf(format string, args ...interface{})  {}
func (l *noopLogger) Error(msg string)                          {}
func (l *noopLogger) Errorf(format string, args ...interface{}) {}
func (l *noopLogger) Fatal(msg string)                          {}
func (l *noopLogger) Fatalf(format string, args ...interface{}) {}
func (l *noopLogger) With(keyvals ...interface{}) log.Logger    { return l }
func (l *noopLogger) Sync() error                               { return nil }
func (l *noopLogger) GetZapLogger() *zap.Logger                 { return zap.NewNop() }
