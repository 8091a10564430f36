// Package config provides configuration provider interfaces.
package config

import (
	keystoreconfig "github.com/weisyn/ethwallet/internal/config/keystore"
	logconfig "github.com/weisyn/ethwallet/internal/config/log"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetKeystore 获取 keystore 加解密配置
	GetKeystore() *keystoreconfig.KeystoreOptions
}
