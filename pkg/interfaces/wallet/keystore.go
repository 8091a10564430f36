// Package wallet 提供钱包核心的公共接口定义
//
// 📋 **keystore.go - keystore 编解码接口**
//
// 命令行和其他调用方只依赖这里的接口；实现位于 internal/core/keystore 与 internal/core/passcode。
package wallet

import (
	"github.com/weisyn/ethwallet/pkg/types"
)

// KeystoreCodec V3 keystore 编解码
//
// 🎯 **核心职责**: 私钥 ↔ 加密记录
//
// 约定:
//   - Open 在 MAC 不匹配（口令或 keyfile 错误）时返回 (nil, false, nil)，不是错误
//   - 记录携带不支持的 kdf / cipher 时返回 ConfigurationError
//
// 实现位置:
//   - internal/core/keystore/keystore.go
type KeystoreCodec interface {
	// Create 加密私钥；privateKey 为 nil 时随机生成
	Create(passcode, privateKey []byte) (*types.KeystoreRecord, error)

	// Open 解密记录
	Open(record *types.KeystoreRecord, passcode []byte) ([]byte, bool, error)

	// Verify 判断 passcode 能否打开记录且私钥与记录地址一致
	Verify(record *types.KeystoreRecord, passcode []byte) (bool, error)

	// AddressOf 返回记录中保存的 20 字节地址
	AddressOf(record *types.KeystoreRecord) ([]byte, error)

	// ChangePasscode 用新 passcode 重新加密；当前 passcode 错误时 ok 为 false
	ChangePasscode(record *types.KeystoreRecord, current, next []byte) (*types.KeystoreRecord, bool, error)
}

// PasscodeDeriver 口令与 keyfile 组合为 passcode
type PasscodeDeriver interface {
	// Derive keyfile 为 nil 表示没有 keyfile
	Derive(password, keyfile []byte, iterations int) ([]byte, error)

	// DeriveFromPath keyfilePath 为空表示没有 keyfile
	DeriveFromPath(password []byte, keyfilePath string, iterations int) ([]byte, error)

	// DefaultIterations keyfile 默认哈希次数
	DefaultIterations() int
}
