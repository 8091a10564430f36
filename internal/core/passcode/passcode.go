// Package passcode 把口令与可选 keyfile 组合为送入 KDF 的 passcode
//
// 规则：
//   - 没有 keyfile：passcode = 口令原样
//   - 有 keyfile：h = 对 keyfile 内容重复哈希；口令为空时 passcode = h，
//     否则逐字节异或，较短一方按 0 补齐，长度为两者较长者
package passcode

import (
	"os"

	keystoreconfig "github.com/weisyn/ethwallet/internal/config/keystore"
	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/ethwallet/pkg/types"
)

// Deriver passcode 派生器
type Deriver struct {
	hash       cryptointf.HashManager
	algorithm  string
	iterations int
	logger     log.Logger
}

// NewDeriver 创建派生器
//
// keyfile 哈希算法必须在 HashManager 中可用，否则返回 ConfigurationError。
func NewDeriver(cfg *keystoreconfig.Config, hash cryptointf.HashManager, logger log.Logger) (*Deriver, error) {
	if cfg == nil {
		cfg = keystoreconfig.Default()
	}
	if !hash.Supports(cfg.GetKeyfileHash()) {
		return nil, types.Configurationf("passcode.NewDeriver", "unsupported keyfile hash %q", cfg.GetKeyfileHash())
	}
	return &Deriver{
		hash:       hash,
		algorithm:  cfg.GetKeyfileHash(),
		iterations: cfg.GetKeyfileIterations(),
		logger:     logger,
	}, nil
}

// DefaultIterations keyfile 默认哈希次数
func (d *Deriver) DefaultIterations() int {
	return d.iterations
}

// Algorithm keyfile 哈希算法名称
func (d *Deriver) Algorithm() string {
	return d.algorithm
}

// Derive 派生 passcode
//
// keyfile 为 nil 表示没有 keyfile；空切片表示内容为空的 keyfile。
func (d *Deriver) Derive(password, keyfile []byte, iterations int) ([]byte, error) {
	if keyfile == nil {
		return append([]byte{}, password...), nil
	}

	h, err := d.hash.HashRepeated(keyfile, d.algorithm, iterations)
	if err != nil {
		return nil, err
	}
	if d.logger != nil {
		d.logger.Debugf("keyfile 已哈希: algorithm=%s iterations=%d", d.algorithm, iterations)
	}
	if len(password) == 0 {
		return h, nil
	}
	return XOR(password, h), nil
}

// DeriveFromPath 从 keyfile 路径派生，路径为空表示没有 keyfile
func (d *Deriver) DeriveFromPath(password []byte, keyfilePath string, iterations int) ([]byte, error) {
	if keyfilePath == "" {
		return d.Derive(password, nil, iterations)
	}
	data, err := os.ReadFile(keyfilePath)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return d.Derive(password, data, iterations)
}

// XOR 逐字节异或，较短一方按 0 补齐
func XOR(a, b []byte) []byte {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		var x, y byte
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		out[i] = x ^ y
	}
	return out
}
