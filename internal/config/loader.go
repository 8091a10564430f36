package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/weisyn/ethwallet/pkg/types"
)

// LoadAppConfig 从 JSON 文件加载应用配置
//
// 与节点不同，钱包不会在配置错误时静默回退到默认值：
// 口令派生参数写错会导致生成的 keystore 无法用预期口令打开。
func LoadAppConfig(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	return ParseAppConfig(data)
}

// ParseAppConfig 解析 JSON 配置，拒绝未知字段
func ParseAppConfig(data []byte) (*types.AppConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var appConfig types.AppConfig
	if err := dec.Decode(&appConfig); err != nil {
		return nil, types.WrapKind(types.KindParse, "config.Parse", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, types.Parsef("config.Parse", "trailing data after configuration object")
	}
	if err := ValidateAppConfig(&appConfig); err != nil {
		return nil, err
	}
	return &appConfig, nil
}
