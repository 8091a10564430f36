package keystore

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// fileMode keystore 文件只允许属主读写
const fileMode os.FileMode = 0o600

// WriteFile 把记录写为 JSON 文件
func WriteFile(path string, record *Record) error {
	data, err := record.Marshal()
	if err != nil {
		return fmt.Errorf("序列化 keystore 失败: %w", err)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("写入 keystore 文件失败: %w", err)
	}
	return nil
}

// ReadFile 读取并严格解析 keystore 文件
func ReadFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取 keystore 文件失败: %w", err)
	}
	return ParseRecord(data)
}

// DefaultFileName 生成 "UTC--<时间>--<地址>" 形式的文件名
func DefaultFileName(address []byte, t time.Time) string {
	return "UTC--" + t.UTC().Format("2006-01-02T15-04-05.000000000Z") + "--" + hex.EncodeToString(address)
}
