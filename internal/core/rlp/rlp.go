// Package rlp 实现规范的 RLP（Recursive Length Prefix）编解码
//
// 📦 **数据模型**：
// Item 是字节串或有序列表的树。整数以最小大端字节表示，0 编码为空字节串。
//
// 🔒 **规范性**：
// 解码拒绝一切非规范形式：短形式可表达时使用长度前缀、长度字段带前导零、
// 单字节 < 0x80 仍加前缀、声明长度超出剩余输入、顶层之后还有多余数据。
package rlp

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/weisyn/ethwallet/pkg/types"
)

// Kind RLP 值的种类
type Kind uint8

const (
	// String 字节串
	String Kind = iota
	// List 列表
	List
)

func (k Kind) String() string {
	if k == List {
		return "list"
	}
	return "string"
}

// 前缀常量
const (
	offsetShortString = 0x80
	offsetLongString  = 0xB7
	offsetShortList   = 0xC0
	offsetLongList    = 0xF7
	maxShortLength    = 55
)

// Item RLP 树节点
type Item struct {
	kind  Kind
	str   []byte
	items []Item
}

// Bytes 构造字节串节点
func Bytes(b []byte) Item {
	return Item{kind: String, str: b}
}

// NewList 构造列表节点
func NewList(items ...Item) Item {
	if items == nil {
		items = []Item{}
	}
	return Item{kind: List, items: items}
}

// Uint 构造整数节点（最小大端表示）
func Uint(v uint64) Item {
	return Bytes(MinimalBytes(v))
}

// Kind 返回节点种类
func (it Item) Kind() Kind { return it.kind }

// IsList 是否为列表
func (it Item) IsList() bool { return it.kind == List }

// Bytes 返回字节串内容，列表返回 nil
func (it Item) Bytes() []byte { return it.str }

// Items 返回列表子节点，字节串返回 nil
func (it Item) Items() []Item { return it.items }

// Len 字节串长度或列表元素个数
func (it Item) Len() int {
	if it.kind == List {
		return len(it.items)
	}
	return len(it.str)
}

// Uint 把字节串解释为规范整数
func (it Item) Uint() (uint64, error) {
	if it.kind != String {
		return 0, types.Encodingf("rlp.Uint", "expected string, got list")
	}
	if err := CheckCanonicalInt(it.str, 8); err != nil {
		return 0, err
	}
	var v uint64
	for _, b := range it.str {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// Equal 递归比较；nil 与空字节串视为相等
func (it Item) Equal(other Item) bool {
	if it.kind != other.kind {
		return false
	}
	if it.kind == String {
		return bytes.Equal(it.str, other.str)
	}
	if len(it.items) != len(other.items) {
		return false
	}
	for i := range it.items {
		if !it.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// String 调试输出，例如 [0x01, [], 0x]
func (it Item) String() string {
	if it.kind == String {
		return "0x" + hex.EncodeToString(it.str)
	}
	parts := make([]string, len(it.items))
	for i, child := range it.items {
		parts[i] = child.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MinimalBytes 整数的最小大端表示，0 返回空切片
func MinimalBytes(v uint64) []byte {
	var buf [8]byte
	n := 0
	for x := v; x > 0; x >>= 8 {
		n++
	}
	for i := 0; i < n; i++ {
		buf[7-i] = byte(v >> (8 * i))
	}
	return append([]byte{}, buf[8-n:]...)
}

// CheckCanonicalInt 检查整数字节串：无前导零且不超过 maxLen 字节
func CheckCanonicalInt(b []byte, maxLen int) error {
	if len(b) > 0 && b[0] == 0 {
		return ErrCanonInt
	}
	if maxLen > 0 && len(b) > maxLen {
		return types.Encodingf("rlp.CheckCanonicalInt", "integer wider than %d bytes", maxLen)
	}
	return nil
}
