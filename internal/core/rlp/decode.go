package rlp

import (
	"github.com/weisyn/ethwallet/pkg/types"
)

// 解码错误，均属于 EncodingError
var (
	ErrCanonSize        = types.Encodingf("rlp", "non-canonical size information")
	ErrCanonInt         = types.Encodingf("rlp", "non-canonical integer (leading zero bytes)")
	ErrValueTooLarge    = types.Encodingf("rlp", "value size exceeds available input length")
	ErrMoreThanOneValue = types.Encodingf("rlp", "input contains more than one value")
	ErrEmptyInput       = types.Encodingf("rlp", "empty input")
	ErrExpectedList     = types.Encodingf("rlp", "expected list")
)

// Decode 解码恰好一个顶层节点
func Decode(data []byte) (Item, error) {
	if len(data) == 0 {
		return Item{}, ErrEmptyInput
	}
	item, rest, err := decodeItem(data)
	if err != nil {
		return Item{}, err
	}
	if len(rest) > 0 {
		return Item{}, ErrMoreThanOneValue
	}
	return item, nil
}

// DecodeList 解码顶层列表并返回其子节点
func DecodeList(data []byte) ([]Item, error) {
	item, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if !item.IsList() {
		return nil, ErrExpectedList
	}
	return item.Items(), nil
}

func decodeItem(data []byte) (Item, []byte, error) {
	kind, content, rest, err := Split(data)
	if err != nil {
		return Item{}, nil, err
	}
	if kind == String {
		return Bytes(append([]byte{}, content...)), rest, nil
	}

	items := []Item{}
	it := newListIterator(content)
	for it.Next() {
		child, _, err := decodeItem(it.Value())
		if err != nil {
			return Item{}, nil, err
		}
		items = append(items, child)
	}
	if err := it.Err(); err != nil {
		return Item{}, nil, err
	}
	return NewList(items...), rest, nil
}

// Split 读取第一个值的种类与内容，返回剩余输入
func Split(data []byte) (kind Kind, content, rest []byte, err error) {
	k, tagSize, contentSize, err := readKind(data)
	if err != nil {
		return 0, nil, data, err
	}
	end := tagSize + contentSize
	return k, data[tagSize:end], data[end:], nil
}

func readKind(buf []byte) (k Kind, tagSize, contentSize uint64, err error) {
	if len(buf) == 0 {
		return 0, 0, 0, ErrEmptyInput
	}
	b := buf[0]
	switch {
	case b < offsetShortString:
		k, tagSize, contentSize = String, 0, 1
	case b <= offsetLongString:
		k, tagSize, contentSize = String, 1, uint64(b-offsetShortString)
		// 单字节 < 0x80 必须直接编码
		if contentSize == 1 && len(buf) > 1 && buf[1] < offsetShortString {
			return 0, 0, 0, ErrCanonSize
		}
	case b < offsetShortList:
		k, tagSize = String, uint64(b-offsetLongString)+1
		contentSize, err = readSize(buf[1:], b-offsetLongString)
	case b <= offsetLongList:
		k, tagSize, contentSize = List, 1, uint64(b-offsetShortList)
	default:
		k, tagSize = List, uint64(b-offsetLongList)+1
		contentSize, err = readSize(buf[1:], b-offsetLongList)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	remaining := uint64(len(buf)) - tagSize
	if tagSize > uint64(len(buf)) || contentSize > remaining {
		return 0, 0, 0, ErrValueTooLarge
	}
	return k, tagSize, contentSize, nil
}

func readSize(b []byte, slen byte) (uint64, error) {
	if int(slen) > len(b) {
		return 0, ErrValueTooLarge
	}
	if b[0] == 0 {
		return 0, ErrCanonSize
	}
	var s uint64
	for _, x := range b[:slen] {
		s = s<<8 | uint64(x)
	}
	// 长形式只用于超过 55 字节的内容
	if s <= maxShortLength {
		return 0, ErrCanonSize
	}
	return s, nil
}
