package rlp

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	gethrlp "github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/weisyn/ethwallet/pkg/types"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncode_KnownVectors(t *testing.T) {
	long := bytes.Repeat([]byte{'a'}, 56)

	testCases := []struct {
		name string
		item Item
		want string
	}{
		{"空字节串", Bytes(nil), "80"},
		{"单字节 0x00", Bytes([]byte{0x00}), "00"},
		{"单字节 0x7f", Bytes([]byte{0x7f}), "7f"},
		{"单字节 0x80", Bytes([]byte{0x80}), "8180"},
		{"dog", Bytes([]byte("dog")), "83646f67"},
		{"56 字节", Bytes(long), "b838" + hex.EncodeToString(long)},
		{"空列表", NewList(), "c0"},
		{"cat dog", NewList(Bytes([]byte("cat")), Bytes([]byte("dog"))), "c88363617483646f67"},
		{"集合论表示", NewList(NewList(), NewList(NewList()), NewList(NewList(), NewList(NewList()))), "c7c0c1c0c3c0c1c0"},
		{"整数 0", Uint(0), "80"},
		{"整数 15", Uint(15), "0f"},
		{"整数 1024", Uint(1024), "820400"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hex.EncodeToString(Encode(tc.item)))

			decoded, err := Decode(unhex(t, tc.want))
			require.NoError(t, err)
			assert.True(t, tc.item.Equal(decoded), "decoded %s", decoded)
		})
	}
}

func TestEncode_LongList(t *testing.T) {
	items := make([]Item, 20)
	for i := range items {
		items[i] = Bytes([]byte("abc"))
	}
	enc := EncodeList(items...)
	assert.Equal(t, byte(0xf8), enc[0])
	assert.Equal(t, byte(80), enc[1])

	got, err := DecodeList(enc)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestDecode_RejectsNonCanonical(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"空输入", ""},
		{"单字节加前缀", "8100"},
		{"单字节 0x7f 加前缀", "817f"},
		{"短字节串使用长形式", "b805" + "0102030405"},
		{"长度字段前导零", "b90038" + hex.EncodeToString(bytes.Repeat([]byte{1}, 56))},
		{"短列表使用长形式", "f803" + "010203"},
		{"字节串截断", "830102"},
		{"长度字段截断", "b9"},
		{"列表截断", "c30102"},
		{"列表内元素越界", "c28301"},
		{"列表内非规范元素", "c28100"},
		{"多余数据", "0102"},
		{"列表后多余数据", "c0c0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(unhex(t, tc.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrEncoding), "err = %v", err)
		})
	}
}

func TestItemUint(t *testing.T) {
	v, err := Bytes([]byte{0x04, 0x00}).Uint()
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), v)

	v, err = Bytes(nil).Uint()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	for _, bad := range []Item{
		Bytes([]byte{0x00}),
		Bytes([]byte{0x00, 0x01}),
		Bytes(bytes.Repeat([]byte{0x01}, 9)),
		NewList(),
	} {
		_, err := bad.Uint()
		assert.True(t, errors.Is(err, types.ErrEncoding), "%s", bad)
	}
}

func TestMinimalBytes(t *testing.T) {
	assert.Empty(t, MinimalBytes(0))
	assert.Equal(t, []byte{0x01}, MinimalBytes(1))
	assert.Equal(t, []byte{0x01, 0x00}, MinimalBytes(256))
	assert.Equal(t, bytes.Repeat([]byte{0xff}, 8), MinimalBytes(^uint64(0)))
}

func TestListIterator(t *testing.T) {
	enc := EncodeList(Uint(1), Bytes([]byte("dog")), NewList())
	var it *ListIterator
	it, err := NewListIterator(enc)
	require.NoError(t, err)

	var values []string
	for it.Next() {
		values = append(values, hex.EncodeToString(it.Value()))
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"01", "83646f67", "c0"}, values)

	_, err = NewListIterator(Encode(Bytes([]byte("dog"))))
	assert.True(t, errors.Is(err, types.ErrEncoding))
}

// drawItem 生成深度有限的随机 RLP 树
func drawItem(t *rapid.T, depth int, label string) Item {
	if depth >= 3 || rapid.Bool().Draw(t, label+".leaf") {
		switch rapid.IntRange(0, 3).Draw(t, label+".shape") {
		case 0:
			return Bytes(nil)
		case 1:
			return Bytes([]byte{rapid.Byte().Draw(t, label+".byte")})
		default:
			return Bytes(rapid.SliceOfN(rapid.Byte(), 0, 120).Draw(t, label+".bytes"))
		}
	}
	n := rapid.IntRange(0, 5).Draw(t, label+".n")
	items := make([]Item, n)
	for i := range items {
		items[i] = drawItem(t, depth+1, fmt.Sprintf("%s.%d", label, i))
	}
	return NewList(items...)
}

// toGeth 转换为 go-ethereum rlp 能编码的值
func toGeth(it Item) interface{} {
	if !it.IsList() {
		if it.Bytes() == nil {
			return []byte{}
		}
		return it.Bytes()
	}
	out := make([]interface{}, 0, it.Len())
	for _, child := range it.Items() {
		out = append(out, toGeth(child))
	}
	return out
}

func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		item := drawItem(t, 0, "root")
		enc := Encode(item)

		decoded, err := Decode(enc)
		require.NoError(t, err)
		assert.True(t, item.Equal(decoded), "want %s got %s", item, decoded)

		gethEnc, err := gethrlp.EncodeToBytes(toGeth(item))
		require.NoError(t, err)
		assert.Equal(t, gethEnc, enc)
	})
}

func TestDecode_TruncationAlwaysFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		enc := Encode(drawItem(t, 0, "root"))
		cut := rapid.IntRange(0, len(enc)-1).Draw(t, "cut")
		_, err := Decode(enc[:cut])
		assert.True(t, errors.Is(err, types.ErrEncoding), "cut %d of %x: %v", cut, enc, err)
	})
}
