package tx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/ethwallet/pkg/types"
)

func TestEncodeData(t *testing.T) {
	tests := []struct {
		enc, data string
		want      []byte
	}{
		{EncUTF8, "héllo", []byte("héllo")},
		{EncUTF8Dash, "", []byte{}},
		{EncASCII, "hello", []byte("hello")},
		{EncLatin1, "é", []byte{0xe9}},
		{EncBinary, "ÿ", []byte{0xff}},
		{EncUTF16LE, "hi", []byte{'h', 0, 'i', 0}},
		{EncUCS2Dash, "€", []byte{0xac, 0x20}},
		{EncBase64, "aGVsbG8=", []byte("hello")},
		{EncBase64, "aGVsbG8", []byte("hello")},
		{EncBase64, "-_8", []byte{0xfb, 0xff}},
		{EncHex, "0xdeadBEEF", []byte{0xde, 0xad, 0xbe, 0xef}},
		{EncHex, "00ff", []byte{0x00, 0xff}},
		{EncBase58, "StV1DL6CwTryKyV", []byte("hello world")},
		{EncBase58, "", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.enc+"/"+tt.data, func(t *testing.T) {
			got, err := EncodeData(tt.data, tt.enc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeData_Rejects(t *testing.T) {
	for _, tc := range [][2]string{
		{EncASCII, "héllo"},
		{EncLatin1, "€"},
		{EncBinary, "日本"},
		{EncHex, "abc"},
		{EncHex, "zz"},
		{EncBase64, "a"},
		{EncBase58, "0OIl"},
		{"utf-32", "x"},
	} {
		_, err := EncodeData(tc[1], tc[0])
		assert.True(t, errors.Is(err, types.ErrValidation), "%s %q", tc[0], tc[1])
	}
}

func TestDecodeData(t *testing.T) {
	tests := []struct {
		enc  string
		data []byte
		want string
	}{
		{EncUTF8, []byte("hello"), "hello"},
		{EncASCII, []byte{0xe8, 'i'}, "hi"},
		{EncLatin1, []byte{0xe9}, "é"},
		{EncUTF16LED, []byte{'h', 0, 'i', 0}, "hi"},
		{EncBase64, []byte("hello"), "aGVsbG8="},
		{EncHex, []byte{0xbe, 0xef}, "0xbeef"},
		{EncHex, nil, ""},
		{EncBase58, []byte("hello world"), "StV1DL6CwTryKyV"},
	}
	for _, tt := range tests {
		got, err := DecodeData(tt.data, tt.enc)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.enc)
	}

	_, err := DecodeData([]byte{1}, "rot13")
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestEncodings(t *testing.T) {
	names := Encodings()
	assert.Len(t, names, 12)
	for _, n := range names {
		assert.True(t, IsEncoding(n))
		_, err := EncodeData("", n)
		assert.NoError(t, err, n)
	}
	assert.False(t, IsEncoding("UTF-8"))
}

func TestSci(t *testing.T) {
	assert.Equal(t, "999", Sci("999", 3))
	assert.Equal(t, "1.000e+3", Sci("1000", 3))
	assert.Equal(t, "1.000e+15", Sci("1000000000000000", 3))
	assert.Equal(t, "5.123e+9", Sci("5123456789", 3))
	assert.Equal(t, "5e+9", Sci("5123456789", 0))
}
