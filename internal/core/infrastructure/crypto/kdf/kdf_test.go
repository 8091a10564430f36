package kdf

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/ethwallet/pkg/types"
)

// RFC 7914 §12 第二组向量
func TestScrypt_RFC7914(t *testing.T) {
	s := NewKDFService()
	dk, err := s.Scrypt([]byte("password"), []byte("NaCl"), 1024, 8, 16, 64)
	require.NoError(t, err)
	assert.Equal(t,
		"fdbabe1c9d3472007856e7190d01e9fe7c6ad7cbc8237830e77376634b373162"+
			"2eaf30d92e22a3886ff109279d9830dac727afb94a83ee6d8360cbdfa2cc0640",
		hex.EncodeToString(dk))
}

func TestPBKDF2_HmacSHA256(t *testing.T) {
	s := NewKDFService()
	dk, err := s.PBKDF2([]byte("password"), []byte("salt"), 1, PRFHmacSHA256, 32)
	require.NoError(t, err)
	assert.Equal(t, "120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b", hex.EncodeToString(dk))
}

func TestPBKDF2_HmacSHA1(t *testing.T) {
	// RFC 6070
	s := NewKDFService()
	dk, err := s.PBKDF2([]byte("password"), []byte("salt"), 1, PRFHmacSHA1, 20)
	require.NoError(t, err)
	assert.Equal(t, "0c60c80f961f0e71f3a9b524af6012062fe037a6", hex.EncodeToString(dk))
}

func TestKDF_InvalidParameters(t *testing.T) {
	s := NewKDFService()

	_, err := s.Scrypt([]byte("p"), []byte("s"), 1000, 8, 1, 32)
	assert.True(t, errors.Is(err, types.ErrConfiguration), "n 不是 2 的幂: %v", err)

	_, err = s.Scrypt([]byte("p"), []byte("s"), 16, 8, 1, 0)
	assert.True(t, errors.Is(err, types.ErrConfiguration))

	_, err = s.PBKDF2([]byte("p"), []byte("s"), 1, "hmac-md5", 32)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
	assert.False(t, s.SupportsPRF("hmac-md5"))

	_, err = s.PBKDF2([]byte("p"), []byte("s"), 0, PRFHmacSHA256, 32)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}

func TestPRFs(t *testing.T) {
	assert.Equal(t, []string{PRFHmacSHA1, PRFHmacSHA256, PRFHmacSHA512}, PRFs())
}
