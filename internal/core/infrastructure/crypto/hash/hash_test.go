package hash

import (
	"encoding/hex"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/ethwallet/pkg/types"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestKeccak256(t *testing.T) {
	hashService := NewHashService()

	t.Run("空数据", func(t *testing.T) {
		assert.Equal(t,
			mustHex(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"),
			hashService.Keccak256(nil))
	})

	t.Run("多段输入等价于拼接", func(t *testing.T) {
		whole := hashService.Keccak256([]byte("hello world"))
		parts := hashService.Keccak256([]byte("hello"), []byte(" "), []byte("world"))
		assert.Equal(t, whole, parts)
	})
}

func TestSum_KnownVectors(t *testing.T) {
	hashService := NewHashService()

	testCases := []struct {
		alg   string
		input string
		want  string
	}{
		{"sha256", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"sha256", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"sha512", "abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{"md5", "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"ripemd160", "", "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
		{"keccak256", "", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"sha3-256", "", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
	}

	for _, tc := range testCases {
		t.Run(tc.alg+"/"+tc.input, func(t *testing.T) {
			got, err := hashService.Sum(tc.alg, []byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, hex.EncodeToString(got))
		})
	}
}

func TestSum_DigestSizes(t *testing.T) {
	hashService := NewHashService()
	sizes := map[string]int{
		"sha1": 20, "sha224": 28, "sha384": 48, "sha512-224": 28, "sha512-256": 32,
		"sha3-224": 28, "sha3-384": 48, "sha3-512": 64, "keccak512": 64,
		"blake2b-256": 32, "blake2b-512": 64, "blake2s-256": 32,
	}
	for alg, size := range sizes {
		got, err := hashService.Sum(alg, []byte("data"))
		require.NoError(t, err, alg)
		assert.Len(t, got, size, alg)
	}
}

func TestSum_UnknownAlgorithm(t *testing.T) {
	_, err := NewHashService().Sum("whirlpool", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}

func TestHashRepeated(t *testing.T) {
	hashService := NewHashService()
	input := []byte("keyfile contents")

	once, err := hashService.Sum("sha256", input)
	require.NoError(t, err)
	twice, err := hashService.Sum("sha256", once)
	require.NoError(t, err)

	t.Run("零次为恒等", func(t *testing.T) {
		got, err := hashService.HashRepeated(input, "sha256", 0)
		require.NoError(t, err)
		assert.Equal(t, input, got)
		// 返回的是副本
		got[0] ^= 0xff
		assert.Equal(t, byte('k'), input[0])
	})

	t.Run("两次", func(t *testing.T) {
		got, err := hashService.HashRepeated(input, "sha256", 2)
		require.NoError(t, err)
		assert.Equal(t, twice, got)
	})

	t.Run("负数取绝对值", func(t *testing.T) {
		got, err := hashService.HashRepeated(input, "sha256", -2)
		require.NoError(t, err)
		assert.Equal(t, twice, got)
	})

	t.Run("零次也校验算法", func(t *testing.T) {
		_, err := hashService.HashRepeated(input, "nope", 0)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	})
}

func TestAlgorithms(t *testing.T) {
	hashService := NewHashService()
	algs := hashService.Algorithms()

	assert.Contains(t, algs, "sha512")
	assert.Contains(t, algs, "keccak256")
	assert.IsIncreasing(t, algs)
	for _, alg := range algs {
		assert.True(t, hashService.Supports(alg))
	}
	assert.False(t, hashService.Supports("SHA512"))
}

func TestIterationCount(t *testing.T) {
	tests := []struct {
		in   int
		want uint64
	}{
		{0, 0},
		{3, 3},
		{-3, 3},
		{math.MaxInt, uint64(math.MaxInt)},
		{-math.MaxInt, uint64(math.MaxInt)},
		{math.MinInt, uint64(math.MaxInt) + 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, iterationCount(tt.in), "iterations %d", tt.in)
	}
}
