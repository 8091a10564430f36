package key

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/weisyn/ethwallet/pkg/types"
)

const curveOrderHex = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestIsValidPrivateKey_Boundaries(t *testing.T) {
	km := NewKeyManager()

	n := mustHex(t, curveOrderHex)
	nMinus1 := mustHex(t, curveOrderHex)
	nMinus1[31]--
	nPlus1 := mustHex(t, curveOrderHex)
	nPlus1[31]++
	one := make([]byte, 32)
	one[31] = 1

	testCases := []struct {
		name  string
		key   []byte
		valid bool
	}{
		{"零", make([]byte, 32), false},
		{"一", one, true},
		{"n-1", nMinus1, true},
		{"n", n, false},
		{"n+1", nPlus1, false},
		{"全FF", bytes.Repeat([]byte{0xFF}, 32), false},
		{"31字节", bytes.Repeat([]byte{0x01}, 31), false},
		{"33字节", bytes.Repeat([]byte{0x01}, 33), false},
		{"空", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, km.IsValidPrivateKey(tc.key))
			err := km.ValidatePrivateKey(tc.key)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, types.ErrValidation), "err = %v", err)
			}
		})
	}
}

func TestGeneratePrivateKey_AlwaysValid(t *testing.T) {
	km := NewKeyManager()
	for i := 0; i < 32; i++ {
		priv, err := km.GeneratePrivateKey()
		require.NoError(t, err)
		assert.Len(t, priv, 32)
		assert.True(t, km.IsValidPrivateKey(priv))
	}
}

func TestGeneratePrivateKey_RedrawsOutOfRange(t *testing.T) {
	// 先给出 0 和 n，再给出有效标量
	n := mustHex(t, curveOrderHex)
	valid := bytes.Repeat([]byte{0x11}, 32)
	stream := append(append(make([]byte, 32), n...), valid...)

	km := NewKeyManagerWithReader(bytes.NewReader(stream))
	priv, err := km.GeneratePrivateKey()
	require.NoError(t, err)
	assert.Equal(t, valid, priv)
}

func TestGeneratePrivateKey_ReaderFailure(t *testing.T) {
	km := NewKeyManagerWithReader(bytes.NewReader([]byte{1, 2, 3}))
	_, err := km.GeneratePrivateKey()
	assert.True(t, errors.Is(err, types.ErrCrypto))
}

func TestDerivePublicKey_KnownVector(t *testing.T) {
	km := NewKeyManager()
	one := make([]byte, 32)
	one[31] = 1

	// 1·G
	compressed, err := km.DerivePublicKey(one)
	require.NoError(t, err)
	assert.Equal(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", hex.EncodeToString(compressed))

	uncompressed, err := km.DeriveUncompressedPublicKey(one)
	require.NoError(t, err)
	assert.Equal(t,
		"0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"+
			"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
		hex.EncodeToString(uncompressed))
}

func TestDerivePublicKey_InvalidKey(t *testing.T) {
	km := NewKeyManager()
	_, err := km.DerivePublicKey(make([]byte, 32))
	assert.True(t, errors.Is(err, types.ErrValidation))
	_, err = km.DeriveUncompressedPublicKey([]byte{1})
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestCompressDecompress_AllForms(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		km := NewKeyManager()
		priv := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "priv")
		if !km.IsValidPrivateKey(priv) {
			t.Skip("out of range")
		}

		uncompressed, err := km.DeriveUncompressedPublicKey(priv)
		require.NoError(t, err)
		compressed, err := km.DerivePublicKey(priv)
		require.NoError(t, err)

		for _, form := range [][]byte{uncompressed, uncompressed[1:], compressed} {
			c, err := km.CompressPublicKey(form)
			require.NoError(t, err)
			assert.Equal(t, compressed, c)

			u, err := km.DecompressPublicKey(form)
			require.NoError(t, err)
			assert.Equal(t, uncompressed, u)
		}
	})
}

func TestDecompressPublicKey_BadLength(t *testing.T) {
	km := NewKeyManager()
	for _, l := range []int{0, 20, 32, 63, 66} {
		_, err := km.DecompressPublicKey(make([]byte, l))
		assert.True(t, errors.Is(err, types.ErrEncoding), "len %d: %v", l, err)
	}
}

func TestSecureWipe(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	SecureWipe(data)
	assert.Equal(t, make([]byte, 5), data)
	SecureWipe(nil)
}
