package signature

import (
	"bytes"
	"errors"
	"testing"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/ethwallet/internal/core/infrastructure/crypto/key"
	cryptointf "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ethwallet/pkg/types"
)

func newTestService() (*SignatureService, *key.KeyManager) {
	km := key.NewKeyManager()
	return NewSignatureService(km), km
}

func TestSignRecover_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ss, km := newTestService()
		priv := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "priv")
		if !km.IsValidPrivateKey(priv) {
			t.Skip("out of range")
		}
		digest := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "hash")

		sig, err := ss.SignRecoverable(digest, priv)
		require.NoError(t, err)
		assert.Len(t, sig.R, 32)
		assert.Len(t, sig.S, 32)
		assert.LessOrEqual(t, sig.RecoveryID, byte(1))

		pub, err := ss.RecoverPublicKey(digest, sig)
		require.NoError(t, err)
		expected, err := km.DeriveUncompressedPublicKey(priv)
		require.NoError(t, err)
		assert.Equal(t, expected, pub)
	})
}

func TestSignRecoverable_MatchesGeth(t *testing.T) {
	ss, km := newTestService()
	hs := hash.NewHashService()

	for i := 0; i < 16; i++ {
		priv, err := km.GeneratePrivateKey()
		require.NoError(t, err)
		digest := hs.Keccak256([]byte("message"), []byte{byte(i)})

		sig, err := ss.SignRecoverable(digest, priv)
		require.NoError(t, err)

		ecdsaKey, err := gethcrypto.ToECDSA(priv)
		require.NoError(t, err)
		gethSig, err := gethcrypto.Sign(digest, ecdsaKey)
		require.NoError(t, err)

		assert.Equal(t, gethSig[0:32], sig.R)
		assert.Equal(t, gethSig[32:64], sig.S)
		assert.Equal(t, gethSig[64], sig.RecoveryID)
	}
}

func TestSignRecoverable_Deterministic(t *testing.T) {
	ss, km := newTestService()
	priv, err := km.GeneratePrivateKey()
	require.NoError(t, err)
	digest := bytes.Repeat([]byte{0xAB}, 32)

	a, err := ss.SignRecoverable(digest, priv)
	require.NoError(t, err)
	b, err := ss.SignRecoverable(digest, priv)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSignRecoverable_InvalidInput(t *testing.T) {
	ss, km := newTestService()
	priv, err := km.GeneratePrivateKey()
	require.NoError(t, err)

	_, err = ss.SignRecoverable(make([]byte, 31), priv)
	assert.True(t, errors.Is(err, types.ErrCrypto))

	_, err = ss.SignRecoverable(make([]byte, 32), make([]byte, 32))
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestRecoverPublicKey_RejectsMalformed(t *testing.T) {
	ss, _ := newTestService()
	digest := bytes.Repeat([]byte{0x01}, 32)
	good := bytes.Repeat([]byte{0x02}, 32)

	testCases := []struct {
		name string
		sig  *cryptointf.RecoverableSignature
	}{
		{"空签名", nil},
		{"r 过短", &cryptointf.RecoverableSignature{R: good[:31], S: good}},
		{"s 过长", &cryptointf.RecoverableSignature{R: good, S: append(good, 0)}},
		{"恢复ID越界", &cryptointf.RecoverableSignature{R: good, S: good, RecoveryID: 2}},
		{"r 为零", &cryptointf.RecoverableSignature{R: make([]byte, 32), S: good}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ss.RecoverPublicKey(digest, tc.sig)
			assert.True(t, errors.Is(err, types.ErrCrypto), "err = %v", err)
		})
	}
}
