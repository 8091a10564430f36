package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/ethwallet/pkg/types"
)

func TestProvider_Defaults(t *testing.T) {
	provider := NewProvider(nil)

	t.Run("日志默认值", func(t *testing.T) {
		assert.Equal(t, "warn", provider.GetLog().Level)
	})

	t.Run("keystore默认值", func(t *testing.T) {
		ks := provider.GetKeystore()
		assert.Equal(t, "scrypt", ks.KDF)
		assert.Equal(t, 262144, ks.Scrypt.N)
		assert.Equal(t, "aes-128-ctr", ks.Cipher)
	})
}

func TestParseAppConfig(t *testing.T) {
	t.Run("合法配置", func(t *testing.T) {
		cfg, err := ParseAppConfig([]byte(`{"log":{"level":"debug"},"keystore":{"kdf":"pbkdf2","pbkdf2":{"c":4096}}}`))
		require.NoError(t, err)

		provider := NewProvider(cfg)
		assert.Equal(t, "debug", provider.GetLog().Level)
		assert.Equal(t, "pbkdf2", provider.GetKeystore().KDF)
		assert.Equal(t, 4096, provider.GetKeystore().PBKDF2.C)
	})

	t.Run("未知字段", func(t *testing.T) {
		_, err := ParseAppConfig([]byte(`{"log":{},"storage":{}}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrParse))
	})

	t.Run("未知KDF", func(t *testing.T) {
		_, err := ParseAppConfig([]byte(`{"keystore":{"kdf":"bcrypt"}}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	})

	t.Run("未知日志级别", func(t *testing.T) {
		_, err := ParseAppConfig([]byte(`{"log":{"level":"loud"}}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	})

	t.Run("尾随数据", func(t *testing.T) {
		_, err := ParseAppConfig([]byte(`{} {}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrParse))
	})
}

func TestLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wallet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"keystore":{"keyfile":{"iterations":3}}}`), 0o600))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, NewProvider(cfg).GetKeystore().KeyfileIterations)

	_, err = LoadAppConfig(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestProvideConfigServices(t *testing.T) {
	out, err := ProvideConfigServices(ConfigParams{})
	require.NoError(t, err)
	require.NotNil(t, out.Provider)
	require.NotNil(t, out.KeystoreConfig)
	assert.Equal(t, "scrypt", out.KeystoreConfig.GetKDF())
}
