package vault_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Defacto2/sevenzip/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, name, passphrase string) *vault.Vault {
	t.Helper()
	v, err := vault.Open(name, passphrase)
	require.NoError(t, err)
	return v
}

func TestVault(t *testing.T) {
	t.Parallel()
	name := filepath.Join(t.TempDir(), "secrets", "vault.json")
	v := open(t, name, "correct horse")

	_, ok, err := v.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, v.Put("archive.7z", "s3cret = pass", true))
	got, ok, err := v.Get("archive.7z")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "s3cret = pass", got)

	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "s3cret", "secrets are encrypted at rest")
	assert.True(t, strings.Contains(string(b), "PGP MESSAGE"))

	ids, err := v.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"archive.7z"}, ids)

	require.NoError(t, v.Delete("archive.7z"))
	require.NoError(t, v.Delete("archive.7z"))
	_, ok, err = v.Get("archive.7z")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVault_NoRemember(t *testing.T) {
	t.Parallel()
	name := filepath.Join(t.TempDir(), "vault.json")
	v := open(t, name, "passphrase")
	require.NoError(t, v.Put("archive.zip", "secret", false))
	assert.NoFileExists(t, name)
	_, ok, err := v.Get("archive.zip")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVault_WrongPassphrase(t *testing.T) {
	t.Parallel()
	name := filepath.Join(t.TempDir(), "vault.json")
	require.NoError(t, open(t, name, "right").Put("id", "secret", true))
	_, _, err := open(t, name, "wrong").Get("id")
	require.ErrorIs(t, err, vault.ErrDecrypt)
	got, ok, err := open(t, name, "right").Get("id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret", got)
}

func TestVault_Errors(t *testing.T) {
	t.Parallel()
	_, err := vault.Open("vault.json", "")
	require.ErrorIs(t, err, vault.ErrPassphrase)
	v := open(t, filepath.Join(t.TempDir(), "vault.json"), "x")
	require.ErrorIs(t, v.Put("", "secret", true), vault.ErrID)

	bad := filepath.Join(t.TempDir(), "vault.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o600))
	_, _, err = open(t, bad, "x").Get("id")
	require.Error(t, err)
}
