package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Defacto2/sevenzip/command"
	"github.com/Defacto2/sevenzip/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := config.Load(config.New(""))
	require.NoError(t, err)
	assert.Empty(t, c.Program)
	assert.Equal(t, command.SevenZip, c.Format)
	assert.Equal(t, "settings.json", filepath.Base(c.Settings))
	assert.Equal(t, "vault.json", filepath.Base(c.Vault))
}

func TestLoad_File(t *testing.T) {
	t.Parallel()
	name := filepath.Join(t.TempDir(), "config.yaml")
	data := "program: /opt/7zip/7zz\nformat: ZIP\ntempdir: /var/tmp\n"
	require.NoError(t, os.WriteFile(name, []byte(data), 0o600))
	c, err := config.Load(config.New(name))
	require.NoError(t, err)
	assert.Equal(t, "/opt/7zip/7zz", c.Program)
	assert.Equal(t, command.Zip, c.Format)
	assert.Equal(t, "/var/tmp", c.TempDir)
	assert.Equal(t, name, c.File)
}

func TestLoad_InvalidFormat(t *testing.T) {
	t.Parallel()
	name := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(name, []byte("format: rar\n"), 0o600))
	c, err := config.Load(config.New(name))
	require.NoError(t, err)
	assert.Equal(t, command.SevenZip, c.Format)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SEVENZIP_PROGRAM", "7za")
	t.Chdir(t.TempDir())
	c, err := config.Load(config.New(""))
	require.NoError(t, err)
	assert.Equal(t, "7za", c.Program)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()
	_, err := config.Load(config.New(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err, "an explicitly named file must exist")
}
