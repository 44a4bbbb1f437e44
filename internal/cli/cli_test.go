package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Defacto2/helper"
	"github.com/Defacto2/sevenzip"
	"github.com/Defacto2/sevenzip/internal/cli"
	"github.com/Defacto2/sevenzip/process"
	"github.com/Defacto2/sevenzip/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fake struct {
	mu    sync.Mutex
	calls [][]string
	out   process.Output
}

func (f *fake) Run(_ context.Context, args ...string) (process.Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
	return f.out, nil
}

func (f *fake) last() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

// env is a temporary config file, settings file and vault.
type env struct {
	dir      string
	config   string
	settings string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	e := env{
		dir:      dir,
		config:   filepath.Join(dir, "config.yaml"),
		settings: filepath.Join(dir, "settings.json"),
	}
	data := fmt.Sprintf("program: 7zz\nformat: zip\ntempdir: %s\nsettings: %s\nvault: %s\n",
		dir, e.settings, filepath.Join(dir, "vault.json"))
	require.NoError(t, os.WriteFile(e.config, []byte(data), 0o600))
	return e
}

func run(t *testing.T, e env, f *fake, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd(sevenzip.WithTransport(f))
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func archive(t *testing.T, e env, name string) string {
	t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(t, helper.Touch(p))
	return p
}

func TestList(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	src := archive(t, e, "files.7z")
	f := &fake{out: process.Output{Stdout: [][]byte{[]byte(
		"Path = " + src + "\nType = 7z\n\nPath = docs\nFolder = +\n\nPath = docs/README.TXT\nSize = 120\nPacked Size = 64\n",
	)}}}
	out, err := run(t, e, f, "list", src)
	require.NoError(t, err)
	assert.Contains(t, out, "docs/README.TXT")
	assert.Contains(t, out, "2 entries, 120 bytes, 64 packed")

	out, err = run(t, e, f, "--json", "list", src)
	require.NoError(t, err)
	var l sevenzip.Listing
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	assert.Len(t, l.Entries, 2)
	assert.Equal(t, "7z", l.Stats.Format)

	out, err = run(t, e, f, "list", "--readme", src)
	require.NoError(t, err)
	assert.Equal(t, "docs/README.TXT\n", out)
}

func TestList_Missing(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, err := run(t, e, &fake{}, "list", filepath.Join(e.dir, "a.7z"))
	require.ErrorIs(t, err, sevenzip.ErrNotFound)
}

func TestAdd(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	file := archive(t, e, "a.txt")
	dst := filepath.Join(e.dir, "new")
	f := &fake{}
	out, err := run(t, e, f, "add", "--level", "9", dst, file)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1 item(s) to "+dst)
	assert.Equal(t, []string{"a", "-tzip", "-y", "-mx=9", dst, file}, f.last(), "the configured format is the default")

	_, err = run(t, e, f, "add", "--format", "rar", dst, file)
	require.ErrorIs(t, err, sevenzip.ErrInvalidInput)
}

func TestAdd_StripSetting(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	require.NoError(t, settings.Write(e.settings, settings.Settings{StripMetadata: true}))
	file := archive(t, e, "a.txt")
	dst := filepath.Join(e.dir, "new.7z")
	f := &fake{}
	_, err := run(t, e, f, "add", dst, file)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "-t7z", "-y", "-mtm-", "-mtc-", "-mta-", dst, file}, f.last())
}

func TestExtract(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	src := archive(t, e, "a.zip")
	dst := filepath.Join(e.dir, "out")
	f := &fake{}
	out, err := run(t, e, f, "extract", "-o", dst, src, "x.txt", "y.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Extracted 2 item(s) to "+dst)
	assert.DirExists(t, dst)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	src := archive(t, e, "a.7z")
	f := &fake{}
	_, err := run(t, e, f, "delete", src)
	require.ErrorIs(t, err, sevenzip.ErrInvalidInput)
	out, err := run(t, e, f, "delete", src, "a.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 item(s)")
}

func TestTest(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	src := archive(t, e, "corrupt.7z")
	f := &fake{out: process.Output{ExitCode: 2, Stderr: [][]byte{[]byte("ERROR: Data Error")}}}
	out, err := run(t, e, f, "test", src)
	require.Error(t, err)
	assert.Contains(t, out, sevenzip.TestFailed)

	f = &fake{}
	out, err = run(t, e, f, "--json", "test", src)
	require.NoError(t, err)
	var r sevenzip.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.True(t, r.Success)
	assert.Equal(t, sevenzip.TestPassed, r.Message)
}

func TestPreview(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	src := archive(t, e, "a.7z")
	f := &fake{out: process.Output{Stdout: [][]byte{[]byte("Path = NOTES.TXT\nSize = 1\n\nPath = a.nfo\nSize = 1\n")}}}
	out, err := run(t, e, f, "preview", src)
	require.NoError(t, err)
	path := strings.TrimSpace(out)
	assert.Equal(t, "a.nfo", filepath.Base(path))
	assert.Equal(t, e.dir, filepath.Dir(filepath.Dir(path)))
	assert.Equal(t, "a.nfo", f.last()[len(f.last())-1])
}

func TestSettings(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	out, err := run(t, e, &fake{}, "settings", "set", "telemetryLevel", "full")
	require.NoError(t, err)
	assert.Contains(t, out, `"telemetryLevel": "full"`)
	_, err = run(t, e, &fake{}, "settings", "set", "privacyMode", "true")
	require.NoError(t, err)
	s, err := settings.Read(e.settings)
	require.NoError(t, err)
	assert.Equal(t, settings.Settings{PrivacyMode: true, TelemetryLevel: settings.Full}, s)

	_, err = run(t, e, &fake{}, "settings", "set", "theme", "true")
	require.Error(t, err)
	_, err = run(t, e, &fake{}, "settings", "set", "privacyMode", "maybe")
	require.Error(t, err)

	export := filepath.Join(e.dir, "export.json")
	_, err = run(t, e, &fake{}, "settings", "export", export)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(e.settings, nil, 0o600))
	_, err = run(t, e, &fake{}, "settings", "import", export)
	require.NoError(t, err)
	s, err = settings.Read(e.settings)
	require.NoError(t, err)
	assert.True(t, s.PrivacyMode)
}

func TestSecret(t *testing.T) {
	e := newEnv(t)
	t.Setenv("SEVENZIP_VAULT_PASSPHRASE", "correct horse")
	_, err := run(t, e, &fake{}, "secret", "put", "a.7z", "hunter2")
	require.NoError(t, err)
	_, err = run(t, e, &fake{}, "secret", "get", "a.7z")
	require.Error(t, err, "rememberSecrets is off so nothing was saved")

	require.NoError(t, settings.Write(e.settings, settings.Settings{RememberSecrets: true}))
	_, err = run(t, e, &fake{}, "secret", "put", "a.7z", "hunter2")
	require.NoError(t, err)
	out, err := run(t, e, &fake{}, "secret", "get", "a.7z")
	require.NoError(t, err)
	assert.Equal(t, "hunter2\n", out)
	out, err = run(t, e, &fake{}, "secret", "list")
	require.NoError(t, err)
	assert.Equal(t, "a.7z\n", out)
	_, err = run(t, e, &fake{}, "secret", "delete", "a.7z")
	require.NoError(t, err)
	out, err = run(t, e, &fake{}, "secret", "list")
	require.NoError(t, err)
	assert.Empty(t, out)

	t.Setenv("SEVENZIP_VAULT_PASSPHRASE", "")
	_, err = run(t, e, &fake{}, "secret", "list")
	require.Error(t, err)
}
