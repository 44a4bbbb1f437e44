// Package config loads the command line configuration using viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Defacto2/sevenzip/command"
	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	app       = "sevenzip"
	envPrefix = "SEVENZIP"
)

// Configuration keys.
const (
	KeyProgram  = "program"
	KeyFormat   = "format"
	KeyTempDir  = "tempdir"
	KeySettings = "settings"
	KeyVault    = "vault"
)

// Config is the resolved configuration.
type Config struct {
	Program  string         // Program is the 7-Zip console program name or path.
	Format   command.Format // Format is the default compression format.
	TempDir  string         // TempDir is the parent directory for previews.
	Settings string         // Settings is the path of the user preferences file.
	Vault    string         // Vault is the path of the secrets file.
	File     string         // File is the config file used, if any.
}

// New returns a viper instance with the defaults, the environment variables
// and the config file paths. A named file replaces the search paths.
func New(name string) *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyProgram, "")
	v.SetDefault(KeyFormat, command.SevenZip.String())
	v.SetDefault(KeyTempDir, "")
	v.SetDefault(KeySettings, filepath.Join(xdg.ConfigHome, app, "settings.json"))
	v.SetDefault(KeyVault, filepath.Join(xdg.DataHome, app, "vault.json"))

	// Environment variables, such as SEVENZIP_PROGRAM
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if name != "" {
		v.SetConfigFile(name)
		return v
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range []string{
		".",
		filepath.Join(xdg.ConfigHome, app),
		filepath.Join("/etc", app),
	} {
		v.AddConfigPath(os.ExpandEnv(path))
	}
	return v
}

// Load reads the config file, if one exists, and returns the resolved configuration.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config read %w", err)
		}
		// config file not found, use the defaults
	}
	c := Config{
		Program:  v.GetString(KeyProgram),
		Format:   command.ParseFormat(v.GetString(KeyFormat)),
		TempDir:  v.GetString(KeyTempDir),
		Settings: v.GetString(KeySettings),
		Vault:    v.GetString(KeyVault),
		File:     v.ConfigFileUsed(),
	}
	if c.Format == "" {
		c.Format = command.SevenZip
	}
	return c, nil
}
