package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Defacto2/sevenzip/settings"
	"github.com/Defacto2/sevenzip/vault"
	"github.com/spf13/cobra"
)

// passEnv is the environment variable holding the vault passphrase.
const passEnv = "SEVENZIP_VAULT_PASSPHRASE"

var (
	errKey  = errors.New("unknown settings key, use privacyMode, stripMetadata, telemetryLevel or rememberSecrets")
	errPass = errors.New("the vault passphrase is required, set " + passEnv)
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the user settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.log.Debugf("Settings file: %s", a.cfg.Settings)
			return settings.Export(a.out, a.prefs)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Change a user setting",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := set(a.prefs, args[0], args[1])
				if err != nil {
					return err
				}
				if err := settings.Write(a.cfg.Settings, s); err != nil {
					return err
				}
				a.prefs = s
				return settings.Export(a.out, s)
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Replace the user settings with an exported settings file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := settings.ImportFile(args[0], a.cfg.Settings)
				if err != nil {
					return err
				}
				a.prefs = s
				a.log.Infof("Imported settings from %s", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "export FILE",
			Short: "Save a copy of the user settings",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return settings.Write(args[0], a.prefs)
			},
		},
	)
	return cmd
}

// set returns the settings with the named key changed to the value.
func set(s settings.Settings, key, value string) (settings.Settings, error) {
	if key == "telemetryLevel" {
		s.TelemetryLevel = settings.Minimal
		if settings.Telemetry(value) == settings.Full {
			s.TelemetryLevel = settings.Full
		}
		return s, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return s, fmt.Errorf("settings %s: %w", key, err)
	}
	switch key {
	case "privacyMode":
		s.PrivacyMode = b
	case "stripMetadata":
		s.StripMetadata = b
	case "rememberSecrets":
		s.RememberSecrets = b
	default:
		return s, fmt.Errorf("%w: %q", errKey, key)
	}
	return s, nil
}

func (a *app) vault() (*vault.Vault, error) {
	pass := os.Getenv(passEnv)
	if pass == "" {
		return nil, errPass
	}
	return vault.Open(a.cfg.Vault, pass)
}

func newSecretCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the encrypted archive passwords",
		Long: `Secrets are encrypted with the passphrase in the ` + passEnv + `
environment variable. Secrets are only saved when the rememberSecrets setting is true.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "put ID SECRET",
			Short: "Save a secret",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := a.vault()
				if err != nil {
					return err
				}
				if !a.prefs.RememberSecrets {
					a.log.Warn("The rememberSecrets setting is off, the secret was not saved")
				}
				return v.Put(args[0], args[1], a.prefs.RememberSecrets)
			},
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Print a secret",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := a.vault()
				if err != nil {
					return err
				}
				s, ok, err := v.Get(args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("secret %q not found", args[0])
				}
				fmt.Fprintln(a.out, s)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Remove a secret",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := a.vault()
				if err != nil {
					return err
				}
				return v.Delete(args[0])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the ids of the saved secrets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := a.vault()
				if err != nil {
					return err
				}
				ids, err := v.IDs()
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(a.out, id)
				}
				return nil
			},
		},
	)
	return cmd
}
