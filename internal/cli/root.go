// Package cli provides the sevenzip command line interface.
package cli

import (
	"io"

	"github.com/Defacto2/sevenzip"
	"github.com/Defacto2/sevenzip/command"
	"github.com/Defacto2/sevenzip/internal/config"
	"github.com/Defacto2/sevenzip/process"
	"github.com/Defacto2/sevenzip/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is the state shared by the subcommands once the configuration is loaded.
type app struct {
	cfg      config.Config
	prefs    settings.Settings
	engine   *sevenzip.Engine
	log      *logrus.Logger
	out      io.Writer
	err      io.Writer
	cfgFile  string
	program  string
	verbose  bool
	jsonOut  bool
	engineOp []sevenzip.Option
}

// NewRootCmd creates the root command.
// The options are passed to the archive engine, which tests use to replace the archiver.
func NewRootCmd(opts ...sevenzip.Option) *cobra.Command {
	a := &app{log: logrus.New(), engineOp: opts}
	rootCmd := &cobra.Command{
		Use:   "sevenzip",
		Short: "List, create, extract and test archives using the 7-Zip console",
		Long: `Sevenzip drives the 7-Zip console program to inspect and modify archives.

Supported archive formats for creation:
  - 7z
  - zip
  - tar

Any format readable by 7-Zip can be listed, extracted and tested.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out, a.err = cmd.OutOrStdout(), cmd.ErrOrStderr()
			// Setup logging
			a.log.SetOutput(a.err)
			a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if a.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			} else {
				a.log.SetLevel(logrus.InfoLevel)
			}
			return a.setup()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "Config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&a.program, "program", "p", "", "7-Zip console program name or path")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print the results as JSON")

	// Add subcommands
	rootCmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newExtractCmd(a),
		newDeleteCmd(a),
		newTestCmd(a),
		newPreviewCmd(a),
		newSettingsCmd(a),
		newSecretCmd(a),
	)
	return rootCmd
}

// setup loads the configuration, the user settings and creates the engine.
func (a *app) setup() error {
	cfg, err := config.Load(config.New(a.cfgFile))
	if err != nil {
		return err
	}
	if a.program != "" {
		cfg.Program = a.program
	}
	if cfg.Program == "" {
		prog, err := process.Lookup(command.Programs()...)
		if err != nil {
			a.log.Debugf("%s, using %s", err, command.Zip7)
			prog = command.Zip7
		}
		cfg.Program = prog
	}
	a.cfg = cfg
	if cfg.File != "" {
		a.log.Debugf("Config file: %s", cfg.File)
	}
	prefs, err := settings.Read(cfg.Settings)
	if err != nil {
		a.log.Warnf("Using default settings: %v", err)
	}
	a.prefs = prefs

	opts := []sevenzip.Option{sevenzip.WithLogger(a.log)}
	opts = append(opts, a.engineOp...)
	a.engine = sevenzip.New(sevenzip.Config{
		Program:       cfg.Program,
		DefaultFormat: cfg.Format,
		TempDir:       cfg.TempDir,
	}, opts...)
	a.log.Debugf("Archiver program: %s", cfg.Program)
	return nil
}
