package cli

import (
	"errors"
	"fmt"

	"github.com/Defacto2/sevenzip"
	"github.com/Defacto2/sevenzip/command"
	"github.com/spf13/cobra"
)

// errFailed is returned by the test command for a damaged archive
// so the program exits with an error status.
var errFailed = errors.New(sevenzip.TestFailed)

func newListCmd(a *app) *cobra.Command {
	var readme bool
	cmd := &cobra.Command{
		Use:     "list ARCHIVE",
		Aliases: []string{"l", "ls"},
		Short:   "List the contents of an archive",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.engine.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.log.Debugf("Listed %d entries", len(l.Entries))
			if readme {
				name := sevenzip.Readme(l.Stats.ArchivePath, l.Entries...)
				if name == "" {
					a.log.Warn("No readme or text entry found")
					return nil
				}
				fmt.Fprintln(a.out, name)
				return nil
			}
			return a.printListing(l)
		},
	}
	cmd.Flags().BoolVar(&readme, "readme", false, "Only print the best readme or text entry to preview")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var (
		format string
		level  int
		strip  bool
	)
	cmd := &cobra.Command{
		Use:     "add ARCHIVE FILE...",
		Aliases: []string{"a"},
		Short:   "Create or append files to an archive",
		Long: `Add creates the archive if it does not exist, or appends the files to it.
The archive format is taken from the filename extension unless --format is used.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := command.ParseFormat(format)
			if format != "" && f == "" {
				return &sevenzip.Error{
					Kind: sevenzip.InvalidInput, Op: "add",
					Message: "unknown format " + format + ", use 7z, zip or tar",
				}
			}
			r, err := a.engine.Add(cmd.Context(), sevenzip.AddPayload{
				ArchivePath:   args[0],
				Files:         args[1:],
				Format:        f,
				Level:         level,
				StripMetadata: strip || a.prefs.StripMetadata,
			})
			if err != nil {
				return err
			}
			return a.printResult(r)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "t", "", "Archive format: 7z, zip or tar")
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Compression level, 0 uses the archiver default")
	cmd.Flags().BoolVar(&strip, "strip", false, "Do not store file timestamps in 7z archives")
	return cmd
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		dst       string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:     "extract ARCHIVE [ENTRY...]",
		Aliases: []string{"x"},
		Short:   "Extract the archive or the named entries",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.engine.Extract(cmd.Context(), sevenzip.ExtractPayload{
				ArchivePath: args[0],
				Destination: dst,
				Entries:     args[1:],
				Overwrite:   overwrite,
			})
			if err != nil {
				return err
			}
			return a.printResult(r)
		},
	}
	cmd.Flags().StringVarP(&dst, "output", "o", ".", "Destination directory, created if missing")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Overwrite existing files")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ARCHIVE ENTRY...",
		Aliases: []string{"d", "rm"},
		Short:   "Delete entries from an archive",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.engine.Delete(cmd.Context(), sevenzip.DeletePayload{
				ArchivePath: args[0],
				Entries:     args[1:],
			})
			if err != nil {
				return err
			}
			return a.printResult(r)
		},
	}
}

func newTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "test ARCHIVE",
		Aliases: []string{"t"},
		Short:   "Test the integrity of an archive",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.engine.Test(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.printResult(r); err != nil {
				return err
			}
			if !r.Success {
				return errFailed
			}
			return nil
		},
	}
}

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview ARCHIVE [ENTRY]",
		Short: "Extract a single entry to a temporary directory and print its path",
		Long: `Preview extracts the entry into a new temporary directory and prints the
path of the extracted file. The directory is not removed.

If no entry is given, the best readme or text entry of the archive is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := ""
			if len(args) > 1 {
				entry = args[1]
			} else {
				l, err := a.engine.List(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				entry = sevenzip.Readme(l.Stats.ArchivePath, l.Entries...)
			}
			r, err := a.engine.Preview(cmd.Context(), sevenzip.PreviewPayload{
				ArchivePath: args[0],
				EntryPath:   entry,
			})
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(r)
			}
			a.log.Debug(r.Message)
			fmt.Fprintln(a.out, r.ExtractedPath)
			return nil
		},
	}
}
