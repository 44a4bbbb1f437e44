package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/Defacto2/sevenzip"
	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// printJSON writes the value as indented JSON.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("print json %w", err)
	}
	return nil
}

// printResult writes the outcome of an archiver command.
// The archiver logs are only shown in verbose mode and never in privacy mode.
func (a *app) printResult(r sevenzip.Result) error {
	if a.jsonOut {
		if a.prefs.PrivacyMode {
			r.Logs = nil
		}
		return a.printJSON(r)
	}
	if r.Success {
		fmt.Fprintln(a.out, green(r.Message))
	} else {
		fmt.Fprintln(a.out, red(r.Message))
	}
	if a.verbose && !a.prefs.PrivacyMode {
		for _, line := range r.Logs {
			fmt.Fprintln(a.err, faint(line))
		}
	}
	return nil
}

// printListing writes the archive entries as a table followed by the totals.
func (a *app) printListing(l sevenzip.Listing) error {
	if a.jsonOut {
		return a.printJSON(l)
	}
	const padding = 2
	w := tabwriter.NewWriter(a.out, 0, 0, padding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Size\tPacked\tModified\t \tPath\t")
	for _, e := range l.Entries {
		path := e.Path
		if e.IsDir {
			path = yellow(path + "/")
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t \t%s\t\n", e.Size, e.CompressedSize, e.Modified, path)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("print listing %w", err)
	}
	s := l.Stats
	fmt.Fprintf(a.out, "%s (%s): %d entries, %d bytes, %d packed\n",
		s.ArchivePath, s.Format, s.Entries, s.TotalSize, s.TotalCompressedSize)
	return nil
}
