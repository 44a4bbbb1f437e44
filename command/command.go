// Package command lists the known 7-Zip console program names and builds
// the argument vectors passed to them.
//
// The builders never touch the filesystem, callers are expected to check
// the archive exists and prepare any destination directories.
package command

// A note about p7zip: On Linux the legacy p7zip package installs the 7z and 7za
// programs which are unmaintained. The 7zz program is the official 7-Zip console
// for Linux and is the default. The legacy names are only used as a fallback.

const (
	Zip7       = "7zz" // Zip7 is the official 7-Zip console command.
	Zip7Legacy = "7z"  // Zip7Legacy is the p7zip or Windows 7-Zip command.
	Zip7Alone  = "7za" // Zip7Alone is the standalone 7-Zip console command.
)

// Programs returns the 7-Zip console program names in order of preference.
func Programs() []string {
	return []string{Zip7, Zip7Legacy, Zip7Alone}
}
