package command

import (
	"strconv"
	"strings"
)

// 7-Zip console commands and switches.
// See https://7-zip.opensource.jp/chm/cmdline/ for the full reference.
const (
	add       = "a"    // a add files to archive
	deleted   = "d"    // d delete files from archive
	list      = "l"    // l list contents of archive
	test      = "t"    // t test integrity of archive
	extract   = "x"    // x eXtract files with full paths
	batch     = "-ba"  // -ba suppress headers, used for non-interactive listings
	level     = "-mx=" // -mx set the compression level
	overwrite = "-aoa" // -aoa overwrite all existing files without prompt
	targetDir = "-o"   // -o set the output directory
	technical = "-slt" // -slt show technical information for the l command
	typeOf    = "-t"   // -t set the type of archive
	yes       = "-y"   // -y assume yes to all queries
)

// 7z format switches that drop the stored file timestamps.
var noTimes = []string{"-mtm-", "-mtc-", "-mta-"}

// Normalize strips any leading path separators from the archive entry name,
// so the name cannot escape the root of the archive when used as a target.
func Normalize(entry string) string {
	return strings.TrimLeft(entry, `/\`)
}

func normalizeAll(entries []string) []string {
	s := make([]string, 0, len(entries))
	for _, e := range entries {
		s = append(s, Normalize(e))
	}
	return s
}

// List returns the arguments to print the technical listing of the archive.
func List(archive string) []string {
	return []string{list, technical, batch, archive}
}

// Add returns the arguments to create or append the files to the archive
// using the compression format.
//
// The compression level is only used when it is a positive value, any range
// checks are left to the encoder. When strip is true and the format is 7z,
// the file timestamps are not stored in the archive.
func Add(archive string, format Format, lvl int, strip bool, files ...string) []string {
	args := []string{add, typeOf + format.String(), yes}
	if lvl > 0 {
		args = append(args, level+strconv.Itoa(lvl))
	}
	if strip && format == SevenZip {
		args = append(args, noTimes...)
	}
	args = append(args, archive)
	return append(args, files...)
}

// Extract returns the arguments to extract the archive with full paths into the
// destination directory. If the entries are empty then all files are extracted.
func Extract(archive, dst string, overwriteAll bool, entries ...string) []string {
	args := []string{extract, targetDir + dst, yes}
	if overwriteAll {
		args = append(args, overwrite)
	}
	args = append(args, archive)
	return append(args, normalizeAll(entries)...)
}

// Delete returns the arguments to remove the entries from the archive.
func Delete(archive string, entries ...string) []string {
	args := []string{deleted, archive}
	return append(args, normalizeAll(entries)...)
}

// Test returns the arguments to test the integrity of the archive.
func Test(archive string) []string {
	return []string{test, archive}
}

// Preview returns the arguments to extract the single entry of the archive
// into the destination directory, which should be unique to the call.
func Preview(archive, dst, entry string) []string {
	return Extract(archive, dst, false, entry)
}
