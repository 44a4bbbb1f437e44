package command

import (
	"path/filepath"
	"strings"
)

// Format is the compression format of an archive written by the add command.
type Format string

const (
	SevenZip Format = "7z"  // SevenZip is the 7-Zip format by Igor Pavlov.
	Zip      Format = "zip" // Zip is Phil Katz's ZIP format.
	Tar      Format = "tar" // Tar is the Tape ARchive format by AT&T Bell Labs.
)

// Valid returns true if the format is a supported compression format.
func (f Format) Valid() bool {
	switch f {
	case SevenZip, Zip, Tar:
		return true
	}
	return false
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat returns the format named by s, which is case-insensitive
// and may include a leading dot. An unknown name returns an empty Format.
func ParseFormat(s string) Format {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	if !f.Valid() {
		return ""
	}
	return f
}

// Resolve returns the compression format for the named archive.
// An explicit and valid format always wins, otherwise the filename extension
// is used. An unrecognized or missing extension returns the fallback format,
// and if that is also invalid then SevenZip is returned.
func Resolve(name string, explicit, fallback Format) Format {
	if explicit.Valid() {
		return explicit
	}
	if f, ok := FromExt(name); ok {
		return f
	}
	if fallback.Valid() {
		return fallback
	}
	return SevenZip
}

// FromExt returns the format for the filename extension of name.
func FromExt(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		return Zip, true
	case ".7z":
		return SevenZip, true
	case ".tar", ".gz", ".tgz":
		return Tar, true
	}
	return "", false
}
