package sevenzip

import (
	"fmt"
	"os"

	"github.com/Defacto2/magicnumber"
	"github.com/Defacto2/sevenzip/command"
)

// MagicFormat reads the file signature of the named archive and returns
// the compression format it matches. False is returned if the file cannot
// be read or it is not a 7z, zip or tar archive.
func MagicFormat(name string) (Format, bool) {
	sign, err := magic(name)
	if err != nil {
		return "", false
	}
	switch sign { //nolint:exhaustive
	case magicnumber.X7zCompressArchive:
		return command.SevenZip, true
	case
		magicnumber.PKWAREZip,
		magicnumber.PKWAREZip64,
		magicnumber.PKWAREZipImplode,
		magicnumber.PKWAREZipReduce,
		magicnumber.PKWAREZipShrink:
		return command.Zip, true
	case
		magicnumber.TapeARchive,
		magicnumber.GzipCompressArchive:
		return command.Tar, true
	}
	return "", false
}

func magic(name string) (magicnumber.Signature, error) {
	r, err := os.Open(name)
	if err != nil {
		return magicnumber.Unknown, fmt.Errorf("magic open %w", err)
	}
	defer r.Close()
	sign, err := magicnumber.Archive(r)
	if err != nil {
		return magicnumber.Unknown, fmt.Errorf("magic archive %w", err)
	}
	return sign, nil
}

// statsFormat returns the compression format of the existing archive.
// The filename extension is used first, then the file signature,
// and finally the fallback format.
func statsFormat(name string, fallback Format) Format {
	if f, ok := command.FromExt(name); ok {
		return f
	}
	if f, ok := MagicFormat(name); ok {
		return f
	}
	return command.Resolve(name, "", fallback)
}
