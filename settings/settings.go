// Package settings reads and writes the user preferences file.
//
// The file is a single JSON record. Missing or invalid fields are replaced
// with their defaults when read, so a damaged file never stops the program.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Defacto2/helper"
)

var (
	ErrBinary = errors.New("settings file looks like binary data")
	ErrSyntax = errors.New("settings file is not a json object")
)

// Telemetry is the level of usage reporting.
type Telemetry string

const (
	Minimal Telemetry = "minimal" // Minimal is the default level.
	Full    Telemetry = "full"
)

// Settings are the user preferences.
type Settings struct {
	PrivacyMode     bool      `json:"privacyMode"`
	StripMetadata   bool      `json:"stripMetadata"`
	TelemetryLevel  Telemetry `json:"telemetryLevel"`
	RememberSecrets bool      `json:"rememberSecrets"`
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{TelemetryLevel: Minimal}
}

// Read returns the settings stored in the named file.
// A missing file returns the defaults.
func Read(name string) (Settings, error) {
	b, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("settings read %w", err)
	}
	return Parse(b)
}

// Parse returns the settings in the JSON data.
// Unknown fields are ignored, the telemetry level falls back to minimal
// and the other fields use the truthiness of their values.
func Parse(data []byte) (Settings, error) {
	s := Defaults()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	s.PrivacyMode = truthy(raw["privacyMode"])
	s.StripMetadata = truthy(raw["stripMetadata"])
	s.RememberSecrets = truthy(raw["rememberSecrets"])
	if lvl, ok := raw["telemetryLevel"].(string); ok && Telemetry(lvl) == Full {
		s.TelemetryLevel = Full
	}
	return s, nil
}

// truthy returns false for a missing, null, false, zero or empty string value.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	}
	return true
}

// Marshal returns the canonical file encoding of the settings.
func (s Settings) Marshal() ([]byte, error) {
	if s.TelemetryLevel != Full {
		s.TelemetryLevel = Minimal
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("settings marshal %w", err)
	}
	return append(b, '\n'), nil
}

// Write saves the settings to the named file, creating any parent directories.
// The file is left untouched when it already holds the same settings in any
// layout, so writing back the settings that were read changes nothing on disk.
func Write(name string, s Settings) error {
	b, err := s.Marshal()
	if err != nil {
		return err
	}
	if old, err := os.ReadFile(name); err == nil && same(old, b) {
		return nil
	}
	const dirMode = 0o755
	if err := os.MkdirAll(filepath.Dir(name), dirMode); err != nil {
		return fmt.Errorf("settings write dir %w", err)
	}
	if err := os.WriteFile(name, b, helper.WriteWriteRead); err != nil {
		return fmt.Errorf("settings write %w", err)
	}
	return nil
}

// same returns true when the existing file data parses to the settings
// of the canonical encoding.
func same(old, canonical []byte) bool {
	if bytes.Equal(old, canonical) {
		return true
	}
	if len(bytes.TrimSpace(old)) == 0 || Binary(old) {
		return false
	}
	a, err := Parse(old)
	if err != nil {
		return false
	}
	b, err := Parse(canonical)
	return err == nil && a == b
}

// sniffSize is the number of bytes checked by Binary.
const sniffSize = 1024

// Binary returns true if the data looks like a binary file rather than text.
// That is if the first 1KB has a NUL byte, or more than 30% of it are
// control characters other than tab, carriage return and newline.
func Binary(data []byte) bool {
	head := data[:min(len(data), sniffSize)]
	if len(head) == 0 {
		return false
	}
	ctrl := 0
	for _, c := range head {
		switch {
		case c == 0:
			return true
		case c == '\t', c == '\n', c == '\r':
		case c < 0x20, c == 0x7f:
			ctrl++
		}
	}
	const threshold = 0.3
	return float64(ctrl)/float64(len(head)) > threshold
}

// Import reads the settings from r, which is usually a file chosen by the user.
// Binary-looking data is rejected before parsing.
func Import(r io.Reader) (Settings, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Defaults(), fmt.Errorf("settings import %w", err)
	}
	if Binary(b) {
		return Defaults(), ErrBinary
	}
	return Parse(b)
}

// ImportFile imports the named file and writes the result to the dest settings file.
func ImportFile(name, dest string) (Settings, error) {
	f, err := os.Open(name)
	if err != nil {
		return Defaults(), fmt.Errorf("settings import %w", err)
	}
	defer f.Close()
	s, err := Import(f)
	if err != nil {
		return s, err
	}
	return s, Write(dest, s)
}

// Export writes the canonical encoding of the settings to w.
func Export(w io.Writer, s Settings) error {
	b, err := s.Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("settings export %w", err)
	}
	return nil
}
