// Package listing parses the technical listing printed by the 7-Zip
// console list command using the -slt switch.
//
// The listing is a sequence of blocks separated by blank lines.
// Each block is made up of "Key = Value" lines, for example:
//
//	Path = docs/readme.txt
//	Folder = -
//	Size = 120
//	Packed Size = 64
//	Modified = 2025-02-15 00:21:10
//	Attributes = A
//
// The first block describes the archive itself and is excluded from the entries.
package listing

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Keys used in the technical listing.
const (
	KeyPath       = "Path"
	KeyFolder     = "Folder"
	KeySize       = "Size"
	KeyPacked     = "Packed Size"
	KeyModified   = "Modified"
	KeyAttributes = "Attributes"
	KeyType       = "Type"
)

const sep = " = "

// Block is a single record of the listing, a map of the key and value pairs.
// The keys printed can differ between versions of the archiver program,
// so the accessors return defaults for any missing keys.
type Block map[string]string

// Has returns true if the key exists in the block.
func (b Block) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// String returns the value of the key or an empty string.
func (b Block) String(key string) string {
	return b[key]
}

// Int returns the base-10 integer value of the key.
// A missing, non-numeric or negative value returns 0.
func (b Block) Int(key string) int64 {
	i, err := strconv.ParseInt(strings.TrimSpace(b[key]), 10, 64)
	if err != nil || i < 0 {
		return 0
	}
	return i
}

// Blocks splits the listing text into blocks on the blank lines.
// Lines that are not in the "Key = Value" form are ignored,
// and blocks without any key are discarded.
func Blocks(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	blocks := []Block{}
	b := Block{}
	flush := func() {
		if len(b) > 0 {
			blocks = append(blocks, b)
		}
		b = Block{}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		key, val, found := strings.Cut(line, sep)
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		b[key] = val
	}
	flush()
	return blocks
}

// Entry is a single file or directory record within an archive.
type Entry struct {
	ID             string `json:"id"`             // ID is the unique slash-normalized path of the entry.
	Path           string `json:"path"`           // Path is the slash-normalized path within the archive.
	Name           string `json:"name"`           // Name is the last element of the path.
	Size           int64  `json:"size"`           // Size is the uncompressed size in bytes.
	CompressedSize int64  `json:"compressedSize"` // CompressedSize is the packed size in bytes.
	Modified       string `json:"modified"`       // Modified is the unparsed modification timestamp.
	IsDir          bool   `json:"isDirectory"`    // IsDir is true when the entry is a directory.
}

// Parse returns the archive entries found in the listing text.
// The block describing the named archive is skipped, as are any blocks
// without a usable Path. Entries that share a path are reported once,
// with the later block replacing the earlier one.
func Parse(text, archive string) []Entry {
	entries := []Entry{}
	index := map[string]int{}
	for _, b := range Blocks(text) {
		e, ok := NewEntry(b, archive)
		if !ok {
			continue
		}
		if i, dupe := index[e.ID]; dupe {
			entries[i] = e
			continue
		}
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	return entries
}

// NewEntry returns the entry described by the block.
// False is returned if the block has no Path or it describes the named archive.
func NewEntry(b Block, archive string) (Entry, bool) {
	p := b.String(KeyPath)
	if strings.TrimSpace(p) == "" || self(p, archive) {
		return Entry{}, false
	}
	path := strings.ReplaceAll(p, `\`, "/")
	return Entry{
		ID:             path,
		Path:           path,
		Name:           Name(p),
		Size:           b.Int(KeySize),
		CompressedSize: b.Int(KeyPacked),
		Modified:       b.String(KeyModified),
		IsDir:          Folder(b),
	}, true
}

// self returns true if the path is the archive itself.
func self(path, archive string) bool {
	if archive == "" {
		return false
	}
	return path == archive || filepath.Clean(path) == filepath.Clean(archive)
}

// Name returns the last non-empty element of the path,
// using both forward and back slashes as separators.
// A path without any separators is returned as is.
func Name(path string) string {
	elems := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(elems) == 0 {
		return path
	}
	return elems[len(elems)-1]
}

// Folder returns true if the block describes a directory.
//
// The Folder value is a flag string, where either a "+" or a "D" attribute
// marks a directory. Older versions of the archiver do not print Folder,
// so the D attribute in Attributes is used instead.
func Folder(b Block) bool {
	if b.Has(KeyFolder) {
		return strings.ContainsAny(b.String(KeyFolder), "+D")
	}
	return strings.Contains(b.String(KeyAttributes), "D")
}

// ArchiveType returns the Type value of the first block that has one,
// which is the format detected by the archiver, such as "7z" or "zip".
func ArchiveType(text string) string {
	for _, b := range Blocks(text) {
		if t := b.String(KeyType); t != "" {
			return t
		}
	}
	return ""
}
