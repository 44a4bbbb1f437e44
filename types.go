package sevenzip

import (
	"github.com/Defacto2/sevenzip/command"
	"github.com/Defacto2/sevenzip/listing"
)

type (
	Entry  = listing.Entry  // Entry is a file or directory record within an archive.
	Stats  = listing.Stats  // Stats are the totals of an archive listing.
	Format = command.Format // Format is the compression format of an archive.
)

// Listing is the result of the List operation.
type Listing struct {
	Stats   Stats   `json:"stats"`
	Entries []Entry `json:"entries"`
}

// AddPayload are the parameters of the Add operation.
type AddPayload struct {
	ArchivePath   string   // ArchivePath is the archive to create or append.
	Files         []string // Files are the paths to add to the archive, it cannot be empty.
	Format        Format   // Format overrides the format from the archive extension.
	Level         int      // Level is the compression level, it is only used when positive.
	StripMetadata bool     // StripMetadata drops the file timestamps from 7z archives.
}

// ExtractPayload are the parameters of the Extract operation.
type ExtractPayload struct {
	ArchivePath string   // ArchivePath is the archive to extract.
	Destination string   // Destination is the directory to extract to, it is created if missing.
	Entries     []string // Entries to extract, if empty then the whole archive is extracted.
	Overwrite   bool     // Overwrite all existing files without prompting.
}

// DeletePayload are the parameters of the Delete operation.
type DeletePayload struct {
	ArchivePath string   // ArchivePath is the archive to modify.
	Entries     []string // Entries to delete, it cannot be empty.
}

// PreviewPayload are the parameters of the Preview operation.
type PreviewPayload struct {
	ArchivePath string // ArchivePath is the archive to read.
	EntryPath   string // EntryPath is the single entry to extract.
}

// Result is the outcome of an archiver command.
type Result struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Logs    []string `json:"logs"`
}

// PreviewResult is the outcome of the Preview operation.
type PreviewResult struct {
	Result
	ExtractedPath string `json:"extractedPath"` // ExtractedPath is the extracted file within a new temporary directory.
}
