package listing

// Stats are the totals of an archive listing.
type Stats struct {
	ArchivePath         string `json:"archivePath"`         // ArchivePath is the absolute path of the archive.
	Format              string `json:"format"`              // Format is the compression format of the archive.
	Entries             int    `json:"entries"`             // Entries is the number of entries listed.
	TotalSize           int64  `json:"totalSize"`           // TotalSize is the sum of the entry sizes.
	TotalCompressedSize int64  `json:"totalCompressedSize"` // TotalCompressedSize is the sum of the packed sizes.
}

// Summarize returns the totals of the entries.
//
// Directory entries are summed the same as files, they are usually zero
// but some archive formats report a size for directory records.
func Summarize(archive, format string, entries ...Entry) Stats {
	s := Stats{
		ArchivePath: archive,
		Format:      format,
		Entries:     len(entries),
	}
	for _, e := range entries {
		s.TotalSize += e.Size
		s.TotalCompressedSize += e.CompressedSize
	}
	return s
}
