package sevenzip

// Package file find.go contains the preview candidate search and ranking functions.

import (
	"cmp"
	"path"
	"slices"
	"strings"
)

// Finds are a collection of matched entry paths and their usability ranking.
type Finds map[string]Usability

// BestMatch returns the most usable entry path from a collection of finds.
// Equal rankings are ordered by the shortest and then alphabetical path.
func (f Finds) BestMatch() string {
	if len(f) == 0 {
		return ""
	}
	type match struct {
		Path      string
		Usability Usability
	}
	matches := make([]match, 0, len(f))
	for k, v := range f {
		matches = append(matches, match{k, v})
	}
	slices.SortFunc(matches, func(a, b match) int {
		return cmp.Or(
			cmp.Compare(a.Usability, b.Usability),
			cmp.Compare(len(a.Path), len(b.Path)),
			cmp.Compare(a.Path, b.Path),
		)
	})
	return matches[0].Path
}

// Readme returns the path of the best text entry to preview, such as a README,
// an NFO or a FILE_ID.DIZ. The archive is the archive filename and is used to
// match entries sharing the same base name. An empty string is returned if there
// are no text entries.
//
// The matches are case-insensitive as many archives are created on
// Windows or MS-DOS file systems.
func Readme(archive string, entries ...Entry) string {
	finds := make(Finds)
	base := strings.ToLower(strings.TrimSuffix(path.Base(toSlash(archive)), path.Ext(archive)))
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		name := strings.ToLower(e.Name)
		switch path.Ext(name) {
		case diz, md, nfo, txt:
			// okay
		default:
			if name != "readme" {
				continue
			}
		}
		finds = matches(e.Path, name, base, finds)
	}
	return finds.BestMatch()
}

const (
	diz = ".diz"
	md  = ".md"
	nfo = ".nfo"
	txt = ".txt"
)

func toSlash(name string) string {
	return strings.ReplaceAll(name, `\`, "/")
}

func matches(entry, name, base string, finds Finds) Finds {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	switch {
	case stem == "readme":
		// readme, readme.txt, readme.md
		finds[entry] = Lvl1
	case name == base+nfo:
		// [archive name].nfo
		finds[entry] = Lvl2
	case name == base+txt:
		// [archive name].txt
		finds[entry] = Lvl3
	case ext == nfo:
		// [random].nfo
		finds[entry] = Lvl4
	case name == "file_id.diz":
		// BBS file description
		finds[entry] = Lvl5
	case ext == md:
		finds[entry] = Lvl6
	case ext == txt:
		// [random].txt
		finds[entry] = Lvl7
	case ext == diz:
		// [random].diz
		finds[entry] = Lvl8
	}
	return finds
}

// Usability of search, entry name pattern matches.
type Usability uint

const (
	// Lvl1 is the highest usability.
	Lvl1 Usability = iota + 1
	Lvl2
	Lvl3
	Lvl4
	Lvl5
	Lvl6
	Lvl7
	Lvl8
	Lvl9 // Lvl9 is the least usable.
)
