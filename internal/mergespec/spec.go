package mergespec

import (
	"slices"
	"strings"
)

// InputFile pairs a source audio file with the display title used for its
// chapter. Title may be empty when the filename yields no usable stem; the
// planner substitutes its configured fallback in that case.
type InputFile struct {
	Path  string
	Title string
}

// Metadata carries the optional global tags applied to the merged output.
// Zero-valued fields are omitted from the encoder metadata description.
type Metadata struct {
	Title       string
	Subtitle    string
	Album       string
	AlbumArtist string
	Artists     []string
	Genres      []string
	Comment     string
	ReleaseDate string
	CoverPath   string
}

// Request describes one merge: the ordered inputs, the destination, and the
// metadata to embed. The CLI builds it once from flags and config; the
// pipeline treats it as immutable.
type Request struct {
	Inputs     []InputFile
	OutputPath string
	Metadata   Metadata

	// ChapterTitles holds explicit per-chapter title overrides aligned by
	// input index. Empty entries fall through to the input's derived title.
	ChapterTitles []string
}

// NewInputFile derives the display title from the file's stem. When beautify
// is set, separator characters become spaces and the result is title-cased.
func NewInputFile(path string, beautify bool) InputFile {
	title := StemTitle(path)
	if beautify {
		title = BeautifiedTitle(path)
	}
	return InputFile{Path: path, Title: title}
}

// Clone returns a deep copy so callers can retain the request across
// pipeline mutations of their own slices.
func (r Request) Clone() Request {
	out := r
	out.Inputs = slices.Clone(r.Inputs)
	out.ChapterTitles = slices.Clone(r.ChapterTitles)
	out.Metadata.Artists = slices.Clone(r.Metadata.Artists)
	out.Metadata.Genres = slices.Clone(r.Metadata.Genres)
	return out
}

// HasMetadata reports whether any global tag, chapter override, or cover was
// supplied. The orchestrator still runs the tag pass regardless so chapter
// markers are always embedded.
func (m Metadata) HasMetadata() bool {
	return m.Title != "" || m.Subtitle != "" || m.Album != "" || m.AlbumArtist != "" ||
		len(m.Artists) > 0 || len(m.Genres) > 0 || m.Comment != "" ||
		m.ReleaseDate != "" || m.CoverPath != ""
}

// SplitList splits a semicolon-separated CLI value into trimmed entries,
// dropping empties. "A; B;;C" yields ["A" "B" "C"].
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
