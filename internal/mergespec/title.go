package mergespec

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StemTitle returns the filename without directory or extension, the default
// chapter title for an input.
func StemTitle(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// BeautifiedTitle cleans the stem for display: separator characters collapse
// to single spaces, everything else non-alphanumeric is dropped, and the
// result is title-cased. Returns "" when nothing usable remains.
func BeautifiedTitle(path string) string {
	stem := StemTitle(path)
	if stem == "" {
		return ""
	}
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range stem {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return ""
	}
	return cases.Title(language.Und).String(title)
}
