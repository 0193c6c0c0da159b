package ffmeta

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"audiobind/internal/chapters"
	"audiobind/internal/mergespec"
	"audiobind/internal/services"
)

// Header is the mandatory first line of an FFMETADATA1 document.
const Header = ";FFMETADATA1"

// listSeparator joins multi-value fields (artists, genres) into the single
// string an ID3v2 text frame carries.
const listSeparator = "; "

// Reserved characters are escaped with a backslash. The replacer handles
// the backslash itself in the same pass, so escaped output never re-expands.
var escaper = strings.NewReplacer(`\`, `\\`, `=`, `\=`, `;`, `\;`, `#`, `\#`)

// Compose renders the metadata description for a merge. Global tags appear
// only for supplied fields; absent fields are omitted entirely. Lowercase
// keys map through ffmpeg's ID3v2 tag conversion; the four-letter uppercase
// keys (TIT3 subtitle, TDRL release date) are written as raw ID3v2.4 frames.
func Compose(meta mergespec.Metadata, plan []chapters.Chapter) (string, error) {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')

	fields := []struct {
		key   string
		value string
	}{
		{"title", meta.Title},
		{"TIT3", meta.Subtitle},
		{"album", meta.Album},
		{"album_artist", meta.AlbumArtist},
		{"artist", strings.Join(meta.Artists, listSeparator)},
		{"genre", strings.Join(meta.Genres, listSeparator)},
		{"comment", meta.Comment},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		escaped, err := escapeValue(field.key, field.value)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s=%s\n", field.key, escaped)
	}

	if meta.ReleaseDate != "" {
		date, err := normalizeReleaseDate(meta.ReleaseDate)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "TDRL=%s\n", date)
	}

	for _, chapter := range plan {
		title, err := escapeValue(fmt.Sprintf("chapter %d title", chapter.Index), chapter.Title)
		if err != nil {
			return "", err
		}
		b.WriteString("[CHAPTER]\n")
		b.WriteString("TIMEBASE=1/1000\n")
		fmt.Fprintf(&b, "START=%d\n", chapter.Start.Milliseconds())
		fmt.Fprintf(&b, "END=%d\n", chapter.End.Milliseconds())
		fmt.Fprintf(&b, "title=%s\n", title)
	}

	return b.String(), nil
}

func escapeValue(field, value string) (string, error) {
	for _, r := range value {
		if unicode.IsControl(r) {
			return "", services.Wrap(services.ErrMetadataEncoding, "ffmeta", "compose",
				fmt.Sprintf("%s contains control characters", field), nil)
		}
	}
	return escaper.Replace(value), nil
}

func normalizeReleaseDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return "", services.Wrap(services.ErrMetadataEncoding, "ffmeta", "compose",
			fmt.Sprintf("release date %q is not YYYY-MM-DD", value), nil)
	}
	return trimmed, nil
}
