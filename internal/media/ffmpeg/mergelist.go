package ffmpeg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audiobind/internal/mergespec"
	"audiobind/internal/services"
)

// WriteMergeList renders a concat-demuxer list for inputs and writes it to
// path. Entries keep the caller's ordering; every path is made absolute so
// the list works regardless of ffmpeg's working directory.
func WriteMergeList(path string, inputs []mergespec.InputFile) error {
	if len(inputs) == 0 {
		return services.Wrap(services.ErrInvalidInput, "ffmpeg", "mergelist", "no input files", nil)
	}

	var builder strings.Builder
	for _, input := range inputs {
		abs, err := filepath.Abs(input.Path)
		if err != nil {
			return services.Wrap(services.ErrEncode, "ffmpeg", "mergelist", input.Path, err)
		}
		fmt.Fprintf(&builder, "file '%s'\n", escapeListPath(abs))
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return services.Wrap(services.ErrEncode, "ffmpeg", "mergelist", path, err)
	}
	return nil
}

// escapeListPath closes the quote, emits an escaped quote, and reopens,
// which is the only quoting the concat demuxer accepts.
func escapeListPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
