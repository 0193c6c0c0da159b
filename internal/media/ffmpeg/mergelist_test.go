package ffmpeg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audiobind/internal/mergespec"
	"audiobind/internal/services"
)

func TestWriteMergeListPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	inputs := []mergespec.InputFile{
		{Path: filepath.Join(dir, "01-intro.mp3")},
		{Path: filepath.Join(dir, "02-middle.mp3")},
		{Path: filepath.Join(dir, "03-end.mp3")},
	}
	listPath := filepath.Join(dir, "mergelist.txt")

	if err := WriteMergeList(listPath, inputs); err != nil {
		t.Fatalf("WriteMergeList returned error: %v", err)
	}

	data, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatalf("reading merge list: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 entries, got %d: %q", len(lines), string(data))
	}
	for i, input := range inputs {
		want := "file '" + input.Path + "'"
		if lines[i] != want {
			t.Fatalf("line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestWriteMergeListResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "mergelist.txt")

	if err := WriteMergeList(listPath, []mergespec.InputFile{{Path: "track.mp3"}}); err != nil {
		t.Fatalf("WriteMergeList returned error: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("resolving working directory: %v", err)
	}
	data, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatalf("reading merge list: %v", err)
	}
	want := "file '" + filepath.Join(cwd, "track.mp3") + "'\n"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, string(data))
	}
}

func TestWriteMergeListEscapesSingleQuotes(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "mergelist.txt")
	input := mergespec.InputFile{Path: filepath.Join(dir, "it's here.mp3")}

	if err := WriteMergeList(listPath, []mergespec.InputFile{input}); err != nil {
		t.Fatalf("WriteMergeList returned error: %v", err)
	}

	data, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatalf("reading merge list: %v", err)
	}
	if !strings.Contains(string(data), `it'\''s here.mp3`) {
		t.Fatalf("expected escaped quote in %q", string(data))
	}
}

func TestWriteMergeListRejectsEmptyInputs(t *testing.T) {
	err := WriteMergeList(filepath.Join(t.TempDir(), "mergelist.txt"), nil)
	if err == nil {
		t.Fatal("expected empty input error")
	}
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestWriteMergeListReportsWriteFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir", "mergelist.txt")
	err := WriteMergeList(missing, []mergespec.InputFile{{Path: "track.mp3"}})
	if err == nil {
		t.Fatal("expected write failure error")
	}
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("expected encode error, got %v", err)
	}
}
