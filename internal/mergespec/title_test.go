package mergespec

import "testing"

func TestStemTitle(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/audio/01_intro.mp3", "01_intro"},
		{"chapter two.mp3", "chapter two"},
		{"/deep/nested/dir/file.tar.gz", "file.tar"},
		{"noext", "noext"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StemTitle(tt.path); got != tt.want {
			t.Fatalf("StemTitle(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestBeautifiedTitleCleansSeparators(t *testing.T) {
	title := BeautifiedTitle("/books/Some_Sample-Title (2021).mp3")
	if title != "Some Sample Title 2021" {
		t.Fatalf("unexpected title: %q", title)
	}
}

func TestBeautifiedTitleCollapsesRuns(t *testing.T) {
	title := BeautifiedTitle("part__one--two.mp3")
	if title != "Part One Two" {
		t.Fatalf("unexpected title: %q", title)
	}
}

func TestBeautifiedTitleEmptyWhenNothingUsable(t *testing.T) {
	if got := BeautifiedTitle("___.mp3"); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
	if got := BeautifiedTitle(""); got != "" {
		t.Fatalf("expected empty title for empty path, got %q", got)
	}
}
