package chapters

import (
	"errors"
	"testing"
	"time"

	"audiobind/internal/mergespec"
	"audiobind/internal/services"
)

func TestPlanCumulativeBoundaries(t *testing.T) {
	inputs := []mergespec.InputFile{
		{Path: "/a/one.mp3", Title: "one"},
		{Path: "/a/two.mp3", Title: "two"},
		{Path: "/a/three.mp3", Title: "three"},
	}
	durations := []time.Duration{
		60 * time.Second,
		45*time.Second + 500*time.Millisecond,
		120*time.Second + 250*time.Millisecond,
	}

	plan, err := Plan(inputs, durations, Options{})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(plan) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(plan))
	}

	want := []struct {
		index      int
		start, end time.Duration
	}{
		{0, 0, 60 * time.Second},
		{1, 60 * time.Second, 105*time.Second + 500*time.Millisecond},
		{2, 105*time.Second + 500*time.Millisecond, 225*time.Second + 750*time.Millisecond},
	}
	for i, w := range want {
		got := plan[i]
		if got.Index != w.index {
			t.Fatalf("chapter %d index = %d, want %d", i, got.Index, w.index)
		}
		if got.Start != w.start {
			t.Fatalf("chapter %d start = %v, want %v", i, got.Start, w.start)
		}
		if got.End != w.end {
			t.Fatalf("chapter %d end = %v, want %v", i, got.End, w.end)
		}
	}
	if Total(plan) != 225*time.Second+750*time.Millisecond {
		t.Fatalf("unexpected total: %v", Total(plan))
	}
}

func TestPlanContiguousForManyInputs(t *testing.T) {
	const count = 10000
	inputs := make([]mergespec.InputFile, count)
	durations := make([]time.Duration, count)
	for i := range inputs {
		inputs[i] = mergespec.InputFile{Path: "/a/x.mp3", Title: "x"}
		durations[i] = 100 * time.Millisecond
	}

	plan, err := Plan(inputs, durations, Options{})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if plan[0].Start != 0 {
		t.Fatalf("first chapter starts at %v", plan[0].Start)
	}
	for i := 1; i < len(plan); i++ {
		if plan[i].Start != plan[i-1].End {
			t.Fatalf("gap between chapter %d and %d: %v != %v", i-1, i, plan[i-1].End, plan[i].Start)
		}
	}
	if got, want := Total(plan), time.Duration(count)*100*time.Millisecond; got != want {
		t.Fatalf("accumulated total = %v, want %v", got, want)
	}
}

func TestPlanSingleInput(t *testing.T) {
	plan, err := Plan(
		[]mergespec.InputFile{{Path: "/a/only.mp3", Title: "only"}},
		[]time.Duration{42 * time.Second},
		Options{},
	)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(plan))
	}
	if plan[0].Start != 0 || plan[0].End != 42*time.Second {
		t.Fatalf("unexpected span: %v..%v", plan[0].Start, plan[0].End)
	}
}

func TestPlanRejectsEmptyInputs(t *testing.T) {
	_, err := Plan(nil, nil, Options{})
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestPlanRejectsLengthMismatch(t *testing.T) {
	inputs := []mergespec.InputFile{{Path: "/a/one.mp3"}, {Path: "/a/two.mp3"}}
	_, err := Plan(inputs, []time.Duration{time.Second}, Options{})
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestPlanRejectsExcessOverrides(t *testing.T) {
	inputs := []mergespec.InputFile{{Path: "/a/one.mp3", Title: "one"}}
	opts := Options{TitleOverrides: []string{"One", "Two"}}
	_, err := Plan(inputs, []time.Duration{time.Second}, opts)
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestPlanRejectsNegativeDuration(t *testing.T) {
	inputs := []mergespec.InputFile{{Path: "/a/one.mp3", Title: "one"}}
	_, err := Plan(inputs, []time.Duration{-time.Second}, Options{})
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestPlanTitleSelection(t *testing.T) {
	inputs := []mergespec.InputFile{
		{Path: "/a/01_intro.mp3", Title: "01_intro"},
		{Path: "/a/02.mp3", Title: "02"},
		{Path: "/a/___.mp3", Title: ""},
	}
	durations := []time.Duration{time.Second, time.Second, time.Second}
	opts := Options{
		TitleOverrides: []string{"Opening", ""},
		TitleFallback:  "Part %d",
	}

	plan, err := Plan(inputs, durations, opts)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}

	if plan[0].Title != "Opening" {
		t.Fatalf("expected override title, got %q", plan[0].Title)
	}
	if plan[1].Title != "02" {
		t.Fatalf("expected derived title, got %q", plan[1].Title)
	}
	if plan[2].Title != "Part 3" {
		t.Fatalf("expected fallback title, got %q", plan[2].Title)
	}
}

func TestPlanZeroDurationChapter(t *testing.T) {
	inputs := []mergespec.InputFile{
		{Path: "/a/silence.mp3", Title: "silence"},
		{Path: "/a/talk.mp3", Title: "talk"},
	}
	durations := []time.Duration{0, 5 * time.Second}

	plan, err := Plan(inputs, durations, Options{})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if plan[0].Start != 0 || plan[0].End != 0 {
		t.Fatalf("zero-length chapter should collapse: %v..%v", plan[0].Start, plan[0].End)
	}
	if plan[1].Start != 0 || plan[1].End != 5*time.Second {
		t.Fatalf("unexpected second span: %v..%v", plan[1].Start, plan[1].End)
	}
}

func TestTotalEmptyPlan(t *testing.T) {
	if Total(nil) != 0 {
		t.Fatalf("expected zero total for empty plan")
	}
}
