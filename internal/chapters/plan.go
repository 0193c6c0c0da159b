package chapters

import (
	"fmt"
	"strings"
	"time"

	"audiobind/internal/mergespec"
	"audiobind/internal/services"
)

// Chapter marks one input file's span in the merged output. Index is
// 0-based and matches the input order.
type Chapter struct {
	Index int
	Title string
	Start time.Duration
	End   time.Duration
}

// Options adjusts title selection during planning.
type Options struct {
	// TitleOverrides supplies explicit chapter titles aligned by input
	// index. Empty entries fall through to the input's derived title.
	TitleOverrides []string
	// TitleFallback formats the title when neither an override nor a
	// derived title is available. %d receives the 1-based chapter number.
	TitleFallback string
}

// Plan computes the chapter table for the ordered inputs. Durations must
// align with inputs by index. A running cursor accumulates integer
// durations, so chapter i+1 always starts exactly where chapter i ends and
// the final end equals the sum of all durations.
func Plan(inputs []mergespec.InputFile, durations []time.Duration, opts Options) ([]Chapter, error) {
	if len(inputs) == 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "chapters", "plan", "no input files", nil)
	}
	if len(durations) != len(inputs) {
		return nil, services.Wrap(services.ErrInvalidInput, "chapters", "plan",
			fmt.Sprintf("%d durations for %d inputs", len(durations), len(inputs)), nil)
	}
	if len(opts.TitleOverrides) > len(inputs) {
		return nil, services.Wrap(services.ErrInvalidInput, "chapters", "plan",
			fmt.Sprintf("%d chapter titles for %d inputs", len(opts.TitleOverrides), len(inputs)), nil)
	}

	fallback := strings.TrimSpace(opts.TitleFallback)
	if fallback == "" {
		fallback = "Chapter %d"
	}

	plan := make([]Chapter, 0, len(inputs))
	var cursor time.Duration
	for i, input := range inputs {
		if durations[i] < 0 {
			return nil, services.Wrap(services.ErrInvalidInput, "chapters", "plan",
				fmt.Sprintf("negative duration for %s", input.Path), nil)
		}
		start := cursor
		cursor += durations[i]
		plan = append(plan, Chapter{
			Index: i,
			Title: chapterTitle(input, opts.TitleOverrides, i, fallback),
			Start: start,
			End:   cursor,
		})
	}
	return plan, nil
}

// Total returns the planned end of the final chapter, the expected duration
// of the merged output.
func Total(plan []Chapter) time.Duration {
	if len(plan) == 0 {
		return 0
	}
	return plan[len(plan)-1].End
}

func chapterTitle(input mergespec.InputFile, overrides []string, index int, fallback string) string {
	if index < len(overrides) {
		if title := strings.TrimSpace(overrides[index]); title != "" {
			return title
		}
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		return title
	}
	return fmt.Sprintf(fallback, index+1)
}
