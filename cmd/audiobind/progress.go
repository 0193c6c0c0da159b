package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"audiobind/internal/logging"
	"audiobind/internal/merge"
)

// progressReporter adapts pipeline events for the terminal. On a TTY it
// draws a probe bar and per-stage spinners; elsewhere it logs sampled probe
// progress so piped output stays readable.
type progressReporter struct {
	out     io.Writer
	logger  *slog.Logger
	visible bool
	sampler *logging.ProgressSampler

	bar         *progressbar.ProgressBar
	spinnerStop chan struct{}
	spinnerDone chan struct{}
}

func newProgressReporter(out io.Writer, quiet bool, logger *slog.Logger) *progressReporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &progressReporter{
		out:     out,
		logger:  logging.NewComponentLogger(logger, "progress"),
		visible: !quiet && writerIsTerminal(out),
		sampler: logging.NewProgressSampler(0),
	}
}

// Observe consumes one pipeline event. Index zero marks a stage transition;
// positive indexes report per-file probe progress.
func (r *progressReporter) Observe(event merge.Event) {
	if event.Index > 0 {
		r.probeTick(event)
		return
	}
	switch event.State {
	case merge.StateEncoding:
		r.clearDisplay()
		r.startSpinner("encoding")
	case merge.StateTagging:
		r.clearDisplay()
		r.startSpinner("embedding tags")
	case merge.StateDone, merge.StateFailed:
		r.Close()
	}
}

// Close stops any live bar or spinner. Safe to call repeatedly.
func (r *progressReporter) Close() {
	r.clearDisplay()
}

func (r *progressReporter) probeTick(event merge.Event) {
	if !r.visible {
		percent := float64(event.Index) / float64(event.Total) * 100
		if r.sampler.ShouldLog(percent, "probing", "") {
			r.logger.Info("probed input",
				logging.String(logging.FieldFile, event.Path),
				logging.Duration("duration", event.Duration),
				logging.Int("index", event.Index),
				logging.Int("total", event.Total),
			)
		}
		return
	}
	if r.bar == nil {
		r.bar = progressbar.NewOptions(event.Total,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetDescription("probing"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = r.bar.Add(1)
}

// startSpinner animates a stage spinner from a ticker goroutine because the
// pipeline emits no events while an external encoder runs.
func (r *progressReporter) startSpinner(label string) {
	if !r.visible {
		return
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()
	r.bar = bar
	r.spinnerStop = stop
	r.spinnerDone = done
}

func (r *progressReporter) clearDisplay() {
	if r.spinnerStop != nil {
		close(r.spinnerStop)
		<-r.spinnerDone
		r.spinnerStop = nil
		r.spinnerDone = nil
	}
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
