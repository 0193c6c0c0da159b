package merge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"audiobind/internal/chapters"
	"audiobind/internal/config"
	"audiobind/internal/ffmeta"
	"audiobind/internal/fileutil"
	"audiobind/internal/logging"
	"audiobind/internal/media/ffmpeg"
	"audiobind/internal/media/ffprobe"
	"audiobind/internal/mergespec"
	"audiobind/internal/services"
)

// Orchestrator sequences a merge: validate, probe, plan, encode, tag,
// verify, publish. It exclusively owns every intermediate artifact and
// removes them on each exit path the process survives.
type Orchestrator struct {
	cfg     *config.Config
	prober  ffprobe.Client
	encoder ffmpeg.Client
	logger  *slog.Logger
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithProber overrides the duration prober.
func WithProber(client ffprobe.Client) Option {
	return func(o *Orchestrator) {
		if client != nil {
			o.prober = client
		}
	}
}

// WithEncoder overrides the ffmpeg client.
func WithEncoder(client ffmpeg.Client) Option {
	return func(o *Orchestrator) {
		if client != nil {
			o.encoder = client
		}
	}
}

// WithLogger attaches a logger; a no-op logger is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logging.NewComponentLogger(logger, "merge")
		}
	}
}

// New constructs an orchestrator bound to cfg. Collaborators default to the
// real ffprobe/ffmpeg CLIs using the configured binaries.
func New(cfg *config.Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:    cfg,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.prober == nil {
		o.prober = ffprobe.NewCLI(ffprobe.WithBinary(cfg.FFprobeBinary()))
	}
	if o.encoder == nil {
		o.encoder = ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.FFmpegBinary()))
	}
	return o
}

// Result describes a finished merge.
type Result struct {
	OutputPath string
	Chapters   []chapters.Chapter
	Total      time.Duration
	SizeBytes  int64
	BitRate    int64
	Warnings   []string
}

// PlanPreview describes what a merge would produce without writing anything.
type PlanPreview struct {
	Chapters []chapters.Chapter
	Total    time.Duration
	Document string
}

// Run executes the full pipeline for req and returns the published output.
// The observe callback, when non-nil, receives state transitions and
// per-file probe progress.
func (o *Orchestrator) Run(ctx context.Context, req mergespec.Request, observe func(Event)) (*Result, error) {
	req = req.Clone()

	fail := func(err error) (*Result, error) {
		o.transition(StateFailed, observe)
		return nil, err
	}

	o.transition(StateValidating, observe)
	o.logger.Info("validating request",
		logging.Int("files", len(req.Inputs)),
		logging.String(logging.FieldOutput, req.OutputPath),
	)
	if err := o.validate(&req); err != nil {
		return fail(err)
	}

	release, err := o.acquireLock(req.OutputPath)
	if err != nil {
		return fail(err)
	}
	defer release()

	durations, err := ffprobe.Durations(ctx, o.prober, req.Inputs, probeObserver(observe, len(req.Inputs)))
	if err != nil {
		return fail(err)
	}

	plan, err := chapters.Plan(req.Inputs, durations, o.planOptions(req))
	if err != nil {
		return fail(err)
	}

	document, err := ffmeta.Compose(req.Metadata, plan)
	if err != nil {
		return fail(err)
	}

	workDir, cleanupWork, err := o.stageWorkspace()
	if err != nil {
		return fail(err)
	}
	defer cleanupWork()

	o.transition(StateEncoding, observe)
	o.logger.Info("encoding merged stream",
		logging.Int("files", len(req.Inputs)),
		logging.Duration("total", chapters.Total(plan)),
	)
	listPath := filepath.Join(workDir, "mergelist.txt")
	if err := ffmpeg.WriteMergeList(listPath, req.Inputs); err != nil {
		return fail(err)
	}
	mergedPath := filepath.Join(workDir, "merged.mp3")
	if err := o.encoder.Concat(ctx, listPath, mergedPath); err != nil {
		return fail(err)
	}

	o.transition(StateTagging, observe)
	o.logger.Info("embedding metadata",
		logging.Int("chapters", len(plan)),
		logging.Bool("cover", req.Metadata.CoverPath != ""),
	)
	metaPath := filepath.Join(workDir, "ffmeta.txt")
	if err := os.WriteFile(metaPath, []byte(document), 0o644); err != nil {
		return fail(services.Wrap(services.ErrTagEmbed, "merge", "stage", metaPath, err))
	}
	taggedPath := stagedOutputPath(req.OutputPath)
	defer o.removeTemp(taggedPath)
	if err := o.encoder.Embed(ctx, ffmpeg.EmbedRequest{
		InputPath:    mergedPath,
		MetadataPath: metaPath,
		CoverPath:    req.Metadata.CoverPath,
		OutputPath:   taggedPath,
	}); err != nil {
		return fail(err)
	}

	inspection, warnings, err := o.verify(ctx, taggedPath, plan, req.Metadata.CoverPath != "")
	if err != nil {
		return fail(err)
	}
	for _, warning := range warnings {
		o.logger.Warn(warning, logging.String(logging.FieldOutput, req.OutputPath))
	}

	if err := fileutil.MoveFile(taggedPath, req.OutputPath); err != nil {
		return fail(fmt.Errorf("publish %s: %w", req.OutputPath, err))
	}

	o.transition(StateDone, observe)
	o.logger.Info("merge complete",
		logging.String(logging.FieldOutput, req.OutputPath),
		logging.Duration("total", chapters.Total(plan)),
		logging.Int("chapters", len(plan)),
	)
	return &Result{
		OutputPath: req.OutputPath,
		Chapters:   plan,
		Total:      chapters.Total(plan),
		SizeBytes:  inspection.SizeBytes(),
		BitRate:    inspection.BitRate(),
		Warnings:   warnings,
	}, nil
}

// Plan probes and plans without touching the filesystem beyond reads. It
// backs --dry-run: the caller gets the chapter table and the rendered
// metadata document.
func (o *Orchestrator) Plan(ctx context.Context, req mergespec.Request, observe func(Event)) (*PlanPreview, error) {
	req = req.Clone()

	if len(req.Inputs) == 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "merge", "validate", "no input files", nil)
	}
	if err := checkInputsReadable(req.Inputs); err != nil {
		return nil, err
	}
	if err := o.checkCover(&req); err != nil {
		return nil, err
	}

	durations, err := ffprobe.Durations(ctx, o.prober, req.Inputs, probeObserver(observe, len(req.Inputs)))
	if err != nil {
		return nil, err
	}
	plan, err := chapters.Plan(req.Inputs, durations, o.planOptions(req))
	if err != nil {
		return nil, err
	}
	document, err := ffmeta.Compose(req.Metadata, plan)
	if err != nil {
		return nil, err
	}
	return &PlanPreview{
		Chapters: plan,
		Total:    chapters.Total(plan),
		Document: document,
	}, nil
}

func (o *Orchestrator) planOptions(req mergespec.Request) chapters.Options {
	return chapters.Options{
		TitleOverrides: req.ChapterTitles,
		TitleFallback:  o.cfg.Chapters.TitleFallback,
	}
}

func (o *Orchestrator) transition(state State, observe func(Event)) {
	o.logger.Debug("state change", logging.String(logging.FieldStage, string(state)))
	if observe != nil {
		observe(Event{State: state})
	}
}

func probeObserver(observe func(Event), total int) func(int, string, time.Duration) {
	if observe == nil {
		return nil
	}
	return func(index int, path string, duration time.Duration) {
		observe(Event{
			State:    StateValidating,
			Index:    index + 1,
			Total:    total,
			Path:     path,
			Duration: duration,
		})
	}
}

// acquireLock takes a flock next to the destination so two invocations
// cannot write the same output. The returned release drops the lock and
// removes the lock file.
func (o *Orchestrator) acquireLock(outputPath string) (func(), error) {
	lockPath := outputPath + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "merge", "lock", lockPath, err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrInvalidInput, "merge", "lock", fmt.Sprintf("another merge is writing %s", outputPath), nil)
	}
	release := func() {
		if err := lock.Unlock(); err != nil {
			o.logger.Warn("destination lock release failed",
				logging.String(logging.FieldOutput, outputPath),
				logging.Error(err),
			)
		}
		_ = os.Remove(lockPath)
	}
	return release, nil
}

// stageWorkspace creates a per-run directory under the staging root for the
// mergelist, the concat intermediate, and the metadata document.
func (o *Orchestrator) stageWorkspace() (string, func(), error) {
	if err := o.cfg.EnsureDirectories(); err != nil {
		return "", nil, services.Wrap(services.ErrInvalidInput, "merge", "stage", "prepare staging directory", err)
	}
	dir := filepath.Join(o.cfg.Paths.StagingDir, "merge-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, services.Wrap(services.ErrInvalidInput, "merge", "stage", dir, err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			o.logger.Warn("staging cleanup failed",
				logging.String("dir", dir),
				logging.Error(err),
			)
		}
	}
	return dir, cleanup, nil
}

// stagedOutputPath names the pre-publish temp beside the destination so the
// final rename stays on one filesystem.
func stagedOutputPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
}

func (o *Orchestrator) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		o.logger.Warn("temp cleanup failed",
			logging.String("path", path),
			logging.Error(err),
		)
	}
}

// verify probes the tagged temp before publishing. A missing audio stream
// fails the merge; duration drift beyond 500ms and a missing cover stream
// only warn. An unprobeable output downgrades to a warning so a finished
// merge is not discarded over an inspection hiccup.
func (o *Orchestrator) verify(ctx context.Context, path string, plan []chapters.Chapter, coverAttached bool) (ffprobe.Result, []string, error) {
	inspection, err := o.prober.Inspect(ctx, path)
	if err != nil {
		return ffprobe.Result{}, []string{fmt.Sprintf("could not verify output: %v", err)}, nil
	}
	if inspection.AudioStreamCount() == 0 {
		return ffprobe.Result{}, nil, services.Wrap(services.ErrTagEmbed, "merge", "verify", fmt.Sprintf("output %s has no audio stream", path), nil)
	}

	var warnings []string
	if duration, err := inspection.Duration(); err == nil {
		want := chapters.Total(plan)
		diff := duration - want
		if diff < 0 {
			diff = -diff
		}
		if diff > 500*time.Millisecond {
			warnings = append(warnings, fmt.Sprintf("output duration %s deviates from planned %s", duration, want))
		}
	}
	if coverAttached && inspection.VideoStreamCount() == 0 {
		warnings = append(warnings, "cover image missing from output")
	}
	return inspection, warnings, nil
}
