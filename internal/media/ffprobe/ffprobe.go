package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"audiobind/internal/mergespec"
	"audiobind/internal/services"
)

var commandContext = exec.CommandContext

// Client probes media files for playback information.
type Client interface {
	Inspect(ctx context.Context, path string) (Result, error)
	Probe(ctx context.Context, path string) (time.Duration, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffprobe command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffprobe"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	CodecTag   string `json:"codec_tag_string"`
	Duration   string `json:"duration"`
	BitRate    string `json:"bit_rate"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func (c *CLI) Inspect(ctx context.Context, path string) (Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, services.Wrap(services.ErrProbe, "ffprobe", "inspect", "empty path", nil)
	}

	cmd := commandContext(ctx, c.binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := path
		if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
			detail = path + ": " + trimmed
		}
		return Result{}, services.Wrap(services.ErrProbe, "ffprobe", "inspect", detail, err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, services.Wrap(services.ErrProbe, "ffprobe", "parse", path, err)
	}
	result.raw = append([]byte(nil), output...)
	return result, nil
}

// Probe returns the container duration for path. Failures carry the path so
// a multi-file probe run names the offending input.
func (c *CLI) Probe(ctx context.Context, path string) (time.Duration, error) {
	result, err := c.Inspect(ctx, path)
	if err != nil {
		return 0, err
	}
	duration, err := result.Duration()
	if err != nil {
		return 0, services.Wrap(services.ErrProbe, "ffprobe", "probe", path, err)
	}
	return duration, nil
}

// Durations probes every input in order, aborting on the first failure so
// nothing downstream runs against a partially probed list. The observe
// callback, when non-nil, fires after each successful probe so callers can
// surface progress.
func Durations(ctx context.Context, client Client, inputs []mergespec.InputFile, observe func(index int, path string, duration time.Duration)) ([]time.Duration, error) {
	if len(inputs) == 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "ffprobe", "durations", "no input files", nil)
	}
	durations := make([]time.Duration, 0, len(inputs))
	for i, input := range inputs {
		duration, err := client.Probe(ctx, input.Path)
		if err != nil {
			return nil, err
		}
		durations = append(durations, duration)
		if observe != nil {
			observe(i, input.Path, duration)
		}
	}
	return durations, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// VideoStreamCount returns the number of video streams discovered. Embedded
// cover art surfaces as an attached-picture video stream.
func (r Result) VideoStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			count++
		}
	}
	return count
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			count++
		}
	}
	return count
}

// Duration parses the container duration, rounding once to whole
// milliseconds so chapter arithmetic downstream stays integral.
func (r Result) Duration() (time.Duration, error) {
	cleaned := strings.TrimSpace(r.Format.Duration)
	if cleaned == "" {
		return 0, errors.New("container reports no duration")
	}
	secs, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", cleaned, err)
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, fmt.Errorf("invalid duration %q", cleaned)
	}
	return time.Duration(math.Round(secs*1000)) * time.Millisecond, nil
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	rate := parseFloat(r.Format.BitRate)
	if math.IsNaN(rate) || rate < 0 {
		return 0
	}
	return int64(rate)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}

var _ Client = (*CLI)(nil)
