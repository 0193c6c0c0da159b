package ffmpeg

import (
	"context"
	"os/exec"
	"strings"

	"audiobind/internal/services"
)

var commandContext = exec.CommandContext

// Client drives ffmpeg for the two passes of a merge: the stream-copy
// concat and the metadata embed.
type Client interface {
	Concat(ctx context.Context, listPath, outputPath string) error
	Embed(ctx context.Context, req EmbedRequest) error
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

// CLI wraps the ffmpeg command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// EmbedRequest names the artifacts for the tagging pass.
type EmbedRequest struct {
	// InputPath is the merged audio produced by the concat pass.
	InputPath string
	// MetadataPath is the FFMETADATA1 document carrying tags and chapters.
	MetadataPath string
	// CoverPath is an optional front-cover image attached as a picture stream.
	CoverPath string
	// OutputPath receives the tagged file.
	OutputPath string
}

// Concat merges every entry of the concat-demuxer list into outputPath
// without re-encoding. The list is trusted, so -safe 0 allows absolute paths.
func (c *CLI) Concat(ctx context.Context, listPath, outputPath string) error {
	listPath = strings.TrimSpace(listPath)
	outputPath = strings.TrimSpace(outputPath)
	if listPath == "" {
		return services.Wrap(services.ErrEncode, "ffmpeg", "concat", "merge list path required", nil)
	}
	if outputPath == "" {
		return services.Wrap(services.ErrEncode, "ffmpeg", "concat", "output path required", nil)
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y", outputPath,
	}
	cmd := commandContext(ctx, c.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return services.Wrap(services.ErrEncode, "ffmpeg", "concat", commandDetail(outputPath, output), err)
	}
	return nil
}

// Embed copies the merged audio to req.OutputPath while applying the
// FFMETADATA document and, when present, the cover image as an attached
// picture. Input order is audio, cover, metadata, so the metadata source
// index shifts when a cover is supplied.
func (c *CLI) Embed(ctx context.Context, req EmbedRequest) error {
	input := strings.TrimSpace(req.InputPath)
	metadata := strings.TrimSpace(req.MetadataPath)
	cover := strings.TrimSpace(req.CoverPath)
	output := strings.TrimSpace(req.OutputPath)
	if input == "" {
		return services.Wrap(services.ErrTagEmbed, "ffmpeg", "embed", "input path required", nil)
	}
	if metadata == "" {
		return services.Wrap(services.ErrTagEmbed, "ffmpeg", "embed", "metadata path required", nil)
	}
	if output == "" {
		return services.Wrap(services.ErrTagEmbed, "ffmpeg", "embed", "output path required", nil)
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
	}
	if cover != "" {
		args = append(args, "-i", cover)
	}
	args = append(args, "-i", metadata, "-map", "0")
	if cover != "" {
		args = append(args, "-map", "1", "-map_metadata", "2")
	} else {
		args = append(args, "-map_metadata", "1")
	}
	args = append(args, "-c", "copy")
	if cover != "" {
		args = append(args, "-disposition:v:0", "attached_pic")
	}
	args = append(args, "-y", output)

	cmd := commandContext(ctx, c.binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return services.Wrap(services.ErrTagEmbed, "ffmpeg", "embed", commandDetail(output, out), err)
	}
	return nil
}

func commandDetail(path string, output []byte) string {
	if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
		return path + ": " + trimmed
	}
	return path
}

var _ Client = (*CLI)(nil)
