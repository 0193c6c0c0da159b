package deps

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// ToolRequirements lists the ffmpeg tools the merge pipeline needs, using
// the configured command names.
func ToolRequirements(ffmpegBinary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegBinary,
			Description: "Merges inputs and embeds tags",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobeBinary,
			Description: "Probes input durations",
		},
	}
}

// ToolVersion reports the first line of `<binary> -version`, or "" when the
// tool cannot be executed. Lookups are capped at two seconds so a wedged
// binary cannot stall status output.
func ToolVersion(ctx context.Context, binary string) string {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return ""
	}
	versionCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	output, err := commandContext(versionCtx, binary, "-version").Output()
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(output))
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return line
}
