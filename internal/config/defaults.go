package config

const (
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultStagingDir    = "~/.cache/audiobind/staging"
	defaultTitleFallback = "Chapter %d"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Paths: Paths{
			StagingDir: defaultStagingDir,
		},
		Output: Output{
			Overwrite: true,
		},
		Chapters: Chapters{
			TitleFallback: defaultTitleFallback,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
