package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"audiobind/internal/config"
	"audiobind/internal/logging"
	"audiobind/internal/merge"
	"audiobind/internal/mergespec"
)

// newOrchestrator builds the merge pipeline for one invocation. Tests swap
// it to inject fake probe and encode clients.
var newOrchestrator = func(cfg *config.Config, logger *slog.Logger) *merge.Orchestrator {
	return merge.New(cfg, merge.WithLogger(logger))
}

func runMerge(cmd *cobra.Command, ctx *commandContext, flags mergeFlags, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	beautify := flags.beautifyTitles
	if !cmd.Flags().Changed("beautify-titles") {
		beautify = cfg.Chapters.BeautifyTitles
	}
	req := buildRequest(args, flags, beautify)

	level := cfg.Logging.Level
	if flags.quiet {
		level = "error"
	}
	logger, err := logging.NewFromConfig(level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	orchestrator := newOrchestrator(cfg, logger)
	reporter := newProgressReporter(cmd.OutOrStdout(), flags.quiet, logger)
	defer reporter.Close()

	if flags.dryRun {
		preview, err := orchestrator.Plan(cmd.Context(), req, reporter.Observe)
		reporter.Close()
		if err != nil {
			return err
		}
		printPlanPreview(cmd.OutOrStdout(), preview)
		return nil
	}

	result, err := orchestrator.Run(cmd.Context(), req, reporter.Observe)
	reporter.Close()
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), result)
	return nil
}

func buildRequest(args []string, flags mergeFlags, beautify bool) mergespec.Request {
	inputs := make([]mergespec.InputFile, 0, len(args)-1)
	for _, path := range args[1:] {
		inputs = append(inputs, mergespec.NewInputFile(path, beautify))
	}
	return mergespec.Request{
		Inputs:     inputs,
		OutputPath: forceMP3Extension(strings.TrimSpace(args[0])),
		Metadata: mergespec.Metadata{
			Title:       strings.TrimSpace(flags.title),
			Subtitle:    strings.TrimSpace(flags.subtitle),
			Album:       strings.TrimSpace(flags.album),
			AlbumArtist: strings.TrimSpace(flags.albumArtist),
			Artists:     mergespec.SplitList(flags.artists),
			Genres:      mergespec.SplitList(flags.genres),
			Comment:     strings.TrimSpace(flags.comments),
			ReleaseDate: strings.TrimSpace(flags.dateReleased),
			CoverPath:   strings.TrimSpace(flags.cover),
		},
		ChapterTitles: flags.chapterTitles,
	}
}

// forceMP3Extension swaps any existing extension for .mp3 and appends one
// when the path has none, so the published file always matches its format.
func forceMP3Extension(path string) string {
	if path == "" {
		return path
	}
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".mp3") {
		return path
	}
	if ext == "" || filepath.Base(path) == ext {
		return path + ".mp3"
	}
	return strings.TrimSuffix(path, ext) + ".mp3"
}

func printPlanPreview(out io.Writer, preview *merge.PlanPreview) {
	rows := make([][]string, 0, len(preview.Chapters))
	for _, chapter := range preview.Chapters {
		rows = append(rows, []string{
			strconv.Itoa(chapter.Index + 1),
			chapter.Title,
			formatTimestamp(chapter.Start),
			formatTimestamp(chapter.End),
			formatTimestamp(chapter.End - chapter.Start),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Title", "Start", "End", "Length"}, rows, 0, 2, 3, 4))
	fmt.Fprintf(out, "Planned %d chapters, %s total\n", len(preview.Chapters), formatTimestamp(preview.Total))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Metadata document:")
	fmt.Fprintln(out, strings.TrimRight(preview.Document, "\n"))
}

func printSummary(out io.Writer, result *merge.Result) {
	parts := []string{
		fmt.Sprintf("%d chapters", len(result.Chapters)),
		formatTimestamp(result.Total),
	}
	if result.SizeBytes > 0 {
		parts = append(parts, humanize.Bytes(uint64(result.SizeBytes)))
	}
	if result.BitRate > 0 {
		parts = append(parts, fmt.Sprintf("%d kb/s", result.BitRate/1000))
	}
	fmt.Fprintf(out, "Wrote %s (%s)\n", result.OutputPath, strings.Join(parts, ", "))
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
}

// formatTimestamp renders a chapter boundary as H:MM:SS, keeping the
// millisecond remainder only when one exists.
func formatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Millisecond)
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)
	millis := int((d - time.Duration(seconds)*time.Second) / time.Millisecond)
	if millis == 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
