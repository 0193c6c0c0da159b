package main

import (
	"github.com/spf13/cobra"
)

// version is stamped by the release workflow via -ldflags.
var version = "dev"

type mergeFlags struct {
	title          string
	subtitle       string
	album          string
	albumArtist    string
	artists        string
	genres         string
	comments       string
	dateReleased   string
	cover          string
	chapterTitles  []string
	beautifyTitles bool
	dryRun         bool
	quiet          bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags mergeFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "audiobind [flags] <output> <file>...",
		Short: "Merge audio files into one MP3 with chapter markers",
		Long: `Merge an ordered list of audio files into a single MP3 whose chapter
markers fall on the original file boundaries. Global tags and cover art are
embedded in the same pass.

Inputs are merged in the order given. Chapter titles default to each input's
filename stem; override them per position with repeated --chapter-title flags.

Examples:
  audiobind book.mp3 01-intro.mp3 02-journey.mp3 03-return.mp3
  audiobind --title "The Voyage" --artists "A. Reader;B. Author" book.mp3 part1.mp3 part2.mp3
  audiobind --dry-run book.mp3 part1.mp3 part2.mp3`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runMerge(cmd, ctx, flags, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolP("version", "V", false, "Print the version and exit")

	mergeFlagSet := rootCmd.Flags()
	mergeFlagSet.StringVar(&flags.title, "title", "", "Global title tag")
	mergeFlagSet.StringVar(&flags.subtitle, "subtitle", "", "Subtitle tag")
	mergeFlagSet.StringVar(&flags.album, "album", "", "Album tag")
	mergeFlagSet.StringVar(&flags.albumArtist, "album-artist", "", "Album artist tag")
	mergeFlagSet.StringVar(&flags.artists, "artists", "", "Semicolon-separated artist list (\"A;B\")")
	mergeFlagSet.StringVar(&flags.genres, "genres", "", "Semicolon-separated genre list")
	mergeFlagSet.StringVar(&flags.comments, "comments", "", "Free-text comment tag")
	mergeFlagSet.StringVar(&flags.dateReleased, "date-released", "", "Release date tag (YYYY-MM-DD)")
	mergeFlagSet.StringVar(&flags.cover, "cover", "", "Cover art image path")
	mergeFlagSet.StringArrayVar(&flags.chapterTitles, "chapter-title", nil, "Chapter title override, repeatable, applied by input position")
	mergeFlagSet.BoolVar(&flags.beautifyTitles, "beautify-titles", false, "Title-case chapter titles derived from filenames")
	mergeFlagSet.BoolVar(&flags.dryRun, "dry-run", false, "Probe and plan only; print the chapter table without writing")
	mergeFlagSet.BoolVar(&flags.quiet, "quiet", false, "Suppress progress output and non-error logs")

	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
