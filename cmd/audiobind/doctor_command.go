package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiobind/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and directories",
		Long: `Verify that ffmpeg and ffprobe resolve on this system and that the
configured directories are usable. Run it after installing or after editing
the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			healthy := true

			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			toolRows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					healthy = false
				}
				toolRows = append(toolRows, []string{status.Name, status.Command, state, status.Detail})
			}
			fmt.Fprintln(out, "External tools")
			fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Status", "Detail"}, toolRows))

			checks := preflight.RunAll(cfg)
			checkRows := make([][]string, 0, len(checks))
			for _, check := range checks {
				state := "ok"
				if !check.Passed {
					state = "failed"
					healthy = false
				}
				checkRows = append(checkRows, []string{check.Name, state, check.Detail})
			}
			fmt.Fprintln(out, "Directories")
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, checkRows))

			if !healthy {
				return fmt.Errorf("environment problems found; fix the failing rows above")
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
