package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"audiobind/internal/config"
	"audiobind/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external tools for the given config and
// annotates available binaries with their version line.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	requirements := deps.ToolRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary())
	statuses := deps.CheckBinaries(requirements)
	for i, status := range statuses {
		if !status.Available {
			continue
		}
		if version := deps.ToolVersion(ctx, status.Command); version != "" {
			statuses[i].Detail = version
		}
	}
	return statuses
}
