package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"audiobind/internal/logging"
	"audiobind/internal/mergespec"
	"audiobind/internal/services"
)

// validate checks the request before any external process runs. It may
// normalize the request in place: an unreadable cover is cleared when the
// config allows skipping it.
func (o *Orchestrator) validate(req *mergespec.Request) error {
	if len(req.Inputs) == 0 {
		return services.Wrap(services.ErrInvalidInput, "merge", "validate", "no input files", nil)
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return services.Wrap(services.ErrInvalidInput, "merge", "validate", "output path required", nil)
	}
	if err := checkInputsReadable(req.Inputs); err != nil {
		return err
	}
	if err := checkOutputDistinct(req.OutputPath, req.Inputs); err != nil {
		return err
	}
	if err := o.checkDestination(req.OutputPath); err != nil {
		return err
	}
	return o.checkCover(req)
}

func checkInputsReadable(inputs []mergespec.InputFile) error {
	for _, input := range inputs {
		if err := readablePath("input", input.Path); err != nil {
			return err
		}
	}
	return nil
}

func readablePath(label, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return services.Wrap(services.ErrInvalidInput, "merge", "validate", fmt.Sprintf("%s %s does not exist", label, path), nil)
		}
		return services.Wrap(services.ErrInvalidInput, "merge", "validate", fmt.Sprintf("%s %s", label, path), err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrInvalidInput, "merge", "validate", fmt.Sprintf("%s %s is a directory", label, path), nil)
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return services.Wrap(services.ErrInvalidInput, "merge", "validate", fmt.Sprintf("%s %s is not readable", label, path), err)
	}
	return nil
}

func checkOutputDistinct(outputPath string, inputs []mergespec.InputFile) error {
	for _, input := range inputs {
		if samePath(outputPath, input.Path) {
			return services.Wrap(services.ErrInvalidInput, "merge", "validate", fmt.Sprintf("output %s is listed as an input", outputPath), nil)
		}
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func (o *Orchestrator) checkDestination(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return services.Wrap(services.ErrInvalidInput, "merge", "validate", fmt.Sprintf("create output directory %s", dir), err)
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return services.Wrap(services.ErrInvalidInput, "merge", "validate", fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	if o.cfg.Output.Overwrite {
		return nil
	}
	if _, err := os.Stat(outputPath); err == nil {
		return services.Wrap(services.ErrInvalidInput, "merge", "validate", fmt.Sprintf("output %s already exists and overwrite is disabled", outputPath), nil)
	}
	return nil
}

// checkCover enforces the cover policy: unreadable covers abort the merge
// unless skip_unreadable_cover is set, in which case the merge proceeds
// without art.
func (o *Orchestrator) checkCover(req *mergespec.Request) error {
	cover := strings.TrimSpace(req.Metadata.CoverPath)
	req.Metadata.CoverPath = cover
	if cover == "" {
		return nil
	}
	if err := readablePath("cover", cover); err != nil {
		if o.cfg.Metadata.SkipUnreadableCover {
			o.logger.Warn("skipping unreadable cover",
				logging.String("cover", cover),
				logging.Error(err),
			)
			req.Metadata.CoverPath = ""
			return nil
		}
		return err
	}
	return nil
}
