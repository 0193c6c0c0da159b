package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrProbe            = errors.New("probe failure")
	ErrMetadataEncoding = errors.New("metadata encoding failure")
	ErrEncode           = errors.New("encode failure")
	ErrTagEmbed         = errors.New("tag embed failure")
)

// Exit codes reported by the CLI, one per failure kind so scripts can
// distinguish why a merge stopped.
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitInvalidInput     = 2
	ExitProbe            = 3
	ExitMetadataEncoding = 4
	ExitEncode           = 5
	ExitTagEmbed         = 6
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later exit-code classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrInvalidInput
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a pipeline error to the process exit code the CLI should
// report. Unclassified errors map to the generic failure code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, ErrProbe):
		return ExitProbe
	case errors.Is(err, ErrMetadataEncoding):
		return ExitMetadataEncoding
	case errors.Is(err, ErrEncode):
		return ExitEncode
	case errors.Is(err, ErrTagEmbed):
		return ExitTagEmbed
	default:
		return ExitFailure
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
