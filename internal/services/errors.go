package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnreadableFile  = errors.New("unreadable file")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrConfiguration   = errors.New("configuration error")
	ErrFilesystem      = errors.New("filesystem error")
	ErrNotFound        = errors.New("not found")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error should abort a run before any file is
// touched. Only configuration errors are fatal; everything else is recorded
// per file.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// FailureReason maps a per-file error to the reason label recorded in the run
// result.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrUnreadableFile):
		return "unreadable"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported"
	case errors.Is(err, ErrFilesystem):
		return "filesystem"
	default:
		return "error"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
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
