// Package faults defines the error taxonomy for the batch pipeline and
// the wrap helper that tags failures for later classification. A batch
// fault costs one batch; a fatal fault aborts the run.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFatal aborts the whole run: worker initialization failed or the
	// configuration yields no usable weights.
	ErrFatal = errors.New("fatal failure")
	// ErrBatch costs one batch: the batch is recorded as zero-progress
	// and the run continues.
	ErrBatch = errors.New("batch failure")
	// ErrTimeout is a batch failure caused by the per-batch deadline.
	ErrTimeout = errors.New("batch timeout")
	// ErrValidation marks malformed configuration or input data.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing file or dataset.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes pipeline context while
// tagging it with the provided marker for later classification. The
// marker should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrBatch
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether the run must abort rather than continue with
// the next batch.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal) || errors.Is(err, ErrValidation)
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
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
