package fetch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSizeUnavailable is returned when a photo has no URL for the requested size
var ErrSizeUnavailable = errors.New("size not available for photo")

// DownloadError describes a single failed download
type DownloadError struct {
	PhotoID string
	File    string
	Err     error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("photo %s (%s): %v", e.PhotoID, e.File, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// PipelineError is returned when at least one download in a run failed
type PipelineError struct {
	Failed int
	Total  int
	Errors []*DownloadError
}

func (e *PipelineError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d of %d downloads failed: %s", e.Failed, e.Total, strings.Join(msgs, "; "))
}

// Unwrap exposes the individual download errors to errors.Is and errors.As
func (e *PipelineError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}
