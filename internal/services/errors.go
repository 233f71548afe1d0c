package services

import (
	"errors"
	"strings"
)

// Sentinel markers classify failures. Match them with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrTransient     = errors.New("transient failure")
)

// StageError attaches stage and operation context to a marked failure.
type StageError struct {
	Marker    error
	Stage     string
	Operation string
	Message   string
	Err       error
}

func (e *StageError) Error() string {
	parts := []string{e.Marker.Error()}
	detail := false
	for _, part := range []string{e.Stage, e.Operation, e.Message} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
			detail = true
		}
	}
	if !detail {
		parts = append(parts, "service failure")
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Marker}
	}
	return []error{e.Marker, e.Err}
}

// Wrap tags err with marker (ErrTransient when nil) and the stage context.
// err may be nil.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransient
	}
	return &StageError{Marker: marker, Stage: stage, Operation: operation, Message: message, Err: err}
}

var kinds = []struct {
	marker error
	kind   string
	hint   string
}{
	{ErrConfiguration, "configuration", "check the config file or the flag values passed to the command"},
	{ErrValidation, "validation", "verify the subtitle file is a readable SRT document"},
	{ErrNotFound, "not_found", "verify the input path exists"},
	{ErrConflict, "conflict", "wait for the other run to finish or remove the stale lock file"},
}

// Kind maps an error to a short classification label.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.marker) {
			return k.kind
		}
	}
	return "failure"
}

// Hint returns a one-line remediation suggestion for err.
func Hint(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.marker) {
			return k.hint
		}
	}
	return "check logs for details"
}
