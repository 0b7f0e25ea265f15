package manifest

import (
	"fmt"
)

// ExtractError represents a failure to read a value out of a manifest file.
// It carries the file path, the dotted field path being resolved and an
// actionable hint where one exists.
type ExtractError struct {
	Path    string // Path to the manifest file
	Field   string // Dotted field path (e.g. "package.version")
	Message string // Primary error message
	Hint    string // Actionable suggestion for fixing
	Err     error  // Underlying error, if any
}

// Error implements the error interface with rich formatting.
func (e *ExtractError) Error() string {
	msg := fmt.Sprintf("manifest error in %s", e.Path)
	if e.Field != "" {
		msg = fmt.Sprintf("manifest error in %s [field: %s]", e.Path, e.Field)
	}
	msg += ": " + e.Message

	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}

	return msg
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

func newExtractError(path, field, message, hint string, err error) *ExtractError {
	return &ExtractError{
		Path:    path,
		Field:   field,
		Message: message,
		Hint:    hint,
		Err:     err,
	}
}
