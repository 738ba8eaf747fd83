package markov

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenNotFound is matched by errors.Is for every UnknownTokenError.
	ErrTokenNotFound = errors.New("markov: token not found")

	// ErrInvalidLength indicates a generation length below 1.
	ErrInvalidLength = errors.New("markov: length must be at least 1")

	// ErrInvalidCSV indicates that ReadCSV was given data that is not a
	// word pair export.
	ErrInvalidCSV = errors.New("markov: invalid word pair csv")
)

// UnknownTokenError is returned by generation when the start token was never
// observed as a predecessor.
type UnknownTokenError struct {
	Token string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("markov: start word '%s' not found in the word pairs", e.Token)
}

// Is makes errors.Is(err, ErrTokenNotFound) true.
func (e *UnknownTokenError) Is(target error) bool {
	return target == ErrTokenNotFound
}

// ExportError is returned when an export destination cannot be written. The
// chain that was being exported is unaffected.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("markov: export to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
