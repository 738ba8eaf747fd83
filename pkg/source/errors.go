package source

import "fmt"

// DecodeError indicates that a book could not be opened, read or parsed.
// Chapter is the archive path of the failing document, if any.
type DecodeError struct {
	Path    string
	Chapter string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Chapter != "" {
		return fmt.Sprintf("source: decode %s (%s): %v", e.Path, e.Chapter, e.Err)
	}
	return fmt.Sprintf("source: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
