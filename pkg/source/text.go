package source

import (
	"bufio"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// maxLineLength bounds a single line of a plain text book.
const maxLineLength = 1024 * 1024

// Text yields the paragraphs of plain text read from r. Paragraphs are
// separated by one or more blank lines; the lines of a paragraph are joined
// with a single space. A read error is yielded as a *DecodeError.
func Text(r io.Reader) iter.Seq2[string, error] {
	return textParagraphs("", r)
}

func textParagraphs(path string, r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

		var lines []string
		flush := func() bool {
			if len(lines) == 0 {
				return true
			}
			p := strings.Join(lines, " ")
			lines = lines[:0]
			return yield(p, nil)
		}

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				if !flush() {
					return
				}
				continue
			}
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			yield("", &DecodeError{Path: path, Err: err})
			return
		}
		flush()
	}
}

// TextFile opens the plain text file at path when iterated and yields its
// paragraphs. An open failure is yielded as a *DecodeError.
func TextFile(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield("", &DecodeError{Path: path, Err: err})
			return
		}
		defer func(f *os.File) {
			_ = f.Close()
		}(f)

		for p, err := range textParagraphs(path, f) {
			if !yield(p, err) {
				return
			}
		}
	}
}

// Open picks a source for path by its extension: ".epub" is decoded as an
// ePub, anything else is read as plain text.
func Open(path string, opts ...Option) iter.Seq2[string, error] {
	if strings.EqualFold(filepath.Ext(path), ".epub") {
		return EPubParagraphs(path, opts...)
	}
	return TextFile(path)
}
