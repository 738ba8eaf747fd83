package source

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

func TestText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Blank lines separate paragraphs",
			input:    "The cat sat.\nThe cat ran.\n\nOne fish,\ntwo fish.\n",
			expected: []string{"The cat sat. The cat ran.", "One fish, two fish."},
		},
		{
			name:     "Runs of blank and whitespace-only lines",
			input:    "\n\n  first  \n \t \n\n\nsecond",
			expected: []string{"first", "second"},
		},
		{
			name:     "CRLF line endings",
			input:    "a b\r\nc\r\n\r\nd\r\n",
			expected: []string{"a b c", "d"},
		},
		{
			name:  "Empty input",
			input: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := collect(t, Text(strings.NewReader(tc.input)))
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Text() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestTextReadError(t *testing.T) {
	errRead := errors.New("device gone")
	got, err := collect(t, Text(iotest.ErrReader(errRead)))

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if !errors.Is(err, errRead) {
		t.Errorf("error = %v, want it to wrap the read error", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d paragraphs, want none", len(got))
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(txt, []byte("plain text book\n\nsecond paragraph\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := collect(t, Open(txt))
	if err != nil {
		t.Fatalf("Open(txt) error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"plain text book", "second paragraph"}) {
		t.Errorf("Open(txt) = %q", got)
	}

	// Extension matching is case-insensitive.
	epubPath := buildTestEPubFile(t, testEPubFiles())
	upper := filepath.Join(dir, "BOOK.EPUB")
	if err := os.Rename(epubPath, upper); err != nil {
		t.Fatal(err)
	}
	got, err = collect(t, Open(upper))
	if err != nil {
		t.Fatalf("Open(epub) error = %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Open(epub) yielded %d paragraphs, want 5", len(got))
	}

	_, err = collect(t, Open(filepath.Join(dir, "missing.txt")))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Open(missing) error = %v, want *DecodeError", err)
	}
}
