package markov

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/natefinch/atomic"
)

// csvHeader is the header row of a word pair export.
var csvHeader = []string{"first", "last"}

// ExportCSV writes the chain to w as comma-separated (first, last) rows,
// preceded by the header row "first,last". There is one row per recorded
// adjacency: keys in the order their entries were created, and successors
// in the order they were observed. Fields are quoted as encoding/csv does,
// and rows end with CRLF. Exporting does not modify the chain, so repeated
// exports are byte-identical.
func (c *Chain) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, 2)
	for _, first := range c.order {
		row[0] = first
		for _, last := range c.successors[first] {
			row[1] = last
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the CSV export to path, replacing any existing file
// atomically so that a failed export never leaves a truncated file behind.
// Failures are returned as *ExportError.
func (c *Chain) ExportFile(path string) error {
	var buf bytes.Buffer
	if err := c.ExportCSV(&buf); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return &ExportError{Path: path, Err: err}
	}

	c.logger.InfoContext(context.Background(), "Word pairs saved",
		slog.String("path", path),
		slog.Int("unique_words", c.Len()),
		slog.Int("rows_exported", c.Adjacencies()),
	)
	return nil
}

// ReadCSV rebuilds a Chain from data written by ExportCSV. The header must
// be exactly "first,last" and every row must have two fields. Keys and
// successors keep the order of the rows, so a chain survives an export and
// re-read unchanged. Only WithTokenizer and WithLogger apply; the tokenizer
// is used by callers to normalize start tokens.
func ReadCSV(r io.Reader, opts ...BuildOption) (*Chain, error) {
	options := &buildOptions{}
	for _, opt := range opts {
		opt(options)
	}
	c := newChain(options.tokenizer, options.logger)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidCSV)
	}
	if err != nil {
		return nil, readCSVError(err)
	}
	if !slices.Equal(header, csvHeader) {
		return nil, fmt.Errorf("%w: header is %q, want %q", ErrInvalidCSV, header, csvHeader)
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readCSVError(err)
		}
		c.record(row[0], row[1])
	}

	c.logger.InfoContext(context.Background(), "Word pairs loaded",
		slog.Int("unique_words", c.Len()),
		slog.Int("rows_loaded", c.Adjacencies()),
	)
	return c, nil
}

// readCSVError marks csv syntax errors as ErrInvalidCSV and passes read
// errors through.
func readCSVError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}
	return fmt.Errorf("could not read word pairs: %w", err)
}
