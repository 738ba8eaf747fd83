package source

import (
	"bytes"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/simp-lee/epub"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// options Is used by the source constructors to configure default options.
type options struct {
	skipLicense bool
	logger      *slog.Logger
}

// Option is a function that configures a source.
type Option func(*options)

// WithSkipLicense leaves out chapters detected as Project Gutenberg license
// pages. Default: false
func WithSkipLicense(skip bool) Option {
	return func(o *options) { o.skipLicense = skip }
}

// WithLogger sets the logger used for per-chapter debug output. By default,
// all logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// EPub is an opened ePub book.
type EPub struct {
	path    string
	book    *epub.Book
	options *options
}

// OpenEPub opens the ePub file at path. The caller must call Close when done.
func OpenEPub(path string, opts ...Option) (*EPub, error) {
	book, err := epub.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &EPub{path: path, book: book, options: newOptions(opts)}, nil
}

// Close releases the underlying archive.
func (e *EPub) Close() error {
	return e.book.Close()
}

// Title returns the primary title of the book, or "" if it has none.
func (e *EPub) Title() string {
	if titles := e.book.Metadata().Titles; len(titles) > 0 {
		return titles[0]
	}
	return ""
}

// Paragraphs yields the text of every <p> element of every spine document,
// in spine order and then document order. A chapter that cannot be read or
// parsed yields a *DecodeError and ends the sequence.
func (e *EPub) Paragraphs() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		var chapters []epub.Chapter
		if e.options.skipLicense {
			chapters = e.book.ContentChapters()
		} else {
			chapters = e.book.Chapters()
		}

		for _, ch := range chapters {
			data, err := ch.RawContent()
			if err != nil {
				yield("", &DecodeError{Path: e.path, Chapter: ch.Href, Err: err})
				return
			}
			paragraphs, err := extractParagraphs(data)
			if err != nil {
				yield("", &DecodeError{Path: e.path, Chapter: ch.Href, Err: err})
				return
			}
			e.options.logger.Debug("Chapter decoded",
				slog.String("chapter", ch.Href),
				slog.String("title", ch.Title),
				slog.Int("paragraphs", len(paragraphs)),
			)
			for _, p := range paragraphs {
				if !yield(p, nil) {
					return
				}
			}
		}
	}
}

// EPubParagraphs opens the ePub at path when iterated, yields its paragraphs
// and closes it again. An open failure is yielded as a *DecodeError.
func EPubParagraphs(path string, opts ...Option) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		book, err := OpenEPub(path, opts...)
		if err != nil {
			yield("", err)
			return
		}
		defer func(book *EPub) {
			_ = book.Close()
		}(book)

		book.options.logger.Info("Processing EPUB file",
			slog.String("path", path),
			slog.String("title", book.Title()),
		)
		for p, err := range book.Paragraphs() {
			if !yield(p, err) {
				return
			}
		}
	}
}

// extractParagraphs returns the text content of every <p> element in an
// XHTML document, in document order.
func extractParagraphs(data []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var paragraphs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			paragraphs = append(paragraphs, nodeText(n))
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return paragraphs, nil
}

// nodeText concatenates every text node below n.
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return buf.String()
}
