package markov

import (
	"strings"
)

// DefaultTokenizer is the default implementation of the Tokenizer interface.
// It deletes a fixed punctuation set, lowercases the text, and splits it on
// runs of whitespace. Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	punctuation string
	strip       *strings.Replacer
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithPunctuation replaces the set of characters deleted before splitting.
// Default: Punctuation
func WithPunctuation(set string) Option {
	return func(t *DefaultTokenizer) {
		t.punctuation = set
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		punctuation: Punctuation,
	}

	for _, opt := range opts {
		opt(t)
	}

	// Every character of the set maps to the empty string.
	pairs := make([]string, 0, 2*len(t.punctuation))
	for _, r := range t.punctuation {
		pairs = append(pairs, string(r), "")
	}
	t.strip = strings.NewReplacer(pairs...)

	return t
}

// Punctuation returns the configured deletion set.
func (t *DefaultTokenizer) Punctuation() string {
	return t.punctuation
}

// Normalize deletes the punctuation set, lowercases and trims paragraph,
// without splitting it.
func (t *DefaultTokenizer) Normalize(paragraph string) string {
	return strings.TrimSpace(strings.ToLower(t.strip.Replace(paragraph)))
}

// Tokens Returns the normalized tokens of paragraph.
func (t *DefaultTokenizer) Tokens(paragraph string) []string {
	return strings.Fields(t.Normalize(paragraph))
}
