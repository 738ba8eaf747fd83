package markov

import (
	"io"
	"log/slog"
	"slices"
)

// Chain is a first-order transition table. Each key is a token that was
// observed directly followed by another token within one paragraph; its
// value is every such successor, in the order observed, duplicates included.
//
// A Chain is append-only while it is being built and read-only once it has
// been returned by Build, BuildParagraphs, Merge or ReadCSV, so concurrent
// reads are safe.
type Chain struct {
	order       []string // keys in the order their entries were created
	successors  map[string][]string
	adjacencies int
	tokenizer   Tokenizer
	logger      *slog.Logger
}

// newChain creates an empty chain ready to be populated.
func newChain(tokenizer Tokenizer, logger *slog.Logger) *Chain {
	if tokenizer == nil {
		tokenizer = NewDefaultTokenizer()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Chain{
		successors: make(map[string][]string),
		tokenizer:  tokenizer,
		logger:     logger,
	}
}

// record appends next to the entry for prev, creating the entry if absent.
func (c *Chain) record(prev, next string) {
	list, ok := c.successors[prev]
	if !ok {
		c.order = append(c.order, prev)
	}
	c.successors[prev] = append(list, next)
	c.adjacencies++
}

// addTokens records every adjacent pair of tokens and returns how many
// adjacencies were added, which is max(0, len(tokens)-1).
func (c *Chain) addTokens(tokens []string) int {
	for i := 0; i+1 < len(tokens); i++ {
		c.record(tokens[i], tokens[i+1])
	}
	return max(0, len(tokens)-1)
}

// addParagraph normalizes paragraph and records its adjacencies.
func (c *Chain) addParagraph(paragraph string) int {
	return c.addTokens(c.tokenizer.Tokens(paragraph))
}

// Has reports whether token was ever observed as a predecessor.
func (c *Chain) Has(token string) bool {
	_, ok := c.successors[token]
	return ok
}

// Successors returns a copy of the successors recorded for token, in the
// order they were observed. It returns nil if token has no entry.
func (c *Chain) Successors(token string) []string {
	return slices.Clone(c.successors[token])
}

// Keys returns every predecessor token in the order its entry was created.
func (c *Chain) Keys() []string {
	return slices.Clone(c.order)
}

// Len returns the number of distinct predecessor tokens.
func (c *Chain) Len() int {
	return len(c.order)
}

// Adjacencies returns the total number of recorded (predecessor, successor)
// pairs, counting duplicates.
func (c *Chain) Adjacencies() int {
	return c.adjacencies
}

// Tokenizer returns the tokenizer the chain was built with. Callers use it
// to normalize start tokens the same way the source text was normalized.
func (c *Chain) Tokenizer() Tokenizer {
	return c.tokenizer
}

// SetLogger sets the logger for the Chain. By default, all logs are discarded.
// Providing a `log/slog.Logger` will enable logging for export and generation.
func (c *Chain) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Merge concatenates partial chains into a new one. Keys keep the order in
// which they first appear across parts, and successor lists are appended
// part by part, so merging the chains of contiguous blocks of paragraphs in
// block order gives the same table as building from all paragraphs at once.
// The parts are not modified. The result uses the first non-nil part's
// tokenizer and logger.
func Merge(parts ...*Chain) *Chain {
	var merged *Chain
	for _, p := range parts {
		if p == nil {
			continue
		}
		if merged == nil {
			merged = newChain(p.tokenizer, p.logger)
		}
		for _, key := range p.order {
			list, ok := merged.successors[key]
			if !ok {
				merged.order = append(merged.order, key)
			}
			merged.successors[key] = append(list, p.successors[key]...)
		}
		merged.adjacencies += p.adjacencies
	}
	if merged == nil {
		merged = newChain(nil, nil)
	}
	return merged
}
