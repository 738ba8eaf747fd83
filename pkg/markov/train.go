package markov

import (
	"context"
	"io"
	"iter"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// buildOptions Is used by the build functions to configure default options.
type buildOptions struct {
	tokenizer Tokenizer
	logger    *slog.Logger
	workers   int
}

// BuildOption is a function that configures how a Chain is built. It's used
// as a variadic argument in Build and BuildParagraphs.
type BuildOption func(*buildOptions)

// WithTokenizer sets the tokenizer used to normalize paragraphs.
// Default: NewDefaultTokenizer()
func WithTokenizer(t Tokenizer) BuildOption {
	return func(o *buildOptions) { o.tokenizer = t }
}

// WithLogger sets the logger of the built chain. By default, all logs are
// discarded.
func WithLogger(l *slog.Logger) BuildOption {
	return func(o *buildOptions) { o.logger = l }
}

// WithWorkers sets how many goroutines normalize paragraphs. With more than
// one worker the paragraphs are first collected, split into contiguous
// blocks, built into partial chains concurrently and merged in block order;
// the resulting chain is identical to a sequential build. The tokenizer must
// be safe for concurrent use, which DefaultTokenizer is.
// Default: 1
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) { o.workers = n }
}

// Paragraphs returns a paragraph sequence over an in-memory slice, for use
// with Build.
func Paragraphs(paragraphs ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range paragraphs {
			if !yield(p, nil) {
				return
			}
		}
	}
}

// Build creates a Chain from a sequence of paragraphs. Every paragraph is
// normalized by the tokenizer and each pair of adjacent tokens is recorded;
// adjacency never crosses a paragraph boundary.
//
// If the sequence yields an error, or ctx is cancelled, the build is
// abandoned and that error is returned unchanged with a nil Chain. A
// non-nil Chain is therefore always complete.
func Build(ctx context.Context, paragraphs iter.Seq2[string, error], opts ...BuildOption) (*Chain, error) {
	options := &buildOptions{
		tokenizer: NewDefaultTokenizer(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers:   1,
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.workers > 1 {
		return buildParallel(ctx, paragraphs, options)
	}

	c := newChain(options.tokenizer, options.logger)
	var paragraphCount int64
	for p, err := range paragraphs {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.addParagraph(p)
		paragraphCount++
	}

	c.logger.InfoContext(ctx, "Build completed",
		slog.Int64("paragraphs_processed", paragraphCount),
		slog.Int("unique_words", c.Len()),
		slog.Int("adjacencies", c.Adjacencies()),
	)

	return c, nil
}

// BuildParagraphs is a convenience wrapper around Build for paragraphs that
// are already in memory. It cannot fail.
func BuildParagraphs(paragraphs []string, opts ...BuildOption) *Chain {
	c, _ := Build(context.Background(), Paragraphs(paragraphs...), opts...)
	return c
}

// buildParallel builds disjoint partial chains from contiguous blocks of
// paragraphs and merges them in block order.
func buildParallel(ctx context.Context, paragraphs iter.Seq2[string, error], options *buildOptions) (*Chain, error) {
	var all []string
	for p, err := range paragraphs {
		if err != nil {
			return nil, err
		}
		all = append(all, p)
	}

	workers := min(options.workers, max(1, len(all)))
	blockSize := (len(all) + workers - 1) / workers
	parts := make([]*Chain, workers)

	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := min(w*blockSize, len(all))
		end := min(start+blockSize, len(all))
		block := all[start:end]
		part := newChain(options.tokenizer, options.logger)
		parts[w] = part
		eg.Go(func() error {
			for _, p := range block {
				if err := egCtx.Err(); err != nil {
					return err
				}
				part.addParagraph(p)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := Merge(parts...)
	c.logger.InfoContext(ctx, "Build completed",
		slog.Int("paragraphs_processed", len(all)),
		slog.Int("workers", workers),
		slog.Int("unique_words", c.Len()),
		slog.Int("adjacencies", c.Adjacencies()),
	)
	return c, nil
}
