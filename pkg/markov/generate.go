package markov

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
)

// Chooser picks an index in [0, n) given n > 0 candidates. Generation calls
// it once per step with the length of the current successor list.
type Chooser func(n int) int

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	choose Chooser
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in Generate and GenerateTokens.
type GenerateOption func(*generateOptions)

// WithChooser sets the function that picks among successors. Returning an
// index outside [0, n) panics like any out-of-range slice index.
// Default: rand.IntN
func WithChooser(choose Chooser) GenerateOption {
	return func(o *generateOptions) {
		if choose != nil {
			o.choose = choose
		}
	}
}

// WithRand picks successors with r.IntN.
func WithRand(r *rand.Rand) GenerateOption {
	return func(o *generateOptions) {
		if r != nil {
			o.choose = r.IntN
		}
	}
}

// WithSeed picks successors with a PCG generator seeded with seed, making
// generation reproducible for a given chain.
func WithSeed(seed uint64) GenerateOption {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// First is a Chooser that always picks the first candidate. It makes a walk
// follow the first observed successor of every token.
func First(int) int { return 0 }

// Generate walks the chain from start and joins the visited tokens with
// single spaces. See GenerateTokens.
func (c *Chain) Generate(start string, length int, opts ...GenerateOption) (string, error) {
	tokens, err := c.GenerateTokens(start, length, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(tokens, " "), nil
}

// GenerateTokens walks the chain from start and returns at most length
// tokens, the first of which is start. At each step one successor of the
// current token is picked uniformly from its recorded list, so successors
// seen more often are proportionally more likely. The walk stops early,
// without error, when it reaches a token that has no entry.
//
// It returns ErrInvalidLength if length < 1 and an *UnknownTokenError if
// start has no entry. start is compared verbatim; normalize it with the
// chain's tokenizer first if it comes from user input.
func (c *Chain) GenerateTokens(start string, length int, opts ...GenerateOption) ([]string, error) {
	if length < 1 {
		return nil, ErrInvalidLength
	}
	if !c.Has(start) {
		return nil, &UnknownTokenError{Token: start}
	}

	options := &generateOptions{
		choose: rand.IntN,
	}
	for _, opt := range opts {
		opt(options)
	}

	generated := make([]string, 1, min(length, 1024))
	generated[0] = start
	current := start

	for len(generated) < length {
		choices, ok := c.successors[current]
		if !ok { // Dead end in chain
			c.logger.DebugContext(context.Background(), "Generation terminated due to dead-end",
				slog.String("last_word", current),
				slog.Int("generated_length", len(generated)),
				slog.Int("requested_length", length),
			)
			break
		}
		current = choices[options.choose(len(choices))]
		generated = append(generated, current)
	}

	return generated, nil
}
