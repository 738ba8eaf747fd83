package markov

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	c := setupTestChain(t)

	testCases := []struct {
		name     string
		start    string
		length   int
		chooser  Chooser
		expected string
	}{
		{
			name:     "Always first candidate",
			start:    "the",
			length:   3,
			chooser:  First,
			expected: "the cat sat",
		},
		{
			name:     "Length one is the start token",
			start:    "fish",
			length:   1,
			chooser:  First,
			expected: "fish",
		},
		{
			name:     "Walk cycles through the table",
			start:    "the",
			length:   7,
			chooser:  First,
			expected: "the cat sat the cat sat the",
		},
		{
			name:     "Last candidate reaches a dead end early",
			start:    "cat",
			length:   10,
			chooser:  func(n int) int { return n - 1 },
			expected: "cat ran",
		},
		{
			name:     "Dead end after several steps",
			start:    "one",
			length:   50,
			chooser:  func(n int) int { return n - 1 },
			expected: "one fish blue",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := c.Generate(tc.start, tc.length, WithChooser(tc.chooser))
			if err != nil {
				t.Fatalf("Generate() failed: %v", err)
			}
			if output != tc.expected {
				t.Errorf("Generate() = %q, want %q", output, tc.expected)
			}
		})
	}
}

func TestGenerateLengthOneForEveryKey(t *testing.T) {
	c := setupTestChain(t)
	for _, key := range c.Keys() {
		tokens, err := c.GenerateTokens(key, 1)
		if err != nil {
			t.Fatalf("GenerateTokens(%q, 1) failed: %v", key, err)
		}
		if len(tokens) != 1 || tokens[0] != key {
			t.Errorf("GenerateTokens(%q, 1) = %q", key, tokens)
		}
	}
}

func TestGenerateUnknownToken(t *testing.T) {
	c := setupTestChain(t)

	// "ran" and "blue" only ever end a paragraph.
	for _, start := range []string{"ran", "blue", "green", ""} {
		output, err := c.Generate(start, 10, WithChooser(First))
		if !errors.Is(err, ErrTokenNotFound) {
			t.Errorf("Generate(%q) error = %v, want ErrTokenNotFound", start, err)
		}
		var unknown *UnknownTokenError
		if !errors.As(err, &unknown) || unknown.Token != start {
			t.Errorf("Generate(%q) error = %v, want *UnknownTokenError for that token", start, err)
		}
		if output != "" {
			t.Errorf("Generate(%q) produced output %q alongside an error", start, output)
		}
	}

	if _, err := c.Generate("The", 10); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("start tokens are compared verbatim, got %v", err)
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	c := setupTestChain(t)
	for _, length := range []int{0, -1} {
		if _, err := c.GenerateTokens("the", length); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("GenerateTokens(length=%d) error = %v, want ErrInvalidLength", length, err)
		}
	}
}

func TestGenerateFollowsRecordedSuccessors(t *testing.T) {
	c := setupTestChain(t)
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		tokens, err := c.GenerateTokens("one", 20, WithRand(r))
		if err != nil {
			t.Fatalf("GenerateTokens() failed: %v", err)
		}
		for j := 1; j < len(tokens); j++ {
			if !slices.Contains(c.Successors(tokens[j-1]), tokens[j]) {
				t.Fatalf("step %q -> %q was never observed", tokens[j-1], tokens[j])
			}
		}
		if len(tokens) < 20 && c.Has(tokens[len(tokens)-1]) {
			t.Fatalf("walk %q stopped before a dead end", tokens)
		}
	}
}

func TestGenerateWeightsByMultiplicity(t *testing.T) {
	// "a" is followed by "b" three times and "c" once.
	c := BuildParagraphs([]string{"a b", "a b", "a b", "a c"})
	r := rand.New(rand.NewPCG(7, 7))

	counts := map[string]int{}
	const trials = 4000
	for i := 0; i < trials; i++ {
		tokens, err := c.GenerateTokens("a", 2, WithRand(r))
		if err != nil {
			t.Fatalf("GenerateTokens() failed: %v", err)
		}
		counts[tokens[1]]++
	}

	share := float64(counts["b"]) / trials
	if share < 0.70 || share > 0.80 {
		t.Errorf("b was chosen %.2f of the time, want about 0.75 (counts %v)", share, counts)
	}
}

func TestGenerateWithSeedIsReproducible(t *testing.T) {
	c := setupTestChain(t)
	first, err := c.Generate("fish", 30, WithSeed(42))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	second, _ := c.Generate("fish", 30, WithSeed(42))
	if first != second {
		t.Errorf("same seed produced %q and %q", first, second)
	}
	if !strings.HasPrefix(first, "fish") {
		t.Errorf("output %q does not begin with the start token", first)
	}
}

func TestGenerateDoesNotMutate(t *testing.T) {
	c := setupTestChain(t)
	before := pairsOf(c)
	for i := 0; i < 10; i++ {
		_, _ = c.Generate("the", 20)
	}
	if !slices.Equal(before, pairsOf(c)) {
		t.Error("generation changed the chain")
	}
}

func BenchmarkGenerate(b *testing.B) {
	c := BuildParagraphs(createBenchmarkCorpus())
	start := c.Keys()[0]

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := c.Generate(start, 50)
		b.SetBytes(int64(len(s)))
		if err != nil {
			b.Fatalf("Generate() failed: %v", err)
		}
	}
}
