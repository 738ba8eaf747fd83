package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestChain builds the chain used by most tests from two paragraphs.
//
//	the -> cat, cat
//	cat -> sat, ran
//	sat -> the
//	one -> fish
//	fish -> two, red, blue
//	two -> fish
//	red -> fish
func setupTestChain(t *testing.T) *Chain {
	t.Helper()
	return BuildParagraphs([]string{
		"The cat sat. The cat ran.",
		"One fish, two fish; red fish. Blue!",
	})
}

// pairsOf flattens a chain into "first last" strings in export order.
func pairsOf(c *Chain) []string {
	var pairs []string
	for _, key := range c.Keys() {
		for _, next := range c.Successors(key) {
			pairs = append(pairs, key+" "+next)
		}
	}
	return pairs
}

var (
	benchmarkCorpus []string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for
// benchmarking, one paragraph per line.
func createBenchmarkCorpus() []string {
	corpusOnce.Do(func() {
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = []string{"this is a fallback corpus for benchmarking. it is not very long but will prevent a crash."}
				return
			}
			benchmarkCorpus = append(benchmarkCorpus, strings.Split(string(content), "\n")...)
		}
	})
	return benchmarkCorpus
}
