package markov

import "testing"

func TestStats(t *testing.T) {
	c := setupTestChain(t)

	s := c.Stats()
	expected := Stats{
		Keys:           7, // the cat sat one fish two red
		Adjacencies:    11,
		Vocabulary:     9, // plus ran and blue
		TerminalTokens: 2,
		MaxFanOut:      3,
		MaxFanOutToken: "fish",
	}
	if s != expected {
		t.Errorf("Stats() = %+v, want %+v", s, expected)
	}
}

func TestStatsEmpty(t *testing.T) {
	c := BuildParagraphs(nil)
	if s := c.Stats(); s != (Stats{}) {
		t.Errorf("Stats() of an empty chain = %+v", s)
	}
}
