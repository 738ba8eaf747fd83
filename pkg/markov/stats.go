package markov

// Stats holds aggregated statistics for a single Chain.
type Stats struct {
	Keys           int // The number of distinct predecessor tokens.
	Adjacencies    int // The number of recorded pairs, duplicates included; equals the export row count.
	Vocabulary     int // The number of distinct tokens seen as predecessor or successor.
	TerminalTokens int // The number of successor tokens that never appear as a predecessor; walks stop there.
	MaxFanOut      int // The longest successor list.
	MaxFanOutToken string
}

// Stats returns a snapshot of statistics for the chain.
func (c *Chain) Stats() Stats {
	s := Stats{
		Keys:        len(c.order),
		Adjacencies: c.adjacencies,
	}

	terminals := make(map[string]struct{})
	for _, key := range c.order {
		list := c.successors[key]
		if len(list) > s.MaxFanOut {
			s.MaxFanOut = len(list)
			s.MaxFanOutToken = key
		}
		for _, next := range list {
			if _, ok := c.successors[next]; !ok {
				terminals[next] = struct{}{}
			}
		}
	}
	s.TerminalTokens = len(terminals)
	s.Vocabulary = s.Keys + s.TerminalTokens

	return s
}
