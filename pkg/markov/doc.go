/*
Package markov builds first-order word-transition models from paragraphs of
text and uses them to generate new text by random walk.

A Chain maps every word to the ordered list of words observed directly after
it. Repeated successors are kept, so a uniform pick over that list is
implicitly weighted by frequency. Chains are built once with Build (or
BuildParagraphs) and are read-only afterwards: they can be exported to CSV,
re-read with ReadCSV, inspected with Stats, and walked with Generate.

	chain, err := markov.Build(ctx, source.Text(r))
	if err != nil {
		return err
	}
	text, err := chain.Generate("the", 50, markov.WithSeed(42))
*/
package markov
