package markov

// Punctuation is the default set of characters deleted from a paragraph
// before it is split into tokens. Deletion fuses the surrounding letters, so
// "don't" becomes "dont". Characters outside this set, such as dashes,
// ellipses, the right double quote and curly single quotes, are kept and may
// form tokens of their own.
const Punctuation = "\".,()?!:“;[]{}'"

// Tokenizer is an interface that defines the contract for turning a raw
// paragraph into an ordered sequence of normalized tokens. This allows the
// chain logic to be independent of the specific normalization strategy.
type Tokenizer interface {
	// Tokens returns the tokens of paragraph in left-to-right order. It never
	// fails; an empty or punctuation-only paragraph yields an empty slice.
	Tokens(paragraph string) []string
}

// TokenizerFunc adapts an ordinary function to the Tokenizer interface.
type TokenizerFunc func(paragraph string) []string

// Tokens calls f(paragraph).
func (f TokenizerFunc) Tokens(paragraph string) []string {
	return f(paragraph)
}
