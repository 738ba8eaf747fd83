// Package source turns books into sequences of paragraph strings for
// markov.Build.
//
// ePub files are decoded with github.com/simp-lee/epub; every <p> element of
// every spine document becomes one paragraph, in reading order. Plain text
// files are split into paragraphs on blank lines. Any failure to open, read
// or parse the book is reported as a *DecodeError and ends the sequence.
package source
