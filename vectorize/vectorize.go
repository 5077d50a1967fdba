// Package vectorize converts raw text into feature maps, so documents can
// feed the same regressor as numeric data. The count vectorizer is
// stateless; the TF-IDF vectorizer learns document frequencies online.
package vectorize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hupe1980/streamknn/feature"
)

// TokenizerOptions configures text normalization and token extraction.
type TokenizerOptions struct {
	// Lowercase folds text to lower case before extraction.
	Lowercase bool

	// StripAccents removes combining marks, so "café" and "cafe" produce
	// the same token.
	StripAccents bool

	// Pattern is the regular expression a token must match.
	Pattern string
}

// DefaultTokenizerOptions holds the default tokenizer configuration:
// lowercased, accent-stripped words of at least two letters, digits or
// underscores.
var DefaultTokenizerOptions = TokenizerOptions{
	Lowercase:    true,
	StripAccents: true,
	Pattern:      `[\p{L}\p{N}_]{2,}`,
}

// Tokenizer splits text into normalized terms.
type Tokenizer struct {
	opts TokenizerOptions
	re   *regexp.Regexp
}

// NewTokenizer creates a tokenizer.
func NewTokenizer(optFns ...func(o *TokenizerOptions)) (*Tokenizer, error) {
	opts := DefaultTokenizerOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	re, err := regexp.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid token pattern: %w", err)
	}

	return &Tokenizer{
		opts: opts,
		re:   re,
	}, nil
}

// Tokens returns the normalized terms of text, in order of appearance.
func (t *Tokenizer) Tokens(text string) []string {
	if t.opts.Lowercase {
		text = strings.ToLower(text)
	}

	if t.opts.StripAccents {
		text = stripAccents(text)
	}

	return t.re.FindAllString(text, -1)
}

// stripAccents decomposes the text and removes combining marks. The chain
// is built per call because transformers carry state across Transform
// calls.
func stripAccents(text string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(chain, text)
	if err != nil {
		return text
	}

	return out
}

// CountVectorizer maps a document to its term counts. It holds no state,
// so it needs no training.
type CountVectorizer struct {
	tok *Tokenizer
}

// NewCountVectorizer creates a count vectorizer.
func NewCountVectorizer(optFns ...func(o *TokenizerOptions)) (*CountVectorizer, error) {
	tok, err := NewTokenizer(optFns...)
	if err != nil {
		return nil, err
	}

	return &CountVectorizer{tok: tok}, nil
}

// Transform returns the term counts of the document, keyed by term.
func (v *CountVectorizer) Transform(text string) feature.Features {
	tokens := v.tok.Tokens(text)

	out := make(feature.Features, len(tokens))
	for _, t := range tokens {
		out[t]++
	}

	return out
}
