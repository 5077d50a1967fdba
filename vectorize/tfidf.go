package vectorize

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/streamknn/feature"
)

// TFIDFOptions configures the TF-IDF vectorizer.
type TFIDFOptions struct {
	// Tokenizer configures text normalization and token extraction.
	Tokenizer TokenizerOptions

	// Normalize scales each output to unit Euclidean length, so documents
	// of different lengths stay comparable under a distance metric.
	Normalize bool
}

// DefaultTFIDFOptions holds the default TF-IDF configuration.
var DefaultTFIDFOptions = TFIDFOptions{
	Tokenizer: DefaultTokenizerOptions,
	Normalize: true,
}

// TFIDFVectorizer maps a document to term weights that grow with the
// term's frequency in the document and shrink with the number of seen
// documents containing it. Document frequencies update online: each Learn
// assigns the document an ordinal and records it in one roaring posting
// bitmap per term.
//
// It is not safe for concurrent use.
type TFIDFVectorizer struct {
	opts     TFIDFOptions
	tok      *Tokenizer
	postings map[string]*roaring.Bitmap
	docs     uint32
}

// NewTFIDF creates a TF-IDF vectorizer with no seen documents.
func NewTFIDF(optFns ...func(o *TFIDFOptions)) (*TFIDFVectorizer, error) {
	opts := DefaultTFIDFOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	tok, err := NewTokenizer(func(o *TokenizerOptions) {
		*o = opts.Tokenizer
	})
	if err != nil {
		return nil, err
	}

	return &TFIDFVectorizer{
		opts:     opts,
		tok:      tok,
		postings: make(map[string]*roaring.Bitmap),
	}, nil
}

// Learn records the document's terms in the posting bitmaps. Documents
// without any token still count toward the corpus size. It returns the
// vectorizer for chaining.
func (v *TFIDFVectorizer) Learn(text string) *TFIDFVectorizer {
	ordinal := v.docs
	v.docs++

	for _, t := range v.tok.Tokens(text) {
		bm, ok := v.postings[t]
		if !ok {
			bm = roaring.New()
			v.postings[t] = bm
		}

		bm.Add(ordinal)
	}

	return v
}

// Transform returns the TF-IDF weights of the document under the corpus
// seen so far, keyed by term.
func (v *TFIDFVectorizer) Transform(text string) feature.Features {
	tokens := v.tok.Tokens(text)
	if len(tokens) == 0 {
		return feature.Features{}
	}

	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}

	out := make(feature.Features, len(counts))

	for t, count := range counts {
		tf := float64(count) / float64(len(tokens))
		out[t] = tf * v.idf(t)
	}

	if v.opts.Normalize {
		normalize(out)
	}

	return out
}

// LearnTransform folds the document into the corpus and returns its
// weights, with the document counting toward its own frequencies.
func (v *TFIDFVectorizer) LearnTransform(text string) feature.Features {
	return v.Learn(text).Transform(text)
}

// DocumentCount returns the number of documents learned.
func (v *TFIDFVectorizer) DocumentCount() uint32 {
	return v.docs
}

// DocumentFrequency returns the number of learned documents containing
// the term. The term is normalized the same way Learn normalizes it.
func (v *TFIDFVectorizer) DocumentFrequency(term string) uint64 {
	tokens := v.tok.Tokens(term)
	if len(tokens) != 1 {
		return 0
	}

	bm, ok := v.postings[tokens[0]]
	if !ok {
		return 0
	}

	return bm.GetCardinality()
}

// idf is smoothed so unseen terms get a finite weight and no term is
// weighted zero.
func (v *TFIDFVectorizer) idf(term string) float64 {
	var df uint64
	if bm, ok := v.postings[term]; ok {
		df = bm.GetCardinality()
	}

	return math.Log(float64(1+uint64(v.docs))/float64(1+df)) + 1
}

func normalize(x feature.Features) {
	var sum float64
	for _, v := range x {
		sum += v * v
	}

	if sum == 0 {
		return
	}

	norm := math.Sqrt(sum)
	for t := range x {
		x[t] /= norm
	}
}
