// Package retrieval answers free-form questions by TF-IDF cosine similarity
// against a curated question/answer corpus. It is the fallback behind the
// scripted pattern layer: the best-matching answer is returned only when its
// similarity clears a threshold, otherwise the caller moves on.
package retrieval

import (
	"math"

	"github.com/sortwise/sortwise/pkg/sortwise/store"
)

// DefaultThreshold is the minimum cosine similarity for an answer to count
// as a match.
const DefaultThreshold = 0.35

// Fallback is an immutable TF-IDF index over a Q/A corpus.
type Fallback struct {
	tokenizer *Tokenizer
	threshold float64

	answers []string
	vectors []map[string]float64 // L2-normalized question vectors
	idf     map[string]float64
}

// New indexes the corpus. A nil tokenizer gets a stopword-free default;
// a non-positive threshold gets DefaultThreshold.
func New(pairs []store.QAPair, tokenizer *Tokenizer, threshold float64) *Fallback {
	if tokenizer == nil {
		tokenizer = NewTokenizer(nil)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	f := &Fallback{
		tokenizer: tokenizer,
		threshold: threshold,
		idf:       make(map[string]float64),
	}

	docs := make([][]string, 0, len(pairs))
	df := make(map[string]int)
	for _, p := range pairs {
		tokens := tokenizer.Tokenize(p.Question)
		if len(tokens) == 0 {
			continue
		}
		docs = append(docs, tokens)
		f.answers = append(f.answers, p.Answer)
		for _, tok := range uniqueTokens(tokens) {
			df[tok]++
		}
	}

	// Smoothed IDF so corpus-wide tokens still contribute a little.
	n := float64(len(docs))
	for tok, d := range df {
		f.idf[tok] = math.Log((1+n)/(1+float64(d))) + 1
	}

	f.vectors = make([]map[string]float64, len(docs))
	for i, tokens := range docs {
		f.vectors[i] = f.vectorize(tokens)
	}

	return f
}

// Answer returns the answer whose question is most similar to the query,
// provided the similarity reaches the threshold.
func (f *Fallback) Answer(query string) (string, bool) {
	if len(f.vectors) == 0 {
		return "", false
	}

	qv := f.vectorize(f.tokenizer.Tokenize(query))
	if len(qv) == 0 {
		return "", false
	}

	bestIdx, bestScore := -1, 0.0
	for i, dv := range f.vectors {
		if s := dot(qv, dv); s > bestScore {
			bestIdx, bestScore = i, s
		}
	}

	if bestIdx < 0 || bestScore < f.threshold {
		return "", false
	}
	return f.answers[bestIdx], true
}

// Len returns the number of indexed pairs.
func (f *Fallback) Len() int { return len(f.vectors) }

// Threshold returns the configured similarity threshold.
func (f *Fallback) Threshold() float64 { return f.threshold }

// vectorize builds the L2-normalized TF-IDF vector of a token sequence.
// Tokens never seen in the corpus get IDF 1 so they still affect the norm.
func (f *Fallback) vectorize(tokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return nil
	}

	v := make(map[string]float64)
	for _, tok := range tokens {
		v[tok]++
	}

	var norm float64
	for tok, tf := range v {
		idf, ok := f.idf[tok]
		if !ok {
			idf = 1
		}
		w := tf * idf
		v[tok] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil
	}
	for tok := range v {
		v[tok] /= norm
	}
	return v
}

// dot of two normalized sparse vectors equals their cosine similarity.
func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for tok, w := range a {
		sum += w * b[tok]
	}
	return sum
}

func uniqueTokens(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, tok := range in {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
