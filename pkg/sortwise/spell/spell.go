// Package spell rewrites near-miss words in user input to the closest
// known vocabulary word, so that small typos still reach the logic
// engine and the retrieval index.
package spell

import (
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// DefaultThreshold is the minimum similarity for a correction to apply.
const DefaultThreshold = 0.8

// Fixer holds the vocabulary of words it is allowed to correct toward.
type Fixer struct {
	threshold float64
	vocab     []string
	known     map[string]struct{}
}

// New builds a Fixer over the given vocabulary. Words are lowercased;
// a non-positive threshold gets DefaultThreshold.
func New(vocab []string, threshold float64) *Fixer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	f := &Fixer{
		threshold: threshold,
		known:     make(map[string]struct{}, len(vocab)),
	}
	for _, w := range vocab {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := f.known[w]; ok {
			continue
		}
		f.known[w] = struct{}{}
		f.vocab = append(f.vocab, w)
	}
	return f
}

// Add extends the vocabulary with another word.
func (f *Fixer) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	if _, ok := f.known[word]; ok {
		return
	}
	f.known[word] = struct{}{}
	f.vocab = append(f.vocab, word)
}

// Len reports the vocabulary size.
func (f *Fixer) Len() int { return len(f.vocab) }

// Fix rewrites each unknown word in text to its closest vocabulary
// word when the similarity clears the threshold. Known words, short
// words and non-letter runs pass through untouched. The second return
// reports whether anything changed.
func (f *Fixer) Fix(text string) (string, bool) {
	if len(f.vocab) == 0 {
		return text, false
	}

	var b strings.Builder
	changed := false
	for _, run := range splitRuns(text) {
		if !run.word {
			b.WriteString(run.text)
			continue
		}
		fixed, ok := f.fixWord(run.text)
		if ok {
			changed = true
		}
		b.WriteString(fixed)
	}
	if !changed {
		return text, false
	}
	return b.String(), true
}

func (f *Fixer) fixWord(word string) (string, bool) {
	// Corrections on very short words are more often wrong than right.
	if len(word) < 4 {
		return word, false
	}
	lower := strings.ToLower(word)
	if _, ok := f.known[lower]; ok {
		return word, false
	}

	best := ""
	bestScore := 0.0
	for _, candidate := range f.vocab {
		score := levenshtein.Similarity(lower, candidate, nil)
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < f.threshold {
		return word, false
	}
	return matchCase(word, best), true
}

// matchCase carries a leading capital from the original word onto the
// correction, so sentence starts stay capitalized.
func matchCase(original, fixed string) string {
	if original == "" || fixed == "" {
		return fixed
	}
	r := []rune(original)
	if unicode.IsUpper(r[0]) {
		fr := []rune(fixed)
		fr[0] = unicode.ToUpper(fr[0])
		return string(fr)
	}
	return fixed
}

type run struct {
	text string
	word bool
}

// splitRuns cuts text into alternating letter and non-letter runs so
// punctuation and spacing survive a rewrite byte for byte.
func splitRuns(text string) []run {
	var runs []run
	var current strings.Builder
	inWord := false
	for _, r := range text {
		isLetter := unicode.IsLetter(r)
		if current.Len() > 0 && isLetter != inWord {
			runs = append(runs, run{text: current.String(), word: inWord})
			current.Reset()
		}
		inWord = isLetter
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		runs = append(runs, run{text: current.String(), word: inWord})
	}
	return runs
}
