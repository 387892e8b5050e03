package logic

import (
	"errors"
	"strings"
)

// errNoMatch means a grammar variant did not structurally match the input;
// the translator moves on to the next variant. Any other failure (a phrase
// normalizing to an empty symbol) aborts the whole translation.
var errNoMatch = errors.New("pattern does not match")

var errEmptySymbol = errors.New("phrase normalizes to empty symbol")

// A grammar variant attempts to read one natural-language clause as a
// Sentence. Variants are pure functions tried in a fixed precedence order.
type grammar struct {
	name  string
	parse func(text string) (Sentence, error)
}

// Translator maps a bounded set of English sentence patterns into logical
// sentences:
//
//	"all <A> are <B>"   -> all x. (A(x) -> B(x))
//	"<A> is not <B>"    -> -B(A)
//	"<A> is a|an <B>"   -> B(A)
//	"<A> is <B>"        -> B(A)
//
// Matching is case-insensitive. The order matters: the negation and rule
// patterns must run before the generic "is" pattern, which would otherwise
// swallow them.
type Translator struct {
	grammars []grammar
}

// NewTranslator returns a translator with the documented precedence order.
func NewTranslator() *Translator {
	return &Translator{grammars: []grammar{
		{name: "universal-rule", parse: parseUniversalRule},
		{name: "negated-fact", parse: parseNegatedFact},
		{name: "indefinite-fact", parse: parseIndefiniteFact},
		{name: "generic-fact", parse: parseGenericFact},
	}}
}

// Translate converts one clause (prefix and trailing period already removed
// by the caller, though a single trailing period is tolerated) into a
// Sentence. The second return is false when no pattern matches or a matched
// phrase normalizes to an empty symbol.
func (t *Translator) Translate(text string) (Sentence, bool) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "."))
	for _, g := range t.grammars {
		s, err := g.parse(text)
		if err == nil {
			return s, true
		}
		if !errors.Is(err, errNoMatch) {
			return Sentence{}, false
		}
	}
	return Sentence{}, false
}

// splitOnWord splits text around the first occurrence of the given word
// (case-insensitive, whitespace-delimited). Both sides must be non-empty.
func splitOnWord(text, word string) (left, right string, ok bool) {
	lower := strings.ToLower(text)
	marker := " " + word + " "
	idx := strings.Index(lower, marker)
	if idx < 0 {
		return "", "", false
	}
	left = strings.TrimSpace(text[:idx])
	right = strings.TrimSpace(text[idx+len(marker):])
	if left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}

// stripLeadingWord removes one leading word (case-insensitive) if present
// and followed by more text.
func stripLeadingWord(text, word string) (string, bool) {
	lower := strings.ToLower(text)
	if !strings.HasPrefix(lower, word+" ") {
		return text, false
	}
	rest := strings.TrimSpace(text[len(word)+1:])
	if rest == "" {
		return text, false
	}
	return rest, true
}

func parseUniversalRule(text string) (Sentence, error) {
	rest, ok := stripLeadingWord(text, "all")
	if !ok {
		return Sentence{}, errNoMatch
	}
	a, b, ok := splitOnWord(rest, "are")
	if !ok {
		return Sentence{}, errNoMatch
	}
	ante, cons := NormalizeSymbol(a), NormalizeSymbol(b)
	if ante == "" || cons == "" {
		return Sentence{}, errEmptySymbol
	}
	return NewRule(ante, cons), nil
}

func parseNegatedFact(text string) (Sentence, error) {
	a, rest, ok := splitOnWord(text, "is")
	if !ok {
		return Sentence{}, errNoMatch
	}
	b, ok := stripLeadingWord(rest, "not")
	if !ok {
		return Sentence{}, errNoMatch
	}
	return makeFact(a, b, true)
}

func parseIndefiniteFact(text string) (Sentence, error) {
	a, rest, ok := splitOnWord(text, "is")
	if !ok {
		return Sentence{}, errNoMatch
	}
	b, ok := stripLeadingWord(rest, "a")
	if !ok {
		b, ok = stripLeadingWord(rest, "an")
	}
	if !ok {
		return Sentence{}, errNoMatch
	}
	return makeFact(a, b, false)
}

func parseGenericFact(text string) (Sentence, error) {
	a, b, ok := splitOnWord(text, "is")
	if !ok {
		return Sentence{}, errNoMatch
	}
	return makeFact(a, b, false)
}

func makeFact(subject, predicate string, negated bool) (Sentence, error) {
	c, p := NormalizeSymbol(subject), NormalizeSymbol(predicate)
	if c == "" || p == "" {
		return Sentence{}, errEmptySymbol
	}
	return NewFact(p, c, negated), nil
}
