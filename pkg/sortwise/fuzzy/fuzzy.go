// Package fuzzy holds graded-certainty facts alongside the crisp logic
// knowledge base: statements like "Plastic bottle is 90% recyclable" that
// carry a degree of truth in [0,1] instead of a polarity.
package fuzzy

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sortwise/sortwise/pkg/sortwise/logic"
)

const (
	msgParseAssert = "Couldn't parse fuzzy fact. Use format: 'Item is [Number]% Property' or 'Item is [0.0-1.0] Property'."
	msgParseCheck  = "Couldn't parse fuzzy query. Use format: 'Check certainty that [Item] is [Property]'."
)

type key struct {
	subject   string
	predicate string
}

// Engine is a certainty store keyed by (subject, predicate) symbol pairs.
// Symbols share the logic package's normalizer, so "Plastic  Bottle!" and
// "plastic bottle" address the same entry.
type Engine struct {
	mu    sync.Mutex
	facts map[key]float64
}

// New creates an empty fuzzy engine.
func New() *Engine {
	return &Engine{facts: make(map[key]float64)}
}

// Assert parses and stores a graded fact. Recognized shapes:
//
//	"<A> is <N>% <B>"      e.g. "Plastic bottle is 90% recyclable"
//	"<A> is <0.0-1.0> <B>" e.g. "Greasy cardboard is 0.1 recyclable"
//
// The reply echoes the stored certainty; a non-matching input returns the
// fixed guidance string. The second return reports whether the input had a
// fuzzy shape at all, so callers can fall back to the crisp KB.
func (e *Engine) Assert(text string) (string, bool) {
	subjRaw, predRaw, score, ok := parseGradedFact(text)
	if !ok {
		return msgParseAssert, false
	}

	subj, pred := logic.NormalizeSymbol(subjRaw), logic.NormalizeSymbol(predRaw)
	if subj == "" || pred == "" {
		return msgParseAssert, false
	}

	e.mu.Lock()
	e.facts[key{subj, pred}] = score
	e.mu.Unlock()

	return fmt.Sprintf("Fuzzy KB updated: Certainty(%s is %s) = %.2f.", subjRaw, predRaw, score), true
}

// Check looks up the certainty for "<A> is <B>" and renders it with a
// banded interpretation.
func (e *Engine) Check(text string) string {
	subjRaw, rest, ok := splitIs(text)
	if !ok {
		return msgParseCheck
	}
	predRaw := strings.TrimSpace(rest)

	subj, pred := logic.NormalizeSymbol(subjRaw), logic.NormalizeSymbol(predRaw)
	if subj == "" || pred == "" {
		return msgParseCheck
	}

	e.mu.Lock()
	score, known := e.facts[key{subj, pred}]
	e.mu.Unlock()

	if !known {
		return fmt.Sprintf("I have no fuzzy knowledge whether %s is %s.", subjRaw, predRaw)
	}
	return fmt.Sprintf("I am %.0f%% sure that %s is %s. This is %s.", score*100, subjRaw, predRaw, interpret(score))
}

// Len returns the number of stored graded facts.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.facts)
}

func interpret(score float64) string {
	switch {
	case score >= 0.8:
		return "Highly Likely"
	case score >= 0.6:
		return "Likely"
	case score >= 0.4:
		return "Uncertain / Mixed"
	case score >= 0.2:
		return "Unlikely"
	default:
		return "Highly Unlikely"
	}
}

// parseGradedFact splits "<A> is <score> <B>" where score is either "N%"
// (possibly "N %") or a bare decimal in [0,1].
func parseGradedFact(text string) (subject, predicate string, score float64, ok bool) {
	subject, rest, found := splitIs(text)
	if !found {
		return "", "", 0, false
	}

	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return "", "", 0, false
	}

	numeric := fields[0]
	remainder := fields[1:]

	percent := false
	switch {
	case strings.HasSuffix(numeric, "%"):
		percent = true
		numeric = strings.TrimSuffix(numeric, "%")
	case len(remainder) >= 2 && remainder[0] == "%":
		percent = true
		remainder = remainder[1:]
	}

	// Bare integers like "1 liter" are measurements, not certainties; the
	// decimal form requires an explicit fraction.
	if !percent && !strings.Contains(numeric, ".") && numeric != "0" {
		return "", "", 0, false
	}

	v, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return "", "", 0, false
	}
	if percent {
		v /= 100
	}
	if v < 0 || v > 1 {
		return "", "", 0, false
	}

	return subject, strings.Join(remainder, " "), v, true
}

// splitIs splits text around the first whitespace-delimited "is",
// case-insensitively, requiring both sides to be non-empty.
func splitIs(text string) (left, right string, ok bool) {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, " is ")
	if idx < 0 {
		return "", "", false
	}
	left = strings.TrimSpace(text[:idx])
	right = strings.TrimSpace(text[idx+len(" is "):])
	if left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}
