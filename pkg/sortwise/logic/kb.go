package logic

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sortwise/sortwise/pkg/sortwise/internalerr"
)

// OutcomeKind tags the response category of an Assert or Check call.
type OutcomeKind int

const (
	// OutcomeAccepted means the sentence was added to the knowledge base.
	OutcomeAccepted OutcomeKind = iota
	// OutcomeDuplicate means the exact same logical statement is already known.
	OutcomeDuplicate
	// OutcomeContradiction means the sentence contradicts current entailments.
	OutcomeContradiction
	// OutcomeParseFailure means no grammar pattern matched the input.
	OutcomeParseFailure
	// OutcomeCorrect means the knowledge base entails the checked statement.
	OutcomeCorrect
	// OutcomeIncorrect means the knowledge base entails its negation.
	OutcomeIncorrect
	// OutcomeUnknown means neither the statement nor its negation is entailed.
	OutcomeUnknown
	// OutcomeInconclusive means proof search was cut off by the inference
	// budget before reaching a conclusion. Never reported as Unknown.
	OutcomeInconclusive
	// OutcomeUnavailable means the knowledge base failed to load and must
	// not be queried.
	OutcomeUnavailable
)

// Outcome is the tagged result of an Assert or Check: a category plus the
// fixed human-readable reply for it.
type Outcome struct {
	Kind OutcomeKind
	Text string
}

// Fixed reply strings, one per response category.
const (
	msgParseAssert  = "I couldn't understand that as a logical statement. Use: 'X is Y' or 'X is not Y'."
	msgParseCheck   = "I couldn't understand that to check. Use: 'Check that X is Y'."
	msgContradicts  = "Sorry this contradicts with what I know!"
	msgCorrect      = "Correct."
	msgIncorrect    = "Incorrect."
	msgUnknown      = "I don't know."
	msgInconclusive = "I ran out of reasoning budget before reaching a conclusion."
	msgUnavailable  = "My knowledge base failed its integrity check and is out of service."
)

// State tracks the knowledge-base lifecycle.
type State int

const (
	// Uninitialized is the state before any seed.
	Uninitialized State = iota
	// Seeded means the base holds only seed statements.
	Seeded
	// ExtendedByUser means at least one user assertion was accepted.
	ExtendedByUser
	// LoadFailed means seeding hit a contradiction; the base is out of
	// service until reseeded.
	LoadFailed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Seeded:
		return "seeded"
	case ExtendedByUser:
		return "extended"
	case LoadFailed:
		return "load-failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// KB is the ordered collection of accepted sentences plus the clause set
// derived from them. Every insertion passes the consistency guard first, so
// the clause set never entails both a ground literal and its negation.
//
// All public operations hold the mutex for their full duration; a proof
// search never observes a knowledge base mutated mid-search.
type KB struct {
	mu         sync.Mutex
	translator *Translator
	resolver   *Resolver

	sentences []Sentence
	raws      []string
	clauses   []Clause
	state     State
}

// Options configures a knowledge base.
type Options struct {
	// Budget bounds each proof search; zero means DefaultBudget.
	Budget int
}

// New creates an empty knowledge base.
func New(opts Options) *KB {
	return &KB{
		translator: NewTranslator(),
		resolver:   &Resolver{Budget: opts.Budget},
	}
}

// Assert translates a natural-language sentence, runs the consistency guard
// and, if the sentence is consistent and new, appends it to the base.
func (kb *KB) Assert(natural string) Outcome {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if kb.state == LoadFailed {
		return Outcome{Kind: OutcomeUnavailable, Text: msgUnavailable}
	}

	sentence, ok := kb.translator.Translate(natural)
	if !ok {
		return Outcome{Kind: OutcomeParseFailure, Text: msgParseAssert}
	}

	contradicts, err := kb.contradicts(sentence)
	if err != nil {
		return budgetOutcome(err)
	}
	if contradicts {
		return Outcome{Kind: OutcomeContradiction, Text: msgContradicts}
	}

	clean := cleanSurface(natural)
	for _, existing := range kb.sentences {
		if existing == sentence {
			return Outcome{Kind: OutcomeDuplicate, Text: fmt.Sprintf("I already know that %s.", clean)}
		}
	}

	kb.append(sentence, natural)
	kb.state = ExtendedByUser
	return Outcome{Kind: OutcomeAccepted, Text: fmt.Sprintf("OK, I will remember that %s.", clean)}
}

// Check translates a natural-language sentence and asks whether the base
// entails it, entails its negation, or neither. It never mutates the base.
func (kb *KB) Check(natural string) Outcome {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if kb.state == LoadFailed {
		return Outcome{Kind: OutcomeUnavailable, Text: msgUnavailable}
	}

	sentence, ok := kb.translator.Translate(natural)
	if !ok {
		return Outcome{Kind: OutcomeParseFailure, Text: msgParseCheck}
	}

	proved, err := kb.entails(sentence)
	if err != nil {
		return budgetOutcome(err)
	}
	if proved {
		return Outcome{Kind: OutcomeCorrect, Text: msgCorrect}
	}

	refuted, err := kb.refutes(sentence)
	if err != nil {
		return budgetOutcome(err)
	}
	if refuted {
		return Outcome{Kind: OutcomeIncorrect, Text: msgIncorrect}
	}

	return Outcome{Kind: OutcomeUnknown, Text: msgUnknown}
}

// Seed replaces the knowledge base wholesale from pre-formed logical
// statements in textbook syntax, skipping blank lines and '#' comments.
// Each statement is validated against the consistency guard as it is added;
// a contradiction or malformed statement is a fatal configuration error
// that wraps internalerr.ErrSeedIntegrity and leaves the base in the
// LoadFailed state.
func (kb *KB) Seed(statements []string) error {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	kb.sentences = nil
	kb.raws = nil
	kb.clauses = nil

	for _, line := range statements {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		sentence, err := ParseStatement(s)
		if err != nil {
			kb.state = LoadFailed
			return fmt.Errorf("%w: %v", internalerr.ErrSeedIntegrity, err)
		}

		contradicts, err := kb.contradicts(sentence)
		if err != nil {
			kb.state = LoadFailed
			return fmt.Errorf("%w: statement %q: %v", internalerr.ErrSeedIntegrity, s, err)
		}
		if contradicts {
			kb.state = LoadFailed
			return fmt.Errorf("%w: adding %q contradicts existing knowledge", internalerr.ErrSeedIntegrity, s)
		}

		kb.append(sentence, s)
	}

	kb.state = Seeded
	return nil
}

// Show returns the logical form of every accepted statement in insertion
// order, for diagnostics.
func (kb *KB) Show() []string {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	out := make([]string, len(kb.sentences))
	for i, s := range kb.sentences {
		out[i] = s.String()
	}
	return out
}

// Len returns the number of accepted statements.
func (kb *KB) Len() int {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return len(kb.sentences)
}

// State returns the lifecycle state.
func (kb *KB) State() State {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.state
}

// append records an accepted sentence. Callers hold the mutex.
func (kb *KB) append(s Sentence, raw string) {
	kb.sentences = append(kb.sentences, s)
	kb.raws = append(kb.raws, strings.TrimSpace(raw))
	kb.clauses = append(kb.clauses, Convert(s)...)
}

// entails asks whether the current clause set proves the sentence.
func (kb *KB) entails(s Sentence) (bool, error) {
	if s.Kind == RuleSentence {
		return kb.resolver.EntailsRule(kb.clauses, s.Antecedent, s.Consequent)
	}
	return kb.resolver.Entails(kb.clauses, s.Fact)
}

// refutes asks whether the current clause set entails the sentence's
// negation. For a rule, the negation is entailed exactly when the base plus
// the rule's clause form is refutable (a ground counterexample exists).
func (kb *KB) refutes(s Sentence) (bool, error) {
	if s.Kind == RuleSentence {
		working := append(cloneClauses(kb.clauses), Convert(s)...)
		return kb.resolver.Refute(working)
	}
	return kb.resolver.Entails(kb.clauses, s.Fact.Negate())
}

// contradicts is the consistency guard: it asks whether accepting the
// sentence would make the clause set inconsistent. For an atomic fact that
// means its negation is already entailed; for a universal rule it means the
// base plus the rule's clause form is refutable, i.e. a ground
// counterexample already follows from what we know.
func (kb *KB) contradicts(s Sentence) (bool, error) {
	return kb.refutes(s)
}

func budgetOutcome(err error) Outcome {
	if errors.Is(err, internalerr.ErrBudgetExceeded) {
		return Outcome{Kind: OutcomeInconclusive, Text: msgInconclusive}
	}
	// Refute only fails on budget exhaustion today; treat anything else
	// the same way rather than invent a category.
	return Outcome{Kind: OutcomeInconclusive, Text: msgInconclusive}
}

// cleanSurface trims whitespace and one trailing period for echoing the
// user's sentence back. Presentation only; carries no logical weight.
func cleanSurface(natural string) string {
	return strings.TrimSuffix(strings.TrimSpace(natural), ".")
}
