package logic

import (
	"fmt"
	"strings"

	"github.com/sortwise/sortwise/pkg/sortwise/internalerr"
)

// Term is the single argument of an atom: either a logical constant or the
// universally bound variable. Constants carry their canonical token; the
// variable carries its name (conventionally "x").
type Term struct {
	Sym string
	Var bool
}

// Const returns a constant term for a canonical token.
func Const(token string) Term { return Term{Sym: token} }

// Variable returns the bound variable term.
func Variable(name string) Term { return Term{Sym: name, Var: true} }

func (t Term) String() string {
	if t.Var {
		return t.Sym
	}
	return Display(t.Sym)
}

// Atom is a unary predicate applied to one term.
type Atom struct {
	Pred string
	Arg  Term
}

func (a Atom) String() string {
	return fmt.Sprintf("%s(%s)", Display(a.Pred), a.Arg)
}

// Literal is an atom with a polarity flag.
type Literal struct {
	Atom    Atom
	Negated bool
}

// Negate returns the literal with inverted polarity.
func (l Literal) Negate() Literal {
	l.Negated = !l.Negated
	return l
}

func (l Literal) String() string {
	if l.Negated {
		return "-" + l.Atom.String()
	}
	return l.Atom.String()
}

// SentenceKind distinguishes ground facts from universally quantified rules.
type SentenceKind int

const (
	// FactSentence is a ground literal, e.g. Plastic(Bottle).
	FactSentence SentenceKind = iota
	// RuleSentence is "all x. (P(x) -> Q(x))".
	RuleSentence
)

// Sentence is the unit of knowledge: either a ground literal or a universal
// implication over a single bound variable. Sentences are comparable, so
// duplicate detection is plain equality.
type Sentence struct {
	Kind SentenceKind

	// Fact holds the literal for FactSentence.
	Fact Literal

	// Antecedent and Consequent hold the predicate tokens for RuleSentence.
	Antecedent string
	Consequent string
}

// NewFact builds a fact sentence from canonical tokens.
func NewFact(pred, constant string, negated bool) Sentence {
	return Sentence{
		Kind: FactSentence,
		Fact: Literal{Atom: Atom{Pred: pred, Arg: Const(constant)}, Negated: negated},
	}
}

// NewRule builds "all x. (antecedent(x) -> consequent(x))" from canonical
// predicate tokens.
func NewRule(antecedent, consequent string) Sentence {
	return Sentence{Kind: RuleSentence, Antecedent: antecedent, Consequent: consequent}
}

// String renders the sentence in textbook syntax, the same form the seed
// parser accepts.
func (s Sentence) String() string {
	switch s.Kind {
	case RuleSentence:
		return fmt.Sprintf("all x. (%s(x) -> %s(x))", Display(s.Antecedent), Display(s.Consequent))
	default:
		return s.Fact.String()
	}
}

// ParseStatement parses one pre-formed logical statement in textbook syntax:
//
//	Pred(Const)
//	-Pred(Const)
//	all x. (Pred1(x) -> Pred2(x))
//
// This is the seed-file grammar; natural language goes through the
// Translator instead.
func ParseStatement(line string) (Sentence, error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return Sentence{}, fmt.Errorf("%w: empty statement", internalerr.ErrInvalidInput)
	}

	if v, rest, ok := cutRulePrefix(s); ok {
		return parseRuleBody(line, v, rest)
	}

	negated := false
	if strings.HasPrefix(s, "-") {
		negated = true
		s = strings.TrimSpace(s[1:])
	}
	pred, arg, err := parseApplication(s)
	if err != nil {
		return Sentence{}, fmt.Errorf("statement %q: %w", line, err)
	}
	return NewFact(pred, arg, negated), nil
}

// cutRulePrefix recognizes "all <var>." and returns the variable name and
// the remainder.
func cutRulePrefix(s string) (variable, rest string, ok bool) {
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "all ") {
		return "", "", false
	}
	rest = strings.TrimSpace(s[len("all "):])
	dot := strings.Index(rest, ".")
	if dot <= 0 {
		return "", "", false
	}
	variable = strings.TrimSpace(rest[:dot])
	if NormalizeSymbol(variable) != variable || variable == "" {
		return "", "", false
	}
	return variable, strings.TrimSpace(rest[dot+1:]), true
}

func parseRuleBody(line, variable, body string) (Sentence, error) {
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return Sentence{}, fmt.Errorf("%w: statement %q: rule body must be parenthesized", internalerr.ErrInvalidInput, line)
	}
	inner := strings.TrimSpace(body[1 : len(body)-1])
	lhs, rhs, found := strings.Cut(inner, "->")
	if !found {
		return Sentence{}, fmt.Errorf("%w: statement %q: rule body needs '->'", internalerr.ErrInvalidInput, line)
	}

	ante, v1, err := parseApplication(strings.TrimSpace(lhs))
	if err != nil {
		return Sentence{}, fmt.Errorf("statement %q: %w", line, err)
	}
	cons, v2, err := parseApplication(strings.TrimSpace(rhs))
	if err != nil {
		return Sentence{}, fmt.Errorf("statement %q: %w", line, err)
	}
	if v1 != variable || v2 != variable {
		return Sentence{}, fmt.Errorf("%w: statement %q: both atoms must use variable %q", internalerr.ErrInvalidInput, line, variable)
	}
	return NewRule(ante, cons), nil
}

// parseApplication parses "Name(Arg)" and returns canonical tokens. Name
// and Arg must be plain identifiers; anything else is malformed.
func parseApplication(s string) (name, arg string, err error) {
	open := strings.Index(s, "(")
	if open <= 0 {
		return "", "", fmt.Errorf("%w: expected Name(Arg), got %q", internalerr.ErrInvalidInput, s)
	}
	if !strings.HasSuffix(s, ")") {
		return "", "", fmt.Errorf("%w: missing ')' in %q", internalerr.ErrInvalidInput, s)
	}
	rawName := strings.TrimSpace(s[:open])
	rawArg := strings.TrimSpace(s[open+1 : len(s)-1])
	if !isIdent(rawName) || !isIdent(rawArg) {
		return "", "", fmt.Errorf("%w: expected Name(Arg), got %q", internalerr.ErrInvalidInput, s)
	}
	return NormalizeSymbol(rawName), NormalizeSymbol(rawArg), nil
}

// isIdent reports whether s is a non-empty run of letters, digits and
// underscores.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
