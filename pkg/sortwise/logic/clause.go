package logic

import (
	"sort"
	"strings"
)

// Clause is a finite set of literals interpreted as their disjunction. The
// empty clause denotes a contradiction and is the goal of refutation.
//
// Literals are kept sorted and deduplicated so that structural equality is
// independent of the order they were derived in.
type Clause struct {
	Literals []Literal
}

// NewClause builds a clause from literals, deduplicating and sorting them.
func NewClause(lits ...Literal) Clause {
	seen := make(map[Literal]struct{}, len(lits))
	out := make([]Literal, 0, len(lits))
	for _, l := range lits {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return Clause{Literals: out}
}

// Empty reports whether this is the empty clause.
func (c Clause) Empty() bool { return len(c.Literals) == 0 }

// Key is a canonical identity for tracking already-derived clauses.
func (c Clause) Key() string {
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " | ")
}

func (c Clause) String() string {
	if c.Empty() {
		return "<empty>"
	}
	return c.Key()
}

// Tautology reports whether the clause contains a literal and its negation,
// making it trivially true and useless for refutation.
func (c Clause) Tautology() bool {
	pos := make(map[Atom]struct{}, len(c.Literals))
	for _, l := range c.Literals {
		if !l.Negated {
			pos[l.Atom] = struct{}{}
		}
	}
	for _, l := range c.Literals {
		if l.Negated {
			if _, ok := pos[l.Atom]; ok {
				return true
			}
		}
	}
	return false
}

// Convert rewrites a sentence into clause form. A fact becomes a unit
// clause; a rule "all x. (P(x) -> Q(x))" becomes {-P(x), Q(x)}. The fragment
// has no existential quantifiers, so no Skolemization is needed. Conversion
// is total for every sentence the Translator or seed parser can produce.
func Convert(s Sentence) []Clause {
	switch s.Kind {
	case RuleSentence:
		x := Variable("x")
		return []Clause{NewClause(
			Literal{Atom: Atom{Pred: s.Antecedent, Arg: x}, Negated: true},
			Literal{Atom: Atom{Pred: s.Consequent, Arg: x}},
		)}
	default:
		return []Clause{NewClause(s.Fact)}
	}
}
