package logic

import (
	"github.com/sortwise/sortwise/pkg/sortwise/internalerr"
)

// DefaultBudget caps the number of clause pairs a single proof search may
// examine. The clause space of this fragment is finite, so saturation always
// terminates; the budget is a defensive cap so a pathological knowledge base
// fails loudly instead of stalling the caller.
const DefaultBudget = 50000

// Resolver decides entailment over a clause set by refutation. Unification
// is restricted to the fragment: a variable unifies with any constant or
// with another variable; two distinct constants never unify.
type Resolver struct {
	// Budget overrides DefaultBudget when positive.
	Budget int
}

// Entails reports whether the clause set entails the goal literal: the goal
// is negated, added to a working set, and resolution runs to saturation.
// Returns internalerr.ErrBudgetExceeded if the search is cut off before
// reaching a conclusion.
func (r *Resolver) Entails(kb []Clause, goal Literal) (bool, error) {
	working := append(cloneClauses(kb), NewClause(goal.Negate()))
	return r.Refute(working)
}

// EntailsRule reports whether the clause set entails the universal rule
// "all x. (P(x) -> Q(x))". The rule's negation is an existential, so it is
// Skolemized with a witness constant that no surface phrase can normalize
// to, then refuted as usual.
func (r *Resolver) EntailsRule(kb []Clause, antecedent, consequent string) (bool, error) {
	witness := Const("*witness")
	working := append(cloneClauses(kb),
		NewClause(Literal{Atom: Atom{Pred: antecedent, Arg: witness}}),
		NewClause(Literal{Atom: Atom{Pred: consequent, Arg: witness}, Negated: true}),
	)
	return r.Refute(working)
}

// Refute runs resolution to saturation on the given clauses and reports
// whether the empty clause is derivable. Derived clauses are tracked by
// structural identity so nothing is re-derived, which bounds the search.
func (r *Resolver) Refute(clauses []Clause) (bool, error) {
	budget := r.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}

	seen := make(map[string]struct{}, len(clauses))
	working := make([]Clause, 0, len(clauses))
	for _, c := range clauses {
		if c.Empty() {
			return true, nil
		}
		if c.Tautology() {
			continue
		}
		if _, ok := seen[c.Key()]; ok {
			continue
		}
		seen[c.Key()] = struct{}{}
		working = append(working, c)
	}

	steps := 0
	// Pair every clause with all earlier ones; appended resolvents are
	// reached as i advances, so the loop runs to saturation.
	for i := 1; i < len(working); i++ {
		for j := 0; j < i; j++ {
			steps++
			if steps > budget {
				return false, internalerr.ErrBudgetExceeded
			}
			for _, res := range resolvePair(working[i], working[j]) {
				if res.Empty() {
					return true, nil
				}
				if res.Tautology() {
					continue
				}
				if _, ok := seen[res.Key()]; ok {
					continue
				}
				seen[res.Key()] = struct{}{}
				working = append(working, res)
			}
		}
	}
	return false, nil
}

// resolvePair yields every resolvent of two clauses: for each pair of
// complementary literals whose arguments unify, the union of the remaining
// literals after substitution.
func resolvePair(a, b Clause) []Clause {
	var out []Clause
	for i, la := range a.Literals {
		for j, lb := range b.Literals {
			if la.Atom.Pred != lb.Atom.Pred || la.Negated == lb.Negated {
				continue
			}
			bindA, bindB, ok := unify(la.Atom.Arg, lb.Atom.Arg)
			if !ok {
				continue
			}
			rest := make([]Literal, 0, len(a.Literals)+len(b.Literals)-2)
			for k, l := range a.Literals {
				if k != i {
					rest = append(rest, substitute(l, bindA))
				}
			}
			for k, l := range b.Literals {
				if k != j {
					rest = append(rest, substitute(l, bindB))
				}
			}
			out = append(out, NewClause(rest...))
		}
	}
	return out
}

// unify matches the arguments of two complementary literals. Each side gets
// its own binding because the bound variable is scoped per clause. A nil
// binding means the side is unchanged.
func unify(a, b Term) (bindA, bindB *Term, ok bool) {
	switch {
	case a.Var && b.Var:
		return nil, nil, true
	case a.Var:
		return &b, nil, true
	case b.Var:
		return nil, &a, true
	default:
		return nil, nil, a.Sym == b.Sym
	}
}

// substitute replaces the clause's variable with the bound constant.
func substitute(l Literal, binding *Term) Literal {
	if binding == nil || !l.Atom.Arg.Var {
		return l
	}
	l.Atom.Arg = *binding
	return l
}

func cloneClauses(in []Clause) []Clause {
	out := make([]Clause, len(in))
	copy(out, in)
	return out
}
