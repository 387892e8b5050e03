package logic

import "testing"

func TestConvertFact(t *testing.T) {
	clauses := Convert(NewFact("plastic", "bottle", false))
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	if got := clauses[0].Key(); got != "Plastic(Bottle)" {
		t.Errorf("unit clause = %s", got)
	}
}

func TestConvertNegatedFact(t *testing.T) {
	clauses := Convert(NewFact("recyclable", "bottle", true))
	if got := clauses[0].Key(); got != "-Recyclable(Bottle)" {
		t.Errorf("unit clause = %s", got)
	}
}

func TestConvertRule(t *testing.T) {
	clauses := Convert(NewRule("plastic", "recyclable"))
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	c := clauses[0]
	if len(c.Literals) != 2 {
		t.Fatalf("expected 2 literals, got %d", len(c.Literals))
	}

	var sawNegAnte, sawPosCons bool
	for _, l := range c.Literals {
		if !l.Atom.Arg.Var {
			t.Errorf("rule literal argument must be the variable, got %v", l.Atom.Arg)
		}
		if l.Negated && l.Atom.Pred == "plastic" {
			sawNegAnte = true
		}
		if !l.Negated && l.Atom.Pred == "recyclable" {
			sawPosCons = true
		}
	}
	if !sawNegAnte || !sawPosCons {
		t.Errorf("rule clause wrong: %s", c)
	}
}

func TestClauseKeyIgnoresLiteralOrder(t *testing.T) {
	l1 := Literal{Atom: Atom{Pred: "plastic", Arg: Variable("x")}, Negated: true}
	l2 := Literal{Atom: Atom{Pred: "recyclable", Arg: Variable("x")}}

	if NewClause(l1, l2).Key() != NewClause(l2, l1).Key() {
		t.Error("clause identity depends on literal order")
	}
}

func TestClauseDeduplicatesLiterals(t *testing.T) {
	l := Literal{Atom: Atom{Pred: "plastic", Arg: Const("bottle")}}
	if c := NewClause(l, l); len(c.Literals) != 1 {
		t.Errorf("duplicate literal kept: %s", c)
	}
}

func TestClauseTautology(t *testing.T) {
	l := Literal{Atom: Atom{Pred: "plastic", Arg: Const("bottle")}}
	if !NewClause(l, l.Negate()).Tautology() {
		t.Error("P | -P not recognized as tautology")
	}
	if NewClause(l).Tautology() {
		t.Error("unit clause flagged as tautology")
	}
}
