package sortwise

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sortwise/sortwise/pkg/sortwise/logic"
	"github.com/sortwise/sortwise/pkg/sortwise/patterns"
	"github.com/sortwise/sortwise/pkg/sortwise/retrieval"
	"github.com/sortwise/sortwise/pkg/sortwise/spell"
	"github.com/sortwise/sortwise/pkg/sortwise/store"
)

type fakeWiki struct {
	summary string
	err     error
	topic   string
}

func (f *fakeWiki) Summary(_ context.Context, topic string) (string, error) {
	f.topic = topic
	return f.summary, f.err
}

func seededEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e := New(opts)
	err := e.KB().Seed([]string{
		"Plastic(Bottle)",
		"all x. (Plastic(x) -> Recyclable(x))",
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return e
}

func TestRespondKBAssertAndCheck(t *testing.T) {
	e := seededEngine(t, Options{})
	ctx := context.Background()

	reply := e.Respond(ctx, "I know that Newspaper is paper")
	if reply != "OK, I will remember that Newspaper is paper." {
		t.Errorf("assert reply = %q", reply)
	}
	if e.LastRoute() != RouteKBAssert {
		t.Errorf("route = %q", e.LastRoute())
	}

	reply = e.Respond(ctx, "Check that Bottle is recyclable")
	if reply != "Correct." {
		t.Errorf("check reply = %q", reply)
	}
	if e.LastRoute() != RouteKBCheck {
		t.Errorf("route = %q", e.LastRoute())
	}
}

func TestRespondContradictionRejected(t *testing.T) {
	e := seededEngine(t, Options{})
	ctx := context.Background()

	reply := e.Respond(ctx, "I know that Bottle is not recyclable")
	if reply != "Sorry this contradicts with what I know!" {
		t.Errorf("reply = %q", reply)
	}
	if e.Stats().KBStatements != 2 {
		t.Errorf("KB grew to %d statements", e.Stats().KBStatements)
	}
}

func TestRespondFuzzyAssertWinsOverKB(t *testing.T) {
	e := seededEngine(t, Options{})
	ctx := context.Background()

	reply := e.Respond(ctx, "I know that Greasy pizza box is 20% recyclable")
	if !strings.Contains(reply, "Fuzzy KB updated") {
		t.Errorf("reply = %q", reply)
	}
	if e.LastRoute() != RouteFuzzyAssert {
		t.Errorf("route = %q", e.LastRoute())
	}
	// The graded fact must not leak into the crisp base.
	if e.Stats().KBStatements != 2 {
		t.Errorf("KB grew to %d statements", e.Stats().KBStatements)
	}

	reply = e.Respond(ctx, "check certainty that Greasy pizza box is recyclable")
	if !strings.Contains(reply, "20%") || !strings.Contains(reply, "Unlikely") {
		t.Errorf("fuzzy check reply = %q", reply)
	}
	if e.LastRoute() != RouteFuzzyCheck {
		t.Errorf("route = %q", e.LastRoute())
	}
}

func TestRespondWiki(t *testing.T) {
	w := &fakeWiki{summary: "Recycling is the process of converting waste into new materials."}
	e := New(Options{Wiki: w})
	ctx := context.Background()

	reply := e.Respond(ctx, "wiki recycling")
	if reply != w.summary {
		t.Errorf("reply = %q", reply)
	}
	if w.topic != "recycling" {
		t.Errorf("topic = %q", w.topic)
	}
	if e.LastRoute() != RouteWiki {
		t.Errorf("route = %q", e.LastRoute())
	}
}

func TestRespondWikiError(t *testing.T) {
	w := &fakeWiki{err: errors.New("no article")}
	e := New(Options{Wiki: w})

	reply := e.Respond(context.Background(), "wiki xyzzy")
	if !strings.Contains(reply, "lookup failed") {
		t.Errorf("reply = %q", reply)
	}
}

func TestRespondWikiUnconfigured(t *testing.T) {
	e := New(Options{})

	reply := e.Respond(context.Background(), "wiki recycling")
	if !strings.Contains(reply, "not configured") {
		t.Errorf("reply = %q", reply)
	}
}

func TestRespondWikiEmptyTopic(t *testing.T) {
	e := New(Options{Wiki: &fakeWiki{summary: "x"}})

	reply := e.Respond(context.Background(), "wiki   ")
	if !strings.Contains(reply, "Tell me a topic") {
		t.Errorf("reply = %q", reply)
	}
}

func TestRespondWikiSpellFix(t *testing.T) {
	w := &fakeWiki{summary: "x"}
	fixer := spell.New([]string{"recycling"}, 0)
	e := New(Options{Wiki: w, Spell: fixer, SpellFix: true})
	ctx := context.Background()

	e.Respond(ctx, "wiki recyclng")
	if w.topic != "recycling" {
		t.Errorf("topic = %q, want %q", w.topic, "recycling")
	}

	e.SetSpell(false)
	e.Respond(ctx, "wiki recyclng")
	if w.topic != "recyclng" {
		t.Errorf("spell-off topic = %q", w.topic)
	}
}

func TestRespondPattern(t *testing.T) {
	set := patterns.New([]patterns.Pattern{
		{Match: "hello", Template: "Hi! Ask me about recycling."},
	})
	e := New(Options{Patterns: set})

	reply := e.Respond(context.Background(), "Hello")
	if reply != "Hi! Ask me about recycling." {
		t.Errorf("reply = %q", reply)
	}
	if e.LastRoute() != RoutePattern {
		t.Errorf("route = %q", e.LastRoute())
	}
}

func TestRespondRetrievalFallback(t *testing.T) {
	fb := retrieval.New([]store.QAPair{
		{Question: "how do I dispose of batteries", Answer: "Take batteries to a collection point."},
	}, nil, 0)
	e := New(Options{Retrieval: fb})

	reply := e.Respond(context.Background(), "how do I dispose of batteries")
	if reply != "Take batteries to a collection point." {
		t.Errorf("reply = %q", reply)
	}
	if e.LastRoute() != RouteRetrieval {
		t.Errorf("route = %q", e.LastRoute())
	}
}

func TestRespondDefault(t *testing.T) {
	e := New(Options{})

	reply := e.Respond(context.Background(), "quantum flux capacitors")
	if reply != msgDefault {
		t.Errorf("reply = %q", reply)
	}
	if e.LastRoute() != RouteDefault {
		t.Errorf("route = %q", e.LastRoute())
	}
}

func TestRespondEmptyInput(t *testing.T) {
	e := New(Options{})

	if reply := e.Respond(context.Background(), "   "); reply != msgDefault {
		t.Errorf("reply = %q", reply)
	}
}

func TestRespondSpellFix(t *testing.T) {
	set := patterns.New([]patterns.Pattern{
		{Match: "hello", Template: "Hi!"},
	})
	fixer := spell.New([]string{"hello"}, 0)
	e := New(Options{Patterns: set, Spell: fixer, SpellFix: true})

	reply := e.Respond(context.Background(), "helllo")
	if reply != "Hi!" {
		t.Errorf("reply = %q", reply)
	}

	e.SetSpell(false)
	reply = e.Respond(context.Background(), "helllo")
	if reply != msgDefault {
		t.Errorf("spell-off reply = %q", reply)
	}
}

func TestSpellFixDoesNotTouchLogicInput(t *testing.T) {
	fixer := spell.New([]string{"recyclable"}, 0)
	e := seededEngine(t, Options{Spell: fixer, SpellFix: true})

	// A prefixed logic statement bypasses the fixer entirely.
	reply := e.Respond(context.Background(), "Check that Bottle is recyclable")
	if reply != "Correct." {
		t.Errorf("reply = %q", reply)
	}
}

func TestStats(t *testing.T) {
	e := seededEngine(t, Options{})
	e.Respond(context.Background(), "I know that Lid is 50% recyclable")

	stats := e.Stats()
	if stats.KBStatements != 2 {
		t.Errorf("KBStatements = %d", stats.KBStatements)
	}
	if stats.KBState != logic.Seeded {
		t.Errorf("KBState = %v", stats.KBState)
	}
	if stats.FuzzyFacts != 1 {
		t.Errorf("FuzzyFacts = %d", stats.FuzzyFacts)
	}
}

func TestToggles(t *testing.T) {
	e := New(Options{Debug: true, SpellFix: true})

	if !e.DebugEnabled() || !e.SpellEnabled() {
		t.Error("toggles should start enabled")
	}
	e.SetDebug(false)
	e.SetSpell(false)
	if e.DebugEnabled() || e.SpellEnabled() {
		t.Error("toggles should be off")
	}
}
