// Package sortwise wires the logic knowledge base, the fuzzy store, the
// pattern responder and the retrieval fallback into a single chat engine.
package sortwise

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sortwise/sortwise/pkg/sortwise/fuzzy"
	"github.com/sortwise/sortwise/pkg/sortwise/logic"
	"github.com/sortwise/sortwise/pkg/sortwise/patterns"
	"github.com/sortwise/sortwise/pkg/sortwise/retrieval"
	"github.com/sortwise/sortwise/pkg/sortwise/spell"
)

// Summarizer fetches an encyclopedia summary for a topic.
type Summarizer interface {
	Summary(ctx context.Context, topic string) (string, error)
}

// Routing prefixes, matched case-insensitively.
const (
	prefixWiki       = "wiki "
	prefixKnow       = "i know that "
	prefixCheckFuzzy = "check certainty that "
	prefixCheck      = "check that "
)

// Route names reported by LastRoute.
const (
	RouteWiki        = "wiki"
	RouteFuzzyAssert = "fuzzy-assert"
	RouteKBAssert    = "kb-assert"
	RouteFuzzyCheck  = "fuzzy-check"
	RouteKBCheck     = "kb-check"
	RoutePattern     = "pattern"
	RouteRetrieval   = "retrieval"
	RouteDefault     = "default"
)

const msgDefault = "I'm not sure about that. Could you rephrase or ask something else?"

// Options configures an Engine instance
type Options struct {
	KB        *logic.KB
	Fuzzy     *fuzzy.Engine
	Patterns  *patterns.Set
	Retrieval *retrieval.Fallback
	Spell     *spell.Fixer
	Wiki      Summarizer

	SpellFix bool
	Debug    bool
}

// Engine is the main chat facade
type Engine struct {
	kb        *logic.KB
	fuzzy     *fuzzy.Engine
	patterns  *patterns.Set
	retrieval *retrieval.Fallback
	spell     *spell.Fixer
	wiki      Summarizer

	mu        sync.Mutex
	spellFix  bool
	debug     bool
	lastRoute string
}

// New creates an Engine with the given collaborators. Nil collaborators
// get inert defaults so a partially-configured engine still answers.
func New(opts Options) *Engine {
	e := &Engine{
		kb:        opts.KB,
		fuzzy:     opts.Fuzzy,
		patterns:  opts.Patterns,
		retrieval: opts.Retrieval,
		spell:     opts.Spell,
		wiki:      opts.Wiki,
		spellFix:  opts.SpellFix,
		debug:     opts.Debug,
	}
	if e.kb == nil {
		e.kb = logic.New(logic.Options{})
	}
	if e.fuzzy == nil {
		e.fuzzy = fuzzy.New()
	}
	if e.patterns == nil {
		e.patterns = patterns.New(nil)
	}
	if e.retrieval == nil {
		e.retrieval = retrieval.New(nil, nil, 0)
	}
	return e
}

// Respond routes one user turn to the component that can answer it and
// returns the reply text. Routing is by prefix: "wiki <topic>" asks the
// summarizer (spell-fixing the topic), "I know that ..." asserts (fuzzy
// shape first, crisp otherwise), "check certainty that ..." queries the
// fuzzy store and "check that ..." queries the logic base. Everything
// else is spell-fixed, then tried against patterns and the Q/A corpus.
func (e *Engine) Respond(ctx context.Context, input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		e.setRoute(RouteDefault)
		return msgDefault
	}
	lower := strings.ToLower(input)

	if strings.HasPrefix(lower, prefixWiki) {
		e.setRoute(RouteWiki)
		return e.lookupWiki(ctx, input[len(prefixWiki):])
	}

	if strings.HasPrefix(lower, prefixKnow) {
		body := input[len(prefixKnow):]
		if reply, ok := e.fuzzy.Assert(body); ok {
			e.setRoute(RouteFuzzyAssert)
			return reply
		}
		e.setRoute(RouteKBAssert)
		return e.kb.Assert(body).Text
	}

	// The certainty prefix shadows the plain one, so test it first.
	if strings.HasPrefix(lower, prefixCheckFuzzy) {
		e.setRoute(RouteFuzzyCheck)
		return e.fuzzy.Check(input[len(prefixCheckFuzzy):])
	}

	if strings.HasPrefix(lower, prefixCheck) {
		e.setRoute(RouteKBCheck)
		return e.kb.Check(input[len(prefixCheck):]).Text
	}

	if e.SpellEnabled() && e.spell != nil {
		if fixed, changed := e.spell.Fix(input); changed {
			input = fixed
		}
	}

	if reply, ok := e.patterns.Respond(input); ok {
		e.setRoute(RoutePattern)
		return reply
	}

	if answer, ok := e.retrieval.Answer(input); ok {
		e.setRoute(RouteRetrieval)
		return answer
	}

	e.setRoute(RouteDefault)
	return msgDefault
}

func (e *Engine) lookupWiki(ctx context.Context, topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "Tell me a topic, e.g. 'wiki recycling'."
	}
	if e.wiki == nil {
		return "Wikipedia lookups are not configured."
	}
	if e.SpellEnabled() && e.spell != nil {
		if fixed, changed := e.spell.Fix(topic); changed {
			topic = fixed
		}
	}
	summary, err := e.wiki.Summary(ctx, topic)
	if err != nil {
		return fmt.Sprintf("Sorry, the Wikipedia lookup failed: %v.", err)
	}
	return summary
}

// KB exposes the crisp knowledge base, e.g. for seeding at startup.
func (e *Engine) KB() *logic.KB { return e.kb }

// KBLines returns the logical form of every accepted statement.
func (e *Engine) KBLines() []string { return e.kb.Show() }

// LastRoute reports which component answered the most recent Respond.
func (e *Engine) LastRoute() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastRoute
}

func (e *Engine) setRoute(route string) {
	e.mu.Lock()
	e.lastRoute = route
	e.mu.Unlock()
}

// SetDebug toggles route reporting in the CLI.
func (e *Engine) SetDebug(on bool) {
	e.mu.Lock()
	e.debug = on
	e.mu.Unlock()
}

// DebugEnabled reports the debug toggle.
func (e *Engine) DebugEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debug
}

// SetSpell toggles typo correction for pattern and retrieval inputs.
func (e *Engine) SetSpell(on bool) {
	e.mu.Lock()
	e.spellFix = on
	e.mu.Unlock()
}

// SpellEnabled reports the spell-fix toggle.
func (e *Engine) SpellEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spellFix
}

// Stats summarizes the engine's loaded knowledge.
type Stats struct {
	KBStatements int
	KBState      logic.State
	FuzzyFacts   int
	Patterns     int
	CorpusPairs  int
}

// Stats reports the size of each knowledge component.
func (e *Engine) Stats() Stats {
	return Stats{
		KBStatements: e.kb.Len(),
		KBState:      e.kb.State(),
		FuzzyFacts:   e.fuzzy.Len(),
		Patterns:     e.patterns.Len(),
		CorpusPairs:  e.retrieval.Len(),
	}
}
