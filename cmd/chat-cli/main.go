package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sortwise/sortwise/internal/wiki"
	"github.com/sortwise/sortwise/pkg/sortwise"
	"github.com/sortwise/sortwise/pkg/sortwise/config"
	"github.com/sortwise/sortwise/pkg/sortwise/logic"
	"github.com/sortwise/sortwise/pkg/sortwise/retrieval"
	"github.com/sortwise/sortwise/pkg/sortwise/spell"
	"github.com/sortwise/sortwise/pkg/sortwise/store"
	"github.com/sortwise/sortwise/pkg/sortwise/store/sqlite"
	"github.com/sortwise/sortwise/pkg/sortwise/transcript"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (required)")
		say        = flag.String("say", "", "One-shot input (non-interactive mode)")
	)
	flag.Parse()

	if *configPath == "" {
		log.Fatal("--config required")
	}

	ctx := context.Background()

	app, cleanup, err := buildApp(ctx, *configPath)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { cleanup() }()

	// One-shot mode
	if *say != "" {
		fmt.Println(app.engine.Respond(ctx, *say))
		return
	}

	// Interactive mode
	fmt.Println("===========================================")
	fmt.Println("  SortWise Chat CLI")
	fmt.Println("  Recycling know-how with a logic core")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Type a message, or :help for commands (Ctrl+D to exit):")
	fmt.Println()

	tw, err := transcript.New(app.cfg.LogDir)
	if err != nil {
		log.Printf("transcript disabled: %v", err)
		tw = nil
	} else {
		defer tw.Close()
		fmt.Printf("(session %s, transcript at %s)\n\n", tw.ID(), tw.Path())
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if line == ":reload" {
				fresh, freshCleanup, err := buildApp(ctx, *configPath)
				if err != nil {
					fmt.Println("Reload failed, keeping current knowledge:", err)
					continue
				}
				cleanup()
				app, cleanup = fresh, freshCleanup
				fmt.Println("Reloaded.")
				continue
			}
			reply, quit := app.handleCommand(line)
			fmt.Println(reply)
			if quit {
				break
			}
			continue
		}

		tw.Append("You", line)
		reply := app.engine.Respond(ctx, line)
		fmt.Println(reply)
		if app.engine.DebugEnabled() {
			fmt.Printf("[route: %s]\n", app.engine.LastRoute())
		}
		tw.Append("SortWise", reply)
	}

	fmt.Println("\nGoodbye!")
}

type app struct {
	engine *sortwise.Engine
	fixer  *spell.Fixer
	cfg    *config.Config
}

// handleCommand executes one ':' REPL command and reports whether the
// loop should exit. ':reload' is handled by the caller because it
// replaces the whole app.
func (a *app) handleCommand(line string) (string, bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help":
		return strings.Join([]string{
			":help            show this message",
			":kb              list the logical knowledge base",
			":stats           show knowledge sizes",
			":dict            show spell-fix vocabulary size",
			":debug on|off    toggle route reporting",
			":spell on|off    toggle typo correction",
			":reload          reload configuration and knowledge",
			":quit            exit",
		}, "\n"), false

	case ":kb":
		lines := a.engine.KBLines()
		if len(lines) == 0 {
			return "The knowledge base is empty.", false
		}
		return strings.Join(lines, "\n"), false

	case ":stats":
		s := a.engine.Stats()
		return fmt.Sprintf("KB statements: %d (state %v)\nFuzzy facts: %d\nPatterns: %d\nQ/A pairs: %d",
			s.KBStatements, s.KBState, s.FuzzyFacts, s.Patterns, s.CorpusPairs), false

	case ":dict":
		if a.fixer == nil {
			return "Spell fixing is not configured.", false
		}
		return fmt.Sprintf("Spell-fix vocabulary: %d words.", a.fixer.Len()), false

	case ":debug":
		on, err := parseToggle(fields)
		if err != nil {
			return err.Error(), false
		}
		a.engine.SetDebug(on)
		return fmt.Sprintf("Debug %s.", onOff(on)), false

	case ":spell":
		on, err := parseToggle(fields)
		if err != nil {
			return err.Error(), false
		}
		a.engine.SetSpell(on)
		return fmt.Sprintf("Spell fixing %s.", onOff(on)), false

	case ":quit", ":exit":
		return "Bye!", true
	}

	return fmt.Sprintf("Unknown command %s (try :help).", fields[0]), false
}

func parseToggle(fields []string) (bool, error) {
	if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
		return false, fmt.Errorf("usage: %s on|off", fields[0])
	}
	return fields[1] == "on", nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func buildApp(ctx context.Context, configPath string) (*app, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	components, err := config.FromConfig(cfg).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load components: %w", err)
	}

	kb := logic.New(logic.Options{Budget: cfg.InferenceBudget})
	if err := kb.Seed(components.SeedLines); err != nil {
		return nil, nil, fmt.Errorf("seed knowledge base: %w", err)
	}

	var pairs []store.QAPair
	cleanup := func() {}
	if cfg.QADBPath != "" {
		st, err := sqlite.Open(ctx, cfg.QADBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open qa store: %w", err)
		}
		cleanup = func() { st.Close() }
		pairs, err = st.AllPairs(ctx)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("load qa pairs: %w", err)
		}
	}

	tokenizer := retrieval.NewTokenizer(components.Stopwords)
	fallback := retrieval.New(pairs, tokenizer, cfg.SimilarityThreshold)

	fixer := spell.New(components.LexiconTerms, cfg.SpellThreshold)
	for _, pair := range pairs {
		for _, tok := range tokenizer.Tokenize(pair.Question) {
			fixer.Add(tok)
		}
	}

	engine := sortwise.New(sortwise.Options{
		KB:        kb,
		Patterns:  components.Patterns,
		Retrieval: fallback,
		Spell:     fixer,
		Wiki:      &wiki.Client{BaseURL: cfg.WikiBaseURL},
		SpellFix:  cfg.SpellFix,
		Debug:     cfg.Debug,
	})

	return &app{engine: engine, fixer: fixer, cfg: cfg}, cleanup, nil
}
