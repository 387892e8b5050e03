// Package patterns is the scripted conversational layer: an ordered list of
// surface patterns with canned templates, tried before the similarity
// fallback. A trailing '*' wildcard captures the rest of the utterance and
// is available to the template as {star}.
package patterns

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pattern pairs a surface form with its reply template.
type Pattern struct {
	Match    string `yaml:"match"`
	Template string `yaml:"template"`
}

type compiled struct {
	prefix   string // lowercased, whitespace-collapsed
	wildcard bool
	template string
}

// Set holds compiled patterns in declaration order; the first match wins.
type Set struct {
	patterns []compiled
}

// New compiles a pattern list. Patterns with an empty match are dropped.
func New(list []Pattern) *Set {
	s := &Set{}
	for _, p := range list {
		match := collapse(p.Match)
		if match == "" {
			continue
		}
		c := compiled{prefix: match, template: p.Template}
		if strings.HasSuffix(match, "*") {
			c.wildcard = true
			c.prefix = strings.TrimSpace(strings.TrimSuffix(match, "*"))
		}
		s.patterns = append(s.patterns, c)
	}
	return s
}

// LoadFromYAML loads a pattern set from a YAML file of the form:
//
//	patterns:
//	  - match: "hello"
//	    template: "Hi! Ask me about recycling."
//	  - match: "what is *"
//	    template: "I can look up {star} if you type: wiki {star}"
func LoadFromYAML(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg struct {
		Patterns []Pattern `yaml:"patterns"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}

	return New(cfg.Patterns), nil
}

// Respond returns the reply for the first matching pattern. Matching is
// case-insensitive and ignores extra whitespace.
func (s *Set) Respond(input string) (string, bool) {
	in := collapse(input)
	if in == "" {
		return "", false
	}

	for _, p := range s.patterns {
		if !p.wildcard {
			if in == p.prefix {
				return p.template, true
			}
			continue
		}

		var star string
		switch {
		case p.prefix == "":
			star = in
		case in == p.prefix:
			star = ""
		case strings.HasPrefix(in, p.prefix+" "):
			star = strings.TrimSpace(in[len(p.prefix)+1:])
		default:
			continue
		}
		return strings.ReplaceAll(p.template, "{star}", star), true
	}
	return "", false
}

// Len returns the number of compiled patterns.
func (s *Set) Len() int { return len(s.patterns) }

// collapse lowercases and normalizes interior whitespace.
func collapse(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
