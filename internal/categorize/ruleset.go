// Package categorize maps transaction descriptions to spending categories
// using an ordered keyword ruleset.
//
// Rule order is part of the data: keywords overlap across categories, so the
// first rule whose keyword matches decides the outcome.
package categorize

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Rule pairs a category label with the lowercase keyword substrings that
// select it.
type Rule struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// Ruleset is an ordered list of rules plus the fallback label returned when
// nothing matches.
type Ruleset struct {
	rules    []Rule
	fallback string
}

// New builds a ruleset from rules evaluated in the given order.
func New(rules []Rule, fallback string) *Ruleset {
	return &Ruleset{rules: rules, fallback: fallback}
}

// Categorize returns the category of the first keyword found as a substring
// of the lowercased description, or the fallback label. It is pure and never
// fails.
func (rs *Ruleset) Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range rs.rules {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(desc, keyword) {
				return rule.Category
			}
		}
	}
	return rs.fallback
}

// Fallback returns the sentinel category label.
func (rs *Ruleset) Fallback() string { return rs.fallback }

// Rules returns the rules in evaluation order.
func (rs *Ruleset) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// LoadFile reads a ruleset override from a JSON file holding an ordered
// array of {category, keywords} objects. An optional trailing entry with an
// empty keyword list sets the fallback label.
func LoadFile(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category rules: %w", err)
	}
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse category rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("category rules file %s is empty", path)
	}
	fallback := DefaultFallback
	for _, r := range rules {
		if strings.TrimSpace(r.Category) == "" {
			return nil, fmt.Errorf("category rules file %s contains a rule without a category", path)
		}
	}
	if last := rules[len(rules)-1]; len(last.Keywords) == 0 {
		fallback = last.Category
		rules = rules[:len(rules)-1]
	}
	lowered := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		lowered[i] = Rule{Category: r.Category, Keywords: kws}
	}
	return New(lowered, fallback), nil
}
