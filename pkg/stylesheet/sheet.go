// Package stylesheet accumulates the rules produced during one render pass
// and serialises them into CSS text.
package stylesheet

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-stylegen/pkg/model"
)

// Sheet collects StyleRules keyed by render slug. Accumulation is
// append-only per slug and performs no deduplication. Create one Sheet per
// render pass; it must not be shared across pages or requests.
type Sheet struct {
	mu    sync.Mutex
	rules map[string][]model.StyleRule
}

// New returns an empty Sheet.
func New() *Sheet {
	return &Sheet{rules: make(map[string][]model.StyleRule)}
}

// AddRule appends rule to the slug's list. Rules with an empty selector or
// declaration are dropped.
func (s *Sheet) AddRule(slug string, rule model.StyleRule) {
	if s == nil {
		return
	}
	if strings.TrimSpace(rule.Selector) == "" || strings.TrimSpace(rule.Declaration) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rules == nil {
		s.rules = make(map[string][]model.StyleRule)
	}
	s.rules[slug] = append(s.rules[slug], rule)
}

// AddRules appends rules in order.
func (s *Sheet) AddRules(slug string, rules ...model.StyleRule) {
	for _, rule := range rules {
		s.AddRule(slug, rule)
	}
}

// Flush returns the slug's rules in insertion order and clears them.
func (s *Sheet) Flush(slug string) []model.StyleRule {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rules := s.rules[slug]
	delete(s.rules, slug)
	return rules
}

// Len reports how many rules are pending for slug.
func (s *Sheet) Len(slug string) int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rules[slug])
}

// Slugs returns the slugs with pending rules, sorted.
func (s *Sheet) Slugs() []string {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.rules))
	for slug := range s.rules {
		names = append(names, slug)
	}
	sort.Strings(names)
	return names
}
