package scoring

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// RuleSet is the effective rule set of one league. Every stat appears once,
// except band stats which carry one rule per band.
type RuleSet struct {
	LeagueID string
	Rules    []Rule
}

// Resolve overlays league rules on the global defaults. Overrides are per
// stat: once a league defines a stat, none of the global rules for that stat
// remain, so a league can replace a whole set of bands.
func Resolve(leagueID string, global, league []Rule) RuleSet {
	overridden := make(map[string]struct{}, len(league))
	for _, rule := range league {
		overridden[rule.Stat] = struct{}{}
	}

	byKey := make(map[string]Rule, len(global)+len(league))
	for _, rule := range global {
		if _, ok := overridden[rule.Stat]; ok {
			continue
		}
		byKey[rule.Key()] = rule
	}
	for _, rule := range league {
		byKey[rule.Key()] = rule
	}

	rules := make([]Rule, 0, len(byKey))
	for _, rule := range byKey {
		rules = append(rules, rule)
	}
	SortRules(rules)

	return RuleSet{LeagueID: leagueID, Rules: rules}
}

// SortRules orders by category, then stat, then band lower bound.
func SortRules(rules []Rule) {
	slices.SortStableFunc(rules, func(a, b Rule) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Stat, b.Stat); c != 0 {
			return c
		}
		return compareBands(a.Band, b.Band)
	})
}

func compareBands(a, b *Band) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch {
	case !a.Lower.Valid && !b.Lower.Valid:
		return 0
	case !a.Lower.Valid:
		return -1
	case !b.Lower.Valid:
		return 1
	}
	return a.Lower.Decimal.Cmp(b.Lower.Decimal)
}

func (s RuleSet) Find(stat string) (Rule, bool) {
	for _, rule := range s.Rules {
		if rule.Stat == stat {
			return rule, true
		}
	}
	return Rule{}, false
}

// Multiplier returns the multiplier of stat, or one when the rule is absent
// or has no multiplier.
func (s RuleSet) Multiplier(stat string) decimal.Decimal {
	rule, ok := s.Find(stat)
	if !ok || !rule.Multiplier.Valid {
		return decimal.NewFromInt(1)
	}
	return rule.Multiplier.Decimal
}

func (s RuleSet) Stats() []string {
	out := make([]string, 0, len(s.Rules))
	for _, rule := range s.Rules {
		if len(out) > 0 && out[len(out)-1] == rule.Stat {
			continue
		}
		out = append(out, rule.Stat)
	}
	return out
}
