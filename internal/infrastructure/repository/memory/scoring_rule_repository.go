package memory

import (
	"context"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
)

type ScoringRuleRepository struct {
	store *Store
}

func (r *ScoringRuleRepository) ListGlobal(_ context.Context) ([]scoring.Rule, error) {
	return r.list(""), nil
}

func (r *ScoringRuleRepository) ListByLeague(_ context.Context, leagueID string) ([]scoring.Rule, error) {
	if leagueID == "" {
		return []scoring.Rule{}, nil
	}
	return r.list(leagueID), nil
}

func (r *ScoringRuleRepository) Upsert(_ context.Context, rule scoring.Rule) (scoring.Rule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := ruleKey(rule)
	if existing, ok := r.store.rules[key]; ok {
		rule.ID = existing.ID
		rule.CreatedAt = existing.CreatedAt
	}
	r.store.rules[key] = cloneRule(rule)
	return cloneRule(rule), nil
}

func (r *ScoringRuleRepository) list(leagueID string) []scoring.Rule {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]scoring.Rule, 0, 16)
	for _, rule := range r.store.rules {
		if rule.LeagueID == leagueID {
			out = append(out, cloneRule(rule))
		}
	}
	scoring.SortRules(out)
	return out
}

func ruleKey(rule scoring.Rule) string {
	return rule.LeagueID + "::" + rule.Key()
}

func cloneRule(rule scoring.Rule) scoring.Rule {
	if rule.Band != nil {
		band := *rule.Band
		rule.Band = &band
	}
	return rule
}
