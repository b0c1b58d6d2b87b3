package cache

import (
	"context"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	basecache "github.com/riskibarqy/cricket-fantasy/internal/platform/cache"
)

const (
	ruleKeyPrefix       = "scoring_rule:"
	ruleGlobalKey       = ruleKeyPrefix + "global"
	ruleLeagueKeyPrefix = ruleKeyPrefix + "league:"
)

// ScoringRuleRepository caches rule lists. Upsert drops the lists the rule
// belongs to; a global rule drops them all.
type ScoringRuleRepository struct {
	next  scoring.Repository
	cache *basecache.Store
}

func NewScoringRuleRepository(next scoring.Repository, cache *basecache.Store) *ScoringRuleRepository {
	return &ScoringRuleRepository{next: next, cache: cache}
}

func (r *ScoringRuleRepository) ListGlobal(ctx context.Context) ([]scoring.Rule, error) {
	items, err := basecache.Load(ctx, r.cache, ruleGlobalKey, func(ctx context.Context) ([]scoring.Rule, error) {
		return r.next.ListGlobal(ctx)
	})
	if err != nil {
		return nil, err
	}
	return cloneRules(items), nil
}

func (r *ScoringRuleRepository) ListByLeague(ctx context.Context, leagueID string) ([]scoring.Rule, error) {
	items, err := basecache.Load(ctx, r.cache, ruleLeagueKeyPrefix+leagueID, func(ctx context.Context) ([]scoring.Rule, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return cloneRules(items), nil
}

func (r *ScoringRuleRepository) Upsert(ctx context.Context, rule scoring.Rule) (scoring.Rule, error) {
	stored, err := r.next.Upsert(ctx, rule)
	if err != nil {
		return scoring.Rule{}, err
	}
	if stored.IsGlobal() {
		r.cache.DeletePrefix(ctx, ruleKeyPrefix)
	} else {
		r.cache.Delete(ctx, ruleLeagueKeyPrefix+stored.LeagueID)
	}
	return stored, nil
}

// cloneRules copies the slice and each band so callers cannot mutate the
// cached value.
func cloneRules(items []scoring.Rule) []scoring.Rule {
	out := make([]scoring.Rule, len(items))
	for i, item := range items {
		if item.Band != nil {
			band := *item.Band
			item.Band = &band
		}
		out[i] = item
	}
	return out
}

// LeagueRepository caches league lookups. Leagues are read-only to this
// service so entries only age out.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:id:"+leagueID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}
