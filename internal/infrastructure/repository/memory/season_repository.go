package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/season"
)

type SeasonRepository struct {
	store *Store
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.seasons[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}
	item.TeamIDs = append([]string(nil), item.TeamIDs...)
	return item, true, nil
}

func (r *SeasonRepository) ListPlayerSeasons(_ context.Context, seasonID string, playerIDs []string) ([]season.PlayerSeason, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[string]struct{}, len(playerIDs))
	for _, playerID := range playerIDs {
		wanted[playerID] = struct{}{}
	}

	out := make([]season.PlayerSeason, 0, len(playerIDs))
	for _, item := range r.store.playerSeasons {
		if item.SeasonID != seasonID {
			continue
		}
		if _, ok := wanted[item.PlayerID]; ok {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type LeagueRepository struct {
	store *Store
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.leagues[leagueID]
	return item, ok, nil
}
