package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/storage"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) ListBySeasonWeek(_ context.Context, seasonID string, matchNum int) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0, 4)
	for _, item := range r.store.matches {
		if item.SeasonID != seasonID {
			continue
		}
		if item.HomeMatchNum == matchNum || item.AwayMatchNum == matchNum {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MatchRepository) ListEvents(_ context.Context, matchID string) ([]match.BallEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]match.BallEvent{}, r.store.events[matchID]...), nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.matches[item.ID]; exists {
		return match.Match{}, fmt.Errorf("%w: match=%s already exists", storage.ErrConflict, item.ID)
	}

	var home, away int
	for _, existing := range r.store.matches {
		if existing.SeasonID != item.SeasonID {
			continue
		}
		if existing.HomeTeamID == item.HomeTeamID || existing.AwayTeamID == item.HomeTeamID {
			home++
		}
		if existing.HomeTeamID == item.AwayTeamID || existing.AwayTeamID == item.AwayTeamID {
			away++
		}
	}
	item.HomeMatchNum = home + 1
	item.AwayMatchNum = away + 1
	r.store.matches[item.ID] = item
	return item, nil
}

func (r *MatchRepository) Start(_ context.Context, matchID string, check func(match.Match) error) (match.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, err := r.lockedMatch(matchID, check)
	if err != nil {
		return match.Match{}, err
	}

	for _, ps := range r.store.playerSeasons {
		if ps.SeasonID != item.SeasonID {
			continue
		}
		if ps.TeamID != item.HomeTeamID && ps.TeamID != item.AwayTeamID {
			continue
		}
		key := performance.Key{PlayerSeasonID: ps.ID, MatchID: item.ID}
		if _, exists := r.store.performances[key]; exists {
			continue
		}
		r.store.performances[key] = performance.Performance{
			ID:             uuid.NewString(),
			PlayerSeasonID: ps.ID,
			PlayerID:       ps.PlayerID,
			TeamID:         ps.TeamID,
			MatchID:        item.ID,
			CreatedAt:      item.UpdatedAt,
			UpdatedAt:      item.UpdatedAt,
		}
	}

	item.Status = match.StatusLive
	r.store.matches[item.ID] = item
	return item, nil
}

func (r *MatchRepository) Finish(_ context.Context, matchID string, status match.Status, check func(match.Match) error) (match.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, err := r.lockedMatch(matchID, check)
	if err != nil {
		return match.Match{}, err
	}
	item.Status = status
	r.store.matches[item.ID] = item
	return item, nil
}

func (r *MatchRepository) ApplyEvent(_ context.Context, event match.BallEvent, effect match.Effect, check func(match.Match) error) (match.BallEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, err := r.lockedMatch(event.MatchID, check)
	if err != nil {
		return match.BallEvent{}, err
	}

	byPlayer := make(map[string]performance.Key)
	for key, row := range r.store.performances {
		if key.MatchID == item.ID {
			byPlayer[row.PlayerID] = key
		}
	}
	teamOf := func(playerID string) (string, bool) {
		key, ok := byPlayer[playerID]
		return r.store.performances[key].TeamID, ok
	}

	// Validate every player before touching any row.
	if err := event.CheckSides(item, teamOf); err != nil {
		return match.BallEvent{}, err
	}
	for _, delta := range effect.Players {
		if _, ok := byPlayer[delta.PlayerID]; !ok {
			return match.BallEvent{}, fmt.Errorf("%w: player=%s match=%s", match.ErrPlayerNotInMatch, delta.PlayerID, item.ID)
		}
	}

	for _, delta := range effect.Players {
		key := byPlayer[delta.PlayerID]
		row := r.store.performances[key]
		row.Stats = row.Stats.Add(delta.Stats)
		row.UpdatedAt = event.CreatedAt
		r.store.performances[key] = row
	}

	event.BallNum = len(r.store.events[item.ID]) + 1
	r.store.events[item.ID] = append(r.store.events[item.ID], event)

	item = item.Apply(effect)
	item.UpdatedAt = event.CreatedAt
	r.store.matches[item.ID] = item

	return event, nil
}

func (r *MatchRepository) lockedMatch(matchID string, check func(match.Match) error) (match.Match, error) {
	item, ok := r.store.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("%w: match=%s", storage.ErrNotFound, matchID)
	}
	if check != nil {
		if err := check(item); err != nil {
			return match.Match{}, err
		}
	}
	return item, nil
}
