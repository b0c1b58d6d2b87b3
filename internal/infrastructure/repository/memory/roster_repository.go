package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/storage"
)

type TeamRepository struct {
	store *Store
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (roster.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) ListByUser(_ context.Context, userID string) ([]roster.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]roster.Team, 0, 2)
	for _, item := range r.store.teams {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type InstanceRepository struct {
	store *Store
}

func (r *InstanceRepository) GetByID(_ context.Context, instanceID string) (roster.Instance, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.instances[instanceID]
	if !ok {
		return roster.Instance{}, false, nil
	}
	return cloneInstance(item), true, nil
}

func (r *InstanceRepository) ListByIDs(_ context.Context, instanceIDs []string) ([]roster.Instance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]roster.Instance, 0, len(instanceIDs))
	for _, instanceID := range instanceIDs {
		if item, ok := r.store.instances[instanceID]; ok {
			out = append(out, cloneInstance(item))
		}
	}
	return out, nil
}

func (r *InstanceRepository) UpdateCaptains(_ context.Context, instanceID, captainID, viceCaptainID string, check func(roster.Instance) error) ([]roster.Instance, error) {
	r.store.rosterMu.Lock()
	defer r.store.rosterMu.Unlock()

	current, err := r.locked(instanceID, check)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]roster.Instance, 0, 4)
	for id, item := range r.store.instances {
		if item.FantasyTeamID != current.FantasyTeamID || item.MatchNum < current.MatchNum {
			continue
		}
		item.CaptainID = captainID
		item.ViceCaptainID = viceCaptainID
		r.store.instances[id] = item
		out = append(out, cloneInstance(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchNum < out[j].MatchNum })
	return out, nil
}

func (r *InstanceRepository) SwapSlots(_ context.Context, instanceID string, a, b roster.Slot, check func(roster.Instance) error) (roster.Instance, error) {
	r.store.rosterMu.Lock()
	defer r.store.rosterMu.Unlock()

	current, err := r.locked(instanceID, check)
	if err != nil {
		return roster.Instance{}, err
	}
	swapped, err := current.Swap(a, b)
	if err != nil {
		return roster.Instance{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.instances[swapped.ID] = swapped
	return cloneInstance(swapped), nil
}

// locked reads the instance and runs check. Callers hold rosterMu.
func (r *InstanceRepository) locked(instanceID string, check func(roster.Instance) error) (roster.Instance, error) {
	r.store.mu.RLock()
	item, ok := r.store.instances[instanceID]
	if ok {
		item = cloneInstance(item)
	}
	r.store.mu.RUnlock()
	if !ok {
		return roster.Instance{}, fmt.Errorf("%w: instance=%s", storage.ErrNotFound, instanceID)
	}
	if check != nil {
		if err := check(item); err != nil {
			return roster.Instance{}, err
		}
	}
	return item, nil
}

type MatchupRepository struct {
	store *Store
}

func (r *MatchupRepository) GetByID(_ context.Context, matchupID string) (roster.Matchup, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.matchups[matchupID]
	return item, ok, nil
}

func (r *MatchupRepository) ListByLeagueWeek(_ context.Context, leagueID string, matchNum int) ([]roster.Matchup, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]roster.Matchup, 0, 8)
	for _, item := range r.store.matchups {
		if item.LeagueID == leagueID && item.MatchNum == matchNum {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MatchupRepository) ListByTeamsWeek(_ context.Context, teamIDs []string, matchNum int) ([]roster.Matchup, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[string]struct{}, len(teamIDs))
	for _, teamID := range teamIDs {
		wanted[teamID] = struct{}{}
	}
	involves := func(instanceID string) bool {
		item, ok := r.store.instances[instanceID]
		if !ok {
			return false
		}
		_, ok = wanted[item.FantasyTeamID]
		return ok
	}

	out := make([]roster.Matchup, 0, len(teamIDs))
	for _, item := range r.store.matchups {
		if item.MatchNum != matchNum {
			continue
		}
		if involves(item.Instance1ID) || involves(item.Instance2ID) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneInstance(item roster.Instance) roster.Instance {
	slots := make(map[roster.Slot]string, len(item.Slots))
	for k, v := range item.Slots {
		slots[k] = v
	}
	item.Slots = slots
	return item
}
