package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
)

type PerformanceRepository struct {
	store *Store
}

func (r *PerformanceRepository) ListByMatch(_ context.Context, matchID string) ([]performance.Performance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]performance.Performance, 0, 22)
	for key, row := range r.store.performances {
		if key.MatchID == matchID {
			out = append(out, row)
		}
	}
	sortPerformances(out)
	return out, nil
}

func (r *PerformanceRepository) ListByKeys(_ context.Context, keys []performance.Key) ([]performance.Performance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]performance.Performance, 0, len(keys))
	for _, key := range keys {
		if row, ok := r.store.performances[key]; ok {
			out = append(out, row)
		}
	}
	sortPerformances(out)
	return out, nil
}

func sortPerformances(rows []performance.Performance) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TeamID != rows[j].TeamID {
			return rows[i].TeamID < rows[j].TeamID
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
}
