package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	qb "github.com/riskibarqy/cricket-fantasy/internal/platform/querybuilder"
)

type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) ListByMatch(ctx context.Context, matchID string) ([]performance.Performance, error) {
	query, args, err := qb.Select(performanceColumns).
		From("player_performance").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("team_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list performances by match query: %w", err)
	}
	return r.list(ctx, "list performances by match", query, args)
}

// ListByKeys fetches many (player_season_id, match_id) pairs in one round
// trip by zipping two text arrays.
func (r *PerformanceRepository) ListByKeys(ctx context.Context, keys []performance.Key) ([]performance.Performance, error) {
	if len(keys) == 0 {
		return []performance.Performance{}, nil
	}
	seasons := make([]string, 0, len(keys))
	matches := make([]string, 0, len(keys))
	for _, key := range keys {
		seasons = append(seasons, key.PlayerSeasonID)
		matches = append(matches, key.MatchID)
	}

	query, args, err := qb.Select(performanceColumns).
		From("player_performance").
		Where(qb.Expr(
			"(player_season_id, match_id) IN (SELECT * FROM unnest(?::text[], ?::text[]))",
			pq.Array(seasons),
			pq.Array(matches),
		)).
		OrderBy("team_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list performances by keys query: %w", err)
	}
	return r.list(ctx, "list performances by keys", query, args)
}

func (r *PerformanceRepository) list(ctx context.Context, op, query string, args []any) ([]performance.Performance, error) {
	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, op)
	}
	out := make([]performance.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, performanceFromRow(row))
	}
	return out, nil
}
