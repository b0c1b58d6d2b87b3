package scoring

import "context"

type Repository interface {
	ListGlobal(ctx context.Context) ([]Rule, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Rule, error)

	// Upsert writes a league rule keyed by (league, stat, band) and returns
	// the stored row.
	Upsert(ctx context.Context, rule Rule) (Rule, error)
}
