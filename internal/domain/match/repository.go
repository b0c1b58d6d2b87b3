package match

import "context"

// Repository persists matches and their event log. Mutating methods run in
// one transaction with the match row locked; check is evaluated against the
// locked row before anything is written and its error is returned as is.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListBySeasonWeek(ctx context.Context, seasonID string, matchNum int) ([]Match, error)
	ListEvents(ctx context.Context, matchID string) ([]BallEvent, error)

	// Create stores a NOT_STARTED match and assigns each team's next match
	// number within the season.
	Create(ctx context.Context, item Match) (Match, error)

	// Start moves the match to LIVE and provisions a zeroed performance row
	// for every season member of both teams, skipping rows that exist.
	Start(ctx context.Context, matchID string, check func(Match) error) (Match, error)

	Finish(ctx context.Context, matchID string, status Status, check func(Match) error) (Match, error)

	// ApplyEvent appends the event with the next ball number and applies the
	// effect's deltas. A player without a performance row in the match fails
	// the whole event with ErrPlayerNotInMatch.
	ApplyEvent(ctx context.Context, event BallEvent, effect Effect, check func(Match) error) (BallEvent, error)
}
