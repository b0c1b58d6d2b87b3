package performance

import "context"

// Repository is the read side of the performance store. Writes happen only
// through match lifecycle and ball event transactions.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Performance, error)
	ListByKeys(ctx context.Context, keys []Key) ([]Performance, error)
}
