package league

import "context"

// Repository is a read lookup; league CRUD lives outside this service.
type Repository interface {
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
}
