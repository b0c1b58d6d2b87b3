package season

import "context"

type Repository interface {
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	ListPlayerSeasons(ctx context.Context, seasonID string, playerIDs []string) ([]PlayerSeason, error)
}
