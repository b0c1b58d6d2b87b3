package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/season"
	qb "github.com/riskibarqy/cricket-fantasy/internal/platform/querybuilder"
)

type seasonTableModel struct {
	ID           string         `db:"id"`
	TournamentID string         `db:"tournament_id"`
	Name         string         `db:"name"`
	TeamIDs      pq.StringArray `db:"team_ids"`
}

type playerSeasonTableModel struct {
	ID           string `db:"id"`
	PlayerID     string `db:"player_id"`
	TeamID       string `db:"team_id"`
	SeasonID     string `db:"season_id"`
	TournamentID string `db:"tournament_id"`
}

func (row playerSeasonTableModel) toDomain() season.PlayerSeason {
	return season.PlayerSeason{
		ID:           row.ID,
		PlayerID:     row.PlayerID,
		TeamID:       row.TeamID,
		SeasonID:     row.SeasonID,
		TournamentID: row.TournamentID,
	}
}

const playerSeasonColumns = "id, player_id, team_id, season_id, tournament_id"

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select(
		"s.id",
		"s.tournament_id",
		"s.name",
		"COALESCE(array_agg(st.team_id ORDER BY st.team_id) FILTER (WHERE st.team_id IS NOT NULL), '{}') AS team_ids",
	).
		From("season s").
		Join("LEFT JOIN season_team st ON st.season_id = s.id").
		Where(qb.Eq("s.id", seasonID)).
		GroupBy("s.id", "s.tournament_id", "s.name").
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, storeErr(err, "get season")
	}
	return season.Season{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		Name:         row.Name,
		TeamIDs:      append([]string(nil), row.TeamIDs...),
	}, true, nil
}

func (r *SeasonRepository) ListPlayerSeasons(ctx context.Context, seasonID string, playerIDs []string) ([]season.PlayerSeason, error) {
	if len(playerIDs) == 0 {
		return []season.PlayerSeason{}, nil
	}
	query, args, err := qb.Select(playerSeasonColumns).
		From("player_season_info").
		Where(
			qb.Eq("season_id", seasonID),
			qb.InStrings("player_id", playerIDs),
		).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player seasons query: %w", err)
	}

	var rows []playerSeasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, "list player seasons")
	}
	out := make([]season.PlayerSeason, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// listTeamMembers returns every player season of the given teams, used to
// provision performance rows when a match starts.
func listTeamMembers(ctx context.Context, tx *sqlx.Tx, seasonID string, teamIDs []string) ([]season.PlayerSeason, error) {
	query, args, err := qb.Select(playerSeasonColumns).
		From("player_season_info").
		Where(
			qb.Eq("season_id", seasonID),
			qb.InStrings("team_id", teamIDs),
		).
		OrderBy("team_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team members query: %w", err)
	}

	var rows []playerSeasonTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, "list team members")
	}
	out := make([]season.PlayerSeason, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type leagueTableModel struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	TournamentID string `db:"tournament_id"`
	SeasonID     string `db:"season_id"`
	OwnerUserID  string `db:"owner_user_id"`
}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("id", "name", "tournament_id", "season_id", "owner_user_id").
		From("league").
		Where(qb.Eq("id", leagueID)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, storeErr(err, "get league")
	}
	return league.League{
		ID:           row.ID,
		Name:         row.Name,
		TournamentID: row.TournamentID,
		SeasonID:     row.SeasonID,
		OwnerUserID:  row.OwnerUserID,
	}, true, nil
}
