package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
	qb "github.com/riskibarqy/cricket-fantasy/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (roster.Team, bool, error) {
	query, args, err := qb.Select("id", "league_id", "user_id", "name").
		From("fantasy_team").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return roster.Team{}, false, fmt.Errorf("build get fantasy team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Team{}, false, nil
		}
		return roster.Team{}, false, storeErr(err, "get fantasy team")
	}
	return roster.Team(row), true, nil
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]roster.Team, error) {
	query, args, err := qb.Select("id", "league_id", "user_id", "name").
		From("fantasy_team").
		Where(qb.Eq("user_id", userID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fantasy teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, "list fantasy teams")
	}
	out := make([]roster.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Team(row))
	}
	return out, nil
}

type InstanceRepository struct {
	db          *sqlx.DB
	lockTimeout time.Duration
}

func NewInstanceRepository(db *sqlx.DB, lockTimeout time.Duration) *InstanceRepository {
	return &InstanceRepository{db: db, lockTimeout: lockTimeout}
}

func (r *InstanceRepository) GetByID(ctx context.Context, instanceID string) (roster.Instance, bool, error) {
	query, args, err := qb.Select(instanceColumns).
		From("fantasy_team_instance").
		Where(qb.Eq("id", instanceID)).
		ToSQL()
	if err != nil {
		return roster.Instance{}, false, fmt.Errorf("build get instance query: %w", err)
	}

	var row instanceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Instance{}, false, nil
		}
		return roster.Instance{}, false, storeErr(err, "get instance")
	}
	return instanceFromRow(row), true, nil
}

func (r *InstanceRepository) ListByIDs(ctx context.Context, instanceIDs []string) ([]roster.Instance, error) {
	if len(instanceIDs) == 0 {
		return []roster.Instance{}, nil
	}
	query, args, err := qb.Select(instanceColumns).
		From("fantasy_team_instance").
		Where(qb.InStrings("id", instanceIDs)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list instances query: %w", err)
	}

	var rows []instanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, "list instances")
	}
	out := make([]roster.Instance, 0, len(rows))
	for _, row := range rows {
		out = append(out, instanceFromRow(row))
	}
	return out, nil
}

// UpdateCaptains writes the pair to the instance and every later week of
// the same fantasy team in one statement.
func (r *InstanceRepository) UpdateCaptains(
	ctx context.Context,
	instanceID, captainID, viceCaptainID string,
	check func(roster.Instance) error,
) ([]roster.Instance, error) {
	var out []roster.Instance
	err := withTx(ctx, r.db, r.lockTimeout, func(tx *sqlx.Tx) error {
		current, err := lockInstance(ctx, tx, instanceID, check)
		if err != nil {
			return err
		}

		query, args, err := qb.Update("fantasy_team_instance").
			Set("captain_id", captainID).
			Set("vice_captain_id", viceCaptainID).
			SetExpr("updated_at", "now()").
			Where(
				qb.Eq("fantasy_team_id", current.FantasyTeamID),
				qb.Expr("match_num >= ?", current.MatchNum),
			).
			Suffix("RETURNING " + instanceColumns).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update captains query: %w", err)
		}

		var rows []instanceTableModel
		if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
			return storeErr(err, "update captains")
		}
		out = make([]roster.Instance, 0, len(rows))
		for _, row := range rows {
			out = append(out, instanceFromRow(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByMatchNum(out)
	return out, nil
}

func (r *InstanceRepository) SwapSlots(ctx context.Context, instanceID string, a, b roster.Slot, check func(roster.Instance) error) (roster.Instance, error) {
	var out roster.Instance
	err := withTx(ctx, r.db, r.lockTimeout, func(tx *sqlx.Tx) error {
		current, err := lockInstance(ctx, tx, instanceID, check)
		if err != nil {
			return err
		}
		swapped, err := current.Swap(a, b)
		if err != nil {
			return err
		}

		// a and b come from roster.ParseSlot so they are safe as column names.
		query, args, err := qb.Update("fantasy_team_instance").
			Set(string(a), nullString(swapped.PlayerAt(a))).
			Set(string(b), nullString(swapped.PlayerAt(b))).
			SetExpr("updated_at", "now()").
			Where(qb.Eq("id", current.ID)).
			Suffix("RETURNING " + instanceColumns).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build swap slots query: %w", err)
		}

		var row instanceTableModel
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			return storeErr(err, "swap slots")
		}
		out = instanceFromRow(row)
		return nil
	})
	if err != nil {
		return roster.Instance{}, err
	}
	return out, nil
}

func lockInstance(ctx context.Context, tx *sqlx.Tx, instanceID string, check func(roster.Instance) error) (roster.Instance, error) {
	query, args, err := qb.Select(instanceColumns).
		From("fantasy_team_instance").
		Where(qb.Eq("id", instanceID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return roster.Instance{}, fmt.Errorf("build lock instance query: %w", err)
	}

	var row instanceTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Instance{}, notFound("instance=%s", instanceID)
		}
		return roster.Instance{}, storeErr(err, "lock instance")
	}
	item := instanceFromRow(row)
	if check != nil {
		if err := check(item); err != nil {
			return roster.Instance{}, err
		}
	}
	return item, nil
}

func sortByMatchNum(items []roster.Instance) {
	sort.Slice(items, func(i, j int) bool { return items[i].MatchNum < items[j].MatchNum })
}

type MatchupRepository struct {
	db *sqlx.DB
}

func NewMatchupRepository(db *sqlx.DB) *MatchupRepository {
	return &MatchupRepository{db: db}
}

const matchupColumns = "id, league_id, match_num, instance1_id, instance2_id"

func (r *MatchupRepository) GetByID(ctx context.Context, matchupID string) (roster.Matchup, bool, error) {
	query, args, err := qb.Select(matchupColumns).
		From("fantasy_matchup").
		Where(qb.Eq("id", matchupID)).
		ToSQL()
	if err != nil {
		return roster.Matchup{}, false, fmt.Errorf("build get matchup query: %w", err)
	}

	var row matchupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Matchup{}, false, nil
		}
		return roster.Matchup{}, false, storeErr(err, "get matchup")
	}
	return row.toDomain(), true, nil
}

func (r *MatchupRepository) ListByLeagueWeek(ctx context.Context, leagueID string, matchNum int) ([]roster.Matchup, error) {
	query, args, err := qb.Select(matchupColumns).
		From("fantasy_matchup").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("match_num", matchNum),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league week matchups query: %w", err)
	}
	return r.list(ctx, "list league week matchups", query, args)
}

func (r *MatchupRepository) ListByTeamsWeek(ctx context.Context, teamIDs []string, matchNum int) ([]roster.Matchup, error) {
	if len(teamIDs) == 0 {
		return []roster.Matchup{}, nil
	}
	query, args, err := qb.Select("DISTINCT m.id", "m.league_id", "m.match_num", "m.instance1_id", "m.instance2_id").
		From("fantasy_matchup m").
		Join("JOIN fantasy_team_instance i ON i.id IN (m.instance1_id, m.instance2_id)").
		Where(
			qb.Eq("m.match_num", matchNum),
			qb.InStrings("i.fantasy_team_id", teamIDs),
		).
		OrderBy("m.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user matchups query: %w", err)
	}
	return r.list(ctx, "list user matchups", query, args)
}

func (r *MatchupRepository) list(ctx context.Context, op, query string, args []any) ([]roster.Matchup, error) {
	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, op)
	}
	out := make([]roster.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
