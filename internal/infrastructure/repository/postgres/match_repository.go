package postgres

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	qb "github.com/riskibarqy/cricket-fantasy/internal/platform/querybuilder"
)

type MatchRepository struct {
	db          *sqlx.DB
	lockTimeout time.Duration
}

func NewMatchRepository(db *sqlx.DB, lockTimeout time.Duration) *MatchRepository {
	return &MatchRepository{db: db, lockTimeout: lockTimeout}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns).
		From("match_info").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, storeErr(err, "get match")
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListBySeasonWeek(ctx context.Context, seasonID string, matchNum int) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns).
		From("match_info").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Or(qb.Eq("home_match_num", matchNum), qb.Eq("away_match_num", matchNum)),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by week query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, "list matches by week")
	}
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) ListEvents(ctx context.Context, matchID string) ([]match.BallEvent, error) {
	query, args, err := qb.Select(ballEventColumns).
		From("ball_event").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("ball_num").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ball events query: %w", err)
	}

	var rows []ballEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, "list ball events")
	}
	out := make([]match.BallEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, ballEventFromRow(row))
	}
	return out, nil
}

// Create serializes per season on an advisory lock so two concurrent creates
// cannot hand out the same match number.
func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	err := withTx(ctx, r.db, r.lockTimeout, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", item.SeasonID); err != nil {
			return storeErr(err, "lock season for match numbering")
		}

		home, err := countTeamMatches(ctx, tx, item.SeasonID, item.HomeTeamID)
		if err != nil {
			return err
		}
		away, err := countTeamMatches(ctx, tx, item.SeasonID, item.AwayTeamID)
		if err != nil {
			return err
		}
		item.HomeMatchNum = home + 1
		item.AwayMatchNum = away + 1

		query, args, err := qb.InsertModel("match_info", matchInsertModel{
			ID:           item.ID,
			TournamentID: item.TournamentID,
			SeasonID:     item.SeasonID,
			HomeTeamID:   item.HomeTeamID,
			AwayTeamID:   item.AwayTeamID,
			Status:       string(item.Status),
			HomeMatchNum: item.HomeMatchNum,
			AwayMatchNum: item.AwayMatchNum,
		}, "RETURNING "+matchColumns)
		if err != nil {
			return fmt.Errorf("build insert match query: %w", err)
		}
		var row matchTableModel
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			return storeErr(err, "insert match")
		}
		item = matchFromRow(row)
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}
	return item, nil
}

func countTeamMatches(ctx context.Context, tx *sqlx.Tx, seasonID, teamID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From("match_info").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Or(qb.Eq("home_team_id", teamID), qb.Eq("away_team_id", teamID)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count team matches query: %w", err)
	}
	var n int
	if err := tx.GetContext(ctx, &n, query, args...); err != nil {
		return 0, storeErr(err, "count team matches")
	}
	return n, nil
}

func (r *MatchRepository) Start(ctx context.Context, matchID string, check func(match.Match) error) (match.Match, error) {
	var out match.Match
	err := withTx(ctx, r.db, r.lockTimeout, func(tx *sqlx.Tx) error {
		item, err := lockMatch(ctx, tx, matchID, check)
		if err != nil {
			return err
		}

		members, err := listTeamMembers(ctx, tx, item.SeasonID, []string{item.HomeTeamID, item.AwayTeamID})
		if err != nil {
			return err
		}
		if len(members) > 0 {
			insert := qb.InsertInto("player_performance").
				Columns("id", "player_season_id", "player_id", "team_id", "match_id").
				Suffix("ON CONFLICT (player_season_id, match_id) DO NOTHING")
			for _, ps := range members {
				insert.Values(uuid.NewString(), ps.ID, ps.PlayerID, ps.TeamID, item.ID)
			}
			query, args, err := insert.ToSQL()
			if err != nil {
				return fmt.Errorf("build provision performances query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return storeErr(err, "provision performances")
			}
		}

		out, err = updateStatus(ctx, tx, item.ID, match.StatusLive)
		return err
	})
	if err != nil {
		return match.Match{}, err
	}
	return out, nil
}

func (r *MatchRepository) Finish(ctx context.Context, matchID string, status match.Status, check func(match.Match) error) (match.Match, error) {
	var out match.Match
	err := withTx(ctx, r.db, r.lockTimeout, func(tx *sqlx.Tx) error {
		item, err := lockMatch(ctx, tx, matchID, check)
		if err != nil {
			return err
		}
		out, err = updateStatus(ctx, tx, item.ID, status)
		return err
	})
	if err != nil {
		return match.Match{}, err
	}
	return out, nil
}

func (r *MatchRepository) ApplyEvent(ctx context.Context, event match.BallEvent, effect match.Effect, check func(match.Match) error) (match.BallEvent, error) {
	err := withTx(ctx, r.db, r.lockTimeout, func(tx *sqlx.Tx) error {
		item, err := lockMatch(ctx, tx, event.MatchID, check)
		if err != nil {
			return err
		}

		rows, err := lockPerformances(ctx, tx, item.ID, event.Players())
		if err != nil {
			return err
		}
		teamOf := func(playerID string) (string, bool) {
			row, ok := rows[playerID]
			return row.TeamID, ok
		}
		if err := event.CheckSides(item, teamOf); err != nil {
			return err
		}
		for _, delta := range effect.Players {
			row, ok := rows[delta.PlayerID]
			if !ok {
				return fmt.Errorf("%w: player=%s match=%s", match.ErrPlayerNotInMatch, delta.PlayerID, item.ID)
			}
			if err := incrementPerformance(ctx, tx, row.ID, delta.Stats, event.CreatedAt); err != nil {
				return err
			}
		}

		var last int
		if err := tx.GetContext(ctx, &last, "SELECT COALESCE(MAX(ball_num), 0) FROM ball_event WHERE match_id = $1", item.ID); err != nil {
			return storeErr(err, "read last ball number")
		}
		event.BallNum = last + 1

		query, args, err := qb.InsertModel("ball_event", ballEventToRow(event), "")
		if err != nil {
			return fmt.Errorf("build insert ball event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return storeErr(err, "insert ball event")
		}

		update := qb.Update("match_info").
			Increment("home_score", effect.Home.Score).
			Increment("home_balls", effect.Home.Balls).
			Increment("home_wickets", effect.Home.Wickets).
			Increment("away_score", effect.Away.Score).
			Increment("away_balls", effect.Away.Balls).
			Increment("away_wickets", effect.Away.Wickets).
			Set("updated_at", event.CreatedAt).
			Where(qb.Eq("id", item.ID))
		query, args, err = update.ToSQL()
		if err != nil {
			return fmt.Errorf("build update match totals query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return storeErr(err, "update match totals")
		}
		return nil
	})
	if err != nil {
		return match.BallEvent{}, err
	}
	return event, nil
}

// lockMatch loads the match row FOR UPDATE and runs check against it.
func lockMatch(ctx context.Context, tx *sqlx.Tx, matchID string, check func(match.Match) error) (match.Match, error) {
	query, args, err := qb.Select(matchColumns).
		From("match_info").
		Where(qb.Eq("id", matchID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build lock match query: %w", err)
	}

	var row matchTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, notFound("match=%s", matchID)
		}
		return match.Match{}, storeErr(err, "lock match")
	}
	item := matchFromRow(row)
	if check != nil {
		if err := check(item); err != nil {
			return match.Match{}, err
		}
	}
	return item, nil
}

func updateStatus(ctx context.Context, tx *sqlx.Tx, matchID string, status match.Status) (match.Match, error) {
	query, args, err := qb.Update("match_info").
		Set("status", string(status)).
		SetExpr("updated_at", "now()").
		Where(qb.Eq("id", matchID)).
		Suffix("RETURNING " + matchColumns).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match status query: %w", err)
	}
	var row matchTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		return match.Match{}, storeErr(err, "update match status")
	}
	return matchFromRow(row), nil
}

func lockPerformances(ctx context.Context, tx *sqlx.Tx, matchID string, playerIDs []string) (map[string]performanceTableModel, error) {
	out := make(map[string]performanceTableModel, len(playerIDs))
	if len(playerIDs) == 0 {
		return out, nil
	}
	query, args, err := qb.Select(performanceColumns).
		From("player_performance").
		Where(
			qb.Eq("match_id", matchID),
			qb.InStrings("player_id", playerIDs),
		).
		OrderBy("id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock performances query: %w", err)
	}
	var rows []performanceTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, "lock performances")
	}
	for _, row := range rows {
		out[row.PlayerID] = row
	}
	return out, nil
}

func incrementPerformance(ctx context.Context, tx *sqlx.Tx, rowID string, delta performance.Stats, at time.Time) error {
	update := qb.Update("player_performance")
	for _, c := range statIncrements(delta) {
		update.Increment(c.column, c.delta)
	}
	if !update.HasSets() {
		return nil
	}
	query, args, err := update.
		Set("updated_at", at).
		Where(qb.Eq("id", rowID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build increment performance query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return storeErr(err, "increment performance")
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return crerr.Newf("increment performance %s: %d rows affected", rowID, n)
	}
	return nil
}
