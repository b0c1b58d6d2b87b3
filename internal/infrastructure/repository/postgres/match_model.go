package postgres

import (
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
)

const matchColumns = "id, tournament_id, season_id, home_team_id, away_team_id, status, home_match_num, away_match_num, " +
	"home_score, home_balls, home_wickets, away_score, away_balls, away_wickets, created_at, updated_at"

type matchTableModel struct {
	ID           string    `db:"id"`
	TournamentID string    `db:"tournament_id"`
	SeasonID     string    `db:"season_id"`
	HomeTeamID   string    `db:"home_team_id"`
	AwayTeamID   string    `db:"away_team_id"`
	Status       string    `db:"status"`
	HomeMatchNum int       `db:"home_match_num"`
	AwayMatchNum int       `db:"away_match_num"`
	HomeScore    int       `db:"home_score"`
	HomeBalls    int       `db:"home_balls"`
	HomeWickets  int       `db:"home_wickets"`
	AwayScore    int       `db:"away_score"`
	AwayBalls    int       `db:"away_balls"`
	AwayWickets  int       `db:"away_wickets"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	ID           string `db:"id"`
	TournamentID string `db:"tournament_id"`
	SeasonID     string `db:"season_id"`
	HomeTeamID   string `db:"home_team_id"`
	AwayTeamID   string `db:"away_team_id"`
	Status       string `db:"status"`
	HomeMatchNum int    `db:"home_match_num"`
	AwayMatchNum int    `db:"away_match_num"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		SeasonID:     row.SeasonID,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		Status:       match.Status(row.Status),
		HomeMatchNum: row.HomeMatchNum,
		AwayMatchNum: row.AwayMatchNum,
		Home:         match.SideTotals{Score: row.HomeScore, Balls: row.HomeBalls, Wickets: row.HomeWickets},
		Away:         match.SideTotals{Score: row.AwayScore, Balls: row.AwayBalls, Wickets: row.AwayWickets},
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

const ballEventColumns = "id, match_id, ball_num, batting_team_id, striker_id, non_striker_id, bowler_id, runs_scored, " +
	"balls_played, wicket_taken, wicket_type, fielder_id, dropped_by_id, is_four, is_six, extra_type, created_at"

type ballEventTableModel struct {
	ID            string    `db:"id"`
	MatchID       string    `db:"match_id"`
	BallNum       int       `db:"ball_num"`
	BattingTeamID string    `db:"batting_team_id"`
	StrikerID     string    `db:"striker_id"`
	NonStrikerID  string    `db:"non_striker_id"`
	BowlerID      string    `db:"bowler_id"`
	RunsScored    int       `db:"runs_scored"`
	BallsPlayed   int       `db:"balls_played"`
	WicketTaken   bool      `db:"wicket_taken"`
	WicketType    string    `db:"wicket_type"`
	FielderID     string    `db:"fielder_id"`
	DroppedByID   string    `db:"dropped_by_id"`
	IsFour        bool      `db:"is_four"`
	IsSix         bool      `db:"is_six"`
	ExtraType     string    `db:"extra_type"`
	CreatedAt     time.Time `db:"created_at"`
}

func ballEventToRow(e match.BallEvent) ballEventTableModel {
	return ballEventTableModel{
		ID:            e.ID,
		MatchID:       e.MatchID,
		BallNum:       e.BallNum,
		BattingTeamID: e.BattingTeamID,
		StrikerID:     e.StrikerID,
		NonStrikerID:  e.NonStrikerID,
		BowlerID:      e.BowlerID,
		RunsScored:    e.RunsScored,
		BallsPlayed:   e.BallsPlayed,
		WicketTaken:   e.WicketTaken,
		WicketType:    string(e.WicketType),
		FielderID:     e.FielderID,
		DroppedByID:   e.DroppedByID,
		IsFour:        e.Four,
		IsSix:         e.Six,
		ExtraType:     string(e.ExtraType),
		CreatedAt:     e.CreatedAt,
	}
}

func ballEventFromRow(row ballEventTableModel) match.BallEvent {
	return match.BallEvent{
		ID:            row.ID,
		MatchID:       row.MatchID,
		BallNum:       row.BallNum,
		BattingTeamID: row.BattingTeamID,
		StrikerID:     row.StrikerID,
		NonStrikerID:  row.NonStrikerID,
		BowlerID:      row.BowlerID,
		RunsScored:    row.RunsScored,
		BallsPlayed:   row.BallsPlayed,
		WicketTaken:   row.WicketTaken,
		WicketType:    match.WicketType(row.WicketType),
		FielderID:     row.FielderID,
		DroppedByID:   row.DroppedByID,
		Four:          row.IsFour,
		Six:           row.IsSix,
		ExtraType:     match.ExtraType(row.ExtraType),
		CreatedAt:     row.CreatedAt,
	}
}

const performanceColumns = "id, player_season_id, player_id, team_id, match_id, runs_scored, balls_faced, fours, sixes, " +
	"runs_conceded, balls_bowled, wickets_taken, catches, catches_dropped, run_outs, dismissals, wides_bowled, " +
	"no_balls_bowled, byes_bowled, created_at, updated_at"

type performanceTableModel struct {
	ID             string    `db:"id"`
	PlayerSeasonID string    `db:"player_season_id"`
	PlayerID       string    `db:"player_id"`
	TeamID         string    `db:"team_id"`
	MatchID        string    `db:"match_id"`
	RunsScored     int       `db:"runs_scored"`
	BallsFaced     int       `db:"balls_faced"`
	Fours          int       `db:"fours"`
	Sixes          int       `db:"sixes"`
	RunsConceded   int       `db:"runs_conceded"`
	BallsBowled    int       `db:"balls_bowled"`
	WicketsTaken   int       `db:"wickets_taken"`
	Catches        int       `db:"catches"`
	CatchesDropped int       `db:"catches_dropped"`
	RunOuts        int       `db:"run_outs"`
	Dismissals     int       `db:"dismissals"`
	WidesBowled    int       `db:"wides_bowled"`
	NoBallsBowled  int       `db:"no_balls_bowled"`
	ByesBowled     int       `db:"byes_bowled"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func performanceFromRow(row performanceTableModel) performance.Performance {
	return performance.Performance{
		ID:             row.ID,
		PlayerSeasonID: row.PlayerSeasonID,
		PlayerID:       row.PlayerID,
		TeamID:         row.TeamID,
		MatchID:        row.MatchID,
		Stats: performance.Stats{
			RunsScored:     row.RunsScored,
			BallsFaced:     row.BallsFaced,
			Fours:          row.Fours,
			Sixes:          row.Sixes,
			RunsConceded:   row.RunsConceded,
			BallsBowled:    row.BallsBowled,
			WicketsTaken:   row.WicketsTaken,
			Catches:        row.Catches,
			CatchesDropped: row.CatchesDropped,
			RunOuts:        row.RunOuts,
			Dismissals:     row.Dismissals,
			WidesBowled:    row.WidesBowled,
			NoBallsBowled:  row.NoBallsBowled,
			ByesBowled:     row.ByesBowled,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type counterDelta struct {
	column string
	delta  int
}

// statIncrements pairs each counter column with its delta, in column order.
func statIncrements(d performance.Stats) []counterDelta {
	return []counterDelta{
		{"runs_scored", d.RunsScored},
		{"balls_faced", d.BallsFaced},
		{"fours", d.Fours},
		{"sixes", d.Sixes},
		{"runs_conceded", d.RunsConceded},
		{"balls_bowled", d.BallsBowled},
		{"wickets_taken", d.WicketsTaken},
		{"catches", d.Catches},
		{"catches_dropped", d.CatchesDropped},
		{"run_outs", d.RunOuts},
		{"dismissals", d.Dismissals},
		{"wides_bowled", d.WidesBowled},
		{"no_balls_bowled", d.NoBallsBowled},
		{"byes_bowled", d.ByesBowled},
	}
}
