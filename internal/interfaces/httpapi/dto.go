package httpapi

import (
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
	"github.com/shopspring/decimal"
)

type createMatchRequest struct {
	SeasonID   string `json:"season_id" validate:"required"`
	HomeTeamID string `json:"home_team_id" validate:"required"`
	AwayTeamID string `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
}

type addEventRequest struct {
	BattingTeamID string `json:"batting_team_id" validate:"required"`
	StrikerID     string `json:"striker_id" validate:"required"`
	NonStrikerID  string `json:"non_striker_id"`
	BowlerID      string `json:"bowler_id" validate:"required"`
	RunsScored    int    `json:"runs_scored" validate:"min=0,max=7"`
	BallsPlayed   int    `json:"balls_played" validate:"min=0,max=1"`
	WicketTaken   bool   `json:"wicket_taken"`
	WicketType    string `json:"wicket_type" validate:"max=16"`
	FielderID     string `json:"fielder_id"`
	DroppedByID   string `json:"dropped_by_id"`
	Four          bool   `json:"four"`
	Six           bool   `json:"six"`
	ExtraType     string `json:"extra_type" validate:"max=16"`
}

type finishMatchRequest struct {
	Status string `json:"status" validate:"omitempty,max=16"`
}

type upsertRuleRequest struct {
	Stat          string              `json:"stat" validate:"required,max=64"`
	Category      string              `json:"category" validate:"required"`
	Mode          string              `json:"mode" validate:"required"`
	PerUnitPoints decimal.NullDecimal `json:"per_unit_points"`
	FlatPoints    decimal.NullDecimal `json:"flat_points"`
	Threshold     int                 `json:"threshold" validate:"min=0"`
	Band          string              `json:"band" validate:"max=32"`
	Multiplier    decimal.NullDecimal `json:"multiplier"`
}

type updateCaptainsRequest struct {
	CaptainID     string `json:"captain_id" validate:"required"`
	ViceCaptainID string `json:"vice_captain_id" validate:"required,nefield=CaptainID"`
}

type swapSlotsRequest struct {
	SlotA string `json:"slot_a" validate:"required"`
	SlotB string `json:"slot_b" validate:"required"`
}

type matchDTO struct {
	ID           string           `json:"id"`
	TournamentID string           `json:"tournament_id"`
	SeasonID     string           `json:"season_id"`
	HomeTeamID   string           `json:"home_team_id"`
	AwayTeamID   string           `json:"away_team_id"`
	Status       match.Status     `json:"status"`
	HomeMatchNum int              `json:"home_match_num"`
	AwayMatchNum int              `json:"away_match_num"`
	Home         match.SideTotals `json:"home"`
	Away         match.SideTotals `json:"away"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type performanceDTO struct {
	ID             string            `json:"id"`
	PlayerSeasonID string            `json:"player_season_id"`
	PlayerID       string            `json:"player_id"`
	TeamID         string            `json:"team_id"`
	Stats          performance.Stats `json:"stats"`
}

type ballEventDTO struct {
	ID            string `json:"id"`
	BallNum       int    `json:"ball_num"`
	BattingTeamID string `json:"batting_team_id"`
	StrikerID     string `json:"striker_id"`
	NonStrikerID  string `json:"non_striker_id,omitempty"`
	BowlerID      string `json:"bowler_id"`
	RunsScored    int    `json:"runs_scored"`
	BallsPlayed   int    `json:"balls_played"`
	WicketTaken   bool   `json:"wicket_taken"`
	WicketType    string `json:"wicket_type,omitempty"`
	FielderID     string `json:"fielder_id,omitempty"`
	DroppedByID   string `json:"dropped_by_id,omitempty"`
	Four          bool   `json:"four"`
	Six           bool   `json:"six"`
	ExtraType     string `json:"extra_type,omitempty"`
}

type snapshotDTO struct {
	Match       matchDTO         `json:"match"`
	HomePlayers []performanceDTO `json:"home_players"`
	AwayPlayers []performanceDTO `json:"away_players"`
	Timeline    []ballEventDTO   `json:"timeline"`
}

type ruleDTO struct {
	ID            string              `json:"id"`
	LeagueID      string              `json:"league_id,omitempty"`
	Stat          string              `json:"stat"`
	Category      scoring.Category    `json:"category"`
	Mode          scoring.Mode        `json:"mode"`
	PerUnitPoints decimal.NullDecimal `json:"per_unit_points"`
	FlatPoints    decimal.NullDecimal `json:"flat_points"`
	Threshold     int                 `json:"threshold"`
	Band          string              `json:"band,omitempty"`
	Multiplier    decimal.NullDecimal `json:"multiplier"`
}

type ruleSetDTO struct {
	LeagueID string    `json:"league_id"`
	Rules    []ruleDTO `json:"rules"`
}

type instanceDTO struct {
	ID            string            `json:"id"`
	FantasyTeamID string            `json:"fantasy_team_id"`
	MatchNum      int               `json:"match_num"`
	Slots         map[string]string `json:"slots"`
	CaptainID     string            `json:"captain_id"`
	ViceCaptainID string            `json:"vice_captain_id"`
	IsLocked      bool              `json:"is_locked"`
}

type playerPointsDTO struct {
	Slot           string              `json:"slot"`
	PlayerID       string              `json:"player_id"`
	Counted        bool                `json:"counted"`
	IsCaptain      bool                `json:"is_captain"`
	IsViceCaptain  bool                `json:"is_vice_captain"`
	Resolved       bool                `json:"resolved"`
	MatchID        string              `json:"match_id,omitempty"`
	MatchStatus    match.Status        `json:"match_status,omitempty"`
	HasPerformance bool                `json:"has_performance"`
	Stats          performance.Stats   `json:"stats"`
	Score          scoring.PlayerScore `json:"score"`
}

type sideScoreDTO struct {
	InstanceID    string            `json:"instance_id"`
	FantasyTeamID string            `json:"fantasy_team_id"`
	Total         decimal.Decimal   `json:"total"`
	Players       []playerPointsDTO `json:"players"`
}

type matchupScoreDTO struct {
	MatchupID        string               `json:"matchup_id"`
	LeagueID         string               `json:"league_id"`
	MatchNum         int                  `json:"match_num"`
	Phase            usecase.MatchupPhase `json:"phase"`
	Valid            bool                 `json:"valid"`
	WinnerInstanceID string               `json:"winner_instance_id,omitempty"`
	Side1            sideScoreDTO         `json:"side1"`
	Side2            sideScoreDTO         `json:"side2"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		SeasonID:     m.SeasonID,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		Status:       m.Status,
		HomeMatchNum: m.HomeMatchNum,
		AwayMatchNum: m.AwayMatchNum,
		Home:         m.Home,
		Away:         m.Away,
		UpdatedAt:    m.UpdatedAt,
	}
}

func performancesToDTO(rows []performance.Performance) []performanceDTO {
	out := make([]performanceDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, performanceDTO{
			ID:             row.ID,
			PlayerSeasonID: row.PlayerSeasonID,
			PlayerID:       row.PlayerID,
			TeamID:         row.TeamID,
			Stats:          row.Stats,
		})
	}
	return out
}

func snapshotToDTO(snap match.Snapshot) snapshotDTO {
	timeline := make([]ballEventDTO, 0, len(snap.Timeline))
	for _, e := range snap.Timeline {
		timeline = append(timeline, ballEventDTO{
			ID:            e.ID,
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
			Four:          e.Four,
			Six:           e.Six,
			ExtraType:     string(e.ExtraType),
		})
	}
	return snapshotDTO{
		Match:       matchToDTO(snap.Match),
		HomePlayers: performancesToDTO(snap.HomePlayers),
		AwayPlayers: performancesToDTO(snap.AwayPlayers),
		Timeline:    timeline,
	}
}

func ruleToDTO(r scoring.Rule) ruleDTO {
	out := ruleDTO{
		ID:            r.ID,
		LeagueID:      r.LeagueID,
		Stat:          r.Stat,
		Category:      r.Category,
		Mode:          r.Mode,
		PerUnitPoints: r.PerUnitPoints,
		FlatPoints:    r.FlatPoints,
		Threshold:     r.Threshold,
		Multiplier:    r.Multiplier,
	}
	if r.Band != nil {
		out.Band = r.Band.String()
	}
	return out
}

func rulesToDTO(rules []scoring.Rule) []ruleDTO {
	out := make([]ruleDTO, 0, len(rules))
	for _, r := range rules {
		out = append(out, ruleToDTO(r))
	}
	return out
}

func instanceToDTO(item roster.Instance) instanceDTO {
	slots := make(map[string]string, len(roster.AllSlots))
	for _, slot := range roster.AllSlots {
		slots[string(slot)] = item.PlayerAt(slot)
	}
	return instanceDTO{
		ID:            item.ID,
		FantasyTeamID: item.FantasyTeamID,
		MatchNum:      item.MatchNum,
		Slots:         slots,
		CaptainID:     item.CaptainID,
		ViceCaptainID: item.ViceCaptainID,
		IsLocked:      item.IsLocked,
	}
}

func sideToDTO(side usecase.SideScore) sideScoreDTO {
	players := make([]playerPointsDTO, 0, len(side.Players))
	for _, p := range side.Players {
		item := playerPointsDTO{
			Slot:           string(p.Slot),
			PlayerID:       p.PlayerID,
			Counted:        p.Counted,
			IsCaptain:      p.IsCaptain,
			IsViceCaptain:  p.IsViceCaptain,
			Resolved:       p.Resolution.Resolved,
			HasPerformance: p.Resolution.HasPerformance,
			Stats:          p.Resolution.Performance.Stats,
			Score:          p.Score,
		}
		if p.Resolution.Resolved {
			item.MatchID = p.Resolution.Match.ID
			item.MatchStatus = p.Resolution.Match.Status
		}
		players = append(players, item)
	}
	return sideScoreDTO{
		InstanceID:    side.InstanceID,
		FantasyTeamID: side.FantasyTeamID,
		Total:         side.Total,
		Players:       players,
	}
}

func matchupToDTO(m usecase.MatchupScore) matchupScoreDTO {
	return matchupScoreDTO{
		MatchupID:        m.MatchupID,
		LeagueID:         m.LeagueID,
		MatchNum:         m.MatchNum,
		Phase:            m.Phase,
		Valid:            m.Valid,
		WinnerInstanceID: m.Winner(),
		Side1:            sideToDTO(m.Side1),
		Side2:            sideToDTO(m.Side2),
	}
}

func matchupsToDTO(items []usecase.MatchupScore) []matchupScoreDTO {
	out := make([]matchupScoreDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchupToDTO(item))
	}
	return out
}
