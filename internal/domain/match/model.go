package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
)

var ErrIllegalTransition = errors.New("illegal match status transition")

// Status codes are stored verbatim in match_info.status.
type Status string

const (
	StatusNotStarted Status = "NS"
	StatusLive       Status = "LIVE"
	StatusFinished   Status = "FINISHED"
	StatusAbandoned  Status = "ABAN"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusNotStarted, StatusLive, StatusFinished, StatusAbandoned:
		return Status(raw), nil
	case "NOT_STARTED":
		return StatusNotStarted, nil
	case "ABANDONED":
		return StatusAbandoned, nil
	default:
		return "", fmt.Errorf("unknown match status %q", raw)
	}
}

// Terminal statuses freeze the match and its performance rows.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusAbandoned
}

// CanTransitionTo allows only NS -> LIVE -> {FINISHED, ABAN}.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusNotStarted:
		return next == StatusLive
	case StatusLive:
		return next == StatusFinished || next == StatusAbandoned
	default:
		return false
	}
}

func (s Status) Transition(next Status) error {
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s, next)
	}
	return nil
}

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func (s Side) Opposite() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// SideTotals are one team's running totals. Score and Balls accrue while the
// side bats; Wickets counts dismissals the side takes in the field.
type SideTotals struct {
	Score   int `json:"score"`
	Balls   int `json:"balls"`
	Wickets int `json:"wickets"`
}

func (t SideTotals) Add(d SideDelta) SideTotals {
	return SideTotals{
		Score:   t.Score + d.Score,
		Balls:   t.Balls + d.Balls,
		Wickets: t.Wickets + d.Wickets,
	}
}

// Match is a real-world fixture. HomeMatchNum and AwayMatchNum are each
// team's own ordinal in the season and usually differ.
type Match struct {
	ID           string
	TournamentID string
	SeasonID     string
	HomeTeamID   string
	AwayTeamID   string
	Status       Status
	HomeMatchNum int
	AwayMatchNum int
	Home         SideTotals
	Away         SideTotals
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m Match) SideOf(teamID string) (Side, bool) {
	switch teamID {
	case "":
		return "", false
	case m.HomeTeamID:
		return SideHome, true
	case m.AwayTeamID:
		return SideAway, true
	default:
		return "", false
	}
}

// MatchNumFor returns the fantasy week this match represents for teamID.
func (m Match) MatchNumFor(teamID string) (int, bool) {
	side, ok := m.SideOf(teamID)
	if !ok {
		return 0, false
	}
	if side == SideHome {
		return m.HomeMatchNum, true
	}
	return m.AwayMatchNum, true
}

// Apply folds an effect's side deltas into the running totals.
func (m Match) Apply(effect Effect) Match {
	m.Home = m.Home.Add(effect.Home)
	m.Away = m.Away.Add(effect.Away)
	return m
}

// Snapshot is the read model returned after lifecycle and event operations.
type Snapshot struct {
	Match       Match
	HomePlayers []performance.Performance
	AwayPlayers []performance.Performance
	Timeline    []BallEvent
}

func NewSnapshot(m Match, rows []performance.Performance, timeline []BallEvent) Snapshot {
	out := Snapshot{
		Match:       m,
		HomePlayers: make([]performance.Performance, 0, len(rows)/2+1),
		AwayPlayers: make([]performance.Performance, 0, len(rows)/2+1),
		Timeline:    timeline,
	}
	for _, row := range rows {
		switch row.TeamID {
		case m.HomeTeamID:
			out.HomePlayers = append(out.HomePlayers, row)
		case m.AwayTeamID:
			out.AwayPlayers = append(out.AwayPlayers, row)
		}
	}
	if out.Timeline == nil {
		out.Timeline = []BallEvent{}
	}
	return out
}
