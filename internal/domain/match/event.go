package match

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidEvent     = errors.New("invalid ball event")
	ErrPlayerNotInMatch = errors.New("player has no performance row in match")
)

const maxRunsPerBall = 7

type WicketType string

const (
	WicketCatch     WicketType = "CATCH"
	WicketRunOut    WicketType = "RUN_OUT"
	WicketBowled    WicketType = "BOWLED"
	WicketStumped   WicketType = "STUMPED"
	WicketLBW       WicketType = "LBW"
	WicketHitWicket WicketType = "HIT_WICKET"
)

func (w WicketType) valid() bool {
	switch w {
	case WicketCatch, WicketRunOut, WicketBowled, WicketStumped, WicketLBW, WicketHitWicket:
		return true
	}
	return false
}

func (w WicketType) needsFielder() bool {
	return w == WicketCatch || w == WicketRunOut || w == WicketStumped
}

type ExtraType string

const (
	ExtraNone   ExtraType = ""
	ExtraWide   ExtraType = "WIDE"
	ExtraNoBall ExtraType = "NO_BALL"
	ExtraBye    ExtraType = "BYE"
	ExtraLegBye ExtraType = "LEG_BYE"
)

func (e ExtraType) valid() bool {
	switch e {
	case ExtraNone, ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye:
		return true
	}
	return false
}

// BallEvent is one delivery. Events are append-only; BallNum is assigned by
// the store in arrival order.
type BallEvent struct {
	ID            string
	MatchID       string
	BallNum       int
	BattingTeamID string
	StrikerID     string
	NonStrikerID  string
	BowlerID      string
	RunsScored    int
	BallsPlayed   int
	WicketTaken   bool
	WicketType    WicketType
	FielderID     string
	DroppedByID   string
	Four          bool
	Six           bool
	ExtraType     ExtraType
	CreatedAt     time.Time
}

// Validate checks the event against the match it targets. It does not look
// at match status; lifecycle legality belongs to the caller.
func (e BallEvent) Validate(m Match) error {
	if e.MatchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidEvent)
	}
	if e.MatchID != m.ID {
		return fmt.Errorf("%w: event targets match %s", ErrInvalidEvent, e.MatchID)
	}
	if e.BattingTeamID == "" {
		return fmt.Errorf("%w: batting team is required", ErrInvalidEvent)
	}
	if _, ok := m.SideOf(e.BattingTeamID); !ok {
		return fmt.Errorf("%w: team %s is not playing this match", ErrInvalidEvent, e.BattingTeamID)
	}
	if e.StrikerID == "" || e.BowlerID == "" {
		return fmt.Errorf("%w: striker and bowler are required", ErrInvalidEvent)
	}
	if e.StrikerID == e.BowlerID {
		return fmt.Errorf("%w: striker cannot bowl to themselves", ErrInvalidEvent)
	}
	if e.NonStrikerID != "" && e.NonStrikerID == e.StrikerID {
		return fmt.Errorf("%w: striker and non-striker must differ", ErrInvalidEvent)
	}
	if e.RunsScored < 0 || e.RunsScored > maxRunsPerBall {
		return fmt.Errorf("%w: runs scored must be between 0 and %d", ErrInvalidEvent, maxRunsPerBall)
	}
	if e.BallsPlayed != 0 && e.BallsPlayed != 1 {
		return fmt.Errorf("%w: balls played must be 0 or 1", ErrInvalidEvent)
	}
	if e.Four && e.Six {
		return fmt.Errorf("%w: a delivery cannot be both four and six", ErrInvalidEvent)
	}
	if e.Four && e.RunsScored < 4 {
		return fmt.Errorf("%w: a four needs at least 4 runs", ErrInvalidEvent)
	}
	if e.Six && e.RunsScored < 6 {
		return fmt.Errorf("%w: a six needs at least 6 runs", ErrInvalidEvent)
	}
	if !e.ExtraType.valid() {
		return fmt.Errorf("%w: unknown extra type %q", ErrInvalidEvent, e.ExtraType)
	}
	if (e.ExtraType == ExtraWide || e.ExtraType == ExtraNoBall) && e.BallsPlayed != 0 {
		return fmt.Errorf("%w: %s does not consume a ball", ErrInvalidEvent, e.ExtraType)
	}

	if !e.WicketTaken {
		if e.WicketType != "" {
			return fmt.Errorf("%w: wicket type set without a wicket", ErrInvalidEvent)
		}
		return nil
	}

	if !e.WicketType.valid() {
		return fmt.Errorf("%w: unknown wicket type %q", ErrInvalidEvent, e.WicketType)
	}
	if e.WicketType.needsFielder() && e.FielderID == "" {
		return fmt.Errorf("%w: %s requires a fielder", ErrInvalidEvent, e.WicketType)
	}
	if e.Four || e.Six {
		return fmt.Errorf("%w: a boundary cannot be a wicket", ErrInvalidEvent)
	}
	if e.WicketType != WicketRunOut && e.RunsScored != 0 {
		return fmt.Errorf("%w: only run-outs may carry completed runs", ErrInvalidEvent)
	}
	return nil
}

// CheckSides verifies that the batters belong to the batting team and the
// bowler and fielders to the other side. teamOf reports the team of the
// player's performance row in this match.
func (e BallEvent) CheckSides(m Match, teamOf func(playerID string) (string, bool)) error {
	batting, ok := m.SideOf(e.BattingTeamID)
	if !ok {
		return fmt.Errorf("%w: team %s is not playing this match", ErrInvalidEvent, e.BattingTeamID)
	}
	bowling := batting.Opposite()

	roles := []struct {
		role string
		id   string
		side Side
	}{
		{"striker", e.StrikerID, batting},
		{"non-striker", e.NonStrikerID, batting},
		{"bowler", e.BowlerID, bowling},
		{"fielder", e.FielderID, bowling},
		{"dropped-by fielder", e.DroppedByID, bowling},
	}
	for _, r := range roles {
		if r.id == "" {
			continue
		}
		teamID, ok := teamOf(r.id)
		if !ok {
			return fmt.Errorf("%w: player=%s match=%s", ErrPlayerNotInMatch, r.id, m.ID)
		}
		if side, ok := m.SideOf(teamID); !ok || side != r.side {
			return fmt.Errorf("%w: %s %s is not on the %s side", ErrInvalidEvent, r.role, r.id, r.side)
		}
	}
	return nil
}

// Players lists every distinct player id the event touches.
func (e BallEvent) Players() []string {
	out := make([]string, 0, 5)
	seen := make(map[string]struct{}, 5)
	for _, id := range []string{e.StrikerID, e.NonStrikerID, e.BowlerID, e.FielderID, e.DroppedByID} {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
