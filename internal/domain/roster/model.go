package roster

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrLocked            = errors.New("roster is locked")
	ErrSameSlot          = errors.New("slots must differ")
	ErrInvalidCaptaincy  = errors.New("invalid captain selection")
	ErrPlayerNotOnRoster = errors.New("player is not in an active slot")
)

// Team is a user's fantasy team within one league.
type Team struct {
	ID       string
	LeagueID string
	UserID   string
	Name     string
}

// Instance is one fantasy team's roster for one fantasy week. Empty slot
// values are vacant.
type Instance struct {
	ID            string
	FantasyTeamID string
	MatchNum      int
	Slots         map[Slot]string
	CaptainID     string
	ViceCaptainID string
	IsLocked      bool
	UpdatedAt     time.Time
}

func (i Instance) PlayerAt(slot Slot) string {
	return i.Slots[slot]
}

// Assignments lists occupied slots in slot order.
func (i Instance) Assignments() []Assignment {
	out := make([]Assignment, 0, len(AllSlots))
	for _, slot := range AllSlots {
		if playerID := i.Slots[slot]; playerID != "" {
			out = append(out, Assignment{Slot: slot, PlayerID: playerID})
		}
	}
	return out
}

func (i Instance) PlayerIDs() []string {
	assignments := i.Assignments()
	out := make([]string, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.PlayerID)
	}
	return out
}

func (i Instance) InActiveSlot(playerID string) bool {
	if playerID == "" {
		return false
	}
	for _, slot := range ActiveSlots {
		if i.Slots[slot] == playerID {
			return true
		}
	}
	return false
}

// ValidateCaptains checks a proposed captain pair against this roster.
func (i Instance) ValidateCaptains(captainID, viceCaptainID string) error {
	if captainID == "" || viceCaptainID == "" {
		return fmt.Errorf("%w: captain and vice captain are required", ErrInvalidCaptaincy)
	}
	if captainID == viceCaptainID {
		return fmt.Errorf("%w: captain and vice captain must differ", ErrInvalidCaptaincy)
	}
	if !i.InActiveSlot(captainID) {
		return fmt.Errorf("%w: captain %s", ErrPlayerNotOnRoster, captainID)
	}
	if !i.InActiveSlot(viceCaptainID) {
		return fmt.Errorf("%w: vice captain %s", ErrPlayerNotOnRoster, viceCaptainID)
	}
	return nil
}

// Swap exchanges the players of two slots. Either may be vacant.
func (i Instance) Swap(a, b Slot) (Instance, error) {
	if _, err := ParseSlot(string(a)); err != nil {
		return Instance{}, err
	}
	if _, err := ParseSlot(string(b)); err != nil {
		return Instance{}, err
	}
	if a == b {
		return Instance{}, fmt.Errorf("%w: %s", ErrSameSlot, a)
	}
	if i.IsLocked {
		return Instance{}, ErrLocked
	}

	slots := make(map[Slot]string, len(i.Slots)+2)
	for k, v := range i.Slots {
		slots[k] = v
	}
	slots[a], slots[b] = i.Slots[b], i.Slots[a]
	i.Slots = slots
	return i, nil
}

type Assignment struct {
	Slot     Slot
	PlayerID string
}

// Matchup pairs two instances of the same league week head to head.
type Matchup struct {
	ID          string
	LeagueID    string
	MatchNum    int
	Instance1ID string
	Instance2ID string
}
