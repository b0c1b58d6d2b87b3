package roster

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSlot = errors.New("unknown roster slot")

// Slot names double as fantasy_team_instance column names.
type Slot string

const (
	SlotBat1    Slot = "bat1"
	SlotBat2    Slot = "bat2"
	SlotWicket1 Slot = "wicket1"
	SlotBowl1   Slot = "bowl1"
	SlotBowl2   Slot = "bowl2"
	SlotBowl3   Slot = "bowl3"
	SlotAll1    Slot = "all1"
	SlotFlex1   Slot = "flex1"
	SlotBench1  Slot = "bench1"
	SlotBench2  Slot = "bench2"
	SlotBench3  Slot = "bench3"
	SlotBench4  Slot = "bench4"
	SlotBench5  Slot = "bench5"
	SlotBench6  Slot = "bench6"
)

var (
	ActiveSlots = []Slot{SlotBat1, SlotBat2, SlotWicket1, SlotBowl1, SlotBowl2, SlotBowl3, SlotAll1, SlotFlex1}
	BenchSlots  = []Slot{SlotBench1, SlotBench2, SlotBench3, SlotBench4, SlotBench5, SlotBench6}
	AllSlots    = append(append([]Slot{}, ActiveSlots...), BenchSlots...)
)

func ParseSlot(raw string) (Slot, error) {
	s := Slot(strings.ToLower(strings.TrimSpace(raw)))
	for _, slot := range AllSlots {
		if slot == s {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, raw)
}

// Active reports whether players in this slot score for the team.
func (s Slot) Active() bool {
	for _, slot := range ActiveSlots {
		if slot == s {
			return true
		}
	}
	return false
}
