package roster

import (
	"errors"
	"testing"
)

func sampleInstance() Instance {
	return Instance{
		ID:            "i1",
		FantasyTeamID: "ft1",
		MatchNum:      3,
		Slots: map[Slot]string{
			SlotBat1:   "p1",
			SlotBat2:   "p2",
			SlotBowl1:  "p3",
			SlotBench1: "p9",
		},
		CaptainID:     "p1",
		ViceCaptainID: "p2",
	}
}

func TestParseSlot(t *testing.T) {
	t.Parallel()

	slot, err := ParseSlot(" Bench3 ")
	if err != nil || slot != SlotBench3 {
		t.Fatalf("unexpected parse result: slot=%s err=%v", slot, err)
	}
	if slot.Active() {
		t.Fatalf("bench slot must not be active")
	}
	if !SlotFlex1.Active() {
		t.Fatalf("flex1 must be active")
	}
	if _, err := ParseSlot("keeper"); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if got := len(AllSlots); got != 14 {
		t.Fatalf("unexpected slot count: got=%d want=14", got)
	}
}

func TestInstance_ValidateCaptains(t *testing.T) {
	t.Parallel()

	item := sampleInstance()
	tests := []struct {
		name    string
		captain string
		vice    string
		want    error
	}{
		{name: "valid", captain: "p3", vice: "p1"},
		{name: "same player", captain: "p1", vice: "p1", want: ErrInvalidCaptaincy},
		{name: "bench captain", captain: "p9", vice: "p1", want: ErrPlayerNotOnRoster},
		{name: "unknown vice", captain: "p1", vice: "p42", want: ErrPlayerNotOnRoster},
		{name: "missing vice", captain: "p1", want: ErrInvalidCaptaincy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := item.ValidateCaptains(tc.captain, tc.vice)
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestInstance_Swap(t *testing.T) {
	t.Parallel()

	item := sampleInstance()
	swapped, err := item.Swap(SlotBat1, SlotBench1)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if swapped.PlayerAt(SlotBat1) != "p9" || swapped.PlayerAt(SlotBench1) != "p1" {
		t.Fatalf("unexpected slots after swap: %+v", swapped.Slots)
	}
	if item.PlayerAt(SlotBat1) != "p1" {
		t.Fatalf("swap must not mutate the original instance")
	}

	vacant, err := item.Swap(SlotAll1, SlotBowl1)
	if err != nil {
		t.Fatalf("swap with vacant slot: %v", err)
	}
	if vacant.PlayerAt(SlotAll1) != "p3" || vacant.PlayerAt(SlotBowl1) != "" {
		t.Fatalf("unexpected slots after vacant swap: %+v", vacant.Slots)
	}

	if _, err := item.Swap(SlotBat1, SlotBat1); !errors.Is(err, ErrSameSlot) {
		t.Fatalf("expected ErrSameSlot, got %v", err)
	}
	if _, err := item.Swap("bat9", SlotBat1); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}

	item.IsLocked = true
	if _, err := item.Swap(SlotBat1, SlotBat2); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}
