package match

import (
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
)

func TestStatus_Transitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusNotStarted, StatusLive, true},
		{StatusNotStarted, StatusFinished, false},
		{StatusNotStarted, StatusAbandoned, false},
		{StatusLive, StatusFinished, true},
		{StatusLive, StatusAbandoned, true},
		{StatusLive, StatusNotStarted, false},
		{StatusLive, StatusLive, false},
		{StatusFinished, StatusLive, false},
		{StatusFinished, StatusAbandoned, false},
		{StatusAbandoned, StatusLive, false},
	}

	for _, tc := range cases {
		err := tc.from.Transition(tc.to)
		if tc.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("%s -> %s: expected ErrIllegalTransition, got %v", tc.from, tc.to, err)
		}
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Status{
		"NS":          StatusNotStarted,
		"NOT_STARTED": StatusNotStarted,
		"LIVE":        StatusLive,
		"ABANDONED":   StatusAbandoned,
		"ABAN":        StatusAbandoned,
	} {
		got, err := ParseStatus(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: got=%s err=%v want=%s", raw, got, err, want)
		}
	}
	if _, err := ParseStatus("PAUSED"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestMatch_MatchNumForUsesEachTeamsOwnSchedule(t *testing.T) {
	t.Parallel()

	m := Match{HomeTeamID: "A", AwayTeamID: "B", HomeMatchNum: 3, AwayMatchNum: 2}
	if got, ok := m.MatchNumFor("A"); !ok || got != 3 {
		t.Fatalf("unexpected home match num: got=%d ok=%t", got, ok)
	}
	if got, ok := m.MatchNumFor("B"); !ok || got != 2 {
		t.Fatalf("unexpected away match num: got=%d ok=%t", got, ok)
	}
	if _, ok := m.MatchNumFor("C"); ok {
		t.Fatalf("expected unknown team to have no match num")
	}
}

func TestNewSnapshot_SplitsBySide(t *testing.T) {
	t.Parallel()

	m := Match{ID: "m1", HomeTeamID: "A", AwayTeamID: "B"}
	rows := []performance.Performance{
		{PlayerID: "a1", TeamID: "A"},
		{PlayerID: "b1", TeamID: "B"},
		{PlayerID: "a2", TeamID: "A"},
	}

	snap := NewSnapshot(m, rows, nil)
	if len(snap.HomePlayers) != 2 || len(snap.AwayPlayers) != 1 {
		t.Fatalf("unexpected split: home=%d away=%d", len(snap.HomePlayers), len(snap.AwayPlayers))
	}
	if snap.Timeline == nil {
		t.Fatalf("expected empty timeline, not nil")
	}
}
