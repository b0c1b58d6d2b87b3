package match

import (
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
)

func testMatch() Match {
	return Match{ID: "m1", HomeTeamID: "A", AwayTeamID: "B", Status: StatusLive}
}

func deltaFor(t *testing.T, effect Effect, playerID string) performance.Stats {
	t.Helper()
	for _, d := range effect.Players {
		if d.PlayerID == playerID {
			return d.Stats
		}
	}
	t.Fatalf("no delta for player %s", playerID)
	return performance.Stats{}
}

func TestBuildEffect_BoundaryFour(t *testing.T) {
	t.Parallel()

	effect, err := BuildEffect(testMatch(), BallEvent{
		MatchID:       "m1",
		BattingTeamID: "A",
		StrikerID:     "a1",
		BowlerID:      "b1",
		RunsScored:    4,
		BallsPlayed:   1,
		Four:          true,
	})
	if err != nil {
		t.Fatalf("build effect: %v", err)
	}

	if got := deltaFor(t, effect, "a1"); got != (performance.Stats{RunsScored: 4, BallsFaced: 1, Fours: 1}) {
		t.Fatalf("unexpected striker delta: %+v", got)
	}
	if got := deltaFor(t, effect, "b1"); got != (performance.Stats{RunsConceded: 4, BallsBowled: 1}) {
		t.Fatalf("unexpected bowler delta: %+v", got)
	}
	if effect.Home != (SideDelta{Score: 4, Balls: 1}) {
		t.Fatalf("unexpected home delta: %+v", effect.Home)
	}
	if effect.Away != (SideDelta{}) {
		t.Fatalf("unexpected away delta: %+v", effect.Away)
	}
}

func TestBuildEffect_AwayBattingSix(t *testing.T) {
	t.Parallel()

	effect, err := BuildEffect(testMatch(), BallEvent{
		MatchID: "m1", BattingTeamID: "B", StrikerID: "b1", BowlerID: "a1",
		RunsScored: 6, BallsPlayed: 1, Six: true,
	})
	if err != nil {
		t.Fatalf("build effect: %v", err)
	}
	if effect.BattingSide != SideAway {
		t.Fatalf("unexpected batting side: %s", effect.BattingSide)
	}
	if effect.Away != (SideDelta{Score: 6, Balls: 1}) {
		t.Fatalf("unexpected away delta: %+v", effect.Away)
	}
	if got := deltaFor(t, effect, "b1"); got.Sixes != 1 || got.Fours != 0 {
		t.Fatalf("unexpected striker delta: %+v", got)
	}
}

func TestBuildEffect_Catch(t *testing.T) {
	t.Parallel()

	effect, err := BuildEffect(testMatch(), BallEvent{
		MatchID: "m1", BattingTeamID: "A", StrikerID: "a1", BowlerID: "b1",
		BallsPlayed: 1, WicketTaken: true, WicketType: WicketCatch, FielderID: "b2",
	})
	if err != nil {
		t.Fatalf("build effect: %v", err)
	}

	if got := deltaFor(t, effect, "a1"); got != (performance.Stats{BallsFaced: 1}) {
		t.Fatalf("unexpected striker delta: %+v", got)
	}
	if got := deltaFor(t, effect, "b1"); got != (performance.Stats{BallsBowled: 1, WicketsTaken: 1}) {
		t.Fatalf("unexpected bowler delta: %+v", got)
	}
	if got := deltaFor(t, effect, "b2"); got != (performance.Stats{Catches: 1}) {
		t.Fatalf("unexpected catcher delta: %+v", got)
	}
	if effect.Home != (SideDelta{Balls: 1}) {
		t.Fatalf("unexpected batting side delta: %+v", effect.Home)
	}
	if effect.Away != (SideDelta{Wickets: 1}) {
		t.Fatalf("unexpected bowling side delta: %+v", effect.Away)
	}
}

func TestBuildEffect_CaughtAndBowledMergesBowler(t *testing.T) {
	t.Parallel()

	effect, err := BuildEffect(testMatch(), BallEvent{
		MatchID: "m1", BattingTeamID: "A", StrikerID: "a1", BowlerID: "b1",
		BallsPlayed: 1, WicketTaken: true, WicketType: WicketCatch, FielderID: "b1",
	})
	if err != nil {
		t.Fatalf("build effect: %v", err)
	}
	if len(effect.Players) != 2 {
		t.Fatalf("unexpected player delta count: got=%d want=2", len(effect.Players))
	}
	if got := deltaFor(t, effect, "b1"); got != (performance.Stats{BallsBowled: 1, WicketsTaken: 1, Catches: 1}) {
		t.Fatalf("unexpected merged bowler delta: %+v", got)
	}
}

func TestBuildEffect_OtherDismissals(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		event   BallEvent
		bowler  performance.Stats
		fielder performance.Stats
		batting SideDelta
	}{
		{
			name:    "bowled",
			event:   BallEvent{WicketType: WicketBowled, BallsPlayed: 1},
			bowler:  performance.Stats{BallsBowled: 1, WicketsTaken: 1},
			batting: SideDelta{Balls: 1},
		},
		{
			name:    "lbw",
			event:   BallEvent{WicketType: WicketLBW, BallsPlayed: 1},
			bowler:  performance.Stats{BallsBowled: 1, WicketsTaken: 1},
			batting: SideDelta{Balls: 1},
		},
		{
			name:    "stumped",
			event:   BallEvent{WicketType: WicketStumped, BallsPlayed: 1, FielderID: "b9"},
			bowler:  performance.Stats{BallsBowled: 1, WicketsTaken: 1},
			fielder: performance.Stats{Dismissals: 1},
			batting: SideDelta{Balls: 1},
		},
		{
			name:    "run out after two",
			event:   BallEvent{WicketType: WicketRunOut, BallsPlayed: 1, RunsScored: 2, FielderID: "b9"},
			bowler:  performance.Stats{BallsBowled: 1, RunsConceded: 2},
			fielder: performance.Stats{RunOuts: 1},
			batting: SideDelta{Score: 2, Balls: 1},
		},
		{
			name:    "run out off a wide",
			event:   BallEvent{WicketType: WicketRunOut, RunsScored: 1, ExtraType: ExtraWide, FielderID: "b9"},
			bowler:  performance.Stats{RunsConceded: 1, WidesBowled: 1},
			fielder: performance.Stats{RunOuts: 1},
			batting: SideDelta{Score: 1},
		},
		{
			name:    "stumped off a wide",
			event:   BallEvent{WicketType: WicketStumped, ExtraType: ExtraWide, FielderID: "b9"},
			bowler:  performance.Stats{WicketsTaken: 1, WidesBowled: 1},
			fielder: performance.Stats{Dismissals: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			event := tc.event
			event.MatchID = "m1"
			event.BattingTeamID = "A"
			event.StrikerID = "a1"
			event.BowlerID = "b1"
			event.WicketTaken = true

			effect, err := BuildEffect(testMatch(), event)
			if err != nil {
				t.Fatalf("build effect: %v", err)
			}
			if got := deltaFor(t, effect, "b1"); got != tc.bowler {
				t.Fatalf("unexpected bowler delta: got=%+v want=%+v", got, tc.bowler)
			}
			if event.FielderID != "" {
				if got := deltaFor(t, effect, event.FielderID); got != tc.fielder {
					t.Fatalf("unexpected fielder delta: got=%+v want=%+v", got, tc.fielder)
				}
			}
			if effect.Home != tc.batting {
				t.Fatalf("unexpected batting delta: got=%+v want=%+v", effect.Home, tc.batting)
			}
			if effect.Away != (SideDelta{Wickets: 1}) {
				t.Fatalf("unexpected bowling delta: %+v", effect.Away)
			}
		})
	}
}

func TestBuildEffect_ExtrasAndDroppedCatch(t *testing.T) {
	t.Parallel()

	effect, err := BuildEffect(testMatch(), BallEvent{
		MatchID: "m1", BattingTeamID: "A", StrikerID: "a1", BowlerID: "b1",
		RunsScored: 1, BallsPlayed: 0, ExtraType: ExtraWide, DroppedByID: "b3",
	})
	if err != nil {
		t.Fatalf("build effect: %v", err)
	}
	if got := deltaFor(t, effect, "b1"); got != (performance.Stats{RunsConceded: 1, WidesBowled: 1}) {
		t.Fatalf("unexpected bowler delta: %+v", got)
	}
	if got := deltaFor(t, effect, "b3"); got != (performance.Stats{CatchesDropped: 1}) {
		t.Fatalf("unexpected dropper delta: %+v", got)
	}
	if effect.Home != (SideDelta{Score: 1}) {
		t.Fatalf("a wide must not count as a ball faced: %+v", effect.Home)
	}
}

func TestBallEvent_Validate(t *testing.T) {
	t.Parallel()

	valid := BallEvent{MatchID: "m1", BattingTeamID: "A", StrikerID: "a1", BowlerID: "b1", BallsPlayed: 1}
	cases := map[string]func(e *BallEvent){
		"missing match":          func(e *BallEvent) { e.MatchID = "" },
		"other match":            func(e *BallEvent) { e.MatchID = "m2" },
		"missing batting team":   func(e *BallEvent) { e.BattingTeamID = "" },
		"batting team not match": func(e *BallEvent) { e.BattingTeamID = "C" },
		"missing striker":        func(e *BallEvent) { e.StrikerID = "" },
		"missing bowler":         func(e *BallEvent) { e.BowlerID = "" },
		"negative runs":          func(e *BallEvent) { e.RunsScored = -1 },
		"two balls":              func(e *BallEvent) { e.BallsPlayed = 2 },
		"four and six":           func(e *BallEvent) { e.RunsScored = 6; e.Four = true; e.Six = true },
		"four with two runs":     func(e *BallEvent) { e.RunsScored = 2; e.Four = true },
		"unknown extra":          func(e *BallEvent) { e.ExtraType = "OVERTHROW" },
		"wide consuming ball":    func(e *BallEvent) { e.ExtraType = ExtraWide },
		"wicket type no wicket":  func(e *BallEvent) { e.WicketType = WicketBowled },
		"unknown wicket":         func(e *BallEvent) { e.WicketTaken = true; e.WicketType = "RETIRED" },
		"catch without fielder":  func(e *BallEvent) { e.WicketTaken = true; e.WicketType = WicketCatch },
		"catch with runs":        func(e *BallEvent) { e.WicketTaken = true; e.WicketType = WicketCatch; e.FielderID = "b2"; e.RunsScored = 1 },
	}

	if err := valid.Validate(testMatch()); err != nil {
		t.Fatalf("expected base event to be valid: %v", err)
	}
	for name, mutate := range cases {
		event := valid
		mutate(&event)
		if err := event.Validate(testMatch()); !errors.Is(err, ErrInvalidEvent) {
			t.Fatalf("%s: expected ErrInvalidEvent, got %v", name, err)
		}
	}
}

func TestBallEvent_CheckSides(t *testing.T) {
	t.Parallel()

	teams := map[string]string{"a1": "A", "a2": "A", "b1": "B", "b2": "B"}
	teamOf := func(playerID string) (string, bool) {
		teamID, ok := teams[playerID]
		return teamID, ok
	}

	valid := BallEvent{MatchID: "m1", BattingTeamID: "A", StrikerID: "a1", NonStrikerID: "a2", BowlerID: "b1", FielderID: "b2"}
	if err := valid.CheckSides(testMatch(), teamOf); err != nil {
		t.Fatalf("expected base event to pass: %v", err)
	}

	cases := map[string]func(e *BallEvent){
		"striker bowling side":     func(e *BallEvent) { e.StrikerID = "b2" },
		"non-striker bowling side": func(e *BallEvent) { e.NonStrikerID = "b2" },
		"bowler batting side":      func(e *BallEvent) { e.BowlerID = "a2" },
		"fielder batting side":     func(e *BallEvent) { e.FielderID = "a2" },
		"dropper batting side":     func(e *BallEvent) { e.DroppedByID = "a2" },
	}
	for name, mutate := range cases {
		event := valid
		mutate(&event)
		if err := event.CheckSides(testMatch(), teamOf); !errors.Is(err, ErrInvalidEvent) {
			t.Fatalf("%s: expected ErrInvalidEvent, got %v", name, err)
		}
	}

	event := valid
	event.FielderID = "c1"
	if err := event.CheckSides(testMatch(), teamOf); !errors.Is(err, ErrPlayerNotInMatch) {
		t.Fatalf("expected ErrPlayerNotInMatch for a player without a row, got %v", err)
	}
}
