package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchupService_UpcomingBeforeAnyMatchStarts(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	got, err := env.matchups.ComputeMatchupScore(context.Background(), "matchup-1")
	require.NoError(t, err)

	assert.Equal(t, PhaseUpcoming, got.Phase)
	assert.False(t, got.Valid)
	assert.True(t, got.Side1.Total.IsZero())
	assert.True(t, got.Side2.Total.IsZero())
	assert.Equal(t, "", got.Winner())
}

// Alice's captain hits a four off Alice's vice captain: 4 runs, a four bonus
// and the top strike rate band make 11, doubled to 22. The vice concedes 4
// off one ball, lands in the worst economy band and scores -6 x 1.5.
func TestMatchupService_InProgressTotals(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.start(t, "match-1")
	env.ball(t, boundaryFour())

	got, err := env.matchups.ComputeMatchupScore(context.Background(), "matchup-1")
	require.NoError(t, err)

	assert.Equal(t, PhaseInProgress, got.Phase)
	assert.True(t, got.Valid)
	assert.Equal(t, "fti-alice-1", got.Side1.InstanceID)
	if !got.Side1.Total.Equal(decimal.NewFromInt(13)) {
		t.Fatalf("unexpected alice total: got=%s want=13", got.Side1.Total)
	}
	if !got.Side2.Total.IsZero() {
		t.Fatalf("unexpected bob total: got=%s want=0", got.Side2.Total)
	}
	assert.Equal(t, "fti-alice-1", got.Winner())

	captain := findPlayer(t, got.Side1, "p-harbour-1")
	assert.True(t, captain.IsCaptain)
	assert.True(t, captain.Score.Total.Equal(decimal.NewFromInt(22)), "captain total %s", captain.Score.Total)
	vice := findPlayer(t, got.Side1, "p-highland-3")
	assert.True(t, vice.Score.Total.Equal(decimal.NewFromInt(-9)), "vice total %s", vice.Score.Total)
}

func TestMatchupService_CompletedAfterAllMatchesFinish(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	for _, id := range []string{"match-1", "match-2"} {
		env.start(t, id)
		if _, err := env.matches.FinishMatch(ctx, id, memory.DemoTournamentID, ""); err != nil {
			t.Fatalf("finish %s: %v", id, err)
		}
	}

	got, err := env.matchups.ComputeMatchupScore(ctx, "matchup-1")
	require.NoError(t, err)
	assert.Equal(t, PhaseCompleted, got.Phase)
	assert.True(t, got.Valid)
}

func TestMatchupService_BenchDoesNotCount(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.start(t, "match-1")
	env.ball(t, AddEventInput{
		MatchID:       "match-1",
		BattingTeamID: "team-harbour",
		StrikerID:     "p-harbour-6",
		NonStrikerID:  "p-harbour-2",
		BowlerID:      "p-highland-2",
		RunsScored:    6,
		BallsPlayed:   1,
		Six:           true,
	})

	side, err := env.matchups.ListInstancePerformances(context.Background(), "fti-alice-1")
	require.NoError(t, err)
	require.Len(t, side.Players, len(roster.ActiveSlots)+1)

	bench := findPlayer(t, side, "p-harbour-6")
	assert.Equal(t, roster.SlotBench1, bench.Slot)
	assert.False(t, bench.Counted)
	assert.True(t, bench.Score.Total.IsPositive())
	assert.True(t, side.Total.IsZero(), "bench points leaked into total %s", side.Total)
	assert.True(t, bench.Resolution.HasPerformance)
	assert.Equal(t, match.StatusLive, bench.Resolution.Match.Status)
}

func TestMatchupService_LeagueWeekAndFeed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	week, err := env.matchups.ComputeLeagueWeek(ctx, memory.DemoLeagueID, 1)
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, "matchup-1", week[0].MatchupID)

	feed, err := env.matchups.ListUserFeed(ctx, memory.DemoOwnerUserID, 1)
	require.NoError(t, err)
	assert.Empty(t, feed, "upcoming matchups stay out of the feed")

	env.start(t, "match-1")
	feed, err = env.matchups.ListUserFeed(ctx, memory.DemoRivalUserID, 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, PhaseInProgress, feed[0].Phase)

	feed, err = env.matchups.ListUserFeed(ctx, memory.DemoRivalUserID, 2)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestMatchupService_Errors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.matchups.ComputeMatchupScore(ctx, "matchup-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := env.matchups.ComputeMatchupScore(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := env.matchups.ComputeLeagueWeek(ctx, memory.DemoLeagueID, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := env.matchups.ListUserFeed(ctx, "", 1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestPhaseOf(t *testing.T) {
	t.Parallel()

	ns := match.Match{ID: "a", Status: match.StatusNotStarted}
	live := match.Match{ID: "b", Status: match.StatusLive}
	done := match.Match{ID: "c", Status: match.StatusFinished}

	tests := []struct {
		name    string
		matches []match.Match
		want    MatchupPhase
	}{
		{name: "none", want: PhaseUpcoming},
		{name: "not started", matches: []match.Match{ns}, want: PhaseUpcoming},
		{name: "one live", matches: []match.Match{ns, live}, want: PhaseInProgress},
		{name: "partly finished", matches: []match.Match{ns, done}, want: PhaseInProgress},
		{name: "all finished", matches: []match.Match{done, done}, want: PhaseCompleted},
	}
	for _, tc := range tests {
		if got := phaseOf(tc.matches); got != tc.want {
			t.Fatalf("%s: unexpected phase: got=%s want=%s", tc.name, got, tc.want)
		}
	}
}

func TestMatchupScore_WinnerUsesLeagueOverride(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.rules.UpsertLeagueRule(ctx, UpsertRuleInput{
		LeagueID:   memory.DemoLeagueID,
		UserID:     memory.DemoOwnerUserID,
		Stat:       scoring.StatEconomy,
		Category:   "bowling",
		Mode:       "band",
		Band:       "[0,)",
		FlatPoints: decimal.NewNullDecimal(decimal.NewFromInt(1)),
	})
	require.NoError(t, err)

	env.start(t, "match-1")
	env.ball(t, boundaryFour())

	got, err := env.matchups.ComputeMatchupScore(ctx, "matchup-1")
	require.NoError(t, err)
	vice := findPlayer(t, got.Side1, "p-highland-3")
	assert.True(t, vice.Score.Total.Equal(decimal.NewFromFloat(1.5)), "vice total %s", vice.Score.Total)
}

func findPlayer(t *testing.T, side SideScore, playerID string) PlayerPoints {
	t.Helper()
	for _, row := range side.Players {
		if row.PlayerID == playerID {
			return row
		}
	}
	t.Fatalf("player %s not on side %s", playerID, side.InstanceID)
	return PlayerPoints{}
}
