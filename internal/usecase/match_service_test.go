package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/memory"
)

func TestMatchService_StartMatchTwiceIsInvalidState(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	snap := env.start(t, "match-1")
	if snap.Match.Status != match.StatusLive {
		t.Fatalf("unexpected status: got=%s want=%s", snap.Match.Status, match.StatusLive)
	}
	if len(snap.HomePlayers) != 6 || len(snap.AwayPlayers) != 6 {
		t.Fatalf("unexpected squads: home=%d away=%d want=6/6", len(snap.HomePlayers), len(snap.AwayPlayers))
	}

	_, err := env.matches.StartMatch(ctx, "match-1", memory.DemoTournamentID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	rows, err := env.store.Performances().ListByMatch(ctx, "match-1")
	if err != nil {
		t.Fatalf("list performances: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("unexpected performance rows after second start: got=%d want=12", len(rows))
	}
}

func TestMatchService_StartMatchGuards(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		matchID      string
		tournamentID string
		want         error
	}{
		{name: "unknown match", matchID: "match-404", tournamentID: memory.DemoTournamentID, want: ErrNotFound},
		{name: "other tournament", matchID: "match-1", tournamentID: "tour-other", want: ErrForbidden},
		{name: "no tournament identity", matchID: "match-1", want: ErrUnauthorized},
		{name: "missing id", tournamentID: memory.DemoTournamentID, want: ErrInvalidInput},
	}
	for _, tc := range tests {
		_, err := env.matches.StartMatch(ctx, tc.matchID, tc.tournamentID)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: unexpected error: got=%v want=%v", tc.name, err, tc.want)
		}
	}

	item, _, _ := env.store.Matches().GetByID(ctx, "match-1")
	if item.Status != match.StatusNotStarted {
		t.Fatalf("rejected starts must not change status, got %s", item.Status)
	}
}

func TestMatchService_FinishMatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.matches.FinishMatch(ctx, "match-1", memory.DemoTournamentID, "FINISHED"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState finishing a match that never started, got %v", err)
	}
	if _, err := env.matches.FinishMatch(ctx, "match-1", memory.DemoTournamentID, "LIVE"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a non terminal status, got %v", err)
	}

	env.start(t, "match-1")
	snap, err := env.matches.FinishMatch(ctx, "match-1", memory.DemoTournamentID, "ABANDONED")
	if err != nil {
		t.Fatalf("finish match: %v", err)
	}
	if snap.Match.Status != match.StatusAbandoned {
		t.Fatalf("unexpected status: got=%s want=%s", snap.Match.Status, match.StatusAbandoned)
	}

	if _, err := env.matches.StartMatch(ctx, "match-1", memory.DemoTournamentID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState restarting an abandoned match, got %v", err)
	}
}

func TestMatchService_CreateMatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	snap, err := env.matches.CreateMatch(ctx, CreateMatchInput{
		TournamentID: memory.DemoTournamentID,
		SeasonID:     memory.DemoSeasonID,
		HomeTeamID:   "team-valley",
		AwayTeamID:   "team-harbour",
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if snap.Match.Status != match.StatusNotStarted {
		t.Fatalf("unexpected status: %s", snap.Match.Status)
	}
	if snap.Match.HomeMatchNum != 3 || snap.Match.AwayMatchNum != 3 {
		t.Fatalf("unexpected match nums: home=%d away=%d", snap.Match.HomeMatchNum, snap.Match.AwayMatchNum)
	}

	_, err = env.matches.CreateMatch(ctx, CreateMatchInput{
		TournamentID: "tour-other",
		SeasonID:     memory.DemoSeasonID,
		HomeTeamID:   "team-valley",
		AwayTeamID:   "team-harbour",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = env.matches.CreateMatch(ctx, CreateMatchInput{
		TournamentID: memory.DemoTournamentID,
		SeasonID:     memory.DemoSeasonID,
		HomeTeamID:   "team-valley",
		AwayTeamID:   "team-nowhere",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
