package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/id"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
)

type testEnv struct {
	store    *memory.Store
	matches  *MatchService
	events   *BallEventService
	rules    *ScoringRuleService
	resolver *RosterResolver
	matchups *MatchupService
	rosters  *RosterService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	store := memory.NewDemoStore()
	idGen := id.NewUUIDGenerator()
	logger := logging.NewNop()

	rules := NewScoringRuleService(store.Leagues(), store.ScoringRules(), idGen, logger)
	resolver := NewRosterResolver(store.Leagues(), store.Seasons(), store.Matches(), store.Performances())
	matchups, err := NewMatchupService(
		store.Leagues(),
		store.Teams(),
		store.Instances(),
		store.Matchups(),
		rules,
		resolver,
		4,
		logger,
	)
	if err != nil {
		t.Fatalf("new matchup service: %v", err)
	}
	t.Cleanup(matchups.Close)

	return testEnv{
		store:    store,
		matches:  NewMatchService(store.Matches(), store.Performances(), store.Seasons(), idGen, logger),
		events:   NewBallEventService(store.Matches(), store.Performances(), idGen, logger),
		rules:    rules,
		resolver: resolver,
		matchups: matchups,
		rosters:  NewRosterService(store.Leagues(), store.Teams(), store.Instances(), resolver, logger),
	}
}

func (e testEnv) start(t *testing.T, matchID string) match.Snapshot {
	t.Helper()
	snap, err := e.matches.StartMatch(context.Background(), matchID, memory.DemoTournamentID)
	if err != nil {
		t.Fatalf("start match %s: %v", matchID, err)
	}
	return snap
}

func (e testEnv) ball(t *testing.T, in AddEventInput) match.Snapshot {
	t.Helper()
	if in.TournamentID == "" {
		in.TournamentID = memory.DemoTournamentID
	}
	snap, err := e.events.AddEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	return snap
}

func statsOf(t *testing.T, snap match.Snapshot, playerID string) performance.Stats {
	t.Helper()
	for _, rows := range [][]performance.Performance{snap.HomePlayers, snap.AwayPlayers} {
		for _, row := range rows {
			if row.PlayerID == playerID {
				return row.Stats
			}
		}
	}
	t.Fatalf("player %s not in snapshot", playerID)
	return performance.Stats{}
}
