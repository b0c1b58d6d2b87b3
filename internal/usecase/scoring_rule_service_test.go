package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
)

func TestScoringRuleService_ResolveRulesDefaultsToGlobalSet(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	set, err := env.rules.ResolveRules(context.Background(), memory.DemoLeagueID)
	if err != nil {
		t.Fatalf("resolve rules: %v", err)
	}
	if got, want := len(set.Rules), len(scoring.DefaultRules()); got != want {
		t.Fatalf("unexpected rule count: got=%d want=%d", got, want)
	}
	for _, rule := range set.Rules {
		if !rule.IsGlobal() {
			t.Fatalf("unexpected league rule %s", rule.Key())
		}
	}

	if _, err := env.rules.ResolveRules(context.Background(), "league-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoringRuleService_UpsertLeagueRuleOverrides(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	input := UpsertRuleInput{
		LeagueID:      memory.DemoLeagueID,
		UserID:        memory.DemoOwnerUserID,
		Stat:          scoring.StatRuns,
		Category:      "batting",
		Mode:          "standard",
		PerUnitPoints: decimal.NewNullDecimal(decimal.NewFromInt(2)),
	}
	first, err := env.rules.UpsertLeagueRule(ctx, input)
	if err != nil {
		t.Fatalf("upsert rule: %v", err)
	}
	second, err := env.rules.UpsertLeagueRule(ctx, input)
	if err != nil {
		t.Fatalf("upsert rule again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("upsert must keep the rule id: first=%s second=%s", first.ID, second.ID)
	}

	set, err := env.rules.ResolveRules(ctx, memory.DemoLeagueID)
	if err != nil {
		t.Fatalf("resolve rules: %v", err)
	}
	runs, ok := set.Find(scoring.StatRuns)
	if !ok || runs.LeagueID != memory.DemoLeagueID {
		t.Fatalf("expected league override for %s, got %+v", scoring.StatRuns, runs)
	}
	seen := map[string]bool{}
	for _, rule := range set.Rules {
		if seen[rule.Key()] {
			t.Fatalf("duplicate rule %s", rule.Key())
		}
		seen[rule.Key()] = true
	}
}

func TestScoringRuleService_UpsertLeagueRuleRejections(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	base := UpsertRuleInput{
		LeagueID:   memory.DemoLeagueID,
		UserID:     memory.DemoOwnerUserID,
		Stat:       scoring.StatEconomy,
		Category:   "bowling",
		Mode:       "band",
		Band:       "[0,3)",
		FlatPoints: decimal.NewNullDecimal(decimal.NewFromInt(10)),
	}

	tests := []struct {
		name   string
		mutate func(*UpsertRuleInput)
		want   error
	}{
		{name: "not the owner", mutate: func(in *UpsertRuleInput) { in.UserID = memory.DemoRivalUserID }, want: ErrForbidden},
		{name: "no identity", mutate: func(in *UpsertRuleInput) { in.UserID = "" }, want: ErrUnauthorized},
		{name: "bad band", mutate: func(in *UpsertRuleInput) { in.Band = "[3,0)" }, want: ErrInvalidInput},
		{name: "band without flat points", mutate: func(in *UpsertRuleInput) { in.FlatPoints = decimal.NullDecimal{} }, want: ErrInvalidInput},
		{name: "unknown stat", mutate: func(in *UpsertRuleInput) { in.Stat = "Maidens" }, want: ErrInvalidInput},
		{name: "unknown league", mutate: func(in *UpsertRuleInput) { in.LeagueID = "league-404" }, want: ErrNotFound},
	}
	for _, tc := range tests {
		in := base
		tc.mutate(&in)
		if _, err := env.rules.UpsertLeagueRule(ctx, in); !errors.Is(err, tc.want) {
			t.Fatalf("%s: unexpected error: got=%v want=%v", tc.name, err, tc.want)
		}
	}
}
