package scoring

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NoLeagueRulesReturnsGlobalSet(t *testing.T) {
	t.Parallel()

	global := DefaultRules()
	set := Resolve("l1", global, nil)

	require.Len(t, set.Rules, len(global))
	for i := range global {
		assert.Equal(t, global[i].Key(), set.Rules[i].Key())
	}
}

func TestResolve_LeagueOverridesPerStat(t *testing.T) {
	t.Parallel()

	league := []Rule{
		{ID: "r1", LeagueID: "l1", Stat: StatRuns, Category: CategoryBatting, Mode: ModeStandard, PerUnitPoints: decimal.NewNullDecimal(decimal.NewFromInt(2))},
		{ID: "r2", LeagueID: "l1", Stat: StatStrikeRate, Category: CategoryBatting, Mode: ModeBand, Band: ptr(MustParseBand("[150,)")), FlatPoints: decimal.NewNullDecimal(decimal.NewFromInt(10))},
	}
	set := Resolve("l1", DefaultRules(), league)

	seen := make(map[string]struct{}, len(set.Rules))
	strikeRateRules := 0
	for _, rule := range set.Rules {
		_, dup := seen[rule.Key()]
		require.False(t, dup, "duplicate rule %s", rule.Key())
		seen[rule.Key()] = struct{}{}

		if rule.Stat == StatStrikeRate {
			strikeRateRules++
			assert.Equal(t, "r2", rule.ID)
		}
	}
	assert.Equal(t, 1, strikeRateRules)

	runs, ok := set.Find(StatRuns)
	require.True(t, ok)
	assert.Equal(t, "r1", runs.ID)

	stats := set.Stats()
	for i := 1; i < len(stats); i++ {
		require.NotEqual(t, stats[i-1], stats[i])
	}
}

func TestResolve_OrderedByCategoryThenStat(t *testing.T) {
	t.Parallel()

	set := Resolve("", DefaultRules(), nil)
	for i := 1; i < len(set.Rules); i++ {
		prev, cur := set.Rules[i-1], set.Rules[i]
		if prev.Category > cur.Category || (prev.Category == cur.Category && prev.Stat > cur.Stat) {
			t.Fatalf("rules out of order at %d: %s/%s before %s/%s", i, prev.Category, prev.Stat, cur.Category, cur.Stat)
		}
	}
}

func TestRuleSet_Multiplier(t *testing.T) {
	t.Parallel()

	set := Resolve("", DefaultRules(), nil)
	assert.True(t, set.Multiplier(StatCaptain).Equal(decimal.NewFromInt(2)))
	assert.True(t, set.Multiplier(StatViceCaptain).Equal(decimal.RequireFromString("1.5")))
	assert.True(t, RuleSet{}.Multiplier(StatCaptain).Equal(decimal.NewFromInt(1)))
}

func TestRule_Validate(t *testing.T) {
	t.Parallel()

	for _, rule := range DefaultRules() {
		require.NoError(t, rule.Validate(), "default rule %s", rule.Key())
	}

	tests := []struct {
		name string
		rule Rule
		want error
	}{
		{name: "unknown stat", rule: Rule{Stat: "Points per selfie", Category: CategoryBatting, Mode: ModeStandard}, want: ErrUnknownStat},
		{name: "wrong category", rule: Rule{Stat: StatRuns, Category: CategoryBowling, Mode: ModeStandard, PerUnitPoints: decimal.NewNullDecimal(decimal.NewFromInt(1))}, want: ErrRuleMismatch},
		{name: "band without band", rule: Rule{Stat: StatEconomy, Category: CategoryBowling, Mode: ModeBand, FlatPoints: decimal.NewNullDecimal(decimal.NewFromInt(1))}, want: ErrInvalidRule},
		{name: "per unit missing", rule: Rule{Stat: StatWickets, Category: CategoryBowling, Mode: ModeStandard, FlatPoints: decimal.NewNullDecimal(decimal.NewFromInt(1))}, want: ErrInvalidRule},
		{name: "zero multiplier", rule: Rule{Stat: StatCaptain, Category: CategoryLeadership, Mode: ModeStandard, Multiplier: decimal.NewNullDecimal(decimal.Zero)}, want: ErrInvalidRule},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.rule.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.want)
			}
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
