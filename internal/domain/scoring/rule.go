package scoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownStat  = errors.New("unknown scoring stat")
	ErrInvalidRule  = errors.New("invalid scoring rule")
	ErrRuleMismatch = errors.New("rule does not fit its stat")
)

type Category string

const (
	CategoryBatting    Category = "batting"
	CategoryBowling    Category = "bowling"
	CategoryFielding   Category = "fielding"
	CategoryLeadership Category = "leadership"
)

type Mode string

const (
	ModeStandard Mode = "standard"
	ModeBand     Mode = "band"
)

// Stat names are stored verbatim in scoring_rule.stat.
const (
	StatRuns         = "Points per run"
	StatFours        = "Bonus per 4"
	StatSixes        = "Bonus per 6"
	StatHalfCentury  = "Bonus per half-century"
	StatCentury      = "Bonus per century"
	StatDuck         = "Duck-out Penalty"
	StatStrikeRate   = "Strike Rate"
	StatWickets      = "Points per Wicket"
	StatThreeWickets = "3-Wicket Bonus"
	StatFiveWickets  = "5-Wicket Bonus"
	StatEconomy      = "Economy"
	StatCatches      = "Points per catch"
	StatThreeCatches = "3-Catches bonus"
	StatRunOuts      = "Run Out"
	StatDropped      = "Dropped Catch"
	StatStumpings    = "Points per stumping"
	StatCaptain      = "Captaincy Multiplier"
	StatViceCaptain  = "Vice Captaincy Multiplier"
)

// Rule is one scoring rule. An empty LeagueID marks a global default.
// Band rules of the same stat differ only by Band.
type Rule struct {
	ID            string
	LeagueID      string
	Stat          string
	Category      Category
	Mode          Mode
	PerUnitPoints decimal.NullDecimal
	FlatPoints    decimal.NullDecimal
	Threshold     int
	Band          *Band
	Multiplier    decimal.NullDecimal
	CreatedAt     time.Time
}

func (r Rule) IsGlobal() bool {
	return r.LeagueID == ""
}

// Key identifies a rule within one league: the stat, plus the band for band
// rules.
func (r Rule) Key() string {
	if r.Mode == ModeBand && r.Band != nil {
		return r.Stat + " " + r.Band.String()
	}
	return r.Stat
}

func (r Rule) Validate() error {
	spec, ok := statSpecs[r.Stat]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStat, r.Stat)
	}
	if r.Category != spec.category {
		return fmt.Errorf("%w: stat %q belongs to category %s, got %q", ErrRuleMismatch, r.Stat, spec.category, r.Category)
	}
	if r.Mode != spec.mode {
		return fmt.Errorf("%w: stat %q uses mode %s, got %q", ErrRuleMismatch, r.Stat, spec.mode, r.Mode)
	}
	if r.Threshold < 0 {
		return fmt.Errorf("%w: threshold must not be negative", ErrInvalidRule)
	}

	switch spec.value {
	case valuePerUnit:
		if !r.PerUnitPoints.Valid {
			return fmt.Errorf("%w: %q requires per_unit_points", ErrInvalidRule, r.Stat)
		}
	case valueFlat:
		if !r.FlatPoints.Valid {
			return fmt.Errorf("%w: %q requires flat_points", ErrInvalidRule, r.Stat)
		}
	case valueMultiplier:
		if !r.Multiplier.Valid {
			return fmt.Errorf("%w: %q requires multiplier", ErrInvalidRule, r.Stat)
		}
		if !r.Multiplier.Decimal.IsPositive() {
			return fmt.Errorf("%w: multiplier must be positive", ErrInvalidRule)
		}
	case valueBand:
		if r.Band == nil {
			return fmt.Errorf("%w: %q requires band", ErrInvalidRule, r.Stat)
		}
		if !r.FlatPoints.Valid {
			return fmt.Errorf("%w: %q requires flat_points", ErrInvalidRule, r.Stat)
		}
	}

	if r.Mode != ModeBand && r.Band != nil {
		return fmt.Errorf("%w: band is only allowed in band mode", ErrInvalidRule)
	}

	return nil
}

type valueKind int

const (
	valuePerUnit valueKind = iota
	valueFlat
	valueMultiplier
	valueBand
)

// statSpec describes how one stat is evaluated. threshold is the default N
// for bonus stats and the run mark for milestones; a rule's own positive
// Threshold replaces it.
type statSpec struct {
	category  Category
	mode      Mode
	value     valueKind
	threshold int
	eval      func(stats statView, rule Rule, threshold int) decimal.Decimal
}

var statSpecs = map[string]statSpec{
	StatRuns:         perUnit(CategoryBatting, func(s statView) int { return s.RunsScored }),
	StatFours:        perUnit(CategoryBatting, func(s statView) int { return s.Fours }),
	StatSixes:        perUnit(CategoryBatting, func(s statView) int { return s.Sixes }),
	StatHalfCentury:  milestone(50),
	StatCentury:      milestone(100),
	StatDuck:         {category: CategoryBatting, mode: ModeStandard, value: valueFlat, eval: evalDuck},
	StatStrikeRate:   {category: CategoryBatting, mode: ModeBand, value: valueBand},
	StatWickets:      perUnit(CategoryBowling, func(s statView) int { return s.WicketsTaken }),
	StatThreeWickets: everyN(CategoryBowling, 3, func(s statView) int { return s.WicketsTaken }),
	StatFiveWickets:  everyN(CategoryBowling, 5, func(s statView) int { return s.WicketsTaken }),
	StatEconomy:      {category: CategoryBowling, mode: ModeBand, value: valueBand},
	StatCatches:      perUnit(CategoryFielding, func(s statView) int { return s.Catches }),
	StatThreeCatches: everyN(CategoryFielding, 3, func(s statView) int { return s.Catches }),
	StatRunOuts:      perUnit(CategoryFielding, func(s statView) int { return s.RunOuts }),
	StatDropped:      perUnit(CategoryFielding, func(s statView) int { return s.CatchesDropped }),
	StatStumpings:    perUnit(CategoryFielding, func(s statView) int { return s.Dismissals }),
	StatCaptain:      {category: CategoryLeadership, mode: ModeStandard, value: valueMultiplier},
	StatViceCaptain:  {category: CategoryLeadership, mode: ModeStandard, value: valueMultiplier},
}

// KnownStats lists every stat the calculator understands.
func KnownStats() []string {
	out := make([]string, 0, len(statSpecs))
	for stat := range statSpecs {
		out = append(out, stat)
	}
	return out
}

func perUnit(category Category, counter func(statView) int) statSpec {
	return statSpec{
		category: category,
		mode:     ModeStandard,
		value:    valuePerUnit,
		eval: func(s statView, r Rule, _ int) decimal.Decimal {
			return decimal.NewFromInt(int64(counter(s))).Mul(r.PerUnitPoints.Decimal)
		},
	}
}

func everyN(category Category, n int, counter func(statView) int) statSpec {
	return statSpec{
		category:  category,
		mode:      ModeStandard,
		value:     valuePerUnit,
		threshold: n,
		eval: func(s statView, r Rule, n int) decimal.Decimal {
			return decimal.NewFromInt(int64(counter(s) / n)).Mul(r.PerUnitPoints.Decimal)
		},
	}
}

func milestone(runs int) statSpec {
	return statSpec{
		category:  CategoryBatting,
		mode:      ModeStandard,
		value:     valueFlat,
		threshold: runs,
		eval: func(s statView, r Rule, mark int) decimal.Decimal {
			if s.RunsScored >= mark {
				return r.FlatPoints.Decimal
			}
			return decimal.Zero
		},
	}
}

func evalDuck(s statView, r Rule, _ int) decimal.Decimal {
	if s.RunsScored == 0 && s.BallsFaced > 0 {
		return r.FlatPoints.Decimal
	}
	return decimal.Zero
}
