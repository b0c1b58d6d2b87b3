package scoring

import (
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	"github.com/shopspring/decimal"
)

type statView = performance.Stats

// Line is one rule's contribution to a player's base points.
type Line struct {
	RuleID   string          `json:"rule_id,omitempty"`
	Stat     string          `json:"stat"`
	Category Category        `json:"category"`
	Mode     Mode            `json:"mode"`
	Band     string          `json:"band,omitempty"`
	Points   decimal.Decimal `json:"points"`
}

type PlayerScore struct {
	Standard   decimal.Decimal `json:"standard"`
	Band       decimal.Decimal `json:"band"`
	Base       decimal.Decimal `json:"base"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Total      decimal.Decimal `json:"total"`
	Breakdown  []Line          `json:"breakdown"`
}

var (
	hundred = decimal.NewFromInt(100)
	six     = decimal.NewFromInt(6)
)

// StrikeRate is runs per hundred balls faced; ok is false before the first
// ball faced.
func StrikeRate(s performance.Stats) (decimal.Decimal, bool) {
	if s.BallsFaced <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(s.RunsScored)).Mul(hundred).Div(decimal.NewFromInt(int64(s.BallsFaced))), true
}

// Economy is runs conceded per six legal balls; ok is false before the first
// ball bowled.
func Economy(s performance.Stats) (decimal.Decimal, bool) {
	if s.BallsBowled <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(s.RunsConceded)).Mul(six).Div(decimal.NewFromInt(int64(s.BallsBowled))), true
}

// Score evaluates a stat line against a rule set. Leadership rules only feed
// the captain and vice-captain multipliers; a player flagged as both gets
// both.
func Score(stats performance.Stats, rules RuleSet, isCaptain, isViceCaptain bool) PlayerScore {
	out := PlayerScore{
		Standard:  decimal.Zero,
		Band:      decimal.Zero,
		Breakdown: make([]Line, 0, 8),
	}

	strikeRate, hasStrikeRate := StrikeRate(stats)
	economy, hasEconomy := Economy(stats)

	for _, rule := range rules.Rules {
		if rule.Category == CategoryLeadership {
			continue
		}
		spec, ok := statSpecs[rule.Stat]
		if !ok {
			continue
		}

		switch rule.Mode {
		case ModeBand:
			if rule.Band == nil || !rule.FlatPoints.Valid {
				continue
			}
			var (
				value decimal.Decimal
				has   bool
			)
			switch rule.Stat {
			case StatStrikeRate:
				value, has = strikeRate, hasStrikeRate
			case StatEconomy:
				value, has = economy, hasEconomy
			}
			if !has || !rule.Band.Contains(value) {
				continue
			}
			out.Band = out.Band.Add(rule.FlatPoints.Decimal)
			out.Breakdown = append(out.Breakdown, lineOf(rule, rule.FlatPoints.Decimal))
		default:
			if spec.eval == nil || !ruleHasValue(rule, spec.value) {
				continue
			}
			threshold := spec.threshold
			if rule.Threshold > 0 {
				threshold = rule.Threshold
			}
			points := spec.eval(stats, rule, threshold)
			if points.IsZero() {
				continue
			}
			out.Standard = out.Standard.Add(points)
			out.Breakdown = append(out.Breakdown, lineOf(rule, points))
		}
	}

	out.Base = out.Standard.Add(out.Band)
	out.Multiplier = decimal.NewFromInt(1)
	if isCaptain {
		out.Multiplier = out.Multiplier.Mul(rules.Multiplier(StatCaptain))
	}
	if isViceCaptain {
		out.Multiplier = out.Multiplier.Mul(rules.Multiplier(StatViceCaptain))
	}
	out.Total = out.Base.Mul(out.Multiplier)

	return out
}

func ruleHasValue(rule Rule, kind valueKind) bool {
	switch kind {
	case valuePerUnit:
		return rule.PerUnitPoints.Valid
	case valueFlat:
		return rule.FlatPoints.Valid
	default:
		return false
	}
}

func lineOf(rule Rule, points decimal.Decimal) Line {
	line := Line{
		RuleID:   rule.ID,
		Stat:     rule.Stat,
		Category: rule.Category,
		Mode:     rule.Mode,
		Points:   points,
	}
	if rule.Band != nil {
		line.Band = rule.Band.String()
	}
	return line
}
