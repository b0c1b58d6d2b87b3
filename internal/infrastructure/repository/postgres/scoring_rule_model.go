package postgres

import (
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/shopspring/decimal"
)

const scoringRuleColumns = "id, league_id, stat, category, mode, per_unit_points, flat_points, threshold, band, multiplier, created_at"

// scoringRuleTableModel stores global rules with an empty league_id and
// non-band rules with an empty band so (league_id, stat, band) stays a plain
// unique key.
type scoringRuleTableModel struct {
	ID            string              `db:"id"`
	LeagueID      string              `db:"league_id"`
	Stat          string              `db:"stat"`
	Category      string              `db:"category"`
	Mode          string              `db:"mode"`
	PerUnitPoints decimal.NullDecimal `db:"per_unit_points"`
	FlatPoints    decimal.NullDecimal `db:"flat_points"`
	Threshold     int                 `db:"threshold"`
	Band          string              `db:"band"`
	Multiplier    decimal.NullDecimal `db:"multiplier"`
	CreatedAt     time.Time           `db:"created_at"`
}

func scoringRuleToRow(rule scoring.Rule) scoringRuleTableModel {
	row := scoringRuleTableModel{
		ID:            rule.ID,
		LeagueID:      rule.LeagueID,
		Stat:          rule.Stat,
		Category:      string(rule.Category),
		Mode:          string(rule.Mode),
		PerUnitPoints: rule.PerUnitPoints,
		FlatPoints:    rule.FlatPoints,
		Threshold:     rule.Threshold,
		Multiplier:    rule.Multiplier,
		CreatedAt:     rule.CreatedAt,
	}
	if rule.Band != nil {
		row.Band = rule.Band.String()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func scoringRuleFromRow(row scoringRuleTableModel) (scoring.Rule, error) {
	rule := scoring.Rule{
		ID:            row.ID,
		LeagueID:      row.LeagueID,
		Stat:          row.Stat,
		Category:      scoring.Category(row.Category),
		Mode:          scoring.Mode(row.Mode),
		PerUnitPoints: row.PerUnitPoints,
		FlatPoints:    row.FlatPoints,
		Threshold:     row.Threshold,
		Multiplier:    row.Multiplier,
		CreatedAt:     row.CreatedAt,
	}
	if row.Band != "" {
		band, err := scoring.ParseBand(row.Band)
		if err != nil {
			return scoring.Rule{}, crerr.Wrapf(err, "scoring rule %s", row.ID)
		}
		rule.Band = &band
	}
	return rule, nil
}
