package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	qb "github.com/riskibarqy/cricket-fantasy/internal/platform/querybuilder"
)

type ScoringRuleRepository struct {
	db *sqlx.DB
}

func NewScoringRuleRepository(db *sqlx.DB) *ScoringRuleRepository {
	return &ScoringRuleRepository{db: db}
}

func (r *ScoringRuleRepository) ListGlobal(ctx context.Context) ([]scoring.Rule, error) {
	return r.list(ctx, "")
}

func (r *ScoringRuleRepository) ListByLeague(ctx context.Context, leagueID string) ([]scoring.Rule, error) {
	if leagueID == "" {
		return []scoring.Rule{}, nil
	}
	return r.list(ctx, leagueID)
}

// Upsert keeps the id and created_at of an existing rule with the same
// (league, stat, band).
func (r *ScoringRuleRepository) Upsert(ctx context.Context, rule scoring.Rule) (scoring.Rule, error) {
	query, args, err := qb.InsertModel("scoring_rule", scoringRuleToRow(rule), `ON CONFLICT (league_id, stat, band)
DO UPDATE SET
    category = EXCLUDED.category,
    mode = EXCLUDED.mode,
    per_unit_points = EXCLUDED.per_unit_points,
    flat_points = EXCLUDED.flat_points,
    threshold = EXCLUDED.threshold,
    multiplier = EXCLUDED.multiplier,
    updated_at = now()
RETURNING `+scoringRuleColumns)
	if err != nil {
		return scoring.Rule{}, fmt.Errorf("build upsert scoring rule query: %w", err)
	}

	var row scoringRuleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return scoring.Rule{}, storeErr(err, "upsert scoring rule")
	}
	return scoringRuleFromRow(row)
}

func (r *ScoringRuleRepository) list(ctx context.Context, leagueID string) ([]scoring.Rule, error) {
	query, args, err := qb.Select(scoringRuleColumns).
		From("scoring_rule").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scoring rules query: %w", err)
	}

	var rows []scoringRuleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr(err, "list scoring rules")
	}
	out := make([]scoring.Rule, 0, len(rows))
	for _, row := range rows {
		rule, err := scoringRuleFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	scoring.SortRules(out)
	return out, nil
}
