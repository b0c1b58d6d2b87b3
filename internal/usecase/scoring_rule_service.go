package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/id"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type UpsertRuleInput struct {
	LeagueID      string
	UserID        string
	Stat          string
	Category      string
	Mode          string
	PerUnitPoints decimal.NullDecimal
	FlatPoints    decimal.NullDecimal
	Threshold     int
	Band          string
	Multiplier    decimal.NullDecimal
}

type ScoringRuleService struct {
	leagueRepo league.Repository
	ruleRepo   scoring.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewScoringRuleService(
	leagueRepo league.Repository,
	ruleRepo scoring.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *ScoringRuleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringRuleService{
		leagueRepo: leagueRepo,
		ruleRepo:   ruleRepo,
		idGen:      idGen,
		logger:     logger.Named("usecase.scoring_rule"),
		now:        time.Now,
	}
}

// ResolveRules returns the league's effective rule set: its own rules plus
// the global defaults for every stat it does not override.
func (s *ScoringRuleService) ResolveRules(ctx context.Context, leagueID string) (scoring.RuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringRuleService.ResolveRules")
	defer span.End()

	lg, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return scoring.RuleSet{}, err
	}
	return s.resolve(ctx, lg.ID)
}

func (s *ScoringRuleService) resolve(ctx context.Context, leagueID string) (scoring.RuleSet, error) {
	global, err := s.ruleRepo.ListGlobal(ctx)
	if err != nil {
		return scoring.RuleSet{}, storeError("list global scoring rules", err)
	}
	own, err := s.ruleRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return scoring.RuleSet{}, storeError("list league scoring rules", err)
	}
	return scoring.Resolve(leagueID, global, own), nil
}

func (s *ScoringRuleService) ListDefaultRules(ctx context.Context) ([]scoring.Rule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringRuleService.ListDefaultRules")
	defer span.End()

	rules, err := s.ruleRepo.ListGlobal(ctx)
	if err != nil {
		return nil, storeError("list global scoring rules", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no default scoring rules", ErrNotFound)
	}
	scoring.SortRules(rules)
	return rules, nil
}

// UpsertLeagueRule lets the league owner add or replace one rule. Band rules
// are keyed by stat and band, every other rule by stat alone.
func (s *ScoringRuleService) UpsertLeagueRule(ctx context.Context, input UpsertRuleInput) (scoring.Rule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringRuleService.UpsertLeagueRule", attribute.String("league.id", input.LeagueID))
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return scoring.Rule{}, fmt.Errorf("%w: user identity is required", ErrUnauthorized)
	}

	lg, err := getLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return scoring.Rule{}, err
	}
	if lg.OwnerUserID != userID {
		s.logger.WarnContext(ctx, "scoring rule upsert rejected", "league_id", lg.ID, "user_id", userID)
		return scoring.Rule{}, fmt.Errorf("%w: only the league owner may change scoring rules", ErrForbidden)
	}

	rule := scoring.Rule{
		LeagueID:      lg.ID,
		Stat:          strings.TrimSpace(input.Stat),
		Category:      scoring.Category(strings.ToLower(strings.TrimSpace(input.Category))),
		Mode:          scoring.Mode(strings.ToLower(strings.TrimSpace(input.Mode))),
		PerUnitPoints: input.PerUnitPoints,
		FlatPoints:    input.FlatPoints,
		Threshold:     input.Threshold,
		Multiplier:    input.Multiplier,
		CreatedAt:     s.now().UTC(),
	}
	if raw := strings.TrimSpace(input.Band); raw != "" {
		band, err := scoring.ParseBand(raw)
		if err != nil {
			return scoring.Rule{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		rule.Band = &band
	}
	if err := rule.Validate(); err != nil {
		return scoring.Rule{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	rule.ID, err = s.idGen.NewID()
	if err != nil {
		return scoring.Rule{}, fmt.Errorf("generate scoring rule id: %w", err)
	}

	stored, err := s.ruleRepo.Upsert(ctx, rule)
	if err != nil {
		return scoring.Rule{}, storeError("upsert scoring rule", err)
	}

	s.logger.InfoContext(ctx, "scoring rule upserted", "league_id", lg.ID, "rule_id", stored.ID, "stat", stored.Stat)
	return stored, nil
}

func getLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	lg, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, storeError("get league", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return lg, nil
}
