package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/season"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/id"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type CreateMatchInput struct {
	TournamentID string
	SeasonID     string
	HomeTeamID   string
	AwayTeamID   string
}

// MatchService owns the match lifecycle: creation, going live with
// provisioned performance rows, and finishing.
type MatchService struct {
	matchRepo  match.Repository
	perfRepo   performance.Repository
	seasonRepo season.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	perfRepo performance.Repository,
	seasonRepo season.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo:  matchRepo,
		perfRepo:   perfRepo,
		seasonRepo: seasonRepo,
		idGen:      idGen,
		logger:     logger.Named("usecase.match"),
		now:        time.Now,
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.SeasonID = strings.TrimSpace(input.SeasonID)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)

	if input.SeasonID == "" || input.HomeTeamID == "" || input.AwayTeamID == "" {
		return match.Snapshot{}, fmt.Errorf("%w: season_id, home_team_id and away_team_id are required", ErrInvalidInput)
	}
	if input.TournamentID == "" {
		return match.Snapshot{}, fmt.Errorf("%w: tournament identity is required", ErrUnauthorized)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return match.Snapshot{}, fmt.Errorf("%w: home and away team must differ", ErrInvalidInput)
	}

	ssn, exists, err := s.seasonRepo.GetByID(ctx, input.SeasonID)
	if err != nil {
		return match.Snapshot{}, storeError("get season", err)
	}
	if !exists {
		return match.Snapshot{}, fmt.Errorf("%w: season=%s", ErrNotFound, input.SeasonID)
	}
	if ssn.TournamentID != input.TournamentID {
		return match.Snapshot{}, fmt.Errorf("%w: season=%s belongs to another tournament", ErrForbidden, ssn.ID)
	}
	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		if !ssn.HasTeam(teamID) {
			return match.Snapshot{}, fmt.Errorf("%w: team=%s is not part of season=%s", ErrInvalidInput, teamID, ssn.ID)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Snapshot{}, fmt.Errorf("generate match id: %w", err)
	}
	now := s.now().UTC()

	created, err := s.matchRepo.Create(ctx, match.Match{
		ID:           matchID,
		TournamentID: input.TournamentID,
		SeasonID:     ssn.ID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		Status:       match.StatusNotStarted,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return match.Snapshot{}, storeError("create match", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", created.ID,
		"season_id", created.SeasonID,
		"home_match_num", created.HomeMatchNum,
		"away_match_num", created.AwayMatchNum,
	)
	return match.NewSnapshot(created, nil, nil), nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Snapshot{}, err
	}
	return loadSnapshot(ctx, s.matchRepo, s.perfRepo, item)
}

// StartMatch moves a NOT_STARTED match to LIVE and provisions zeroed
// performance rows for both squads.
func (s *MatchService) StartMatch(ctx context.Context, matchID, tournamentID string) (match.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.StartMatch", attribute.String("match.id", matchID))
	defer span.End()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Snapshot{}, err
	}

	check := transitionCheck(tournamentID, match.StatusLive)
	if err := check(item); err != nil {
		s.logger.WarnContext(ctx, "start match rejected", "match_id", item.ID, "status", item.Status, "error", err)
		return match.Snapshot{}, err
	}

	started, err := s.matchRepo.Start(ctx, item.ID, check)
	if err != nil {
		return match.Snapshot{}, storeError("start match", err)
	}

	s.logger.InfoContext(ctx, "match started", "match_id", started.ID)
	return loadSnapshot(ctx, s.matchRepo, s.perfRepo, started)
}

func (s *MatchService) FinishMatch(ctx context.Context, matchID, tournamentID, rawStatus string) (match.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FinishMatch")
	defer span.End()

	status := match.StatusFinished
	if strings.TrimSpace(rawStatus) != "" {
		parsed, err := match.ParseStatus(strings.TrimSpace(strings.ToUpper(rawStatus)))
		if err != nil {
			return match.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = parsed
	}
	if !status.Terminal() {
		return match.Snapshot{}, fmt.Errorf("%w: status must be FINISHED or ABAN", ErrInvalidInput)
	}

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Snapshot{}, err
	}

	check := transitionCheck(tournamentID, status)
	if err := check(item); err != nil {
		s.logger.WarnContext(ctx, "finish match rejected", "match_id", item.ID, "status", item.Status, "error", err)
		return match.Snapshot{}, err
	}

	finished, err := s.matchRepo.Finish(ctx, item.ID, status, check)
	if err != nil {
		return match.Snapshot{}, storeError("finish match", err)
	}

	s.logger.InfoContext(ctx, "match finished", "match_id", finished.ID, "status", finished.Status)
	return loadSnapshot(ctx, s.matchRepo, s.perfRepo, finished)
}

func (s *MatchService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	return getMatch(ctx, s.matchRepo, matchID)
}

func getMatch(ctx context.Context, repo match.Repository, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, storeError("get match", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func checkTournament(item match.Match, tournamentID string) error {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return fmt.Errorf("%w: tournament identity is required", ErrUnauthorized)
	}
	if item.TournamentID != tournamentID {
		return fmt.Errorf("%w: match=%s belongs to another tournament", ErrForbidden, item.ID)
	}
	return nil
}

// transitionCheck is evaluated once before the write and again against the
// locked row, so a concurrent transition loses with ErrInvalidState.
func transitionCheck(tournamentID string, next match.Status) func(match.Match) error {
	return func(item match.Match) error {
		if err := checkTournament(item, tournamentID); err != nil {
			return err
		}
		if err := item.Status.Transition(next); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
		return nil
	}
}

func loadSnapshot(ctx context.Context, matchRepo match.Repository, perfRepo performance.Repository, item match.Match) (match.Snapshot, error) {
	rows, err := perfRepo.ListByMatch(ctx, item.ID)
	if err != nil {
		return match.Snapshot{}, storeError("list match performances", err)
	}
	timeline, err := matchRepo.ListEvents(ctx, item.ID)
	if err != nil {
		return match.Snapshot{}, storeError("list match events", err)
	}
	return match.NewSnapshot(item, rows, timeline), nil
}

func isOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
