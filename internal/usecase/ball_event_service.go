package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/id"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type AddEventInput struct {
	MatchID       string
	TournamentID  string
	BattingTeamID string
	StrikerID     string
	NonStrikerID  string
	BowlerID      string
	RunsScored    int
	BallsPlayed   int
	WicketTaken   bool
	WicketType    string
	FielderID     string
	DroppedByID   string
	Four          bool
	Six           bool
	ExtraType     string
}

func (in AddEventInput) event() match.BallEvent {
	e := match.BallEvent{
		MatchID:       strings.TrimSpace(in.MatchID),
		BattingTeamID: strings.TrimSpace(in.BattingTeamID),
		StrikerID:     strings.TrimSpace(in.StrikerID),
		NonStrikerID:  strings.TrimSpace(in.NonStrikerID),
		BowlerID:      strings.TrimSpace(in.BowlerID),
		RunsScored:    in.RunsScored,
		BallsPlayed:   in.BallsPlayed,
		WicketTaken:   in.WicketTaken,
		FielderID:     strings.TrimSpace(in.FielderID),
		DroppedByID:   strings.TrimSpace(in.DroppedByID),
		Four:          in.Four,
		Six:           in.Six,
		WicketType:    match.WicketType(strings.ToUpper(strings.TrimSpace(in.WicketType))),
		ExtraType:     match.ExtraType(strings.ToUpper(strings.TrimSpace(in.ExtraType))),
	}
	return e
}

// BallEventService applies deliveries to live matches one at a time.
type BallEventService struct {
	matchRepo match.Repository
	perfRepo  performance.Repository
	idGen     id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewBallEventService(
	matchRepo match.Repository,
	perfRepo performance.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *BallEventService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BallEventService{
		matchRepo: matchRepo,
		perfRepo:  perfRepo,
		idGen:     idGen,
		logger:    logger.Named("usecase.ball_event"),
		now:       time.Now,
	}
}

func (s *BallEventService) AddEvent(ctx context.Context, input AddEventInput) (match.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BallEventService.AddEvent",
		attribute.String("match.id", input.MatchID),
		attribute.Int("ball.runs", input.RunsScored),
		attribute.Bool("ball.wicket", input.WicketTaken),
	)
	defer span.End()

	item, err := getMatch(ctx, s.matchRepo, input.MatchID)
	if err != nil {
		return match.Snapshot{}, err
	}

	check := liveCheck(input.TournamentID)
	if err := check(item); err != nil {
		s.logger.WarnContext(ctx, "ball event rejected", "match_id", item.ID, "status", item.Status, "error", err)
		return match.Snapshot{}, err
	}

	event := input.event()
	event.MatchID = item.ID
	effect, err := match.BuildEffect(item, event)
	if err != nil {
		return match.Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	event.ID, err = s.idGen.NewID()
	if err != nil {
		return match.Snapshot{}, fmt.Errorf("generate ball event id: %w", err)
	}
	event.CreatedAt = s.now().UTC()

	stored, err := s.matchRepo.ApplyEvent(ctx, event, effect, check)
	if err != nil {
		if isOneOf(err, match.ErrPlayerNotInMatch, match.ErrInvalidEvent) {
			return match.Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return match.Snapshot{}, storeError("apply ball event", err)
	}

	s.logger.InfoContext(ctx, "ball event applied",
		"match_id", item.ID,
		"ball_num", stored.BallNum,
		"batting_team_id", stored.BattingTeamID,
		"runs", stored.RunsScored,
		"wicket", stored.WicketTaken,
	)

	refreshed, err := getMatch(ctx, s.matchRepo, item.ID)
	if err != nil {
		return match.Snapshot{}, err
	}
	return loadSnapshot(ctx, s.matchRepo, s.perfRepo, refreshed)
}

func liveCheck(tournamentID string) func(match.Match) error {
	return func(item match.Match) error {
		if err := checkTournament(item, tournamentID); err != nil {
			return err
		}
		if item.Status != match.StatusLive {
			return fmt.Errorf("%w: match=%s is %s, not LIVE", ErrInvalidState, item.ID, item.Status)
		}
		return nil
	}
}
