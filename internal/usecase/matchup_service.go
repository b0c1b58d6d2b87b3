package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultScoringWorkers = 8

type MatchupPhase string

const (
	PhaseUpcoming   MatchupPhase = "UPCOMING"
	PhaseInProgress MatchupPhase = "IN_PROGRESS"
	PhaseCompleted  MatchupPhase = "COMPLETED"
)

type PlayerPoints struct {
	Slot          roster.Slot
	PlayerID      string
	Counted       bool
	IsCaptain     bool
	IsViceCaptain bool
	Resolution    Resolution
	Score         scoring.PlayerScore
}

type SideScore struct {
	InstanceID    string
	FantasyTeamID string
	Total         decimal.Decimal
	Players       []PlayerPoints
}

type MatchupScore struct {
	MatchupID string
	LeagueID  string
	MatchNum  int
	Phase     MatchupPhase
	Valid     bool
	Side1     SideScore
	Side2     SideScore
}

// Winner returns the instance id with more points, or "" on a tie.
func (m MatchupScore) Winner() string {
	switch m.Side1.Total.Cmp(m.Side2.Total) {
	case 1:
		return m.Side1.InstanceID
	case -1:
		return m.Side2.InstanceID
	default:
		return ""
	}
}

type ruleResolver interface {
	resolve(ctx context.Context, leagueID string) (scoring.RuleSet, error)
}

// MatchupService derives head-to-head scores on read. League-week and feed
// computations share one worker pool; each matchup scores its two sides
// concurrently.
type MatchupService struct {
	leagueRepo   league.Repository
	teamRepo     roster.TeamRepository
	instanceRepo roster.InstanceRepository
	matchupRepo  roster.MatchupRepository
	rules        ruleResolver
	resolver     *RosterResolver
	workers      *ants.Pool
	logger       *logging.Logger
}

func NewMatchupService(
	leagueRepo league.Repository,
	teamRepo roster.TeamRepository,
	instanceRepo roster.InstanceRepository,
	matchupRepo roster.MatchupRepository,
	rules *ScoringRuleService,
	resolver *RosterResolver,
	workerCount int,
	logger *logging.Logger,
) (*MatchupService, error) {
	if workerCount <= 0 {
		workerCount = defaultScoringWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create scoring worker pool: %w", err)
	}
	return &MatchupService{
		leagueRepo:   leagueRepo,
		teamRepo:     teamRepo,
		instanceRepo: instanceRepo,
		matchupRepo:  matchupRepo,
		rules:        rules,
		resolver:     resolver,
		workers:      workers,
		logger:       logger.Named("usecase.matchup"),
	}, nil
}

func (s *MatchupService) Close() {
	s.workers.Release()
}

func (s *MatchupService) ComputeMatchupScore(ctx context.Context, matchupID string) (MatchupScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ComputeMatchupScore", attribute.String("matchup.id", matchupID))
	defer span.End()

	matchupID = strings.TrimSpace(matchupID)
	if matchupID == "" {
		return MatchupScore{}, fmt.Errorf("%w: matchup_id is required", ErrInvalidInput)
	}
	item, exists, err := s.matchupRepo.GetByID(ctx, matchupID)
	if err != nil {
		return MatchupScore{}, storeError("get matchup", err)
	}
	if !exists {
		return MatchupScore{}, fmt.Errorf("%w: matchup=%s", ErrNotFound, matchupID)
	}

	lg, err := getLeague(ctx, s.leagueRepo, item.LeagueID)
	if err != nil {
		return MatchupScore{}, err
	}
	rules, err := s.rules.resolve(ctx, lg.ID)
	if err != nil {
		return MatchupScore{}, err
	}
	return s.score(ctx, lg, rules, item)
}

// ComputeLeagueWeek scores every matchup of one league week, ordered by
// matchup id.
func (s *MatchupService) ComputeLeagueWeek(ctx context.Context, leagueID string, week int) ([]MatchupScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ComputeLeagueWeek")
	defer span.End()

	if week <= 0 {
		return nil, fmt.Errorf("%w: match_num must be positive", ErrInvalidInput)
	}
	lg, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	matchups, err := s.matchupRepo.ListByLeagueWeek(ctx, lg.ID, week)
	if err != nil {
		return nil, storeError("list league week matchups", err)
	}
	if len(matchups) == 0 {
		return []MatchupScore{}, nil
	}
	rules, err := s.rules.resolve(ctx, lg.ID)
	if err != nil {
		return nil, err
	}

	leagues := map[string]league.League{lg.ID: lg}
	ruleSets := map[string]scoring.RuleSet{lg.ID: rules}
	return s.scoreAll(ctx, leagues, ruleSets, matchups)
}

// ListUserFeed returns the user's in-progress matchups for a week across
// all of their fantasy teams.
func (s *MatchupService) ListUserFeed(ctx context.Context, userID string, week int) ([]MatchupScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ListUserFeed")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user identity is required", ErrUnauthorized)
	}
	if week <= 0 {
		return nil, fmt.Errorf("%w: match_num must be positive", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list user fantasy teams", err)
	}
	if len(teams) == 0 {
		return []MatchupScore{}, nil
	}
	teamIDs := make([]string, 0, len(teams))
	for _, team := range teams {
		teamIDs = append(teamIDs, team.ID)
	}

	matchups, err := s.matchupRepo.ListByTeamsWeek(ctx, teamIDs, week)
	if err != nil {
		return nil, storeError("list user matchups", err)
	}

	leagues := make(map[string]league.League)
	ruleSets := make(map[string]scoring.RuleSet)
	for _, item := range matchups {
		if _, ok := leagues[item.LeagueID]; ok {
			continue
		}
		lg, err := getLeague(ctx, s.leagueRepo, item.LeagueID)
		if err != nil {
			return nil, err
		}
		rules, err := s.rules.resolve(ctx, lg.ID)
		if err != nil {
			return nil, err
		}
		leagues[lg.ID] = lg
		ruleSets[lg.ID] = rules
	}

	scores, err := s.scoreAll(ctx, leagues, ruleSets, matchups)
	if err != nil {
		return nil, err
	}
	out := make([]MatchupScore, 0, len(scores))
	for _, item := range scores {
		if item.Phase == PhaseInProgress {
			out = append(out, item)
		}
	}
	return out, nil
}

// ListInstancePerformances scores every slot of one roster for its week.
func (s *MatchupService) ListInstancePerformances(ctx context.Context, instanceID string) (SideScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ListInstancePerformances")
	defer span.End()

	item, team, err := loadInstanceWithTeam(ctx, s.instanceRepo, s.teamRepo, instanceID)
	if err != nil {
		return SideScore{}, err
	}
	lg, err := getLeague(ctx, s.leagueRepo, team.LeagueID)
	if err != nil {
		return SideScore{}, err
	}
	rules, err := s.rules.resolve(ctx, lg.ID)
	if err != nil {
		return SideScore{}, err
	}
	side, _, err := s.scoreSide(ctx, lg, rules, item)
	return side, err
}

func (s *MatchupService) scoreAll(
	ctx context.Context,
	leagues map[string]league.League,
	ruleSets map[string]scoring.RuleSet,
	matchups []roster.Matchup,
) ([]MatchupScore, error) {
	out := make([]MatchupScore, len(matchups))
	errs := make([]error, len(matchups))

	var wg sync.WaitGroup
	for i, item := range matchups {
		wg.Add(1)
		if err := s.workers.Submit(func() {
			defer wg.Done()
			out[i], errs[i] = s.score(ctx, leagues[item.LeagueID], ruleSets[item.LeagueID], item)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("%w: submit matchup to worker pool: %w", ErrDependencyUnavailable, err)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("score matchup=%s: %w", matchups[i].ID, err)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchupID < out[j].MatchupID
	})
	return out, nil
}

func (s *MatchupService) score(ctx context.Context, lg league.League, rules scoring.RuleSet, item roster.Matchup) (MatchupScore, error) {
	instances, err := s.instanceRepo.ListByIDs(ctx, []string{item.Instance1ID, item.Instance2ID})
	if err != nil {
		return MatchupScore{}, storeError("list matchup instances", err)
	}
	byID := make(map[string]roster.Instance, len(instances))
	for _, inst := range instances {
		byID[inst.ID] = inst
	}
	first, ok := byID[item.Instance1ID]
	if !ok {
		return MatchupScore{}, fmt.Errorf("%w: instance=%s of matchup=%s", ErrNotFound, item.Instance1ID, item.ID)
	}
	second, ok := byID[item.Instance2ID]
	if !ok {
		return MatchupScore{}, fmt.Errorf("%w: instance=%s of matchup=%s", ErrNotFound, item.Instance2ID, item.ID)
	}

	var (
		side1, side2       SideScore
		matches1, matches2 []match.Match
	)
	sides := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	sides.Go(func(ctx context.Context) error {
		var err error
		side1, matches1, err = s.scoreSide(ctx, lg, rules, first)
		return err
	})
	sides.Go(func(ctx context.Context) error {
		var err error
		side2, matches2, err = s.scoreSide(ctx, lg, rules, second)
		return err
	})
	if err := sides.Wait(); err != nil {
		return MatchupScore{}, err
	}

	phase := phaseOf(append(matches1, matches2...))
	return MatchupScore{
		MatchupID: item.ID,
		LeagueID:  item.LeagueID,
		MatchNum:  item.MatchNum,
		Phase:     phase,
		Valid:     phase != PhaseUpcoming,
		Side1:     side1,
		Side2:     side2,
	}, nil
}

// scoreSide returns the side score and the distinct real matches its
// counted players resolved to.
func (s *MatchupService) scoreSide(ctx context.Context, lg league.League, rules scoring.RuleSet, item roster.Instance) (SideScore, []match.Match, error) {
	resolutions, err := s.resolver.resolve(ctx, lg.SeasonID, item.MatchNum, item.PlayerIDs())
	if err != nil {
		return SideScore{}, nil, err
	}

	side := SideScore{
		InstanceID:    item.ID,
		FantasyTeamID: item.FantasyTeamID,
		Total:         decimal.Zero,
		Players:       make([]PlayerPoints, 0, len(roster.AllSlots)),
	}
	seen := make(map[string]struct{})
	matches := make([]match.Match, 0, 4)

	for _, assignment := range item.Assignments() {
		res := resolutions[assignment.PlayerID]
		row := PlayerPoints{
			Slot:          assignment.Slot,
			PlayerID:      assignment.PlayerID,
			Counted:       assignment.Slot.Active(),
			IsCaptain:     assignment.PlayerID == item.CaptainID,
			IsViceCaptain: assignment.PlayerID == item.ViceCaptainID,
			Resolution:    res,
		}
		row.Score = scoring.Score(res.Performance.Stats, rules, row.IsCaptain, row.IsViceCaptain)
		if row.Counted {
			side.Total = side.Total.Add(row.Score.Total)
			if res.Resolved {
				if _, ok := seen[res.Match.ID]; !ok {
					seen[res.Match.ID] = struct{}{}
					matches = append(matches, res.Match)
				}
			}
		}
		side.Players = append(side.Players, row)
	}

	return side, matches, nil
}

// phaseOf classifies a matchup from the real matches its players resolved
// to. A matchup with no resolved match has not started.
func phaseOf(matches []match.Match) MatchupPhase {
	var live, done, pending int
	seen := make(map[string]struct{}, len(matches))
	for _, item := range matches {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		switch {
		case item.Status == match.StatusLive:
			live++
		case item.Status.Terminal():
			done++
		default:
			pending++
		}
	}

	switch {
	case live > 0:
		return PhaseInProgress
	case done > 0 && pending > 0:
		return PhaseInProgress
	case done > 0:
		return PhaseCompleted
	default:
		return PhaseUpcoming
	}
}
