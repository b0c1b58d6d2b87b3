package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
)

type UpdateCaptainsInput struct {
	InstanceID    string
	UserID        string
	CaptainID     string
	ViceCaptainID string
}

type SwapSlotsInput struct {
	InstanceID string
	UserID     string
	SlotA      string
	SlotB      string
}

// RosterService guards roster mutations: captaincy changes and slot swaps.
type RosterService struct {
	leagueRepo   league.Repository
	teamRepo     roster.TeamRepository
	instanceRepo roster.InstanceRepository
	resolver     *RosterResolver
	logger       *logging.Logger
}

func NewRosterService(
	leagueRepo league.Repository,
	teamRepo roster.TeamRepository,
	instanceRepo roster.InstanceRepository,
	resolver *RosterResolver,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		leagueRepo:   leagueRepo,
		teamRepo:     teamRepo,
		instanceRepo: instanceRepo,
		resolver:     resolver,
		logger:       logger.Named("usecase.roster"),
	}
}

// UpdateCaptains sets captain and vice captain on the instance and every
// later week of the same fantasy team. It fails with ErrConflict once the
// current or the proposed captain has a performance row for the week.
func (s *RosterService) UpdateCaptains(ctx context.Context, input UpdateCaptainsInput) ([]roster.Instance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateCaptains")
	defer span.End()

	captainID := strings.TrimSpace(input.CaptainID)
	viceID := strings.TrimSpace(input.ViceCaptainID)

	item, team, err := s.loadOwned(ctx, input.InstanceID, input.UserID)
	if err != nil {
		return nil, err
	}

	lg, err := getLeague(ctx, s.leagueRepo, team.LeagueID)
	if err != nil {
		return nil, err
	}

	// check runs again under the instance lock, so the captain it tests
	// against is the one being replaced.
	check := func(current roster.Instance) error {
		if current.IsLocked {
			return fmt.Errorf("%w: instance=%s is locked", ErrInvalidState, current.ID)
		}
		if err := current.ValidateCaptains(captainID, viceID); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return s.ensureCaptainsNotPlaying(ctx, lg.SeasonID, current, captainID)
	}
	if err := check(item); err != nil {
		s.logger.WarnContext(ctx, "captain update rejected", "instance_id", item.ID, "error", err)
		return nil, err
	}

	updated, err := s.instanceRepo.UpdateCaptains(ctx, item.ID, captainID, viceID, check)
	if err != nil {
		s.logger.WarnContext(ctx, "captain update rejected under lock", "instance_id", item.ID, "error", err)
		return nil, storeError("update captains", err)
	}

	s.logger.InfoContext(ctx, "captains updated",
		"instance_id", item.ID,
		"fantasy_team_id", item.FantasyTeamID,
		"captain_id", captainID,
		"vice_captain_id", viceID,
		"instances", len(updated),
	)
	return updated, nil
}

// ensureCaptainsNotPlaying fails with ErrConflict when the instance's
// current captain or the proposed one already has a performance row for the
// instance's week.
func (s *RosterService) ensureCaptainsNotPlaying(ctx context.Context, seasonID string, current roster.Instance, captainID string) error {
	players := []string{current.CaptainID, captainID}
	resolutions, err := s.resolver.resolve(ctx, seasonID, current.MatchNum, players)
	if err != nil {
		return err
	}
	for _, playerID := range players {
		if res, ok := resolutions[playerID]; ok && res.HasPerformance {
			return fmt.Errorf("%w: captain %s already has a performance for week %d", ErrConflict, playerID, current.MatchNum)
		}
	}
	return nil
}

func (s *RosterService) SwapSlots(ctx context.Context, input SwapSlotsInput) (roster.Instance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SwapSlots")
	defer span.End()

	slotA, err := roster.ParseSlot(input.SlotA)
	if err != nil {
		return roster.Instance{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	slotB, err := roster.ParseSlot(input.SlotB)
	if err != nil {
		return roster.Instance{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if slotA == slotB {
		return roster.Instance{}, fmt.Errorf("%w: %w", ErrInvalidInput, roster.ErrSameSlot)
	}

	item, _, err := s.loadOwned(ctx, input.InstanceID, input.UserID)
	if err != nil {
		return roster.Instance{}, err
	}

	check := func(current roster.Instance) error {
		if _, err := current.Swap(slotA, slotB); err != nil {
			return swapError(err)
		}
		return nil
	}
	if err := check(item); err != nil {
		s.logger.WarnContext(ctx, "slot swap rejected", "instance_id", item.ID, "error", err)
		return roster.Instance{}, err
	}

	updated, err := s.instanceRepo.SwapSlots(ctx, item.ID, slotA, slotB, check)
	if err != nil {
		return roster.Instance{}, storeError("swap slots", err)
	}

	s.logger.InfoContext(ctx, "slots swapped", "instance_id", item.ID, "slot_a", slotA, "slot_b", slotB)
	return updated, nil
}

func (s *RosterService) loadOwned(ctx context.Context, instanceID, userID string) (roster.Instance, roster.Team, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return roster.Instance{}, roster.Team{}, fmt.Errorf("%w: user identity is required", ErrUnauthorized)
	}
	item, team, err := loadInstanceWithTeam(ctx, s.instanceRepo, s.teamRepo, instanceID)
	if err != nil {
		return roster.Instance{}, roster.Team{}, err
	}
	if team.UserID != userID {
		s.logger.WarnContext(ctx, "roster mutation by non-owner", "instance_id", item.ID, "user_id", userID)
		return roster.Instance{}, roster.Team{}, fmt.Errorf("%w: instance=%s belongs to another user", ErrForbidden, item.ID)
	}
	return item, team, nil
}

func loadInstanceWithTeam(
	ctx context.Context,
	instanceRepo roster.InstanceRepository,
	teamRepo roster.TeamRepository,
	instanceID string,
) (roster.Instance, roster.Team, error) {
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		return roster.Instance{}, roster.Team{}, fmt.Errorf("%w: instance_id is required", ErrInvalidInput)
	}
	item, exists, err := instanceRepo.GetByID(ctx, instanceID)
	if err != nil {
		return roster.Instance{}, roster.Team{}, storeError("get fantasy team instance", err)
	}
	if !exists {
		return roster.Instance{}, roster.Team{}, fmt.Errorf("%w: instance=%s", ErrNotFound, instanceID)
	}
	team, exists, err := teamRepo.GetByID(ctx, item.FantasyTeamID)
	if err != nil {
		return roster.Instance{}, roster.Team{}, storeError("get fantasy team", err)
	}
	if !exists {
		return roster.Instance{}, roster.Team{}, fmt.Errorf("%w: fantasy team=%s", ErrNotFound, item.FantasyTeamID)
	}
	return item, team, nil
}

func swapError(err error) error {
	switch {
	case errors.Is(err, roster.ErrLocked):
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
}
