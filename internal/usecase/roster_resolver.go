package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/season"
)

// Resolution links a rostered player to the real match they play in a
// fantasy week. A resolved player without a performance row scores from a
// zero stat line.
type Resolution struct {
	PlayerID       string
	Resolved       bool
	PlayerSeasonID string
	TeamID         string
	Match          match.Match
	HasPerformance bool
	Performance    performance.Performance
}

type RosterResolver struct {
	leagueRepo league.Repository
	seasonRepo season.Repository
	matchRepo  match.Repository
	perfRepo   performance.Repository
}

func NewRosterResolver(
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	matchRepo match.Repository,
	perfRepo performance.Repository,
) *RosterResolver {
	return &RosterResolver{
		leagueRepo: leagueRepo,
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		perfRepo:   perfRepo,
	}
}

func (r *RosterResolver) ResolvePlayer(ctx context.Context, leagueID, seasonID string, week int, playerID string) (Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterResolver.ResolvePlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return Resolution{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}
	out, err := r.ResolveRoster(ctx, leagueID, seasonID, week, []string{playerID})
	if err != nil {
		return Resolution{}, err
	}
	return out[playerID], nil
}

// ResolveRoster resolves many players with one lookup per table. An empty
// seasonID falls back to the league's season.
func (r *RosterResolver) ResolveRoster(ctx context.Context, leagueID, seasonID string, week int, playerIDs []string) (map[string]Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterResolver.ResolveRoster")
	defer span.End()

	if week <= 0 {
		return nil, fmt.Errorf("%w: fantasy week must be positive", ErrInvalidInput)
	}
	lg, err := getLeague(ctx, r.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		seasonID = lg.SeasonID
	}
	return r.resolve(ctx, seasonID, week, playerIDs)
}

func (r *RosterResolver) resolve(ctx context.Context, seasonID string, week int, playerIDs []string) (map[string]Resolution, error) {
	out := make(map[string]Resolution, len(playerIDs))
	ids := make([]string, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		playerID = strings.TrimSpace(playerID)
		if playerID == "" {
			continue
		}
		if _, seen := out[playerID]; seen {
			continue
		}
		out[playerID] = Resolution{PlayerID: playerID}
		ids = append(ids, playerID)
	}
	if len(ids) == 0 {
		return out, nil
	}

	memberships, err := r.seasonRepo.ListPlayerSeasons(ctx, seasonID, ids)
	if err != nil {
		return nil, storeError("list player seasons", err)
	}
	if len(memberships) == 0 {
		return out, nil
	}

	matches, err := r.matchRepo.ListBySeasonWeek(ctx, seasonID, week)
	if err != nil {
		return nil, storeError("list matches by week", err)
	}
	matchByTeam := make(map[string]match.Match, len(matches)*2)
	for _, item := range matches {
		if item.HomeMatchNum == week {
			matchByTeam[item.HomeTeamID] = item
		}
		if item.AwayMatchNum == week {
			matchByTeam[item.AwayTeamID] = item
		}
	}

	keys := make([]performance.Key, 0, len(memberships))
	for _, ps := range memberships {
		res, ok := out[ps.PlayerID]
		if !ok || res.Resolved {
			continue
		}
		item, ok := matchByTeam[ps.TeamID]
		if !ok {
			continue
		}
		res.Resolved = true
		res.PlayerSeasonID = ps.ID
		res.TeamID = ps.TeamID
		res.Match = item
		out[ps.PlayerID] = res
		keys = append(keys, performance.Key{PlayerSeasonID: ps.ID, MatchID: item.ID})
	}
	if len(keys) == 0 {
		return out, nil
	}

	rows, err := r.perfRepo.ListByKeys(ctx, keys)
	if err != nil {
		return nil, storeError("list performances", err)
	}
	byKey := make(map[performance.Key]performance.Performance, len(rows))
	for _, row := range rows {
		byKey[row.Key()] = row
	}
	for playerID, res := range out {
		if !res.Resolved {
			continue
		}
		row, ok := byKey[performance.Key{PlayerSeasonID: res.PlayerSeasonID, MatchID: res.Match.ID}]
		if !ok {
			continue
		}
		res.HasPerformance = true
		res.Performance = row
		out[playerID] = res
	}

	return out, nil
}
