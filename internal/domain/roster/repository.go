package roster

import "context"

type TeamRepository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Team, error)
}

type InstanceRepository interface {
	GetByID(ctx context.Context, instanceID string) (Instance, bool, error)
	ListByIDs(ctx context.Context, instanceIDs []string) ([]Instance, error)

	// UpdateCaptains sets the pair on the instance and on every later
	// instance of the same fantasy team, in one transaction. check runs
	// against the locked instance first and may read other repositories;
	// the instance cannot change until the update commits.
	UpdateCaptains(ctx context.Context, instanceID, captainID, viceCaptainID string, check func(Instance) error) ([]Instance, error)

	// SwapSlots exchanges two slots under the instance row lock.
	SwapSlots(ctx context.Context, instanceID string, a, b Slot, check func(Instance) error) (Instance, error)
}

type MatchupRepository interface {
	GetByID(ctx context.Context, matchupID string) (Matchup, bool, error)
	ListByLeagueWeek(ctx context.Context, leagueID string, matchNum int) ([]Matchup, error)
	// ListByTeamsWeek returns the week's matchups involving any of the teams.
	ListByTeamsWeek(ctx context.Context, teamIDs []string, matchNum int) ([]Matchup, error)
}
