package season

import "slices"

type Season struct {
	ID           string
	TournamentID string
	Name         string
	TeamIDs      []string
}

func (s Season) HasTeam(teamID string) bool {
	return slices.Contains(s.TeamIDs, teamID)
}

// PlayerSeason binds a player to one team for one season.
type PlayerSeason struct {
	ID           string
	PlayerID     string
	TeamID       string
	SeasonID     string
	TournamentID string
}
