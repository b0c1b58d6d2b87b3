package league

import "fmt"

// League is a fantasy league played over one real tournament season.
// OwnerUserID is the commissioner allowed to edit its scoring rules.
type League struct {
	ID           string
	Name         string
	TournamentID string
	SeasonID     string
	OwnerUserID  string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.TournamentID == "" {
		return fmt.Errorf("league tournament is required")
	}
	if l.SeasonID == "" {
		return fmt.Errorf("league season is required")
	}

	return nil
}
