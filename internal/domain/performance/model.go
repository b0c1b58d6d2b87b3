package performance

import "time"

// Stats holds the cumulative counters of one player in one match. The same
// shape doubles as a delta when a ball event is applied.
type Stats struct {
	RunsScored     int `json:"runs_scored"`
	BallsFaced     int `json:"balls_faced"`
	Fours          int `json:"fours"`
	Sixes          int `json:"sixes"`
	RunsConceded   int `json:"runs_conceded"`
	BallsBowled    int `json:"balls_bowled"`
	WicketsTaken   int `json:"wickets_taken"`
	Catches        int `json:"catches"`
	CatchesDropped int `json:"catches_dropped"`
	RunOuts        int `json:"run_outs"`
	Dismissals     int `json:"dismissals"`
	WidesBowled    int `json:"wides_bowled"`
	NoBallsBowled  int `json:"no_balls_bowled"`
	ByesBowled     int `json:"byes_bowled"`
}

func (s Stats) Add(d Stats) Stats {
	return Stats{
		RunsScored:     s.RunsScored + d.RunsScored,
		BallsFaced:     s.BallsFaced + d.BallsFaced,
		Fours:          s.Fours + d.Fours,
		Sixes:          s.Sixes + d.Sixes,
		RunsConceded:   s.RunsConceded + d.RunsConceded,
		BallsBowled:    s.BallsBowled + d.BallsBowled,
		WicketsTaken:   s.WicketsTaken + d.WicketsTaken,
		Catches:        s.Catches + d.Catches,
		CatchesDropped: s.CatchesDropped + d.CatchesDropped,
		RunOuts:        s.RunOuts + d.RunOuts,
		Dismissals:     s.Dismissals + d.Dismissals,
		WidesBowled:    s.WidesBowled + d.WidesBowled,
		NoBallsBowled:  s.NoBallsBowled + d.NoBallsBowled,
		ByesBowled:     s.ByesBowled + d.ByesBowled,
	}
}

func (s Stats) IsZero() bool {
	return s == Stats{}
}

// Performance is the authoritative stat line for one player season in one
// match. Exactly one exists per (PlayerSeasonID, MatchID).
type Performance struct {
	ID             string
	PlayerSeasonID string
	PlayerID       string
	TeamID         string
	MatchID        string
	Stats          Stats
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Key identifies a performance row without its surrogate id.
type Key struct {
	PlayerSeasonID string
	MatchID        string
}

func (p Performance) Key() Key {
	return Key{PlayerSeasonID: p.PlayerSeasonID, MatchID: p.MatchID}
}
