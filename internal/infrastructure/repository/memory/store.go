package memory

import (
	"sync"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/performance"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/season"
)

// Store keeps every table behind one lock so multi-table writes such as a
// ball event are atomic, like a database transaction.
type Store struct {
	mu sync.RWMutex
	// rosterMu serializes instance mutations. It plays the row lock: a
	// mutation's check runs under it without holding mu, so the check may
	// read other tables.
	rosterMu sync.Mutex

	seasons       map[string]season.Season
	playerSeasons map[string]season.PlayerSeason
	leagues       map[string]league.League
	matches       map[string]match.Match
	events        map[string][]match.BallEvent
	performances  map[performance.Key]performance.Performance
	rules         map[string]scoring.Rule
	teams         map[string]roster.Team
	instances     map[string]roster.Instance
	matchups      map[string]roster.Matchup

	nextPerformanceID int
}

func NewStore() *Store {
	return &Store{
		seasons:       make(map[string]season.Season),
		playerSeasons: make(map[string]season.PlayerSeason),
		leagues:       make(map[string]league.League),
		matches:       make(map[string]match.Match),
		events:        make(map[string][]match.BallEvent),
		performances:  make(map[performance.Key]performance.Performance),
		rules:         make(map[string]scoring.Rule),
		teams:         make(map[string]roster.Team),
		instances:     make(map[string]roster.Instance),
		matchups:      make(map[string]roster.Matchup),
	}
}

// Data is a bulk fixture for Load.
type Data struct {
	Seasons       []season.Season
	PlayerSeasons []season.PlayerSeason
	Leagues       []league.League
	Matches       []match.Match
	Performances  []performance.Performance
	Rules         []scoring.Rule
	Teams         []roster.Team
	Instances     []roster.Instance
	Matchups      []roster.Matchup
}

// Load inserts data as is, replacing rows with the same id.
func (s *Store) Load(data Data) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range data.Seasons {
		item.TeamIDs = append([]string(nil), item.TeamIDs...)
		s.seasons[item.ID] = item
	}
	for _, item := range data.PlayerSeasons {
		s.playerSeasons[item.ID] = item
	}
	for _, item := range data.Leagues {
		s.leagues[item.ID] = item
	}
	for _, item := range data.Matches {
		s.matches[item.ID] = item
	}
	for _, item := range data.Performances {
		s.performances[item.Key()] = item
	}
	for _, item := range data.Rules {
		s.rules[ruleKey(item)] = cloneRule(item)
	}
	for _, item := range data.Teams {
		s.teams[item.ID] = item
	}
	for _, item := range data.Instances {
		s.instances[item.ID] = cloneInstance(item)
	}
	for _, item := range data.Matchups {
		s.matchups[item.ID] = item
	}
}

func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{store: s}
}

func (s *Store) Performances() *PerformanceRepository {
	return &PerformanceRepository{store: s}
}

func (s *Store) Seasons() *SeasonRepository {
	return &SeasonRepository{store: s}
}

func (s *Store) Leagues() *LeagueRepository {
	return &LeagueRepository{store: s}
}

func (s *Store) ScoringRules() *ScoringRuleRepository {
	return &ScoringRuleRepository{store: s}
}

func (s *Store) Teams() *TeamRepository {
	return &TeamRepository{store: s}
}

func (s *Store) Instances() *InstanceRepository {
	return &InstanceRepository{store: s}
}

func (s *Store) Matchups() *MatchupRepository {
	return &MatchupRepository{store: s}
}
