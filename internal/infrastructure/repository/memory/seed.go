package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/league"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/season"
)

const (
	DemoTournamentID = "tour-premier-t20"
	DemoSeasonID     = "season-2026"
	DemoLeagueID     = "league-office"
	DemoOwnerUserID  = "user-alice"
	DemoRivalUserID  = "user-bob"
)

var demoTeams = []string{"team-harbour", "team-highland", "team-coast", "team-valley"}

// DemoData is a small tournament with four real teams, two fantasy teams
// and a scheduled first and second round.
func DemoData() Data {
	seededAt := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	data := Data{
		Seasons: []season.Season{{
			ID:           DemoSeasonID,
			TournamentID: DemoTournamentID,
			Name:         "Premier T20 2026",
			TeamIDs:      append([]string(nil), demoTeams...),
		}},
		Leagues: []league.League{{
			ID:           DemoLeagueID,
			Name:         "Office League",
			TournamentID: DemoTournamentID,
			SeasonID:     DemoSeasonID,
			OwnerUserID:  DemoOwnerUserID,
		}},
		Rules: scoring.DefaultRules(),
		Teams: []roster.Team{
			{ID: "ft-alice", LeagueID: DemoLeagueID, UserID: DemoOwnerUserID, Name: "Alice XI"},
			{ID: "ft-bob", LeagueID: DemoLeagueID, UserID: DemoRivalUserID, Name: "Bob's Bashers"},
		},
	}

	for i := range data.Rules {
		data.Rules[i].ID = fmt.Sprintf("rule-default-%02d", i+1)
		data.Rules[i].CreatedAt = seededAt
	}

	// Six players per team: p-<team>-1 .. p-<team>-6.
	for _, teamID := range demoTeams {
		for n := 1; n <= 6; n++ {
			playerID := fmt.Sprintf("p-%s-%d", teamID[len("team-"):], n)
			data.PlayerSeasons = append(data.PlayerSeasons, season.PlayerSeason{
				ID:           "ps-" + playerID[len("p-"):],
				PlayerID:     playerID,
				TeamID:       teamID,
				SeasonID:     DemoSeasonID,
				TournamentID: DemoTournamentID,
			})
		}
	}

	fixtures := [][2]string{
		{"team-harbour", "team-highland"},
		{"team-coast", "team-valley"},
		{"team-harbour", "team-coast"},
		{"team-highland", "team-valley"},
	}
	for i, pair := range fixtures {
		week := i/2 + 1
		data.Matches = append(data.Matches, match.Match{
			ID:           fmt.Sprintf("match-%d", i+1),
			TournamentID: DemoTournamentID,
			SeasonID:     DemoSeasonID,
			HomeTeamID:   pair[0],
			AwayTeamID:   pair[1],
			Status:       match.StatusNotStarted,
			HomeMatchNum: week,
			AwayMatchNum: week,
			CreatedAt:    seededAt,
			UpdatedAt:    seededAt,
		})
	}

	for week := 1; week <= 2; week++ {
		data.Instances = append(data.Instances,
			roster.Instance{
				ID:            fmt.Sprintf("fti-alice-%d", week),
				FantasyTeamID: "ft-alice",
				MatchNum:      week,
				Slots: map[roster.Slot]string{
					roster.SlotBat1:    "p-harbour-1",
					roster.SlotBat2:    "p-coast-1",
					roster.SlotWicket1: "p-harbour-2",
					roster.SlotBowl1:   "p-highland-3",
					roster.SlotBowl2:   "p-valley-3",
					roster.SlotBowl3:   "p-coast-4",
					roster.SlotAll1:    "p-highland-5",
					roster.SlotFlex1:   "p-valley-6",
					roster.SlotBench1:  "p-harbour-6",
				},
				CaptainID:     "p-harbour-1",
				ViceCaptainID: "p-highland-3",
			},
			roster.Instance{
				ID:            fmt.Sprintf("fti-bob-%d", week),
				FantasyTeamID: "ft-bob",
				MatchNum:      week,
				Slots: map[roster.Slot]string{
					roster.SlotBat1:    "p-highland-1",
					roster.SlotBat2:    "p-valley-1",
					roster.SlotWicket1: "p-coast-2",
					roster.SlotBowl1:   "p-harbour-3",
					roster.SlotBowl2:   "p-coast-3",
					roster.SlotBowl3:   "p-valley-4",
					roster.SlotAll1:    "p-harbour-5",
					roster.SlotFlex1:   "p-highland-6",
					roster.SlotBench1:  "p-coast-6",
				},
				CaptainID:     "p-highland-1",
				ViceCaptainID: "p-harbour-3",
			},
		)
		data.Matchups = append(data.Matchups, roster.Matchup{
			ID:          fmt.Sprintf("matchup-%d", week),
			LeagueID:    DemoLeagueID,
			MatchNum:    week,
			Instance1ID: fmt.Sprintf("fti-alice-%d", week),
			Instance2ID: fmt.Sprintf("fti-bob-%d", week),
		})
	}

	return data
}

func NewDemoStore() *Store {
	store := NewStore()
	store.Load(DemoData())
	return store
}
