package postgres

import (
	"database/sql"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/roster"
)

// Slot names double as fantasy_team_instance column names.
var instanceColumns = "id, fantasy_team_id, match_num, " + joinSlots(roster.AllSlots) +
	", captain_id, vice_captain_id, is_locked, updated_at"

func joinSlots(slots []roster.Slot) string {
	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		parts = append(parts, string(slot))
	}
	return strings.Join(parts, ", ")
}

type instanceTableModel struct {
	ID            string         `db:"id"`
	FantasyTeamID string         `db:"fantasy_team_id"`
	MatchNum      int            `db:"match_num"`
	Bat1          sql.NullString `db:"bat1"`
	Bat2          sql.NullString `db:"bat2"`
	Wicket1       sql.NullString `db:"wicket1"`
	Bowl1         sql.NullString `db:"bowl1"`
	Bowl2         sql.NullString `db:"bowl2"`
	Bowl3         sql.NullString `db:"bowl3"`
	All1          sql.NullString `db:"all1"`
	Flex1         sql.NullString `db:"flex1"`
	Bench1        sql.NullString `db:"bench1"`
	Bench2        sql.NullString `db:"bench2"`
	Bench3        sql.NullString `db:"bench3"`
	Bench4        sql.NullString `db:"bench4"`
	Bench5        sql.NullString `db:"bench5"`
	Bench6        sql.NullString `db:"bench6"`
	CaptainID     string         `db:"captain_id"`
	ViceCaptainID string         `db:"vice_captain_id"`
	IsLocked      bool           `db:"is_locked"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (row *instanceTableModel) slotFields() map[roster.Slot]*sql.NullString {
	return map[roster.Slot]*sql.NullString{
		roster.SlotBat1:    &row.Bat1,
		roster.SlotBat2:    &row.Bat2,
		roster.SlotWicket1: &row.Wicket1,
		roster.SlotBowl1:   &row.Bowl1,
		roster.SlotBowl2:   &row.Bowl2,
		roster.SlotBowl3:   &row.Bowl3,
		roster.SlotAll1:    &row.All1,
		roster.SlotFlex1:   &row.Flex1,
		roster.SlotBench1:  &row.Bench1,
		roster.SlotBench2:  &row.Bench2,
		roster.SlotBench3:  &row.Bench3,
		roster.SlotBench4:  &row.Bench4,
		roster.SlotBench5:  &row.Bench5,
		roster.SlotBench6:  &row.Bench6,
	}
}

func instanceFromRow(row instanceTableModel) roster.Instance {
	slots := make(map[roster.Slot]string, len(roster.AllSlots))
	for slot, field := range row.slotFields() {
		if field.Valid && field.String != "" {
			slots[slot] = field.String
		}
	}
	return roster.Instance{
		ID:            row.ID,
		FantasyTeamID: row.FantasyTeamID,
		MatchNum:      row.MatchNum,
		Slots:         slots,
		CaptainID:     row.CaptainID,
		ViceCaptainID: row.ViceCaptainID,
		IsLocked:      row.IsLocked,
		UpdatedAt:     row.UpdatedAt,
	}
}

type teamTableModel struct {
	ID       string `db:"id"`
	LeagueID string `db:"league_id"`
	UserID   string `db:"user_id"`
	Name     string `db:"name"`
}

type matchupTableModel struct {
	ID          string `db:"id"`
	LeagueID    string `db:"league_id"`
	MatchNum    int    `db:"match_num"`
	Instance1ID string `db:"instance1_id"`
	Instance2ID string `db:"instance2_id"`
}

func (row matchupTableModel) toDomain() roster.Matchup {
	return roster.Matchup{
		ID:          row.ID,
		LeagueID:    row.LeagueID,
		MatchNum:    row.MatchNum,
		Instance1ID: row.Instance1ID,
		Instance2ID: row.Instance2ID,
	}
}
