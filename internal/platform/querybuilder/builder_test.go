package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "status").
		From("match_info").
		Where(Eq("season_id", "s1"), IsNull("deleted_at")).
		OrderBy("home_match_num").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, status FROM match_info WHERE season_id = $1 AND deleted_at IS NULL ORDER BY home_match_num LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		MatchID  string `db:"match_id"`
		BallNum  int    `db:"ball_num"`
		Internal string
		Skipped  string `db:"-"`
	}

	query, args, err := InsertModel("ball_event", row{MatchID: "m1", BallNum: 7}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO ball_event (match_id, ball_num) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "m1" || args[1] != 7 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_FlattensEmbedded(t *testing.T) {
	type Audit struct {
		CreatedBy string `db:"created_by"`
	}
	type row struct {
		Audit
		ID string `db:"id,pk"`
	}

	query, args, err := InsertModel("scoring_rule", &row{Audit: Audit{CreatedBy: "u1"}, ID: "r1"}, "")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	if query != "INSERT INTO scoring_rule (created_by, id) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "r1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	var nilRow *row
	if _, _, err := InsertModel("scoring_rule", nilRow, ""); err == nil {
		t.Fatalf("expected nil model error")
	}
	if _, _, err := InsertModel("scoring_rule", 42, ""); err == nil {
		t.Fatalf("expected non-struct error")
	}
}

func TestExprBindsInOrder(t *testing.T) {
	query, args, err := Update("fantasy_team_instance").
		Set("captain_id", "p1").
		Where(Eq("fantasy_team_id", "ft1"), Expr("match_num >= ? AND match_num <= ?", 2, 4)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	want := "UPDATE fantasy_team_instance SET captain_id = $1 WHERE fantasy_team_id = $2 AND match_num >= $3 AND match_num <= $4 RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 || args[2] != 2 || args[3] != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("match_info").
		Set("status", "LIVE").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "m1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE match_info SET status = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "LIVE" || args[1] != "m1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_JoinOrForUpdate(t *testing.T) {
	query, args, err := Select("m.id").
		From("match_info m").
		Join("JOIN season s ON s.id = m.season_id").
		Where(
			Eq("m.season_id", "s1"),
			Or(
				And(Eq("m.home_team_id", "t1"), Eq("m.home_match_num", 3)),
				And(Eq("m.away_team_id", "t1"), Eq("m.away_match_num", 3)),
			),
		).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT m.id FROM match_info m JOIN season s ON s.id = m.season_id WHERE m.season_id = $1 AND ((m.home_team_id = $2 AND m.home_match_num = $3) OR (m.away_team_id = $4 AND m.away_match_num = $5)) FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 5 || args[0] != "s1" || args[4] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InStringsEmpty(t *testing.T) {
	query, args, err := Select("id").From("player_season_info").Where(InStrings("player_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM player_season_info WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_IncrementSkipsZero(t *testing.T) {
	b := Update("player_performance").
		Increment("runs_scored", 4).
		Increment("balls_faced", 0).
		Increment("fours", 1).
		Where(Eq("id", "p1"))
	if !b.HasSets() {
		t.Fatalf("expected sets")
	}

	query, args, err := b.ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE player_performance SET runs_scored = runs_scored + $1, fours = fours + $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 4 || args[1] != 1 || args[2] != "p1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
