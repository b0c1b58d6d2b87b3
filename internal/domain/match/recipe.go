package match

import "github.com/riskibarqy/cricket-fantasy/internal/domain/performance"

type SideDelta struct {
	Score   int
	Balls   int
	Wickets int
}

type PlayerDelta struct {
	PlayerID string
	Stats    performance.Stats
}

// Effect is everything one ball event changes. Players are merged by id, so
// a caught-and-bowled produces a single bowler delta.
type Effect struct {
	BattingSide Side
	Players     []PlayerDelta
	Home        SideDelta
	Away        SideDelta
}

func (e Effect) Side(side Side) SideDelta {
	if side == SideHome {
		return e.Home
	}
	return e.Away
}

// BuildEffect validates the event and turns it into counter deltas using
// the recipe for its kind of delivery.
func BuildEffect(m Match, e BallEvent) (Effect, error) {
	if err := e.Validate(m); err != nil {
		return Effect{}, err
	}

	batting, _ := m.SideOf(e.BattingTeamID)
	b := effectBuilder{effect: Effect{BattingSide: batting}, index: make(map[string]int, 4)}

	if !e.WicketTaken {
		b.player(e.StrikerID, performance.Stats{
			RunsScored: e.RunsScored,
			BallsFaced: e.BallsPlayed,
			Fours:      boolToInt(e.Four),
			Sixes:      boolToInt(e.Six),
		})
		b.player(e.BowlerID, performance.Stats{
			RunsConceded: e.RunsScored,
			BallsBowled:  e.BallsPlayed,
		})
		b.side(batting, SideDelta{Score: e.RunsScored, Balls: e.BallsPlayed})
	} else {
		applyDismissal(&b, batting, e)
	}

	switch e.ExtraType {
	case ExtraWide:
		b.player(e.BowlerID, performance.Stats{WidesBowled: 1})
	case ExtraNoBall:
		b.player(e.BowlerID, performance.Stats{NoBallsBowled: 1})
	case ExtraBye, ExtraLegBye:
		b.player(e.BowlerID, performance.Stats{ByesBowled: 1})
	}

	if e.DroppedByID != "" {
		b.player(e.DroppedByID, performance.Stats{CatchesDropped: 1})
	}

	return b.effect, nil
}

func applyDismissal(b *effectBuilder, batting Side, e BallEvent) {
	bowling := batting.Opposite()

	if e.WicketType == WicketRunOut {
		// Completed runs stand; the bowler gets no wicket.
		b.player(e.StrikerID, performance.Stats{RunsScored: e.RunsScored, BallsFaced: e.BallsPlayed})
		b.player(e.BowlerID, performance.Stats{RunsConceded: e.RunsScored, BallsBowled: e.BallsPlayed})
		b.player(e.FielderID, performance.Stats{RunOuts: 1})
		b.side(batting, SideDelta{Score: e.RunsScored, Balls: e.BallsPlayed})
		b.side(bowling, SideDelta{Wickets: 1})
		return
	}

	b.player(e.StrikerID, performance.Stats{BallsFaced: e.BallsPlayed})
	b.player(e.BowlerID, performance.Stats{BallsBowled: e.BallsPlayed, WicketsTaken: 1})
	switch e.WicketType {
	case WicketCatch:
		b.player(e.FielderID, performance.Stats{Catches: 1})
	case WicketStumped:
		b.player(e.FielderID, performance.Stats{Dismissals: 1})
	}
	b.side(batting, SideDelta{Balls: e.BallsPlayed})
	b.side(bowling, SideDelta{Wickets: 1})
}

type effectBuilder struct {
	effect Effect
	index  map[string]int
}

func (b *effectBuilder) player(id string, delta performance.Stats) {
	if id == "" {
		return
	}
	if i, ok := b.index[id]; ok {
		b.effect.Players[i].Stats = b.effect.Players[i].Stats.Add(delta)
		return
	}
	b.index[id] = len(b.effect.Players)
	b.effect.Players = append(b.effect.Players, PlayerDelta{PlayerID: id, Stats: delta})
}

func (b *effectBuilder) side(side Side, d SideDelta) {
	if side == SideHome {
		b.effect.Home = SideDelta{
			Score:   b.effect.Home.Score + d.Score,
			Balls:   b.effect.Home.Balls + d.Balls,
			Wickets: b.effect.Home.Wickets + d.Wickets,
		}
		return
	}
	b.effect.Away = SideDelta{
		Score:   b.effect.Away.Score + d.Score,
		Balls:   b.effect.Away.Balls + d.Balls,
		Wickets: b.effect.Away.Wickets + d.Wickets,
	}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
