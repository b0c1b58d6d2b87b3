package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/scoring-rules/defaults", handler.ListDefaultRules)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/scoring-rules", handler.ListLeagueRules)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/matchups", handler.ListLeagueMatchups)
	mux.HandleFunc("GET /v1/matchups/{matchupID}", handler.GetMatchup)
	mux.HandleFunc("GET /v1/fantasy-team-instances/{instanceID}/performances", handler.ListInstancePerformances)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/matches", RequireTournament(http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("PATCH /v1/matches/{matchID}/start", RequireTournament(http.HandlerFunc(handler.StartMatch)))
	mux.Handle("POST /v1/matches/{matchID}/events", RequireTournament(http.HandlerFunc(handler.AddEvent)))
	mux.Handle("PATCH /v1/matches/{matchID}/finish", RequireTournament(http.HandlerFunc(handler.FinishMatch)))
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("PUT /v1/leagues/{leagueID}/scoring-rules", RequireUser(http.HandlerFunc(handler.UpsertLeagueRule)))
	mux.Handle("GET /v1/matchups/feed", RequireUser(http.HandlerFunc(handler.ListMatchupFeed)))
	mux.Handle("PATCH /v1/fantasy-team-instances/{instanceID}/captains", RequireUser(http.HandlerFunc(handler.UpdateCaptains)))
	mux.Handle("POST /v1/fantasy-team-instances/{instanceID}/swap", RequireUser(http.HandlerFunc(handler.SwapSlots)))
}
