package httpapi

import "net/http"

func (h *Handler) ListLeagueMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMatchups")
	defer span.End()

	leagueID := pathParam(r, "leagueID")
	week, err := matchNumQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchupService.ComputeLeagueWeek(ctx, leagueID, week)
	if err != nil {
		h.fail(ctx, w, "compute league week failed", err, "league_id", leagueID, "match_num", week)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupsToDTO(items))
}

func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchup")
	defer span.End()

	matchupID := pathParam(r, "matchupID")
	item, err := h.matchupService.ComputeMatchupScore(ctx, matchupID)
	if err != nil {
		h.fail(ctx, w, "compute matchup score failed", err, "matchup_id", matchupID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupToDTO(item))
}

func (h *Handler) ListMatchupFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchupFeed")
	defer span.End()

	week, err := matchNumQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := principalFromContext(ctx).UserID
	items, err := h.matchupService.ListUserFeed(ctx, userID, week)
	if err != nil {
		h.fail(ctx, w, "list matchup feed failed", err, "user_id", userID, "match_num", week)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupsToDTO(items))
}

func (h *Handler) ListInstancePerformances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListInstancePerformances")
	defer span.End()

	instanceID := pathParam(r, "instanceID")
	side, err := h.matchupService.ListInstancePerformances(ctx, instanceID)
	if err != nil {
		h.fail(ctx, w, "list instance performances failed", err, "instance_id", instanceID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sideToDTO(side))
}
