package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

func (h *Handler) ListDefaultRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDefaultRules")
	defer span.End()

	rules, err := h.ruleService.ListDefaultRules(ctx)
	if err != nil {
		h.fail(ctx, w, "list default scoring rules failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rulesToDTO(rules))
}

func (h *Handler) ListLeagueRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueRules")
	defer span.End()

	leagueID := pathParam(r, "leagueID")
	set, err := h.ruleService.ResolveRules(ctx, leagueID)
	if err != nil {
		h.fail(ctx, w, "resolve scoring rules failed", err, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ruleSetDTO{LeagueID: set.LeagueID, Rules: rulesToDTO(set.Rules)})
}

func (h *Handler) UpsertLeagueRule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertLeagueRule")
	defer span.End()

	leagueID := pathParam(r, "leagueID")
	var req upsertRuleRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	rule, err := h.ruleService.UpsertLeagueRule(ctx, usecase.UpsertRuleInput{
		LeagueID:      leagueID,
		UserID:        principalFromContext(ctx).UserID,
		Stat:          req.Stat,
		Category:      req.Category,
		Mode:          req.Mode,
		PerUnitPoints: req.PerUnitPoints,
		FlatPoints:    req.FlatPoints,
		Threshold:     req.Threshold,
		Band:          req.Band,
		Multiplier:    req.Multiplier,
	})
	if err != nil {
		h.fail(ctx, w, "upsert scoring rule failed", err, "league_id", leagueID, "stat", req.Stat)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ruleToDTO(rule))
}
