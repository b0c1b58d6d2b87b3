package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	principal := principalFromContext(ctx)
	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	snap, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		TournamentID: principal.TournamentID,
		SeasonID:     req.SeasonID,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
	})
	if err != nil {
		h.fail(ctx, w, "create match failed", err, "season_id", req.SeasonID, "tournament_id", principal.TournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, snapshotToDTO(snap))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := pathParam(r, "matchID")
	snap, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.fail(ctx, w, "get match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snap))
}

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartMatch")
	defer span.End()

	matchID := pathParam(r, "matchID")
	snap, err := h.matchService.StartMatch(ctx, matchID, principalFromContext(ctx).TournamentID)
	if err != nil {
		h.fail(ctx, w, "start match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snap))
}

func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddEvent")
	defer span.End()

	matchID := pathParam(r, "matchID")
	var req addEventRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	snap, err := h.eventService.AddEvent(ctx, usecase.AddEventInput{
		MatchID:       matchID,
		TournamentID:  principalFromContext(ctx).TournamentID,
		BattingTeamID: req.BattingTeamID,
		StrikerID:     req.StrikerID,
		NonStrikerID:  req.NonStrikerID,
		BowlerID:      req.BowlerID,
		RunsScored:    req.RunsScored,
		BallsPlayed:   req.BallsPlayed,
		WicketTaken:   req.WicketTaken,
		WicketType:    req.WicketType,
		FielderID:     req.FielderID,
		DroppedByID:   req.DroppedByID,
		Four:          req.Four,
		Six:           req.Six,
		ExtraType:     req.ExtraType,
	})
	if err != nil {
		h.fail(ctx, w, "add ball event failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, snapshotToDTO(snap))
}

func (h *Handler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishMatch")
	defer span.End()

	matchID := pathParam(r, "matchID")
	var req finishMatchRequest
	if err := h.decodeRequest(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	snap, err := h.matchService.FinishMatch(ctx, matchID, principalFromContext(ctx).TournamentID, req.Status)
	if err != nil {
		h.fail(ctx, w, "finish match failed", err, "match_id", matchID, "status", req.Status)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snap))
}
