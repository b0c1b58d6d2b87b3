package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

func (h *Handler) UpdateCaptains(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCaptains")
	defer span.End()

	instanceID := pathParam(r, "instanceID")
	var req updateCaptainsRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := principalFromContext(ctx).UserID
	items, err := h.rosterService.UpdateCaptains(ctx, usecase.UpdateCaptainsInput{
		InstanceID:    instanceID,
		UserID:        userID,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.fail(ctx, w, "update captains failed", err, "instance_id", instanceID, "user_id", userID)
		return
	}

	out := make([]instanceDTO, 0, len(items))
	for _, item := range items {
		out = append(out, instanceToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SwapSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapSlots")
	defer span.End()

	instanceID := pathParam(r, "instanceID")
	var req swapSlotsRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := principalFromContext(ctx).UserID
	item, err := h.rosterService.SwapSlots(ctx, usecase.SwapSlotsInput{
		InstanceID: instanceID,
		UserID:     userID,
		SlotA:      req.SlotA,
		SlotB:      req.SlotB,
	})
	if err != nil {
		h.fail(ctx, w, "swap slots failed", err, "instance_id", instanceID, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, instanceToDTO(item))
}
