package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

var requestJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

type Handler struct {
	matchService   *usecase.MatchService
	eventService   *usecase.BallEventService
	ruleService    *usecase.ScoringRuleService
	matchupService *usecase.MatchupService
	rosterService  *usecase.RosterService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	eventService *usecase.BallEventService,
	ruleService *usecase.ScoringRuleService,
	matchupService *usecase.MatchupService,
	rosterService *usecase.RosterService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:   matchService,
		eventService:   eventService,
		ruleService:    ruleService,
		matchupService: matchupService,
		rosterService:  rosterService,
		logger:         logger.Named("httpapi"),
		validator:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest decodes and validates a JSON body. An empty body is allowed
// only when allowEmpty is set, leaving dst at its zero value.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any, allowEmpty bool) error {
	if err := requestJSON.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
	}
	if err := h.validator.StructCtx(ctx, dst); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// fail logs the full error and writes the public envelope. Client mistakes
// log at warn, everything else at error.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).Opaque {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func pathParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

func matchNumQuery(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("match_num"))
	if raw == "" {
		return 0, fmt.Errorf("%w: match_num query parameter is required", usecase.ErrInvalidInput)
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: match_num must be a positive integer", usecase.ErrInvalidInput)
	}
	return value, nil
}
