package handler

import (
	"log/slog"
	"net/http"

	"github.com/winecellar/intake/internal/metrics"
	"github.com/winecellar/intake/internal/model"
	"github.com/winecellar/intake/internal/service"
)

// IntakeHandler accepts form submissions on the intake route.
type IntakeHandler struct {
	intakeService service.IntakeService
	maxBodyBytes  int64
}

// NewIntakeHandler creates an IntakeHandler. Bodies larger than
// maxBodyBytes are rejected as parse failures.
func NewIntakeHandler(intakeService service.IntakeService, maxBodyBytes int64) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService, maxBodyBytes: maxBodyBytes}
}

// Handler returns the intake endpoint wrapped in CORS handling.
func (h *IntakeHandler) Handler() http.Handler {
	return CORS(http.HandlerFunc(h.Submit))
}

// Submit handles POST; every other non-preflight method gets 405.
// Parse and store failures produce 500; notification failures do not.
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte("Method not allowed"))
		return
	}

	sub, err := parseSubmission(w, r, h.maxBodyBytes)
	if err != nil {
		metrics.ObserveSubmission(metrics.OutcomeParseError)
		slog.ErrorContext(r.Context(), "form parse failed", "error", err)
		writeInternalError(w, err)
		return
	}

	res, err := h.intakeService.Submit(r.Context(), sub, r.Header.Get("User-Agent"))
	if err != nil {
		writeInternalError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "form submitted",
		"key", res.Key,
		"email_status", res.Email.Status,
		"sheets_status", res.Sheets.Status,
	)
	writeJSON(w, http.StatusOK, model.NewResponsePayload(res))
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, model.ErrorPayload{
		Success: false,
		Error:   "Internal server error",
		Message: err.Error(),
	})
}
