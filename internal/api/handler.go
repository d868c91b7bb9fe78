// Package api is the local HTTP surface the UI layer calls.
package api

// #region imports
import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/orchestrator"
)

// #endregion imports

// #region types

// Handler serves the wizard dashboard endpoint.
type Handler struct {
	orch *orchestrator.Orchestrator
}

// NewHandler wraps an orchestrator.
func NewHandler(orch *orchestrator.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// errorBody is the failure payload shape for 4xx/5xx responses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// #endregion types

// #region routes

// Register attaches the handler's routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/wizard/dashboard", h.Dashboard)
}

// #endregion routes

// #region dashboard

// Dashboard handles POST /api/wizard/dashboard: decodes the wizard inputs,
// runs one orchestration call, and maps the error taxonomy to status codes
// (input error → 400, everything else → 500).
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var inputs dashboard.WizardInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	result, fp, err := h.orch.Run(r.Context(), inputs)
	if err != nil {
		var inputErr *orchestrator.InputError
		if errors.As(err, &inputErr) {
			writeError(w, http.StatusBadRequest, "invalid_input", inputErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "orchestration_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", fp)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}

// #endregion dashboard

// #region helpers

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code, Message: message})
}

// #endregion helpers
