package compliance

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/coursetrack/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	EmployeeStatus(employeeID string, horizonDays int) (*EmployeeStatusResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service        ServiceAPI
	DefaultHorizon int
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, defaultHorizon int) *Handler {
	return &Handler{
		BaseHandler:    baseHandler,
		Service:        service,
		DefaultHorizon: defaultHorizon,
	}
}

// EmployeeStatus serves the public status lookup. The horizon query param
// overrides the configured to-be-expire window when it parses as a positive
// integer; anything else falls back silently.
func (h *Handler) EmployeeStatus(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		h.WriteError(w, http.StatusBadRequest, "employee ID is required")
		return
	}

	horizon := h.DefaultHorizon
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			horizon = parsed
		}
	}

	resp, err := h.Service.EmployeeStatus(employeeID, horizon)
	if err != nil {
		h.Logger.Error("EmployeeStatus: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
