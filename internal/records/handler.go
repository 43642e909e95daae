package records

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/coursetrack/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	UpdateEmployeeRecords(employeeID string, updates []RecordUpdateDTO) (*UpdateRecordsResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) UpdateRecords(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		h.WriteError(w, http.StatusBadRequest, "employee ID is required")
		return
	}

	var req UpdateRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("UpdateRecords: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp, err := h.Service.UpdateEmployeeRecords(employeeID, req.Updates)
	if err != nil {
		h.Logger.Error("UpdateRecords: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
