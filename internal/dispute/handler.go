package dispute

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/coursetrack/internal"
	"github.com/frahmantamala/coursetrack/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListDisputes(status, query string, page, pageSize int) (*ListDisputesResponse, error)
	CreateDispute(dto CreateDisputeDTO) (*Dispute, error)
	ToggleDispute(id int64, adminName string) (*Dispute, error)
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

func (h *Handler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	resp, err := h.Service.ListDisputes(q.Get("status"), q.Get("q"), page, pageSize)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateDispute(w http.ResponseWriter, r *http.Request) {
	var dto CreateDisputeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateDispute: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dispute, err := h.Service.CreateDispute(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, dispute)
}

// ToggleDispute flips open/closed. The acting admin comes from the verified
// token in the request context.
func (h *Handler) ToggleDispute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "disputeID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dispute ID")
		return
	}

	admin := internal.AdminFromContext(r.Context())
	if admin == "" {
		h.HandleServiceError(w, internal.ErrInvalidToken)
		return
	}

	dispute, err := h.Service.ToggleDispute(id, admin)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dispute)
}
