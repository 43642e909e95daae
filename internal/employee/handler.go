package employee

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/frahmantamala/coursetrack/internal/transport"
	"github.com/go-chi/chi"
)

const maxUploadBytes = 10 << 20

type ServiceAPI interface {
	ListEmployees(query string, page, pageSize int) (*ListEmployeesResponse, error)
	GetEmployee(employeeID string) (*Employee, error)
	UpsertEmployee(dto UpsertEmployeeDTO) (*Employee, error)
	ImportCSV(r io.Reader) (*ImportResult, error)
	ExportCSV(w io.Writer) error
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	resp, err := h.Service.ListEmployees(q.Get("q"), page, pageSize)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		h.WriteError(w, http.StatusBadRequest, "employee ID is required")
		return
	}

	emp, err := h.Service.GetEmployee(employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) UpsertEmployee(w http.ResponseWriter, r *http.Request) {
	var dto UpsertEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpsertEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.UpsertEmployee(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

// ImportRoster accepts a multipart upload with the CSV under the "file" field.
func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "a CSV file is required")
		return
	}
	defer file.Close()

	result, err := h.Service.ImportCSV(file)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.csv"`)

	if err := h.Service.ExportCSV(w); err != nil {
		h.Logger.Error("ExportRoster: export failed", "error", err)
	}
}
