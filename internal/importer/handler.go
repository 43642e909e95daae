package importer

import (
	"io"
	"net/http"
	"strconv"

	"github.com/frahmantamala/coursetrack/internal/transport"
	"github.com/go-chi/chi"
)

const maxUploadBytes = 10 << 20

type ServiceAPI interface {
	Preview(courseID int64, r io.Reader) (*PreviewResponse, error)
	Confirm(token string) (*ConfirmResponse, error)
	Report(token, reportType string) (string, error)
	Cancel(token string) error
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

// Preview accepts a multipart upload: "course_id" form value plus the CSV
// under "file".
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	courseID, err := strconv.ParseInt(r.FormValue("course_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "course_id is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "a CSV file is required")
		return
	}
	defer file.Close()

	resp, err := h.Service.Preview(courseID, file)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	resp, err := h.Service.Confirm(token)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	reportType := r.URL.Query().Get("type")

	report, err := h.Service.Report(token, reportType)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="import_`+reportType+`.txt"`)
	if _, err := w.Write([]byte(report)); err != nil {
		h.Logger.Error("Report: write failed", "error", err)
	}
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.Service.Cancel(token); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
