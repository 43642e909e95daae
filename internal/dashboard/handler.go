package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/frahmantamala/coursetrack/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetStats(ctx context.Context, horizonDays int) (*Stats, error)
	CourseEmployees(courseID int64, gapType string, horizonDays, page int) (*DrillDownResponse, error)
	ExportCourseEmployees(courseID int64, gapType string, horizonDays int, w io.Writer) error
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

func (h *Handler) horizon(r *http.Request) int {
	if raw := r.URL.Query().Get("to_be_days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return h.DefaultHorizon
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context(), h.horizon(r))
	if err != nil {
		h.Logger.Error("GetStats: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) CourseEmployees(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	resp, err := h.Service.CourseEmployees(courseID, r.URL.Query().Get("type"), h.horizon(r), page)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ExportCourseEmployees(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	gapType := r.URL.Query().Get("type")

	// Buffer the CSV so validation failures still produce a JSON error
	// instead of a half-written attachment.
	var buf bytes.Buffer
	if err := h.Service.ExportCourseEmployees(courseID, gapType, h.horizon(r), &buf); err != nil {
		h.Logger.Error("ExportCourseEmployees: export failed", "error", err, "course_id", courseID)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="course_%d_%s.csv"`, courseID, gapType))
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("ExportCourseEmployees: write failed", "error", err)
	}
}
