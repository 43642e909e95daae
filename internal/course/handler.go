package course

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/coursetrack/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListCourses(includeInactive bool) ([]*Course, error)
	GetCourse(id int64) (*Course, error)
	CreateCourse(dto CreateCourseDTO) (*Course, error)
	UpdateCourse(id int64, dto UpdateCourseDTO) (*Course, error)
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

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	courses, err := h.Service.ListCourses(includeInactive)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	course, err := h.Service.GetCourse(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, course)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var dto CreateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateCourse: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.Service.CreateCourse(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, course)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	var dto UpdateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCourse: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.Service.UpdateCourse(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, course)
}
