package course

import (
	"log/slog"
	"strings"

	"github.com/frahmantamala/coursetrack/internal"
	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
	"github.com/frahmantamala/coursetrack/internal/records"
)

type Service struct {
	repo       RepositoryAPI
	recordRepo records.RepositoryAPI
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, recordRepo records.RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		recordRepo: recordRepo,
		logger:     logger,
	}
}

func (s *Service) ListCourses(includeInactive bool) ([]*Course, error) {
	var (
		models []*courseModel.Course
		err    error
	)
	if includeInactive {
		models, err = s.repo.ListAll()
	} else {
		models, err = s.repo.ListActive()
	}
	if err != nil {
		s.logger.Error("course list query failed", "error", err)
		return nil, internal.NewInternalError("could not list courses", err)
	}

	courses := make([]*Course, 0, len(models))
	for _, m := range models {
		courses = append(courses, FromDataModel(m))
	}
	return courses, nil
}

func (s *Service) GetCourse(id int64) (*Course, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrCourseNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) CreateCourse(dto CreateCourseDTO) (*Course, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByCode(dto.CourseCode); err == nil && existing != nil {
		return nil, internal.ErrDuplicateCourse
	}

	model := &courseModel.Course{
		CourseCode:     dto.CourseCode,
		CourseName:     dto.CourseName,
		ValidityMonths: dto.ValidityMonths,
		CollectionName: dto.CollectionName,
		IsActive:       true,
	}
	if model.CollectionName == nil {
		name := defaultCollectionName(dto.CourseCode)
		model.CollectionName = &name
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("course create failed", "error", err, "course_code", dto.CourseCode)
		return nil, internal.NewInternalError("could not create course", err)
	}

	s.logger.Info("course created", "course_id", model.ID, "course_code", model.CourseCode)
	return FromDataModel(model), nil
}

// UpdateCourse applies partial changes. Changing the validity window rewrites
// the denormalized expiry date of every record of the course so aggregate
// queries keep comparing plain dates.
func (s *Service) UpdateCourse(id int64, dto UpdateCourseDTO) (*Course, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrCourseNotFound
	}

	oldValidity := model.ValidityMonths
	if dto.CourseName != nil {
		model.CourseName = strings.TrimSpace(*dto.CourseName)
	}
	if dto.ValidityMonths != nil {
		model.ValidityMonths = *dto.ValidityMonths
	}
	if dto.CollectionName != nil {
		model.CollectionName = dto.CollectionName
	}
	if dto.IsActive != nil {
		model.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(model); err != nil {
		s.logger.Error("course update failed", "error", err, "course_id", id)
		return nil, internal.NewInternalError("could not update course", err)
	}

	if model.ValidityMonths != oldValidity {
		s.recomputeExpiries(model)
	}

	return FromDataModel(model), nil
}

func (s *Service) recomputeExpiries(model *courseModel.Course) {
	recs, err := s.recordRepo.ListForCourse(model.ID)
	if err != nil {
		s.logger.Error("expiry recompute: record fetch failed", "error", err, "course_id", model.ID)
		return
	}

	var rewritten int
	for _, rec := range recs {
		if rec.CompletedDate == nil {
			continue
		}
		rec.ExpiryDate = records.ExpiryFor(rec.CompletedDate, model.ValidityMonths)
		if err := s.recordRepo.Upsert(rec); err != nil {
			s.logger.Error("expiry recompute: upsert failed", "error", err, "course_id", model.ID, "employee_id", rec.EmployeeID)
			continue
		}
		rewritten++
	}

	s.logger.Info("expiry dates recomputed after validity change",
		"course_id", model.ID,
		"validity_months", model.ValidityMonths,
		"records", rewritten)
}

func defaultCollectionName(code string) string {
	slug := strings.ToLower(strings.TrimSpace(code))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, slug)
	return "course_records_" + slug
}
