package compliance

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/coursetrack/internal"
	"github.com/frahmantamala/coursetrack/internal/core/common/dateparse"
	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
	employeeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/employee"
	recordModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/record"
	"github.com/frahmantamala/coursetrack/internal/records"
)

type EmployeeRepository interface {
	GetActive(employeeID string) (*employeeModel.Employee, error)
}

type CourseRepository interface {
	ListActive() ([]*courseModel.Course, error)
}

type RecordStore interface {
	Lookup(courseID int64, employeeID string) (*recordModel.CourseRecord, error)
}

// Service answers per-employee status queries across the active catalog.
type Service struct {
	employees EmployeeRepository
	courses   CourseRepository
	store     RecordStore
	logger    *slog.Logger
}

func NewService(employees EmployeeRepository, courses CourseRepository, store RecordStore, logger *slog.Logger) *Service {
	return &Service{
		employees: employees,
		courses:   courses,
		store:     store,
		logger:    logger,
	}
}

// EmployeeStatus returns one classified row per active course for the given
// employee. A course whose record collection is unavailable, or whose lookup
// fails, degrades to an N/A row rather than failing the whole query.
func (s *Service) EmployeeStatus(employeeID string, horizonDays int) (*EmployeeStatusResponse, error) {
	emp, err := s.employees.GetActive(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	courses, err := s.courses.ListActive()
	if err != nil {
		s.logger.Error("course catalog query failed", "error", err)
		return nil, internal.NewInternalError("could not load course catalog", err)
	}

	now := time.Now()
	resp := &EmployeeStatusResponse{
		Employee:    toEmployeeDTO(emp),
		HorizonDays: horizonDays,
		Rows:        make([]ComplianceRow, 0, len(courses)),
	}

	for _, course := range courses {
		row := ComplianceRow{
			CourseID:   course.ID,
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
		}

		if !records.ValidCollectionName(course.CollectionName) {
			row.Status = StatusNA
			row.GapType = GapNA
			resp.Rows = append(resp.Rows, row)
			resp.Summary.count(GapNA)
			continue
		}

		rec, err := s.store.Lookup(course.ID, employeeID)
		if err != nil {
			s.logger.Error("record lookup failed", "error", err, "course_id", course.ID, "employee_id", employeeID)
			row.Status = StatusNA
			row.GapType = GapNA
			resp.Rows = append(resp.Rows, row)
			resp.Summary.count(GapNA)
			continue
		}

		if rec == nil {
			row.Status = StatusNotTaken
			row.GapType = GapInitial
			resp.Rows = append(resp.Rows, row)
			resp.Summary.count(GapInitial)
			continue
		}

		completed := completionDate(rec)
		result := Classify(completed, course.ValidityMonths, horizonDays, rec.StatusLabel, now)

		row.CompletedRaw = rec.CompletedRaw
		row.Completed = completed
		row.Expiry = result.Expiry
		row.Status = result.Status
		row.GapType = result.GapType
		resp.Rows = append(resp.Rows, row)
		resp.Summary.count(result.GapType)
	}

	return resp, nil
}

// completionDate prefers the normalized column and falls back to parsing the
// raw text for rows written before the column existed.
func completionDate(rec *recordModel.CourseRecord) *time.Time {
	if rec.CompletedDate != nil {
		return rec.CompletedDate
	}
	if parsed, ok := dateparse.Normalize(rec.CompletedRaw); ok {
		return &parsed
	}
	return nil
}
