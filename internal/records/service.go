package records

import (
	"log/slog"

	"github.com/frahmantamala/coursetrack/internal"
	"github.com/frahmantamala/coursetrack/internal/core/common/dateparse"
	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
	employeeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/employee"
	recordModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/record"
)

type EmployeeDirectory interface {
	GetActive(employeeID string) (*employeeModel.Employee, error)
}

type CourseCatalog interface {
	GetByID(id int64) (*courseModel.Course, error)
}

// Service is the manual single-record update path. Bulk writes go through
// the import pipeline; both end at the same Upsert.
type Service struct {
	repo      RepositoryAPI
	employees EmployeeDirectory
	courses   CourseCatalog
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeDirectory, courses CourseCatalog, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		courses:   courses,
		logger:    logger,
	}
}

// UpdateEmployeeRecords applies the submitted per-course rows for one
// employee. Employee attributes are snapshotted from the roster at write
// time. A row that fails is logged and skipped; the rest still apply.
func (s *Service) UpdateEmployeeRecords(employeeID string, updates []RecordUpdateDTO) (*UpdateRecordsResponse, error) {
	emp, err := s.employees.GetActive(employeeID)
	if err != nil {
		s.logger.Warn("record update for unknown employee", "employee_id", employeeID)
		return nil, internal.ErrEmployeeNotFound
	}

	resp := &UpdateRecordsResponse{EmployeeID: employeeID}

	for _, u := range updates {
		if u.IsEmpty() {
			resp.Skipped++
			continue
		}

		course, err := s.courses.GetByID(u.CourseID)
		if err != nil || !course.IsActive {
			s.logger.Warn("record update for unknown or inactive course", "course_id", u.CourseID, "employee_id", employeeID)
			resp.Skipped++
			continue
		}
		if !ValidCollectionName(course.CollectionName) {
			s.logger.Warn("record update for unavailable course", "course_id", u.CourseID, "course_code", course.CourseCode)
			resp.Skipped++
			continue
		}

		completed, detail := dateparse.NormalizeDetail(u.TakenDate)
		if detail == dateparse.DetailMalformed {
			s.logger.Warn("unparseable completion date on manual update",
				"employee_id", employeeID,
				"course_id", u.CourseID,
				"raw", u.TakenDate)
		}

		rec := &recordModel.CourseRecord{
			CourseID:     course.ID,
			EmployeeID:   employeeID,
			EmployeeName: emp.FullName,
			CostCenter:   emp.CostCenter,
			Position:     emp.Position,
			Department:   emp.Department,
			CompletedRaw: u.TakenDate,
			StatusLabel:  u.Status,
		}
		if detail == dateparse.DetailParsed {
			rec.CompletedDate = &completed
			rec.ExpiryDate = ExpiryFor(&completed, course.ValidityMonths)
		}

		if err := s.repo.Upsert(rec); err != nil {
			s.logger.Error("record upsert failed", "error", err, "employee_id", employeeID, "course_id", course.ID)
			resp.Skipped++
			continue
		}
		resp.Updated++
	}

	s.logger.Info("manual record update applied",
		"employee_id", employeeID,
		"updated", resp.Updated,
		"skipped", resp.Skipped)

	return resp, nil
}
