package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/frahmantamala/coursetrack/internal"
	"github.com/frahmantamala/coursetrack/internal/compliance"
	"github.com/frahmantamala/coursetrack/internal/core/common/dateparse"
	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
	recordModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/record"
	"github.com/frahmantamala/coursetrack/internal/employee"
	"github.com/frahmantamala/coursetrack/internal/records"
	"github.com/google/uuid"
)

// expectedHeader is the fixed record-import layout, in this exact order.
var expectedHeader = []string{
	"employee_id", "full_name", "cost_center", "position", "department", "taken_date", "status",
}

const (
	ReportFailed  = "failed"
	ReportSkipped = "skipped"
)

type CourseCatalog interface {
	GetByID(id int64) (*courseModel.Course, error)
}

// Service is the two-phase record import pipeline: Preview parses and
// validates without touching storage, Confirm upserts row by row, Cancel
// throws the preview away.
type Service struct {
	store   *SessionStore
	courses CourseCatalog
	repo    records.RepositoryAPI
	logger  *slog.Logger
}

func NewService(store *SessionStore, courses CourseCatalog, repo records.RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		courses: courses,
		repo:    repo,
		logger:  logger,
	}
}

// Preview parses a CSV upload against the fixed header and builds a pending
// session. No storage mutation happens here; a bad header aborts with no
// session at all.
func (s *Service) Preview(courseID int64, r io.Reader) (*PreviewResponse, error) {
	course, err := s.availableCourse(courseID)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, internal.NewValidationError("could not read CSV header", internal.ErrCodeInvalidHeader)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	session := &ImportSession{
		Token:      uuid.NewString(),
		CourseID:   course.ID,
		State:      StatePreviewed,
		downloaded: make(map[string]bool),
	}

	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			session.Skipped = append(session.Skipped, RowDiagnostic{RowNumber: rowNum, Reason: "malformed CSV row"})
			continue
		}
		if len(row) < len(expectedHeader) {
			session.Skipped = append(session.Skipped, RowDiagnostic{RowNumber: rowNum, Reason: "not enough columns"})
			continue
		}

		id := employee.CleanEmployeeID(row[0])
		if id == "" {
			session.Skipped = append(session.Skipped, RowDiagnostic{RowNumber: rowNum, Reason: "missing employee ID"})
			continue
		}

		preview := PreviewRow{
			RowNumber:  rowNum,
			EmployeeID: id,
			FullName:   strings.TrimSpace(row[1]),
			CostCenter: strings.TrimSpace(row[2]),
			Position:   strings.TrimSpace(row[3]),
			Department: strings.TrimSpace(row[4]),
			TakenRaw:   strings.TrimSpace(row[5]),
		}

		parsed, detail := dateparse.NormalizeDetail(preview.TakenRaw)
		switch detail {
		case dateparse.DetailParsed:
			preview.TakenDate = &parsed
		case dateparse.DetailMalformed:
			s.logger.Warn("unparseable taken date in import",
				"row", rowNum, "employee_id", id, "raw", preview.TakenRaw)
		}

		rawStatus := strings.TrimSpace(row[6])
		preview.Status = compliance.NormalizeLabel(rawStatus)
		switch strings.ToLower(rawStatus) {
		case "expired", "overdue":
			preview.Inactive = true
		}

		session.Rows = append(session.Rows, preview)
	}

	s.store.Put(session)
	s.logger.Info("import preview created",
		"token", session.Token,
		"course_id", course.ID,
		"rows", len(session.Rows),
		"skipped", len(session.Skipped))

	return newPreviewResponse(session, course), nil
}

// Confirm commits a previewed session. Each row is one atomic upsert; a
// failed row is recorded and the batch continues. Confirming a session
// twice, or after cancel or expiry, is rejected.
func (s *Service) Confirm(token string) (*ConfirmResponse, error) {
	session, err := s.store.Get(token)
	if err != nil {
		return nil, err
	}
	if session.State != StatePreviewed {
		return nil, internal.ErrImportSessionState
	}

	course, err := s.availableCourse(session.CourseID)
	if err != nil {
		return nil, err
	}

	result := &ConfirmResult{Skipped: len(session.Skipped)}
	for _, row := range session.Rows {
		rec := &recordModel.CourseRecord{
			CourseID:     course.ID,
			EmployeeID:   row.EmployeeID,
			EmployeeName: row.FullName,
			CostCenter:   row.CostCenter,
			Position:     row.Position,
			Department:   row.Department,
			CompletedRaw: row.TakenRaw,
			StatusLabel:  row.Status,
		}
		if row.TakenDate != nil {
			rec.CompletedDate = row.TakenDate
			rec.ExpiryDate = records.ExpiryFor(row.TakenDate, course.ValidityMonths)
		}

		if err := s.repo.Upsert(rec); err != nil {
			s.logger.Error("import row upsert failed",
				"error", err, "row", row.RowNumber, "employee_id", row.EmployeeID)
			session.Failed = append(session.Failed, RowDiagnostic{
				RowNumber:  row.RowNumber,
				EmployeeID: row.EmployeeID,
				Reason:     err.Error(),
			})
			result.Failed++
			continue
		}
		result.Saved++
	}

	session.State = StateCommitted
	session.Result = result
	session.Rows = nil

	s.logger.Info("import confirmed",
		"token", token,
		"course_id", course.ID,
		"saved", result.Saved,
		"failed", result.Failed,
		"skipped", result.Skipped)

	return &ConfirmResponse{Token: token, Result: *result}, nil
}

// Report hands out the failed or skipped diagnostics exactly once, then
// discards them.
func (s *Service) Report(token, reportType string) (string, error) {
	session, err := s.store.Get(token)
	if err != nil {
		return "", err
	}
	if session.State != StateCommitted {
		return "", internal.ErrImportSessionState
	}

	var rows []RowDiagnostic
	switch reportType {
	case ReportFailed:
		rows = session.Failed
	case ReportSkipped:
		rows = session.Skipped
	default:
		return "", internal.NewValidationError("type must be failed or skipped", internal.ErrCodeValidationFailed)
	}

	if session.downloaded[reportType] {
		return "", internal.ErrReportNotAvailable
	}
	session.downloaded[reportType] = true

	var b strings.Builder
	for _, row := range rows {
		if row.EmployeeID != "" {
			fmt.Fprintf(&b, "row %d (%s): %s\n", row.RowNumber, row.EmployeeID, row.Reason)
		} else {
			fmt.Fprintf(&b, "row %d: %s\n", row.RowNumber, row.Reason)
		}
	}

	switch reportType {
	case ReportFailed:
		session.Failed = nil
	case ReportSkipped:
		session.Skipped = nil
	}

	return b.String(), nil
}

// Cancel discards a pending preview with no side effects.
func (s *Service) Cancel(token string) error {
	session, err := s.store.Get(token)
	if err != nil {
		return err
	}
	if session.State != StatePreviewed {
		return internal.ErrImportSessionState
	}

	session.State = StateCancelled
	s.store.Delete(token)
	s.logger.Info("import cancelled", "token", token)
	return nil
}

func (s *Service) availableCourse(courseID int64) (*courseModel.Course, error) {
	course, err := s.courses.GetByID(courseID)
	if err != nil {
		return nil, internal.ErrCourseNotFound
	}
	if !course.IsActive || !records.ValidCollectionName(course.CollectionName) {
		return nil, internal.ErrCourseUnavailable
	}
	return course, nil
}

func validateHeader(header []string) error {
	cells := make([]string, 0, len(header))
	for _, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		normalized = strings.ReplaceAll(normalized, " ", "_")
		if normalized == "" && len(cells) >= len(expectedHeader) {
			continue // trailing empty cells from spreadsheet exports
		}
		cells = append(cells, normalized)
	}

	if len(cells) != len(expectedHeader) {
		return headerError()
	}
	for i, want := range expectedHeader {
		if cells[i] != want {
			return headerError()
		}
	}
	return nil
}

func headerError() *internal.AppError {
	return internal.NewValidationError(
		"CSV header must be exactly: "+strings.Join(expectedHeader, ", "),
		internal.ErrCodeInvalidHeader,
	)
}
