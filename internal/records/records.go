package records

import (
	"regexp"
	"time"

	recordModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/record"
)

// collectionNameRe is the allow-list for legacy per-course record table
// names. Records now live in one normalized table, but the catalog still
// carries these names and a course whose name fails the pattern is treated
// as unavailable, exactly as when the name addressed a real table.
var collectionNameRe = regexp.MustCompile(`^course_records_[A-Za-z0-9_]+$`)

// ValidCollectionName reports whether a catalog-supplied collection name is
// usable. A nil or empty name means the course has no record collection.
func ValidCollectionName(name *string) bool {
	if name == nil || *name == "" {
		return false
	}
	return collectionNameRe.MatchString(*name)
}

type CourseRecord struct {
	CourseID      int64      `json:"course_id"`
	EmployeeID    string     `json:"employee_id"`
	EmployeeName  string     `json:"employee_name"`
	CostCenter    string     `json:"cost_center"`
	Position      string     `json:"position"`
	Department    string     `json:"department"`
	CompletedRaw  string     `json:"completed_raw"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	StatusLabel   string     `json:"status_label"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RepositoryAPI is the storage contract for course records. Lookup returns
// (nil, nil) when no record exists so callers can distinguish "not taken"
// from a query failure. Upsert is an atomic merge keyed by
// (course_id, employee_id); concurrent upserts for the same key resolve to
// last write wins.
type RepositoryAPI interface {
	Lookup(courseID int64, employeeID string) (*recordModel.CourseRecord, error)
	Upsert(rec *recordModel.CourseRecord) error
	ListForCourse(courseID int64) ([]*recordModel.CourseRecord, error)
}

func ToDataModel(r *CourseRecord) *recordModel.CourseRecord {
	return &recordModel.CourseRecord{
		CourseID:      r.CourseID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		CostCenter:    r.CostCenter,
		Position:      r.Position,
		Department:    r.Department,
		CompletedRaw:  r.CompletedRaw,
		CompletedDate: r.CompletedDate,
		ExpiryDate:    r.ExpiryDate,
		StatusLabel:   r.StatusLabel,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func FromDataModel(r *recordModel.CourseRecord) *CourseRecord {
	return &CourseRecord{
		CourseID:      r.CourseID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		CostCenter:    r.CostCenter,
		Position:      r.Position,
		Department:    r.Department,
		CompletedRaw:  r.CompletedRaw,
		CompletedDate: r.CompletedDate,
		ExpiryDate:    r.ExpiryDate,
		StatusLabel:   r.StatusLabel,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ExpiryFor computes the denormalized expiry for a completion date using
// calendar-month arithmetic.
func ExpiryFor(completed *time.Time, validityMonths int) *time.Time {
	if completed == nil {
		return nil
	}
	expiry := completed.AddDate(0, validityMonths, 0)
	return &expiry
}
