package dispute

import (
	"time"

	disputeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/dispute"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Dispute is one reported disagreement about recorded training, kept as
// free text the way reviewers file it.
type Dispute struct {
	ID           int64      `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Courses      string     `json:"courses"`
	CourseDates  string     `json:"course_dates"`
	Details      string     `json:"details"`
	Status       string     `json:"status"`
	ClosedBy     *string    `json:"closed_by,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type RepositoryAPI interface {
	List(status, query string, limit, offset int) ([]*disputeModel.TrainingDispute, int64, error)
	GetByID(id int64) (*disputeModel.TrainingDispute, error)
	Create(d *disputeModel.TrainingDispute) error
	Update(d *disputeModel.TrainingDispute) error
}

func FromDataModel(d *disputeModel.TrainingDispute) *Dispute {
	return &Dispute{
		ID:           d.ID,
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		Courses:      d.Courses,
		CourseDates:  d.CourseDates,
		Details:      d.Details,
		Status:       d.Status,
		ClosedBy:     d.ClosedBy,
		ClosedAt:     d.ClosedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
