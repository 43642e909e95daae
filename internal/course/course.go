package course

import (
	"time"

	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
)

// Course is the catalog entry for one training. ValidityMonths drives the
// expiry computation for every record of the course; CollectionName is the
// legacy record collection identifier and still gates availability.
type Course struct {
	ID             int64     `json:"id"`
	CourseCode     string    `json:"course_code"`
	CourseName     string    `json:"course_name"`
	ValidityMonths int       `json:"validity_months"`
	CollectionName *string   `json:"collection_name,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RepositoryAPI interface {
	ListAll() ([]*courseModel.Course, error)
	ListActive() ([]*courseModel.Course, error)
	GetByID(id int64) (*courseModel.Course, error)
	GetByCode(code string) (*courseModel.Course, error)
	Create(course *courseModel.Course) error
	Update(course *courseModel.Course) error
}

func FromDataModel(c *courseModel.Course) *Course {
	return &Course{
		ID:             c.ID,
		CourseCode:     c.CourseCode,
		CourseName:     c.CourseName,
		ValidityMonths: c.ValidityMonths,
		CollectionName: c.CollectionName,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
