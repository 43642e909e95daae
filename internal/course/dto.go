package course

import (
	"strings"

	"github.com/frahmantamala/coursetrack/internal"
)

const (
	minValidityMonths = 1
	maxValidityMonths = 120
)

type CreateCourseDTO struct {
	CourseCode     string  `json:"course_code"`
	CourseName     string  `json:"course_name"`
	ValidityMonths int     `json:"validity_months"`
	CollectionName *string `json:"collection_name,omitempty"`
}

func (d *CreateCourseDTO) Validate() error {
	d.CourseCode = strings.TrimSpace(d.CourseCode)
	d.CourseName = strings.TrimSpace(d.CourseName)

	if d.CourseCode == "" {
		return internal.NewValidationError("course_code is required", internal.ErrCodeValidationFailed)
	}
	if d.CourseName == "" {
		return internal.NewValidationError("course_name is required", internal.ErrCodeValidationFailed)
	}
	if d.ValidityMonths < minValidityMonths || d.ValidityMonths > maxValidityMonths {
		return internal.NewValidationError("validity_months must be between 1 and 120", internal.ErrCodeInvalidValidity)
	}
	return nil
}

// UpdateCourseDTO carries partial updates; nil fields stay untouched.
type UpdateCourseDTO struct {
	CourseName     *string `json:"course_name,omitempty"`
	ValidityMonths *int    `json:"validity_months,omitempty"`
	CollectionName *string `json:"collection_name,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

func (d *UpdateCourseDTO) Validate() error {
	if d.CourseName != nil && strings.TrimSpace(*d.CourseName) == "" {
		return internal.NewValidationError("course_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.ValidityMonths != nil && (*d.ValidityMonths < minValidityMonths || *d.ValidityMonths > maxValidityMonths) {
		return internal.NewValidationError("validity_months must be between 1 and 120", internal.ErrCodeInvalidValidity)
	}
	return nil
}
