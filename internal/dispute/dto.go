package dispute

import (
	"strings"

	"github.com/frahmantamala/coursetrack/internal"
)

type CreateDisputeDTO struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Courses      string `json:"courses"`
	CourseDates  string `json:"course_dates"`
	Details      string `json:"details"`
}

func (d *CreateDisputeDTO) Validate() error {
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
	d.EmployeeName = strings.TrimSpace(d.EmployeeName)

	if d.EmployeeID == "" {
		return internal.NewValidationError("employee_id is required", internal.ErrCodeValidationFailed)
	}
	if d.EmployeeName == "" {
		return internal.NewValidationError("employee_name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Details) == "" {
		return internal.NewValidationError("details are required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ListDisputesResponse struct {
	Disputes []*Dispute `json:"disputes"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}
