package employee

import (
	"time"

	employeeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/employee"
)

// Employee is one roster entry. EmployeeID is the external badge number and
// the natural key everywhere records reference an employee.
type Employee struct {
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Fleet      string    `json:"fleet,omitempty"`
	CostCenter string    `json:"cost_center,omitempty"`
	Position   string    `json:"position,omitempty"`
	Department string    `json:"department,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RepositoryAPI interface {
	// Search matches the query against id, name, position, department,
	// fleet and cost center. An empty query lists everyone.
	Search(query string, limit, offset int) ([]*employeeModel.Employee, int64, error)
	Get(employeeID string) (*employeeModel.Employee, error)
	GetActive(employeeID string) (*employeeModel.Employee, error)
	Upsert(emp *employeeModel.Employee) error
	ListActive() ([]*employeeModel.Employee, error)
}

func FromDataModel(e *employeeModel.Employee) *Employee {
	return &Employee{
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName,
		Fleet:      e.Fleet,
		CostCenter: e.CostCenter,
		Position:   e.Position,
		Department: e.Department,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
