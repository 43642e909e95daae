package employee

import (
	"strings"

	"github.com/frahmantamala/coursetrack/internal"
)

type UpsertEmployeeDTO struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Fleet      string `json:"fleet"`
	CostCenter string `json:"cost_center"`
	Position   string `json:"position"`
	Department string `json:"department"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

func (d *UpsertEmployeeDTO) Validate() error {
	d.EmployeeID = CleanEmployeeID(d.EmployeeID)
	d.FullName = strings.TrimSpace(d.FullName)

	if d.EmployeeID == "" {
		return internal.NewValidationError("employee_id is required", internal.ErrCodeValidationFailed)
	}
	if d.FullName == "" {
		return internal.NewValidationError("full_name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ListEmployeesResponse struct {
	Employees []*Employee `json:"employees"`
	Total     int64       `json:"total"`
	Page      int         `json:"page"`
	PageSize  int         `json:"page_size"`
}

// ImportResult summarizes one roster CSV upload.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// CleanEmployeeID trims whitespace and strips the ".0" suffix spreadsheet
// exports append to numeric badge numbers.
func CleanEmployeeID(raw string) string {
	id := strings.TrimSpace(raw)
	if strings.HasSuffix(id, ".0") && isDigits(id[:len(id)-2]) {
		id = id[:len(id)-2]
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
