package compliance

import (
	employeeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/employee"
)

type EmployeeDTO struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Fleet      string `json:"fleet,omitempty"`
	CostCenter string `json:"cost_center,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
}

func toEmployeeDTO(emp *employeeModel.Employee) EmployeeDTO {
	return EmployeeDTO{
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Fleet:      emp.Fleet,
		CostCenter: emp.CostCenter,
		Position:   emp.Position,
		Department: emp.Department,
	}
}

// Summary tallies rows per gap type for the header widgets.
type Summary struct {
	Current     int `json:"current"`
	ToBeExpired int `json:"to_be_expired"`
	Expired     int `json:"expired"`
	NotTaken    int `json:"not_taken"`
	Unavailable int `json:"unavailable"`
}

func (s *Summary) count(gap GapType) {
	switch gap {
	case GapOK:
		s.Current++
	case GapToBe:
		s.ToBeExpired++
	case GapExpired:
		s.Expired++
	case GapInitial:
		s.NotTaken++
	case GapNA:
		s.Unavailable++
	}
}

type EmployeeStatusResponse struct {
	Employee    EmployeeDTO     `json:"employee"`
	HorizonDays int             `json:"horizon_days"`
	Summary     Summary         `json:"summary"`
	Rows        []ComplianceRow `json:"courses"`
}
