package employee

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/frahmantamala/coursetrack/internal"
	employeeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/employee"
)

const defaultPageSize = 50

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListEmployees(query string, page, pageSize int) (*ListEmployeesResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > defaultPageSize {
		pageSize = defaultPageSize
	}

	models, total, err := s.repo.Search(strings.TrimSpace(query), pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("employee search failed", "error", err, "query", query)
		return nil, internal.NewInternalError("could not search employees", err)
	}

	employees := make([]*Employee, 0, len(models))
	for _, m := range models {
		employees = append(employees, FromDataModel(m))
	}

	return &ListEmployeesResponse{
		Employees: employees,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

func (s *Service) GetEmployee(employeeID string) (*Employee, error) {
	model, err := s.repo.Get(CleanEmployeeID(employeeID))
	if err != nil || model == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return FromDataModel(model), nil
}

// UpsertEmployee creates or updates one roster entry. The same path backs
// create and edit since EmployeeID is the natural key.
func (s *Service) UpsertEmployee(dto UpsertEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &employeeModel.Employee{
		EmployeeID: dto.EmployeeID,
		FullName:   dto.FullName,
		Fleet:      strings.TrimSpace(dto.Fleet),
		CostCenter: strings.TrimSpace(dto.CostCenter),
		Position:   strings.TrimSpace(dto.Position),
		Department: strings.TrimSpace(dto.Department),
		IsActive:   true,
	}
	if dto.IsActive != nil {
		model.IsActive = *dto.IsActive
	}

	if err := s.repo.Upsert(model); err != nil {
		s.logger.Error("employee upsert failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("could not save employee", err)
	}

	return FromDataModel(model), nil
}

// rosterColumns maps normalized CSV header cells onto roster fields. Header
// matching is lenient: order does not matter and extra columns are ignored.
var rosterColumns = map[string]string{
	"employee_id": "employee_id",
	"employeeid":  "employee_id",
	"id":          "employee_id",
	"full_name":   "full_name",
	"fullname":    "full_name",
	"name":        "full_name",
	"fleet":       "fleet",
	"cost_center": "cost_center",
	"costcenter":  "cost_center",
	"position":    "position",
	"department":  "department",
	"dept":        "department",
}

// ImportCSV loads a roster CSV. Rows missing an employee ID or name are
// skipped with a per-row reason; the rest still import.
func (s *Service) ImportCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, internal.NewValidationError("could not read CSV header", internal.ErrCodeInvalidHeader)
	}

	fieldIdx := make(map[string]int)
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		key = strings.ReplaceAll(key, " ", "_")
		if field, ok := rosterColumns[key]; ok {
			if _, seen := fieldIdx[field]; !seen {
				fieldIdx[field] = i
			}
		}
	}
	if _, ok := fieldIdx["employee_id"]; !ok {
		return nil, internal.NewValidationError("CSV is missing an employee_id column", internal.ErrCodeInvalidHeader)
	}
	if _, ok := fieldIdx["full_name"]; !ok {
		return nil, internal.NewValidationError("CSV is missing a full_name column", internal.ErrCodeInvalidHeader)
	}

	result := &ImportResult{}
	rowNum := 1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: malformed CSV row", rowNum))
			continue
		}

		cell := func(field string) string {
			idx, ok := fieldIdx[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		id := CleanEmployeeID(cell("employee_id"))
		name := cell("full_name")
		if id == "" || name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing employee ID or name", rowNum))
			continue
		}

		model := &employeeModel.Employee{
			EmployeeID: id,
			FullName:   name,
			Fleet:      cell("fleet"),
			CostCenter: cell("cost_center"),
			Position:   cell("position"),
			Department: cell("department"),
			IsActive:   true,
		}

		if err := s.repo.Upsert(model); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Imported++
	}

	s.logger.Info("roster import finished", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// ExportCSV streams the active roster in the same column layout ImportCSV
// accepts, so an export can be edited and re-imported.
func (s *Service) ExportCSV(w io.Writer) error {
	models, err := s.repo.ListActive()
	if err != nil {
		s.logger.Error("roster export query failed", "error", err)
		return internal.NewInternalError("could not export roster", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"employee_id", "full_name", "fleet", "cost_center", "position", "department"}); err != nil {
		return err
	}
	for _, m := range models {
		if err := writer.Write([]string{m.EmployeeID, m.FullName, m.Fleet, m.CostCenter, m.Position, m.Department}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
