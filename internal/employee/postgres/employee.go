package postgres

import (
	"errors"
	"time"

	employeeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/employee"
	"github.com/frahmantamala/coursetrack/internal/employee"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Search(query string, limit, offset int) ([]*employeeModel.Employee, int64, error) {
	tx := r.db.Model(&employeeModel.Employee{}).Where("is_active = ?", true)

	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where(
			"employee_id LIKE ? OR full_name LIKE ? OR position LIKE ? OR department LIKE ? OR fleet LIKE ? OR cost_center LIKE ?",
			like, like, like, like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var emps []*employeeModel.Employee
	err := tx.Order("employee_id").Limit(limit).Offset(offset).Find(&emps).Error
	return emps, total, err
}

func (r *EmployeeRepository) Get(employeeID string) (*employeeModel.Employee, error) {
	var emp employeeModel.Employee
	err := r.db.First(&emp, "employee_id = ?", employeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetActive(employeeID string) (*employeeModel.Employee, error) {
	var emp employeeModel.Employee
	err := r.db.First(&emp, "employee_id = ? AND is_active = ?", employeeID, true).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) Upsert(emp *employeeModel.Employee) error {
	emp.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "fleet", "cost_center", "position", "department",
			"is_active", "updated_at",
		}),
	}).Create(emp).Error
}

func (r *EmployeeRepository) ListActive() ([]*employeeModel.Employee, error) {
	var emps []*employeeModel.Employee
	err := r.db.
		Where("is_active = ?", true).
		Order("employee_id").
		Find(&emps).Error
	return emps, err
}
