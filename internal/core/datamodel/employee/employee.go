package employee

import "time"

// Employee is the roster row. The identifier is externally supplied and
// treated as an opaque key even when it looks numeric.
type Employee struct {
	EmployeeID string    `gorm:"column:employee_id;primaryKey"`
	FullName   string    `gorm:"column:full_name;not null"`
	Fleet      string    `gorm:"column:fleet"`
	CostCenter string    `gorm:"column:cost_center"`
	Position   string    `gorm:"column:position"`
	Department string    `gorm:"column:department"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
