package record

import "time"

// CourseRecord is one employee's training record for one course, keyed by
// (course_id, employee_id). Employee attributes are denormalized at write
// time for reporting. CompletedRaw keeps the text exactly as imported;
// CompletedDate is its normalized form and ExpiryDate is completed plus the
// course validity window, both maintained on every write so aggregation can
// run on plain date comparisons.
type CourseRecord struct {
	CourseID      int64      `gorm:"column:course_id;primaryKey"`
	EmployeeID    string     `gorm:"column:employee_id;primaryKey"`
	EmployeeName  string     `gorm:"column:employee_name"`
	CostCenter    string     `gorm:"column:cost_center"`
	Position      string     `gorm:"column:position"`
	Department    string     `gorm:"column:department"`
	CompletedRaw  string     `gorm:"column:completed_raw"`
	CompletedDate *time.Time `gorm:"column:completed_date;type:date"`
	ExpiryDate    *time.Time `gorm:"column:expiry_date;type:date"`
	StatusLabel   string     `gorm:"column:status_label"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
