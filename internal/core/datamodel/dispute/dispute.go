package dispute

import "time"

type TrainingDispute struct {
	ID           int64      `gorm:"primaryKey"`
	EmployeeID   string     `gorm:"column:employee_id;not null"`
	EmployeeName string     `gorm:"column:employee_name"`
	Courses      string     `gorm:"column:courses"`
	CourseDates  string     `gorm:"column:course_dates"`
	Details      string     `gorm:"column:details"`
	Status       string     `gorm:"column:status;default:open"`
	ClosedBy     *string    `gorm:"column:closed_by"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	ClosedAt     *time.Time `gorm:"column:closed_at"`
}
