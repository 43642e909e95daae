package course

import "time"

// Course is a catalog entry. CollectionName is the legacy per-course record
// table name; it no longer addresses storage but still gates availability
// (see records.ValidCollectionName).
type Course struct {
	ID             int64     `gorm:"primaryKey"`
	CourseCode     string    `gorm:"column:course_code;uniqueIndex;not null"`
	CourseName     string    `gorm:"column:course_name;not null"`
	ValidityMonths int       `gorm:"column:validity_months;not null;default:24"`
	CollectionName *string   `gorm:"column:collection_name"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
