package postgres

import (
	"errors"
	"time"

	recordModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/record"
	"github.com/frahmantamala/coursetrack/internal/records"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordRepository implements records.RepositoryAPI on the normalized
// course_records table.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) records.RepositoryAPI {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Lookup(courseID int64, employeeID string) (*recordModel.CourseRecord, error) {
	var rec recordModel.CourseRecord
	err := r.db.
		Where("course_id = ? AND employee_id = ?", courseID, employeeID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert inserts or overwrites the record for (course_id, employee_id) in a
// single statement so a row is never left partially written.
func (r *RecordRepository) Upsert(rec *recordModel.CourseRecord) error {
	rec.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}, {Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"employee_name", "cost_center", "position", "department",
			"completed_raw", "completed_date", "expiry_date", "status_label",
			"updated_at",
		}),
	}).Create(rec).Error
}

func (r *RecordRepository) ListForCourse(courseID int64) ([]*recordModel.CourseRecord, error) {
	var recs []*recordModel.CourseRecord
	err := r.db.
		Where("course_id = ?", courseID).
		Order("employee_id").
		Find(&recs).Error
	return recs, err
}
