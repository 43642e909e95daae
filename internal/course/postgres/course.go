package postgres

import (
	"time"

	"github.com/frahmantamala/coursetrack/internal/course"
	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) course.RepositoryAPI {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) ListAll() ([]*courseModel.Course, error) {
	var courses []*courseModel.Course
	err := r.db.Order("course_code").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListActive() ([]*courseModel.Course, error) {
	var courses []*courseModel.Course
	err := r.db.
		Where("is_active = ?", true).
		Order("course_code").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) GetByID(id int64) (*courseModel.Course, error) {
	var c courseModel.Course
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) GetByCode(code string) (*courseModel.Course, error) {
	var c courseModel.Course
	if err := r.db.First(&c, "course_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) Create(c *courseModel.Course) error {
	return r.db.Create(c).Error
}

func (r *CourseRepository) Update(c *courseModel.Course) error {
	c.UpdatedAt = time.Now()
	return r.db.Save(c).Error
}
