package postgres

import (
	"time"

	disputeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/dispute"
	"github.com/frahmantamala/coursetrack/internal/dispute"
	"gorm.io/gorm"
)

type DisputeRepository struct {
	db *gorm.DB
}

func NewDisputeRepository(db *gorm.DB) dispute.RepositoryAPI {
	return &DisputeRepository{db: db}
}

func (r *DisputeRepository) List(status, query string, limit, offset int) ([]*disputeModel.TrainingDispute, int64, error) {
	tx := r.db.Model(&disputeModel.TrainingDispute{})

	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("employee_id LIKE ? OR employee_name LIKE ? OR courses LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var disputes []*disputeModel.TrainingDispute
	err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&disputes).Error
	return disputes, total, err
}

func (r *DisputeRepository) GetByID(id int64) (*disputeModel.TrainingDispute, error) {
	var d disputeModel.TrainingDispute
	if err := r.db.First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DisputeRepository) Create(d *disputeModel.TrainingDispute) error {
	return r.db.Create(d).Error
}

func (r *DisputeRepository) Update(d *disputeModel.TrainingDispute) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}
