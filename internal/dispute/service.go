package dispute

import (
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/coursetrack/internal"
	disputeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/dispute"
)

const defaultPageSize = 50

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListDisputes(status, query string, page, pageSize int) (*ListDisputesResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && status != StatusOpen && status != StatusClosed {
		return nil, internal.NewValidationError("status must be open or closed", internal.ErrCodeValidationFailed)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > defaultPageSize {
		pageSize = defaultPageSize
	}

	models, total, err := s.repo.List(status, strings.TrimSpace(query), pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("dispute list query failed", "error", err)
		return nil, internal.NewInternalError("could not list disputes", err)
	}

	disputes := make([]*Dispute, 0, len(models))
	for _, m := range models {
		disputes = append(disputes, FromDataModel(m))
	}

	return &ListDisputesResponse{
		Disputes: disputes,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Service) CreateDispute(dto CreateDisputeDTO) (*Dispute, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &disputeModel.TrainingDispute{
		EmployeeID:   dto.EmployeeID,
		EmployeeName: dto.EmployeeName,
		Courses:      strings.TrimSpace(dto.Courses),
		CourseDates:  strings.TrimSpace(dto.CourseDates),
		Details:      strings.TrimSpace(dto.Details),
		Status:       StatusOpen,
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("dispute create failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("could not create dispute", err)
	}

	s.logger.Info("dispute created", "dispute_id", model.ID, "employee_id", model.EmployeeID)
	return FromDataModel(model), nil
}

// ToggleDispute flips a dispute between open and closed. Closing stamps the
// acting admin and the close time; reopening clears both.
func (s *Service) ToggleDispute(id int64, adminName string) (*Dispute, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrDisputeNotFound
	}

	if model.Status == StatusOpen {
		now := time.Now()
		model.Status = StatusClosed
		model.ClosedBy = &adminName
		model.ClosedAt = &now
	} else {
		model.Status = StatusOpen
		model.ClosedBy = nil
		model.ClosedAt = nil
	}

	if err := s.repo.Update(model); err != nil {
		s.logger.Error("dispute toggle failed", "error", err, "dispute_id", id)
		return nil, internal.NewInternalError("could not update dispute", err)
	}

	s.logger.Info("dispute toggled", "dispute_id", id, "status", model.Status, "by", adminName)
	return FromDataModel(model), nil
}
