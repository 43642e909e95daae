package dispute_test

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	disputeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/dispute"
	"github.com/frahmantamala/coursetrack/internal/dispute"
)

func TestDisputeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dispute Service Suite")
}

type mockDisputeRepo struct {
	disputes map[int64]*disputeModel.TrainingDispute
	nextID   int64
}

func newMockDisputeRepo() *mockDisputeRepo {
	return &mockDisputeRepo{disputes: make(map[int64]*disputeModel.TrainingDispute), nextID: 1}
}

func (m *mockDisputeRepo) List(status, query string, limit, offset int) ([]*disputeModel.TrainingDispute, int64, error) {
	var matched []*disputeModel.TrainingDispute
	for _, d := range m.disputes {
		if status != "" && d.Status != status {
			continue
		}
		if query != "" && !strings.Contains(d.EmployeeName, query) && !strings.Contains(d.EmployeeID, query) {
			continue
		}
		matched = append(matched, d)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockDisputeRepo) GetByID(id int64) (*disputeModel.TrainingDispute, error) {
	d, ok := m.disputes[id]
	if !ok {
		return nil, errors.New("dispute not found")
	}
	return d, nil
}

func (m *mockDisputeRepo) Create(d *disputeModel.TrainingDispute) error {
	d.ID = m.nextID
	m.nextID++
	m.disputes[d.ID] = d
	return nil
}

func (m *mockDisputeRepo) Update(d *disputeModel.TrainingDispute) error {
	m.disputes[d.ID] = d
	return nil
}

var _ = Describe("DisputeService", func() {
	var (
		service *dispute.Service
		repo    *mockDisputeRepo
	)

	BeforeEach(func() {
		repo = newMockDisputeRepo()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = dispute.NewService(repo, logger)
	})

	Describe("CreateDispute", func() {
		It("should create an open dispute", func() {
			created, err := service.CreateDispute(dispute.CreateDisputeDTO{
				EmployeeID:   "E100",
				EmployeeName: "Dana Putra",
				Courses:      "Fire Safety",
				Details:      "Completed in 2024, not recorded",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal(dispute.StatusOpen))
			Expect(created.ClosedBy).To(BeNil())
		})

		It("should reject a dispute without details", func() {
			_, err := service.CreateDispute(dispute.CreateDisputeDTO{
				EmployeeID: "E100", EmployeeName: "Dana Putra",
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ToggleDispute", func() {
		var created *dispute.Dispute

		BeforeEach(func() {
			var err error
			created, err = service.CreateDispute(dispute.CreateDisputeDTO{
				EmployeeID: "E100", EmployeeName: "Dana Putra", Details: "missing record",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should close an open dispute and stamp the acting admin", func() {
			toggled, err := service.ToggleDispute(created.ID, "admin@site")

			Expect(err).ToNot(HaveOccurred())
			Expect(toggled.Status).To(Equal(dispute.StatusClosed))
			Expect(toggled.ClosedBy).ToNot(BeNil())
			Expect(*toggled.ClosedBy).To(Equal("admin@site"))
			Expect(toggled.ClosedAt).ToNot(BeNil())
		})

		It("should reopen a closed dispute and clear the close stamp", func() {
			_, err := service.ToggleDispute(created.ID, "admin@site")
			Expect(err).ToNot(HaveOccurred())

			toggled, err := service.ToggleDispute(created.ID, "someone@else")

			Expect(err).ToNot(HaveOccurred())
			Expect(toggled.Status).To(Equal(dispute.StatusOpen))
			Expect(toggled.ClosedBy).To(BeNil())
			Expect(toggled.ClosedAt).To(BeNil())
		})

		It("should return not found for an unknown dispute", func() {
			_, err := service.ToggleDispute(9999, "admin@site")

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListDisputes", func() {
		BeforeEach(func() {
			for _, name := range []string{"Dana Putra", "Budi Santoso"} {
				_, err := service.CreateDispute(dispute.CreateDisputeDTO{
					EmployeeID: "E-" + name, EmployeeName: name, Details: "x",
				})
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should filter by status", func() {
			_, err := service.ToggleDispute(1, "admin@site")
			Expect(err).ToNot(HaveOccurred())

			open, err := service.ListDisputes("open", "", 1, 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(open.Total).To(Equal(int64(1)))

			closed, err := service.ListDisputes("closed", "", 1, 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(closed.Total).To(Equal(int64(1)))
		})

		It("should reject an unknown status filter", func() {
			_, err := service.ListDisputes("resolved", "", 1, 10)

			Expect(err).To(HaveOccurred())
		})

		It("should search by employee name", func() {
			resp, err := service.ListDisputes("", "Budi", 1, 10)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Total).To(Equal(int64(1)))
			Expect(resp.Disputes[0].EmployeeName).To(Equal("Budi Santoso"))
		})
	})
})
