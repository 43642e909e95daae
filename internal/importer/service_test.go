package importer_test

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/coursetrack/internal"
	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
	recordModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/record"
	"github.com/frahmantamala/coursetrack/internal/importer"
)

func TestImporter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Importer Suite")
}

type mockCourseCatalog struct {
	courses map[int64]*courseModel.Course
}

func (m *mockCourseCatalog) GetByID(id int64) (*courseModel.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, errors.New("course not found")
	}
	return c, nil
}

type mockRecordRepo struct {
	upserts map[string]*recordModel.CourseRecord
	failIDs map[string]bool
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{
		upserts: make(map[string]*recordModel.CourseRecord),
		failIDs: make(map[string]bool),
	}
}

func (m *mockRecordRepo) Lookup(courseID int64, employeeID string) (*recordModel.CourseRecord, error) {
	return m.upserts[employeeID], nil
}

func (m *mockRecordRepo) Upsert(rec *recordModel.CourseRecord) error {
	if m.failIDs[rec.EmployeeID] {
		return errors.New("constraint violation")
	}
	m.upserts[rec.EmployeeID] = rec
	return nil
}

func (m *mockRecordRepo) ListForCourse(courseID int64) ([]*recordModel.CourseRecord, error) {
	return nil, nil
}

func collection(name string) *string {
	return &name
}

const validCSV = "employee_id,full_name,cost_center,position,department,taken_date,status\n" +
	"E100,Dana Putra,CC1,Technician,Operations,1-Sep-23,valid\n" +
	"E200,Budi Santoso,CC2,Engineer,Engineering,15th March 2024,overdue\n" +
	",Nameless Person,CC1,Technician,Operations,1-Sep-23,valid\n" +
	"E300,Short Row\n"

var _ = Describe("ImporterService", func() {
	var (
		service *importer.Service
		store   *importer.SessionStore
		catalog *mockCourseCatalog
		repo    *mockRecordRepo
	)

	newServiceWithTTL := func(ttl time.Duration) *importer.Service {
		store = importer.NewSessionStore(ttl)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		return importer.NewService(store, catalog, repo, logger)
	}

	BeforeEach(func() {
		catalog = &mockCourseCatalog{courses: map[int64]*courseModel.Course{
			1: {ID: 1, CourseCode: "SAFETY-01", CourseName: "Fire Safety", ValidityMonths: 24, IsActive: true, CollectionName: collection("course_records_fire_safety")},
			2: {ID: 2, CourseCode: "BROKEN", CourseName: "Broken Course", ValidityMonths: 12, IsActive: true, CollectionName: collection("not a collection")},
		}}
		repo = newMockRecordRepo()
		service = newServiceWithTTL(30 * time.Minute)
	})

	Describe("Preview", func() {
		It("should parse rows and collect skip diagnostics without writing", func() {
			resp, err := service.Preview(1, strings.NewReader(validCSV))

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Token).ToNot(BeEmpty())
			Expect(resp.Rows).To(HaveLen(2))
			Expect(resp.Skipped).To(HaveLen(2))
			Expect(repo.upserts).To(BeEmpty())

			Expect(resp.Rows[0].EmployeeID).To(Equal("E100"))
			Expect(resp.Rows[0].TakenDate).ToNot(BeNil())
			Expect(resp.Rows[0].Status).To(Equal("Current"))

			Expect(resp.Rows[1].Status).To(Equal("Expired"))
			Expect(resp.Rows[1].Inactive).To(BeTrue())

			Expect(resp.Skipped[0].Reason).To(Equal("missing employee ID"))
			Expect(resp.Skipped[1].Reason).To(Equal("not enough columns"))
		})

		It("should accept header variations in case and spacing only", func() {
			csv := "Employee ID,Full Name,Cost Center,Position,Department,Taken Date,Status\n" +
				"E100,Dana Putra,CC1,Technician,Operations,1-Sep-23,valid\n"

			resp, err := service.Preview(1, strings.NewReader(csv))

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Rows).To(HaveLen(1))
		})

		It("should reject a reordered header wholesale", func() {
			csv := "full_name,employee_id,cost_center,position,department,taken_date,status\n" +
				"Dana Putra,E100,CC1,Technician,Operations,1-Sep-23,valid\n"

			_, err := service.Preview(1, strings.NewReader(csv))

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidHeader))
		})

		It("should reject an unavailable course before reading any rows", func() {
			_, err := service.Preview(2, strings.NewReader(validCSV))

			Expect(err).To(Equal(internal.ErrCourseUnavailable))
		})
	})

	Describe("Confirm", func() {
		It("should upsert every previewed row and report counts", func() {
			preview, err := service.Preview(1, strings.NewReader(validCSV))
			Expect(err).ToNot(HaveOccurred())

			resp, err := service.Confirm(preview.Token)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Result.Saved).To(Equal(2))
			Expect(resp.Result.Failed).To(Equal(0))
			Expect(resp.Result.Skipped).To(Equal(2))

			rec := repo.upserts["E100"]
			Expect(rec).ToNot(BeNil())
			Expect(rec.CourseID).To(Equal(int64(1)))
			Expect(rec.CompletedRaw).To(Equal("1-Sep-23"))
			Expect(rec.CompletedDate).ToNot(BeNil())
			Expect(*rec.ExpiryDate).To(Equal(rec.CompletedDate.AddDate(0, 24, 0)))
		})

		It("should record per-row failures and keep going", func() {
			repo.failIDs["E100"] = true

			preview, err := service.Preview(1, strings.NewReader(validCSV))
			Expect(err).ToNot(HaveOccurred())

			resp, err := service.Confirm(preview.Token)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Result.Saved).To(Equal(1))
			Expect(resp.Result.Failed).To(Equal(1))
			Expect(repo.upserts).To(HaveKey("E200"))
		})

		It("should reject confirming the same session twice", func() {
			preview, err := service.Preview(1, strings.NewReader(validCSV))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Confirm(preview.Token)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Confirm(preview.Token)
			Expect(err).To(Equal(internal.ErrImportSessionState))
		})

		It("should reject an unknown token", func() {
			_, err := service.Confirm("no-such-token")

			Expect(err).To(Equal(internal.ErrImportSessionNotFound))
		})

		It("should reject an expired session", func() {
			service = newServiceWithTTL(10 * time.Millisecond)

			preview, err := service.Preview(1, strings.NewReader(validCSV))
			Expect(err).ToNot(HaveOccurred())

			time.Sleep(25 * time.Millisecond)

			_, err = service.Confirm(preview.Token)
			Expect(err).To(Equal(internal.ErrImportSessionNotFound))
		})
	})

	Describe("Report", func() {
		It("should hand out each report exactly once", func() {
			repo.failIDs["E100"] = true
			preview, err := service.Preview(1, strings.NewReader(validCSV))
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Confirm(preview.Token)
			Expect(err).ToNot(HaveOccurred())

			report, err := service.Report(preview.Token, "failed")
			Expect(err).ToNot(HaveOccurred())
			Expect(report).To(ContainSubstring("E100"))
			Expect(report).To(ContainSubstring("constraint violation"))

			_, err = service.Report(preview.Token, "failed")
			Expect(err).To(Equal(internal.ErrReportNotAvailable))

			skipped, err := service.Report(preview.Token, "skipped")
			Expect(err).ToNot(HaveOccurred())
			Expect(skipped).To(ContainSubstring("missing employee ID"))
		})

		It("should reject a report before confirm", func() {
			preview, err := service.Preview(1, strings.NewReader(validCSV))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Report(preview.Token, "failed")
			Expect(err).To(Equal(internal.ErrImportSessionState))
		})
	})

	Describe("Cancel", func() {
		It("should discard the preview with no side effects", func() {
			preview, err := service.Preview(1, strings.NewReader(validCSV))
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Cancel(preview.Token)).To(Succeed())
			Expect(repo.upserts).To(BeEmpty())

			_, err = service.Confirm(preview.Token)
			Expect(err).To(Equal(internal.ErrImportSessionNotFound))
		})
	})
})
