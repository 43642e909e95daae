package compliance_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/coursetrack/internal/compliance"
	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
	employeeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/employee"
	recordModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/record"
)

type mockEmployeeRepo struct {
	employees map[string]*employeeModel.Employee
}

func (m *mockEmployeeRepo) GetActive(employeeID string) (*employeeModel.Employee, error) {
	emp, ok := m.employees[employeeID]
	if !ok {
		return nil, errors.New("employee not found")
	}
	return emp, nil
}

type mockCourseRepo struct {
	courses []*courseModel.Course
	listErr error
}

func (m *mockCourseRepo) ListActive() ([]*courseModel.Course, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.courses, nil
}

type mockRecordStore struct {
	records    map[int64]*recordModel.CourseRecord
	failCourse int64
}

func (m *mockRecordStore) Lookup(courseID int64, employeeID string) (*recordModel.CourseRecord, error) {
	if m.failCourse != 0 && courseID == m.failCourse {
		return nil, errors.New("query failed")
	}
	return m.records[courseID], nil
}

func collection(name string) *string {
	return &name
}

var _ = Describe("ComplianceService", func() {
	var (
		service   *compliance.Service
		employees *mockEmployeeRepo
		courses   *mockCourseRepo
		store     *mockRecordStore
	)

	BeforeEach(func() {
		employees = &mockEmployeeRepo{employees: map[string]*employeeModel.Employee{
			"E100": {EmployeeID: "E100", FullName: "Dana Putra", Department: "Operations", IsActive: true},
		}}
		courses = &mockCourseRepo{courses: []*courseModel.Course{
			{ID: 1, CourseCode: "SAFETY-01", CourseName: "Fire Safety", ValidityMonths: 24, CollectionName: collection("course_records_fire_safety")},
			{ID: 2, CourseCode: "SEC-02", CourseName: "Security Awareness", ValidityMonths: 12, CollectionName: collection("course_records_security")},
		}}
		store = &mockRecordStore{records: map[int64]*recordModel.CourseRecord{}}

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = compliance.NewService(employees, courses, store, logger)
	})

	Describe("EmployeeStatus", func() {
		It("should return not found for an unknown employee", func() {
			_, err := service.EmployeeStatus("NOPE", 90)

			Expect(err).To(HaveOccurred())
		})

		It("should report missing records as not taken", func() {
			resp, err := service.EmployeeStatus("E100", 90)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Rows).To(HaveLen(2))
			for _, row := range resp.Rows {
				Expect(row.Status).To(Equal(compliance.StatusNotTaken))
				Expect(row.GapType).To(Equal(compliance.GapInitial))
			}
			Expect(resp.Summary.NotTaken).To(Equal(2))
		})

		It("should classify a stored record against the course validity", func() {
			completed := time.Now().UTC().AddDate(0, -1, 0)
			store.records[1] = &recordModel.CourseRecord{
				CourseID:      1,
				EmployeeID:    "E100",
				CompletedRaw:  "recent",
				CompletedDate: &completed,
			}

			resp, err := service.EmployeeStatus("E100", 90)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Rows[0].Status).To(Equal(compliance.StatusCurrent))
			Expect(resp.Rows[0].GapType).To(Equal(compliance.GapOK))
			Expect(resp.Rows[0].Expiry).ToNot(BeNil())
			Expect(resp.Summary.Current).To(Equal(1))
		})

		It("should parse the raw date when the normalized column is empty", func() {
			store.records[1] = &recordModel.CourseRecord{
				CourseID:     1,
				EmployeeID:   "E100",
				CompletedRaw: "1st January 2020",
			}

			resp, err := service.EmployeeStatus("E100", 90)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Rows[0].Status).To(Equal(compliance.StatusExpired))
			Expect(resp.Rows[0].Completed).ToNot(BeNil())
			Expect(resp.Rows[0].Completed.Year()).To(Equal(2020))
		})

		It("should degrade a course with a bad collection name to N/A", func() {
			courses.courses[1].CollectionName = collection("records; drop table")

			resp, err := service.EmployeeStatus("E100", 90)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Rows[1].Status).To(Equal(compliance.StatusNA))
			Expect(resp.Rows[1].GapType).To(Equal(compliance.GapNA))
			Expect(resp.Summary.Unavailable).To(Equal(1))
		})

		It("should degrade a failed lookup to N/A without failing the query", func() {
			store.failCourse = 2

			resp, err := service.EmployeeStatus("E100", 90)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Rows[1].GapType).To(Equal(compliance.GapNA))
			Expect(resp.Rows[0].GapType).To(Equal(compliance.GapInitial))
		})

		It("should fail when the catalog itself cannot be read", func() {
			courses.listErr = errors.New("db down")

			_, err := service.EmployeeStatus("E100", 90)

			Expect(err).To(HaveOccurred())
		})
	})
})
