package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/coursetrack/internal/auth"
	"github.com/frahmantamala/coursetrack/internal/compliance"
	"github.com/frahmantamala/coursetrack/internal/course"
	"github.com/frahmantamala/coursetrack/internal/dashboard"
	"github.com/frahmantamala/coursetrack/internal/dispute"
	"github.com/frahmantamala/coursetrack/internal/employee"
	"github.com/frahmantamala/coursetrack/internal/importer"
	"github.com/frahmantamala/coursetrack/internal/records"
	"github.com/frahmantamala/coursetrack/internal/transport/middleware"
	"github.com/frahmantamala/coursetrack/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles every mounted handler so the wiring in cmd stays flat.
type Handlers struct {
	Compliance *compliance.Handler
	Course     *course.Handler
	Employee   *employee.Handler
	Records    *records.Handler
	Dashboard  *dashboard.Handler
	Importer   *importer.Handler
	Dispute    *dispute.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authMiddleware *auth.Middleware, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public status lookup used by employees checking their own standing
		if h.Compliance != nil {
			r.Get("/compliance/{employeeID}", h.Compliance.EmployeeStatus)
		}

		// Everything below is for administrative collaborators
		r.Group(func(ar chi.Router) {
			ar.Use(authMiddleware.RequireAdmin)

			if h.Course != nil {
				ar.Route("/courses", func(cr chi.Router) {
					cr.Get("/", h.Course.ListCourses)
					cr.Post("/", h.Course.CreateCourse)
					cr.Get("/{courseID}", h.Course.GetCourse)
					cr.Patch("/{courseID}", h.Course.UpdateCourse)
				})
			}

			if h.Employee != nil {
				ar.Route("/employees", func(er chi.Router) {
					er.Get("/", h.Employee.ListEmployees)
					er.Post("/", h.Employee.UpsertEmployee)
					er.Post("/import", h.Employee.ImportRoster)
					er.Get("/export", h.Employee.ExportRoster)
					er.Get("/{employeeID}", h.Employee.GetEmployee)
				})
			}

			if h.Records != nil {
				ar.Put("/records/{employeeID}", h.Records.UpdateRecords)
			}

			if h.Dashboard != nil {
				ar.Route("/dashboard", func(dr chi.Router) {
					dr.Get("/stats", h.Dashboard.GetStats)
					dr.Get("/courses/{courseID}/employees", h.Dashboard.CourseEmployees)
					dr.Get("/courses/{courseID}/export", h.Dashboard.ExportCourseEmployees)
				})
			}

			if h.Importer != nil {
				ar.Route("/imports/records", func(ir chi.Router) {
					ir.Post("/preview", h.Importer.Preview)
					ir.Post("/{token}/confirm", h.Importer.Confirm)
					ir.Get("/{token}/report", h.Importer.Report)
					ir.Delete("/{token}", h.Importer.Cancel)
				})
			}

			if h.Dispute != nil {
				ar.Route("/disputes", func(dr chi.Router) {
					dr.Get("/", h.Dispute.ListDisputes)
					dr.Post("/", h.Dispute.CreateDispute)
					dr.Patch("/{disputeID}/toggle", h.Dispute.ToggleDispute)
				})
			}
		})
	})
}
