package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/coursetrack/internal"
	"github.com/frahmantamala/coursetrack/internal/auth"
	"github.com/frahmantamala/coursetrack/internal/compliance"
	"github.com/frahmantamala/coursetrack/internal/course"
	coursePostgres "github.com/frahmantamala/coursetrack/internal/course/postgres"
	"github.com/frahmantamala/coursetrack/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/coursetrack/internal/dashboard/postgres"
	dashboardRedis "github.com/frahmantamala/coursetrack/internal/dashboard/redis"
	"github.com/frahmantamala/coursetrack/internal/dispute"
	disputePostgres "github.com/frahmantamala/coursetrack/internal/dispute/postgres"
	"github.com/frahmantamala/coursetrack/internal/employee"
	employeePostgres "github.com/frahmantamala/coursetrack/internal/employee/postgres"
	"github.com/frahmantamala/coursetrack/internal/importer"
	"github.com/frahmantamala/coursetrack/internal/records"
	recordsPostgres "github.com/frahmantamala/coursetrack/internal/records/postgres"
	"github.com/frahmantamala/coursetrack/internal/transport"
	"github.com/frahmantamala/coursetrack/internal/transport/rest"
	"github.com/frahmantamala/coursetrack/internal/transport/swagger"
	"github.com/frahmantamala/coursetrack/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const openAPISpecPath = "./api/openapi.yml"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Logger   *slog.Logger
	Handlers rest.Handlers
	Auth     *auth.Middleware
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Auth, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	if err := swagger.ValidateSpec(openAPISpecPath); err != nil {
		return nil, fmt.Errorf("failed to validate OpenAPI spec: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	baseHandler := transport.NewBaseHandler(lg)

	// Repositories
	recordRepo := recordsPostgres.NewRecordRepository(gormDB)
	courseRepo := coursePostgres.NewCourseRepository(gormDB)
	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	disputeRepo := disputePostgres.NewDisputeRepository(gormDB)
	statsRepo := dashboardPostgres.NewStatsRepository(gormDB)

	// Dashboard cache: shared Redis when configured, in-process otherwise
	var statsCache dashboard.StatsCache = dashboard.NewMemoryCache()
	if config.Redis.Addr != "" {
		client := goRedis.NewClient(&goRedis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		statsCache = dashboardRedis.NewStatsCache(client)
		lg.Info("dashboard stats cache backed by redis", "addr", config.Redis.Addr)
	}

	// Services
	complianceService := compliance.NewService(employeeRepo, courseRepo, recordRepo, lg)
	courseService := course.NewService(courseRepo, recordRepo, lg)
	employeeService := employee.NewService(employeeRepo, lg)
	recordsService := records.NewService(recordRepo, employeeRepo, courseRepo, lg)
	dashboardService := dashboard.NewService(
		statsRepo, courseRepo, statsCache,
		config.Compliance.TTL(), config.Compliance.PageSize(), lg,
	)
	sessionStore := importer.NewSessionStore(config.Compliance.SessionTTL())
	importerService := importer.NewService(sessionStore, courseRepo, recordRepo, lg)
	disputeService := dispute.NewService(disputeRepo, lg)

	// Admin token verification; without a key the admin routes reject
	var verifier *auth.Verifier
	if config.Security.JWTPublicKey != "" {
		publicKey, err := config.Security.GetPublicKey()
		if err != nil {
			return nil, fmt.Errorf("failed to load JWT public key: %w", err)
		}
		verifier = auth.NewVerifier(publicKey)
	} else {
		lg.Warn("no JWT public key configured; admin routes will reject all requests")
	}

	horizon := config.Compliance.Horizon()
	handlers := rest.Handlers{
		Compliance: compliance.NewHandler(baseHandler, complianceService, horizon),
		Course:     course.NewHandler(baseHandler, courseService),
		Employee:   employee.NewHandler(baseHandler, employeeService),
		Records:    records.NewHandler(baseHandler, recordsService),
		Dashboard:  dashboard.NewHandler(baseHandler, dashboardService, horizon),
		Importer:   importer.NewHandler(baseHandler, importerService),
		Dispute:    dispute.NewHandler(baseHandler, disputeService),
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Logger:   lg,
		Handlers: handlers,
		Auth:     auth.NewMiddleware(baseHandler, verifier),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
