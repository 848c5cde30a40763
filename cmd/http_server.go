package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/internship-management/api"
	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/internal/auth"
	authPostgres "github.com/frahmantamala/internship-management/internal/auth/postgres"
	"github.com/frahmantamala/internship-management/internal/company"
	companyPostgres "github.com/frahmantamala/internship-management/internal/company/postgres"
	"github.com/frahmantamala/internship-management/internal/core/events"
	"github.com/frahmantamala/internship-management/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/internship-management/internal/dashboard/postgres"
	"github.com/frahmantamala/internship-management/internal/internship"
	internshipPostgres "github.com/frahmantamala/internship-management/internal/internship/postgres"
	"github.com/frahmantamala/internship-management/internal/observability"
	"github.com/frahmantamala/internship-management/internal/student"
	studentPostgres "github.com/frahmantamala/internship-management/internal/student/postgres"
	"github.com/frahmantamala/internship-management/internal/transport"
	"github.com/frahmantamala/internship-management/internal/transport/rest"
	"github.com/frahmantamala/internship-management/internal/user"
	userPostgres "github.com/frahmantamala/internship-management/internal/user/postgres"
	"github.com/frahmantamala/internship-management/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	// Redis is nil when redis is disabled.
	Redis  redis.UniversalClient
	Bus    *events.EventBus
	Router *chi.Mux
	Logger *slog.Logger
}

func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("redis close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("database close error", "error", err)
	}
}

func startHTTPServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := initializeDependencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	cfg := deps.Config.Server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Logger.Info("starting HTTP server", "address", server.Addr, "env", deps.Config.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		deps.Logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		if err := deps.Bus.Wait(shutdownCtx); err != nil {
			deps.Logger.Warn("event handlers still running at shutdown", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		deps.Logger.Error("server stopped with error", "error", err)
		return err
	}
	deps.Logger.Info("server stopped")
	return nil
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(cfg)
	lg := logger.L()

	if _, err := api.Load(ctx); err != nil {
		return nil, err
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	deps := &Dependencies{
		Config: cfg,
		DB:     db,
		Gorm:   gormDB,
		Bus:    events.NewEventBus(lg),
		Router: chi.NewRouter(),
		Logger: lg,
	}

	var revocations auth.RevocationList = auth.NoopRevocationList{}
	if cfg.Redis.Enabled {
		client, err := initRedis(ctx, cfg.Redis)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		deps.Redis = client
		revocations = auth.NewRedisRevocationList(client)
	} else {
		lg.Warn("redis disabled: logout will not revoke credentials")
	}

	if err := wireRoutes(deps, revocations); err != nil {
		deps.Close()
		return nil, err
	}
	return deps, nil
}

func wireRoutes(deps *Dependencies, revocations auth.RevocationList) error {
	cfg := deps.Config
	lg := deps.Logger

	var (
		registry *prometheus.Registry
		metrics  *observability.Metrics
	)
	if cfg.Observability.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		metrics = observability.NewMetrics(registry)
	}

	events.SubscribeAudit(deps.Bus, events.AuditLogger(lg))

	issuer, err := auth.NewJWTTokenIssuer([]byte(cfg.Security.JWTSecret), cfg.Security.JWTIssuer)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	lookupTimeout := cfg.Security.AccountLookupTimeout
	accounts := authPostgres.NewAccountRepository(deps.Gorm)
	resolver := auth.NewResolver(accounts, issuer, revocations, lookupTimeout, lg)
	gate := auth.NewGate(resolver, metrics)
	authService := auth.NewService(accounts, issuer, revocations, deps.Bus, metrics, lookupTimeout, lg)

	companyService := company.NewService(companyPostgres.NewCompanyRepository(deps.Gorm), lg)
	studentService := student.NewService(studentPostgres.NewStudentRepository(deps.Gorm), lg)
	internshipService := internship.NewService(
		internshipPostgres.NewInternshipRepository(deps.Gorm),
		studentService,
		companyService,
		deps.Bus,
		lg,
	)
	userService := user.NewService(userPostgres.NewUserRepository(deps.Gorm), deps.Bus, cfg.Security.BCryptCost, lg)
	dashboardService := dashboard.NewService(dashboardPostgres.NewStatsRepository(deps.DB), lg)

	base := transport.NewBaseHandler(lg)
	rest.RegisterAllRoutes(deps.Router, gate, rest.Handlers{
		Health:     rest.NewHealthHandler(deps.DB, deps.Redis),
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(base, userService),
		Student:    student.NewHandler(base, studentService),
		Company:    company.NewHandler(base, companyService),
		Internship: internship.NewHandler(base, internshipService),
		Dashboard:  dashboard.NewHandler(base, dashboardService),
	}, rest.Options{
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.Server.Origins(),
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
		Metrics:        metrics,
		Registry:       registry,
		MetricsPath:    cfg.Observability.Metrics.Path,
	}, lg)

	return nil
}

// initDB opens the shared pgx connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// initGorm layers gorm over the sqlx pool so both share one set of
// connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func initRedis(ctx context.Context, cfg internal.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
