package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dwellify/dwellify/internal/cache"
	"github.com/dwellify/dwellify/internal/config"
	"github.com/dwellify/dwellify/internal/database"
	"github.com/dwellify/dwellify/internal/filestorage"
	"github.com/dwellify/dwellify/internal/queue"
	"github.com/dwellify/dwellify/internal/usecase"
)

// Service is the usecase surface the HTTP handlers depend on.
type Service interface {
	Health() map[string]string
	Close() error

	ListUsers(context.Context, usecase.ListUsersOption) ([]usecase.User, int, error)
	GetUserByID(context.Context, uuid.UUID) (usecase.User, error)
	GetMe(context.Context) (usecase.User, error)
	CreateUser(context.Context, usecase.User) (usecase.User, error)
	UpdateUser(context.Context, usecase.User) (usecase.User, error)
	DeleteUser(context.Context, uuid.UUID) error

	ListApartments(context.Context, usecase.ListApartmentsOption) ([]usecase.Apartment, int, error)
	GetApartmentByID(context.Context, uuid.UUID) (usecase.Apartment, error)
	CreateApartment(context.Context, usecase.Apartment) (usecase.Apartment, error)
	UpdateApartment(context.Context, usecase.Apartment) (usecase.Apartment, error)
	DeleteApartment(context.Context, uuid.UUID) error

	ListTenants(context.Context, usecase.ListTenantsOption) ([]usecase.Tenant, int, error)
	GetTenantByID(context.Context, uuid.UUID) (usecase.Tenant, error)
	CreateTenant(context.Context, usecase.Tenant) (usecase.Tenant, error)
	UpdateTenant(context.Context, usecase.Tenant) (usecase.Tenant, error)

	ListRentPayments(context.Context, usecase.ListRentPaymentsOption) ([]usecase.RentPayment, int, error)
	GetRentPaymentByID(context.Context, uuid.UUID) (usecase.RentPayment, error)
	CreateRentPayment(context.Context, usecase.RentPayment) (usecase.RentPayment, error)
	MarkRentPaymentPaid(context.Context, uuid.UUID, time.Time) (usecase.RentPayment, error)

	ListMaintenanceTasks(context.Context, usecase.ListMaintenanceTasksOption) ([]usecase.MaintenanceTask, int, error)
	GetMaintenanceTaskByID(context.Context, uuid.UUID) (usecase.MaintenanceTask, error)
	CreateMaintenanceTask(context.Context, usecase.MaintenanceTask) (usecase.MaintenanceTask, error)
	UpdateMaintenanceTask(context.Context, usecase.MaintenanceTask) (usecase.MaintenanceTask, error)

	ListPlans(context.Context, usecase.ListPlansOption) ([]usecase.Plan, int, error)
	GetPlanByID(context.Context, uuid.UUID) (usecase.Plan, error)
	CreatePlan(context.Context, usecase.Plan) (usecase.Plan, error)
	UpdatePlan(context.Context, usecase.Plan) (usecase.Plan, error)
	DeletePlan(context.Context, uuid.UUID) error

	ListNotifications(context.Context, usecase.ListNotificationsOption) ([]usecase.Notification, int, int, error)
	ReadNotification(context.Context, uuid.UUID) error
	ReadAllNotifications(context.Context) error
	StreamNotifications(context.Context, uuid.UUID) (<-chan usecase.Notification, error)

	GetDashboardMetrics(context.Context, usecase.GetDashboardMetricsOption) (usecase.DashboardMetrics, error)

	EnqueueSweep(context.Context) error
	ListSweepRuns(context.Context, usecase.ListSweepRunsOption) ([]usecase.SweepRun, int, error)

	GetTempUploadURL(ctx context.Context, name string) (string, string, error)
	GetPublicFileURL(ctx context.Context) (string, error)
}

type Server struct {
	port int

	server    Service
	validator *validator.Validate
	logger    *slog.Logger
}

// App bundles the HTTP server with the resources it owns.
type App struct {
	httpServer  *http.Server
	service     Service
	queueClient *queue.Client
	cache       *cache.RedisCache
}

// NewApp wires the API server: database, notification hub, cache,
// queue client and file storage, all configured from the environment.
func NewApp(logger *slog.Logger) (*App, error) {
	var (
		dbname = os.Getenv(config.ENV_KEY_DB_DATABASE)
		dbpass = os.Getenv(config.ENV_KEY_DB_PASSWORD)
		dbuser = os.Getenv(config.ENV_KEY_DB_USER)
		dbport = os.Getenv(config.ENV_KEY_DB_PORT)
		dbhost = os.Getenv(config.ENV_KEY_DB_HOST)
	)

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbuser, dbpass, dbhost, dbport, dbname)
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	if m, err := strconv.Atoi(os.Getenv(config.ENV_KEY_DB_MAX_OPEN_CONNECTIONS)); err == nil {
		sqlDB.SetMaxOpenConns(m)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open gorm database connection: %w", err)
	}

	// Dedicated connection for LISTEN/NOTIFY.
	notiConn, err := pgx.Connect(context.Background(), connStr)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open notification connection: %w", err)
	}

	repo, err := database.New(gormDB, notiConn)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("create repository: %w", err)
	}

	fsp, err := newFileStorage()
	if err != nil {
		return nil, err
	}

	redisAddr := fmt.Sprintf("%s:%s",
		os.Getenv(config.ENV_KEY_REDIS_HOST),
		os.Getenv(config.ENV_KEY_REDIS_PORT),
	)
	redisPassword := os.Getenv(config.ENV_KEY_REDIS_PASSWORD)

	cp := cache.NewRedisCache(redisAddr, redisPassword)
	qc := queue.NewClient(redisAddr, redisPassword)

	uc := usecase.New(repo, fsp, cp, qc)

	port, _ := strconv.Atoi(os.Getenv(config.ENV_KEY_PORT))
	if port == 0 {
		port = 8080
	}

	sv := &Server{
		port:      port,
		server:    uc,
		validator: validator.New(),
		logger:    logger,
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      sv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return &App{
		httpServer:  httpServer,
		service:     uc,
		queueClient: qc,
		cache:       cp,
	}, nil
}

// newFileStorage picks the provider from FILE_STORAGE_PROVIDER;
// defaults to MinIO, "s3" switches to AWS.
func newFileStorage() (usecase.FileStorageProvider, error) {
	switch os.Getenv(config.ENV_KEY_FILE_STORAGE_PROVIDER) {
	case "s3":
		return filestorage.NewS3Storage(
			context.Background(),
			os.Getenv(config.ENV_KEY_S3_BUCKET),
			os.Getenv(config.ENV_KEY_S3_TEMP_PATH),
		)
	default:
		return filestorage.NewMinIOStorage(
			os.Getenv(config.ENV_KEY_MINIO_BUCKET),
			os.Getenv(config.ENV_KEY_MINIO_TEMP_PATH),
			os.Getenv(config.ENV_KEY_MINIO_PUBLIC_PATH),
			os.Getenv(config.ENV_KEY_MINIO_ENDPOINT),
			os.Getenv(config.ENV_KEY_MINIO_ACCESS_KEY),
			os.Getenv(config.ENV_KEY_MINIO_SECRET_KEY),
		)
	}
}

func (a *App) Addr() string {
	return a.httpServer.Addr
}

func (a *App) ListenAndServe() error {
	return a.httpServer.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	if err := a.queueClient.Close(); err != nil {
		return err
	}
	if err := a.cache.Close(); err != nil {
		return err
	}
	return a.service.Close()
}
