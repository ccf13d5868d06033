package queue

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dwellify/dwellify/internal/config"
	"github.com/dwellify/dwellify/internal/database"
	"github.com/dwellify/dwellify/internal/queue/handlers"
	"github.com/dwellify/dwellify/internal/usecase"
)

// Server wraps asynq.Server for processing tasks
type Server struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
	gormDB      *gorm.DB
	sqlDB       *sql.DB
}

// Worker represents a worker application with all its dependencies
type Worker struct {
	server *Server
	logger *slog.Logger
}

// NewWorker creates a fully configured worker with all dependencies
func NewWorker(logger *slog.Logger) (*Worker, error) {
	logger.Info("Initializing worker dependencies...")

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
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open gorm database connection: %w", err)
	}

	// Workers don't need the pgx LISTEN hub.
	repo, err := database.New(gormDB, nil)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	// Workers don't enqueue and serve no uploads.
	uc := usecase.New(repo, nil, nil, nil)

	redisAddr := fmt.Sprintf("%s:%s",
		os.Getenv(config.ENV_KEY_REDIS_HOST),
		os.Getenv(config.ENV_KEY_REDIS_PORT),
	)
	redisPassword := os.Getenv(config.ENV_KEY_REDIS_PASSWORD)

	workerConcurrency := 10
	if wc := os.Getenv(config.ENV_KEY_WORKER_CONCURRENCY); wc != "" {
		var n int
		if _, err := fmt.Sscanf(wc, "%d", &n); err == nil && n > 0 {
			workerConcurrency = n
		}
	}

	asynqServer := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
		},
		asynq.Config{
			Concurrency: workerConcurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	mux := asynq.NewServeMux()

	h := handlers.NewHandlers(uc, logger)

	// Register task handlers - one line per job type
	mux.HandleFunc(TaskNotificationsSweep, h.HandleNotificationSweep)

	logger.Info("Worker registered handlers",
		slog.String("task", TaskNotificationsSweep))

	server := &Server{
		asynqServer: asynqServer,
		mux:         mux,
		gormDB:      gormDB,
		sqlDB:       sqlDB,
	}

	return &Worker{
		server: server,
		logger: logger,
	}, nil
}

// Start starts the worker server
func (w *Worker) Start() error {
	w.logger.Info("Worker started successfully")
	return w.server.asynqServer.Start(w.server.mux)
}

// Stop stops the worker server gracefully
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.server.asynqServer.Shutdown()

	if w.server.sqlDB != nil {
		if err := w.server.sqlDB.Close(); err != nil {
			w.logger.Error("Error closing database", slog.String("err", err.Error()))
		}
	}
}
