package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"
)

// implements usecase.Repository
type service struct {
	db   *gorm.DB
	noti *notificationHub
}

// New wires the repository on top of an existing gorm connection. The
// optional pgx connection powers the notification LISTEN hub; workers
// pass nil.
func New(gormDB *gorm.DB, notiConn *pgx.Conn) (*service, error) {
	if err := gormDB.AutoMigrate(
		User{},
		Apartment{},
		Tenant{},
		RentPayment{},
		MaintenanceTask{},
		Plan{},
		Notification{},
		SweepRun{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	db, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`); err != nil {
		return nil, fmt.Errorf("create uuid extension: %w", err)
	}

	// Store-level guard for the sweep dedup contract: at most one
	// notification per (user, type, reference, calendar day).
	if _, err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_notification_ref_day
        ON notifications (user_id, type, reference_id, (created_at::date))
        WHERE reference_id IS NOT NULL
        AND deleted_at IS NULL;
    `); err != nil {
		return nil, fmt.Errorf("create dedup index: %w", err)
	}

	if _, err := db.Exec(`
        CREATE OR REPLACE FUNCTION notify_notification() RETURNS trigger AS $$
        BEGIN
            PERFORM pg_notify('notifications', row_to_json(NEW)::text);
            RETURN NEW;
        END;
        $$ LANGUAGE plpgsql;

        DROP TRIGGER IF EXISTS trg_notify_notification ON notifications;
        CREATE TRIGGER trg_notify_notification
        AFTER INSERT ON notifications
        FOR EACH ROW EXECUTE FUNCTION notify_notification();
    `); err != nil {
		return nil, fmt.Errorf("create notification trigger: %w", err)
	}

	s := &service{db: gormDB}
	if notiConn != nil {
		hub, err := NewNotificationHub(context.Background(), notiConn)
		if err != nil {
			return nil, fmt.Errorf("start notification hub: %w", err)
		}
		s.noti = hub
	}

	return s, nil
}

// Health checks the health of the database connection by pinging the
// database. It returns a map with keys indicating various health
// statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	db, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	if err := db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
