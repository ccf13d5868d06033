package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwellify/dwellify/internal/usecase"
)

type Notification struct {
	ID            uuid.UUID  `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;" json:"user_id"`
	User          *User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Type          string     `gorm:"column:type;type:varchar(64)" json:"type"`
	Title         string     `gorm:"column:title" json:"title"`
	Message       string     `gorm:"column:message" json:"message"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
	ReadAt        *time.Time `gorm:"column:read_at" json:"read_at"`
	ReferenceID   *uuid.UUID `gorm:"column:reference_id;type:uuid" json:"reference_id"`
	ReferenceType string     `gorm:"column:reference_type" json:"reference_type"`
	DeletedAt     *gorm.DeletedAt
}

func (Notification) TableName() string {
	return "notifications"
}

// Convert core model to Usecase
func (n Notification) ConvertToUsecase() usecase.Notification {
	var d *time.Time
	if n.DeletedAt != nil {
		d = &n.DeletedAt.Time
	}
	return usecase.Notification{
		ID:            n.ID,
		UserID:        n.UserID,
		Type:          usecase.NotificationType(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
		ReadAt:        n.ReadAt,
		ReferenceID:   n.ReferenceID,
		ReferenceType: n.ReferenceType,
		DeletedAt:     d,
	}
}

type notificationHub struct {
	mu          sync.Mutex
	subscribers map[chan<- usecase.Notification]struct{}
	conn        *pgx.Conn
}

func NewNotificationHub(ctx context.Context, conn *pgx.Conn) (*notificationHub, error) {
	if _, err := conn.Exec(ctx, "LISTEN notifications"); err != nil {
		return nil, fmt.Errorf("listen notifications: %w", err)
	}
	hub := &notificationHub{
		conn:        conn,
		subscribers: make(map[chan<- usecase.Notification]struct{}),
	}
	go hub.listen()
	return hub, nil
}

func (h *notificationHub) listen() {
	ctx := context.Background()
	for {
		n, err := h.conn.WaitForNotification(ctx)
		if err != nil {
			slog.Error("notification hub: wait", slog.String("err", err.Error()))
			return
		}
		if n == nil {
			continue
		}
		notif := parseNotification(n)

		h.mu.Lock()
		for ch := range h.subscribers {
			select {
			case ch <- notif:
			default:
				// Skip full subscriber channels so a slow consumer
				// never blocks the hub.
			}
		}
		h.mu.Unlock()
	}
}

func (h *notificationHub) Subscribe(ch chan<- usecase.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[ch] = struct{}{}
}

func (h *notificationHub) Unsubscribe(ch chan<- usecase.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, ch)
}

// Helper to parse pgx notification payload to usecase.Notification
func parseNotification(n *pgconn.Notification) usecase.Notification {
	var notification Notification
	if err := json.Unmarshal([]byte(n.Payload), &notification); err != nil {
		slog.Error("notification hub: parse payload", slog.String("err", err.Error()))
		return usecase.Notification{}
	}
	return notification.ConvertToUsecase()
}

func (s *service) SubscribeNotifications(ctx context.Context, ch chan<- usecase.Notification) error {
	if s.noti == nil {
		return fmt.Errorf("notification hub is not configured")
	}
	s.noti.Subscribe(ch)
	return nil
}

func (s *service) UnsubscribeNotifications(ctx context.Context, ch chan<- usecase.Notification) error {
	if s.noti == nil {
		return nil
	}
	s.noti.Unsubscribe(ch)
	return nil
}

func (s *service) ListNotifications(ctx context.Context, opt usecase.ListNotificationsOption) ([]usecase.Notification, int, int, error) {
	var (
		notifications []Notification
		total         int64
	)

	query := s.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ?", opt.UserID).
		Order("created_at desc").
		Limit(opt.Limit).
		Offset(opt.Skip)

	if opt.Type != "" {
		query = query.Where("type = ?", string(opt.Type))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, 0, err
	}

	unread, err := s.CountUnreadNotifications(ctx, opt.UserID)
	if err != nil {
		return nil, 0, 0, err
	}

	result := make([]usecase.Notification, len(notifications))
	for i, n := range notifications {
		result[i] = n.ConvertToUsecase()
	}

	return result, unread, int(total), nil
}

func (s *service) ReadNotification(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Update("read_at", time.Now()).Error
}

func (s *service) ReadAllNotifications(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now()).Error
}

func (s *service) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *service) CreateNotification(ctx context.Context, notification usecase.Notification) (usecase.Notification, error) {
	n := Notification{
		UserID:        notification.UserID,
		Type:          string(notification.Type),
		Title:         notification.Title,
		Message:       notification.Message,
		ReferenceID:   notification.ReferenceID,
		ReferenceType: notification.ReferenceType,
	}
	if !notification.CreatedAt.IsZero() {
		n.CreatedAt = notification.CreatedAt
	}
	if err := s.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&n).Error; err != nil {
		return usecase.Notification{}, err
	}
	return n.ConvertToUsecase(), nil
}

// HasNotificationSince is the sweep dedup gate: one notification per
// (user, type, reference) per window starting at since.
func (s *service) HasNotificationSince(ctx context.Context, userID uuid.UUID, t usecase.NotificationType, refID uuid.UUID, since time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ?", userID).
		Where("type = ?", string(t)).
		Where("reference_id = ?", refID).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
