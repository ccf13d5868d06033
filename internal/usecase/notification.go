package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwellify/dwellify/internal/config"
)

type NotificationType string

const (
	NotificationTypeOverduePayment NotificationType = "overdue_payment"
	NotificationTypeLeaseExpiry    NotificationType = "lease_expiration"
	NotificationTypeGeneral        NotificationType = "general"
)

// Reference types stored alongside ReferenceID.
const (
	ReferenceTypeRentPayment = "rent_payment"
	ReferenceTypeTenant      = "tenant"
)

type Notification struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Type          NotificationType
	Title         string
	Message       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ReadAt        *time.Time
	ReferenceID   *uuid.UUID
	ReferenceType string
	DeletedAt     *time.Time
}

type ListNotificationsOption struct {
	Skip   int
	Limit  int
	UserID uuid.UUID
	Type   NotificationType
}

func (u Usecase) ListNotifications(ctx context.Context, opt ListNotificationsOption) ([]Notification, int, int, error) {
	userID, ok := ctx.Value(config.CTX_KEY_USER_ID).(uuid.UUID)
	if !ok {
		return nil, 0, 0, fmt.Errorf("user id not found in context")
	}
	opt.UserID = userID
	return u.repo.ListNotifications(ctx, opt)
}

func (u Usecase) ReadNotification(ctx context.Context, id uuid.UUID) error {
	return u.repo.ReadNotification(ctx, id)
}

func (u Usecase) ReadAllNotifications(ctx context.Context) error {
	userID, ok := ctx.Value(config.CTX_KEY_USER_ID).(uuid.UUID)
	if !ok {
		return fmt.Errorf("user id not found in context")
	}
	return u.repo.ReadAllNotifications(ctx, userID)
}

func (u Usecase) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	if n.UserID == uuid.Nil {
		return Notification{}, fmt.Errorf("user id is required")
	}
	if n.Type == "" {
		n.Type = NotificationTypeGeneral
	}
	return u.repo.CreateNotification(ctx, n)
}

// StreamNotifications creates a notification stream for the specified user.
// It filters notifications based on the userID and handles cleanup when
// the context is done.
func (u Usecase) StreamNotifications(ctx context.Context, userID uuid.UUID) (<-chan Notification, error) {
	inbound := make(chan Notification, 10)
	if err := u.repo.SubscribeNotifications(ctx, inbound); err != nil {
		close(inbound)
		return nil, fmt.Errorf("subscribe to notifications: %w", err)
	}

	notifications := make(chan Notification, 10)
	go func() {
		defer close(notifications)
		defer u.repo.UnsubscribeNotifications(ctx, inbound)

		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-inbound:
				if !ok {
					return
				}
				if n.UserID != userID {
					continue
				}
				// Non-blocking send to avoid slow consumers
				select {
				case notifications <- n:
				default:
				}
			}
		}
	}()

	return notifications, nil
}
