package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

func New(
	repo Repository,
	fsp FileStorageProvider,
	cp CacheProvider,
	qc QueueClient,
) Usecase {
	return Usecase{
		repo:                repo,
		fileStorageProvider: fsp,
		cacheProvider:       cp,
		queueClient:         qc,
	}
}

type Repository interface {
	Health() map[string]string
	Close() error

	ListUsers(context.Context, ListUsersOption) ([]User, int, error)
	GetUserByID(context.Context, uuid.UUID) (User, error)
	CreateUser(context.Context, User) (User, error)
	UpdateUser(context.Context, User) (User, error)
	DeleteUser(context.Context, uuid.UUID) error

	ListApartments(context.Context, ListApartmentsOption) ([]Apartment, int, error)
	GetApartmentByID(context.Context, uuid.UUID) (Apartment, error)
	CreateApartment(context.Context, Apartment) (Apartment, error)
	UpdateApartment(context.Context, Apartment) (Apartment, error)
	DeleteApartment(context.Context, uuid.UUID) error

	ListTenants(context.Context, ListTenantsOption) ([]Tenant, int, error)
	GetTenantByID(context.Context, uuid.UUID) (Tenant, error)
	CreateTenant(context.Context, Tenant) (Tenant, error)
	UpdateTenant(context.Context, Tenant) (Tenant, error)
	ListExpiringTenants(ctx context.Context, from, to time.Time) ([]Tenant, error)

	ListRentPayments(context.Context, ListRentPaymentsOption) ([]RentPayment, int, error)
	GetRentPaymentByID(context.Context, uuid.UUID) (RentPayment, error)
	CreateRentPayment(context.Context, RentPayment) (RentPayment, error)
	MarkRentPaymentPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (RentPayment, error)
	// MarkRentPaymentOverdue transitions a pending payment to overdue.
	// Returns false when the payment was not pending anymore.
	MarkRentPaymentOverdue(ctx context.Context, id uuid.UUID) (bool, error)
	ListSweepRentPayments(ctx context.Context, before time.Time) ([]RentPayment, error)

	ListMaintenanceTasks(context.Context, ListMaintenanceTasksOption) ([]MaintenanceTask, int, error)
	GetMaintenanceTaskByID(context.Context, uuid.UUID) (MaintenanceTask, error)
	CreateMaintenanceTask(context.Context, MaintenanceTask) (MaintenanceTask, error)
	UpdateMaintenanceTask(context.Context, MaintenanceTask) (MaintenanceTask, error)

	ListPlans(context.Context, ListPlansOption) ([]Plan, int, error)
	GetPlanByID(context.Context, uuid.UUID) (Plan, error)
	CreatePlan(context.Context, Plan) (Plan, error)
	UpdatePlan(context.Context, Plan) (Plan, error)
	DeletePlan(context.Context, uuid.UUID) error

	ListNotifications(context.Context, ListNotificationsOption) ([]Notification, int, int, error)
	ReadNotification(context.Context, uuid.UUID) error
	ReadAllNotifications(context.Context, uuid.UUID) error
	CountUnreadNotifications(context.Context, uuid.UUID) (int, error)
	CreateNotification(context.Context, Notification) (Notification, error)
	// HasNotificationSince reports whether a notification of the given type
	// referencing refID already exists for the user at or after since.
	HasNotificationSince(ctx context.Context, userID uuid.UUID, t NotificationType, refID uuid.UUID, since time.Time) (bool, error)
	SubscribeNotifications(ctx context.Context, ch chan<- Notification) error
	UnsubscribeNotifications(ctx context.Context, ch chan<- Notification) error

	CreateSweepRun(context.Context, SweepRun) (SweepRun, error)
	UpdateSweepRun(context.Context, SweepRun) (SweepRun, error)
	ListSweepRuns(context.Context, ListSweepRunsOption) ([]SweepRun, int, error)

	GetDashboardMetrics(context.Context, GetDashboardMetricsOption) (DashboardMetrics, error)
}

// FileStorageProvider hands out presigned URLs for property photos
// and lease documents.
type FileStorageProvider interface {
	GetTempUploadURL(ctx context.Context, name string) (string, error)
	GetPublicURL(ctx context.Context) (string, error)
}

// CacheProvider is a byte-level cache. Get returns nil bytes on miss.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// QueueClient enqueues background tasks.
type QueueClient interface {
	EnqueueSweep(ctx context.Context) error
}

type Usecase struct {
	repo                Repository
	fileStorageProvider FileStorageProvider
	cacheProvider       CacheProvider
	queueClient         QueueClient
}

func (u Usecase) Health() map[string]string {
	return u.repo.Health()
}

func (u Usecase) Close() error {
	return u.repo.Close()
}
