package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository covering the sweep surface. The
// embedded Repository keeps the interface satisfied; methods outside
// the sweep path are never called by these tests.
type fakeRepo struct {
	Repository

	now time.Time

	apartments    map[uuid.UUID]Apartment
	tenants       map[uuid.UUID]Tenant
	payments      map[uuid.UUID]*RentPayment
	notifications []Notification
	sweepRuns     map[uuid.UUID]*SweepRun

	overdueTransitions int
}

func newFakeRepo(now time.Time) *fakeRepo {
	return &fakeRepo{
		now:        now,
		apartments: map[uuid.UUID]Apartment{},
		tenants:    map[uuid.UUID]Tenant{},
		payments:   map[uuid.UUID]*RentPayment{},
		sweepRuns:  map[uuid.UUID]*SweepRun{},
	}
}

func (f *fakeRepo) addApartment(ownerID uuid.UUID, name string) Apartment {
	a := Apartment{ID: uuid.New(), OwnerID: ownerID, Name: name, Status: ApartmentStatusOccupied}
	f.apartments[a.ID] = a
	return a
}

func (f *fakeRepo) addTenant(apartmentID uuid.UUID, name string, leaseEnd *time.Time) Tenant {
	t := Tenant{
		ID:           uuid.New(),
		ApartmentID:  apartmentID,
		Name:         name,
		LeaseEndDate: leaseEnd,
		Status:       TenantStatusActive,
	}
	f.tenants[t.ID] = t
	return t
}

func (f *fakeRepo) addPayment(tenantID uuid.UUID, amount int, due time.Time) *RentPayment {
	p := &RentPayment{
		ID:       uuid.New(),
		TenantID: tenantID,
		Amount:   amount,
		DueDate:  due,
		Status:   PaymentStatusPending,
	}
	if t, ok := f.tenants[tenantID]; ok {
		p.ApartmentID = t.ApartmentID
	}
	f.payments[p.ID] = p
	return p
}

func (f *fakeRepo) tenantWithApartment(id uuid.UUID) *Tenant {
	t, ok := f.tenants[id]
	if !ok {
		return nil
	}
	if a, ok := f.apartments[t.ApartmentID]; ok {
		t.Apartment = &a
	}
	return &t
}

func (f *fakeRepo) ListSweepRentPayments(_ context.Context, before time.Time) ([]RentPayment, error) {
	var out []RentPayment
	for _, p := range f.payments {
		if p.PaymentDate != nil {
			continue
		}
		if p.Status != PaymentStatusPending && p.Status != PaymentStatusOverdue {
			continue
		}
		if !p.DueDate.Before(before) {
			continue
		}
		cp := *p
		cp.Tenant = f.tenantWithApartment(p.TenantID)
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeRepo) MarkRentPaymentOverdue(_ context.Context, id uuid.UUID) (bool, error) {
	p, ok := f.payments[id]
	if !ok || p.Status != PaymentStatusPending {
		return false, nil
	}
	p.Status = PaymentStatusOverdue
	f.overdueTransitions++
	return true, nil
}

func (f *fakeRepo) ListExpiringTenants(_ context.Context, from, to time.Time) ([]Tenant, error) {
	var out []Tenant
	for id, t := range f.tenants {
		if t.Status != TenantStatusActive || t.LeaseEndDate == nil {
			continue
		}
		if t.LeaseEndDate.Before(from) || !t.LeaseEndDate.Before(to) {
			continue
		}
		out = append(out, *f.tenantWithApartment(id))
	}
	return out, nil
}

func (f *fakeRepo) HasNotificationSince(_ context.Context, userID uuid.UUID, nt NotificationType, refID uuid.UUID, since time.Time) (bool, error) {
	for _, n := range f.notifications {
		if n.UserID == userID && n.Type == nt &&
			n.ReferenceID != nil && *n.ReferenceID == refID &&
			!n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateNotification(_ context.Context, n Notification) (Notification, error) {
	n.ID = uuid.New()
	n.CreatedAt = f.now
	f.notifications = append(f.notifications, n)
	return n, nil
}

func (f *fakeRepo) CreateSweepRun(_ context.Context, r SweepRun) (SweepRun, error) {
	r.ID = uuid.New()
	f.sweepRuns[r.ID] = &r
	return r, nil
}

func (f *fakeRepo) UpdateSweepRun(_ context.Context, r SweepRun) (SweepRun, error) {
	f.sweepRuns[r.ID] = &r
	return r, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSweepMarksOverdueAndNotifies(t *testing.T) {
	now := date(2025, time.January, 16)
	repo := newFakeRepo(now)
	owner := uuid.New()
	apt := repo.addApartment(owner, "Unit 4B")
	tenant := repo.addTenant(apt.ID, "Jordan Lee", nil)
	payment := repo.addPayment(tenant.ID, 1200, date(2025, time.January, 1))

	uc := New(repo, nil, nil, nil)
	sum, err := uc.RunAllChecks(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.OverduePayments)
	assert.Equal(t, PaymentStatusOverdue, repo.payments[payment.ID].Status)
	require.Len(t, repo.notifications, 1)

	n := repo.notifications[0]
	assert.Equal(t, owner, n.UserID)
	assert.Equal(t, NotificationTypeOverduePayment, n.Type)
	assert.Contains(t, n.Message, "15 day(s) overdue")
	require.NotNil(t, n.ReferenceID)
	assert.Equal(t, payment.ID, *n.ReferenceID)
}

func TestSweepDueDateBoundary(t *testing.T) {
	now := date(2025, time.March, 10)
	repo := newFakeRepo(now)
	owner := uuid.New()
	apt := repo.addApartment(owner, "Unit 1A")
	tenant := repo.addTenant(apt.ID, "Sam Park", nil)

	dueToday := repo.addPayment(tenant.ID, 900, now)
	dueYesterday := repo.addPayment(tenant.ID, 900, now.AddDate(0, 0, -1))

	uc := New(repo, nil, nil, nil)
	sum, err := uc.RunAllChecks(context.Background(), now)
	require.NoError(t, err)

	// Strict inequality: due today is not yet overdue.
	assert.Equal(t, PaymentStatusPending, repo.payments[dueToday.ID].Status)
	assert.Equal(t, PaymentStatusOverdue, repo.payments[dueYesterday.ID].Status)
	assert.Equal(t, 1, sum.OverduePayments)
	require.Len(t, repo.notifications, 1)
	assert.Contains(t, repo.notifications[0].Message, "1 day(s) overdue")
}

func TestSweepSameDayRerunIsNoOp(t *testing.T) {
	now := date(2025, time.February, 2)
	repo := newFakeRepo(now)
	owner := uuid.New()
	apt := repo.addApartment(owner, "Unit 2C")
	tenant := repo.addTenant(apt.ID, "Ana Silva", nil)
	repo.addPayment(tenant.ID, 1500, date(2025, time.January, 20))

	uc := New(repo, nil, nil, nil)

	first, err := uc.RunAllChecks(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.OverduePayments)

	second, err := uc.RunAllChecks(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.OverduePayments)
	assert.Len(t, repo.notifications, 1)
	assert.Equal(t, 1, repo.overdueTransitions)
}

func TestSweepStillOverdueNextDayNotifiesAgain(t *testing.T) {
	day1 := date(2025, time.April, 5)
	repo := newFakeRepo(day1)
	owner := uuid.New()
	apt := repo.addApartment(owner, "Unit 7F")
	tenant := repo.addTenant(apt.ID, "Kim Osei", nil)
	repo.addPayment(tenant.ID, 1100, date(2025, time.April, 1))

	uc := New(repo, nil, nil, nil)

	sum, err := uc.RunAllChecks(context.Background(), day1)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.OverduePayments)

	day2 := day1.AddDate(0, 0, 1)
	repo.now = day2
	sum, err = uc.RunAllChecks(context.Background(), day2)
	require.NoError(t, err)

	// A new calendar day gets a day-updated notification, but the
	// status transition happened exactly once.
	assert.Equal(t, 1, sum.OverduePayments)
	require.Len(t, repo.notifications, 2)
	assert.Contains(t, repo.notifications[0].Message, "4 day(s) overdue")
	assert.Contains(t, repo.notifications[1].Message, "5 day(s) overdue")
	assert.Equal(t, 1, repo.overdueTransitions)
}

func TestSweepLeaseThresholds(t *testing.T) {
	now := date(2025, time.June, 1)
	repo := newFakeRepo(now)
	owner := uuid.New()
	apt := repo.addApartment(owner, "Unit 3D")

	end30 := now.AddDate(0, 0, 30)
	end60 := now.AddDate(0, 0, 60)
	end90 := now.AddDate(0, 0, 90)
	end120 := now.AddDate(0, 0, 120)
	end31 := now.AddDate(0, 0, 31)

	repo.addTenant(apt.ID, "T30", &end30)
	repo.addTenant(apt.ID, "T60", &end60)
	repo.addTenant(apt.ID, "T90", &end90)
	repo.addTenant(apt.ID, "T120", &end120)
	repo.addTenant(apt.ID, "T31", &end31)

	uc := New(repo, nil, nil, nil)
	sum, err := uc.RunAllChecks(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.LeaseExpirations)
	require.Len(t, repo.notifications, 3)

	titles := make(map[string]int)
	for _, n := range repo.notifications {
		assert.Equal(t, NotificationTypeLeaseExpiry, n.Type)
		titles[n.Title]++
	}
	assert.Equal(t, 1, titles["Lease expiring in 30 days"])
	assert.Equal(t, 1, titles["Lease expiring in 60 days"])
	assert.Equal(t, 1, titles["Lease expiring in 90 days"])

	// Immediate re-run emits nothing new.
	sum, err = uc.RunAllChecks(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.LeaseExpirations)
	assert.Len(t, repo.notifications, 3)
}

func TestSweepIgnoresInactiveAndOpenEndedLeases(t *testing.T) {
	now := date(2025, time.June, 1)
	repo := newFakeRepo(now)
	owner := uuid.New()
	apt := repo.addApartment(owner, "Unit 5E")

	end30 := now.AddDate(0, 0, 30)
	inactive := repo.addTenant(apt.ID, "Gone", &end30)
	inactive.Status = TenantStatusInactive
	repo.tenants[inactive.ID] = inactive

	repo.addTenant(apt.ID, "Open-ended", nil)

	uc := New(repo, nil, nil, nil)
	sum, err := uc.RunAllChecks(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.LeaseExpirations)
	assert.Empty(t, repo.notifications)
}

func TestSweepSkipsOrphanRecords(t *testing.T) {
	now := date(2025, time.May, 20)
	repo := newFakeRepo(now)
	owner := uuid.New()
	apt := repo.addApartment(owner, "Unit 9A")

	good := repo.addTenant(apt.ID, "Good", nil)
	repo.addPayment(good.ID, 800, now.AddDate(0, 0, -3))

	// Tenant pointing at an apartment that no longer exists.
	orphan := repo.addTenant(uuid.New(), "Orphan", nil)
	repo.addPayment(orphan.ID, 800, now.AddDate(0, 0, -3))

	uc := New(repo, nil, nil, nil)
	sum, err := uc.RunAllChecks(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.OverduePayments)
	assert.Equal(t, 1, sum.Skipped)
	assert.Len(t, repo.notifications, 1)
}

func TestRunNotificationSweepRecordsRun(t *testing.T) {
	now := date(2025, time.July, 1)
	repo := newFakeRepo(now)
	owner := uuid.New()
	apt := repo.addApartment(owner, "Unit 6B")
	tenant := repo.addTenant(apt.ID, "Lee", nil)
	repo.addPayment(tenant.ID, 1000, now.AddDate(0, 0, -10))

	uc := New(repo, nil, nil, nil)
	sum, err := uc.RunNotificationSweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.OverduePayments)

	require.Len(t, repo.sweepRuns, 1)
	for _, run := range repo.sweepRuns {
		assert.Equal(t, SweepRunStatusSucceeded, run.Status)
		require.NotNil(t, run.FinishedAt)
		assert.JSONEq(t, `{"overdue_payments":1,"lease_expirations":0,"skipped":0}`, string(run.Result))
	}
}

func TestDaysBetweenUsesCalendarDays(t *testing.T) {
	due := time.Date(2025, time.January, 1, 23, 30, 0, 0, time.UTC)
	now := time.Date(2025, time.January, 2, 0, 10, 0, 0, time.UTC)
	assert.Equal(t, 1, daysBetween(due, now))
	assert.Equal(t, 0, daysBetween(now, now))
}
