package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// leaseThresholds are the look-ahead windows, in days, at which owners
// are alerted about an upcoming lease end. Ascending, so the smallest
// matching threshold wins.
var leaseThresholds = [...]int{30, 60, 90}

const (
	SweepRunStatusRunning   = "running"
	SweepRunStatusSucceeded = "succeeded"
	SweepRunStatusFailed    = "failed"
)

// SweepRun is the audit record of one sweep execution.
type SweepRun struct {
	ID         uuid.UUID
	Status     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Result     datatypes.JSON
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ListSweepRunsOption struct {
	Skip   int
	Limit  int
	Status string
}

// SweepSummary is the per-run count of emitted notifications.
type SweepSummary struct {
	OverduePayments  int `json:"overdue_payments"`
	LeaseExpirations int `json:"lease_expirations"`
	Skipped          int `json:"skipped"`
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween returns the whole calendar-day difference between from
// and to, ignoring the time of day on either side.
func daysBetween(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)).Hours() / 24)
}

// RunAllChecks executes one notification sweep anchored at now: it
// transitions past-due pending payments to overdue and emits owner
// notifications for overdue payments and leases hitting a look-ahead
// threshold. Re-running with the same now is a no-op; the dedup gate
// keys on (owner, type, reference, calendar day).
func (u Usecase) RunAllChecks(ctx context.Context, now time.Time) (SweepSummary, error) {
	var sum SweepSummary

	if err := u.checkOverduePayments(ctx, now, &sum); err != nil {
		return sum, fmt.Errorf("check overdue payments: %w", err)
	}
	if err := u.checkExpiringLeases(ctx, now, &sum); err != nil {
		return sum, fmt.Errorf("check expiring leases: %w", err)
	}

	return sum, nil
}

// checkOverduePayments handles unpaid payments with due_date strictly
// before now. Pending ones are transitioned to overdue exactly once; a
// payment that stays overdue may be re-notified on a later calendar
// day, never twice on the same one.
func (u Usecase) checkOverduePayments(ctx context.Context, now time.Time, sum *SweepSummary) error {
	payments, err := u.repo.ListSweepRentPayments(ctx, now)
	if err != nil {
		return err
	}

	day := startOfDay(now)

	for _, p := range payments {
		if p.Tenant == nil || p.Tenant.Apartment == nil || p.Tenant.Apartment.OwnerID == uuid.Nil {
			sum.Skipped++
			slog.WarnContext(ctx, "sweep: payment missing tenant or apartment owner, skipping",
				slog.String("payment_id", p.ID.String()))
			continue
		}
		ownerID := p.Tenant.Apartment.OwnerID

		if p.Status == PaymentStatusPending {
			if _, err := u.repo.MarkRentPaymentOverdue(ctx, p.ID); err != nil {
				return fmt.Errorf("mark payment %s overdue: %w", p.ID, err)
			}
		}

		exists, err := u.repo.HasNotificationSince(ctx, ownerID, NotificationTypeOverduePayment, p.ID, day)
		if err != nil {
			return fmt.Errorf("dedup check for payment %s: %w", p.ID, err)
		}
		if exists {
			continue
		}

		days := daysBetween(p.DueDate, now)
		refID := p.ID
		if _, err := u.repo.CreateNotification(ctx, Notification{
			UserID: ownerID,
			Type:   NotificationTypeOverduePayment,
			Title:  "Overdue rent payment",
			Message: fmt.Sprintf("%s owes %d for %s: %d day(s) overdue (due %s)",
				p.Tenant.Name, p.Amount, p.Tenant.Apartment.Name, days,
				p.DueDate.Format("2006-01-02")),
			ReferenceID:   &refID,
			ReferenceType: ReferenceTypeRentPayment,
		}); err != nil {
			return fmt.Errorf("create notification for payment %s: %w", p.ID, err)
		}
		sum.OverduePayments++
	}

	return nil
}

// checkExpiringLeases alerts owners about active leases ending exactly
// 30, 60 or 90 days from now. Exact-day matching keeps each threshold
// to a single calendar day, so the per-day dedup gate also bounds each
// (tenant, threshold) pair to one notification.
func (u Usecase) checkExpiringLeases(ctx context.Context, now time.Time, sum *SweepSummary) error {
	var (
		day  = startOfDay(now)
		from = day.AddDate(0, 0, leaseThresholds[0])
		to   = day.AddDate(0, 0, leaseThresholds[len(leaseThresholds)-1]+1)
	)

	tenants, err := u.repo.ListExpiringTenants(ctx, from, to)
	if err != nil {
		return err
	}

	for _, t := range tenants {
		if t.LeaseEndDate == nil || t.Status != TenantStatusActive {
			continue
		}

		threshold := 0
		endDay := startOfDay(*t.LeaseEndDate)
		for _, th := range leaseThresholds {
			if endDay.Equal(day.AddDate(0, 0, th)) {
				threshold = th
				break
			}
		}
		if threshold == 0 {
			continue
		}

		if t.Apartment == nil || t.Apartment.OwnerID == uuid.Nil {
			sum.Skipped++
			slog.WarnContext(ctx, "sweep: tenant missing apartment owner, skipping",
				slog.String("tenant_id", t.ID.String()))
			continue
		}
		ownerID := t.Apartment.OwnerID

		exists, err := u.repo.HasNotificationSince(ctx, ownerID, NotificationTypeLeaseExpiry, t.ID, day)
		if err != nil {
			return fmt.Errorf("dedup check for tenant %s: %w", t.ID, err)
		}
		if exists {
			continue
		}

		refID := t.ID
		if _, err := u.repo.CreateNotification(ctx, Notification{
			UserID: ownerID,
			Type:   NotificationTypeLeaseExpiry,
			Title:  fmt.Sprintf("Lease expiring in %d days", threshold),
			Message: fmt.Sprintf("Lease for %s at %s ends on %s (%d days from now)",
				t.Name, t.Apartment.Name, t.LeaseEndDate.Format("2006-01-02"), threshold),
			ReferenceID:   &refID,
			ReferenceType: ReferenceTypeTenant,
		}); err != nil {
			return fmt.Errorf("create notification for tenant %s: %w", t.ID, err)
		}
		sum.LeaseExpirations++
	}

	return nil
}

// RunNotificationSweep wraps RunAllChecks with audit bookkeeping. It is
// the entry point the background worker calls; failures surface to the
// job runner whose retry is safe against the idempotent sweep.
func (u Usecase) RunNotificationSweep(ctx context.Context, now time.Time) (SweepSummary, error) {
	run, err := u.repo.CreateSweepRun(ctx, SweepRun{
		Status:    SweepRunStatusRunning,
		StartedAt: now,
	})
	if err != nil {
		return SweepSummary{}, fmt.Errorf("create sweep run: %w", err)
	}

	sum, sweepErr := u.RunAllChecks(ctx, now)

	finished := time.Now()
	run.FinishedAt = &finished
	if sweepErr != nil {
		run.Status = SweepRunStatusFailed
		run.Error = sweepErr.Error()
	} else {
		run.Status = SweepRunStatusSucceeded
	}
	if result, err := json.Marshal(sum); err == nil {
		run.Result = result
	}

	if _, err := u.repo.UpdateSweepRun(ctx, run); err != nil {
		slog.ErrorContext(ctx, "sweep: update run record",
			slog.String("run_id", run.ID.String()),
			slog.String("err", err.Error()))
	}

	if sweepErr != nil {
		return sum, sweepErr
	}

	slog.InfoContext(ctx, "sweep: completed",
		slog.Int("overdue_payments", sum.OverduePayments),
		slog.Int("lease_expirations", sum.LeaseExpirations),
		slog.Int("skipped", sum.Skipped))

	return sum, nil
}

// EnqueueSweep pushes a sweep task onto the queue for out-of-schedule
// runs from the admin API.
func (u Usecase) EnqueueSweep(ctx context.Context) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if u.queueClient == nil {
		return fmt.Errorf("queue client is not configured")
	}
	return u.queueClient.EnqueueSweep(ctx)
}

func (u Usecase) ListSweepRuns(ctx context.Context, opt ListSweepRunsOption) ([]SweepRun, int, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	return u.repo.ListSweepRuns(ctx, opt)
}
