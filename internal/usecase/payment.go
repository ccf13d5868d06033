package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

type RentPayment struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ApartmentID uuid.UUID
	Amount      int
	DueDate     time.Time
	PaymentDate *time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time

	Tenant    *Tenant
	Apartment *Apartment
}

type ListRentPaymentsOption struct {
	Skip        int
	Limit       int
	OwnerID     string
	TenantID    string
	ApartmentID string
	Status      string
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	SortBy      string
	SortIn      string
}

func (u Usecase) ListRentPayments(ctx context.Context, opt ListRentPaymentsOption) ([]RentPayment, int, error) {
	ownerID, err := scopeToOwner(ctx, opt.OwnerID)
	if err != nil {
		return nil, 0, err
	}
	opt.OwnerID = ownerID
	return u.repo.ListRentPayments(ctx, opt)
}

func (u Usecase) GetRentPaymentByID(ctx context.Context, id uuid.UUID) (RentPayment, error) {
	return u.repo.GetRentPaymentByID(ctx, id)
}

func (u Usecase) CreateRentPayment(ctx context.Context, p RentPayment) (RentPayment, error) {
	if p.TenantID == uuid.Nil {
		return RentPayment{}, fmt.Errorf("tenant id is required")
	}
	if p.Amount <= 0 {
		return RentPayment{}, fmt.Errorf("amount must be positive")
	}
	if p.DueDate.IsZero() {
		return RentPayment{}, fmt.Errorf("due date is required")
	}

	if p.ApartmentID == uuid.Nil {
		t, err := u.repo.GetTenantByID(ctx, p.TenantID)
		if err != nil {
			return RentPayment{}, fmt.Errorf("look up tenant: %w", err)
		}
		p.ApartmentID = t.ApartmentID
	}

	p.Status = PaymentStatusPending
	p.PaymentDate = nil

	return u.repo.CreateRentPayment(ctx, p)
}

// MarkRentPaymentPaid records a payment. Paid is terminal: a payment
// that already has a payment date is rejected.
func (u Usecase) MarkRentPaymentPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (RentPayment, error) {
	p, err := u.repo.GetRentPaymentByID(ctx, id)
	if err != nil {
		return RentPayment{}, err
	}
	if p.Status == PaymentStatusPaid || p.PaymentDate != nil {
		return RentPayment{}, fmt.Errorf("payment %s is already paid", id)
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	return u.repo.MarkRentPaymentPaid(ctx, id, paidAt)
}
