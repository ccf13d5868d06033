package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fakeRepo) GetRentPaymentByID(_ context.Context, id uuid.UUID) (RentPayment, error) {
	p, ok := f.payments[id]
	if !ok {
		return RentPayment{}, fmt.Errorf("payment %s not found", id)
	}
	return *p, nil
}

func (f *fakeRepo) MarkRentPaymentPaid(_ context.Context, id uuid.UUID, paidAt time.Time) (RentPayment, error) {
	p, ok := f.payments[id]
	if !ok {
		return RentPayment{}, fmt.Errorf("payment %s not found", id)
	}
	p.Status = PaymentStatusPaid
	p.PaymentDate = &paidAt
	return *p, nil
}

func TestMarkRentPaymentPaid(t *testing.T) {
	repo := newFakeRepo(date(2025, 3, 1))
	uc := New(repo, nil, nil, nil)

	a := repo.addApartment(uuid.New(), "Unit 2B")
	tn := repo.addTenant(a.ID, "Mya", nil)
	p := repo.addPayment(tn.ID, 900, date(2025, 2, 1))

	paidAt := date(2025, 3, 1)
	paid, err := uc.MarkRentPaymentPaid(context.Background(), p.ID, paidAt)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.True(t, paid.PaymentDate.Equal(paidAt))
}

func TestMarkRentPaymentPaidIsTerminal(t *testing.T) {
	repo := newFakeRepo(date(2025, 3, 1))
	uc := New(repo, nil, nil, nil)

	a := repo.addApartment(uuid.New(), "Unit 2B")
	tn := repo.addTenant(a.ID, "Mya", nil)
	p := repo.addPayment(tn.ID, 900, date(2025, 2, 1))

	_, err := uc.MarkRentPaymentPaid(context.Background(), p.ID, date(2025, 3, 1))
	require.NoError(t, err)

	_, err = uc.MarkRentPaymentPaid(context.Background(), p.ID, date(2025, 3, 2))
	assert.Error(t, err)
}

func TestPayingOverduePaymentStopsSweepNotifications(t *testing.T) {
	owner := uuid.New()
	now := date(2025, 1, 10)
	repo := newFakeRepo(now)
	uc := New(repo, nil, nil, nil)

	a := repo.addApartment(owner, "Unit 2B")
	tn := repo.addTenant(a.ID, "Mya", nil)
	p := repo.addPayment(tn.ID, 900, date(2025, 1, 5))

	_, err := uc.RunAllChecks(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusOverdue, repo.payments[p.ID].Status)
	require.Len(t, repo.notifications, 1)

	_, err = uc.MarkRentPaymentPaid(context.Background(), p.ID, date(2025, 1, 11))
	require.NoError(t, err)

	repo.now = date(2025, 1, 12)
	sum, err := uc.RunAllChecks(context.Background(), date(2025, 1, 12))
	require.NoError(t, err)
	assert.Equal(t, 0, sum.OverduePayments)
	assert.Len(t, repo.notifications, 1)
}
