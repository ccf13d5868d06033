package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TenantStatusActive   = "active"
	TenantStatusInactive = "inactive"
)

// Tenant carries the lease: start date, optional end date and status.
type Tenant struct {
	ID             uuid.UUID
	UserID         *uuid.UUID
	ApartmentID    uuid.UUID
	Name           string
	Email          string
	Phone          string
	LeaseStartDate time.Time
	LeaseEndDate   *time.Time
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time

	Apartment *Apartment
}

type ListTenantsOption struct {
	Skip        int
	Limit       int
	OwnerID     string
	ApartmentID string
	Status      string
	Name        string
	SortBy      string
	SortIn      string
}

func (u Usecase) ListTenants(ctx context.Context, opt ListTenantsOption) ([]Tenant, int, error) {
	ownerID, err := scopeToOwner(ctx, opt.OwnerID)
	if err != nil {
		return nil, 0, err
	}
	opt.OwnerID = ownerID
	return u.repo.ListTenants(ctx, opt)
}

func (u Usecase) GetTenantByID(ctx context.Context, id uuid.UUID) (Tenant, error) {
	return u.repo.GetTenantByID(ctx, id)
}

func (u Usecase) CreateTenant(ctx context.Context, t Tenant) (Tenant, error) {
	if t.ApartmentID == uuid.Nil {
		return Tenant{}, fmt.Errorf("apartment id is required")
	}
	if t.LeaseEndDate != nil && !t.LeaseEndDate.After(t.LeaseStartDate) {
		return Tenant{}, fmt.Errorf("lease end date must be after lease start date")
	}
	if t.Status == "" {
		t.Status = TenantStatusActive
	}

	created, err := u.repo.CreateTenant(ctx, t)
	if err != nil {
		return Tenant{}, err
	}

	// Moving a tenant in marks the apartment occupied.
	if created.Status == TenantStatusActive {
		if _, err := u.repo.UpdateApartment(ctx, Apartment{
			ID:     created.ApartmentID,
			Status: ApartmentStatusOccupied,
		}); err != nil {
			return created, fmt.Errorf("update apartment status: %w", err)
		}
	}

	return created, nil
}

func (u Usecase) UpdateTenant(ctx context.Context, t Tenant) (Tenant, error) {
	updated, err := u.repo.UpdateTenant(ctx, t)
	if err != nil {
		return Tenant{}, err
	}

	if updated.Status == TenantStatusInactive && updated.ApartmentID != uuid.Nil {
		active, _, err := u.repo.ListTenants(ctx, ListTenantsOption{
			ApartmentID: updated.ApartmentID.String(),
			Status:      TenantStatusActive,
			Limit:       1,
		})
		if err != nil {
			return updated, err
		}
		if len(active) == 0 {
			if _, err := u.repo.UpdateApartment(ctx, Apartment{
				ID:     updated.ApartmentID,
				Status: ApartmentStatusVacant,
			}); err != nil {
				return updated, fmt.Errorf("update apartment status: %w", err)
			}
		}
	}

	return updated, nil
}
