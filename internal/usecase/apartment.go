package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwellify/dwellify/internal/config"
)

const (
	ApartmentStatusVacant   = "vacant"
	ApartmentStatusOccupied = "occupied"
)

type Apartment struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Unit       string
	Address    string
	RentAmount int
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time

	Owner *User
}

type ListApartmentsOption struct {
	Skip    int
	Limit   int
	OwnerID string
	Status  string
	Name    string
	SortBy  string
	SortIn  string
}

// scopeToOwner narrows list filters to the acting user unless they are
// an admin.
func scopeToOwner(ctx context.Context, ownerID string) (string, error) {
	role, ok := ctx.Value(config.CTX_KEY_USER_ROLE).(string)
	if !ok {
		return "", fmt.Errorf("user role not found in context")
	}
	if role == UserRoleAdmin {
		return ownerID, nil
	}
	userID, ok := ctx.Value(config.CTX_KEY_USER_ID).(uuid.UUID)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID.String(), nil
}

func (u Usecase) ListApartments(ctx context.Context, opt ListApartmentsOption) ([]Apartment, int, error) {
	ownerID, err := scopeToOwner(ctx, opt.OwnerID)
	if err != nil {
		return nil, 0, err
	}
	opt.OwnerID = ownerID
	return u.repo.ListApartments(ctx, opt)
}

func (u Usecase) GetApartmentByID(ctx context.Context, id uuid.UUID) (Apartment, error) {
	return u.repo.GetApartmentByID(ctx, id)
}

func (u Usecase) CreateApartment(ctx context.Context, a Apartment) (Apartment, error) {
	if a.OwnerID == uuid.Nil {
		userID, ok := ctx.Value(config.CTX_KEY_USER_ID).(uuid.UUID)
		if !ok {
			return Apartment{}, fmt.Errorf("user id not found in context")
		}
		a.OwnerID = userID
	}
	if a.Status == "" {
		a.Status = ApartmentStatusVacant
	}
	return u.repo.CreateApartment(ctx, a)
}

func (u Usecase) UpdateApartment(ctx context.Context, a Apartment) (Apartment, error) {
	return u.repo.UpdateApartment(ctx, a)
}

func (u Usecase) DeleteApartment(ctx context.Context, id uuid.UUID) error {
	tenants, _, err := u.repo.ListTenants(ctx, ListTenantsOption{
		ApartmentID: id.String(),
		Status:      TenantStatusActive,
		Limit:       1,
	})
	if err != nil {
		return err
	}
	if len(tenants) > 0 {
		return fmt.Errorf("apartment %s has an active tenant", id)
	}
	return u.repo.DeleteApartment(ctx, id)
}
