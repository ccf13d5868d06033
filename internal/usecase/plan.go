package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwellify/dwellify/internal/config"
)

// Plan is a subscription tier. Checkout and billing run on the payment
// provider's hosted flows; the backend only stores the catalogue.
type Plan struct {
	ID             uuid.UUID
	Name           string
	Price          int
	ApartmentLimit int
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

type ListPlansOption struct {
	Skip  int
	Limit int
}

func (u Usecase) ListPlans(ctx context.Context, opt ListPlansOption) ([]Plan, int, error) {
	return u.repo.ListPlans(ctx, opt)
}

func (u Usecase) GetPlanByID(ctx context.Context, id uuid.UUID) (Plan, error) {
	return u.repo.GetPlanByID(ctx, id)
}

func requireAdmin(ctx context.Context) error {
	role, ok := ctx.Value(config.CTX_KEY_USER_ROLE).(string)
	if !ok {
		return fmt.Errorf("user role not found in context")
	}
	if role != UserRoleAdmin {
		return fmt.Errorf("admin role required")
	}
	return nil
}

func (u Usecase) CreatePlan(ctx context.Context, p Plan) (Plan, error) {
	if err := requireAdmin(ctx); err != nil {
		return Plan{}, err
	}
	if p.Name == "" {
		return Plan{}, fmt.Errorf("name is required")
	}
	return u.repo.CreatePlan(ctx, p)
}

func (u Usecase) UpdatePlan(ctx context.Context, p Plan) (Plan, error) {
	if err := requireAdmin(ctx); err != nil {
		return Plan{}, err
	}
	return u.repo.UpdatePlan(ctx, p)
}

func (u Usecase) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return u.repo.DeletePlan(ctx, id)
}
