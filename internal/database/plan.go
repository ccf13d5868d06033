package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwellify/dwellify/internal/usecase"
)

type Plan struct {
	ID             uuid.UUID       `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name           string          `gorm:"column:name;type:varchar(255)"`
	Price          int             `gorm:"column:price;type:int"`
	ApartmentLimit int             `gorm:"column:apartment_limit;type:int"`
	Description    string          `gorm:"column:description;type:text"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
	DeletedAt      *gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (Plan) TableName() string {
	return "plans"
}

func (s *service) ListPlans(ctx context.Context, opt usecase.ListPlansOption) ([]usecase.Plan, int, error) {
	var (
		plans  []Plan
		uplans []usecase.Plan
		count  int64
	)

	err := s.db.Model([]Plan{}).WithContext(ctx).
		Count(&count).
		Offset(opt.Skip).
		Limit(opt.Limit).
		Order("price ASC").
		Find(&plans).
		Error
	if err != nil {
		return nil, 0, err
	}

	for _, p := range plans {
		uplans = append(uplans, p.ConvertToUsecase())
	}

	return uplans, int(count), nil
}

func (s *service) GetPlanByID(ctx context.Context, id uuid.UUID) (usecase.Plan, error) {
	var p Plan
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return usecase.Plan{}, err
	}
	return p.ConvertToUsecase(), nil
}

func (s *service) CreatePlan(ctx context.Context, plan usecase.Plan) (usecase.Plan, error) {
	p := Plan{
		Name:           plan.Name,
		Price:          plan.Price,
		ApartmentLimit: plan.ApartmentLimit,
		Description:    plan.Description,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&p).Error; err != nil {
		return usecase.Plan{}, err
	}
	return p.ConvertToUsecase(), nil
}

func (s *service) UpdatePlan(ctx context.Context, plan usecase.Plan) (usecase.Plan, error) {
	p := Plan{
		Name:           plan.Name,
		Price:          plan.Price,
		ApartmentLimit: plan.ApartmentLimit,
		Description:    plan.Description,
	}
	if err := s.db.WithContext(ctx).
		Model(&p).
		Clauses(clause.Returning{}).
		Where("id = ?", plan.ID).
		Updates(&p).Error; err != nil {
		return usecase.Plan{}, err
	}
	return p.ConvertToUsecase(), nil
}

func (s *service) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&Plan{}).Error
}

// Convert core model to Usecase
func (p Plan) ConvertToUsecase() usecase.Plan {
	var d *time.Time
	if p.DeletedAt != nil {
		d = &p.DeletedAt.Time
	}
	return usecase.Plan{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price,
		ApartmentLimit: p.ApartmentLimit,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		DeletedAt:      d,
	}
}
