package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwellify/dwellify/internal/usecase"
)

type Tenant struct {
	ID             uuid.UUID       `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID         *uuid.UUID      `gorm:"column:user_id;type:uuid"`
	User           *User           `gorm:"foreignKey:UserID;references:ID"`
	ApartmentID    uuid.UUID       `gorm:"column:apartment_id;type:uuid;"`
	Apartment      *Apartment      `gorm:"foreignKey:ApartmentID;references:ID"`
	Name           string          `gorm:"column:name;type:varchar(255)"`
	Email          string          `gorm:"column:email;type:varchar(255)"`
	Phone          string          `gorm:"column:phone;type:varchar(64)"`
	LeaseStartDate time.Time       `gorm:"column:lease_start_date"`
	LeaseEndDate   *time.Time      `gorm:"column:lease_end_date"`
	Status         string          `gorm:"column:status;type:varchar(32)"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
	DeletedAt      *gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

func (s *service) ListTenants(ctx context.Context, opt usecase.ListTenantsOption) ([]usecase.Tenant, int, error) {
	var (
		tenants  []Tenant
		utenants []usecase.Tenant
		count    int64
	)

	db := s.db.Model([]Tenant{}).WithContext(ctx)

	if opt.ApartmentID != "" {
		db = db.Where("apartment_id = ?", opt.ApartmentID)
	}
	if opt.Status != "" {
		db = db.Where("tenants.status = ?", opt.Status)
	}
	if opt.Name != "" {
		db = db.Where("tenants.name ILIKE ?", "%"+opt.Name+"%")
	}
	if opt.OwnerID != "" {
		db = db.Joins("Apartment").Where("owner_id = ?", opt.OwnerID)
	}

	var (
		orderIn = "DESC"
		orderBy = "tenants.created_at"
	)
	if opt.SortBy != "" {
		orderBy = opt.SortBy
	}
	if opt.SortIn != "" {
		orderIn = opt.SortIn
	}

	err := db.
		Preload("Apartment").
		Count(&count).
		Offset(opt.Skip).
		Limit(opt.Limit).
		Order(orderBy + " " + orderIn).
		Find(&tenants).
		Error
	if err != nil {
		return nil, 0, err
	}

	for _, t := range tenants {
		ut := t.ConvertToUsecase()
		if t.Apartment != nil {
			apt := t.Apartment.ConvertToUsecase()
			ut.Apartment = &apt
		}
		utenants = append(utenants, ut)
	}

	return utenants, int(count), nil
}

func (s *service) GetTenantByID(ctx context.Context, id uuid.UUID) (usecase.Tenant, error) {
	var t Tenant
	if err := s.db.WithContext(ctx).
		Preload("Apartment").
		Where("id = ?", id).
		First(&t).Error; err != nil {
		return usecase.Tenant{}, err
	}

	ut := t.ConvertToUsecase()
	if t.Apartment != nil {
		apt := t.Apartment.ConvertToUsecase()
		ut.Apartment = &apt
	}
	return ut, nil
}

func (s *service) CreateTenant(ctx context.Context, tenant usecase.Tenant) (usecase.Tenant, error) {
	t := Tenant{
		UserID:         tenant.UserID,
		ApartmentID:    tenant.ApartmentID,
		Name:           tenant.Name,
		Email:          tenant.Email,
		Phone:          tenant.Phone,
		LeaseStartDate: tenant.LeaseStartDate,
		LeaseEndDate:   tenant.LeaseEndDate,
		Status:         tenant.Status,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&t).Error; err != nil {
		return usecase.Tenant{}, err
	}
	return t.ConvertToUsecase(), nil
}

func (s *service) UpdateTenant(ctx context.Context, tenant usecase.Tenant) (usecase.Tenant, error) {
	t := Tenant{
		UserID:         tenant.UserID,
		Name:           tenant.Name,
		Email:          tenant.Email,
		Phone:          tenant.Phone,
		LeaseStartDate: tenant.LeaseStartDate,
		LeaseEndDate:   tenant.LeaseEndDate,
		Status:         tenant.Status,
	}
	if err := s.db.WithContext(ctx).
		Model(&t).
		Clauses(clause.Returning{}).
		Where("id = ?", tenant.ID).
		Updates(&t).Error; err != nil {
		return usecase.Tenant{}, err
	}
	return t.ConvertToUsecase(), nil
}

// ListExpiringTenants returns active tenants whose lease ends inside
// [from, to), apartment preloaded for owner resolution.
func (s *service) ListExpiringTenants(ctx context.Context, from, to time.Time) ([]usecase.Tenant, error) {
	var tenants []Tenant

	err := s.db.Model([]Tenant{}).WithContext(ctx).
		Preload("Apartment").
		Where("status = ?", usecase.TenantStatusActive).
		Where("lease_end_date IS NOT NULL").
		Where("lease_end_date >= ? AND lease_end_date < ?", from, to).
		Find(&tenants).
		Error
	if err != nil {
		return nil, err
	}

	utenants := make([]usecase.Tenant, 0, len(tenants))
	for _, t := range tenants {
		ut := t.ConvertToUsecase()
		if t.Apartment != nil {
			apt := t.Apartment.ConvertToUsecase()
			ut.Apartment = &apt
		}
		utenants = append(utenants, ut)
	}

	return utenants, nil
}

// Convert core model to Usecase
func (t Tenant) ConvertToUsecase() usecase.Tenant {
	var d *time.Time
	if t.DeletedAt != nil {
		d = &t.DeletedAt.Time
	}
	return usecase.Tenant{
		ID:             t.ID,
		UserID:         t.UserID,
		ApartmentID:    t.ApartmentID,
		Name:           t.Name,
		Email:          t.Email,
		Phone:          t.Phone,
		LeaseStartDate: t.LeaseStartDate,
		LeaseEndDate:   t.LeaseEndDate,
		Status:         t.Status,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		DeletedAt:      d,
	}
}
