package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwellify/dwellify/internal/usecase"
)

type Apartment struct {
	ID         uuid.UUID       `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	OwnerID    uuid.UUID       `gorm:"column:owner_id;type:uuid;"`
	Owner      *User           `gorm:"foreignKey:OwnerID;references:ID"`
	Name       string          `gorm:"column:name;type:varchar(255)"`
	Unit       string          `gorm:"column:unit;type:varchar(64)"`
	Address    string          `gorm:"column:address;type:varchar(255)"`
	RentAmount int             `gorm:"column:rent_amount;type:int"`
	Status     string          `gorm:"column:status;type:varchar(32)"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
	DeletedAt  *gorm.DeletedAt `gorm:"column:deleted_at"`

	Tenants []Tenant
}

func (Apartment) TableName() string {
	return "apartments"
}

func (s *service) ListApartments(ctx context.Context, opt usecase.ListApartmentsOption) ([]usecase.Apartment, int, error) {
	var (
		apts  []Apartment
		uapts []usecase.Apartment
		count int64
	)

	db := s.db.Model([]Apartment{}).WithContext(ctx)

	if opt.OwnerID != "" {
		db = db.Where("owner_id = ?", opt.OwnerID)
	}
	if opt.Status != "" {
		db = db.Where("status = ?", opt.Status)
	}
	if opt.Name != "" {
		db = db.Where("name ILIKE ?", "%"+opt.Name+"%")
	}

	var (
		orderIn = "DESC"
		orderBy = "created_at"
	)
	if opt.SortBy != "" {
		orderBy = opt.SortBy
	}
	if opt.SortIn != "" {
		orderIn = opt.SortIn
	}

	err := db.
		Preload("Owner").
		Count(&count).
		Offset(opt.Skip).
		Limit(opt.Limit).
		Order(orderBy + " " + orderIn).
		Find(&apts).
		Error
	if err != nil {
		return nil, 0, err
	}

	for _, a := range apts {
		ua := a.ConvertToUsecase()
		if a.Owner != nil {
			owner := a.Owner.ConvertToUsecase()
			ua.Owner = &owner
		}
		uapts = append(uapts, ua)
	}

	return uapts, int(count), nil
}

func (s *service) GetApartmentByID(ctx context.Context, id uuid.UUID) (usecase.Apartment, error) {
	var a Apartment
	if err := s.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", id).
		First(&a).Error; err != nil {
		return usecase.Apartment{}, err
	}

	ua := a.ConvertToUsecase()
	if a.Owner != nil {
		owner := a.Owner.ConvertToUsecase()
		ua.Owner = &owner
	}
	return ua, nil
}

func (s *service) CreateApartment(ctx context.Context, apt usecase.Apartment) (usecase.Apartment, error) {
	a := Apartment{
		OwnerID:    apt.OwnerID,
		Name:       apt.Name,
		Unit:       apt.Unit,
		Address:    apt.Address,
		RentAmount: apt.RentAmount,
		Status:     apt.Status,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&a).Error; err != nil {
		return usecase.Apartment{}, err
	}
	return a.ConvertToUsecase(), nil
}

func (s *service) UpdateApartment(ctx context.Context, apt usecase.Apartment) (usecase.Apartment, error) {
	a := Apartment{
		Name:       apt.Name,
		Unit:       apt.Unit,
		Address:    apt.Address,
		RentAmount: apt.RentAmount,
		Status:     apt.Status,
	}
	if err := s.db.WithContext(ctx).
		Model(&a).
		Clauses(clause.Returning{}).
		Where("id = ?", apt.ID).
		Updates(&a).Error; err != nil {
		return usecase.Apartment{}, err
	}
	return a.ConvertToUsecase(), nil
}

func (s *service) DeleteApartment(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&Apartment{}).Error
}

// Convert core model to Usecase
func (a Apartment) ConvertToUsecase() usecase.Apartment {
	var d *time.Time
	if a.DeletedAt != nil {
		d = &a.DeletedAt.Time
	}
	return usecase.Apartment{
		ID:         a.ID,
		OwnerID:    a.OwnerID,
		Name:       a.Name,
		Unit:       a.Unit,
		Address:    a.Address,
		RentAmount: a.RentAmount,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		DeletedAt:  d,
	}
}
