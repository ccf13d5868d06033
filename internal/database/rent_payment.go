package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwellify/dwellify/internal/usecase"
)

type RentPayment struct {
	ID          uuid.UUID       `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	TenantID    uuid.UUID       `gorm:"column:tenant_id;type:uuid;"`
	Tenant      *Tenant         `gorm:"foreignKey:TenantID;references:ID"`
	ApartmentID uuid.UUID       `gorm:"column:apartment_id;type:uuid;"`
	Apartment   *Apartment      `gorm:"foreignKey:ApartmentID;references:ID"`
	Amount      int             `gorm:"column:amount;type:int"`
	DueDate     time.Time       `gorm:"column:due_date"`
	PaymentDate *time.Time      `gorm:"column:payment_date"`
	Status      string          `gorm:"column:status;type:varchar(32)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	DeletedAt   *gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (RentPayment) TableName() string {
	return "rent_payments"
}

func (s *service) ListRentPayments(ctx context.Context, opt usecase.ListRentPaymentsOption) ([]usecase.RentPayment, int, error) {
	var (
		payments  []RentPayment
		upayments []usecase.RentPayment
		count     int64
	)

	db := s.db.Model([]RentPayment{}).WithContext(ctx)

	if opt.TenantID != "" {
		db = db.Where("tenant_id = ?", opt.TenantID)
	}
	if opt.ApartmentID != "" {
		db = db.Where("rent_payments.apartment_id = ?", opt.ApartmentID)
	}
	if opt.Status != "" {
		db = db.Where("rent_payments.status = ?", opt.Status)
	}
	if opt.DueDateFrom != nil {
		db = db.Where("due_date >= ?", opt.DueDateFrom)
	}
	if opt.DueDateTo != nil {
		db = db.Where("due_date < ?", opt.DueDateTo)
	}
	if opt.OwnerID != "" {
		db = db.Joins("Apartment").Where("owner_id = ?", opt.OwnerID)
	}

	var (
		orderIn = "DESC"
		orderBy = "due_date"
	)
	if opt.SortBy != "" {
		orderBy = opt.SortBy
	}
	if opt.SortIn != "" {
		orderIn = opt.SortIn
	}

	err := db.
		Preload("Tenant").
		Preload("Apartment").
		Count(&count).
		Offset(opt.Skip).
		Limit(opt.Limit).
		Order(orderBy + " " + orderIn).
		Find(&payments).
		Error
	if err != nil {
		return nil, 0, err
	}

	for _, p := range payments {
		upayments = append(upayments, p.convertWithRelations())
	}

	return upayments, int(count), nil
}

func (s *service) GetRentPaymentByID(ctx context.Context, id uuid.UUID) (usecase.RentPayment, error) {
	var p RentPayment
	if err := s.db.WithContext(ctx).
		Preload("Tenant").
		Preload("Apartment").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return usecase.RentPayment{}, err
	}
	return p.convertWithRelations(), nil
}

func (s *service) CreateRentPayment(ctx context.Context, payment usecase.RentPayment) (usecase.RentPayment, error) {
	p := RentPayment{
		TenantID:    payment.TenantID,
		ApartmentID: payment.ApartmentID,
		Amount:      payment.Amount,
		DueDate:     payment.DueDate,
		Status:      payment.Status,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&p).Error; err != nil {
		return usecase.RentPayment{}, err
	}
	return p.ConvertToUsecase(), nil
}

func (s *service) MarkRentPaymentPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (usecase.RentPayment, error) {
	var p RentPayment
	err := s.db.WithContext(ctx).
		Model(&p).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       usecase.PaymentStatusPaid,
			"payment_date": paidAt,
		}).Error
	if err != nil {
		return usecase.RentPayment{}, err
	}
	return p.ConvertToUsecase(), nil
}

// MarkRentPaymentOverdue transitions a payment to overdue only while it
// is still pending, so concurrent mark-paid flows and sweep re-runs
// cannot double-apply it.
func (s *service) MarkRentPaymentOverdue(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&RentPayment{}).
		Where("id = ? AND status = ?", id, usecase.PaymentStatusPending).
		Update("status", usecase.PaymentStatusOverdue)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListSweepRentPayments returns unpaid payments strictly past due at
// before, with tenant and apartment preloaded for owner resolution.
func (s *service) ListSweepRentPayments(ctx context.Context, before time.Time) ([]usecase.RentPayment, error) {
	var payments []RentPayment

	err := s.db.Model([]RentPayment{}).WithContext(ctx).
		Preload("Tenant").
		Preload("Tenant.Apartment").
		Where("payment_date IS NULL").
		Where("status IN ?", []string{usecase.PaymentStatusPending, usecase.PaymentStatusOverdue}).
		Where("due_date < ?", before).
		Find(&payments).
		Error
	if err != nil {
		return nil, err
	}

	upayments := make([]usecase.RentPayment, 0, len(payments))
	for _, p := range payments {
		up := p.ConvertToUsecase()
		if p.Tenant != nil {
			tenant := p.Tenant.ConvertToUsecase()
			if p.Tenant.Apartment != nil {
				apt := p.Tenant.Apartment.ConvertToUsecase()
				tenant.Apartment = &apt
			}
			up.Tenant = &tenant
		}
		upayments = append(upayments, up)
	}

	return upayments, nil
}

func (p RentPayment) convertWithRelations() usecase.RentPayment {
	up := p.ConvertToUsecase()
	if p.Tenant != nil {
		tenant := p.Tenant.ConvertToUsecase()
		up.Tenant = &tenant
	}
	if p.Apartment != nil {
		apt := p.Apartment.ConvertToUsecase()
		up.Apartment = &apt
	}
	return up
}

// Convert core model to Usecase
func (p RentPayment) ConvertToUsecase() usecase.RentPayment {
	var d *time.Time
	if p.DeletedAt != nil {
		d = &p.DeletedAt.Time
	}
	return usecase.RentPayment{
		ID:          p.ID,
		TenantID:    p.TenantID,
		ApartmentID: p.ApartmentID,
		Amount:      p.Amount,
		DueDate:     p.DueDate,
		PaymentDate: p.PaymentDate,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   d,
	}
}
