package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/dwellify/dwellify/internal/usecase"
)

// GetDashboardMetrics computes the owner dashboard aggregates with
// count queries scoped to the owner when one is set.
func (s *service) GetDashboardMetrics(ctx context.Context, opt usecase.GetDashboardMetricsOption) (usecase.DashboardMetrics, error) {
	var m usecase.DashboardMetrics

	apartments := s.db.WithContext(ctx).Model(&Apartment{})
	if opt.OwnerID != "" {
		apartments = apartments.Where("owner_id = ?", opt.OwnerID)
	}
	apartments = apartments.Session(&gorm.Session{})

	var total, occupied int64
	if err := apartments.Count(&total).Error; err != nil {
		return m, err
	}
	if err := apartments.
		Where("status = ?", usecase.ApartmentStatusOccupied).
		Count(&occupied).Error; err != nil {
		return m, err
	}
	m.TotalApartments = int(total)
	m.OccupiedApartments = int(occupied)
	if total > 0 {
		m.OccupancyRate = float64(occupied) / float64(total)
	}

	payments := s.db.WithContext(ctx).Table("rent_payments p").
		Joins("JOIN apartments a ON p.apartment_id = a.id").
		Where("p.deleted_at IS NULL")
	if opt.OwnerID != "" {
		payments = payments.Where("a.owner_id = ?", opt.OwnerID)
	}
	if !opt.From.IsZero() && !opt.To.IsZero() {
		payments = payments.Where("p.due_date BETWEEN ? AND ?", opt.From, opt.To)
	}
	payments = payments.Session(&gorm.Session{})

	var totalPayments, paid, overdue int64
	if err := payments.Count(&totalPayments).Error; err != nil {
		return m, err
	}
	if err := payments.
		Where("p.status = ?", usecase.PaymentStatusPaid).
		Count(&paid).Error; err != nil {
		return m, err
	}
	if err := payments.
		Where("p.status = ?", usecase.PaymentStatusOverdue).
		Count(&overdue).Error; err != nil {
		return m, err
	}
	m.TotalPayments = int(totalPayments)
	m.PaidPayments = int(paid)
	m.OverduePayments = int(overdue)
	if totalPayments > 0 {
		m.CollectionRate = float64(paid) / float64(totalPayments)
	}

	tasks := s.db.WithContext(ctx).Table("maintenance_tasks t").
		Joins("JOIN apartments a ON t.apartment_id = a.id").
		Where("t.deleted_at IS NULL")
	if opt.OwnerID != "" {
		tasks = tasks.Where("a.owner_id = ?", opt.OwnerID)
	}
	tasks = tasks.Session(&gorm.Session{})

	var totalTasks, doneTasks int64
	if err := tasks.Count(&totalTasks).Error; err != nil {
		return m, err
	}
	if err := tasks.
		Where("t.status = ?", usecase.TaskStatusDone).
		Count(&doneTasks).Error; err != nil {
		return m, err
	}
	m.TotalTasks = int(totalTasks)
	m.CompletedTasks = int(doneTasks)
	if totalTasks > 0 {
		m.TaskCompliance = float64(doneTasks) / float64(totalTasks)
	}

	tenants := s.db.WithContext(ctx).Table("tenants t").
		Joins("JOIN apartments a ON t.apartment_id = a.id").
		Where("t.deleted_at IS NULL").
		Where("t.status = ?", usecase.TenantStatusActive)
	if opt.OwnerID != "" {
		tenants = tenants.Where("a.owner_id = ?", opt.OwnerID)
	}

	var activeTenants int64
	if err := tenants.Count(&activeTenants).Error; err != nil {
		return m, err
	}
	m.ActiveTenants = int(activeTenants)

	return m, nil
}
