package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwellify/dwellify/internal/usecase"
)

type MaintenanceTask struct {
	ID          uuid.UUID       `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	ApartmentID uuid.UUID       `gorm:"column:apartment_id;type:uuid;"`
	Apartment   *Apartment      `gorm:"foreignKey:ApartmentID;references:ID"`
	Title       string          `gorm:"column:title;type:varchar(255)"`
	Description string          `gorm:"column:description;type:text"`
	Status      string          `gorm:"column:status;type:varchar(32)"`
	DueDate     *time.Time      `gorm:"column:due_date"`
	CompletedAt *time.Time      `gorm:"column:completed_at"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	DeletedAt   *gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (MaintenanceTask) TableName() string {
	return "maintenance_tasks"
}

func (s *service) ListMaintenanceTasks(ctx context.Context, opt usecase.ListMaintenanceTasksOption) ([]usecase.MaintenanceTask, int, error) {
	var (
		tasks  []MaintenanceTask
		utasks []usecase.MaintenanceTask
		count  int64
	)

	db := s.db.Model([]MaintenanceTask{}).WithContext(ctx)

	if opt.ApartmentID != "" {
		db = db.Where("maintenance_tasks.apartment_id = ?", opt.ApartmentID)
	}
	if opt.Status != "" {
		db = db.Where("maintenance_tasks.status = ?", opt.Status)
	}
	if opt.OwnerID != "" {
		db = db.Joins("Apartment").Where("owner_id = ?", opt.OwnerID)
	}

	var (
		orderIn = "DESC"
		orderBy = "maintenance_tasks.created_at"
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
		Find(&tasks).
		Error
	if err != nil {
		return nil, 0, err
	}

	for _, t := range tasks {
		ut := t.ConvertToUsecase()
		if t.Apartment != nil {
			apt := t.Apartment.ConvertToUsecase()
			ut.Apartment = &apt
		}
		utasks = append(utasks, ut)
	}

	return utasks, int(count), nil
}

func (s *service) GetMaintenanceTaskByID(ctx context.Context, id uuid.UUID) (usecase.MaintenanceTask, error) {
	var t MaintenanceTask
	if err := s.db.WithContext(ctx).
		Preload("Apartment").
		Where("id = ?", id).
		First(&t).Error; err != nil {
		return usecase.MaintenanceTask{}, err
	}

	ut := t.ConvertToUsecase()
	if t.Apartment != nil {
		apt := t.Apartment.ConvertToUsecase()
		ut.Apartment = &apt
	}
	return ut, nil
}

func (s *service) CreateMaintenanceTask(ctx context.Context, task usecase.MaintenanceTask) (usecase.MaintenanceTask, error) {
	t := MaintenanceTask{
		ApartmentID: task.ApartmentID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&t).Error; err != nil {
		return usecase.MaintenanceTask{}, err
	}
	return t.ConvertToUsecase(), nil
}

func (s *service) UpdateMaintenanceTask(ctx context.Context, task usecase.MaintenanceTask) (usecase.MaintenanceTask, error) {
	t := MaintenanceTask{
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
	}
	if err := s.db.WithContext(ctx).
		Model(&t).
		Clauses(clause.Returning{}).
		Where("id = ?", task.ID).
		Updates(&t).Error; err != nil {
		return usecase.MaintenanceTask{}, err
	}
	return t.ConvertToUsecase(), nil
}

// Convert core model to Usecase
func (t MaintenanceTask) ConvertToUsecase() usecase.MaintenanceTask {
	var d *time.Time
	if t.DeletedAt != nil {
		d = &t.DeletedAt.Time
	}
	return usecase.MaintenanceTask{
		ID:          t.ID,
		ApartmentID: t.ApartmentID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DeletedAt:   d,
	}
}
