package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusOpen       = "open"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

type MaintenanceTask struct {
	ID          uuid.UUID
	ApartmentID uuid.UUID
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time

	Apartment *Apartment
}

type ListMaintenanceTasksOption struct {
	Skip        int
	Limit       int
	OwnerID     string
	ApartmentID string
	Status      string
	SortBy      string
	SortIn      string
}

func (u Usecase) ListMaintenanceTasks(ctx context.Context, opt ListMaintenanceTasksOption) ([]MaintenanceTask, int, error) {
	ownerID, err := scopeToOwner(ctx, opt.OwnerID)
	if err != nil {
		return nil, 0, err
	}
	opt.OwnerID = ownerID
	return u.repo.ListMaintenanceTasks(ctx, opt)
}

func (u Usecase) GetMaintenanceTaskByID(ctx context.Context, id uuid.UUID) (MaintenanceTask, error) {
	return u.repo.GetMaintenanceTaskByID(ctx, id)
}

func (u Usecase) CreateMaintenanceTask(ctx context.Context, t MaintenanceTask) (MaintenanceTask, error) {
	if t.ApartmentID == uuid.Nil {
		return MaintenanceTask{}, fmt.Errorf("apartment id is required")
	}
	if t.Title == "" {
		return MaintenanceTask{}, fmt.Errorf("title is required")
	}
	if t.Status == "" {
		t.Status = TaskStatusOpen
	}
	return u.repo.CreateMaintenanceTask(ctx, t)
}

func (u Usecase) UpdateMaintenanceTask(ctx context.Context, t MaintenanceTask) (MaintenanceTask, error) {
	if t.Status == TaskStatusDone && t.CompletedAt == nil {
		now := time.Now()
		t.CompletedAt = &now
	}
	return u.repo.UpdateMaintenanceTask(ctx, t)
}
