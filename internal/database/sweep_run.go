package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"

	"github.com/dwellify/dwellify/internal/usecase"
)

type SweepRun struct {
	ID         uuid.UUID      `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	Status     string         `gorm:"column:status;type:varchar(32);NOT NULL"`
	StartedAt  time.Time      `gorm:"column:started_at"`
	FinishedAt *time.Time     `gorm:"column:finished_at"`
	Result     datatypes.JSON `gorm:"column:result"`
	Error      string         `gorm:"column:error;type:text"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (SweepRun) TableName() string {
	return "sweep_runs"
}

func (s *service) CreateSweepRun(ctx context.Context, run usecase.SweepRun) (usecase.SweepRun, error) {
	r := SweepRun{
		Status:    run.Status,
		StartedAt: run.StartedAt,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&r).Error; err != nil {
		return usecase.SweepRun{}, err
	}
	return r.ConvertToUsecase(), nil
}

func (s *service) UpdateSweepRun(ctx context.Context, run usecase.SweepRun) (usecase.SweepRun, error) {
	r := SweepRun{
		Status:     run.Status,
		FinishedAt: run.FinishedAt,
		Result:     run.Result,
		Error:      run.Error,
	}
	if err := s.db.WithContext(ctx).
		Model(&r).
		Clauses(clause.Returning{}).
		Where("id = ?", run.ID).
		Updates(&r).Error; err != nil {
		return usecase.SweepRun{}, err
	}
	return r.ConvertToUsecase(), nil
}

func (s *service) ListSweepRuns(ctx context.Context, opt usecase.ListSweepRunsOption) ([]usecase.SweepRun, int, error) {
	var (
		runs  []SweepRun
		uruns []usecase.SweepRun
		count int64
	)

	db := s.db.Model([]SweepRun{}).WithContext(ctx)
	if opt.Status != "" {
		db = db.Where("status = ?", opt.Status)
	}

	err := db.
		Count(&count).
		Offset(opt.Skip).
		Limit(opt.Limit).
		Order("started_at DESC").
		Find(&runs).
		Error
	if err != nil {
		return nil, 0, err
	}

	for _, r := range runs {
		uruns = append(uruns, r.ConvertToUsecase())
	}

	return uruns, int(count), nil
}

// Convert core model to Usecase
func (r SweepRun) ConvertToUsecase() usecase.SweepRun {
	return usecase.SweepRun{
		ID:         r.ID,
		Status:     r.Status,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Result:     r.Result,
		Error:      r.Error,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
