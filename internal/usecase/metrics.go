package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwellify/dwellify/internal/config"
)

// DashboardMetrics aggregates the owner dashboard numbers: how much of
// the portfolio is let, how much rent in the period got collected, and
// how maintenance is keeping up.
type DashboardMetrics struct {
	TotalApartments    int
	OccupiedApartments int
	OccupancyRate      float64

	TotalPayments   int
	PaidPayments    int
	OverduePayments int
	CollectionRate  float64

	TotalTasks     int
	CompletedTasks int
	TaskCompliance float64

	ActiveTenants int
}

type GetDashboardMetricsOption struct {
	OwnerID string
	From    time.Time
	To      time.Time
}

func (u Usecase) GetDashboardMetrics(ctx context.Context, opt GetDashboardMetricsOption) (DashboardMetrics, error) {
	ownerID, err := scopeToOwner(ctx, opt.OwnerID)
	if err != nil {
		return DashboardMetrics{}, err
	}
	opt.OwnerID = ownerID

	cacheKey := fmt.Sprintf("metrics:dashboard:%s:%d:%d",
		opt.OwnerID, opt.From.Unix(), opt.To.Unix())

	if u.cacheProvider != nil {
		if raw, err := u.cacheProvider.Get(ctx, cacheKey); err == nil && raw != nil {
			var m DashboardMetrics
			if err := json.Unmarshal(raw, &m); err == nil {
				return m, nil
			}
		}
	}

	m, err := u.repo.GetDashboardMetrics(ctx, opt)
	if err != nil {
		return DashboardMetrics{}, err
	}

	if u.cacheProvider != nil {
		raw, err := json.Marshal(m)
		if err == nil {
			err = u.cacheProvider.Set(ctx, cacheKey, raw,
				config.METRICS_CACHE_TTL_SECONDS*time.Second)
		}
		if err != nil {
			slog.WarnContext(ctx, "metrics: cache write failed", slog.String("err", err.Error()))
		}
	}

	return m, nil
}
