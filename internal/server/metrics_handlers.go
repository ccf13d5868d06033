package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dwellify/dwellify/internal/usecase"
)

type DashboardMetrics struct {
	TotalApartments    int     `json:"total_apartments"`
	OccupiedApartments int     `json:"occupied_apartments"`
	OccupancyRate      float64 `json:"occupancy_rate"`

	TotalPayments   int     `json:"total_payments"`
	PaidPayments    int     `json:"paid_payments"`
	OverduePayments int     `json:"overdue_payments"`
	CollectionRate  float64 `json:"collection_rate"`

	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	TaskCompliance float64 `json:"task_compliance"`

	ActiveTenants int `json:"active_tenants"`
}

type GetDashboardMetricsRequest struct {
	OwnerID string `query:"owner_id" validate:"omitempty,uuid"`
	From    string `query:"from" validate:"omitempty"`
	To      string `query:"to" validate:"omitempty"`
}

func (s *Server) GetDashboardMetrics(ctx echo.Context) error {
	var req GetDashboardMetricsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	opt := usecase.GetDashboardMetricsOption{OwnerID: req.OwnerID}
	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			return ctx.JSON(422, map[string]string{"error": "from must be RFC3339"})
		}
		opt.From = from
	}
	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			return ctx.JSON(422, map[string]string{"error": "to must be RFC3339"})
		}
		opt.To = to
	}

	m, err := s.server.GetDashboardMetrics(ctx.Request().Context(), opt)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: DashboardMetrics{
		TotalApartments:    m.TotalApartments,
		OccupiedApartments: m.OccupiedApartments,
		OccupancyRate:      m.OccupancyRate,
		TotalPayments:      m.TotalPayments,
		PaidPayments:       m.PaidPayments,
		OverduePayments:    m.OverduePayments,
		CollectionRate:     m.CollectionRate,
		TotalTasks:         m.TotalTasks,
		CompletedTasks:     m.CompletedTasks,
		TaskCompliance:     m.TaskCompliance,
		ActiveTenants:      m.ActiveTenants,
	}})
}
