package server

import (
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dwellify/dwellify/internal/usecase"
)

type SweepRun struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	StartedAt  string          `json:"started_at"`
	FinishedAt *string         `json:"finished_at,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  string          `json:"created_at,omitempty"`
}

func ConvertSweepRunFrom(r usecase.SweepRun) SweepRun {
	run := SweepRun{
		ID:        r.ID.String(),
		Status:    r.Status,
		StartedAt: r.StartedAt.Format(time.RFC3339),
		Result:    json.RawMessage(r.Result),
		Error:     r.Error,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.FinishedAt != nil {
		t := r.FinishedAt.Format(time.RFC3339)
		run.FinishedAt = &t
	}
	return run
}

// TriggerSweep enqueues a notification sweep instead of running it
// inline, so the API request returns immediately and the worker picks
// the job up.
func (s *Server) TriggerSweep(ctx echo.Context) error {
	if err := s.server.EnqueueSweep(ctx.Request().Context()); err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(202, Res{Message: "sweep enqueued"})
}

type ListSweepRunsRequest struct {
	Skip   int    `query:"skip"`
	Limit  int    `query:"limit" validate:"required,gte=1,lte=100"`
	Status string `query:"status" validate:"omitempty,oneof=running succeeded failed"`
}

func (s *Server) ListSweepRuns(ctx echo.Context) error {
	var req ListSweepRunsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	runs, total, err := s.server.ListSweepRuns(ctx.Request().Context(), usecase.ListSweepRunsOption{
		Skip:   req.Skip,
		Limit:  req.Limit,
		Status: req.Status,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	list := make([]SweepRun, 0, len(runs))
	for _, r := range runs {
		list = append(list, ConvertSweepRunFrom(r))
	}

	return ctx.JSON(200, Res{
		Data: list,
		Meta: &Meta{
			Total: total,
			Skip:  req.Skip,
			Limit: req.Limit,
		},
	})
}
