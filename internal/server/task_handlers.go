package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dwellify/dwellify/internal/usecase"
)

type MaintenanceTask struct {
	ID          string     `json:"id" param:"id"`
	ApartmentID string     `json:"apartment_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	DueDate     *string    `json:"due_date,omitempty"`
	CompletedAt *string    `json:"completed_at,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
	Apartment   *Apartment `json:"apartment,omitempty"`
}

func ConvertMaintenanceTaskFrom(t usecase.MaintenanceTask) MaintenanceTask {
	mt := MaintenanceTask{
		ID:          t.ID.String(),
		ApartmentID: t.ApartmentID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		d := t.DueDate.Format(time.RFC3339)
		mt.DueDate = &d
	}
	if t.CompletedAt != nil {
		d := t.CompletedAt.Format(time.RFC3339)
		mt.CompletedAt = &d
	}
	if t.Apartment != nil {
		a := ConvertApartmentFrom(*t.Apartment)
		mt.Apartment = &a
	}
	return mt
}

type ListMaintenanceTasksRequest struct {
	Skip        int    `query:"skip"`
	Limit       int    `query:"limit" validate:"required,gte=1,lte=100"`
	ApartmentID string `query:"apartment_id" validate:"omitempty,uuid"`
	Status      string `query:"status" validate:"omitempty,oneof=open in_progress done"`
	SortBy      string `query:"sort_by" validate:"omitempty,oneof=created_at updated_at due_date"`
	SortIn      string `query:"sort_in" validate:"omitempty,oneof=asc desc"`
}

func (s *Server) ListMaintenanceTasks(ctx echo.Context) error {
	var req ListMaintenanceTasksRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	tasks, total, err := s.server.ListMaintenanceTasks(ctx.Request().Context(), usecase.ListMaintenanceTasksOption{
		Skip:        req.Skip,
		Limit:       req.Limit,
		ApartmentID: req.ApartmentID,
		Status:      req.Status,
		SortBy:      req.SortBy,
		SortIn:      req.SortIn,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	list := make([]MaintenanceTask, 0, len(tasks))
	for _, t := range tasks {
		list = append(list, ConvertMaintenanceTaskFrom(t))
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

type GetMaintenanceTaskByIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetMaintenanceTaskByID(ctx echo.Context) error {
	var req GetMaintenanceTaskByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	t, err := s.server.GetMaintenanceTaskByID(ctx.Request().Context(), id)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertMaintenanceTaskFrom(t)})
}

type CreateMaintenanceTaskRequest struct {
	ApartmentID string `json:"apartment_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"omitempty"`
	DueDate     string `json:"due_date" validate:"omitempty"`
}

func (s *Server) CreateMaintenanceTask(ctx echo.Context) error {
	var req CreateMaintenanceTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	apartmentID, _ := uuid.Parse(req.ApartmentID)

	t := usecase.MaintenanceTask{
		ApartmentID: apartmentID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.DueDate != "" {
		d, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			return ctx.JSON(422, map[string]string{"error": "due_date must be RFC3339"})
		}
		t.DueDate = &d
	}

	created, err := s.server.CreateMaintenanceTask(ctx.Request().Context(), t)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(201, Res{Data: ConvertMaintenanceTaskFrom(created)})
}

type UpdateMaintenanceTaskRequest struct {
	ID          string `param:"id" validate:"required,uuid"`
	Title       string `json:"title" validate:"omitempty"`
	Description string `json:"description" validate:"omitempty"`
	Status      string `json:"status" validate:"omitempty,oneof=open in_progress done"`
	DueDate     string `json:"due_date" validate:"omitempty"`
}

func (s *Server) UpdateMaintenanceTask(ctx echo.Context) error {
	var req UpdateMaintenanceTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	t := usecase.MaintenanceTask{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.DueDate != "" {
		d, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			return ctx.JSON(422, map[string]string{"error": "due_date must be RFC3339"})
		}
		t.DueDate = &d
	}

	updated, err := s.server.UpdateMaintenanceTask(ctx.Request().Context(), t)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertMaintenanceTaskFrom(updated)})
}
