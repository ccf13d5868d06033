package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dwellify/dwellify/internal/usecase"
)

type Plan struct {
	ID             string `json:"id" param:"id"`
	Name           string `json:"name"`
	Price          int    `json:"price"`
	ApartmentLimit int    `json:"apartment_limit"`
	Description    string `json:"description,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

func ConvertPlanFrom(p usecase.Plan) Plan {
	return Plan{
		ID:             p.ID.String(),
		Name:           p.Name,
		Price:          p.Price,
		ApartmentLimit: p.ApartmentLimit,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}

type ListPlansRequest struct {
	Skip  int `query:"skip"`
	Limit int `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

func (s *Server) ListPlans(ctx echo.Context) error {
	var req ListPlansRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	plans, total, err := s.server.ListPlans(ctx.Request().Context(), usecase.ListPlansOption{
		Skip:  req.Skip,
		Limit: req.Limit,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	list := make([]Plan, 0, len(plans))
	for _, p := range plans {
		list = append(list, ConvertPlanFrom(p))
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

type GetPlanByIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetPlanByID(ctx echo.Context) error {
	var req GetPlanByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	p, err := s.server.GetPlanByID(ctx.Request().Context(), id)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertPlanFrom(p)})
}

type CreatePlanRequest struct {
	Name           string `json:"name" validate:"required"`
	Price          int    `json:"price" validate:"gte=0"`
	ApartmentLimit int    `json:"apartment_limit" validate:"required,gt=0"`
	Description    string `json:"description" validate:"omitempty"`
}

func (s *Server) CreatePlan(ctx echo.Context) error {
	var req CreatePlanRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	p, err := s.server.CreatePlan(ctx.Request().Context(), usecase.Plan{
		Name:           req.Name,
		Price:          req.Price,
		ApartmentLimit: req.ApartmentLimit,
		Description:    req.Description,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(201, Res{Data: ConvertPlanFrom(p)})
}

type UpdatePlanRequest struct {
	ID             string `param:"id" validate:"required,uuid"`
	Name           string `json:"name" validate:"omitempty"`
	Price          int    `json:"price" validate:"omitempty,gte=0"`
	ApartmentLimit int    `json:"apartment_limit" validate:"omitempty,gt=0"`
	Description    string `json:"description" validate:"omitempty"`
}

func (s *Server) UpdatePlan(ctx echo.Context) error {
	var req UpdatePlanRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	p, err := s.server.UpdatePlan(ctx.Request().Context(), usecase.Plan{
		ID:             id,
		Name:           req.Name,
		Price:          req.Price,
		ApartmentLimit: req.ApartmentLimit,
		Description:    req.Description,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertPlanFrom(p)})
}

type DeletePlanRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) DeletePlan(ctx echo.Context) error {
	var req DeletePlanRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	if err := s.server.DeletePlan(ctx.Request().Context(), id); err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.NoContent(204)
}
