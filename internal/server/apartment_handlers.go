package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dwellify/dwellify/internal/usecase"
)

type Apartment struct {
	ID         string `json:"id" param:"id"`
	OwnerID    string `json:"owner_id"`
	Name       string `json:"name"`
	Unit       string `json:"unit,omitempty"`
	Address    string `json:"address,omitempty"`
	RentAmount int    `json:"rent_amount"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
	Owner      *User  `json:"owner,omitempty"`
}

func ConvertApartmentFrom(a usecase.Apartment) Apartment {
	ap := Apartment{
		ID:         a.ID.String(),
		OwnerID:    a.OwnerID.String(),
		Name:       a.Name,
		Unit:       a.Unit,
		Address:    a.Address,
		RentAmount: a.RentAmount,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
	if a.Owner != nil {
		o := ConvertUserFrom(*a.Owner)
		ap.Owner = &o
	}
	return ap
}

type ListApartmentsRequest struct {
	Skip    int    `query:"skip"`
	Limit   int    `query:"limit" validate:"required,gte=1,lte=100"`
	OwnerID string `query:"owner_id" validate:"omitempty,uuid"`
	Status  string `query:"status" validate:"omitempty,oneof=vacant occupied"`
	Name    string `query:"name" validate:"omitempty"`
	SortBy  string `query:"sort_by" validate:"omitempty,oneof=created_at updated_at name rent_amount"`
	SortIn  string `query:"sort_in" validate:"omitempty,oneof=asc desc"`
}

func (s *Server) ListApartments(ctx echo.Context) error {
	var req ListApartmentsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	apartments, total, err := s.server.ListApartments(ctx.Request().Context(), usecase.ListApartmentsOption{
		Skip:    req.Skip,
		Limit:   req.Limit,
		OwnerID: req.OwnerID,
		Status:  req.Status,
		Name:    req.Name,
		SortBy:  req.SortBy,
		SortIn:  req.SortIn,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	list := make([]Apartment, 0, len(apartments))
	for _, a := range apartments {
		list = append(list, ConvertApartmentFrom(a))
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

type GetApartmentByIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetApartmentByID(ctx echo.Context) error {
	var req GetApartmentByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	a, err := s.server.GetApartmentByID(ctx.Request().Context(), id)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertApartmentFrom(a)})
}

type CreateApartmentRequest struct {
	OwnerID    string `json:"owner_id" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required"`
	Unit       string `json:"unit" validate:"omitempty"`
	Address    string `json:"address" validate:"omitempty"`
	RentAmount int    `json:"rent_amount" validate:"required,gt=0"`
}

func (s *Server) CreateApartment(ctx echo.Context) error {
	var req CreateApartmentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	ownerID, _ := uuid.Parse(req.OwnerID)

	a, err := s.server.CreateApartment(ctx.Request().Context(), usecase.Apartment{
		OwnerID:    ownerID,
		Name:       req.Name,
		Unit:       req.Unit,
		Address:    req.Address,
		RentAmount: req.RentAmount,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(201, Res{Data: ConvertApartmentFrom(a)})
}

type UpdateApartmentRequest struct {
	ID         string `param:"id" validate:"required,uuid"`
	Name       string `json:"name" validate:"omitempty"`
	Unit       string `json:"unit" validate:"omitempty"`
	Address    string `json:"address" validate:"omitempty"`
	RentAmount int    `json:"rent_amount" validate:"omitempty,gt=0"`
	Status     string `json:"status" validate:"omitempty,oneof=vacant occupied"`
}

func (s *Server) UpdateApartment(ctx echo.Context) error {
	var req UpdateApartmentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	a, err := s.server.UpdateApartment(ctx.Request().Context(), usecase.Apartment{
		ID:         id,
		Name:       req.Name,
		Unit:       req.Unit,
		Address:    req.Address,
		RentAmount: req.RentAmount,
		Status:     req.Status,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertApartmentFrom(a)})
}

type DeleteApartmentRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) DeleteApartment(ctx echo.Context) error {
	var req DeleteApartmentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	if err := s.server.DeleteApartment(ctx.Request().Context(), id); err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.NoContent(204)
}
