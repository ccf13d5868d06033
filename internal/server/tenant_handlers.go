package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dwellify/dwellify/internal/usecase"
)

type Tenant struct {
	ID             string     `json:"id" param:"id"`
	UserID         *string    `json:"user_id,omitempty"`
	ApartmentID    string     `json:"apartment_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	LeaseStartDate string     `json:"lease_start_date"`
	LeaseEndDate   *string    `json:"lease_end_date,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      string     `json:"created_at,omitempty"`
	UpdatedAt      string     `json:"updated_at,omitempty"`
	Apartment      *Apartment `json:"apartment,omitempty"`
}

func ConvertTenantFrom(t usecase.Tenant) Tenant {
	tn := Tenant{
		ID:             t.ID.String(),
		ApartmentID:    t.ApartmentID.String(),
		Name:           t.Name,
		Email:          t.Email,
		Phone:          t.Phone,
		LeaseStartDate: t.LeaseStartDate.Format(time.RFC3339),
		Status:         t.Status,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.Format(time.RFC3339),
	}
	if t.UserID != nil {
		id := t.UserID.String()
		tn.UserID = &id
	}
	if t.LeaseEndDate != nil {
		d := t.LeaseEndDate.Format(time.RFC3339)
		tn.LeaseEndDate = &d
	}
	if t.Apartment != nil {
		a := ConvertApartmentFrom(*t.Apartment)
		tn.Apartment = &a
	}
	return tn
}

type ListTenantsRequest struct {
	Skip        int    `query:"skip"`
	Limit       int    `query:"limit" validate:"required,gte=1,lte=100"`
	ApartmentID string `query:"apartment_id" validate:"omitempty,uuid"`
	Status      string `query:"status" validate:"omitempty,oneof=active inactive"`
	Name        string `query:"name" validate:"omitempty"`
	SortBy      string `query:"sort_by" validate:"omitempty,oneof=created_at updated_at name lease_start_date lease_end_date"`
	SortIn      string `query:"sort_in" validate:"omitempty,oneof=asc desc"`
}

func (s *Server) ListTenants(ctx echo.Context) error {
	var req ListTenantsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	tenants, total, err := s.server.ListTenants(ctx.Request().Context(), usecase.ListTenantsOption{
		Skip:        req.Skip,
		Limit:       req.Limit,
		ApartmentID: req.ApartmentID,
		Status:      req.Status,
		Name:        req.Name,
		SortBy:      req.SortBy,
		SortIn:      req.SortIn,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	list := make([]Tenant, 0, len(tenants))
	for _, t := range tenants {
		list = append(list, ConvertTenantFrom(t))
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

type GetTenantByIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetTenantByID(ctx echo.Context) error {
	var req GetTenantByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	t, err := s.server.GetTenantByID(ctx.Request().Context(), id)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertTenantFrom(t)})
}

type CreateTenantRequest struct {
	UserID         *string `json:"user_id" validate:"omitempty,uuid"`
	ApartmentID    string  `json:"apartment_id" validate:"required,uuid"`
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Phone          string  `json:"phone" validate:"omitempty"`
	LeaseStartDate string  `json:"lease_start_date" validate:"required"`
	LeaseEndDate   *string `json:"lease_end_date" validate:"omitempty"`
}

func (s *Server) CreateTenant(ctx echo.Context) error {
	var req CreateTenantRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	apartmentID, _ := uuid.Parse(req.ApartmentID)

	start, err := time.Parse(time.RFC3339, req.LeaseStartDate)
	if err != nil {
		return ctx.JSON(422, map[string]string{"error": "lease_start_date must be RFC3339"})
	}

	t := usecase.Tenant{
		ApartmentID:    apartmentID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		LeaseStartDate: start,
	}
	if req.UserID != nil {
		id, _ := uuid.Parse(*req.UserID)
		t.UserID = &id
	}
	if req.LeaseEndDate != nil {
		end, err := time.Parse(time.RFC3339, *req.LeaseEndDate)
		if err != nil {
			return ctx.JSON(422, map[string]string{"error": "lease_end_date must be RFC3339"})
		}
		t.LeaseEndDate = &end
	}

	created, err := s.server.CreateTenant(ctx.Request().Context(), t)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(201, Res{Data: ConvertTenantFrom(created)})
}

type UpdateTenantRequest struct {
	ID           string  `param:"id" validate:"required,uuid"`
	Name         string  `json:"name" validate:"omitempty"`
	Email        string  `json:"email" validate:"omitempty,email"`
	Phone        string  `json:"phone" validate:"omitempty"`
	LeaseEndDate *string `json:"lease_end_date" validate:"omitempty"`
	Status       string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (s *Server) UpdateTenant(ctx echo.Context) error {
	var req UpdateTenantRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	t := usecase.Tenant{
		ID:     id,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
	}
	if req.LeaseEndDate != nil {
		end, err := time.Parse(time.RFC3339, *req.LeaseEndDate)
		if err != nil {
			return ctx.JSON(422, map[string]string{"error": "lease_end_date must be RFC3339"})
		}
		t.LeaseEndDate = &end
	}

	updated, err := s.server.UpdateTenant(ctx.Request().Context(), t)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertTenantFrom(updated)})
}
