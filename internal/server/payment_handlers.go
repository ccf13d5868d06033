package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dwellify/dwellify/internal/usecase"
)

type RentPayment struct {
	ID          string     `json:"id" param:"id"`
	TenantID    string     `json:"tenant_id"`
	ApartmentID string     `json:"apartment_id"`
	Amount      int        `json:"amount"`
	DueDate     string     `json:"due_date"`
	PaymentDate *string    `json:"payment_date,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   string     `json:"created_at,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
	Tenant      *Tenant    `json:"tenant,omitempty"`
	Apartment   *Apartment `json:"apartment,omitempty"`
}

func ConvertRentPaymentFrom(p usecase.RentPayment) RentPayment {
	rp := RentPayment{
		ID:          p.ID.String(),
		TenantID:    p.TenantID.String(),
		ApartmentID: p.ApartmentID.String(),
		Amount:      p.Amount,
		DueDate:     p.DueDate.Format(time.RFC3339),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if p.PaymentDate != nil {
		d := p.PaymentDate.Format(time.RFC3339)
		rp.PaymentDate = &d
	}
	if p.Tenant != nil {
		t := ConvertTenantFrom(*p.Tenant)
		rp.Tenant = &t
	}
	if p.Apartment != nil {
		a := ConvertApartmentFrom(*p.Apartment)
		rp.Apartment = &a
	}
	return rp
}

type ListRentPaymentsRequest struct {
	Skip        int    `query:"skip"`
	Limit       int    `query:"limit" validate:"required,gte=1,lte=100"`
	TenantID    string `query:"tenant_id" validate:"omitempty,uuid"`
	ApartmentID string `query:"apartment_id" validate:"omitempty,uuid"`
	Status      string `query:"status" validate:"omitempty,oneof=pending paid overdue"`
	DueDateFrom string `query:"due_date_from" validate:"omitempty"`
	DueDateTo   string `query:"due_date_to" validate:"omitempty"`
	SortBy      string `query:"sort_by" validate:"omitempty,oneof=created_at updated_at due_date amount"`
	SortIn      string `query:"sort_in" validate:"omitempty,oneof=asc desc"`
}

func (s *Server) ListRentPayments(ctx echo.Context) error {
	var req ListRentPaymentsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	opt := usecase.ListRentPaymentsOption{
		Skip:        req.Skip,
		Limit:       req.Limit,
		TenantID:    req.TenantID,
		ApartmentID: req.ApartmentID,
		Status:      req.Status,
		SortBy:      req.SortBy,
		SortIn:      req.SortIn,
	}
	if req.DueDateFrom != "" {
		from, err := time.Parse(time.RFC3339, req.DueDateFrom)
		if err != nil {
			return ctx.JSON(422, map[string]string{"error": "due_date_from must be RFC3339"})
		}
		opt.DueDateFrom = &from
	}
	if req.DueDateTo != "" {
		to, err := time.Parse(time.RFC3339, req.DueDateTo)
		if err != nil {
			return ctx.JSON(422, map[string]string{"error": "due_date_to must be RFC3339"})
		}
		opt.DueDateTo = &to
	}

	payments, total, err := s.server.ListRentPayments(ctx.Request().Context(), opt)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	list := make([]RentPayment, 0, len(payments))
	for _, p := range payments {
		list = append(list, ConvertRentPaymentFrom(p))
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

type GetRentPaymentByIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetRentPaymentByID(ctx echo.Context) error {
	var req GetRentPaymentByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	p, err := s.server.GetRentPaymentByID(ctx.Request().Context(), id)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertRentPaymentFrom(p)})
}

type CreateRentPaymentRequest struct {
	TenantID string `json:"tenant_id" validate:"required,uuid"`
	Amount   int    `json:"amount" validate:"required,gt=0"`
	DueDate  string `json:"due_date" validate:"required"`
}

func (s *Server) CreateRentPayment(ctx echo.Context) error {
	var req CreateRentPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	tenantID, _ := uuid.Parse(req.TenantID)

	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		return ctx.JSON(422, map[string]string{"error": "due_date must be RFC3339"})
	}

	p, err := s.server.CreateRentPayment(ctx.Request().Context(), usecase.RentPayment{
		TenantID: tenantID,
		Amount:   req.Amount,
		DueDate:  dueDate,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(201, Res{Data: ConvertRentPaymentFrom(p)})
}

type MarkRentPaymentPaidRequest struct {
	ID          string `param:"id" validate:"required,uuid"`
	PaymentDate string `json:"payment_date" validate:"omitempty"`
}

// MarkRentPaymentPaid settles a payment. Paid is terminal: paying an
// already-paid record fails, paying an overdue one clears it.
func (s *Server) MarkRentPaymentPaid(ctx echo.Context) error {
	var req MarkRentPaymentPaidRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}
	id, _ := uuid.Parse(req.ID)

	paidAt := time.Now()
	if req.PaymentDate != "" {
		t, err := time.Parse(time.RFC3339, req.PaymentDate)
		if err != nil {
			return ctx.JSON(422, map[string]string{"error": "payment_date must be RFC3339"})
		}
		paidAt = t
	}

	p, err := s.server.MarkRentPaymentPaid(ctx.Request().Context(), id, paidAt)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: ConvertRentPaymentFrom(p)})
}
