package payroll

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/payroll"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

type Handler struct {
	svc *payroll.Service
}

func NewHandler(svc *payroll.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/preview", h.preview)
	r.Get("/", h.list)
	r.Patch("/{id}/salary", h.mark(payroll.LegSalary))
	r.Patch("/{id}/taxes", h.mark(payroll.LegTaxes))
	r.Delete("/{id}", h.delete)
}

type stubRequest struct {
	CompanyID     uuid.UUID       `json:"company_id"`
	EmployeeName  string          `json:"employee_name"`
	EmployeeID    string          `json:"employee_id"`
	PayPeriodDate string          `json:"pay_period_date"`
	Currency      money.Currency  `json:"currency"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	TaxMode       payroll.TaxMode `json:"tax_mode"`
	TaxValue      decimal.Decimal `json:"tax_value"`
}

type stubResponse struct {
	ID            uuid.UUID       `json:"id"`
	CompanyID     uuid.UUID       `json:"company_id"`
	CompanyName   string          `json:"company_name,omitempty"`
	EmployeeName  string          `json:"employee_name"`
	EmployeeID    string          `json:"employee_id"`
	PayPeriodDate string          `json:"pay_period_date"`
	Currency      money.Currency  `json:"currency"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	NetSalary     decimal.Decimal `json:"net_salary"`
	Taxes         decimal.Decimal `json:"taxes_and_contributions"`
	SalaryStatus  payroll.Status  `json:"salary_status"`
	TaxesStatus   payroll.Status  `json:"taxes_status"`
	SalaryDueDate string          `json:"salary_due_date"`
	TaxesDueDate  string          `json:"taxes_due_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toResponse(s *payroll.Stub) stubResponse {
	return stubResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		CompanyName:   s.CompanyName,
		EmployeeName:  s.EmployeeName,
		EmployeeID:    s.EmployeeID,
		PayPeriodDate: respond.Date(s.PayPeriodDate),
		Currency:      s.Currency,
		GrossSalary:   s.GrossSalary,
		NetSalary:     s.NetSalary,
		Taxes:         s.Taxes,
		SalaryStatus:  s.SalaryStatus,
		TaxesStatus:   s.TaxesStatus,
		SalaryDueDate: respond.Date(s.SalaryDueDate),
		TaxesDueDate:  respond.Date(s.TaxesDueDate),
		CreatedAt:     s.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req stubRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	period, err := respond.ParseDate("pay_period_date", req.PayPeriodDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	stub, err := h.svc.Create(r.Context(), payroll.CreateParams{
		OwnerID:       ownerID,
		CompanyID:     req.CompanyID,
		EmployeeName:  req.EmployeeName,
		EmployeeID:    req.EmployeeID,
		PayPeriodDate: period,
		Currency:      req.Currency,
		GrossSalary:   req.GrossSalary,
		TaxMode:       req.TaxMode,
		TaxValue:      req.TaxValue,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(stub))
}

type splitResponse struct {
	Gross         decimal.Decimal `json:"gross_salary"`
	Net           decimal.Decimal `json:"net_salary"`
	Taxes         decimal.Decimal `json:"taxes_and_contributions"`
	SalaryDueDate string          `json:"salary_due_date"`
	TaxesDueDate  string          `json:"taxes_due_date"`
}

// preview computes the split the form shows before the stub is saved.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req stubRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	period, err := respond.ParseDate("pay_period_date", req.PayPeriodDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	split, err := payroll.ComputeSplit(req.GrossSalary, req.TaxMode, req.TaxValue, period)
	if err != nil {
		respond.Error(w, r, validate.Fail("tax_value", "%v", err))
		return
	}

	respond.JSON(w, r, http.StatusOK, splitResponse{
		Gross:         split.Gross,
		Net:           split.Net,
		Taxes:         split.Taxes,
		SalaryDueDate: respond.Date(split.SalaryDue),
		TaxesDueDate:  respond.Date(split.TaxesDue),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	stubs, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]stubResponse, len(stubs))
	for i, s := range stubs {
		resp[i] = toResponse(s)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

type statusRequest struct {
	Status payroll.Status `json:"status"`
}

func (h *Handler) mark(leg payroll.Leg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := respond.Owner(w, r)
		if !ok {
			return
		}

		id, ok := respond.ID(w, r)
		if !ok {
			return
		}

		var req statusRequest
		if !respond.Decode(w, r, &req) {
			return
		}

		var err error
		if leg == payroll.LegSalary {
			err = h.svc.MarkSalary(r.Context(), ownerID, id, req.Status)
		} else {
			err = h.svc.MarkTaxes(r.Context(), ownerID, id, req.Status)
		}

		if err != nil {
			respond.Error(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
