package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.updateStatus)
	r.Put("/{id}", h.update)
}

// transactionRequest carries an unsigned amount; the sign follows Type.
type transactionRequest struct {
	CompanyID   uuid.UUID            `json:"company_id"`
	AccountID   *uuid.UUID           `json:"account_id,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        transaction.Type     `json:"type"`
	Currency    money.Currency       `json:"currency"`
	Date        string               `json:"date"`
	Description string               `json:"description"`
	Category    transaction.Category `json:"category"`
	Status      transaction.Status   `json:"status"`
}

func (req transactionRequest) params(ownerID uuid.UUID) (transaction.CreateParams, error) {
	date, err := respond.ParseDate("date", req.Date)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	return transaction.CreateParams{
		OwnerID:     ownerID,
		CompanyID:   req.CompanyID,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Type:        req.Type,
		Currency:    req.Currency,
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
	}, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.params(ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	filter, err := parseFilter(r, ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponseList(txs))
}

func parseFilter(r *http.Request, ownerID uuid.UUID) (transaction.ListFilter, error) {
	q := r.URL.Query()
	filter := transaction.ListFilter{OwnerID: ownerID}

	if s := q.Get("status"); s != "" {
		st, err := transaction.ParseStatus(s)
		if err != nil {
			return filter, validate.Fail("status", "%v", err)
		}

		filter.Status = &st
	}

	for _, p := range []struct {
		name string
		dst  **uuid.UUID
	}{
		{"company_id", &filter.CompanyID},
		{"account_id", &filter.AccountID},
	} {
		s := q.Get(p.name)
		if s == "" {
			continue
		}

		id, err := uuid.Parse(s)
		if err != nil {
			return filter, validate.Fail(p.name, "must be a uuid")
		}

		*p.dst = &id
	}

	if s := q.Get("start_date"); s != "" {
		t, err := respond.ParseDate("start_date", s)
		if err != nil {
			return filter, err
		}

		filter.StartDate = &t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := respond.ParseDate("end_date", s)
		if err != nil {
			return filter, err
		}

		filter.EndDate = &t
	}

	return filter, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(tx))
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

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.params(ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(tx))
}

type updateStatusRequest struct {
	Status transaction.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), ownerID, id, req.Status); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
