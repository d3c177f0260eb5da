package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/export"
	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
}

func (req exportRequest) filter(ownerID uuid.UUID) (transaction.ListFilter, error) {
	filter := transaction.ListFilter{
		OwnerID:   ownerID,
		CompanyID: req.CompanyID,
	}

	if req.StartDate != "" {
		t, err := respond.ParseDate("start_date", req.StartDate)
		if err != nil {
			return filter, err
		}

		filter.StartDate = &t
	}

	if req.EndDate != "" {
		t, err := respond.ParseDate("end_date", req.EndDate)
		if err != nil {
			return filter, err
		}

		filter.EndDate = &t
	}

	return filter, nil
}

type transactionResponse struct {
	ID          uuid.UUID            `json:"id"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        transaction.Type     `json:"type"`
	Currency    money.Currency       `json:"currency"`
	Status      transaction.Status   `json:"status"`
	Category    transaction.Category `json:"category"`
	Description string               `json:"description"`
	Date        string               `json:"date"`
}

type exportMetadataResponse struct {
	Count        int                   `json:"count"`
	Transactions []transactionResponse `json:"transactions"`
	Summary      string                `json:"summary"`
}

func toTransactionResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Type:        tx.Type(),
		Currency:    tx.Currency,
		Status:      tx.Status,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        respond.Date(tx.Date),
	}
}

func (h *Handler) decodeFilter(w http.ResponseWriter, r *http.Request) (transaction.ListFilter, bool) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return transaction.ListFilter{}, false
	}

	var req exportRequest
	if !respond.Decode(w, r, &req) {
		return transaction.ListFilter{}, false
	}

	filter, err := req.filter(ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return transaction.ListFilter{}, false
	}

	return filter, true
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.decodeFilter(w, r)
	if !ok {
		return
	}

	txs, summary, err := h.svc.Preview(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := exportMetadataResponse{
		Count:        len(txs),
		Transactions: make([]transactionResponse, 0, len(txs)),
		Summary:      summary,
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.decodeFilter(w, r)
	if !ok {
		return
	}

	// Buffered so a failure can still be reported with a proper status.
	var buf bytes.Buffer
	if _, err := h.svc.Export(r.Context(), filter, &buf); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.svc.Filename()))
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)

	_, _ = buf.WriteTo(w)
}
