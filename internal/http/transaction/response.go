package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

type transactionResponse struct {
	ID            uuid.UUID            `json:"id"`
	CompanyID     uuid.UUID            `json:"company_id"`
	CompanyName   string               `json:"company_name,omitempty"`
	AccountID     *uuid.UUID           `json:"account_id,omitempty"`
	AccountName   string               `json:"account_name,omitempty"`
	Amount        decimal.Decimal      `json:"amount"`
	Type          transaction.Type     `json:"type"`
	Currency      money.Currency       `json:"currency"`
	Date          string               `json:"date"`
	Description   string               `json:"description"`
	Category      transaction.Category `json:"category"`
	CategoryLabel string               `json:"category_label"`
	Status        transaction.Status   `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     *time.Time           `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		CompanyID:     tx.CompanyID,
		CompanyName:   tx.CompanyName,
		AccountID:     tx.AccountID,
		AccountName:   tx.AccountName,
		Amount:        tx.Amount,
		Type:          tx.Type(),
		Currency:      tx.Currency,
		Date:          respond.Date(tx.Date),
		Description:   tx.Description,
		Category:      tx.Category,
		CategoryLabel: tx.Category.Label(),
		Status:        tx.Status,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
