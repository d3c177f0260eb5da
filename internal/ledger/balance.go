package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/transaction"
)

// Balance is an account's derived position. Outflows is negative.
type Balance struct {
	Balance  decimal.Decimal `json:"balance"`
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
}

// AccountBalance derives the current balance of an account from its opening
// balance and the paid transactions booked against it. Amounts are summed as
// stored; the account's currency is assumed for every one of them.
func AccountBalance(accountID uuid.UUID, opening decimal.Decimal, txs []*transaction.Transaction) Balance {
	var in, out decimal.Decimal

	for _, tx := range txs {
		if tx.AccountID == nil || *tx.AccountID != accountID || tx.Status != transaction.StatusPaid {
			continue
		}

		if tx.Amount.IsPositive() {
			in = in.Add(tx.Amount)
		} else {
			out = out.Add(tx.Amount)
		}
	}

	return Balance{
		Balance:  opening.Add(in).Add(out),
		Inflows:  in,
		Outflows: out,
	}
}
