package ledgercsv_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/importer/ledgercsv"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

func TestWriteThenParse(t *testing.T) {
	txs := []*transaction.Transaction{
		{
			ID:          uuid.New(),
			Amount:      decimal.RequireFromString("-45.5"),
			Currency:    money.EUR,
			Date:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			Description: `Hosting, "pro" plan`,
			Category:    transaction.CategorySoftwareSubscriptions,
			Status:      transaction.StatusPaid,
			CompanyName: "Kamza shpk",
		},
		{
			ID:          uuid.New(),
			Amount:      decimal.NewFromInt(120000),
			Currency:    money.ALL,
			Date:        time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
			Description: "Fatura 7",
			Category:    transaction.CategoryClientInvoice,
			Status:      transaction.StatusPending,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ledgercsv.Write(&buf, txs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,description,category,status,amount,currency,company,account", lines[0])
	assert.Equal(t, `2024-06-03,"Hosting, ""pro"" plan",software_subscriptions,paid,-45.50,EUR,Kamza shpk,`, lines[1])

	got, err := ledgercsv.New().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, transaction.TypeExpense, got[0].Type)
	assert.True(t, decimal.RequireFromString("45.5").Equal(got[0].Amount))
	assert.Equal(t, `Hosting, "pro" plan`, got[0].Description)
	assert.Equal(t, transaction.CategorySoftwareSubscriptions, got[0].Category)
	assert.Equal(t, transaction.StatusPaid, got[0].Status)
	assert.Equal(t, money.EUR, got[0].Currency)

	assert.Equal(t, transaction.TypeIncome, got[1].Type)
	assert.Equal(t, money.ALL, got[1].Currency)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), got[1].Date)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{name: "MissingCurrencyColumn", csv: "date,amount\n2024-06-01,10\n", wantErr: `missing column "currency"`},
		{name: "BadDate", csv: "date,amount,currency\n01/06/2024,10,EUR\n", wantErr: "row 2: date"},
		{name: "UnsupportedCurrency", csv: "date,amount,currency\n2024-06-01,10,USD\n", wantErr: "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledgercsv.New().Parse(strings.NewReader(tt.csv))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := ledgercsv.New().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
