package importer_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/importer"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

func TestService_Import(t *testing.T) {
	companyID := uuid.New()
	accountID := uuid.New()

	svc := importer.NewService()

	t.Run("StatementDefaults", func(t *testing.T) {
		got, err := svc.Import(importer.FormatStatement, strings.NewReader("Data;Përshkrimi;Shuma\n01-06-2024;Qira;-300,00\n"), importer.Options{
			CompanyID: companyID,
			AccountID: &accountID,
			Currency:  money.EUR,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)

		assert.Equal(t, companyID, got[0].CompanyID)
		assert.Equal(t, &accountID, got[0].AccountID)
		assert.Equal(t, money.EUR, got[0].Currency)
		assert.Equal(t, transaction.StatusPaid, got[0].Status)
	})

	t.Run("LedgerKeepsRowValues", func(t *testing.T) {
		got, err := svc.Import(importer.FormatLedger, strings.NewReader("date,amount,currency,status\n2024-06-01,10,ALL,forecasted\n"), importer.Options{
			CompanyID: companyID,
			Currency:  money.EUR,
			Status:    transaction.StatusPending,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)

		assert.Equal(t, money.ALL, got[0].Currency)
		assert.Equal(t, transaction.StatusForecasted, got[0].Status)
		assert.Nil(t, got[0].AccountID)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := svc.Import("ofx", strings.NewReader(""), importer.Options{})
		assert.Error(t, err)
	})
}
