package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/payroll"
)

func TestComputeSplit(t *testing.T) {
	period := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		gross     string
		mode      payroll.TaxMode
		value     string
		wantTaxes string
		wantNet   string
		wantErr   bool
	}{
		{name: "Percentage", gross: "120000", mode: payroll.TaxModePercentage, value: "25", wantTaxes: "30000", wantNet: "90000"},
		{name: "PercentageRounds", gross: "1001", mode: payroll.TaxModePercentage, value: "12.5", wantTaxes: "125", wantNet: "876"},
		{name: "Fixed", gross: "80000", mode: payroll.TaxModeFixed, value: "17500.50", wantTaxes: "17500.50", wantNet: "62499.50"},
		{name: "ZeroTax", gross: "5000", mode: payroll.TaxModeFixed, value: "0", wantTaxes: "0", wantNet: "5000"},
		{name: "TaxesEqualGross", gross: "5000", mode: payroll.TaxModePercentage, value: "100", wantTaxes: "5000", wantNet: "0"},
		{name: "TaxesExceedGross", gross: "5000", mode: payroll.TaxModeFixed, value: "5001", wantErr: true},
		{name: "NonPositiveGross", gross: "0", mode: payroll.TaxModeFixed, value: "0", wantErr: true},
		{name: "NegativeValue", gross: "5000", mode: payroll.TaxModeFixed, value: "-1", wantErr: true},
		{name: "UnknownMode", gross: "5000", mode: "bracket", value: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := payroll.ComputeSplit(
				decimal.RequireFromString(tt.gross), tt.mode, decimal.RequireFromString(tt.value), period)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.wantTaxes).Equal(got.Taxes), "taxes %s", got.Taxes)
			assert.True(t, decimal.RequireFromString(tt.wantNet).Equal(got.Net), "net %s", got.Net)
			assert.True(t, got.Net.Add(got.Taxes).Equal(got.Gross))
		})
	}
}

func TestComputeSplit_DueDates(t *testing.T) {
	tests := []struct {
		period        time.Time
		wantSalaryDue time.Time
		wantTaxesDue  time.Time
	}{
		{
			period:        time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			wantSalaryDue: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			wantTaxesDue:  time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			period:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantSalaryDue: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			wantTaxesDue:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			period:        time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			wantSalaryDue: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			wantTaxesDue:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		got, err := payroll.ComputeSplit(decimal.NewFromInt(1000), payroll.TaxModeFixed, decimal.Zero, tt.period)
		require.NoError(t, err)
		assert.Equal(t, tt.wantSalaryDue, got.SalaryDue)
		assert.Equal(t, tt.wantTaxesDue, got.TaxesDue)
	}
}
