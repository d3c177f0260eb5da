package statement

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/transaction"
)

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		wantLen int
		verify  func(t *testing.T, txs []transaction.CreateParams)
		wantErr bool
	}

	tests := []testCase{
		{
			name: "SignedAmountWithPreamble",
			csv: `Pasqyrë llogarie;AL47 2121 1009 0000 0002 3569 8741
Periudha;01.06.2024 - 30.06.2024

Data;Përshkrimi;Shuma;Gjendja
03.06.2024;Pagesë OSHEE;-4.560,00;120.440,00
05.06.2024;Fatura 12/2024 Kamza sh.p.k.;85.000,00;205.440,00
;Gjendja përfundimtare;;205.440,00
`,
			wantLen: 2,
			verify: func(t *testing.T, txs []transaction.CreateParams) {
				assert.Equal(t, "Pagesë OSHEE", txs[0].Description)
				assert.True(t, decimal.RequireFromString("4560").Equal(txs[0].Amount))
				assert.Equal(t, transaction.TypeExpense, txs[0].Type)
				assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), txs[0].Date)
				assert.Equal(t, transaction.CategoryMiscellaneous, txs[0].Category)

				assert.True(t, decimal.RequireFromString("85000").Equal(txs[1].Amount))
				assert.Equal(t, transaction.TypeIncome, txs[1].Type)
			},
		},
		{
			name: "DebitCreditColumns",
			csv: `Data;Përshkrimi;Debi;Kredi
10/06/2024;Qira zyre;350,00;
11/06/2024;Rimbursim;;12,50 EUR
`,
			wantLen: 2,
			verify: func(t *testing.T, txs []transaction.CreateParams) {
				assert.Equal(t, transaction.TypeExpense, txs[0].Type)
				assert.True(t, decimal.RequireFromString("350").Equal(txs[0].Amount))
				assert.Equal(t, transaction.TypeIncome, txs[1].Type)
				assert.True(t, decimal.RequireFromString("12.5").Equal(txs[1].Amount))
			},
		},
		{
			name: "EnglishHeadersAnyCase",
			csv: `Description;AMOUNT;Date
Hosting;-12,99;2024-06-14
`,
			wantLen: 1,
			verify: func(t *testing.T, txs []transaction.CreateParams) {
				assert.Equal(t, "Hosting", txs[0].Description)
				assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), txs[0].Date)
			},
		},
		{
			name: "Windows1252",
			csv:  "Data;P\xebrshkrimi;Shuma\n01-06-2024;Pages\xeb;-1,00\n",
			verify: func(t *testing.T, txs []transaction.CreateParams) {
				assert.Equal(t, "Pagesë", txs[0].Description)
			},
			wantLen: 1,
		},
		{
			name: "ZeroAmountSkipped",
			csv: `Data;Përshkrimi;Shuma
01-06-2024;Nothing;0,00
`,
			wantLen: 0,
		},
		{
			name: "MissingDescription",
			csv: `Data;Përshkrimi;Shuma
01-06-2024;;-5,00
`,
			wantErr: true,
		},
		{
			name:    "UnknownLayout",
			csv:     "foo;bar\n1;2\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Parse(strings.NewReader(tt.csv))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestParseEuropeanAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"-588,74", "-588.74"},
		{"10,00 EUR", "10"},
		{"96 400 L", "96400"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseEuropeanAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
