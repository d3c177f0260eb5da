package exchangerate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/exchangerate"
)

const ratePage = `<html><body>
<h1>Kursi zyrtar i këmbimit</h1>
<table>
  <tr><th>Monedha</th><th>Kodi</th><th>Kursi</th><th>Ndryshimi</th></tr>
  <tr><td nowrap="">Dollar Amerikan</td><td nowrap="">USD</td><td align="right" nowrap="">92.10</td><td align="right" nowrap="">+0.12</td></tr>
  <tr>
    <td nowrap=""> Euro </td>
    <td nowrap="">EUR</td>
    <td align="right" nowrap="">96.40</td>
    <td align="right" nowrap="">-0.03</td>
  </tr>
</table>
</body></html>`

func TestParseRateTable(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		wantRate   string
		wantChange string
		wantErr    error
	}{
		{
			name:       "EuroRow",
			page:       ratePage,
			wantRate:   "96.40",
			wantChange: "-0.03",
		},
		{
			name:       "PositiveChangeWithMarkup",
			page:       `<table><tr><td><b>EURO</b></td><td>eur</td><td>97.15</td><td>+0.20</td></tr></table>`,
			wantRate:   "97.15",
			wantChange: "0.20",
		},
		{
			name:    "NoEuroRow",
			page:    `<table><tr><td>Dollar</td><td>USD</td><td>92.10</td><td>0.12</td></tr></table>`,
			wantErr: exchangerate.ErrRateNotFound,
		},
		{
			name:    "NonNumericRate",
			page:    `<table><tr><td>Euro</td><td>EUR</td><td>n/a</td><td>0</td></tr></table>`,
			wantErr: exchangerate.ErrRateNotFound,
		},
		{
			name:    "CellsSplitAcrossRows",
			page:    `<table><tr><td>Euro</td><td>EUR</td></tr><tr><td>96.40</td><td>0.01</td></tr></table>`,
			wantErr: exchangerate.ErrRateNotFound,
		},
		{
			name:    "Empty",
			page:    "",
			wantErr: exchangerate.ErrRateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exchangerate.ParseRateTable(strings.NewReader(tt.page))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.wantRate).Equal(got.Value), "rate %s", got.Value)
			assert.True(t, decimal.RequireFromString(tt.wantChange).Equal(got.Change), "change %s", got.Change)
			assert.Equal(t, exchangerate.SourceBOA, got.Source)
		})
	}
}

func TestBOAFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1252")
		// "këmbimit" with ë encoded as 0xEB ahead of the table.
		_, _ = w.Write([]byte("<p>k\xebmbimit</p>"))
		_, _ = w.Write([]byte(`<table><tr><td>Euro</td><td>EUR</td><td>98.01</td><td>0.10</td></tr></table>`))
	}))
	defer srv.Close()

	f := exchangerate.NewBOAFetcher(srv.URL, time.Second)

	got, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("98.01").Equal(got.Value))
}

func TestBOAFetcher_Fetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := exchangerate.NewBOAFetcher(srv.URL, time.Second).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
