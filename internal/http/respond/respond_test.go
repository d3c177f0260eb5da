package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/org"
	"github.com/VeliorGroup/fluxo/internal/tenant"
	"github.com/VeliorGroup/fluxo/internal/transaction"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "Validation", err: validate.Fail("name", "is required"), wantStatus: http.StatusBadRequest},
		{name: "WrappedCycle", err: fmt.Errorf("parent_id: %w: %w", validate.ErrInvalid, org.ErrCycle), wantStatus: http.StatusBadRequest},
		{name: "NotFound", err: fmt.Errorf("loading: %w", transaction.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "NoTenant", err: tenant.ErrNoTenant, wantStatus: http.StatusUnauthorized},
		{name: "Internal", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "connection reset")
			}
		})
	}
}

func TestError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Error(rec, httptest.NewRequest(http.MethodPost, "/", nil), validate.Fail("amount", "must be greater than 0"))

	var body struct {
		Error  string                `json:"error"`
		Fields []validate.FieldError `json:"fields"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []validate.FieldError{{Field: "amount", Message: "must be greater than 0"}}, body.Fields)
}

func TestOwner(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := respond.Owner(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(tenant.WithOwner(req.Context(), id))

	got, ok := respond.Owner(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestDecode(t *testing.T) {
	var v struct{ Name string }

	rec := httptest.NewRecorder()
	ok := respond.Decode(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &v)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ok = respond.Decode(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":"x"}`)), &v)
	assert.True(t, ok)
	assert.Equal(t, "x", v.Name)
}

func TestParseDate(t *testing.T) {
	_, err := respond.ParseDate("date", "03/06/2024")
	assert.ErrorIs(t, err, validate.ErrInvalid)

	d, err := respond.ParseDate("date", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", respond.Date(d))
}
