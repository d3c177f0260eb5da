package transaction_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	txhttp "github.com/VeliorGroup/fluxo/internal/http/transaction"
	"github.com/VeliorGroup/fluxo/internal/tenant"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

func newRouter(t *testing.T, setupMock func(m *transaction.MockRepository)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	if setupMock != nil {
		setupMock(repo)
	}

	r := chi.NewRouter()
	txhttp.NewHandler(transaction.NewService(repo)).Routes(r)

	return r
}

func TestHandler(t *testing.T) {
	ownerID := uuid.New()
	companyID := uuid.New()
	txID := uuid.New()

	validBody := `{"company_id":"` + companyID.String() + `","amount":"45.50","type":"expense","currency":"EUR",` +
		`"date":"2024-06-03","description":"Hosting","category":"software_subscriptions","status":"paid"}`

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		anonymous  bool
		setupMock  func(m *transaction.MockRepository)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:   "CreateExpense",
			method: http.MethodPost,
			path:   "/",
			body:   validBody,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().CompanyOwned(gomock.Any(), ownerID, companyID).Return(true, nil)
				m.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.Equal(t, ownerID, tx.OwnerID)
						assert.True(t, tx.Amount.IsNegative())

						return nil
					})
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "expense", body["type"])
				assert.Equal(t, "2024-06-03", body["date"])
				assert.Equal(t, "Software Subscriptions", body["category_label"])
			},
		},
		{
			name:   "CreateForeignCompany",
			method: http.MethodPost,
			path:   "/",
			body:   validBody,
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().CompanyOwned(gomock.Any(), ownerID, companyID).Return(false, nil)
			},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				fields, ok := body["fields"].([]any)
				require.True(t, ok)
				require.Len(t, fields, 1)
				assert.Equal(t, "company_id", fields[0].(map[string]any)["field"])
			},
		},
		{
			name:       "CreateBadDate",
			method:     http.MethodPost,
			path:       "/",
			body:       strings.Replace(validBody, "2024-06-03", "03/06/2024", 1),
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				fields, ok := body["fields"].([]any)
				require.True(t, ok)
				require.Len(t, fields, 1)
				assert.Equal(t, "date", fields[0].(map[string]any)["field"])
			},
		},
		{
			name:       "ListBadStatus",
			method:     http.MethodGet,
			path:       "/?status=void",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "GetNotFound",
			method: http.MethodGet,
			path:   "/" + txID.String(),
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().GetTransaction(gomock.Any(), ownerID, txID).Return(nil, transaction.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "GetMalformedID",
			method:     http.MethodGet,
			path:       "/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NoTenant",
			method:     http.MethodGet,
			path:       "/",
			anonymous:  true,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(t, tt.setupMock)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if !tt.anonymous {
				req = req.WithContext(tenant.WithOwner(req.Context(), ownerID))
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.check != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				tt.check(t, body)
			}
		})
	}
}
