package categorize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VeliorGroup/fluxo/internal/categorize"
	"github.com/VeliorGroup/fluxo/internal/transaction"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

var ownerID = uuid.MustParse("4e2b7d90-6c1a-4b8f-9d3e-7a5c2f1e0001")

func TestService_Learn(t *testing.T) {
	type testCase struct {
		name      string
		rule      categorize.Rule
		setupMock func(m *categorize.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			rule: categorize.Rule{Pattern: "  OSHEE ", Category: transaction.CategoryUtilities, Description: "Electricity"},
			setupMock: func(m *categorize.MockRepository) {
				m.EXPECT().CreateRule(gomock.Any(), ownerID, categorize.Rule{
					Pattern:     "OSHEE",
					Category:    transaction.CategoryUtilities,
					Description: "Electricity",
				}).Return(nil)
			},
		},
		{
			name:    "EmptyPattern",
			rule:    categorize.Rule{Pattern: " ", Category: transaction.CategoryUtilities},
			wantErr: validate.ErrInvalid,
		},
		{
			name:    "UnknownCategory",
			rule:    categorize.Rule{Pattern: "OSHEE", Category: "power"},
			wantErr: validate.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := categorize.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := categorize.NewService(repo).Learn(context.Background(), ownerID, tt.rule)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := categorize.NewMockRepository(ctrl)

	params := []transaction.CreateParams{
		{Description: "TRF OSHEE SHA 0042"},
		{Description: "Unknown merchant"},
		{Description: "Invoice 7", Category: transaction.CategoryClientInvoice},
	}

	repo.EXPECT().FindRule(gomock.Any(), ownerID, "TRF OSHEE SHA 0042").
		Return(&categorize.Rule{Pattern: "OSHEE", Category: transaction.CategoryUtilities, Description: "Electricity"}, nil)
	repo.EXPECT().FindRule(gomock.Any(), ownerID, "Unknown merchant").Return(nil, nil)

	matched, err := categorize.NewService(repo).Apply(context.Background(), ownerID, params)
	require.NoError(t, err)
	assert.Equal(t, 1, matched)

	assert.Equal(t, transaction.CategoryUtilities, params[0].Category)
	assert.Equal(t, "Electricity", params[0].Description)
	assert.Equal(t, transaction.CategoryMiscellaneous, params[1].Category)
	assert.Equal(t, "Unknown merchant", params[1].Description)
	assert.Equal(t, transaction.CategoryClientInvoice, params[2].Category)
}

func TestService_Apply_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := categorize.NewMockRepository(ctrl)
	repo.EXPECT().FindRule(gomock.Any(), ownerID, gomock.Any()).Return(nil, errors.New("db error"))

	_, err := categorize.NewService(repo).Apply(context.Background(), ownerID, []transaction.CreateParams{{Description: "x"}})
	assert.ErrorContains(t, err, "row 1")
}
