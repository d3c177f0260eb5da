package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/payroll"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

var ownerID = uuid.MustParse("c3e1a9b0-2f44-4d17-a7f0-5b8e6d3c0001")

func validParams() payroll.CreateParams {
	return payroll.CreateParams{
		OwnerID:       ownerID,
		CompanyID:     uuid.New(),
		EmployeeName:  "Arta Hoxha",
		EmployeeID:    "E-014",
		PayPeriodDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		GrossSalary:   decimal.NewFromInt(150000),
		TaxMode:       payroll.TaxModePercentage,
		TaxValue:      decimal.NewFromInt(25),
	}
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	params := validParams()

	repo := payroll.NewMockRepository(ctrl)
	repo.EXPECT().CompanyOwned(gomock.Any(), ownerID, params.CompanyID).Return(true, nil)
	repo.EXPECT().CreateStub(gomock.Any(), gomock.Any()).Return(nil)

	got, err := payroll.NewService(repo).Create(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, money.ALL, got.Currency)
	assert.True(t, decimal.NewFromInt(37500).Equal(got.Taxes))
	assert.True(t, decimal.NewFromInt(112500).Equal(got.NetSalary))
	assert.Equal(t, payroll.StatusPending, got.SalaryStatus)
	assert.Equal(t, payroll.StatusPending, got.TaxesStatus)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), got.SalaryDueDate)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), got.TaxesDueDate)
}

func TestService_Create_ForeignCompany(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	params := validParams()

	repo := payroll.NewMockRepository(ctrl)
	repo.EXPECT().CompanyOwned(gomock.Any(), ownerID, params.CompanyID).Return(false, nil)

	got, err := payroll.NewService(repo).Create(context.Background(), params)
	require.ErrorIs(t, err, validate.ErrInvalid)
	assert.Nil(t, got)

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "company_id", verr.Fields[0].Field)
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *payroll.CreateParams)
	}{
		{name: "MissingEmployee", mutate: func(p *payroll.CreateParams) { p.EmployeeName = "" }},
		{name: "ZeroGross", mutate: func(p *payroll.CreateParams) { p.GrossSalary = decimal.Zero }},
		{name: "UnknownMode", mutate: func(p *payroll.CreateParams) { p.TaxMode = "progressive" }},
		{name: "TaxesAboveGross", mutate: func(p *payroll.CreateParams) {
			p.TaxMode = payroll.TaxModeFixed
			p.TaxValue = decimal.NewFromInt(200000)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			params := validParams()
			tt.mutate(&params)

			_, err := payroll.NewService(payroll.NewMockRepository(ctrl)).Create(context.Background(), params)
			assert.ErrorIs(t, err, validate.ErrInvalid)
		})
	}
}

func TestService_MarkLegs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payroll.NewMockRepository(ctrl)
	svc := payroll.NewService(repo)
	id := uuid.New()

	gomock.InOrder(
		repo.EXPECT().UpdateLegStatus(gomock.Any(), ownerID, id, payroll.LegSalary, payroll.StatusPaid).Return(nil),
		repo.EXPECT().UpdateLegStatus(gomock.Any(), ownerID, id, payroll.LegTaxes, payroll.StatusPending).Return(nil),
	)

	require.NoError(t, svc.MarkSalary(context.Background(), ownerID, id, payroll.StatusPaid))
	require.NoError(t, svc.MarkTaxes(context.Background(), ownerID, id, payroll.StatusPending))

	err := svc.MarkTaxes(context.Background(), ownerID, id, payroll.Status("forecasted"))
	assert.ErrorIs(t, err, validate.ErrInvalid)
}
