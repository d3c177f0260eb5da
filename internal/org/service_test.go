package org_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VeliorGroup/fluxo/internal/org"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

var (
	ownerID   = uuid.MustParse("91d5e2a4-3b6c-4f0e-8a7d-2e9c1b4f0001")
	companyID = uuid.MustParse("91d5e2a4-3b6c-4f0e-8a7d-2e9c1b4f0002")
)

func TestService_CreateDepartment(t *testing.T) {
	parent := &org.Department{ID: uuid.New(), OwnerID: ownerID, CompanyID: companyID, Name: "Finance"}

	type testCase struct {
		name      string
		params    org.DepartmentParams
		setupMock func(m *org.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "UnderExistingParent",
			params: org.DepartmentParams{OwnerID: ownerID, CompanyID: companyID, Name: "Payroll", ParentID: &parent.ID},
			setupMock: func(m *org.MockRepository) {
				m.EXPECT().ListDepartments(gomock.Any(), ownerID).Return([]*org.Department{parent}, nil)
				m.EXPECT().CompanyOwned(gomock.Any(), ownerID, companyID).Return(true, nil)
				m.EXPECT().CreateDepartment(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "ForeignCompany",
			params: org.DepartmentParams{OwnerID: ownerID, CompanyID: companyID, Name: "Payroll"},
			setupMock: func(m *org.MockRepository) {
				m.EXPECT().ListDepartments(gomock.Any(), ownerID).Return(nil, nil)
				m.EXPECT().CompanyOwned(gomock.Any(), ownerID, companyID).Return(false, nil)
			},
			wantErr: validate.ErrInvalid,
		},
		{
			name:   "UnknownParent",
			params: org.DepartmentParams{OwnerID: ownerID, CompanyID: companyID, Name: "Payroll", ParentID: new(uuid.New())},
			setupMock: func(m *org.MockRepository) {
				m.EXPECT().ListDepartments(gomock.Any(), ownerID).Return([]*org.Department{parent}, nil)
			},
			wantErr: org.ErrUnknownParent,
		},
		{
			name:    "MissingName",
			params:  org.DepartmentParams{OwnerID: ownerID, CompanyID: companyID},
			wantErr: validate.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := org.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := org.NewService(repo).CreateDepartment(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Payroll", got.Name)
		})
	}
}

func TestService_UpdateDepartment_RejectsCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := org.NewMockRepository(ctrl)

	finance := &org.Department{ID: uuid.New(), OwnerID: ownerID, CompanyID: companyID, Name: "Finance"}
	payroll := &org.Department{ID: uuid.New(), OwnerID: ownerID, CompanyID: companyID, Name: "Payroll", ParentID: &finance.ID}

	repo.EXPECT().ListDepartments(gomock.Any(), ownerID).Return([]*org.Department{finance, payroll}, nil)

	_, err := org.NewService(repo).UpdateDepartment(context.Background(), finance.ID, org.DepartmentParams{
		OwnerID:   ownerID,
		CompanyID: companyID,
		Name:      "Finance",
		ParentID:  &payroll.ID,
	})
	assert.ErrorIs(t, err, org.ErrCycle)
	assert.ErrorIs(t, err, validate.ErrInvalid)
}

func TestService_UpdateDepartment_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := org.NewMockRepository(ctrl)
	repo.EXPECT().ListDepartments(gomock.Any(), ownerID).Return(nil, nil)

	_, err := org.NewService(repo).UpdateDepartment(context.Background(), uuid.New(), org.DepartmentParams{
		OwnerID:   ownerID,
		CompanyID: companyID,
		Name:      "Finance",
	})
	assert.ErrorIs(t, err, org.ErrNotFound)
}

func TestService_UpdateRole_RejectsSelfParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := org.NewMockRepository(ctrl)
	role := &org.Role{ID: uuid.New(), OwnerID: ownerID, DepartmentID: uuid.New(), Name: "CFO"}

	repo.EXPECT().ListRoles(gomock.Any(), ownerID).Return([]*org.Role{role}, nil)

	_, err := org.NewService(repo).UpdateRole(context.Background(), role.ID, org.RoleParams{
		OwnerID:      ownerID,
		DepartmentID: role.DepartmentID,
		Name:         "CFO",
		ParentID:     &role.ID,
	})
	assert.ErrorIs(t, err, org.ErrCycle)
}

func TestService_CreateRole_ForeignDepartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := org.NewMockRepository(ctrl)
	departmentID := uuid.New()

	repo.EXPECT().ListRoles(gomock.Any(), ownerID).Return(nil, nil)
	repo.EXPECT().DepartmentOwned(gomock.Any(), ownerID, departmentID).Return(false, nil)

	got, err := org.NewService(repo).CreateRole(context.Background(), org.RoleParams{
		OwnerID:      ownerID,
		DepartmentID: departmentID,
		Name:         "CFO",
	})
	require.ErrorIs(t, err, validate.ErrInvalid)
	assert.Nil(t, got)

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "department_id", verr.Fields[0].Field)
}

func TestService_CreateRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := org.NewMockRepository(ctrl)
	departmentID := uuid.New()

	repo.EXPECT().ListRoles(gomock.Any(), ownerID).Return(nil, nil)
	repo.EXPECT().DepartmentOwned(gomock.Any(), ownerID, departmentID).Return(true, nil)
	repo.EXPECT().CreateRole(gomock.Any(), gomock.Any()).Return(nil)

	got, err := org.NewService(repo).CreateRole(context.Background(), org.RoleParams{
		OwnerID:      ownerID,
		DepartmentID: departmentID,
		Name:         "CFO",
	})
	require.NoError(t, err)
	assert.Equal(t, departmentID, got.DepartmentID)
}

func TestService_Chart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := org.NewMockRepository(ctrl)

	finance := &org.Department{ID: uuid.New(), Name: "Finance"}
	payroll := &org.Department{ID: uuid.New(), Name: "Payroll", ParentID: &finance.ID}
	cfo := &org.Role{ID: uuid.New(), Name: "CFO", DepartmentID: finance.ID}
	accountant := &org.Role{ID: uuid.New(), Name: "Accountant", DepartmentID: finance.ID, ParentID: &cfo.ID}

	repo.EXPECT().ListDepartments(gomock.Any(), ownerID).Return([]*org.Department{payroll, finance}, nil)
	repo.EXPECT().ListRoles(gomock.Any(), ownerID).Return([]*org.Role{accountant, cfo}, nil)

	got, err := org.NewService(repo).Chart(context.Background(), ownerID)
	require.NoError(t, err)

	require.Len(t, got.Departments, 1)
	assert.Equal(t, "Finance", got.Departments[0].Name)
	require.Len(t, got.Departments[0].Children, 1)
	assert.Equal(t, "Payroll", got.Departments[0].Children[0].Name)

	require.Len(t, got.Roles, 1)
	assert.Equal(t, "CFO", got.Roles[0].Name)
	require.Len(t, got.Roles[0].Children, 1)
}

func TestService_CreatePerson(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := org.NewMockRepository(ctrl)
	repo.EXPECT().CreatePerson(gomock.Any(), gomock.Any()).Return(nil)

	svc := org.NewService(repo)

	got, err := svc.CreatePerson(context.Background(), org.PersonParams{
		OwnerID:   ownerID,
		FirstName: "Elira",
		LastName:  "Kola",
		Email:     "elira@velior.al",
	})
	require.NoError(t, err)
	assert.Equal(t, org.PersonActive, got.Status)

	_, err = svc.CreatePerson(context.Background(), org.PersonParams{
		OwnerID:   ownerID,
		FirstName: "Elira",
		LastName:  "Kola",
		Status:    "retired",
	})
	assert.ErrorIs(t, err, validate.ErrInvalid)
}

func TestService_UpdatePerson(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := org.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetPerson(gomock.Any(), ownerID, id).Return(&org.Person{ID: id, OwnerID: ownerID, Status: org.PersonActive}, nil)
	repo.EXPECT().CompanyOwned(gomock.Any(), ownerID, companyID).Return(true, nil)
	repo.EXPECT().UpdatePerson(gomock.Any(), gomock.Any()).Return(nil)

	got, err := org.NewService(repo).UpdatePerson(context.Background(), id, org.PersonParams{
		OwnerID:   ownerID,
		CompanyID: new(companyID),
		FirstName: "Elira",
		LastName:  "Kola",
		Status:    org.PersonOnLeave,
	})
	require.NoError(t, err)
	assert.Equal(t, org.PersonOnLeave, got.Status)
	assert.Equal(t, companyID, *got.CompanyID)
}

func TestService_CreatePerson_ForeignCompany(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := org.NewMockRepository(ctrl)
	other := uuid.New()

	repo.EXPECT().CompanyOwned(gomock.Any(), ownerID, other).Return(false, nil)

	_, err := org.NewService(repo).CreatePerson(context.Background(), org.PersonParams{
		OwnerID:   ownerID,
		CompanyID: &other,
		FirstName: "Elira",
		LastName:  "Kola",
	})
	assert.ErrorIs(t, err, validate.ErrInvalid)
}
