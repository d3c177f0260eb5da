// Package org manages the organization chart: departments and roles, each a
// forest through optional parent links, and the people directory.
package org

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/validate"
)

var ErrNotFound = errors.New("organization record not found")

type Department struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	CompanyID   uuid.UUID
	Name        string
	ParentID    *uuid.UUID
	CompanyName string // Loaded via JOIN
	CreatedAt   time.Time
}

type Role struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	DepartmentID   uuid.UUID
	Name           string
	Description    string
	ParentID       *uuid.UUID
	DepartmentName string // Loaded via JOIN
	CreatedAt      time.Time
}

type PersonStatus string

const (
	PersonActive     PersonStatus = "active"
	PersonTerminated PersonStatus = "terminated"
	PersonOnLeave    PersonStatus = "on_leave"
)

func ParsePersonStatus(s string) (PersonStatus, error) {
	switch st := PersonStatus(s); st {
	case PersonActive, PersonTerminated, PersonOnLeave:
		return st, nil
	}

	return "", fmt.Errorf("unknown person status %q", s)
}

type Person struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	CompanyID   *uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Role        string
	Department  string
	Status      PersonStatus
	CompanyName string // Loaded via JOIN
	CreatedAt   time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=org
type Repository interface {
	CreateDepartment(ctx context.Context, d *Department) error
	ListDepartments(ctx context.Context, ownerID uuid.UUID) ([]*Department, error)
	UpdateDepartment(ctx context.Context, d *Department) error
	DeleteDepartment(ctx context.Context, ownerID, id uuid.UUID) error

	CreateRole(ctx context.Context, r *Role) error
	ListRoles(ctx context.Context, ownerID uuid.UUID) ([]*Role, error)
	UpdateRole(ctx context.Context, r *Role) error
	DeleteRole(ctx context.Context, ownerID, id uuid.UUID) error

	CreatePerson(ctx context.Context, p *Person) error
	GetPerson(ctx context.Context, ownerID, id uuid.UUID) (*Person, error)
	ListPeople(ctx context.Context, ownerID uuid.UUID) ([]*Person, error)
	UpdatePerson(ctx context.Context, p *Person) error
	DeletePerson(ctx context.Context, ownerID, id uuid.UUID) error

	CompanyOwned(ctx context.Context, ownerID, companyID uuid.UUID) (bool, error)
	DepartmentOwned(ctx context.Context, ownerID, departmentID uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type DepartmentParams struct {
	OwnerID   uuid.UUID  `json:"owner_id" validate:"required"`
	CompanyID uuid.UUID  `json:"company_id" validate:"required"`
	Name      string     `json:"name" validate:"required,max=200"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
}

type RoleParams struct {
	OwnerID      uuid.UUID  `json:"owner_id" validate:"required"`
	DepartmentID uuid.UUID  `json:"department_id" validate:"required"`
	Name         string     `json:"name" validate:"required,max=200"`
	Description  string     `json:"description" validate:"max=1000"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
}

type PersonParams struct {
	OwnerID    uuid.UUID    `json:"owner_id" validate:"required"`
	CompanyID  *uuid.UUID   `json:"company_id,omitempty"`
	FirstName  string       `json:"first_name" validate:"required,max=100"`
	LastName   string       `json:"last_name" validate:"required,max=100"`
	Email      string       `json:"email" validate:"omitempty,email"`
	Role       string       `json:"role" validate:"max=200"`
	Department string       `json:"department" validate:"max=200"`
	Status     PersonStatus `json:"status" validate:"oneof=active terminated on_leave"`
}

// parentError reports a rejected parent as a validation failure that still
// matches the hierarchy sentinel.
func parentError(err error) error {
	return fmt.Errorf("parent_id: %w: %w", validate.ErrInvalid, err)
}

func (s *Service) CreateDepartment(ctx context.Context, params DepartmentParams) (*Department, error) {
	params.Name = validate.Text(params.Name)
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	all, err := s.repo.ListDepartments(ctx, params.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := CheckParent(uuid.Nil, params.ParentID, departmentParents(all)); err != nil {
		return nil, parentError(err)
	}

	if err := s.checkCompany(ctx, params.OwnerID, params.CompanyID); err != nil {
		return nil, err
	}

	d := &Department{
		OwnerID:   params.OwnerID,
		CompanyID: params.CompanyID,
		Name:      params.Name,
		ParentID:  params.ParentID,
	}

	if err := s.repo.CreateDepartment(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) ListDepartments(ctx context.Context, ownerID uuid.UUID) ([]*Department, error) {
	return s.repo.ListDepartments(ctx, ownerID)
}

func (s *Service) UpdateDepartment(ctx context.Context, id uuid.UUID, params DepartmentParams) (*Department, error) {
	params.Name = validate.Text(params.Name)
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	all, err := s.repo.ListDepartments(ctx, params.OwnerID)
	if err != nil {
		return nil, err
	}

	var d *Department

	for _, it := range all {
		if it.ID == id {
			d = it
			break
		}
	}

	if d == nil {
		return nil, ErrNotFound
	}

	if err := CheckParent(id, params.ParentID, departmentParents(all)); err != nil {
		return nil, parentError(err)
	}

	if err := s.checkCompany(ctx, params.OwnerID, params.CompanyID); err != nil {
		return nil, err
	}

	d.CompanyID = params.CompanyID
	d.Name = params.Name
	d.ParentID = params.ParentID

	if err := s.repo.UpdateDepartment(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteDepartment(ctx, ownerID, id)
}

func (s *Service) CreateRole(ctx context.Context, params RoleParams) (*Role, error) {
	params.Name = validate.Text(params.Name)
	params.Description = validate.Text(params.Description)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	all, err := s.repo.ListRoles(ctx, params.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := CheckParent(uuid.Nil, params.ParentID, roleParents(all)); err != nil {
		return nil, parentError(err)
	}

	if err := s.checkDepartment(ctx, params.OwnerID, params.DepartmentID); err != nil {
		return nil, err
	}

	r := &Role{
		OwnerID:      params.OwnerID,
		DepartmentID: params.DepartmentID,
		Name:         params.Name,
		Description:  params.Description,
		ParentID:     params.ParentID,
	}

	if err := s.repo.CreateRole(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) ListRoles(ctx context.Context, ownerID uuid.UUID) ([]*Role, error) {
	return s.repo.ListRoles(ctx, ownerID)
}

func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, params RoleParams) (*Role, error) {
	params.Name = validate.Text(params.Name)
	params.Description = validate.Text(params.Description)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	all, err := s.repo.ListRoles(ctx, params.OwnerID)
	if err != nil {
		return nil, err
	}

	var r *Role

	for _, it := range all {
		if it.ID == id {
			r = it
			break
		}
	}

	if r == nil {
		return nil, ErrNotFound
	}

	if err := CheckParent(id, params.ParentID, roleParents(all)); err != nil {
		return nil, parentError(err)
	}

	if err := s.checkDepartment(ctx, params.OwnerID, params.DepartmentID); err != nil {
		return nil, err
	}

	r.DepartmentID = params.DepartmentID
	r.Name = params.Name
	r.Description = params.Description
	r.ParentID = params.ParentID

	if err := s.repo.UpdateRole(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) DeleteRole(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteRole(ctx, ownerID, id)
}

// Chart is the organization chart of an owner.
type Chart struct {
	Departments []*Node `json:"departments"`
	Roles       []*Node `json:"roles"`
}

func (s *Service) Chart(ctx context.Context, ownerID uuid.UUID) (*Chart, error) {
	departments, err := s.repo.ListDepartments(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	roles, err := s.repo.ListRoles(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dn := make([]Node, 0, len(departments))
	for _, d := range departments {
		dn = append(dn, Node{ID: d.ID, Name: d.Name, ParentID: d.ParentID})
	}

	rn := make([]Node, 0, len(roles))
	for _, r := range roles {
		rn = append(rn, Node{ID: r.ID, Name: r.Name, ParentID: r.ParentID})
	}

	return &Chart{Departments: BuildTree(dn), Roles: BuildTree(rn)}, nil
}

func (p *PersonParams) normalize() error {
	p.FirstName = validate.Text(p.FirstName)
	p.LastName = validate.Text(p.LastName)
	p.Role = validate.Text(p.Role)
	p.Department = validate.Text(p.Department)

	if p.Status == "" {
		p.Status = PersonActive
	}

	return validate.Struct(p)
}

func (p *PersonParams) apply(person *Person) {
	person.OwnerID = p.OwnerID
	person.CompanyID = p.CompanyID
	person.FirstName = p.FirstName
	person.LastName = p.LastName
	person.Email = p.Email
	person.Role = p.Role
	person.Department = p.Department
	person.Status = p.Status
}

func (s *Service) CreatePerson(ctx context.Context, params PersonParams) (*Person, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	if params.CompanyID != nil {
		if err := s.checkCompany(ctx, params.OwnerID, *params.CompanyID); err != nil {
			return nil, err
		}
	}

	p := &Person{}
	params.apply(p)

	if err := s.repo.CreatePerson(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ListPeople returns the directory ordered by first name.
func (s *Service) ListPeople(ctx context.Context, ownerID uuid.UUID) ([]*Person, error) {
	return s.repo.ListPeople(ctx, ownerID)
}

func (s *Service) UpdatePerson(ctx context.Context, id uuid.UUID, params PersonParams) (*Person, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetPerson(ctx, params.OwnerID, id)
	if err != nil {
		return nil, err
	}

	if params.CompanyID != nil {
		if err := s.checkCompany(ctx, params.OwnerID, *params.CompanyID); err != nil {
			return nil, err
		}
	}

	params.apply(p)

	if err := s.repo.UpdatePerson(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) DeletePerson(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeletePerson(ctx, ownerID, id)
}

// checkCompany rejects a company that is missing or belongs to another owner.
func (s *Service) checkCompany(ctx context.Context, ownerID, companyID uuid.UUID) error {
	ok, err := s.repo.CompanyOwned(ctx, ownerID, companyID)
	if err != nil {
		return fmt.Errorf("checking company: %w", err)
	}

	if !ok {
		return validate.Fail("company_id", "unknown company")
	}

	return nil
}

func (s *Service) checkDepartment(ctx context.Context, ownerID, departmentID uuid.UUID) error {
	ok, err := s.repo.DepartmentOwned(ctx, ownerID, departmentID)
	if err != nil {
		return fmt.Errorf("checking department: %w", err)
	}

	if !ok {
		return validate.Fail("department_id", "unknown department")
	}

	return nil
}

func departmentParents(all []*Department) map[uuid.UUID]*uuid.UUID {
	return parentMap(all, func(d *Department) (uuid.UUID, *uuid.UUID) { return d.ID, d.ParentID })
}

func roleParents(all []*Role) map[uuid.UUID]*uuid.UUID {
	return parentMap(all, func(r *Role) (uuid.UUID, *uuid.UUID) { return r.ID, r.ParentID })
}
