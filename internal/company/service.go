package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/validate"
)

var ErrNotFound = errors.New("company not found")

// Type is the legal form of a company.
type Type string

const (
	TypePersonFizik Type = "person_fizik"
	TypeSHPK        Type = "shpk"
)

type Company struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Type      Type
	NIPT      string
	Address   string
	Email     string
	Phone     string
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=company
type Repository interface {
	CreateCompany(ctx context.Context, c *Company) error
	GetCompany(ctx context.Context, ownerID, id uuid.UUID) (*Company, error)
	ListCompanies(ctx context.Context, ownerID uuid.UUID) ([]*Company, error)
	UpdateCompany(ctx context.Context, c *Company) error
	DeleteCompany(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
	Name    string    `json:"name" validate:"required,max=200"`
	Type    Type      `json:"type" validate:"oneof=person_fizik shpk"`
	NIPT    string    `json:"nipt" validate:"max=20"`
	Address string    `json:"address" validate:"max=500"`
	Email   string    `json:"email" validate:"omitempty,email"`
	Phone   string    `json:"phone" validate:"max=40"`
	LogoURL string    `json:"logo_url" validate:"omitempty,url"`
}

func (p *Params) normalize() error {
	p.Name = validate.Text(p.Name)
	p.NIPT = validate.Text(p.NIPT)
	p.Address = validate.Text(p.Address)
	p.Phone = validate.Text(p.Phone)

	return validate.Struct(p)
}

func (p *Params) apply(c *Company) {
	c.OwnerID = p.OwnerID
	c.Name = p.Name
	c.Type = p.Type
	c.NIPT = p.NIPT
	c.Address = p.Address
	c.Email = p.Email
	c.Phone = p.Phone
	c.LogoURL = p.LogoURL
}

func (s *Service) Create(ctx context.Context, params Params) (*Company, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	c := &Company{}
	params.apply(c)

	if err := s.repo.CreateCompany(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Company, error) {
	return s.repo.GetCompany(ctx, ownerID, id)
}

// List returns the owner's companies ordered by name.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Company, error) {
	return s.repo.ListCompanies(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Company, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCompany(ctx, params.OwnerID, id)
	if err != nil {
		return nil, err
	}

	params.apply(c)

	if err := s.repo.UpdateCompany(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteCompany(ctx, ownerID, id)
}
