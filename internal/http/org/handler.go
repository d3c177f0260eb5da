package org

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/org"
)

type Handler struct {
	svc *org.Service
}

func NewHandler(svc *org.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/chart", h.chart)

	r.Route("/departments", func(r chi.Router) {
		r.Post("/", h.createDepartment)
		r.Get("/", h.listDepartments)
		r.Put("/{id}", h.updateDepartment)
		r.Delete("/{id}", h.deleteDepartment)
	})

	r.Route("/roles", func(r chi.Router) {
		r.Post("/", h.createRole)
		r.Get("/", h.listRoles)
		r.Put("/{id}", h.updateRole)
		r.Delete("/{id}", h.deleteRole)
	})

	r.Route("/people", func(r chi.Router) {
		r.Post("/", h.createPerson)
		r.Get("/", h.listPeople)
		r.Put("/{id}", h.updatePerson)
		r.Delete("/{id}", h.deletePerson)
	})
}

type departmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	CompanyName string     `json:"company_name,omitempty"`
	Name        string     `json:"name"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toDepartmentResponse(d *org.Department) departmentResponse {
	return departmentResponse{
		ID:          d.ID,
		CompanyID:   d.CompanyID,
		CompanyName: d.CompanyName,
		Name:        d.Name,
		ParentID:    d.ParentID,
		CreatedAt:   d.CreatedAt,
	}
}

type roleResponse struct {
	ID             uuid.UUID  `json:"id"`
	DepartmentID   uuid.UUID  `json:"department_id"`
	DepartmentName string     `json:"department_name,omitempty"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toRoleResponse(r *org.Role) roleResponse {
	return roleResponse{
		ID:             r.ID,
		DepartmentID:   r.DepartmentID,
		DepartmentName: r.DepartmentName,
		Name:           r.Name,
		Description:    r.Description,
		ParentID:       r.ParentID,
		CreatedAt:      r.CreatedAt,
	}
}

type personResponse struct {
	ID          uuid.UUID        `json:"id"`
	CompanyID   *uuid.UUID       `json:"company_id,omitempty"`
	CompanyName string           `json:"company_name,omitempty"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       string           `json:"email"`
	Role        string           `json:"role"`
	Department  string           `json:"department"`
	Status      org.PersonStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toPersonResponse(p *org.Person) personResponse {
	return personResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		CompanyName: p.CompanyName,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Role:        p.Role,
		Department:  p.Department,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	chart, err := h.svc.Chart(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, chart)
}

func (h *Handler) createDepartment(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var params org.DepartmentParams
	if !respond.Decode(w, r, &params) {
		return
	}

	params.OwnerID = ownerID

	d, err := h.svc.CreateDepartment(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toDepartmentResponse(d))
}

func (h *Handler) listDepartments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	departments, err := h.svc.ListDepartments(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]departmentResponse, len(departments))
	for i, d := range departments {
		resp[i] = toDepartmentResponse(d)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) updateDepartment(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var params org.DepartmentParams
	if !respond.Decode(w, r, &params) {
		return
	}

	params.OwnerID = ownerID

	d, err := h.svc.UpdateDepartment(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toDepartmentResponse(d))
}

func (h *Handler) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.svc.DeleteDepartment)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var params org.RoleParams
	if !respond.Decode(w, r, &params) {
		return
	}

	params.OwnerID = ownerID

	role, err := h.svc.CreateRole(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toRoleResponse(role))
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	roles, err := h.svc.ListRoles(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]roleResponse, len(roles))
	for i, role := range roles {
		resp[i] = toRoleResponse(role)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var params org.RoleParams
	if !respond.Decode(w, r, &params) {
		return
	}

	params.OwnerID = ownerID

	role, err := h.svc.UpdateRole(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toRoleResponse(role))
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.svc.DeleteRole)
}

func (h *Handler) createPerson(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var params org.PersonParams
	if !respond.Decode(w, r, &params) {
		return
	}

	params.OwnerID = ownerID

	p, err := h.svc.CreatePerson(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toPersonResponse(p))
}

func (h *Handler) listPeople(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	people, err := h.svc.ListPeople(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]personResponse, len(people))
	for i, p := range people {
		resp[i] = toPersonResponse(p)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) updatePerson(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var params org.PersonParams
	if !respond.Decode(w, r, &params) {
		return
	}

	params.OwnerID = ownerID

	p, err := h.svc.UpdatePerson(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toPersonResponse(p))
}

func (h *Handler) deletePerson(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.svc.DeletePerson)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, ownerID, id uuid.UUID) error) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := del(r.Context(), ownerID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
