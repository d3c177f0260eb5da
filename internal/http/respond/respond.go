// Package respond holds the helpers shared by the API handlers: JSON
// encoding, request decoding and the mapping from domain errors to statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/account"
	"github.com/VeliorGroup/fluxo/internal/company"
	"github.com/VeliorGroup/fluxo/internal/logger"
	"github.com/VeliorGroup/fluxo/internal/org"
	"github.com/VeliorGroup/fluxo/internal/payroll"
	"github.com/VeliorGroup/fluxo/internal/tenant"
	"github.com/VeliorGroup/fluxo/internal/transaction"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

var notFound = []error{
	transaction.ErrNotFound,
	account.ErrNotFound,
	company.ErrNotFound,
	payroll.ErrNotFound,
	org.ErrNotFound,
}

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response", "error", err)
	}
}

// Error writes the status matching err. Unexpected errors are logged and
// reported without detail.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		JSON(w, r, http.StatusBadRequest, errorResponse{Error: validate.ErrInvalid.Error(), Fields: verr.Fields})
		return
	}

	if errors.Is(err, validate.ErrInvalid) {
		JSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			http.Error(w, target.Error(), http.StatusNotFound)
			return
		}
	}

	if errors.Is(err, tenant.ErrNoTenant) {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	logger.FromContext(r.Context()).Error("request failed", "error", err, "path", r.URL.Path)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// Decode reads a JSON body into v, answering 400 itself on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

// Owner returns the tenant of the request, answering 401 itself when absent.
func Owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := tenant.FromContext(r.Context())
	if err != nil {
		Error(w, r, err)
		return uuid.Nil, false
	}

	return id, true
}

// ID parses the {id} URL parameter, answering 400 itself when malformed.
func ID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

// ParseDate parses a YYYY-MM-DD value as a validation failure of field.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, validate.Fail(field, "must be a date in YYYY-MM-DD form")
	}

	return t, nil
}

// Date formats a calendar date for responses.
func Date(t time.Time) string {
	return t.Format(time.DateOnly)
}
