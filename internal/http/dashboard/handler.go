package dashboard

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/VeliorGroup/fluxo/internal/dashboard"
	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

// summary serves the KPIs in ?currency= (EUR by default). ?refresh=true
// skips the cached copy.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	display := money.EUR

	if v := r.URL.Query().Get("currency"); v != "" {
		c, err := money.ParseCurrency(v)
		if err != nil {
			respond.Error(w, r, validate.Fail("currency", "%v", err))
			return
		}

		display = c
	}

	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	get := h.svc.Summary
	if refresh {
		get = h.svc.Refresh
	}

	summary, err := get(r.Context(), ownerID, display)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, summary)
}
