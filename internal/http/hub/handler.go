package hub

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/hub"
)

type Handler struct {
	now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type hubResponse struct {
	Greeting string       `json:"greeting"`
	Modules  []hub.Module `json:"modules"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, hubResponse{
		Greeting: hub.Greeting(h.now()),
		Modules:  hub.Modules(),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	m, ok := hub.Find(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "module not found", http.StatusNotFound)
		return
	}

	respond.JSON(w, r, http.StatusOK, m)
}
