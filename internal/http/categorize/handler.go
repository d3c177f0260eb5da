package categorize

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VeliorGroup/fluxo/internal/categorize"
	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/transaction"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

type Handler struct {
	svc *categorize.Service
}

func NewHandler(svc *categorize.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type ruleRequest struct {
	RawPattern           string               `json:"raw_pattern"`
	Category             transaction.Category `json:"category"`
	PreferredDescription string               `json:"preferred_description"`
}

type suggestResponse struct {
	Matched              bool                 `json:"matched"`
	RawPattern           string               `json:"raw_pattern,omitempty"`
	Category             transaction.Category `json:"category,omitempty"`
	CategoryLabel        string               `json:"category_label,omitempty"`
	PreferredDescription string               `json:"preferred_description,omitempty"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	raw := r.URL.Query().Get("raw_description")
	if raw == "" {
		respond.Error(w, r, validate.Fail("raw_description", "is required"))
		return
	}

	rule, err := h.svc.Suggest(r.Context(), ownerID, raw)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if rule == nil {
		respond.JSON(w, r, http.StatusOK, suggestResponse{})
		return
	}

	respond.JSON(w, r, http.StatusOK, suggestResponse{
		Matched:              true,
		RawPattern:           rule.Pattern,
		Category:             rule.Category,
		CategoryLabel:        rule.Category.Label(),
		PreferredDescription: rule.Description,
	})
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req ruleRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	err := h.svc.Learn(r.Context(), ownerID, categorize.Rule{
		Pattern:     req.RawPattern,
		Category:    req.Category,
		Description: req.PreferredDescription,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
