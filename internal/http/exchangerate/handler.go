package exchangerate

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/exchangerate"
	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

type Handler struct {
	svc *exchangerate.Service
}

func NewHandler(svc *exchangerate.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.current)
	r.Get("/history", h.history)
	r.Get("/convert", h.convert)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.svc.Current(r.Context()))
}

type historyResponse struct {
	Entries []exchangerate.HistoryEntry `json:"entries"`
	Stats   exchangerate.Stats          `json:"stats"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.CurrentHistory()

	respond.JSON(w, r, http.StatusOK, historyResponse{
		Entries: entries,
		Stats:   exchangerate.HistoryStats(entries),
	})
}

type convertResponse struct {
	Amount    decimal.Decimal   `json:"amount"`
	From      money.Currency    `json:"from"`
	To        money.Currency    `json:"to"`
	Result    decimal.Decimal   `json:"result"`
	Formatted string            `json:"formatted"`
	Rate      exchangerate.Rate `json:"exchange_rate"`
}

// convert handles ?amount=&from=&to= using the current rate.
func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		respond.Error(w, r, validate.Fail("amount", "must be a number"))
		return
	}

	from, err := money.ParseCurrency(q.Get("from"))
	if err != nil {
		respond.Error(w, r, validate.Fail("from", "%v", err))
		return
	}

	to, err := money.ParseCurrency(q.Get("to"))
	if err != nil {
		respond.Error(w, r, validate.Fail("to", "%v", err))
		return
	}

	rate := h.svc.Current(r.Context())

	result, err := money.Convert(amount, from, to, rate.Value)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, convertResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Result:    result,
		Formatted: money.Format(result, to),
		Rate:      rate,
	})
}
