package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/VeliorGroup/fluxo/internal/http/account"
	"github.com/VeliorGroup/fluxo/internal/http/categorize"
	"github.com/VeliorGroup/fluxo/internal/http/company"
	"github.com/VeliorGroup/fluxo/internal/http/dashboard"
	"github.com/VeliorGroup/fluxo/internal/http/exchangerate"
	"github.com/VeliorGroup/fluxo/internal/http/export"
	"github.com/VeliorGroup/fluxo/internal/http/hub"
	"github.com/VeliorGroup/fluxo/internal/http/importcsv"
	"github.com/VeliorGroup/fluxo/internal/http/org"
	"github.com/VeliorGroup/fluxo/internal/http/payroll"
	"github.com/VeliorGroup/fluxo/internal/http/transaction"
	"github.com/VeliorGroup/fluxo/internal/logger"
)

// Authenticator turns a request's bearer token into a tenant.
type Authenticator interface {
	Middleware(next http.Handler) http.Handler
}

type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	Timeout        time.Duration
}

type Handlers struct {
	Transactions  *transaction.Handler
	Companies     *company.Handler
	Accounts      *account.Handler
	Payroll       *payroll.Handler
	Org           *org.Handler
	Dashboard     *dashboard.Handler
	ExchangeRates *exchangerate.Handler
	Categorize    *categorize.Handler
	Hub           *hub.Handler
	Import        *importcsv.Handler
	Export        *export.Handler
}

func New(opts Options, auth Authenticator, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(logger.Middleware)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.RateLimitRPS > 0 {
		router.Use(newRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Middleware)
	}

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware)

		jsonOnly := middleware.AllowContentType("application/json")

		r.Route("/hub", h.Hub.Routes)

		r.Route("/transactions", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Transactions.Routes(r)
		})

		r.Route("/companies", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Companies.Routes(r)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Accounts.Routes(r)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Payroll.Routes(r)
		})

		r.Route("/org", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Org.Routes(r)
		})

		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/exchange-rates", h.ExchangeRates.Routes)

		r.Route("/categorize", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Categorize.Routes(r)
		})

		r.Route("/import", h.Import.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(jsonOnly)
			h.Export.Routes(r)
		})
	})

	return router
}
