package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/VeliorGroup/fluxo/internal/account"
	accountStore "github.com/VeliorGroup/fluxo/internal/account/store"
	"github.com/VeliorGroup/fluxo/internal/categorize"
	categorizeStore "github.com/VeliorGroup/fluxo/internal/categorize/store"
	"github.com/VeliorGroup/fluxo/internal/company"
	companyStore "github.com/VeliorGroup/fluxo/internal/company/store"
	"github.com/VeliorGroup/fluxo/internal/config"
	"github.com/VeliorGroup/fluxo/internal/dashboard"
	"github.com/VeliorGroup/fluxo/internal/database"
	"github.com/VeliorGroup/fluxo/internal/exchangerate"
	"github.com/VeliorGroup/fluxo/internal/export"
	fluxoHttp "github.com/VeliorGroup/fluxo/internal/http"
	accountHandler "github.com/VeliorGroup/fluxo/internal/http/account"
	categorizeHandler "github.com/VeliorGroup/fluxo/internal/http/categorize"
	companyHandler "github.com/VeliorGroup/fluxo/internal/http/company"
	dashboardHandler "github.com/VeliorGroup/fluxo/internal/http/dashboard"
	rateHandler "github.com/VeliorGroup/fluxo/internal/http/exchangerate"
	exportHandler "github.com/VeliorGroup/fluxo/internal/http/export"
	hubHandler "github.com/VeliorGroup/fluxo/internal/http/hub"
	importHandler "github.com/VeliorGroup/fluxo/internal/http/importcsv"
	orgHandler "github.com/VeliorGroup/fluxo/internal/http/org"
	payrollHandler "github.com/VeliorGroup/fluxo/internal/http/payroll"
	txHandler "github.com/VeliorGroup/fluxo/internal/http/transaction"
	"github.com/VeliorGroup/fluxo/internal/importer"
	"github.com/VeliorGroup/fluxo/internal/logger"
	"github.com/VeliorGroup/fluxo/internal/org"
	orgStore "github.com/VeliorGroup/fluxo/internal/org/store"
	"github.com/VeliorGroup/fluxo/internal/payroll"
	payrollStore "github.com/VeliorGroup/fluxo/internal/payroll/store"
	"github.com/VeliorGroup/fluxo/internal/tenant"
	"github.com/VeliorGroup/fluxo/internal/transaction"
	txStore "github.com/VeliorGroup/fluxo/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.App.LogLevel)

	if err := cfg.CheckAuth(); err != nil {
		log.Error("invalid auth config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	rateService := exchangerate.NewService(
		exchangerate.NewBOAFetcher(cfg.ExchangeRate.URL, cfg.ExchangeRate.Timeout),
		exchangerate.NewCache(cfg.ExchangeRate.TTL),
		exchangerate.WithFallback(cfg.ExchangeRate.Fallback),
	)

	var (
		transactionService = transaction.NewService(txStore.New(db))
		companyService     = company.NewService(companyStore.New(db))
		accountService     = account.NewService(accountStore.New(db), transactionService)
		payrollService     = payroll.NewService(payrollStore.New(db))
		orgService         = org.NewService(orgStore.New(db))
		categorizeService  = categorize.NewService(categorizeStore.New(db))
		dashboardService   = dashboard.NewService(transactionService, rateService, cfg.Dashboard.CacheTTL)
		importService      = importer.NewService()
		exportService      = export.NewService(transactionService)
	)

	handlers := fluxoHttp.Handlers{
		Transactions:  txHandler.NewHandler(transactionService),
		Companies:     companyHandler.NewHandler(companyService),
		Accounts:      accountHandler.NewHandler(accountService),
		Payroll:       payrollHandler.NewHandler(payrollService),
		Org:           orgHandler.NewHandler(orgService),
		Dashboard:     dashboardHandler.NewHandler(dashboardService),
		ExchangeRates: rateHandler.NewHandler(rateService),
		Categorize:    categorizeHandler.NewHandler(categorizeService),
		Hub:           hubHandler.NewHandler(),
		Import:        importHandler.NewHandler(importService, transactionService, categorizeService, cfg.Server.MaxUploadBytes),
		Export:        exportHandler.NewHandler(exportService),
	}

	router := fluxoHttp.New(fluxoHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Timeout:        cfg.Server.Timeout,
	}, tenant.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience), handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	log.Info("shutting down")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
