package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/VeliorGroup/fluxo/cmd/tui/internal/view"
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
	"github.com/VeliorGroup/fluxo/internal/importer"
	"github.com/VeliorGroup/fluxo/internal/logger"
	"github.com/VeliorGroup/fluxo/internal/payroll"
	payrollStore "github.com/VeliorGroup/fluxo/internal/payroll/store"
	"github.com/VeliorGroup/fluxo/internal/transaction"
	txStore "github.com/VeliorGroup/fluxo/internal/transaction/store"
)

type services struct {
	tx         *transaction.Service
	company    *company.Service
	account    *account.Service
	categorize *categorize.Service
	importer   *importer.Service
	export     *export.Service
	payroll    *payroll.Service
	dashboard  *dashboard.Service
	rates      *exchangerate.Service
}

type model struct {
	title string
	owner uuid.UUID
	svc   services

	// active is nil while the menu is shown.
	active view.View
}

type menuItem struct {
	key   string
	label string
	open  func(m model) view.View
}

var menu = []menuItem{
	{"1", "Dashboard", func(m model) view.View { return view.NewDashboardModel(m.owner, m.svc.dashboard) }},
	{"2", "Transactions", func(m model) view.View { return view.NewListModel(m.owner, m.svc.tx) }},
	{"3", "Add Transaction", func(m model) view.View {
		return view.NewTransactionFormModel(m.owner, m.svc.tx, m.svc.company, m.svc.account)
	}},
	{"4", "Review Categories", func(m model) view.View {
		return view.NewReviewModel(m.owner, m.svc.tx, m.svc.categorize)
	}},
	{"5", "Import Transactions", func(m model) view.View {
		return view.NewImportModel(m.owner, m.svc.tx, m.svc.importer, m.svc.categorize, m.svc.company)
	}},
	{"6", "Export Transactions", func(m model) view.View { return view.NewExportModel(m.owner, m.svc.export) }},
	{"7", "Payroll", func(m model) view.View { return view.NewPayrollModel(m.owner, m.svc.payroll) }},
	{"8", "Exchange Rates", func(m model) view.View { return view.NewRatesModel(m.svc.rates) }},
}

func initialModel() (model, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return model{}, nil, err
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(os.TempDir(), "fluxo-tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return model{}, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger.New(logFile, cfg.App.LogLevel)

	if cfg.TUI.OwnerID == "" {
		logFile.Close()
		return model{}, nil, errors.New("FLUXO_OWNER_ID must be set")
	}

	owner, err := uuid.Parse(cfg.TUI.OwnerID)
	if err != nil {
		logFile.Close()
		return model{}, nil, fmt.Errorf("invalid FLUXO_OWNER_ID: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		logFile.Close()
		return model{}, nil, err
	}

	cleanup := func() {
		db.Close()
		logFile.Close()
	}

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			cleanup()
			return model{}, nil, err
		}
	}

	rateService := exchangerate.NewService(
		exchangerate.NewBOAFetcher(cfg.ExchangeRate.URL, cfg.ExchangeRate.Timeout),
		exchangerate.NewCache(cfg.ExchangeRate.TTL),
		exchangerate.WithFallback(cfg.ExchangeRate.Fallback),
	)

	txSvc := transaction.NewService(txStore.New(db))

	m := model{
		title: cfg.App.Name,
		owner: owner,
		svc: services{
			tx:         txSvc,
			company:    company.NewService(companyStore.New(db)),
			account:    account.NewService(accountStore.New(db), txSvc),
			categorize: categorize.NewService(categorizeStore.New(db)),
			importer:   importer.NewService(),
			export:     export.NewService(txSvc),
			payroll:    payroll.NewService(payrollStore.New(db)),
			dashboard:  dashboard.NewService(txSvc, rateService, cfg.Dashboard.CacheTTL),
			rates:      rateService,
		},
	}

	slog.Info("tui started", "owner_id", owner)

	return m, cleanup, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.active == nil {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			for _, item := range menu {
				if item.key == msg.String() {
					m.active = item.open(m)
					return m, m.active.Init()
				}
			}

			return m, nil
		}
	case view.BackMsg:
		m.active = nil
		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	m.active = next.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.active != nil {
		return m.active.View()
	}

	s := m.title + "\n\n"
	for _, item := range menu {
		s += fmt.Sprintf("%s. %s\n", item.key, item.label)
	}

	s += "\nq. Quit"

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func run() error {
	m, cleanup, err := initialModel()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tea.NewProgram(m).Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		return err
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fluxo:", err)
		os.Exit(1)
	}
}
