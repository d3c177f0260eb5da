package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/account"
	"github.com/VeliorGroup/fluxo/internal/company"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

type txFormState int

const (
	txFormStateLoading txFormState = iota
	txFormStateEditing
	txFormStateSaving
	txFormStateResult
)

// TransactionFormModel records a single income or expense.
type TransactionFormModel struct {
	CommonModel
	txService      *transaction.Service
	companyService *company.Service
	accountService *account.Service

	state     txFormState
	form      *huh.Form
	companies []*company.Company
	accounts  []*account.Account

	err    error
	status string

	fields *txFields
}

// txFields holds the form bindings. It lives on the heap so the pointers
// handed to huh stay valid while the model is copied between updates.
type txFields struct {
	company  uuid.UUID
	account  uuid.UUID
	typ      transaction.Type
	amount   string
	currency money.Currency
	date     string
	desc     string
	category transaction.Category
	status   transaction.Status
}

func NewTransactionFormModel(owner uuid.UUID, txSvc *transaction.Service, companySvc *company.Service, accountSvc *account.Service) TransactionFormModel {
	return TransactionFormModel{
		CommonModel:    CommonModel{Owner: owner},
		txService:      txSvc,
		companyService: companySvc,
		accountService: accountSvc,
	}
}

func (m TransactionFormModel) Title() string { return "Add Transaction" }

func (m TransactionFormModel) ShortHelp() string {
	if m.state == txFormStateEditing {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back"
}

func (m TransactionFormModel) Init() tea.Cmd {
	return m.loadRefsCmd()
}

func (m TransactionFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRefsMsg:
		if msg.err != nil {
			m.state = txFormStateResult
			m.err = msg.err

			return m, nil
		}

		if len(msg.companies) == 0 {
			m.state = txFormStateResult
			m.err = errors.New("create a company first")

			return m, nil
		}

		m.companies = msg.companies
		m.accounts = msg.accounts
		m.resetForm()
		m.form = m.buildForm()
		m.state = txFormStateEditing

		return m, m.form.Init()

	case saveTxResultMsg:
		m.state = txFormStateResult
		m.err = msg.err

		if msg.err == nil {
			m.status = fmt.Sprintf("Saved %s %s.", msg.tx.Type(), FormatAmount(msg.tx.Amount, msg.tx.Currency))
		}

		return m, nil
	}

	switch m.state {
	case txFormStateEditing:
		return m.updateEditing(msg)
	case txFormStateResult, txFormStateLoading:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m TransactionFormModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	params, err := m.params()
	if err != nil {
		m.state = txFormStateResult
		m.err = err

		return m, nil
	}

	m.state = txFormStateSaving

	return m, m.saveTxCmd(params)
}

func (m *TransactionFormModel) resetForm() {
	m.fields = &txFields{
		company:  m.companies[0].ID,
		typ:      transaction.TypeExpense,
		currency: money.EUR,
		date:     FormatDate(time.Now()),
		category: transaction.CategoryMiscellaneous,
		status:   transaction.StatusPaid,
	}
}

func (m TransactionFormModel) buildForm() *huh.Form {
	companyOpts := make([]huh.Option[uuid.UUID], 0, len(m.companies))
	for _, c := range m.companies {
		companyOpts = append(companyOpts, huh.NewOption(c.Name, c.ID))
	}

	accountOpts := []huh.Option[uuid.UUID]{huh.NewOption("None", uuid.Nil)}
	for _, a := range m.accounts {
		accountOpts = append(accountOpts, huh.NewOption(fmt.Sprintf("%s (%s)", a.Name, a.Currency), a.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Company").
				Options(companyOpts...).
				Value(&m.fields.company),

			huh.NewSelect[uuid.UUID]().
				Title("Account").
				Options(accountOpts...).
				Value(&m.fields.account),

			huh.NewSelect[transaction.Type]().
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&m.fields.typ),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&m.fields.amount).
				Validate(validateAmount),

			huh.NewSelect[money.Currency]().
				Title("Currency").
				Options(
					huh.NewOption("Euro (€)", money.EUR),
					huh.NewOption("Lek (L)", money.ALL),
				).
				Value(&m.fields.currency),

			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.date).
				Validate(validateDate),

			huh.NewInput().
				Title("Description").
				Value(&m.fields.desc),
		),
		huh.NewGroup(
			huh.NewSelect[transaction.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&m.fields.category),

			huh.NewSelect[transaction.Status]().
				Title("Status").
				Options(statusOptions()...).
				Value(&m.fields.status),
		),
	).WithWidth(50).WithShowHelp(false)
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("amount must be a number")
	}

	if !d.IsPositive() {
		return errors.New("amount must be positive")
	}

	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}

	return nil
}

func (m TransactionFormModel) params() (transaction.CreateParams, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(m.fields.amount))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("amount: %w", err)
	}

	date, err := time.Parse(time.DateOnly, m.fields.date)
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("date: %w", err)
	}

	p := transaction.CreateParams{
		OwnerID:     m.Owner,
		CompanyID:   m.fields.company,
		Amount:      amount,
		Type:        m.fields.typ,
		Currency:    m.fields.currency,
		Date:        date,
		Description: m.fields.desc,
		Category:    m.fields.category,
		Status:      m.fields.status,
	}

	if m.fields.account != uuid.Nil {
		p.AccountID = new(m.fields.account)
	}

	return p, nil
}

func (m TransactionFormModel) View() string {
	switch m.state {
	case txFormStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading companies...")
	case txFormStateEditing:
		return lipgloss.NewStyle().Padding(1).Render("New Transaction\n\n" + m.form.View())
	case txFormStateSaving:
		return lipgloss.NewStyle().Padding(2).Render("Saving...")
	case txFormStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(
				errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)",
			)
		}

		return lipgloss.NewStyle().Padding(2).Render(successStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

// Messages

type loadRefsMsg struct {
	companies []*company.Company
	accounts  []*account.Account
	err       error
}

func (m TransactionFormModel) loadRefsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		companies, err := m.companyService.List(ctx, m.Owner)
		if err != nil {
			return loadRefsMsg{err: err}
		}

		accounts, err := m.accountService.List(ctx, m.Owner)
		if err != nil {
			return loadRefsMsg{err: err}
		}

		return loadRefsMsg{companies: companies, accounts: accounts}
	}
}

type saveTxResultMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m TransactionFormModel) saveTxCmd(params transaction.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.txService.Create(ctx, params)

		return saveTxResultMsg{tx: tx, err: err}
	}
}
