package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/payroll"
)

// PayrollModel lists salary stubs and toggles the status of their two
// payments.
type PayrollModel struct {
	CommonModel
	payrollService *payroll.Service

	table   table.Model
	stubs   []*payroll.Stub
	loading bool
	status  string
	err     error
}

func NewPayrollModel(owner uuid.UUID, svc *payroll.Service) PayrollModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Period", Width: 12},
			{Title: "Employee", Width: 24},
			{Title: "Gross", Width: 14},
			{Title: "Net", Width: 14},
			{Title: "Salary", Width: 18},
			{Title: "Taxes", Width: 14},
			{Title: "Taxes Due", Width: 18},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return PayrollModel{
		CommonModel:    CommonModel{Owner: owner},
		payrollService: svc,
		table:          t,
		loading:        true,
	}
}

func (m PayrollModel) Title() string { return "Payroll" }

func (m PayrollModel) ShortHelp() string {
	return "Esc: back | s: toggle salary paid | t: toggle taxes paid | r: refresh"
}

func (m PayrollModel) Init() tea.Cmd {
	return m.loadStubsCmd()
}

func (m PayrollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStubsMsg:
		m.loading = false
		m.err = msg.err
		m.stubs = msg.stubs
		m.refreshTable()

		return m, nil

	case payrollActionMsg:
		m.status = "Updated."
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		return m, m.loadStubsCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadStubsCmd()
		case "s":
			return m, m.toggleCmd(payroll.LegSalary)
		case "t":
			return m, m.toggleCmd(payroll.LegTaxes)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PayrollModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading payroll...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if len(m.stubs) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No payroll stubs yet.\n\n(Esc to back)")
	}

	content := m.table.View()
	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PayrollModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.stubs))
	for _, s := range m.stubs {
		rows = append(rows, table.Row{
			FormatDate(s.PayPeriodDate),
			s.EmployeeName,
			FormatAmount(s.GrossSalary, s.Currency),
			FormatAmount(s.NetSalary, s.Currency),
			legLabel(s.SalaryStatus, FormatDate(s.SalaryDueDate)),
			FormatAmount(s.Taxes, s.Currency),
			legLabel(s.TaxesStatus, FormatDate(s.TaxesDueDate)),
		})
	}

	m.table.SetRows(rows)
}

func legLabel(s payroll.Status, due string) string {
	if s == payroll.StatusPaid {
		return "paid"
	}

	return "due " + due
}

type loadStubsMsg struct {
	stubs []*payroll.Stub
	err   error
}

func (m PayrollModel) loadStubsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stubs, err := m.payrollService.List(ctx, m.Owner)

		return loadStubsMsg{stubs: stubs, err: err}
	}
}

type payrollActionMsg struct {
	err error
}

func (m PayrollModel) toggleCmd(leg payroll.Leg) tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.stubs) {
		return nil
	}

	stub := m.stubs[idx]

	current := stub.SalaryStatus
	mark := m.payrollService.MarkSalary

	if leg == payroll.LegTaxes {
		current = stub.TaxesStatus
		mark = m.payrollService.MarkTaxes
	}

	next := payroll.StatusPaid
	if current == payroll.StatusPaid {
		next = payroll.StatusPending
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return payrollActionMsg{err: mark(ctx, m.Owner, stub.ID, next)}
	}
}
