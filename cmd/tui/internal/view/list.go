package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
)

var (
	statusFilters = []*transaction.Status{
		nil,
		new(transaction.StatusPaid),
		new(transaction.StatusPending),
		new(transaction.StatusForecasted),
	}
	statusFilterLabels = []string{"All", "Paid", "Pending", "Forecasted"}
	dateFilters        = []Timeframe{TimeframeAll, TimeframeThisMonth, TimeframeLastMonth, TimeframeNext30}
)

type ListModel struct {
	CommonModel
	txService *transaction.Service

	state listState
	table table.Model
	txs   []*transaction.Transaction
	form  *huh.Form

	statusFilterIdx int
	dateFilterIdx   int

	filter  transaction.ListFilter
	loading bool
	err     error
	status  string

	// Heap-allocated so the form's bindings survive model copies.
	edit *txEdit
}

type txEdit struct {
	desc     string
	category transaction.Category
	status   transaction.Status
}

func NewListModel(owner uuid.UUID, txSvc *transaction.Service) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Status", Width: 11},
		{Title: "Amount", Width: 14},
		{Title: "Category", Width: 22},
		{Title: "Description", Width: 36},
		{Title: "Company", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		CommonModel: CommonModel{Owner: owner},
		txService:   txSvc,
		table:       t,
		filter:      transaction.ListFilter{OwnerID: owner},
		loading:     true,
	}
}

func (m ListModel) Title() string { return "Transactions" }
func (m ListModel) ShortHelp() string {
	if m.state == listStateEdit {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | e: edit | p: mark paid | s: status filter | d: date filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.txs = msg.txs
		m.refreshTable()
		return m, nil

	case listSaveMsg:
		m.status = "Saved."
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "e":
			return m.enterEditMode()
		case "p":
			return m, m.markPaidCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.applyFilter(time.Now())
			return m, m.loadTxsCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % len(dateFilters)
			m.applyFilter(time.Now())
			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ListModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	m.edit = &txEdit{desc: tx.Description, category: tx.Category, status: tx.Status}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.edit.desc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[transaction.Category]().
				Key("category").
				Title("Category").
				Options(categoryOptions()...).
				Value(&m.edit.category),

			huh.NewSelect[transaction.Status]().
				Key("status").
				Title("Status").
				Options(statusOptions()...).
				Value(&m.edit.status),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [d] Date: %s",
		activeStyle(statusFilterLabels[m.statusFilterIdx]),
		activeStyle(dateFilters[m.dateFilterIdx].String()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == listStateEdit && m.form != nil {
		info := ""
		if tx := m.selected(); tx != nil {
			info = fmt.Sprintf("%s  %s", FormatDate(tx.Date), FormatAmount(tx.Amount, tx.Currency))
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(
				fmt.Sprintf("Edit Transaction\n\n%s\n\n%s", info, m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) applyFilter(now time.Time) {
	m.filter.Status = statusFilters[m.statusFilterIdx]

	tf := dateFilters[m.dateFilterIdx]

	period, ok := tf.Period(now)
	if !ok {
		TimeframeSelectedMsg{All: true}.Apply(&m.filter.StartDate, &m.filter.EndDate)
		return
	}

	if tf == TimeframeThisMonth {
		// Include what is already scheduled for the rest of the month.
		period.To = period.From.AddDate(0, 1, -1)
	}

	TimeframeSelectedMsg{Period: period}.Apply(&m.filter.StartDate, &m.filter.EndDate)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Status),
			FormatAmount(tx.Amount, tx.Currency),
			tx.Category.Label(),
			tx.Description,
			tx.CompanyName,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, filter)
		return loadListMsg{txs: txs, err: err}
	}
}

type listSaveMsg struct {
	err error
}

func (m ListModel) saveCmd() tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	params := paramsFrom(tx)
	params.Description = m.edit.desc
	params.Category = m.edit.category
	params.Status = m.edit.status

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.txService.Update(ctx, tx.ID, params)

		return listSaveMsg{err: err}
	}
}

func (m ListModel) markPaidCmd() tea.Cmd {
	tx := m.selected()
	if tx == nil || tx.Status == transaction.StatusPaid {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return listSaveMsg{err: m.txService.UpdateStatus(ctx, m.Owner, tx.ID, transaction.StatusPaid)}
	}
}

// paramsFrom rebuilds the editable fields of tx for an update.
func paramsFrom(tx *transaction.Transaction) transaction.CreateParams {
	return transaction.CreateParams{
		OwnerID:     tx.OwnerID,
		CompanyID:   tx.CompanyID,
		AccountID:   tx.AccountID,
		Amount:      tx.Amount.Abs(),
		Type:        tx.Type(),
		Currency:    tx.Currency,
		Date:        tx.Date,
		Description: tx.Description,
		Category:    tx.Category,
		Status:      tx.Status,
	}
}

func categoryOptions() []huh.Option[transaction.Category] {
	opts := make([]huh.Option[transaction.Category], 0, len(transaction.Categories))
	for _, c := range transaction.Categories {
		opts = append(opts, huh.NewOption(c.Label(), c))
	}

	return opts
}

func statusOptions() []huh.Option[transaction.Status] {
	return []huh.Option[transaction.Status]{
		huh.NewOption("Paid", transaction.StatusPaid),
		huh.NewOption("Pending", transaction.StatusPending),
		huh.NewOption("Forecasted", transaction.StatusForecasted),
	}
}
