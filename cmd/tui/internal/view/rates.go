package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VeliorGroup/fluxo/internal/exchangerate"
)

// RatesModel shows the current EUR->ALL rate with its recent history.
type RatesModel struct {
	rateService *exchangerate.Service

	table   table.Model
	current exchangerate.Rate
	stats   exchangerate.Stats
	loading bool
}

func NewRatesModel(svc *exchangerate.Service) RatesModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Rate", Width: 10},
			{Title: "Change", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return RatesModel{
		rateService: svc,
		table:       t,
		loading:     true,
	}
}

func (m RatesModel) Title() string { return "Exchange Rates" }

func (m RatesModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m RatesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RatesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ratesMsg:
		m.loading = false
		m.current = msg.current
		m.stats = exchangerate.HistoryStats(msg.history)

		rows := make([]table.Row, 0, len(msg.history))
		// Newest first.
		for i := len(msg.history) - 1; i >= 0; i-- {
			e := msg.history[i]
			rows = append(rows, table.Row{FormatDate(e.Date), e.Rate.StringFixed(2), signed(e.Change.StringFixed(2))})
		}

		m.table.SetRows(rows)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func signed(s string) string {
	if strings.HasPrefix(s, "-") {
		return s
	}

	return "+" + s
}

func (m RatesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Fetching rates...")
	}

	source := successStyle.Render("Bank of Albania")
	if m.current.Source == exchangerate.SourceFallback {
		source = warnStyle.Render("fallback rate, bank unreachable")
	}

	header := fmt.Sprintf("1 EUR = %s ALL  (%s)  %s",
		activeStyle(m.current.Value.StringFixed(2)),
		signed(m.current.Change.StringFixed(2)),
		source,
	)

	stats := faintStyle.Render(fmt.Sprintf("30 days  min %s  avg %s  max %s",
		m.stats.Min.StringFixed(2), m.stats.Avg.StringFixed(2), m.stats.Max.StringFixed(2)))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, stats, "", m.table.View()),
	)
}

type ratesMsg struct {
	current exchangerate.Rate
	history []exchangerate.HistoryEntry
}

func (m RatesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		current := m.rateService.Current(ctx)

		return ratesMsg{current: current, history: m.rateService.CurrentHistory()}
	}
}
