package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/dashboard"
	"github.com/VeliorGroup/fluxo/internal/ledger"
	"github.com/VeliorGroup/fluxo/internal/money"
)

const maxUpcoming = 8

var tileStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 2).
	Width(26)

// DashboardModel shows the headline KPIs in the selected currency.
type DashboardModel struct {
	CommonModel
	dashboardService *dashboard.Service

	display money.Currency
	summary *dashboard.Summary
	loading bool
	err     error
}

func NewDashboardModel(owner uuid.UUID, svc *dashboard.Service) DashboardModel {
	return DashboardModel{
		CommonModel:      CommonModel{Owner: owner},
		dashboardService: svc,
		display:          money.EUR,
		loading:          true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | c: toggle currency | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd(false)
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "c":
			if m.display == money.EUR {
				m.display = money.ALL
			} else {
				m.display = money.EUR
			}

			m.loading = true

			return m, m.loadCmd(false)
		case "r":
			m.loading = true
			return m, m.loadCmd(true)
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	s := m.summary
	c := s.Display

	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		tileStyle.Render(fmt.Sprintf("Liquidity\n\n%s", money.FormatCompact(s.LiquidityTotal, c))),
		tileStyle.Render(fmt.Sprintf("Monthly Burn\n\n%s", money.FormatCompact(s.BurnRateTotal, c))),
		tileStyle.Render(fmt.Sprintf("Runway\n\n%s", runwayLabel(s.Runway))),
		tileStyle.Render(fmt.Sprintf("Pending Invoices\n\n%d · %s", s.Pending.Count, money.FormatCompact(s.PendingTotal, c))),
	)

	rate := faintStyle.Render(fmt.Sprintf("1 EUR = %s ALL (%s, %s)",
		s.Rate.Value.StringFixed(2), s.Rate.Source, s.Rate.FetchedAt.Format("2006-01-02 15:04")))

	var upcoming strings.Builder

	upcoming.WriteString("Upcoming Payments\n\n")

	if len(s.Upcoming) == 0 {
		upcoming.WriteString(faintStyle.Render("Nothing due in the next 30 days."))
	}

	for i, p := range s.Upcoming {
		if i == maxUpcoming {
			upcoming.WriteString(faintStyle.Render(fmt.Sprintf("... and %d more", len(s.Upcoming)-maxUpcoming)))
			break
		}

		fmt.Fprintf(&upcoming, "%s  %-30s %14s  %s\n",
			FormatDate(p.DueDate),
			p.Description,
			FormatAmount(p.Amount, p.Currency),
			severityStyle(p.Severity).Render(fmt.Sprintf("in %d days", p.DaysUntil)),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("Display: %s", activeStyle(string(c))),
			"",
			tiles,
			rate,
			"",
			upcoming.String(),
		),
	)
}

func runwayLabel(r dashboard.Runway) string {
	if r.Months == nil {
		return successStyle.Render("∞")
	}

	label := fmt.Sprintf("%.1f months", *r.Months)
	if r.Tier == ledger.TierHealthy {
		return successStyle.Render(label)
	}

	return warnStyle.Render(label)
}

func severityStyle(s ledger.Severity) lipgloss.Style {
	switch s {
	case ledger.SeverityCritical:
		return errorStyle
	case ledger.SeverityWarning:
		return warnStyle
	}

	return faintStyle
}

type summaryMsg struct {
	summary *dashboard.Summary
	err     error
}

func (m DashboardModel) loadCmd(refresh bool) tea.Cmd {
	display := m.display

	get := m.dashboardService.Summary
	if refresh {
		get = m.dashboardService.Refresh
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := get(ctx, m.Owner, display)

		return summaryMsg{summary: summary, err: err}
	}
}
