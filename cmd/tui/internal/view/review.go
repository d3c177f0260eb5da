package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/categorize"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

type reviewState int

const (
	reviewStateTimeframe reviewState = iota
	reviewStateReviewing
	reviewStateDone
)

// ReviewModel walks through uncategorised transactions one at a time and
// learns a rule from every answer the user chooses to remember.
type ReviewModel struct {
	CommonModel
	txService   *transaction.Service
	ruleService *categorize.Service

	state           reviewState
	timeframePicker TimeframePicker

	queue      []*transaction.Transaction
	currentTx  *transaction.Transaction
	form       *huh.Form
	answer     *reviewAnswer
	totalCount int

	loading bool
	status  string
}

type reviewAnswer struct {
	category transaction.Category
	desc     string
	remember bool
}

func NewReviewModel(owner uuid.UUID, txSvc *transaction.Service, ruleSvc *categorize.Service) ReviewModel {
	return ReviewModel{
		CommonModel:     CommonModel{Owner: owner},
		txService:       txSvc,
		ruleService:     ruleSvc,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
	}
}

func (m ReviewModel) Title() string { return "Review Categories" }

func (m ReviewModel) ShortHelp() string {
	if m.state == reviewStateReviewing {
		return "Enter: save & next | Esc: stop"
	}

	return "Esc: back | Enter: select"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.timeframePicker.Init()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.loading = true
		m.state = reviewStateReviewing

		return m, m.loadUncategorisedCmd(msg)

	case loadUncategorisedMsg:
		m.loading = false
		if msg.err != nil {
			m.state = reviewStateDone
			m.status = fmt.Sprintf("Error loading transactions: %v", msg.err)

			return m, nil
		}

		m.queue = msg.txs
		m.totalCount = len(m.queue)

		return m.next()

	case reviewSavedMsg:
		if msg.err != nil {
			m.state = reviewStateDone
			m.status = fmt.Sprintf("Error saving: %v", msg.err)

			return m, nil
		}

		return m.next()
	}

	switch m.state {
	case reviewStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd

	case reviewStateReviewing:
		if m.form == nil {
			return m, nil
		}

		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = reviewStateDone
			m.status = fmt.Sprintf("Stopped after %d of %d.", m.totalCount-len(m.queue)-1, m.totalCount)

			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		return m, m.saveCmd()

	case reviewStateDone:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

// next pops the queue and prepares the form for it, pre-filled from the
// best matching rule.
func (m ReviewModel) next() (tea.Model, tea.Cmd) {
	if len(m.queue) == 0 {
		m.currentTx = nil
		m.form = nil
		m.state = reviewStateDone

		m.status = "Nothing left to categorise."
		if m.totalCount > 0 {
			m.status = fmt.Sprintf("All done! Reviewed %d transactions.", m.totalCount)
		}

		return m, nil
	}

	m.currentTx = m.queue[0]
	m.queue = m.queue[1:]
	m.answer = &reviewAnswer{
		category: m.currentTx.Category,
		desc:     m.currentTx.Description,
		remember: true,
	}

	ctx, cancel := DbCtx()
	defer cancel()

	if rule, err := m.ruleService.Suggest(ctx, m.Owner, m.currentTx.Description); err == nil && rule != nil {
		m.answer.category = rule.Category
		if rule.Description != "" {
			m.answer.desc = rule.Description
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&m.answer.category),

			huh.NewInput().
				Title("Description").
				Value(&m.answer.desc),

			huh.NewConfirm().
				Title("Remember for similar descriptions?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.answer.remember),
		),
	).WithWidth(50).WithShowHelp(false)

	return m, m.form.Init()
}

func (m ReviewModel) View() string {
	switch m.state {
	case reviewStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case reviewStateReviewing:
		if m.loading || m.currentTx == nil || m.form == nil {
			return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
		}

		info := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Render(fmt.Sprintf(
				"Date: %s  |  %s  |  %s\nRaw: %s",
				FormatDate(m.currentTx.Date),
				m.currentTx.Type(),
				FormatAmount(m.currentTx.Amount, m.currentTx.Currency),
				m.currentTx.Description,
			))

		progress := fmt.Sprintf("Reviewing %d/%d", m.totalCount-len(m.queue), m.totalCount)

		return lipgloss.NewStyle().Padding(1).Render(progress + "\n\n" + info + "\n\n" + m.form.View())

	case reviewStateDone:
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	return ""
}

type loadUncategorisedMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ReviewModel) loadUncategorisedCmd(tf TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := transaction.ListFilter{OwnerID: m.Owner}
		tf.Apply(&filter.StartDate, &filter.EndDate)

		txs, err := m.txService.List(ctx, filter)
		if err != nil {
			return loadUncategorisedMsg{err: err}
		}

		return loadUncategorisedMsg{txs: uncategorised(txs)}
	}
}

func uncategorised(txs []*transaction.Transaction) []*transaction.Transaction {
	out := make([]*transaction.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Category == transaction.CategoryMiscellaneous || tx.Category == "" {
			out = append(out, tx)
		}
	}

	return out
}

type reviewSavedMsg struct {
	err error
}

func (m ReviewModel) saveCmd() tea.Cmd {
	tx := m.currentTx
	answer := *m.answer

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if answer.remember && strings.TrimSpace(tx.Description) != "" {
			rule := categorize.Rule{Pattern: tx.Description, Category: answer.category}
			if answer.desc != tx.Description {
				rule.Description = answer.desc
			}

			if err := m.ruleService.Learn(ctx, m.Owner, rule); err != nil {
				return reviewSavedMsg{err: err}
			}
		}

		params := paramsFrom(tx)
		params.Category = answer.category
		params.Description = answer.desc

		_, err := m.txService.Update(ctx, tx.ID, params)

		return reviewSavedMsg{err: err}
	}
}
