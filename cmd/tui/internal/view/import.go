package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/categorize"
	"github.com/VeliorGroup/fluxo/internal/company"
	"github.com/VeliorGroup/fluxo/internal/importer"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

const importTimeout = 2 * time.Minute

var errNoCompanies = errors.New("no companies found, create one first")

var formatLabels = map[importer.Format]string{
	importer.FormatLedger:    "Ledger CSV (exported by Fluxo)",
	importer.FormatStatement: "Bank statement (semicolon separated)",
}

type importStage int

const (
	importLoading importStage = iota
	importSetup
	importPick
	importRunning
	importReview
	importDone
)

// ImportModel reads a CSV file into the ledger of one company. Rows that
// look like already recorded transactions are held back until the user
// picks which of them to import anyway.
type ImportModel struct {
	CommonModel
	txService      *transaction.Service
	importService  *importer.Service
	ruleService    *categorize.Service
	companyService *company.Service

	stage      importStage
	choice     *importChoice
	form       *huh.Form
	filePicker filepicker.Model

	pending     *transaction.ImportResult
	categorized int

	status      string
	err         error
	setupFailed bool
}

type importChoice struct {
	format  importer.Format
	company uuid.UUID
	keep    []int
}

func NewImportModel(
	owner uuid.UUID,
	txSvc *transaction.Service,
	impSvc *importer.Service,
	ruleSvc *categorize.Service,
	companySvc *company.Service,
) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.SetHeight(15)

	return ImportModel{
		CommonModel:    CommonModel{Owner: owner},
		txService:      txSvc,
		importService:  impSvc,
		ruleService:    ruleSvc,
		companyService: companySvc,
		filePicker:     fp,
		choice:         &importChoice{format: importer.FormatLedger},
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	switch m.stage {
	case importReview:
		return "x: toggle | Enter: import | Esc: cancel"
	case importDone:
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.loadCompaniesCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.back()
		}

	case loadCompaniesMsg:
		if msg.err == nil && len(msg.companies) == 0 {
			msg.err = errNoCompanies
		}

		if msg.err != nil {
			m.setupFailed = true
			return m.finish("", msg.err)
		}

		m.setupFailed = false
		m.stage = importSetup
		m.form = m.buildSetupForm(msg.companies)

		return m, m.form.Init()

	case importResultMsg:
		if msg.err != nil {
			return m.finish("", msg.err)
		}

		if len(msg.result.Conflicts) == 0 {
			return m.finish(fmt.Sprintf("Imported %d transactions (%d categorised by rules).",
				len(msg.result.Imported), msg.categorized), nil)
		}

		m.pending = msg.result
		m.categorized = msg.categorized
		m.choice.keep = nil
		m.stage = importReview
		m.form = m.buildReviewForm(msg.result.Conflicts)

		return m, m.form.Init()

	case confirmResultMsg:
		return m.finish(fmt.Sprintf("Imported %d transactions.", msg.count), msg.err)
	}

	switch m.stage {
	case importSetup:
		return m.updateForm(msg, func(m ImportModel) (tea.Model, tea.Cmd) {
			m.stage = importPick
			return m, m.filePicker.Init()
		})

	case importPick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if ok, path := m.filePicker.DidSelectFile(msg); ok {
			m.stage = importRunning
			m.status = "Importing " + path + "..."

			return m, m.importCmd(path)
		}

		return m, cmd

	case importReview:
		return m.updateForm(msg, func(m ImportModel) (tea.Model, tea.Cmd) {
			m.stage = importRunning
			m.status = "Saving..."

			return m, m.confirmCmd()
		})
	}

	return m, nil
}

func (m ImportModel) updateForm(msg tea.Msg, done func(ImportModel) (tea.Model, tea.Cmd)) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return done(m)
	}

	return m, cmd
}

func (m ImportModel) finish(status string, err error) (tea.Model, tea.Cmd) {
	m.stage = importDone
	m.status, m.err = status, err
	m.pending = nil

	return m, nil
}

func (m ImportModel) back() (tea.Model, tea.Cmd) {
	if m.setupFailed {
		return m, Back
	}

	switch m.stage {
	case importPick, importReview, importDone:
		m.stage = importLoading
		m.pending, m.err = nil, nil

		return m, m.loadCompaniesCmd()
	case importRunning:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) buildSetupForm(companies []*company.Company) *huh.Form {
	formats := make([]huh.Option[importer.Format], 0, len(formatLabels))
	for _, f := range []importer.Format{importer.FormatLedger, importer.FormatStatement} {
		formats = append(formats, huh.NewOption(formatLabels[f], f))
	}

	owners := make([]huh.Option[uuid.UUID], 0, len(companies))
	for _, c := range companies {
		owners = append(owners, huh.NewOption(c.Name, c.ID))
	}

	m.choice.company = companies[0].ID

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[importer.Format]().
				Title("Format").
				Options(formats...).
				Value(&m.choice.format),
			huh.NewSelect[uuid.UUID]().
				Title("Import into company").
				Options(owners...).
				Value(&m.choice.company),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ImportModel) buildReviewForm(conflicts []transaction.Conflict) *huh.Form {
	opts := make([]huh.Option[int], len(conflicts))
	for i, c := range conflicts {
		opts[i] = huh.NewOption(conflictLabel(c), i)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title(fmt.Sprintf("%d rows match recorded transactions", len(conflicts))).
				Description(fmt.Sprintf("%d new rows are imported regardless. Tick duplicates to import anyway.", len(m.pending.New))).
				Options(opts...).
				Height(min(len(conflicts)+4, 20)).
				Value(&m.choice.keep),
		),
	).WithWidth(100).WithShowHelp(false)
}

func conflictLabel(c transaction.Conflict) string {
	in, ex := c.Incoming, c.Existing

	return fmt.Sprintf("%s  %s  %s  (recorded: %s, %s)",
		FormatDate(in.Date),
		FormatAmount(transaction.SignedAmount(in.Amount, in.Type), in.Currency),
		in.Description,
		ex.Description,
		ex.Status,
	)
}

func (m ImportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.stage {
	case importLoading:
		return style.Render("Loading companies...")
	case importSetup, importReview:
		return style.Render(m.form.View())
	case importPick:
		return style.Render(fmt.Sprintf("Select file to import (%s):\n\n%s",
			formatLabels[m.choice.format], m.filePicker.View()))
	case importRunning:
		return style.Render(m.status)
	case importDone:
		if m.err != nil {
			return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to start over)")
		}

		return style.Render(successStyle.Render(m.status) + "\n\n(Esc to import another file)")
	}

	return ""
}

type loadCompaniesMsg struct {
	companies []*company.Company
	err       error
}

func (m ImportModel) loadCompaniesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		companies, err := m.companyService.List(ctx, m.Owner)

		return loadCompaniesMsg{companies: companies, err: err}
	}
}

type importResultMsg struct {
	result      *transaction.ImportResult
	categorized int
	err         error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	format := m.choice.format
	opts := importer.Options{CompanyID: m.choice.company}

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(format, f, opts)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		categorized, err := m.ruleService.Apply(ctx, m.Owner, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		result, err := m.txService.ImportBatch(ctx, m.Owner, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result, categorized: categorized}
	}
}

type confirmResultMsg struct {
	count int
	err   error
}

// selectedParams is every new row plus the conflicts picked in the review.
func selectedParams(result *transaction.ImportResult, keep []int) []transaction.CreateParams {
	params := append([]transaction.CreateParams(nil), result.New...)
	for _, i := range keep {
		if i >= 0 && i < len(result.Conflicts) {
			params = append(params, result.Conflicts[i].Incoming)
		}
	}

	return params
}

func (m ImportModel) confirmCmd() tea.Cmd {
	params := selectedParams(m.pending, m.choice.keep)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := m.txService.CreateBatch(ctx, m.Owner, params)
		if err != nil {
			return confirmResultMsg{err: err}
		}

		return confirmResultMsg{count: len(txs)}
	}
}
