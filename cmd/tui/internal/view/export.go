package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/export"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

const exportTimeout = 2 * time.Minute

type exportStage int

const (
	exportPick exportStage = iota
	exportPreviewing
	exportConfirm
	exportWriting
	exportDone
)

// ExportModel previews the ledger of a period and writes the zip bundle
// into a local directory.
type ExportModel struct {
	CommonModel
	exportService *export.Service

	stage   exportStage
	picker  TimeframePicker
	spinner spinner.Model

	filter  transaction.ListFilter
	count   int
	summary string

	target *exportTarget
	form   *huh.Form

	file string
	err  error
}

type exportTarget struct {
	dir     string
	confirm bool
}

func NewExportModel(owner uuid.UUID, svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		CommonModel:   CommonModel{Owner: owner},
		exportService: svc,
		picker:        NewTimeframePicker(TimeframeThisMonth),
		spinner:       s,
		target:        &exportTarget{dir: "./exports", confirm: true},
	}
}

func (m ExportModel) Title() string { return "Export Transactions" }

func (m ExportModel) ShortHelp() string {
	switch m.stage {
	case exportPreviewing, exportWriting:
		return "Working..."
	case exportDone:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = transaction.ListFilter{OwnerID: m.Owner}
		msg.Apply(&m.filter.StartDate, &m.filter.EndDate)
		m.stage = exportPreviewing

		return m, tea.Batch(m.spinner.Tick, m.previewCmd(m.filter))

	case exportPreviewMsg:
		if msg.err != nil {
			m.stage, m.err = exportDone, msg.err
			return m, nil
		}

		m.count, m.summary = msg.count, msg.summary
		m.stage = exportConfirm
		m.form = m.buildConfirmForm()

		return m, m.form.Init()

	case exportWrittenMsg:
		m.stage = exportDone
		m.file, m.err = msg.file, msg.err

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.back()
		}
	}

	switch m.stage {
	case exportPick:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case exportConfirm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		if !m.target.confirm {
			return m.back()
		}

		m.stage = exportWriting

		return m, tea.Batch(m.spinner.Tick, m.writeCmd(m.filter, m.target.dir))
	}

	return m, nil
}

// back steps from the confirmation to the period picker, and from anywhere
// else to the menu.
func (m ExportModel) back() (tea.Model, tea.Cmd) {
	if m.stage != exportConfirm {
		return m, Back
	}

	m.stage = exportPick
	m.picker.Reset()

	return m, m.picker.Init()
}

func (m ExportModel) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Description("Created when missing").
				Placeholder("./exports").
				Value(&m.target.dir),
			huh.NewConfirm().
				Title(fmt.Sprintf("Write %d transactions?", m.count)).
				Value(&m.target.confirm),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	var body string

	switch m.stage {
	case exportPick:
		body = m.picker.View()
	case exportPreviewing:
		body = m.spinner.View() + " Loading transactions..."
	case exportConfirm:
		body = lipgloss.JoinVertical(lipgloss.Left, m.summary, "", m.form.View())
	case exportWriting:
		body = m.spinner.View() + " Writing export..."
	case exportDone:
		body = m.viewDone()
	}

	return lipgloss.NewStyle().Padding(1).Render(body)
}

func (m ExportModel) viewDone() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Bold(true).Render(fmt.Sprintf("Exported %d transactions", m.count)),
		faintStyle.Render("Written to "+m.file),
		"",
		m.summary,
	)
}

type exportPreviewMsg struct {
	count   int
	summary string
	err     error
}

func (m ExportModel) previewCmd(filter transaction.ListFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, summary, err := m.exportService.Preview(ctx, filter)
		if err != nil {
			return exportPreviewMsg{err: err}
		}

		return exportPreviewMsg{count: len(txs), summary: summary}
	}
}

type exportWrittenMsg struct {
	file string
	err  error
}

func (m ExportModel) writeCmd(filter transaction.ListFilter, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		file, err := m.writeBundle(ctx, filter, dir)

		return exportWrittenMsg{file: file, err: err}
	}
}

func (m ExportModel) writeBundle(ctx context.Context, filter transaction.ListFilter, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	file := filepath.Join(dir, m.exportService.Filename())

	f, err := os.Create(file)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", file, err)
	}

	if _, err := m.exportService.Export(ctx, filter, f); err != nil {
		f.Close()
		return "", err
	}

	return file, f.Close()
}
