package view

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Timeframe is a date range preset relative to today.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeNext30
	TimeframeAll
	TimeframeCustom
)

var timeframeNames = map[Timeframe]string{
	TimeframeThisWeek:  "This Week",
	TimeframeLastWeek:  "Last Week",
	TimeframeThisMonth: "This Month",
	TimeframeLastMonth: "Last Month",
	TimeframeNext30:    "Next 30 Days",
	TimeframeAll:       "All Time",
	TimeframeCustom:    "Custom Range",
}

func (t Timeframe) String() string {
	if name, ok := timeframeNames[t]; ok {
		return name
	}

	return "Unknown"
}

// Period is an inclusive range of calendar days.
type Period struct {
	From time.Time
	To   time.Time
}

// Bounds returns the first and the last second of the period in UTC.
func (p Period) Bounds() (time.Time, time.Time) {
	return calendarDay(p.From), calendarDay(p.To).Add(24*time.Hour - time.Second)
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Period resolves t against today. Weeks start on Monday. All and Custom
// have no fixed period.
func (t Timeframe) Period(today time.Time) (Period, bool) {
	today = calendarDay(today)
	monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch t {
	case TimeframeThisWeek:
		return Period{From: monday, To: today}, true
	case TimeframeLastWeek:
		return Period{From: monday.AddDate(0, 0, -7), To: monday.AddDate(0, 0, -1)}, true
	case TimeframeThisMonth:
		return Period{From: firstOfMonth, To: today}, true
	case TimeframeLastMonth:
		return Period{From: firstOfMonth.AddDate(0, -1, 0), To: firstOfMonth.AddDate(0, 0, -1)}, true
	case TimeframeNext30:
		return Period{From: today, To: today.AddDate(0, 0, 30)}, true
	}

	return Period{}, false
}

// TimeframeSelectedMsg carries the picked range. Period is zero when All is set.
type TimeframeSelectedMsg struct {
	Period Period
	All    bool
}

// Apply narrows filter bounds to the selection.
func (s TimeframeSelectedMsg) Apply(start, end **time.Time) {
	if s.All {
		*start, *end = nil, nil
		return
	}

	from, to := s.Period.Bounds()
	*start, *end = &from, &to
}

type pickedRange struct {
	tf   Timeframe
	from string
	to   string
}

// TimeframePicker is a huh form choosing a preset, or a custom range when
// Custom is picked.
type TimeframePicker struct {
	choices []Timeframe
	picked  *pickedRange
	form    *huh.Form
}

// NewTimeframePicker offers first and every preset after it.
func NewTimeframePicker(first Timeframe) TimeframePicker {
	p := TimeframePicker{}
	for tf := first; tf <= TimeframeCustom; tf++ {
		p.choices = append(p.choices, tf)
	}

	p.Reset()

	return p
}

// Reset discards the current answers.
func (p *TimeframePicker) Reset() {
	p.picked = &pickedRange{tf: p.choices[0]}
	p.form = p.buildForm()
}

func (p TimeframePicker) buildForm() *huh.Form {
	opts := make([]huh.Option[Timeframe], 0, len(p.choices))
	for _, tf := range p.choices {
		opts = append(opts, huh.NewOption(tf.String(), tf))
	}

	picked := p.picked

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Timeframe]().
				Title("Timeframe").
				Options(opts...).
				Value(&picked.tf),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Placeholder("YYYY-MM-DD").
				Validate(validateDate).
				Value(&picked.from),
			huh.NewInput().
				Title("To").
				Placeholder("YYYY-MM-DD").
				Validate(func(s string) error { return validateRangeEnd(picked.from, s) }).
				Value(&picked.to),
		).WithHideFunc(func() bool { return picked.tf != TimeframeCustom }),
	).WithWidth(40).WithShowHelp(false)
}

func validateRangeEnd(from, to string) error {
	if err := validateDate(to); err != nil {
		return err
	}

	start, err := time.Parse(time.DateOnly, from)
	if err != nil {
		return nil
	}

	end, _ := time.Parse(time.DateOnly, to)
	if end.Before(start) {
		return errors.New("end date is before start date")
	}

	return nil
}

func (p TimeframePicker) Init() tea.Cmd {
	return p.form.Init()
}

// Update forwards msg to the form and emits a TimeframeSelectedMsg once it
// completes.
func (p TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State != huh.StateCompleted {
		return p, cmd
	}

	selected := p.selection(time.Now())

	return p, tea.Batch(cmd, func() tea.Msg { return selected })
}

func (p TimeframePicker) selection(now time.Time) TimeframeSelectedMsg {
	switch p.picked.tf {
	case TimeframeAll:
		return TimeframeSelectedMsg{All: true}
	case TimeframeCustom:
		from, _ := time.Parse(time.DateOnly, p.picked.from)
		to, _ := time.Parse(time.DateOnly, p.picked.to)

		return TimeframeSelectedMsg{Period: Period{From: from, To: to}}
	}

	period, _ := p.picked.tf.Period(now)

	return TimeframeSelectedMsg{Period: period}
}

func (p TimeframePicker) View() string {
	return p.form.View()
}
