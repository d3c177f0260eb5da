package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeframe_Period(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		tf       Timeframe
		now      time.Time
		wantFrom string
		wantTo   string
	}{
		{name: "ThisWeek", tf: TimeframeThisWeek, now: now, wantFrom: "2024-03-11", wantTo: "2024-03-13"},
		{name: "ThisWeekOnSunday", tf: TimeframeThisWeek, now: time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC), wantFrom: "2024-03-11", wantTo: "2024-03-17"},
		{name: "LastWeek", tf: TimeframeLastWeek, now: now, wantFrom: "2024-03-04", wantTo: "2024-03-10"},
		{name: "ThisMonth", tf: TimeframeThisMonth, now: now, wantFrom: "2024-03-01", wantTo: "2024-03-13"},
		{name: "LastMonth", tf: TimeframeLastMonth, now: now, wantFrom: "2024-02-01", wantTo: "2024-02-29"},
		// March 31st minus one month must not land in March again.
		{name: "LastMonthFromLongMonth", tf: TimeframeLastMonth, now: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), wantFrom: "2024-02-01", wantTo: "2024-02-29"},
		{name: "Next30", tf: TimeframeNext30, now: now, wantFrom: "2024-03-13", wantTo: "2024-04-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.tf.Period(tt.now)
			require.True(t, ok)

			assert.Equal(t, tt.wantFrom, FormatDate(got.From))
			assert.Equal(t, tt.wantTo, FormatDate(got.To))
		})
	}
}

func TestTimeframe_PeriodOpenEnded(t *testing.T) {
	for _, tf := range []Timeframe{TimeframeAll, TimeframeCustom} {
		_, ok := tf.Period(time.Now())
		assert.False(t, ok, tf.String())
	}
}

func TestPeriod_Bounds(t *testing.T) {
	p := Period{From: time.Date(2024, 2, 1, 13, 0, 0, 0, time.UTC), To: time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)}

	start, end := p.Bounds()
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), end)
}

func TestTimeframePicker_Selection(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)
	p := NewTimeframePicker(TimeframeThisMonth)

	assert.Equal(t, TimeframeThisMonth, p.choices[0])
	assert.Equal(t, TimeframeCustom, p.choices[len(p.choices)-1])

	got := p.selection(now)
	assert.False(t, got.All)
	assert.Equal(t, "2024-03-01", FormatDate(got.Period.From))

	p.picked.tf = TimeframeAll
	assert.True(t, p.selection(now).All)

	p.picked.tf = TimeframeCustom
	p.picked.from, p.picked.to = "2023-12-01", "2024-01-15"
	got = p.selection(now)
	assert.Equal(t, "2023-12-01", FormatDate(got.Period.From))
	assert.Equal(t, "2024-01-15", FormatDate(got.Period.To))

	var start, end *time.Time
	got.Apply(&start, &end)
	require.NotNil(t, start)
	assert.Equal(t, 23, end.Hour())

	TimeframeSelectedMsg{All: true}.Apply(&start, &end)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestValidateRangeEnd(t *testing.T) {
	assert.NoError(t, validateRangeEnd("2024-01-01", "2024-01-01"))
	assert.Error(t, validateRangeEnd("2024-01-02", "2024-01-01"))
	assert.Error(t, validateRangeEnd("2024-01-01", "01/02/2024"))
}
