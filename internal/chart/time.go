package chart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/gantt/internal/dateutil"
)

// ErrInvalidPeriod is returned for an unknown time period name.
var ErrInvalidPeriod = errors.New("period must be \"day\" or \"hour\"")

// Period is the time span covered by one grid cell.
type Period string

// Supported periods.
const (
	PeriodDay  Period = "day"
	PeriodHour Period = "hour"
)

// ParsePeriod parses a period name, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodHour:
		return PeriodHour, nil
	}
	return "", fmt.Errorf("%w, got %q", ErrInvalidPeriod, s)
}

// Truncate returns the start of the period containing t.
func (p Period) Truncate(t time.Time) time.Time {
	if p == PeriodHour {
		return dateutil.TruncateToHour(t)
	}
	return dateutil.TruncateToDay(t)
}

// Add moves t forward by n periods.
func (p Period) Add(t time.Time, n int) time.Time {
	if p == PeriodHour {
		return t.Add(time.Duration(n) * time.Hour)
	}
	return t.AddDate(0, 0, n)
}

// TimeCell is one column of the grid.
type TimeCell struct {
	// LeftGlobal is the unix millisecond timestamp at which the cell starts.
	LeftGlobal int64     `json:"leftGlobal"`
	Width      int       `json:"width"`
	Start      time.Time `json:"-"`
	Period     Period    `json:"period,omitempty"`
}

// Label returns the short header text for the cell.
func (c TimeCell) Label() string {
	if c.Period == PeriodHour {
		return c.Start.Format("15h")
	}
	return c.Start.Format("Mon 02")
}

// TimeWindow describes the visible span of the time axis.
type TimeWindow struct {
	From      time.Time `json:"from"`
	Period    Period    `json:"period"`
	Count     int       `json:"count"`
	CellWidth int       `json:"cellWidth"`
}

// Cells returns the window's cells starting at the period containing From.
func (w TimeWindow) Cells() []TimeCell {
	if w.Count <= 0 {
		return nil
	}
	period := w.Period
	if period == "" {
		period = PeriodDay
	}
	start := period.Truncate(w.From)
	cells := make([]TimeCell, w.Count)
	for i := range cells {
		t := period.Add(start, i)
		cells[i] = TimeCell{
			LeftGlobal: t.UnixMilli(),
			Width:      w.CellWidth,
			Start:      t,
			Period:     period,
		}
	}
	return cells
}

// Shift returns the window moved by n periods.
func (w TimeWindow) Shift(n int) TimeWindow {
	period := w.Period
	if period == "" {
		period = PeriodDay
	}
	w.From = period.Add(period.Truncate(w.From), n)
	return w
}
