package timeline

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/store"
)

// SetRows replaces the rows in the store.
func (h *Host) SetRows(list []*chart.Row) error {
	rows := chart.NewRows(list)
	if err := chart.ComputeParents(rows); err != nil {
		return err
	}
	return h.store.Set(store.PathRows, rows)
}

// SetWindow replaces the time window in the store.
func (h *Host) SetWindow(w chart.TimeWindow) error {
	return h.store.Set(store.PathTime, w)
}

func (h *Host) updateWindow(fn func(w chart.TimeWindow) chart.TimeWindow) error {
	return h.store.Update(store.PathTime, func(cur gjson.Result) (any, error) {
		var w chart.TimeWindow
		if cur.Exists() {
			if err := store.DecodeResult(cur, &w); err != nil {
				return nil, err
			}
		}
		return fn(w), nil
	})
}

// SetViewport sets the terminal area available to the grid. The number of
// cells follows the width, the number of rows follows the height.
func (h *Host) SetViewport(width, height int) error {
	h.width, h.height = width, height
	count := h.cellCount(h.window.CellWidth)
	if count == h.window.Count {
		h.sync()
		return nil
	}
	return h.updateWindow(func(w chart.TimeWindow) chart.TimeWindow {
		w.Count = count
		return w
	})
}

func (h *Host) cellCount(cellWidth int) int {
	if h.width <= 0 {
		return max(1, h.window.Count)
	}
	cols := h.opts.Scale.Columns(cellWidth)
	return max(1, (h.width-h.opts.LabelWidth)/cols)
}

// ScrollRows moves the first visible row by n, clamped to the row list.
func (h *Host) ScrollRows(n int) {
	off := h.rowOffset + n
	off = min(off, len(h.ordered)-1)
	off = max(off, 0)
	if off == h.rowOffset {
		return
	}
	h.rowOffset = off
	h.sync()
}

// ScrollCells shifts the time window by n cells.
func (h *Host) ScrollCells(n int) error {
	if n == 0 {
		return nil
	}
	return h.updateWindow(func(w chart.TimeWindow) chart.TimeWindow {
		return w.Shift(n)
	})
}

// SetPeriod switches the window between day and hour cells, keeping its start.
func (h *Host) SetPeriod(p chart.Period) error {
	if _, err := chart.ParsePeriod(string(p)); err != nil {
		return fmt.Errorf("setting period: %w", err)
	}
	if h.window.Period == p {
		return nil
	}
	return h.updateWindow(func(w chart.TimeWindow) chart.TimeWindow {
		w.Period = p
		w.From = p.Truncate(w.From)
		return w
	})
}

// JumpToday moves the window so it starts at the current period.
func (h *Host) JumpToday() error {
	now := h.env.Now()
	return h.updateWindow(func(w chart.TimeWindow) chart.TimeWindow {
		period := w.Period
		if period == "" {
			period = chart.PeriodDay
		}
		w.From = period.Truncate(now)
		return w
	})
}
