// Package timeline hosts the grid components: it derives view props from the
// reactive store, keeps one RowView per visible row, schedules the removal of
// rows that leave the viewport, and renders the element tree for a terminal.
package timeline

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/debuglog"
	"github.com/javiermolinar/gantt/internal/grid"
	"github.com/javiermolinar/gantt/internal/store"
)

// Scale maps px values onto terminal cells.
type Scale struct {
	PxPerColumn int
	PxPerLine   int
}

// Columns converts a px width into terminal columns, at least one.
func (s Scale) Columns(px int) int {
	return scaled(px, s.PxPerColumn)
}

// Lines converts a px height into terminal lines, at least one.
func (s Scale) Lines(px int) int {
	return scaled(px, s.PxPerLine)
}

func scaled(px, per int) int {
	if per <= 0 {
		per = 1
	}
	n := (px + per - 1) / per
	return max(1, n)
}

// Options configure a Host.
type Options struct {
	ClassPrefix  string
	LeaveFade    time.Duration
	RowHeight    int // px, applied to rows without a height
	RowWrapper   string
	BlockWrapper string
	LabelWidth   int // columns reserved for row labels
	Scale        Scale
	Now          func() time.Time
}

// LeaveRequest asks the caller to finish the removal of a row after the
// leave fade. Gen identifies the leave it belongs to.
type LeaveRequest struct {
	ID  string
	Gen int
}

// Host owns the row views of the grid and keeps them in sync with the store.
// It is not safe for concurrent use.
type Host struct {
	store *store.Store
	env   *grid.Env
	opts  Options

	rows    chart.Rows
	ordered []*chart.Row
	window  chart.TimeWindow

	views   map[string]*grid.RowView
	order   []string
	leaving map[string]int
	gen     int
	pending []LeaveRequest

	rowOffset int
	width     int
	height    int // lines available for rows, 0 for unbounded

	err    error
	dirty  bool
	closed bool
	unsubs []func()
}

// New creates a host on the store and subscribes it to rows and time window.
func New(st *store.Store, opts Options) *Host {
	h := &Host{
		store:   st,
		opts:    opts,
		rows:    chart.Rows{},
		views:   make(map[string]*grid.RowView),
		leaving: make(map[string]int),
		dirty:   true,
	}

	env := grid.NewEnv(st, func() chart.Rows { return h.rows })
	if opts.ClassPrefix != "" {
		env.ClassPrefix = opts.ClassPrefix
	}
	if opts.Now != nil {
		env.Now = opts.Now
	}
	env.OnUpdate = func(string) { h.dirty = true }
	h.env = env

	if opts.RowWrapper != "" {
		_ = st.Set(grid.WrapperPath(grid.RowWrapperKey), opts.RowWrapper)
	}
	if opts.BlockWrapper != "" {
		_ = st.Set(grid.WrapperPath(grid.BlockWrapperKey), opts.BlockWrapper)
	}

	h.unsubs = append(h.unsubs,
		st.Subscribe(store.PathRows, h.onRows),
		st.Subscribe(store.PathTime, h.onTime),
	)
	return h
}

// Env returns the collaborators shared with the components.
func (h *Host) Env() *grid.Env {
	return h.env
}

// Store returns the store the host is subscribed to.
func (h *Host) Store() *store.Store {
	return h.store
}

// Err returns the last error raised while syncing the views, if any.
func (h *Host) Err() error {
	return h.err
}

// Window returns the time window currently shown.
func (h *Host) Window() chart.TimeWindow {
	return h.window
}

// Rows returns the current row mapping.
func (h *Host) Rows() chart.Rows {
	return h.rows
}

// Visible returns the ids of the rows currently shown, top to bottom.
func (h *Host) Visible() []string {
	return slices.Clone(h.order)
}

// View returns the row view for id, including rows that are leaving.
func (h *Host) View(id string) (*grid.RowView, bool) {
	v, ok := h.views[id]
	return v, ok
}

// RowOffset returns the index of the first visible row.
func (h *Host) RowOffset() int {
	return h.rowOffset
}

// Dirty reports whether a component changed since the last render.
func (h *Host) Dirty() bool {
	return h.dirty
}

func (h *Host) onRows(v gjson.Result) {
	rows := chart.Rows{}
	if v.Exists() {
		if err := json.Unmarshal([]byte(v.Raw), &rows); err != nil {
			h.err = fmt.Errorf("decoding rows: %w", err)
			return
		}
	}
	for id, r := range rows {
		if r == nil {
			delete(rows, id)
			continue
		}
		if r.ID == "" {
			r.ID = id
		}
		if r.Height <= 0 && h.opts.RowHeight > 0 {
			r.Height = h.opts.RowHeight
		}
	}
	if err := chart.ComputeParents(rows); err != nil {
		h.err = err
		return
	}

	debuglog.Event("STORE_UPDATE", logrus.Fields{"path": store.PathRows, "rows": len(rows)})
	h.rows = rows
	h.ordered = rows.Ordered()
	h.rowOffset = min(h.rowOffset, max(0, len(h.ordered)-1))
	h.sync()
}

func (h *Host) onTime(v gjson.Result) {
	var w chart.TimeWindow
	if v.Exists() {
		if err := json.Unmarshal([]byte(v.Raw), &w); err != nil {
			h.err = fmt.Errorf("decoding time window: %w", err)
			return
		}
	}
	debuglog.Event("STORE_UPDATE", logrus.Fields{
		"path":   store.PathTime,
		"from":   w.From.Format(time.DateOnly),
		"period": string(w.Period),
		"count":  w.Count,
	})
	h.window = w
	h.sync()
}

// visibleRows returns the rows that fit the viewport from the row offset.
func (h *Host) visibleRows() []*chart.Row {
	if h.rowOffset >= len(h.ordered) {
		return nil
	}
	rows := h.ordered[h.rowOffset:]
	if h.height <= 0 {
		return rows
	}
	used := 0
	for i, r := range rows {
		used += h.opts.Scale.Lines(r.EffectiveHeight())
		if used > h.height {
			return rows[:max(1, i)]
		}
	}
	return rows
}

// sync updates the row views to the visible rows and cells. Rows that are no
// longer visible are sent Leave and queued for destruction.
func (h *Host) sync() {
	if h.closed {
		return
	}
	h.err = nil
	h.dirty = true

	cells := h.window.Cells()
	width := 0
	for _, c := range cells {
		width += c.Width
	}

	visible := h.visibleRows()
	order := make([]string, 0, len(visible))
	seen := make(map[string]bool, len(visible))
	for _, row := range visible {
		props := grid.RowProps{Row: row, Blocks: chart.BlocksFor(row, cells), Width: width}
		if v, ok := h.views[row.ID]; ok {
			if _, wasLeaving := h.leaving[row.ID]; wasLeaving {
				delete(h.leaving, row.ID)
				debuglog.Event("ROW_LEAVE_CANCEL", logrus.Fields{"row": row.ID})
			}
			if err := v.Change(props); err != nil {
				h.err = fmt.Errorf("updating row %q: %w", row.ID, err)
			}
		} else {
			v, err := grid.NewRowView(h.env, props)
			if err != nil {
				h.err = fmt.Errorf("creating row %q: %w", row.ID, err)
				continue
			}
			h.views[row.ID] = v
			debuglog.Event("ROW_CREATE", logrus.Fields{"row": row.ID, "blocks": len(props.Blocks)})
		}
		seen[row.ID] = true
		order = append(order, row.ID)
	}
	h.order = order

	for _, id := range slices.Sorted(maps.Keys(h.views)) {
		if seen[id] {
			continue
		}
		if _, ok := h.leaving[id]; ok {
			continue
		}
		h.views[id].Leave()
		debuglog.Event("ROW_LEAVE", logrus.Fields{"row": id})
		if h.opts.LeaveFade <= 0 {
			h.destroy(id)
			continue
		}
		h.gen++
		h.leaving[id] = h.gen
		h.pending = append(h.pending, LeaveRequest{ID: id, Gen: h.gen})
	}
}

// TakeLeaves returns and clears the leave requests queued since the last call.
func (h *Host) TakeLeaves() []LeaveRequest {
	out := h.pending
	h.pending = nil
	return out
}

// LeaveFade returns the delay between Leave and the destruction of a row.
func (h *Host) LeaveFade() time.Duration {
	return h.opts.LeaveFade
}

// FinishLeave destroys the row of req if it is still leaving under the same
// generation. A row that came back into view, or was already destroyed,
// is left alone. It reports whether a view was destroyed.
func (h *Host) FinishLeave(req LeaveRequest) bool {
	if h.closed {
		return false
	}
	gen, ok := h.leaving[req.ID]
	if !ok || gen != req.Gen {
		return false
	}
	h.destroy(req.ID)
	return true
}

func (h *Host) destroy(id string) {
	v, ok := h.views[id]
	if !ok {
		return
	}
	v.Destroy()
	delete(h.views, id)
	delete(h.leaving, id)
	h.dirty = true
	debuglog.Event("ROW_DESTROY", logrus.Fields{"row": id})
}

// Close destroys every view, including leaving ones, and drops the store
// subscriptions. Later leave requests are ignored.
func (h *Host) Close() {
	if h.closed {
		return
	}
	for _, id := range slices.Sorted(maps.Keys(h.views)) {
		h.destroy(id)
	}
	for _, unsub := range h.unsubs {
		unsub()
	}
	h.unsubs = nil
	h.pending = nil
	h.closed = true
}
