package timeline

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/grid"
	"github.com/javiermolinar/gantt/internal/store"
)

var testNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

const testLabelWidth = 10

func newHost(t *testing.T, fade time.Duration, rows ...*chart.Row) *Host {
	t.Helper()
	h := New(store.New(), Options{
		LeaveFade:  fade,
		LabelWidth: testLabelWidth,
		Scale:      Scale{PxPerColumn: 10, PxPerLine: 20},
		Now:        func() time.Time { return testNow },
	})
	t.Cleanup(h.Close)

	if err := h.SetWindow(chart.TimeWindow{From: testNow, Period: chart.PeriodDay, Count: 3, CellWidth: 60}); err != nil {
		t.Fatalf("SetWindow() error: %v", err)
	}
	if err := h.SetRows(rows); err != nil {
		t.Fatalf("SetRows() error: %v", err)
	}
	if err := h.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return h
}

func threeRows() []*chart.Row {
	return []*chart.Row{
		{ID: "a", Label: "Alpha", Position: 0},
		{ID: "b", Label: "Beta", Position: 1},
		{ID: "c", Label: "Gamma", Position: 2},
	}
}

func TestHost_CreatesViewPerVisibleRow(t *testing.T) {
	h := newHost(t, 0, threeRows()...)

	if got, want := h.Visible(), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Visible() = %v, want %v", got, want)
	}
	if got := h.Env().RowElements.Len(); got != 3 {
		t.Errorf("row registry len = %d, want 3", got)
	}
	if got := h.Env().BlockElements.Len(); got != 9 {
		t.Errorf("block registry len = %d, want 9", got)
	}
	v, _ := h.View("a")
	if got := v.Element().Style[chart.StyleWidth]; got != "180px" {
		t.Errorf("row width = %q, want 180px", got)
	}
}

func TestHost_ViewportDestroysHiddenRowsWithoutFade(t *testing.T) {
	h := newHost(t, 0, threeRows()...)

	// One 40px row is two lines.
	if err := h.SetViewport(testLabelWidth+18, 2); err != nil {
		t.Fatal(err)
	}
	if got := h.Visible(); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("Visible() = %v, want [a]", got)
	}
	for _, id := range []string{"b", "c"} {
		if _, ok := h.View(id); ok {
			t.Errorf("view %q still exists", id)
		}
	}
	if got := h.Env().RowElements.Len(); got != 1 {
		t.Errorf("row registry len = %d, want 1", got)
	}
	if got := h.Env().BlockElements.Len(); got != 3 {
		t.Errorf("block registry len = %d, want 3", got)
	}
}

func TestHost_LeaveThenFinish(t *testing.T) {
	h := newHost(t, 150*time.Millisecond, threeRows()...)
	if err := h.SetViewport(testLabelWidth+18, 2); err != nil {
		t.Fatal(err)
	}

	leaves := h.TakeLeaves()
	if len(leaves) != 2 {
		t.Fatalf("TakeLeaves() = %v, want 2 requests", leaves)
	}
	if again := h.TakeLeaves(); len(again) != 0 {
		t.Errorf("second TakeLeaves() = %v, want none", again)
	}

	b, ok := h.View("b")
	if !ok {
		t.Fatal("leaving view destroyed early")
	}
	if !b.Leaving() {
		t.Error("Leaving() = false")
	}
	if got := b.Element().Style[chart.StyleOpacity]; got != "0" {
		t.Errorf("opacity = %q, want 0", got)
	}
	if got := b.Element().Style[chart.StylePointerEvents]; got != "none" {
		t.Errorf("pointer-events = %q, want none", got)
	}

	for _, req := range leaves {
		if !h.FinishLeave(req) {
			t.Errorf("FinishLeave(%v) = false", req)
		}
		if h.FinishLeave(req) {
			t.Errorf("FinishLeave(%v) twice = true", req)
		}
	}
	if !b.Destroyed() {
		t.Error("view b not destroyed")
	}
	if got := h.Env().RowElements.Len(); got != 1 {
		t.Errorf("row registry len = %d, want 1", got)
	}
}

func TestHost_LeaveCancelledWhenRowReturns(t *testing.T) {
	h := newHost(t, 150*time.Millisecond, threeRows()...)
	if err := h.SetViewport(testLabelWidth+18, 2); err != nil {
		t.Fatal(err)
	}
	leaves := h.TakeLeaves()

	if err := h.SetViewport(testLabelWidth+18, 0); err != nil {
		t.Fatal(err)
	}
	b, ok := h.View("b")
	if !ok {
		t.Fatal("view b missing")
	}
	if b.Leaving() {
		t.Error("view b still leaving after returning into view")
	}
	if got := b.Element().Style[chart.StyleOpacity]; got != "1" {
		t.Errorf("opacity = %q, want 1", got)
	}

	for _, req := range leaves {
		if h.FinishLeave(req) {
			t.Errorf("stale FinishLeave(%v) destroyed a view", req)
		}
	}
	if b.Destroyed() {
		t.Error("view b destroyed by a stale leave")
	}
	if got := h.Env().RowElements.Len(); got != 3 {
		t.Errorf("row registry len = %d, want 3", got)
	}
}

func TestHost_CloseIgnoresLateLeave(t *testing.T) {
	h := newHost(t, 150*time.Millisecond, threeRows()...)
	if err := h.SetViewport(testLabelWidth+18, 2); err != nil {
		t.Fatal(err)
	}
	leaves := h.TakeLeaves()

	h.Close()
	if got := h.Env().RowElements.Len(); got != 0 {
		t.Errorf("row registry len = %d after Close, want 0", got)
	}
	if got := h.Env().BlockElements.Len(); got != 0 {
		t.Errorf("block registry len = %d after Close, want 0", got)
	}
	if got := h.Store().Subscribers(); got != 0 {
		t.Errorf("store subscribers = %d after Close, want 0", got)
	}
	for _, req := range leaves {
		if h.FinishLeave(req) {
			t.Errorf("FinishLeave(%v) after Close = true", req)
		}
	}
}

func TestHost_ScrollCellsReusesBlocks(t *testing.T) {
	h := newHost(t, 0, threeRows()...)
	v, _ := h.View("a")
	before := v.Blocks()

	if err := h.ScrollCells(1); err != nil {
		t.Fatal(err)
	}
	after := v.Blocks()
	if len(after) != 3 {
		t.Fatalf("blocks = %d, want 3", len(after))
	}
	if before[1].(*grid.BlockView).Element() != after[0].(*grid.BlockView).Element() {
		t.Error("block of a kept cell was recreated")
	}
	if !before[0].(*grid.BlockView).Element().HasClass(grid.CurrentClass) {
		t.Error("today's block lacks the current class")
	}
	if got := h.Env().BlockElements.Len(); got != 9 {
		t.Errorf("block registry len = %d, want 9", got)
	}
	if want := testNow.AddDate(0, 0, 1).Truncate(24 * time.Hour); !h.Window().From.Equal(want) {
		t.Errorf("window from = %v, want %v", h.Window().From, want)
	}
}

func TestHost_ScrollRows(t *testing.T) {
	h := newHost(t, 0, threeRows()...)
	if err := h.SetViewport(testLabelWidth+18, 4); err != nil {
		t.Fatal(err)
	}

	h.ScrollRows(1)
	if got := h.Visible(); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Visible() = %v, want [b c]", got)
	}
	h.ScrollRows(10)
	if got := h.RowOffset(); got != 2 {
		t.Errorf("RowOffset() = %d, want 2", got)
	}
	h.ScrollRows(-10)
	if got := h.Visible(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Visible() = %v, want [a b]", got)
	}
}

func TestHost_SetPeriodAndJumpToday(t *testing.T) {
	h := newHost(t, 0, threeRows()...)

	if err := h.SetPeriod(chart.PeriodHour); err != nil {
		t.Fatal(err)
	}
	w := h.Window()
	if w.Period != chart.PeriodHour {
		t.Fatalf("period = %q, want hour", w.Period)
	}
	if got := w.Cells()[0].Label(); got != "10h" {
		t.Errorf("first cell = %q, want 10h", got)
	}
	if err := h.SetPeriod("week"); !errors.Is(err, chart.ErrInvalidPeriod) {
		t.Errorf("SetPeriod(week) error = %v, want ErrInvalidPeriod", err)
	}

	if err := h.SetPeriod(chart.PeriodDay); err != nil {
		t.Fatal(err)
	}
	if err := h.ScrollCells(5); err != nil {
		t.Fatal(err)
	}
	if err := h.JumpToday(); err != nil {
		t.Fatal(err)
	}
	if want := dateutil.TruncateToDay(testNow); !h.Window().From.Equal(want) {
		t.Errorf("from = %v, want %v", h.Window().From, want)
	}
}

func TestHost_StyleCascadeFromStore(t *testing.T) {
	h := newHost(t, 0,
		&chart.Row{ID: "p", Style: chart.RowStyle{Grid: chart.GridStyle{
			Row:   chart.StyleOverrides{Children: chart.Style{"background": "#111111"}},
			Block: chart.StyleOverrides{Children: chart.Style{"color": "#222222"}},
		}}},
		&chart.Row{ID: "k", ParentID: "p", Height: 60},
	)

	v, ok := h.View("k")
	if !ok {
		t.Fatal("view k missing")
	}
	if got := v.Element().Style["background"]; got != "#111111" {
		t.Errorf("row background = %q", got)
	}
	if got := v.Element().Style[chart.StyleHeight]; got != "60px" {
		t.Errorf("row height = %q, want 60px", got)
	}
	block := v.Blocks()[0].(*grid.BlockView)
	if got := block.Element().Style["color"]; got != "#222222" {
		t.Errorf("block color = %q", got)
	}

	p, _ := h.View("p")
	if _, ok := p.Element().Style["background"]; ok {
		t.Error("children override applied to the row declaring it")
	}
}

func TestHost_DefaultRowHeight(t *testing.T) {
	h := New(store.New(), Options{RowHeight: 80, Scale: Scale{PxPerColumn: 10, PxPerLine: 20}})
	t.Cleanup(h.Close)
	if err := h.SetRows([]*chart.Row{{ID: "a"}, {ID: "b", Height: 20}}); err != nil {
		t.Fatal(err)
	}
	if got := h.Rows()["a"].Height; got != 80 {
		t.Errorf("a height = %d, want 80", got)
	}
	if got := h.Rows()["b"].Height; got != 20 {
		t.Errorf("b height = %d, want 20", got)
	}
}

func TestHost_DanglingParent(t *testing.T) {
	h := newHost(t, 0, threeRows()...)

	err := h.SetRows([]*chart.Row{{ID: "x", ParentID: "missing"}})
	if !errors.Is(err, chart.ErrRowNotFound) {
		t.Fatalf("SetRows() error = %v, want ErrRowNotFound", err)
	}

	if err := h.Store().Set(store.PathRows, map[string]any{
		"x": map[string]any{"id": "x", "parentId": "missing"},
	}); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(h.Err(), chart.ErrRowNotFound) {
		t.Errorf("Err() = %v, want ErrRowNotFound", h.Err())
	}
	if got := h.Visible(); len(got) != 3 {
		t.Errorf("Visible() = %v, previous rows should be kept", got)
	}
}

func TestHost_RowsRemovedFromStore(t *testing.T) {
	h := newHost(t, 150*time.Millisecond, threeRows()...)

	if err := h.Store().Delete(store.Key(store.PathRows, "b")); err != nil {
		t.Fatal(err)
	}
	if got := h.Visible(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Visible() = %v, want [a c]", got)
	}
	leaves := h.TakeLeaves()
	if len(leaves) != 1 || leaves[0].ID != "b" {
		t.Fatalf("TakeLeaves() = %v, want b", leaves)
	}
	if !h.FinishLeave(leaves[0]) {
		t.Error("FinishLeave() = false")
	}
}

func TestScale(t *testing.T) {
	s := Scale{PxPerColumn: 10, PxPerLine: 20}
	tests := []struct {
		px, cols, lines int
	}{
		{0, 1, 1},
		{10, 1, 1},
		{11, 2, 1},
		{40, 4, 2},
		{41, 5, 3},
	}
	for _, tt := range tests {
		if got := s.Columns(tt.px); got != tt.cols {
			t.Errorf("Columns(%d) = %d, want %d", tt.px, got, tt.cols)
		}
		if got := s.Lines(tt.px); got != tt.lines {
			t.Errorf("Lines(%d) = %d, want %d", tt.px, got, tt.lines)
		}
	}
	if got := (Scale{}).Columns(3); got != 3 {
		t.Errorf("zero scale Columns(3) = %d, want 3", got)
	}
}
