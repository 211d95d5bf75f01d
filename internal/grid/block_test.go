package grid

import (
	"testing"
	"time"

	"github.com/javiermolinar/gantt/internal/chart"
)

func TestBlockView_CurrentClass(t *testing.T) {
	row := &chart.Row{ID: "r1", Height: 40}
	f := newFixture(t, row)
	cells := dayCells(3) // yesterday, today, tomorrow

	for i, cell := range cells {
		bv, err := NewBlockView(f.env, chart.Block{Row: row, Time: cell})
		if err != nil {
			t.Fatal(err)
		}
		wantCurrent := i == 1
		if got := bv.Element().HasClass(CurrentClass); got != wantCurrent {
			t.Errorf("cell %d: current = %v, want %v", i, got, wantCurrent)
		}
		if bv.IsCurrent() != wantCurrent {
			t.Errorf("cell %d: IsCurrent() = %v", i, bv.IsCurrent())
		}
	}
}

func TestBlockView_TodayCapturedAtCreation(t *testing.T) {
	row := &chart.Row{ID: "r1"}
	f := newFixture(t, row)
	cells := dayCells(3)

	bv, err := NewBlockView(f.env, chart.Block{Row: row, Time: cells[1]})
	if err != nil {
		t.Fatal(err)
	}

	// The clock moving past midnight does not change what "today" means for
	// an existing block.
	f.env.Now = func() time.Time { return testNow.AddDate(0, 0, 1) }
	if err := bv.Change(chart.Block{Row: row, Time: cells[1]}); err != nil {
		t.Fatal(err)
	}
	if !bv.IsCurrent() {
		t.Error("block should still treat its creation day as today")
	}
	if err := bv.Change(chart.Block{Row: row, Time: cells[2]}); err != nil {
		t.Fatal(err)
	}
	if bv.Element().HasClass(CurrentClass) {
		t.Error("tomorrow's cell should not be current")
	}
}

func TestBlockView_StyleCascade(t *testing.T) {
	parent := &chart.Row{ID: "p", Style: chart.RowStyle{Grid: chart.GridStyle{
		Block: chart.StyleOverrides{
			Children: chart.Style{"background": "#111111", "height": "10px"},
			Current:  chart.Style{"background": "#999999"},
		},
		Row: chart.StyleOverrides{
			Children: chart.Style{"color": "#ff0000"},
		},
	}}}
	child := &chart.Row{ID: "c", ParentID: "p", Height: 30, Style: chart.RowStyle{Grid: chart.GridStyle{
		Block: chart.StyleOverrides{Current: chart.Style{"bold": "true"}},
	}}}
	f := newFixture(t, parent, child)
	cell := dayCells(1)[0]

	bv, err := NewBlockView(f.env, chart.Block{Row: child, Time: cell})
	if err != nil {
		t.Fatal(err)
	}
	want := chart.Style{
		"width":      "60px",
		"height":     "10px",
		"background": "#111111",
		"bold":       "true",
	}
	if got := bv.Element().Style; !got.Equal(want) {
		t.Errorf("style = %v, want %v", got, want)
	}
}

func TestBlockView_LeaveOnlyRerenders(t *testing.T) {
	row := &chart.Row{ID: "r1"}
	f := newFixture(t, row)
	bv, err := NewBlockView(f.env, chart.Block{Row: row, Time: dayCells(1)[0]})
	if err != nil {
		t.Fatal(err)
	}
	style := bv.Element().Style.Clone()
	before := f.updates[BlockComponentName]

	bv.Leave()

	if f.updates[BlockComponentName] != before+1 {
		t.Error("leave should force a re-render")
	}
	if !bv.Element().Style.Equal(style) {
		t.Error("leave must not change the block style")
	}
	if !f.env.BlockElements.Contains(bv.Element()) {
		t.Error("leave must not deregister the block")
	}
}

func TestBlockView_ContentChild(t *testing.T) {
	row := &chart.Row{ID: "r1"}
	f := newFixture(t, row)
	bv, _ := NewBlockView(f.env, chart.Block{Row: row, Time: dayCells(1)[0]})
	el := bv.View()
	if len(el.Children) != 1 || el.Children[0].Class != "gstc__chart-timeline-grid-row-block-content" {
		t.Errorf("children = %+v", el.Children)
	}
}

func TestWeekendWrapper(t *testing.T) {
	row := &chart.Row{ID: "r1"}
	f := newFixture(t, row)
	if err := f.env.Store.Set(WrapperPath(BlockWrapperKey), WrapperWeekend); err != nil {
		t.Fatal(err)
	}
	// 2025-01-18 is a Saturday.
	sat := chart.TimeWindow{From: time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), Period: chart.PeriodDay, Count: 3, CellWidth: 1}.Cells()

	for i, cell := range sat {
		bv, err := NewBlockView(f.env, chart.Block{Row: row, Time: cell})
		if err != nil {
			t.Fatal(err)
		}
		wantWeekend := i < 2
		if got := bv.View().HasClass(WeekendClass); got != wantWeekend {
			t.Errorf("%s: weekend = %v, want %v", cell.Start.Weekday(), got, wantWeekend)
		}
		if bv.Element().HasClass(WeekendClass) {
			t.Error("wrapper must not mutate the registered element")
		}
	}
}
