package integration

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/db"
	"github.com/javiermolinar/gantt/internal/grid"
	"github.com/javiermolinar/gantt/internal/store"
	"github.com/javiermolinar/gantt/internal/timeline"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// saveRow is a helper to insert a row.
func saveRow(t *testing.T, repo *db.SQLite, r *chart.Row) {
	t.Helper()
	if err := repo.SaveRow(context.Background(), r); err != nil {
		t.Fatalf("failed to save row %q: %v", r.ID, err)
	}
}

// newHost creates a host whose clock is fixed at now, shows three day cells
// starting at from and loads the repository rows.
func newHost(t *testing.T, repo *db.SQLite, now, from time.Time) *timeline.Host {
	t.Helper()
	h := timeline.New(store.New(), timeline.Options{
		LabelWidth: 12,
		Scale:      timeline.Scale{PxPerColumn: 10, PxPerLine: 20},
		Now:        func() time.Time { return now },
	})
	t.Cleanup(h.Close)

	if err := h.SetWindow(chart.TimeWindow{From: from, Period: chart.PeriodDay, Count: 3, CellWidth: 60}); err != nil {
		t.Fatalf("SetWindow() error: %v", err)
	}
	reload(t, repo, h)
	return h
}

func reload(t *testing.T, repo *db.SQLite, h *timeline.Host) {
	t.Helper()
	rows, err := repo.ListRows(context.Background())
	if err != nil {
		t.Fatalf("ListRows() error: %v", err)
	}
	if err := h.SetRows(rows); err != nil {
		t.Fatalf("SetRows() error: %v", err)
	}
}

func TestFullWorkflow(t *testing.T) {
	repo := openRepo(t)
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

	saveRow(t, repo, &chart.Row{ID: "root", Label: "Company", Style: chart.RowStyle{Grid: chart.GridStyle{
		Row: chart.StyleOverrides{Children: chart.Style{"background": "#000001"}},
	}}})
	saveRow(t, repo, &chart.Row{ID: "mid", ParentID: "root", Label: "Team", Position: 1, Style: chart.RowStyle{Grid: chart.GridStyle{
		Row:   chart.StyleOverrides{Children: chart.Style{"background": "#000002"}},
		Block: chart.StyleOverrides{Children: chart.Style{"color": "#000003"}},
	}}})
	saveRow(t, repo, &chart.Row{ID: "leaf", ParentID: "mid", Label: "Service", Height: 60})

	h := newHost(t, repo, now, now)
	if got, want := h.Visible(), []string{"root", "mid", "leaf"}; !slices.Equal(got, want) {
		t.Fatalf("Visible() = %v, want %v", got, want)
	}

	leaf, _ := h.View("leaf")
	if got := leaf.Element().Style["background"]; got != "#000002" {
		t.Errorf("leaf background = %q, want the nearest ancestor's", got)
	}
	block := leaf.Blocks()[0].(*grid.BlockView)
	if got := block.Element().Style["color"]; got != "#000003" {
		t.Errorf("leaf block color = %q", got)
	}
	if !block.IsCurrent() {
		t.Error("first block should be today's")
	}

	// Removing the middle row moves the leaf under root.
	if err := repo.DeleteRow(context.Background(), "mid"); err != nil {
		t.Fatalf("DeleteRow() error: %v", err)
	}
	mid, _ := h.View("mid")
	reload(t, repo, h)

	if !mid.Destroyed() {
		t.Error("mid view not destroyed")
	}
	if got, want := h.Visible(), []string{"root", "leaf"}; !slices.Equal(got, want) {
		t.Errorf("Visible() = %v, want %v", got, want)
	}
	if leaf2, _ := h.View("leaf"); leaf2 != leaf {
		t.Error("leaf view was recreated instead of updated")
	}
	if got := leaf.Element().Style["background"]; got != "#000001" {
		t.Errorf("leaf background = %q after reparenting, want root's", got)
	}
	if _, ok := block.Element().Style["color"]; ok {
		t.Error("block kept the removed ancestor's override")
	}
	if got := h.Env().RowElements.Len(); got != 2 {
		t.Errorf("row registry len = %d, want 2", got)
	}
	if got := h.Env().BlockElements.Len(); got != 6 {
		t.Errorf("block registry len = %d, want 6", got)
	}

	out, layout := h.Render(timeline.NewRenderer(nil, nil))
	if out == "" {
		t.Fatal("empty render")
	}
	hit, ok := h.HitTest(layout, 12, 3)
	if !ok || hit.Row.ID != "leaf" {
		t.Errorf("HitTest() = %+v, %v, want leaf", hit, ok)
	}
}

func TestDeleteRow_NotFound(t *testing.T) {
	repo := openRepo(t)
	err := repo.DeleteRow(context.Background(), "nope")
	if !errors.Is(err, chart.ErrRowNotFound) {
		t.Errorf("DeleteRow() error = %v, want ErrRowNotFound", err)
	}
}

func TestStoredCycleIsRejected(t *testing.T) {
	repo := openRepo(t)
	saveRow(t, repo, &chart.Row{ID: "a", ParentID: "b"})
	saveRow(t, repo, &chart.Row{ID: "b", ParentID: "a"})

	rows, err := repo.ListRows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	h := timeline.New(store.New(), timeline.Options{})
	t.Cleanup(h.Close)
	if err := h.SetRows(rows); !errors.Is(err, chart.ErrParentCycle) {
		t.Errorf("SetRows() error = %v, want ErrParentCycle", err)
	}
}
