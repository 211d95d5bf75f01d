package integration

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/grid"
)

func TestTodayAcrossTimezones(t *testing.T) {
	zones := []string{"UTC", "America/New_York", "Asia/Kolkata", "Pacific/Chatham", "Pacific/Kiritimati"}

	for _, name := range zones {
		t.Run(name, func(t *testing.T) {
			loc, err := time.LoadLocation(name)
			if err != nil {
				t.Fatalf("LoadLocation(%q): %v", name, err)
			}
			// Late evening, where a UTC based day would already have rolled over.
			now := time.Date(2025, 6, 10, 23, 30, 0, 0, loc)
			yesterday := now.AddDate(0, 0, -1)

			repo := openRepo(t)
			saveRow(t, repo, &chart.Row{ID: "r"})

			tests := []struct {
				name    string
				now     time.Time
				current int
			}{
				{"clock yesterday", yesterday, 0},
				{"clock today", now, 1},
			}
			for _, tt := range tests {
				h := newHost(t, repo, tt.now, yesterday)
				v, ok := h.View("r")
				if !ok {
					t.Fatalf("%s: row view missing", tt.name)
				}
				for i, b := range v.Blocks() {
					bv := b.(*grid.BlockView)
					if got := bv.IsCurrent(); got != (i == tt.current) {
						t.Errorf("%s: block %d current = %v, want %v", tt.name, i, got, i == tt.current)
					}
					if got := bv.Element().HasClass(grid.CurrentClass); got != (i == tt.current) {
						t.Errorf("%s: block %d has current class = %v", tt.name, i, got)
					}
				}
			}
		})
	}
}
