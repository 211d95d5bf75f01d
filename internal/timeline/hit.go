package timeline

import (
	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/grid"
)

// Hit is the result of a pointer lookup.
type Hit struct {
	Row   *chart.Row
	Block *chart.Block
}

// HitTest finds the row (and block, when one covers the point) drawn at
// (x, y) in the given layout. Elements with pointer events disabled are
// skipped. Lookups go through the shared element registries, in the order
// elements were registered.
func (h *Host) HitTest(layout grid.Layout, x, y int) (Hit, bool) {
	for _, el := range h.env.RowElements.Items() {
		if !el.Hittable() {
			continue
		}
		rect, ok := layout[el.ID]
		if !ok || !rect.Contains(x, y) {
			continue
		}
		row, ok := el.Data.(*chart.Row)
		if !ok {
			continue
		}
		hit := Hit{Row: row}
		for _, b := range h.env.BlockElements.Items() {
			if !b.Hittable() {
				continue
			}
			r, ok := layout[b.ID]
			if !ok || !r.Contains(x, y) {
				continue
			}
			if blk, ok := b.Data.(chart.Block); ok && blk.Row != nil && blk.Row.ID == row.ID {
				hit.Block = &blk
				break
			}
		}
		return hit, true
	}
	return Hit{}, false
}
