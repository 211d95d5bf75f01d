// Package chart holds the data model of the timeline: rows, their style
// overrides, and the time cells the grid is divided into.
package chart

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Errors returned by row lookups and ancestry computation.
var (
	ErrRowNotFound = errors.New("row not found")
	ErrParentCycle = errors.New("row parent chain contains a cycle")
	ErrEmptyRowID  = errors.New("row id cannot be empty")
)

// DefaultRowHeight is used when a row does not set its own height.
const DefaultRowHeight = 40

// StyleOverrides holds the overrides a row contributes to one grid element.
// Children applies to every descendant row, Current to the row itself.
type StyleOverrides struct {
	Children Style `json:"children,omitempty" toml:"children,omitempty"`
	Current  Style `json:"current,omitempty" toml:"current,omitempty"`
}

// GridStyle groups the overrides for grid rows and grid blocks.
type GridStyle struct {
	Row   StyleOverrides `json:"row,omitzero" toml:"row,omitempty"`
	Block StyleOverrides `json:"block,omitzero" toml:"block,omitempty"`
}

// RowStyle holds all style overrides attached to a row.
type RowStyle struct {
	Grid GridStyle `json:"grid,omitzero" toml:"grid,omitempty"`
}

// IsZero reports whether the row style carries no overrides.
func (s RowStyle) IsZero() bool {
	g := s.Grid
	return len(g.Row.Children) == 0 && len(g.Row.Current) == 0 &&
		len(g.Block.Children) == 0 && len(g.Block.Current) == 0
}

// Row is one horizontal lane of the chart.
type Row struct {
	ID       string   `json:"id" toml:"id"`
	ParentID string   `json:"parentId,omitempty" toml:"parent,omitempty"`
	Label    string   `json:"label,omitempty" toml:"label,omitempty"`
	Height   int      `json:"height,omitempty" toml:"height,omitempty"`
	Position int      `json:"position,omitempty" toml:"position,omitempty"`
	Style    RowStyle `json:"style,omitzero" toml:"style,omitempty"`

	// Parents is the ancestor id chain, root first. Filled by ComputeParents.
	Parents []string `json:"parents,omitempty" toml:"-"`
}

// Validate checks the fields a row must carry before it is stored.
func (r *Row) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyRowID
	}
	if r.ParentID == r.ID {
		return fmt.Errorf("row %q: %w", r.ID, ErrParentCycle)
	}
	if r.Height < 0 {
		return fmt.Errorf("row %q: height must not be negative", r.ID)
	}
	return nil
}

// EffectiveHeight returns the row height, or DefaultRowHeight when unset.
func (r *Row) EffectiveHeight() int {
	if r.Height <= 0 {
		return DefaultRowHeight
	}
	return r.Height
}

// Rows maps row ids to rows.
type Rows map[string]*Row

// NewRows indexes the given rows by id.
func NewRows(list []*Row) Rows {
	rows := make(Rows, len(list))
	for _, r := range list {
		rows[r.ID] = r
	}
	return rows
}

// Get returns the row with the given id.
func (rs Rows) Get(id string) (*Row, error) {
	r, ok := rs[id]
	if !ok || r == nil {
		return nil, fmt.Errorf("%w: %q", ErrRowNotFound, id)
	}
	return r, nil
}

// ComputeParents fills Parents for every row by walking ParentID links.
// A ParentID that points to a missing row or a chain that loops back on
// itself is an error.
func ComputeParents(rs Rows) error {
	for _, id := range slices.Sorted(maps.Keys(rs)) {
		row := rs[id]
		var chain []string
		seen := map[string]bool{row.ID: true}
		for pid := row.ParentID; pid != ""; {
			if seen[pid] {
				return fmt.Errorf("row %q: %w", row.ID, ErrParentCycle)
			}
			seen[pid] = true
			parent, err := rs.Get(pid)
			if err != nil {
				return fmt.Errorf("parent of row %q: %w", row.ID, err)
			}
			chain = append(chain, pid)
			pid = parent.ParentID
		}
		slices.Reverse(chain)
		row.Parents = chain
	}
	return nil
}

// Ordered returns the rows in tree order: each parent before its children,
// siblings sorted by Position then ID. Rows whose parent is missing are
// treated as roots.
func (rs Rows) Ordered() []*Row {
	children := make(map[string][]*Row)
	for _, r := range rs {
		parent := r.ParentID
		if _, ok := rs[parent]; !ok {
			parent = ""
		}
		children[parent] = append(children[parent], r)
	}
	for _, list := range children {
		slices.SortFunc(list, func(a, b *Row) int {
			if a.Position != b.Position {
				return a.Position - b.Position
			}
			return strings.Compare(a.ID, b.ID)
		})
	}

	out := make([]*Row, 0, len(rs))
	var walk func(parent string)
	walk = func(parent string) {
		for _, r := range children[parent] {
			out = append(out, r)
			if r.ID != "" {
				walk(r.ID)
			}
		}
	}
	walk("")
	return out
}

// GridRowStyle picks the grid row overrides of a row style.
func GridRowStyle(s RowStyle) StyleOverrides { return s.Grid.Row }

// GridBlockStyle picks the grid block overrides of a row style.
func GridBlockStyle(s RowStyle) StyleOverrides { return s.Grid.Block }

// CascadeStyle applies the style overrides inherited by row onto base:
// each ancestor's Children overrides in ancestry order, then the row's own
// Current overrides. A missing ancestor is returned as ErrRowNotFound.
func (rs Rows) CascadeStyle(row *Row, base Style, pick func(RowStyle) StyleOverrides) (Style, error) {
	overrides := make([]Style, 0, len(row.Parents)+1)
	for _, pid := range row.Parents {
		parent, err := rs.Get(pid)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, pick(parent.Style).Children)
	}
	overrides = append(overrides, pick(row.Style).Current)
	return Cascade(base, overrides...), nil
}
