// Package grid implements the timeline grid components: one RowView per
// visible row, each owning one BlockView per visible time cell.
package grid

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/javiermolinar/gantt/internal/chart"
)

// Rect is an element's position in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Element is a rendered node of the grid.
type Element struct {
	ID       string
	Class    string
	Style    chart.Style
	Content  string
	Children []*Element

	// Data carries the props the element was last rendered with.
	Data any
}

// NewElement creates an element with a fresh identity.
func NewElement(class string) *Element {
	return &Element{ID: uuid.NewString(), Class: class, Style: chart.Style{}}
}

// HasClass reports whether class is one of the element's classes.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(strings.Fields(e.Class), class)
}

// Layout maps element ids to their on-screen position for one frame.
type Layout map[string]Rect

// Hittable reports whether the element accepts pointer events.
func (e *Element) Hittable() bool {
	return e.Style[chart.StylePointerEvents] != "none"
}

// ClassName builds the class of a component from the configured prefix.
func ClassName(prefix, component string) string {
	if prefix == "" {
		return component
	}
	return prefix + "__" + component
}
