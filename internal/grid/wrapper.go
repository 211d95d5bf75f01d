package grid

import (
	"time"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/store"
)

// Wrapper post-processes a component's element before it is rendered.
type Wrapper func(el *Element, props any) *Element

// Built-in wrapper names.
const (
	WrapperNone    = "none"
	WrapperWeekend = "weekend"
)

// WeekendClass marks blocks that fall on a Saturday or Sunday.
const WeekendClass = "weekend"

// Identity returns the element unchanged.
func Identity(el *Element, _ any) *Element { return el }

// Weekend adds WeekendClass to block elements whose cell starts on a weekend.
// Other elements pass through unchanged.
func Weekend(el *Element, props any) *Element {
	b, ok := props.(chart.Block)
	if !ok || b.Time.Period == chart.PeriodHour {
		return el
	}
	switch b.Time.Start.Weekday() {
	case time.Saturday, time.Sunday:
		if el.HasClass(WeekendClass) {
			return el
		}
		out := *el
		out.Class += " " + WeekendClass
		return &out
	}
	return el
}

// Wrappers resolves wrapper names stored in the configuration tree.
type Wrappers map[string]Wrapper

// DefaultWrappers returns the built-in wrappers.
func DefaultWrappers() Wrappers {
	return Wrappers{
		WrapperNone:    Identity,
		WrapperWeekend: Weekend,
	}
}

// Lookup returns the wrapper registered under name, or Identity.
func (w Wrappers) Lookup(name string) Wrapper {
	if fn, ok := w[name]; ok && fn != nil {
		return fn
	}
	return Identity
}

// WrapperPath is the store path holding the wrapper name of a component.
func WrapperPath(component string) string {
	return store.Key(store.PathWrappers, component)
}
