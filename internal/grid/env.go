package grid

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/registry"
	"github.com/javiermolinar/gantt/internal/store"
)

// Component names, used for class names and action tables.
const (
	RowComponentName   = "chart-timeline-grid-row"
	BlockComponentName = "chart-timeline-grid-row-block"
)

// Wrapper keys under store.PathWrappers.
const (
	RowWrapperKey   = "ChartTimelineGridRow"
	BlockWrapperKey = "ChartTimelineGridRowBlock"
)

// BindElementAction is the action name under which components register
// their element into the shared registries.
const BindElementAction = "bind-element"

// DefaultClassPrefix is prepended to component class names.
const DefaultClassPrefix = "gstc"

// BlockFactory creates the component rendering one block of a row.
type BlockFactory func(env *Env, props chart.Block) (BlockComponent, error)

// Env carries the collaborators shared by every grid component.
type Env struct {
	Store *store.Store
	// Rows returns the current row mapping used to resolve ancestors.
	Rows func() chart.Rows

	Actions     *Actions
	Wrappers    Wrappers
	ClassPrefix string
	Now         func() time.Time

	RowElements   *registry.Registry[*Element]
	BlockElements *registry.Registry[*Element]

	BlockFactory BlockFactory

	// OnUpdate is called whenever a component needs to be re-rendered.
	OnUpdate func(component string)
}

// NewEnv creates an Env with default collaborators around the given store
// and row source.
func NewEnv(st *store.Store, rows func() chart.Rows) *Env {
	return &Env{
		Store:         st,
		Rows:          rows,
		Actions:       NewActions(),
		Wrappers:      DefaultWrappers(),
		ClassPrefix:   DefaultClassPrefix,
		Now:           time.Now,
		RowElements:   registry.New[*Element](registry.GridRows),
		BlockElements: registry.New[*Element](registry.GridRowBlocks),
		BlockFactory:  NewBlock,
	}
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) rows() chart.Rows {
	if e.Rows == nil {
		return nil
	}
	return e.Rows()
}

func (e *Env) update(component string) {
	if e.OnUpdate != nil {
		e.OnUpdate(component)
	}
}

// subscribeWrapper keeps *dst in sync with the wrapper configured for key.
func (e *Env) subscribeWrapper(key, component string, dst *Wrapper) func() {
	if e.Store == nil {
		*dst = Identity
		return func() {}
	}
	return e.Store.Subscribe(WrapperPath(key), func(v gjson.Result) {
		*dst = e.Wrappers.Lookup(v.String())
		e.update(component)
	})
}
