package grid

import "github.com/javiermolinar/gantt/internal/registry"

// ActionProps is what an action sees of the component it is attached to.
type ActionProps struct {
	Component string
	Props     any
}

// ActionHandle is returned by an action when it is attached to an element.
// Either callback may be nil.
type ActionHandle struct {
	Update  func(props ActionProps)
	Destroy func(el *Element)
}

// Action attaches imperative behaviour to a freshly created element.
type Action func(el *Element, props ActionProps) ActionHandle

type namedAction struct {
	name string
	fn   Action
}

// Actions holds the actions registered per component name.
type Actions struct {
	byComponent map[string][]namedAction
}

// NewActions creates an empty action table.
func NewActions() *Actions {
	return &Actions{byComponent: make(map[string][]namedAction)}
}

// Add registers an action for a component. Adding a name that is already
// registered for the component is a no-op.
func (a *Actions) Add(component, name string, fn Action) {
	for _, na := range a.byComponent[component] {
		if na.name == name {
			return
		}
	}
	a.byComponent[component] = append(a.byComponent[component], namedAction{name: name, fn: fn})
}

// Names returns the action names registered for a component, in order.
func (a *Actions) Names(component string) []string {
	list := a.byComponent[component]
	names := make([]string, len(list))
	for i, na := range list {
		names[i] = na.name
	}
	return names
}

// Bind runs every action of the component against el.
func (a *Actions) Bind(component string, el *Element, props ActionProps) *BoundActions {
	b := &BoundActions{el: el}
	for _, na := range a.byComponent[component] {
		b.handles = append(b.handles, na.fn(el, props))
	}
	return b
}

// BoundActions are the actions attached to one element.
type BoundActions struct {
	el      *Element
	handles []ActionHandle
	done    bool
}

// Update forwards new props to every attached action.
func (b *BoundActions) Update(props ActionProps) {
	if b.done {
		return
	}
	for _, h := range b.handles {
		if h.Update != nil {
			h.Update(props)
		}
	}
}

// Destroy detaches every action. Subsequent calls are no-ops.
func (b *BoundActions) Destroy() {
	if b.done {
		return
	}
	b.done = true
	for _, h := range b.handles {
		if h.Destroy != nil {
			h.Destroy(b.el)
		}
	}
}

// BindElement returns an action that keeps the element registered in reg
// for as long as it is attached.
func BindElement(reg *registry.Registry[*Element]) Action {
	return func(el *Element, _ ActionProps) ActionHandle {
		reg.Add(el)
		return ActionHandle{
			Destroy: func(el *Element) {
				reg.Remove(el)
			},
		}
	}
}
