package grid

import (
	"github.com/javiermolinar/gantt/internal/chart"
)

// RowProps are the props of a grid row, replaced wholesale on each update.
type RowProps struct {
	Row    *chart.Row
	Blocks []chart.Block
	// Width is the row width in px.
	Width int
}

// UpdateOptions qualify a props change.
type UpdateOptions struct {
	// Leave marks the row as scheduled for removal.
	Leave bool
}

// RowView renders the background strip of one row and owns a BlockView per
// visible time cell.
type RowView struct {
	env     *Env
	props   RowProps
	el      *Element
	blocks  []BlockComponent
	actions *BoundActions
	wrapper Wrapper
	unsub   func()
	leaving bool
	done    bool
}

// NewRowView creates a row view and applies the initial props.
func NewRowView(env *Env, props RowProps) (*RowView, error) {
	r := &RowView{
		env:     env,
		el:      NewElement(ClassName(env.ClassPrefix, RowComponentName)),
		wrapper: Identity,
	}
	r.el.Style = chart.Style{
		chart.StyleWidth:         chart.Px(props.Width),
		chart.StyleHeight:        chart.Px(props.Row.EffectiveHeight()),
		chart.StyleOpacity:       "1",
		chart.StylePointerEvents: "all",
		chart.StyleOverflow:      "hidden",
	}

	if env.RowElements != nil {
		env.Actions.Add(RowComponentName, BindElementAction, BindElement(env.RowElements))
	}
	r.unsub = env.subscribeWrapper(RowWrapperKey, RowComponentName, &r.wrapper)

	if err := r.apply(props); err != nil {
		r.destroyBlocks()
		r.unsub()
		return nil, err
	}
	r.actions = env.Actions.Bind(RowComponentName, r.el, r.actionProps())
	return r, nil
}

// Key returns the id of the row shown.
func (r *RowView) Key() string {
	return r.props.Row.ID
}

// Props returns the props the view was last updated with.
func (r *RowView) Props() RowProps {
	return r.props
}

// Change applies new props as a normal update.
func (r *RowView) Change(props RowProps) error {
	return r.Update(props, UpdateOptions{})
}

// Leave fades the row out ahead of its removal. Children are kept until
// Destroy.
func (r *RowView) Leave() {
	_ = r.Update(r.props, UpdateOptions{Leave: true})
}

// Leaving reports whether the row is faded out and waiting to be destroyed.
func (r *RowView) Leaving() bool {
	return r.leaving
}

// Update applies props. With opts.Leave the props are ignored and the row
// only turns transparent and stops accepting pointer events.
func (r *RowView) Update(props RowProps, opts UpdateOptions) error {
	if r.done {
		return nil
	}
	if opts.Leave {
		r.leaving = true
		r.el.Style[chart.StyleOpacity] = "0"
		r.el.Style[chart.StylePointerEvents] = "none"
		r.env.update(RowComponentName)
		return nil
	}
	if err := r.apply(props); err != nil {
		return err
	}
	r.actions.Update(r.actionProps())
	return nil
}

func (r *RowView) apply(props RowProps) error {
	base := chart.Style{
		chart.StyleOpacity:       "1",
		chart.StylePointerEvents: "all",
		chart.StyleOverflow:      "hidden",
		chart.StyleHeight:        chart.Px(props.Row.EffectiveHeight()),
		chart.StyleWidth:         chart.Px(props.Width),
	}
	style, err := r.env.rows().CascadeStyle(props.Row, base, chart.GridRowStyle)
	if err != nil {
		return err
	}

	blocks, err := Reconcile(r.blocks, props.Blocks, chart.Block.Key, func(b chart.Block) (BlockComponent, error) {
		return r.env.BlockFactory(r.env, b)
	})
	if err != nil {
		return err
	}

	r.blocks = blocks
	r.props = props
	r.leaving = false
	r.el.Style = style
	r.el.Data = props.Row
	r.env.update(RowComponentName)
	return nil
}

func (r *RowView) actionProps() ActionProps {
	return ActionProps{Component: RowComponentName, Props: r.props}
}

// Blocks returns the current block children in render order.
func (r *RowView) Blocks() []BlockComponent {
	return append([]BlockComponent(nil), r.blocks...)
}

// Element returns the element registered for this row.
func (r *RowView) Element() *Element {
	return r.el
}

// View returns the row element with its block children, passed through the
// configured wrapper.
func (r *RowView) View() *Element {
	children := make([]*Element, len(r.blocks))
	for i, b := range r.blocks {
		children[i] = b.View()
	}
	r.el.Children = children
	return r.wrapper(r.el, r.props)
}

// Destroy destroys every block child, then deregisters the row element.
// Subsequent calls are no-ops.
func (r *RowView) Destroy() {
	if r.done {
		return
	}
	r.done = true
	r.destroyBlocks()
	if r.actions != nil {
		r.actions.Destroy()
	}
	r.unsub()
}

// Destroyed reports whether Destroy has run.
func (r *RowView) Destroyed() bool {
	return r.done
}

func (r *RowView) destroyBlocks() {
	for _, b := range r.blocks {
		b.Destroy()
	}
	r.blocks = nil
}
