package grid

import (
	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/dateutil"
)

// CurrentClass marks the block of today's cell.
const CurrentClass = "current"

// BlockComponent renders one time cell of a row.
type BlockComponent interface {
	Child[chart.Block]
	// Leave signals that the block is about to be removed.
	Leave()
	// View returns the element to render.
	View() *Element
}

// BlockView renders one time-cell rectangle inside a row. The block whose
// cell starts at the beginning of today, as seen when the view was created,
// carries CurrentClass.
type BlockView struct {
	env     *Env
	props   chart.Block
	today   int64
	el      *Element
	content *Element
	actions *BoundActions
	wrapper Wrapper
	unsub   func()
	done    bool
}

var _ BlockComponent = (*BlockView)(nil)

// NewBlock creates a block view and applies the initial props.
// It is the default BlockFactory.
func NewBlock(env *Env, props chart.Block) (BlockComponent, error) {
	return NewBlockView(env, props)
}

// NewBlockView creates a block view and applies the initial props.
func NewBlockView(env *Env, props chart.Block) (*BlockView, error) {
	base := ClassName(env.ClassPrefix, BlockComponentName)
	b := &BlockView{
		env:     env,
		props:   props,
		today:   dateutil.StartOfDayMillis(env.now()),
		el:      NewElement(base),
		content: NewElement(base + "-content"),
		wrapper: Identity,
	}
	b.el.Children = []*Element{b.content}

	if env.BlockElements != nil {
		env.Actions.Add(BlockComponentName, BindElementAction, BindElement(env.BlockElements))
	}
	b.unsub = env.subscribeWrapper(BlockWrapperKey, BlockComponentName, &b.wrapper)

	if err := b.apply(props); err != nil {
		b.unsub()
		return nil, err
	}
	b.actions = env.Actions.Bind(BlockComponentName, b.el, b.actionProps())
	return b, nil
}

// Key returns the key of the block currently shown.
func (b *BlockView) Key() string {
	return b.props.Key()
}

// Props returns the props the view was last updated with.
func (b *BlockView) Props() chart.Block {
	return b.props
}

// Change applies new props and re-renders.
func (b *BlockView) Change(props chart.Block) error {
	if b.done {
		return nil
	}
	if err := b.apply(props); err != nil {
		return err
	}
	b.actions.Update(b.actionProps())
	return nil
}

// Leave re-renders without changing anything.
func (b *BlockView) Leave() {
	if b.done {
		return
	}
	b.env.update(BlockComponentName)
}

// IsCurrent reports whether the block shows today's cell.
func (b *BlockView) IsCurrent() bool {
	return b.props.Time.LeftGlobal == b.today
}

func (b *BlockView) apply(props chart.Block) error {
	class := ClassName(b.env.ClassPrefix, BlockComponentName)
	if props.Time.LeftGlobal == b.today {
		class += " " + CurrentClass
	}

	base := chart.Style{
		chart.StyleWidth:  chart.Px(props.Time.Width),
		chart.StyleHeight: chart.Px(props.Row.EffectiveHeight()),
	}
	style, err := b.env.rows().CascadeStyle(props.Row, base, chart.GridBlockStyle)
	if err != nil {
		return err
	}

	b.props = props
	b.el.Class = class
	b.el.Style = style
	b.el.Data = props
	b.env.update(BlockComponentName)
	return nil
}

func (b *BlockView) actionProps() ActionProps {
	return ActionProps{Component: BlockComponentName, Props: b.props}
}

// View returns the block element passed through the configured wrapper.
func (b *BlockView) View() *Element {
	return b.wrapper(b.el, b.props)
}

// Element returns the element registered for this block.
func (b *BlockView) Element() *Element {
	return b.el
}

// Destroy deregisters the block. Subsequent calls are no-ops.
func (b *BlockView) Destroy() {
	if b.done {
		return
	}
	b.done = true
	if b.actions != nil {
		b.actions.Destroy()
	}
	b.unsub()
}
