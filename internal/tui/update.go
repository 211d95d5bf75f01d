package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		updated, cmd := m.handleKeyMsg(msg)
		if model, ok := updated.(Model); ok {
			return model.afterChange(cmd)
		}
		return updated, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if err := m.host.SetViewport(m.width, m.gridRows()); err != nil {
			m.setError(err)
		}
		return m.afterChange(nil)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case commands.RowsLoadedMsg:
		m.loading = false
		if err := m.host.SetRows(msg.Rows); err != nil {
			m.setError(err)
			return m, nil
		}
		return m.afterChange(nil)

	case commands.LeaveDoneMsg:
		m.host.FinishLeave(msg.Request)
		return m.afterChange(nil)

	case commands.ErrMsg:
		m.loading = false
		m.setError(msg.Err)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

// afterChange schedules pending leaves, surfaces sync errors, and refreshes
// the rendered grid when a component changed.
func (m Model) afterChange(cmd tea.Cmd) (Model, tea.Cmd) {
	cmds := []tea.Cmd{cmd}
	for _, req := range m.host.TakeLeaves() {
		cmds = append(cmds, commands.FinishLeave(req, m.host.LeaveFade()))
	}
	if err := m.host.Err(); err != nil {
		m.setError(err)
	}
	m.refreshRender()
	return m, tea.Batch(cmds...)
}

func (m *Model) refreshRender() {
	if !m.host.Dirty() && m.rendered != "" {
		return
	}
	m.rendered, m.layout = m.host.Render(m.renderer)
}

func (m *Model) setError(err error) {
	m.err = err
	m.statusMsg = fmt.Sprintf("Error: %v", err)
	m.statusTime = time.Now().Add(5 * time.Second)
}

// gridRows returns the number of lines available to rows.
func (m Model) gridRows() int {
	return max(1, m.height-footerLines-timeline.HeaderLines)
}

// handleMouse scrolls on the wheel and reports the row under a click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.host.ScrollRows(-1)
		return m.afterChange(nil)
	case tea.MouseButtonWheelDown:
		m.host.ScrollRows(1)
		return m.afterChange(nil)
	case tea.MouseButtonLeft:
		hit, ok := m.host.HitTest(m.layout, msg.X, msg.Y)
		logHit(msg.X, msg.Y, hit, ok)
		if !ok {
			m.statusMsg = ""
			return m, nil
		}
		m.statusMsg = describeHit(hit)
		m.statusTime = time.Now().Add(5 * time.Second)
	}
	return m, nil
}

func describeHit(hit timeline.Hit) string {
	label := hit.Row.Label
	if label == "" {
		label = hit.Row.ID
	}
	if hit.Block == nil {
		return label
	}
	return fmt.Sprintf("%s · %s", label, hit.Block.Time.Start.Format("Mon 2006-01-02 15:04"))
}
