// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/timeline"
)

// RowsLoadedMsg is sent when rows are loaded from storage.
type RowsLoadedMsg struct {
	Rows []*chart.Row
}

// LeaveDoneMsg is sent when the leave fade of a row has elapsed.
type LeaveDoneMsg struct {
	Request timeline.LeaveRequest
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadRows loads every row from the repository.
func LoadRows(repo chart.Repository) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return RowsLoadedMsg{}
		}
		rows, err := repo.ListRows(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return RowsLoadedMsg{Rows: rows}
	}
}

// FinishLeave fires a LeaveDoneMsg for req once the fade has elapsed.
func FinishLeave(req timeline.LeaveRequest, fade time.Duration) tea.Cmd {
	return tea.Tick(fade, func(time.Time) tea.Msg {
		return LeaveDoneMsg{Request: req}
	})
}

// ShowStatus sets a temporary status message.
func ShowStatus(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
