package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/gantt/internal/debuglog"
	"github.com/javiermolinar/gantt/internal/timeline"
)

func logKeyPress(msg tea.KeyMsg) {
	debuglog.Event("KEY_PRESS", logrus.Fields{
		"key":  msg.String(),
		"type": msg.Type.String(),
		"alt":  msg.Alt,
	})
}

func logHit(x, y int, hit timeline.Hit, ok bool) {
	fields := logrus.Fields{"x": x, "y": y, "hit": ok}
	if ok {
		fields["row"] = hit.Row.ID
		if hit.Block != nil {
			fields["cell"] = hit.Block.Time.LeftGlobal
		}
	}
	debuglog.Event("MOUSE_HIT", fields)
}
