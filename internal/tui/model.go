package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/debuglog"
	"github.com/javiermolinar/gantt/internal/grid"
	"github.com/javiermolinar/gantt/internal/store"
	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui/commands"
	"github.com/javiermolinar/gantt/internal/tui/theme"
)

// footerLines is the height of the status and help lines.
const footerLines = 2

// defaultCells is the number of cells shown before the first resize.
const defaultCells = 7

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   chart.Repository
	config *config.Config

	// Theme and styles
	theme    *theme.Theme
	styles   *Styles
	renderer *timeline.Renderer
	lg       *lipgloss.Renderer

	keys KeyMap
	host *timeline.Host

	// Cached render data
	rendered string
	layout   grid.Layout

	// State
	loading  bool
	showHelp bool

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error

	now  func() time.Time
	copy func(string) error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock sets the clock used for "today".
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithClipboard replaces the function used to copy the chart.
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) {
		m.copy = fn
	}
}

// WithRenderer draws the chart with a specific lipgloss renderer.
func WithRenderer(lg *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		m.lg = lg
	}
}

// New creates a new TUI model.
func New(repo chart.Repository, cfg *config.Config, opts ...ModelOption) (*Model, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	palette := theme.NewPalette(t)

	m := &Model{
		repo:    repo,
		config:  cfg,
		theme:   t,
		styles:  NewStyles(palette),
		keys:    DefaultKeyMap(),
		loading: true,
		now:     time.Now,
		copy:    clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.renderer = timeline.NewRenderer(m.lg, palette)

	m.host = NewHost(store.New(), cfg, m.now)
	if err := StartWindow(m.host, cfg, m.now(), defaultCells); err != nil {
		m.host.Close()
		return nil, err
	}
	return m, nil
}

// NewHost creates a timeline host configured from cfg.
func NewHost(st *store.Store, cfg *config.Config, now func() time.Time) *timeline.Host {
	return timeline.New(st, timeline.Options{
		ClassPrefix:  cfg.Chart.ClassPrefix,
		LeaveFade:    cfg.LeaveFadeDuration(),
		RowHeight:    cfg.Chart.RowHeight,
		RowWrapper:   cfg.Chart.RowWrapper,
		BlockWrapper: cfg.Chart.BlockWrapper,
		LabelWidth:   cfg.Render.LabelWidth,
		Scale: timeline.Scale{
			PxPerColumn: cfg.Render.PxPerColumn,
			PxPerLine:   cfg.Render.PxPerLine,
		},
		Now: now,
	})
}

// StartWindow sets the initial time window from the chart configuration.
func StartWindow(h *timeline.Host, cfg *config.Config, now time.Time, count int) error {
	from, err := cfg.StartDate(now)
	if err != nil {
		return err
	}
	return h.SetWindow(chart.TimeWindow{
		From:      from,
		Period:    cfg.PeriodValue(),
		Count:     count,
		CellWidth: cfg.Chart.CellWidth,
	})
}

// Host returns the timeline host driving the grid.
func (m Model) Host() *timeline.Host {
	return m.host
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadRows(m.repo)
}

// Run starts the TUI.
func Run(repo chart.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo chart.Repository, cfg *config.Config, debug bool) error {
	if err := debuglog.Init(debug, ""); err != nil {
		return err
	}
	defer debuglog.Close()

	initialRepo := repo
	if repo == nil {
		var err error
		repo, err = OpenRepo(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
	}

	model, err := New(repo, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	model.host.Close()
	if initialRepo == nil {
		_ = repo.Close()
	}
	return err
}
