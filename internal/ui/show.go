package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/chart"
	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/store"
	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui"
	"github.com/javiermolinar/gantt/internal/tui/theme"
)

// showOpts configures a one-off chart render.
type showOpts struct {
	Width   int
	Period  string
	Start   string
	NoColor bool
	Now     time.Time
}

func (a *App) showCmd() *cobra.Command {
	opts := showOpts{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the chart once",
		Long: `Render the chart to stdout without starting the interactive view.

The number of cells follows the terminal width unless --width is set.`,
		Example: `  gantt show
  gantt show --period hour --start today
  gantt show --width 120 --no-color > chart.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if opts.Width <= 0 {
				opts.Width = termWidth()
			}
			opts.Now = time.Now()

			rows, err := a.repo.ListRows(context.Background())
			if err != nil {
				return fmt.Errorf("listing rows: %w", err)
			}
			return renderChart(cmd.OutOrStdout(), a.config, rows, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", 0, "Output width in columns (default: terminal width)")
	cmd.Flags().StringVar(&opts.Period, "period", "", "Cell period: day or hour (default: chart.period)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "First cell: week, today, or YYYY-MM-DD (default: chart.start)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable color output")
	return cmd
}

func renderChart(w io.Writer, base *config.Config, rows []*chart.Row, opts showOpts) error {
	cfg := *base
	if opts.Period != "" {
		if _, err := chart.ParsePeriod(opts.Period); err != nil {
			return err
		}
		cfg.Chart.Period = opts.Period
	}
	if opts.Start != "" {
		cfg.Chart.Start = opts.Start
	}
	// Nothing fades out in a single frame.
	cfg.Chart.LeaveFade = "0s"

	host := tui.NewHost(store.New(), &cfg, func() time.Time { return opts.Now })
	defer host.Close()

	if err := tui.StartWindow(host, &cfg, opts.Now, 1); err != nil {
		return err
	}
	if err := host.SetViewport(opts.Width, 0); err != nil {
		return err
	}
	if err := host.SetRows(rows); err != nil {
		return err
	}
	if err := host.Err(); err != nil {
		return err
	}

	lg := lipgloss.NewRenderer(w)
	if opts.NoColor {
		DisableColor()
		lg.SetColorProfile(termenv.Ascii)
	}
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return err
	}

	out, _ := host.Render(timeline.NewRenderer(lg, theme.NewPalette(t)))
	if len(rows) == 0 {
		out += "\n" + formatMuted("No rows yet. Add one with 'gantt rows add <id>'.")
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
