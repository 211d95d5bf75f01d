package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/javiermolinar/gantt/internal/chart"
)

// ErrInvalidStyleFlag is returned for a malformed --style value.
var ErrInvalidStyleFlag = errors.New("style must look like row.children.background=#1e1e2e")

func (a *App) rowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Manage chart rows",
	}
	cmd.AddCommand(a.rowsListCmd())
	cmd.AddCommand(a.rowsAddCmd())
	cmd.AddCommand(a.rowsRmCmd())
	return cmd
}

func (a *App) rowsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rows as a tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			list, err := a.repo.ListRows(context.Background())
			if err != nil {
				return fmt.Errorf("listing rows: %w", err)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rows yet. Add one with 'gantt rows add <id>'.")
				return nil
			}
			rows := chart.NewRows(list)
			if err := chart.ComputeParents(rows); err != nil {
				return err
			}
			printRowTree(cmd.OutOrStdout(), rows, termWidth())
			return nil
		},
	}
}

func (a *App) rowsAddCmd() *cobra.Command {
	var (
		label    string
		parent   string
		height   int
		position int
		styles   []string
	)

	cmd := &cobra.Command{
		Use:   "add [id]",
		Short: "Add or replace a row",
		Long: `Add a row, or replace the row with the same id.

Style overrides target the grid row or the grid block, either for the
row itself (current) or for every descendant (children).`,
		Example: `  gantt rows add eng --label Engineering
  gantt rows add api --parent eng --height 60
  gantt rows add eng --style row.children.background=#1e1e2e --style block.current.bold=true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			style, err := parseStyleFlags(styles)
			if err != nil {
				return err
			}
			row := &chart.Row{
				ID:       args[0],
				ParentID: parent,
				Label:    label,
				Height:   height,
				Position: position,
				Style:    style,
			}
			if err := a.saveRows(context.Background(), []*chart.Row{row}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s row %s\n", formatOK("Saved"), formatID(row.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Row label (default: the id)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent row id")
	cmd.Flags().IntVar(&height, "height", 0, "Row height in px (default: chart.row_height)")
	cmd.Flags().IntVar(&position, "position", 0, "Order among siblings")
	cmd.Flags().StringArrayVar(&styles, "style", nil, "Style override, e.g. row.children.background=#1e1e2e (repeatable)")
	return cmd
}

func (a *App) rowsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a row; its children move to its parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeleteRow(context.Background(), args[0]); err != nil {
				return fmt.Errorf("removing row: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s row %s\n", formatOK("Removed"), formatID(args[0]))
			return nil
		},
	}
}

// saveRows validates rows against the stored ones and saves them. Nothing is
// saved if the combined rows have a dangling parent or a cycle.
func (a *App) saveRows(ctx context.Context, rows []*chart.Row) error {
	existing, err := a.repo.ListRows(ctx)
	if err != nil {
		return fmt.Errorf("listing rows: %w", err)
	}
	all := chart.NewRows(existing)
	for _, r := range rows {
		if err := r.Validate(); err != nil {
			return err
		}
		all[r.ID] = r
	}
	if err := chart.ComputeParents(all); err != nil {
		return err
	}
	for _, r := range rows {
		if err := a.repo.SaveRow(ctx, r); err != nil {
			return fmt.Errorf("saving row %q: %w", r.ID, err)
		}
	}
	return nil
}

// parseStyleFlags turns "row.children.background=#fff" values into a row
// style. The target is row or block, the scope children or current. A
// leading "grid." segment is accepted, matching the stored style path.
func parseStyleFlags(flags []string) (chart.RowStyle, error) {
	var style chart.RowStyle
	doc := "{}"
	for _, f := range flags {
		path, value, ok := strings.Cut(f, "=")
		if !ok {
			return style, fmt.Errorf("%w: %q", ErrInvalidStyleFlag, f)
		}
		path = strings.TrimPrefix(strings.TrimSpace(path), "grid.")
		parts := strings.SplitN(path, ".", 3)
		if len(parts) != 3 || parts[2] == "" {
			return style, fmt.Errorf("%w: %q", ErrInvalidStyleFlag, f)
		}
		target, scope, key := parts[0], parts[1], parts[2]
		if target != "row" && target != "block" {
			return style, fmt.Errorf("%w: unknown target %q", ErrInvalidStyleFlag, target)
		}
		if scope != "children" && scope != "current" {
			return style, fmt.Errorf("%w: unknown scope %q", ErrInvalidStyleFlag, scope)
		}

		var err error
		doc, err = sjson.Set(doc, "grid."+target+"."+scope+"."+escapeKey(key), strings.TrimSpace(value))
		if err != nil {
			return style, fmt.Errorf("setting style %q: %w", f, err)
		}
	}
	if err := json.Unmarshal([]byte(doc), &style); err != nil {
		return style, fmt.Errorf("decoding style: %w", err)
	}
	return style, nil
}

func escapeKey(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(key)
}

func printRowTree(w io.Writer, rows chart.Rows, width int) {
	fmt.Fprintln(w, formatHeader("Rows"))
	for _, r := range rows.Ordered() {
		indent := strings.Repeat("  ", len(r.Parents))
		line := fmt.Sprintf("%s%s", indent, formatID(r.ID))
		if r.Label != "" && r.Label != r.ID {
			line += " " + r.Label
		}
		if r.Height > 0 {
			line += " " + formatMuted(chart.Px(r.Height))
		}
		fmt.Fprintln(w, line)
		for _, s := range styleSummary(r.Style) {
			fmt.Fprintf(w, "%s    %s\n", indent, formatStyle(truncate(s, width-len(indent)-4)))
		}
	}
}

// styleSummary lists the non-empty overrides of a row, one per line.
func styleSummary(s chart.RowStyle) []string {
	var out []string
	add := func(name string, st chart.Style) {
		if len(st) > 0 {
			out = append(out, name+" "+st.String())
		}
	}
	add("row.children", s.Grid.Row.Children)
	add("row.current", s.Grid.Row.Current)
	add("block.children", s.Grid.Block.Children)
	add("block.current", s.Grid.Block.Current)
	return out
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
