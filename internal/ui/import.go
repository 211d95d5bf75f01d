package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/chart"
)

// rowsFile is the layout of an import file.
type rowsFile struct {
	Rows []*chart.Row `toml:"rows"`
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.toml]",
		Short: "Import rows from a TOML file",
		Long: `Import rows from a TOML file. Rows with an existing id are replaced.

Example file:

  [[rows]]
  id = "eng"
  label = "Engineering"

  [rows.style.grid.row.children]
  background = "#1e1e2e"

  [[rows]]
  id = "api"
  parent = "eng"
  height = 60`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			rows, err := readRowsFile(path)
			if err != nil {
				return err
			}
			if err := a.saveRows(context.Background(), rows); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows from %s\n", len(rows), path)
			return nil
		},
	}

	return cmd
}

func readRowsFile(path string) ([]*chart.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("import file does not exist: %s", path)
		}
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	var f rowsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	rows := make([]*chart.Row, 0, len(f.Rows))
	seen := make(map[string]bool, len(f.Rows))
	for _, r := range f.Rows {
		if r == nil {
			continue
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("row %q listed twice", r.ID)
		}
		seen[r.ID] = true
		rows = append(rows, r)
	}
	return rows, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
