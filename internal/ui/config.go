package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  gantt config
  gantt config show
  gantt config init --force`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}

	cmd.AddCommand(a.configShowCmd())
	cmd.AddCommand(a.configPathCmd())
	cmd.AddCommand(a.configInitCmd())
	return cmd
}

func (a *App) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := toml.Marshal(a.config)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (a *App) configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

func (a *App) configInitCmd() *cobra.Command {
	var force bool
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return initConfig(cmd.OutOrStdout(), path, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().StringVar(&path, "path", "", "Config file path (default: "+config.DefaultConfigPath()+")")
	return cmd
}

func initConfig(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}
	if err := config.Default().SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(w, "Created %s\n", path)
	return nil
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(os.Stdout, cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Chart.Period = promptValue(reader, "Period (day, hour)", cfg.Chart.Period)
	cfg.Chart.Start = promptValue(reader, "Start (week, today, YYYY-MM-DD)", cfg.Chart.Start)
	cfg.Chart.RowHeight = promptInt(reader, "Row height (px)", cfg.Chart.RowHeight)
	cfg.Chart.CellWidth = promptInt(reader, "Cell width (px)", cfg.Chart.CellWidth)
	cfg.Chart.LeaveFade = promptValue(reader, "Leave fade (e.g. 150ms)", cfg.Chart.LeaveFade)
	cfg.Chart.BlockWrapper = promptValue(reader, "Block wrapper (none, weekend)", cfg.Chart.BlockWrapper)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[chart]")
	fmt.Fprintf(w, "  period        = %s\n", cfg.Chart.Period)
	fmt.Fprintf(w, "  start         = %s\n", cfg.Chart.Start)
	fmt.Fprintf(w, "  row_height    = %d\n", cfg.Chart.RowHeight)
	fmt.Fprintf(w, "  cell_width    = %d\n", cfg.Chart.CellWidth)
	fmt.Fprintf(w, "  class_prefix  = %s\n", cfg.Chart.ClassPrefix)
	fmt.Fprintf(w, "  leave_fade    = %s\n", cfg.Chart.LeaveFade)
	fmt.Fprintf(w, "  row_wrapper   = %s\n", cfg.Chart.RowWrapper)
	fmt.Fprintf(w, "  block_wrapper = %s\n", cfg.Chart.BlockWrapper)
	fmt.Fprintln(w, "\n[render]")
	fmt.Fprintf(w, "  px_per_column = %d\n", cfg.Render.PxPerColumn)
	fmt.Fprintf(w, "  px_per_line   = %d\n", cfg.Render.PxPerLine)
	fmt.Fprintf(w, "  label_width   = %d\n", cfg.Render.LabelWidth)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path       = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme         = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Printf("  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
