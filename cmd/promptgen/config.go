package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-promptgen/internal/settings"
)

func newConfigCommand(a *app) *cobra.Command {
	var (
		write  bool
		global bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved settings",
		Long: `Show the settings after merging every source.

Precedence, highest first:
  1. command line flags
  2. PROMPTGEN_* environment variables
  3. ./promptgen.yml
  4. $XDG_CONFIG_HOME/promptgen/promptgen.yml
  5. built-in defaults

--write saves the resolved settings to ./promptgen.yml, or to the global file
with --global.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.settings
			if write {
				path := settings.ProjectPath()
				if global {
					path = settings.GlobalPath()
				}
				if err := settings.Write(path, s); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				return nil
			}

			fieldsFile := s.FieldsFile
			if fieldsFile == "" {
				fieldsFile = "(built-in)"
			}
			themeVariant := s.Theme
			if themeVariant == "" {
				themeVariant = "(stored preference)"
			}

			t := table.New().
				Border(lipgloss.HiddenBorder()).
				StyleFunc(func(_, col int) lipgloss.Style {
					if col == 0 {
						return lipgloss.NewStyle().Bold(true).PaddingRight(2)
					}
					return lipgloss.NewStyle()
				}).
				Row(settings.KeyDataDir, s.DataDir).
				Row(settings.KeyStore, s.Store).
				Row(settings.KeyFieldsFile, fieldsFile).
				Row(settings.KeyDebounce, s.Debounce.String()).
				Row(settings.KeyTheme, themeVariant).
				Row("fields", fmt.Sprintf("%d", len(a.cfg.Fields())))
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the resolved settings to a config file")
	cmd.Flags().BoolVar(&global, "global", false, "with --write, target the global config file")
	return cmd
}
