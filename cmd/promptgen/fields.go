package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

const valueColumnWidth = 48

func newSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set name=value [name=value...]",
		Short: "Change one or more fields",
		Long: `Set replaces field values and saves the draft. Values may contain
"=" and newlines; only the first "=" separates the name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := make([][2]string, 0, len(args))
			for _, arg := range args {
				name, value, ok := strings.Cut(arg, "=")
				if !ok || strings.TrimSpace(name) == "" {
					return fmt.Errorf("expected name=value, got %q", arg)
				}
				pairs = append(pairs, [2]string{strings.TrimSpace(name), value})
			}

			_, m, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			for _, pair := range pairs {
				changed, err := m.SetField(pair[0], pair[1])
				if err != nil {
					return err
				}
				state := "unchanged"
				if changed {
					state = "updated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", pair[0], state)
			}
			return nil
		},
	}
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get name",
		Short: "Print the value of a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			field, err := m.Field(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), field.Value)
			return nil
		},
	}
}

func newFieldsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List fields with their current values and options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			headerStyle := lipgloss.NewStyle().Bold(true)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("FIELD", "VALUE", "OPTIONS").
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return lipgloss.NewStyle()
				})

			for _, field := range m.Fields().Fields() {
				t.Row(field.Name, summarize(field.Value, valueColumnWidth), strings.Join(field.Domain, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			if m.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "(unsaved changes)")
			}
			return nil
		},
	}
}

// summarize flattens newlines and truncates to limit runes.
func summarize(value string, limit int) string {
	flat := strings.Join(strings.Fields(value), " ")
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}
	return string(runes[:limit-3]) + "..."
}
