package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-promptgen/pkg/theme"
)

func newThemeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the stored theme variant",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{theme.Light, theme.Dark, "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, _, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			pref := orch.Theme()

			var variant string
			switch {
			case len(args) == 0:
				variant, err = pref.Get(cmd.Context())
			case strings.EqualFold(args[0], "toggle"):
				variant, err = pref.Toggle(cmd.Context())
			default:
				variant, err = pref.Set(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), variant)
			return nil
		},
	}
}
