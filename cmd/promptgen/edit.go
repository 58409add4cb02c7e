package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-promptgen/pkg/renderers/tui"
)

func newEditCommand(a *app) *cobra.Command {
	var (
		fields  []string
		confirm bool
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit fields interactively",
		Long: `Edit walks the fields in order. Select fields offer their options,
multi-line fields open an editor and the rest read a single line. Each answer
is applied right away; press Ctrl-C to stop early.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			opts := []tui.Option{
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithFields(fields...),
				tui.WithPromptDriver(a.promptDriver),
			}
			if confirm {
				opts = append(opts, tui.WithConfirmSave())
			}

			result, err := tui.New(opts...).Run(cmd.Context(), m)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintf(cmd.OutOrStdout(), "aborted after %d changes\n", len(result.Changed))
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringSliceVar(&fields, "field", nil, "limit the session to these fields")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "ask before saving the draft")
	return cmd
}
