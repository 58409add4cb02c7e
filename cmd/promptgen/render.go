package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-promptgen/pkg/orchestrator"
	"github.com/goliatone/go-promptgen/pkg/render"
)

func newRenderCommand(a *app) *cobra.Command {
	var view string
	cmd := &cobra.Command{
		Use:   "render [renderer]",
		Short: "Render the current record or prompt text",
		Long: `Render the current session with one of the registered renderers:
json, text, html, preview or terminal. Without an argument the text renderer
is used. --view picks the JSON document or the prompt text for renderers that
can present either.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, _, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			parsed, err := render.ParseView(view, "")
			if err != nil {
				return err
			}
			req := orchestrator.Request{View: parsed, ThemeVariant: a.settings.Theme}
			if len(args) == 1 {
				req.Renderer = args[0]
			}

			out, err := orch.Render(cmd.Context(), req)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, err := w.Write(out); err != nil {
				return err
			}
			if len(out) > 0 && !strings.HasSuffix(string(out), "\n") {
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&view, "view", "", "document to present: json or text")
	return cmd
}
