package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-promptgen/pkg/export"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file|-]",
		Short: "Load field values from a JSON document",
		Long: `Import reads a JSON object and copies its string members onto fields with
the same name. A record produced by "render json" is accepted as well; its
prompt_parameters object is used. Reads stdin when no file or "-" is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			_, m, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			applied, err := m.Import(raw)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matching fields")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d fields: %s\n", len(applied), strings.Join(applied, ", "))
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	return raw, nil
}

func newResetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default field values and clear the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := m.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "fields reset to defaults")
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var (
		dir    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the record or prompt text to a file",
		Long: `Export writes the JSON record (.json) or the prompt text (.txt) to a file
named after the product description. --format=all writes both.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats, err := exportFormats(format)
			if err != nil {
				return err
			}
			orch, _, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range formats {
				path, err := orch.Export(cmd.Context(), dir, f)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	cmd.Flags().StringVar(&format, "format", string(export.FormatJSON), "json, text or all")
	return cmd
}

func exportFormats(name string) ([]export.Format, error) {
	if strings.EqualFold(strings.TrimSpace(name), "all") {
		return []export.Format{export.FormatJSON, export.FormatText}, nil
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return []export.Format{f}, nil
}

func newCopyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "copy [json|text]",
		Short:     "Copy the record or prompt text to the clipboard",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(export.FormatJSON), string(export.FormatText)},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := string(export.FormatText)
			if len(args) == 1 {
				name = args[0]
			}
			f, err := export.ParseFormat(name)
			if err != nil {
				return err
			}

			_, m, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			output, err := m.Output()
			if err != nil {
				return err
			}
			content, err := export.Content(output, f)
			if err != nil {
				return err
			}
			if err := a.copyToClipboard(string(content)); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied %s (%d bytes)\n", f, len(content))
			return nil
		},
	}
}
