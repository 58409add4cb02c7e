package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/goliatone/go-promptgen/internal/settings"
	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/form"
	"github.com/goliatone/go-promptgen/pkg/orchestrator"
	"github.com/goliatone/go-promptgen/pkg/renderers/tui"
	"github.com/goliatone/go-promptgen/pkg/storage"
)

// app holds the state shared by subcommands. The session is opened lazily so
// commands that only need configuration never touch the store.
type app struct {
	settings settings.Settings
	cfg      config.Config
	orch     *orchestrator.Orchestrator

	copyToClipboard func(string) error
	promptDriver    tui.PromptDriver
}

func newApp() *app {
	return &app{copyToClipboard: clipboard.WriteAll}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "promptgen",
		Short: "Furniture photo prompt generator",
		Long: `promptgen keeps a set of named prompt fields, substitutes them into a
template and renders the result as a JSON record or plain prompt text.

Field edits are saved as a draft and restored on the next run.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	defaults := settings.Defaults()
	flags.String("data-dir", defaults.DataDir, "directory holding the draft and theme preference")
	flags.String("store", defaults.Store, "storage backend: file, sqlite or memory")
	flags.String("fields", "", "field configuration file (YAML or JSON)")
	flags.Duration("debounce", defaults.Debounce, "delay before edits are written to the draft")
	flags.String("theme", "", "theme variant for styled output: light or dark")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	flags.AddGoFlag(klogFlags.Lookup("v"))

	root.AddCommand(
		newRenderCommand(a),
		newSetCommand(a),
		newGetCommand(a),
		newFieldsCommand(a),
		newImportCommand(a),
		newResetCommand(a),
		newExportCommand(a),
		newCopyCommand(a),
		newEditCommand(a),
		newThemeCommand(a),
		newSchemaCommand(a),
		newConfigCommand(a),
	)
	return root
}

// execute runs cmd and closes the session afterwards, flushing pending draft
// writes even when the command failed.
func execute(a *app, cmd *cobra.Command) error {
	err := cmd.Execute()
	return errors.Join(err, a.close(context.Background()))
}

func (a *app) load(cmd *cobra.Command) error {
	s, err := settings.Load(cmd.Flags())
	if err != nil {
		return err
	}
	a.settings = s

	if s.FieldsFile == "" {
		a.cfg = config.Default()
	} else {
		cfg, err := config.Load(s.FieldsFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	klog.V(2).Infof("promptgen: store=%s data_dir=%s fields=%d", s.Store, s.DataDir, len(a.cfg.Fields()))
	return nil
}

// session opens the store and form model on first use.
func (a *app) session(ctx context.Context) (*orchestrator.Orchestrator, *form.Model, error) {
	if a.orch == nil {
		store, err := storage.Open(a.settings.Store, a.settings.DataDir)
		if err != nil {
			return nil, nil, err
		}
		a.orch = orchestrator.New(
			orchestrator.WithConfig(a.cfg),
			orchestrator.WithStore(store),
			orchestrator.WithDebounce(a.settings.Debounce),
		)
	}
	m, err := a.orch.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.orch, m, nil
}

func (a *app) close(ctx context.Context) error {
	if a.orch == nil {
		return nil
	}
	err := a.orch.Close(ctx)
	a.orch = nil
	return err
}
