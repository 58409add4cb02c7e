// Package tui edits form fields interactively in a terminal. Prompts go
// through a PromptDriver; the default driver is backed by survey.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"k8s.io/klog/v2"

	"github.com/goliatone/go-promptgen/pkg/model"
)

// Form is the part of form.Model the editor drives.
type Form interface {
	Fields() model.FieldSet
	SetField(name, value string) (bool, error)
	Save(ctx context.Context) error
}

// Result summarises an editing session.
type Result struct {
	Changed []string
	Saved   bool
}

// Editor walks the fields of a form and applies each answer immediately, so
// the generated output is current after every prompt.
type Editor struct {
	driver      PromptDriver
	out         io.Writer
	only        []string
	confirmSave bool
	theme       Theme
}

// New constructs an editor with defaults (survey driver writing to stdout).
func New(options ...Option) *Editor {
	e := &Editor{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.driver == nil {
		e.driver = newSurveyDriver(e.out)
	}
	return e
}

// Run prompts for every selected field. Answers already applied stay applied
// when the session is aborted; the returned Result lists them.
func (e *Editor) Run(ctx context.Context, f Form) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("tui: context is required")
	}
	if f == nil {
		return Result{}, errors.New("tui: form is required")
	}

	fields := e.selectFields(f.Fields())
	if len(fields) == 0 {
		return Result{}, ErrNoFields
	}

	state := NewState(f.Fields().Values())
	for _, field := range fields {
		if err := ctx.Err(); err != nil {
			return Result{Changed: state.Changed()}, err
		}
		value, err := e.promptField(ctx, field)
		if err != nil {
			return Result{Changed: state.Changed()}, err
		}
		if _, err := f.SetField(field.Name, value); err != nil {
			return Result{Changed: state.Changed()}, err
		}
		state.Record(field.Name, value)
		klog.V(4).Infof("tui: answered %s", field.Name)
	}

	result := Result{Changed: state.Changed()}
	if len(result.Changed) == 0 {
		return result, e.info(ctx, "No changes.")
	}

	if e.confirmSave {
		ok, err := e.driver.Confirm(ctx, ConfirmConfig{Message: e.theme.PromptPrefix + "Save draft?", Default: true})
		if err != nil {
			return result, err
		}
		if !ok {
			return result, e.info(ctx, fmt.Sprintf("Updated %d field(s), draft not saved.", len(result.Changed)))
		}
	}
	if err := f.Save(ctx); err != nil {
		return result, fmt.Errorf("tui: save draft: %w", err)
	}
	result.Saved = true
	return result, e.info(ctx, fmt.Sprintf("Updated %d field(s): %s", len(result.Changed), strings.Join(result.Changed, ", ")))
}

func (e *Editor) selectFields(set model.FieldSet) []model.Field {
	all := set.Fields()
	if len(e.only) == 0 {
		return all
	}
	wanted := make(map[string]struct{}, len(e.only))
	for _, name := range e.only {
		wanted[name] = struct{}{}
	}
	out := make([]model.Field, 0, len(e.only))
	for _, field := range all {
		if _, ok := wanted[field.Name]; ok {
			out = append(out, field)
		}
	}
	return out
}

func (e *Editor) promptField(ctx context.Context, field model.Field) (string, error) {
	message := e.theme.PromptPrefix + field.DisplayLabel()

	switch {
	case field.Enumerated():
		return e.promptSelect(ctx, field, message)
	case field.Multiline:
		return e.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: field.Value,
			Help:    "Leave empty to keep the current value.",
		})
	default:
		return e.driver.Input(ctx, InputConfig{
			Message: message,
			Default: field.Value,
		})
	}
}

// promptSelect offers the field domain. A current value outside the domain
// is listed first so it can be kept.
func (e *Editor) promptSelect(ctx context.Context, field model.Field, message string) (string, error) {
	options := append([]string(nil), field.Domain...)
	if !field.InDomain(field.Value) {
		options = append([]string{field.Value}, options...)
	}

	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: max(indexOf(options, field.Value), 0),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		if err := e.info(ctx, e.theme.ErrorPrefix+"invalid selection, keeping current value"); err != nil {
			return "", err
		}
		return field.Value, nil
	}
	return options[idx], nil
}

func (e *Editor) info(ctx context.Context, msg string) error {
	return e.driver.Info(ctx, e.theme.InfoPrefix+msg)
}
