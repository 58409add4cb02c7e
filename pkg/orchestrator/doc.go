// Package orchestrator wires configuration, draft storage, the form model,
// renderers, theme preference and exports into a single entry point for
// callers that do not want to assemble the pieces themselves.
package orchestrator
