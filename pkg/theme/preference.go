package theme

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/goliatone/go-promptgen/pkg/storage"
)

// Preference persists the chosen variant under a single key.
type Preference struct {
	store storage.Store
	key   string
}

// NewPreference binds store to key.
func NewPreference(store storage.Store, key string) *Preference {
	return &Preference{store: store, key: key}
}

// Get returns the stored variant, or DefaultVariant when nothing valid is
// stored.
func (p *Preference) Get(ctx context.Context) (string, error) {
	raw, err := p.store.Get(ctx, p.key)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultVariant, nil
	}
	if err != nil {
		return DefaultVariant, fmt.Errorf("theme: load preference: %w", err)
	}
	variant, err := Normalize(raw)
	if err != nil {
		klog.Warningf("theme: ignoring stored preference: %v", err)
		return DefaultVariant, nil
	}
	return variant, nil
}

// Set validates and stores variant.
func (p *Preference) Set(ctx context.Context, variant string) (string, error) {
	normalized, err := Normalize(variant)
	if err != nil {
		return "", err
	}
	if err := p.store.Put(ctx, p.key, normalized); err != nil {
		return "", fmt.Errorf("theme: save preference: %w", err)
	}
	return normalized, nil
}

// Toggle flips the stored variant and returns the new value.
func (p *Preference) Toggle(ctx context.Context) (string, error) {
	current, err := p.Get(ctx)
	if err != nil {
		return "", err
	}
	return p.Set(ctx, Opposite(current))
}
