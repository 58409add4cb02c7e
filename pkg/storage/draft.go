package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-promptgen/pkg/jsonvalue"
	"github.com/goliatone/go-promptgen/pkg/model"
)

// ErrCorruptDraft is returned when a persisted draft cannot be decoded.
var ErrCorruptDraft = errors.New("storage: corrupt draft")

// DraftStore persists field values as a JSON object under a single key.
type DraftStore struct {
	store Store
	key   string
}

// NewDraftStore binds store to the draft key.
func NewDraftStore(store Store, key string) *DraftStore {
	return &DraftStore{store: store, key: key}
}

// Key returns the storage key holding the draft.
func (d *DraftStore) Key() string { return d.key }

// Load merges a persisted draft over base. Only string members naming fields
// of base are applied. A missing draft returns base unchanged; a corrupt one
// returns base together with ErrCorruptDraft.
func (d *DraftStore) Load(ctx context.Context, base model.FieldSet) (model.FieldSet, error) {
	out := base.Clone()

	raw, err := d.store.Get(ctx, d.key)
	if errors.Is(err, ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("storage: load draft: %w", err)
	}

	value, err := jsonvalue.Parse([]byte(raw))
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrCorruptDraft, err)
	}
	if !value.IsObject() {
		return out, fmt.Errorf("%w: expected object, got %s", ErrCorruptDraft, value.Kind())
	}

	for _, name := range out.Names() {
		if text, ok := value.GetString(name); ok {
			out.Set(name, text)
		}
	}
	return out, nil
}

// Save writes every field value of fields.
func (d *DraftStore) Save(ctx context.Context, fields model.FieldSet) error {
	payload, err := fields.MarshalJSON()
	if err != nil {
		return fmt.Errorf("storage: encode draft: %w", err)
	}
	if err := d.store.Put(ctx, d.key, string(payload)); err != nil {
		return fmt.Errorf("storage: save draft: %w", err)
	}
	return nil
}

// Clear removes the persisted draft.
func (d *DraftStore) Clear(ctx context.Context) error {
	if err := d.store.Delete(ctx, d.key); err != nil {
		return fmt.Errorf("storage: clear draft: %w", err)
	}
	return nil
}
