package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-promptgen/pkg/model"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	file, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "store.json"))
	require.NoError(t, err)

	sql, err := NewSQLStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sql.Close() })

	return map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendFile:   file,
		BackendSQLite: sql,
	}
}

func TestStores_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Put(ctx, "k", "v1"))
			require.NoError(t, store.Put(ctx, "k", "v2\nwith \"quotes\""))
			require.NoError(t, store.Put(ctx, "other", "x"))

			got, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2\nwith \"quotes\"", got)

			require.NoError(t, store.Delete(ctx, "k"))
			require.NoError(t, store.Delete(ctx, "k"))
			_, err = store.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)

			got, err = store.Get(ctx, "other")
			require.NoError(t, err)
			assert.Equal(t, "x", got)

			assert.Error(t, store.Put(ctx, " ", "x"))
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "theme", "dark"))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := second.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "promptgen.db")

	first, err := NewSQLStore(dsn)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "draft", "{}"))
	require.NoError(t, first.Close())

	second, err := NewSQLStore(dsn)
	require.NoError(t, err)
	defer second.Close()
	got, err := second.Get(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open("", dir)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	store, err = Open("SQLite", dir)
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, store)
	require.NoError(t, store.Close())

	store, err = Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, err = Open("redis", dir)
	assert.Error(t, err)
	_, err = Open(BackendFile, "")
	assert.Error(t, err)
}

func TestDraftStore_LoadMergesKnownStringFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	drafts := NewDraftStore(store, "draft")

	base, err := model.NewFieldSet(
		model.Field{Name: "a", Value: "default-a"},
		model.Field{Name: "b", Value: "default-b"},
		model.Field{Name: "c", Value: "default-c"},
	)
	require.NoError(t, err)

	loaded, err := drafts.Load(ctx, base)
	require.NoError(t, err)
	assert.True(t, loaded.EqualValues(base))

	require.NoError(t, store.Put(ctx, "draft", `{"a":"saved","b":7,"extra":"ignored"}`))
	loaded, err = drafts.Load(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "saved", "b": "default-b", "c": "default-c"}, loaded.Values())
	assert.False(t, loaded.Has("extra"))
	assert.Equal(t, "default-a", base.Value("a"), "base must not be mutated")
}

func TestDraftStore_CorruptDraftFallsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	drafts := NewDraftStore(store, "draft")
	base, _ := model.NewFieldSet(model.Field{Name: "a", Value: "x"})

	for _, raw := range []string{"{oops", `["a"]`} {
		require.NoError(t, store.Put(ctx, "draft", raw))
		loaded, err := drafts.Load(ctx, base)
		assert.ErrorIs(t, err, ErrCorruptDraft)
		assert.Equal(t, "x", loaded.Value("a"))
	}
}

func TestDraftStore_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	drafts := NewDraftStore(store, "draft")
	fields, _ := model.NewFieldSet(model.Field{Name: "a", Value: "<b> & c"})

	require.NoError(t, drafts.Save(ctx, fields))
	raw, err := store.Get(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, `{"a":"<b> & c"}`, raw)

	require.NoError(t, drafts.Clear(ctx))
	_, err = store.Get(ctx, "draft")
	assert.ErrorIs(t, err, ErrNotFound)
}
