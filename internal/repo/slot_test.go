package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlot(t *testing.T, slot Slot) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := slot.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok, "fresh slot should be empty")

	require.NoError(t, slot.Put(ctx, DefaultKey, []byte(`[1]`)))
	require.NoError(t, slot.Put(ctx, DefaultKey, []byte(`[1,2]`)))

	got, ok, err := slot.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1,2]`, string(got), "second put should overwrite the first")

	_, ok, err = slot.Get(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemSlot(t *testing.T) {
	testSlot(t, NewMemSlot())
}

func TestMemSlot_CopiesValues(t *testing.T) {
	ctx := context.Background()
	slot := NewMemSlot()
	value := []byte("abc")
	require.NoError(t, slot.Put(ctx, "k", value))
	value[0] = 'z'

	got, _, err := slot.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileSlot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	slot, err := NewFileSlot(dir)
	require.NoError(t, err)
	defer slot.Close()

	testSlot(t, slot)

	_, err = os.Stat(filepath.Join(dir, "@tasks.json"))
	assert.NoError(t, err)
}

func TestFileSlot_EscapesKey(t *testing.T) {
	dir := t.TempDir()
	slot, err := NewFileSlot(dir)
	require.NoError(t, err)

	require.NoError(t, slot.Put(context.Background(), "../escape", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "..%2Fescape.json", entries[0].Name())
}

func TestFileSlot_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileSlot(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, DefaultKey, []byte(`[]`)))

	second, err := NewFileSlot(dir)
	require.NoError(t, err)
	got, ok, err := second.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(got))
}

func TestSQLiteSlot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")

	slot, err := NewSQLiteSlot(ctx, path)
	require.NoError(t, err)
	testSlot(t, slot)
	require.NoError(t, slot.Close())

	reopened, err := NewSQLiteSlot(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2]`, string(got))
}
