package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plusk0/periodic-table/src/periodic"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T, path string) *sqliteStore {
	t.Helper()
	s, err := openStore(path, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreGetSetRemove(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "data.db"))

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "one"))
	require.NoError(t, s.Set("k", "two"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	require.NoError(t, s.Set("a", ""))
	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "k"}, keys)

	require.NoError(t, s.Remove("k"))
	require.NoError(t, s.Remove("k"), "removing twice is fine")
	_, ok, err = s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreBacksTableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")

	first := openTestStore(t, path)
	tbl := periodic.NewTable(first)
	require.NoError(t, tbl.Initialize())
	require.NoError(t, tbl.Add(periodic.Element{ID: "na", Position: 11, Name: "Sodium", Weight: 22.98977, Symbol: "Na"}))
	want := tbl.Elements()
	require.NoError(t, first.Close())

	second := openTestStore(t, path)
	reloaded := periodic.NewTable(second)
	require.NoError(t, reloaded.Initialize())

	assert.Equal(t, want, reloaded.Elements())
	ok, err := reloaded.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, reloaded.Elements(), len(want)-1)
}
