package main

import (
	"bytes"
	"context"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plusk0/periodic-table/src/periodic"
)

func newTestView(t *testing.T) *tableView {
	t.Helper()
	test.NewTempApp(t)
	win := test.NewTempWindow(t, nil)

	tbl := periodic.NewTable(periodic.NewMemoryStore())
	require.NoError(t, tbl.Initialize())
	e := &env{
		cfg:   defaultConfig(),
		log:   discardLogger(),
		ids:   periodic.UUIDGenerator{},
		table: tbl,
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	v := newTableView(ctx, win, e)
	win.SetContent(v.build())
	return v
}

func TestTableViewRendersRows(t *testing.T) {
	v := newTestView(t)

	// header plus one row per element
	assert.Len(t, v.rows.Objects, 11)
	assert.Equal(t, "10 of 10 elements", v.status.Text)
	assert.True(t, v.undoBtn.Disabled())
	assert.True(t, v.redoBtn.Disabled())
}

func TestTableViewFollowsTableChanges(t *testing.T) {
	v := newTestView(t)

	require.NoError(t, v.table.Add(periodic.Element{ID: "na", Position: 11, Name: "Sodium"}))
	assert.Len(t, v.rows.Objects, 12)
	assert.False(t, v.undoBtn.Disabled())

	test.Tap(v.undoBtn)
	assert.Len(t, v.rows.Objects, 11)
	assert.True(t, v.undoBtn.Disabled())
	assert.False(t, v.redoBtn.Disabled())

	v.table.SetFilter("neon")
	assert.Len(t, v.rows.Objects, 2)
	assert.Equal(t, `1 of 10 elements matching "neon"`, v.status.Text)

	v.table.SetFilter("zzz")
	assert.Len(t, v.rows.Objects, 2, "header plus the empty message")
}

func TestWriteExportTo(t *testing.T) {
	tbl := periodic.NewTable(periodic.NewMemoryStore())
	require.NoError(t, tbl.Initialize())
	tbl.SetFilter("he")

	var buf closeBuffer
	require.NoError(t, writeExportTo(&buf, "out.json", tbl))

	assert.True(t, buf.closed)
	assert.Contains(t, buf.String(), `"name": "Helium"`)
	assert.Contains(t, buf.String(), `"filter": "he"`)
}

type closeBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closeBuffer) Close() error {
	b.closed = true
	return nil
}
