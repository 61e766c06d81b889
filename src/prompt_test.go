package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plusk0/periodic-table/src/periodic"
)

func TestTerminalConfirm(t *testing.T) {
	req := periodic.ConfirmRequest{Kind: periodic.ConfirmRemove}

	t.Run("assume yes", func(t *testing.T) {
		c := newTerminalConfirm(strings.NewReader(""), &bytes.Buffer{}, true)
		ok, err := c.Confirm(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("not a terminal", func(t *testing.T) {
		c := newTerminalConfirm(strings.NewReader("y\n"), &bytes.Buffer{}, false)
		_, err := c.Confirm(context.Background(), req)
		assert.ErrorIs(t, err, errNotInteractive)
	})

	answers := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false}
	for in, want := range answers {
		t.Run("answer "+strings.TrimSpace(in), func(t *testing.T) {
			var out bytes.Buffer
			c := &terminalConfirm{in: strings.NewReader(in), out: &out, interactive: true}

			ok, err := c.Confirm(context.Background(), req)

			require.NoError(t, err)
			assert.Equal(t, want, ok)
			assert.Contains(t, out.String(), "Remove this element")
		})
	}
}

func TestFlagEditorValidates(t *testing.T) {
	ed := flagEditor{apply: func(e *periodic.Element) { e.Position = 0 }}
	_, ok, err := ed.Edit(context.Background(), periodic.EditRequest{Element: periodic.Element{Position: 4}})
	assert.False(t, ok)
	assert.ErrorIs(t, err, periodic.ErrInvalidElement)

	ed = flagEditor{apply: func(e *periodic.Element) { e.Name = "Beryllium" }}
	got, ok, err := ed.Edit(context.Background(), periodic.EditRequest{Element: periodic.Element{ID: "be", Position: 4}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, periodic.Element{ID: "be", Position: 4, Name: "Beryllium"}, got)
}
