package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editModel(text string, cursor int) *model {
	return &model{text: text, cursor: cursor}
}

func TestInsertAndBackspace(t *testing.T) {
	m := editModel("", 0)
	m.insertText("a -> b")
	assert.Equal(t, "a -> b", m.text)
	assert.Equal(t, 6, m.cursor)

	require.True(t, m.backspace())
	assert.Equal(t, "a -> ", m.text)
	assert.Equal(t, 5, m.cursor)

	m.cursor = 0
	assert.False(t, m.backspace(), "backspace at start is a no-op")
}

func TestBackspaceHandlesMultibyteRunes(t *testing.T) {
	m := editModel("héllo", 3) // after the two-byte é
	require.True(t, m.backspace())
	assert.Equal(t, "hllo", m.text)
	assert.Equal(t, 1, m.cursor)
}

func TestDeleteForward(t *testing.T) {
	m := editModel("ab", 0)
	require.True(t, m.deleteForward())
	assert.Equal(t, "b", m.text)
	assert.Equal(t, 0, m.cursor)

	m.cursor = 1
	assert.False(t, m.deleteForward(), "delete at end is a no-op")
}

func TestVerticalMovementKeepsColumn(t *testing.T) {
	m := editModel("first line\nsecond\nthird line", 0)
	m.moveEnd() // end of "first line", column 10
	m.moveDown()
	row, col := m.cursorRowCol()
	assert.Equal(t, 1, row)
	assert.Equal(t, 6, col, "shorter lines clamp the column")

	m.moveDown()
	row, col = m.cursorRowCol()
	assert.Equal(t, 2, row)
	assert.Equal(t, 6, col)

	m.moveUp()
	m.moveUp()
	row, _ = m.cursorRowCol()
	assert.Equal(t, 0, row)

	m.moveUp()
	assert.Equal(t, 0, m.cursor, "moving up from the first line goes to the start")
}

func TestMoveDownFromLastLine(t *testing.T) {
	m := editModel("one\ntwo", 5)
	m.moveDown()
	assert.Equal(t, len(m.text), m.cursor)
}

func TestHomeAndEnd(t *testing.T) {
	m := editModel("one\ntwo three\nfour", 8)
	m.moveHome()
	assert.Equal(t, 4, m.cursor)
	m.moveEnd()
	assert.Equal(t, 13, m.cursor)
}

func TestUndoRedo(t *testing.T) {
	m := editModel("", 0)
	m.insertText("a")
	m.insertText(" -> b")
	require.Equal(t, "a -> b", m.text)

	require.True(t, m.undoText())
	assert.Equal(t, "a", m.text)
	require.True(t, m.undoText())
	assert.Equal(t, "", m.text)
	assert.False(t, m.undoText(), "nothing left to undo")

	require.True(t, m.redoText())
	assert.Equal(t, "a", m.text)
	require.True(t, m.redoText())
	assert.Equal(t, "a -> b", m.text)
	assert.False(t, m.redoText())
}

func TestEditClearsRedo(t *testing.T) {
	m := editModel("", 0)
	m.insertText("one")
	require.True(t, m.undoText())
	m.insertText("two")
	assert.False(t, m.redoText(), "a fresh edit invalidates the redo branch")
}

func TestUndoDepthIsBounded(t *testing.T) {
	m := editModel("", 0)
	for i := 0; i < maxUndoDepth+50; i++ {
		m.insertText("x")
	}
	assert.Len(t, m.undoStack, maxUndoDepth)
}
