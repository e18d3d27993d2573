package main

import (
	"strings"
	"unicode/utf8"
)

// editState is a snapshot for undo. The cursor travels with the text
// so undo restores where you were.
type editState struct {
	text   string
	cursor int
}

const maxUndoDepth = 200

func (m *model) pushUndo() {
	m.undoStack = append(m.undoStack, editState{text: m.text, cursor: m.cursor})
	if len(m.undoStack) > maxUndoDepth {
		m.undoStack = m.undoStack[1:]
	}
	m.redoStack = nil
}

func (m *model) undoText() bool {
	if len(m.undoStack) == 0 {
		return false
	}
	last := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, editState{text: m.text, cursor: m.cursor})
	m.text = last.text
	m.cursor = last.cursor
	return true
}

func (m *model) redoText() bool {
	if len(m.redoStack) == 0 {
		return false
	}
	last := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, editState{text: m.text, cursor: m.cursor})
	m.text = last.text
	m.cursor = last.cursor
	return true
}

// Cursor positions are byte offsets into the buffer; movement steps by
// rune.

func (m *model) insertText(s string) {
	m.pushUndo()
	m.text = m.text[:m.cursor] + s + m.text[m.cursor:]
	m.cursor += len(s)
}

func (m *model) backspace() bool {
	if m.cursor == 0 {
		return false
	}
	m.pushUndo()
	_, size := utf8.DecodeLastRuneInString(m.text[:m.cursor])
	m.text = m.text[:m.cursor-size] + m.text[m.cursor:]
	m.cursor -= size
	return true
}

func (m *model) deleteForward() bool {
	if m.cursor >= len(m.text) {
		return false
	}
	m.pushUndo()
	_, size := utf8.DecodeRuneInString(m.text[m.cursor:])
	m.text = m.text[:m.cursor] + m.text[m.cursor+size:]
	return true
}

func (m *model) moveLeft() {
	if m.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(m.text[:m.cursor])
	m.cursor -= size
}

func (m *model) moveRight() {
	if m.cursor >= len(m.text) {
		return
	}
	_, size := utf8.DecodeRuneInString(m.text[m.cursor:])
	m.cursor += size
}

// lineSpan reports the byte range [start,end) of the line containing
// offset, excluding the trailing newline.
func lineSpan(text string, offset int) (int, int) {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += offset
	}
	return start, end
}

// advance walks count runes into line, stopping at its end, and
// returns the byte offset reached.
func advance(line string, count int) int {
	off := 0
	for i := 0; i < count && off < len(line); i++ {
		_, size := utf8.DecodeRuneInString(line[off:])
		off += size
	}
	return off
}

func (m *model) moveUp() {
	start, _ := lineSpan(m.text, m.cursor)
	if start == 0 {
		m.cursor = 0
		return
	}
	col := utf8.RuneCountInString(m.text[start:m.cursor])
	prevStart, prevEnd := lineSpan(m.text, start-1)
	m.cursor = prevStart + advance(m.text[prevStart:prevEnd], col)
}

func (m *model) moveDown() {
	start, end := lineSpan(m.text, m.cursor)
	if end >= len(m.text) {
		m.cursor = len(m.text)
		return
	}
	col := utf8.RuneCountInString(m.text[start:m.cursor])
	nextStart, nextEnd := lineSpan(m.text, end+1)
	m.cursor = nextStart + advance(m.text[nextStart:nextEnd], col)
}

func (m *model) moveHome() {
	start, _ := lineSpan(m.text, m.cursor)
	m.cursor = start
}

func (m *model) moveEnd() {
	_, end := lineSpan(m.text, m.cursor)
	m.cursor = end
}

// cursorRowCol reports the zero-based row and rune column of the
// cursor, for the editor pane and status line.
func (m *model) cursorRowCol() (int, int) {
	row := strings.Count(m.text[:m.cursor], "\n")
	start, _ := lineSpan(m.text, m.cursor)
	return row, utf8.RuneCountInString(m.text[start:m.cursor])
}
