package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case renderTickMsg:
		if !m.pipe.current(msg) {
			return m, nil
		}
		if errText := m.pipe.run(m.text); errText != "" {
			return m, m.notify("render failed: "+errText, noticeError)
		}
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = notice{}
		}
		return m, nil

	case fileChangedMsg:
		// A write within a second of our own save is just the echo of
		// that save coming back through the watcher.
		if time.Since(m.lastSave) < time.Second {
			return m, m.watch.wait()
		}
		return m, tea.Batch(
			m.notify(fmt.Sprintf("%s changed on disk", m.doc.DisplayName()), noticeInfo),
			m.watch.wait(),
		)

	case tea.KeyMsg:
		switch m.mode {
		case ModeFileInput:
			return m.updateFileInput(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateEdit(msg)
		}
	}
	return m, nil
}

func (m model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		if m.doc.Dirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		m.watch.close()
		return m, tea.Quit

	case "ctrl+g", "f1":
		m.help = !m.help
		return m, nil

	case "ctrl+s":
		return m.startSave()

	case "ctrl+o":
		if m.doc.Dirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOpen
			return m, nil
		}
		m.startOpenPrompt()
		return m, nil

	case "ctrl+n":
		if m.doc.Dirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmNew
			return m, nil
		}
		m.newDocument()
		return m, nil

	case "ctrl+e":
		return m.startExport()

	case "ctrl+r":
		m.pipe.cancel()
		if errText := m.pipe.run(m.text); errText != "" {
			return m, m.notify("render failed: "+errText, noticeError)
		}
		return m, nil

	case "ctrl+t":
		m.pipe.kind = m.pipe.kind.next()
		cmd := m.notify("renderer: "+m.pipe.kind.String(), noticeInfo)
		if strings.TrimSpace(m.text) != "" {
			m.pipe.cancel()
			if errText := m.pipe.run(m.text); errText != "" {
				return m, m.notify("render failed: "+errText, noticeError)
			}
		}
		return m, cmd

	case "ctrl+y":
		return m.copyImage()

	case "ctrl+b":
		if strings.TrimSpace(m.text) == "" {
			return m, m.notify("copy failed: nothing to copy", noticeError)
		}
		if err := writeTextToClipboard(m.text); err != nil {
			return m, m.notify("copy failed: "+err.Error(), noticeError)
		}
		return m, m.notify("source copied", noticeSuccess)

	case "ctrl+z":
		if m.undoText() {
			return m, m.afterEdit()
		}
		return m, nil

	case "ctrl+x":
		if m.redoText() {
			return m, m.afterEdit()
		}
		return m, nil

	case "alt+h":
		if m.splitWidth > minPaneWidth {
			m.splitWidth--
			m.cfg.SplitWidth = m.splitWidth
			m.cfg.save()
		}
		return m, nil

	case "alt+l":
		if m.width == 0 || m.splitWidth < m.width-minPaneWidth {
			m.splitWidth++
			m.cfg.SplitWidth = m.splitWidth
			m.cfg.save()
		}
		return m, nil

	case "left":
		m.moveLeft()
		return m, nil
	case "right":
		m.moveRight()
		return m, nil
	case "up":
		m.moveUp()
		return m, nil
	case "down":
		m.moveDown()
		return m, nil
	case "home", "ctrl+a":
		m.moveHome()
		return m, nil
	case "end", "ctrl+k":
		m.moveEnd()
		return m, nil

	case "enter":
		m.insertText("\n")
		return m, m.afterEdit()
	case "backspace":
		if m.backspace() {
			return m, m.afterEdit()
		}
		return m, nil
	case "delete":
		if m.deleteForward() {
			return m, m.afterEdit()
		}
		return m, nil
	case "tab":
		m.insertText("    ")
		return m, m.afterEdit()
	case " ":
		m.insertText(" ")
		return m, m.afterEdit()
	}

	if msg.Type == tea.KeyRunes {
		m.insertText(string(msg.Runes))
		return m, m.afterEdit()
	}
	return m, nil
}

// afterEdit marks the document dirty and restarts the render debounce.
func (m *model) afterEdit() tea.Cmd {
	m.doc.MarkDirty()
	return m.pipe.schedule()
}

// startSave saves in place when a retained handle makes the prompt
// unnecessary, otherwise collects a filename first.
func (m model) startSave() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.text) == "" {
		return m, m.notify("save failed: nothing to save", noticeError)
	}
	// Only the picker tier needs a name up front; overwrite reuses the
	// handle and a download synthesizes its filename.
	if selectTier(m.st.Mode(), m.doc.Handle() != nil) != tierPicker {
		return m.finishSave("")
	}
	m.mode = ModeFileInput
	m.fileOp = FileOpSave
	m.filename = stripExt(m.doc.Name())
	m.promptErr = ""
	m.fileList = nil
	m.selectedFileIndex = -1
	return m, nil
}

func (m *model) startOpenPrompt() {
	m.mode = ModeFileInput
	m.fileOp = FileOpOpen
	m.filename = ""
	m.promptErr = ""
	m.fileList = m.st.ListNames(textExt)
	m.selectedFileIndex = -1
}

func (m model) startExport() (tea.Model, tea.Cmd) {
	if m.pipe.artifact == nil {
		return m, m.notify("export failed: nothing to export", noticeError)
	}
	if m.st.Mode() == capFallback {
		return m.finishExport("")
	}
	m.mode = ModeFileInput
	m.fileOp = FileOpExport
	m.filename = stripExt(m.doc.Name())
	m.promptErr = ""
	m.fileList = nil
	m.selectedFileIndex = -1
	return m, nil
}

func (m model) finishSave(filename string) (tea.Model, tea.Cmd) {
	name, err := saveDocument(m.st, &m.doc, m.text, filename)
	if err != nil {
		if errors.Is(err, errAborted) {
			m.mode = ModeEdit
			return m, nil
		}
		if m.mode == ModeFileInput {
			m.promptErr = err.Error()
			return m, nil
		}
		return m, m.notify("save failed: "+err.Error(), noticeError)
	}
	m.mode = ModeEdit
	m.filename = ""
	m.lastSave = time.Now()
	m.followDocument()
	return m, m.notify("saved "+name, noticeSuccess)
}

func (m model) finishOpen(filename string) (tea.Model, tea.Cmd) {
	text, err := loadDocument(m.st, &m.doc, filename)
	if err != nil {
		if errors.Is(err, errAborted) {
			m.mode = ModeEdit
			return m, nil
		}
		if m.mode == ModeFileInput {
			m.promptErr = err.Error()
			return m, nil
		}
		return m, m.notify("open failed: "+err.Error(), noticeError)
	}
	m.mode = ModeEdit
	m.filename = ""
	m.text = text
	m.cursor = 0
	m.undoStack = nil
	m.redoStack = nil
	m.followDocument()
	m.pipe.cancel()
	cmd := m.notify("opened "+m.doc.DisplayName(), noticeSuccess)
	if errText := m.pipe.run(m.text); errText != "" {
		return m, m.notify("render failed: "+errText, noticeError)
	}
	return m, cmd
}

func (m model) finishExport(filename string) (tea.Model, tea.Cmd) {
	name, err := m.exp.export(&m.doc, m.pipe.artifact, filename)
	if err != nil {
		if errors.Is(err, errAborted) {
			m.mode = ModeEdit
			return m, nil
		}
		if m.mode == ModeFileInput {
			m.promptErr = err.Error()
			return m, nil
		}
		return m, m.notify("export failed: "+err.Error(), noticeError)
	}
	m.mode = ModeEdit
	m.filename = ""
	return m, m.notify("exported "+name, noticeSuccess)
}

func (m model) copyImage() (tea.Model, tea.Cmd) {
	art := m.pipe.artifact
	if art == nil || art.Image == nil {
		return m, m.notify("copy failed: nothing to copy", noticeError)
	}
	if !art.CopyOK {
		return m, m.notify("copy failed: no clipboard tool found", noticeError)
	}
	data, err := rasterizePNG(art.Image)
	if err != nil {
		return m, m.notify("copy failed: "+err.Error(), noticeError)
	}
	if err := writeImageToClipboard(data); err != nil {
		return m, m.notify("copy failed: "+err.Error(), noticeError)
	}
	return m, m.notify("image copied", noticeSuccess)
}

// followDocument points the file watcher at the document's backing
// file when the handle exposes a path, and detaches otherwise.
func (m *model) followDocument() {
	type pather interface{ Path() string }
	if h, ok := m.doc.Handle().(pather); ok {
		m.watch.follow(h.Path())
		return
	}
	m.watch.follow("")
}

func (m *model) newDocument() {
	m.doc.Reset("", nil)
	m.text = ""
	m.cursor = 0
	m.undoStack = nil
	m.redoStack = nil
	m.pipe.cancel()
	m.pipe.run("")
	m.watch.follow("")
}

// promptMatchesList reports whether the typed name still matches the
// highlighted list entry, meaning arrow keys should keep navigating.
func (m *model) promptMatchesList() bool {
	if m.filename == "" {
		return true
	}
	if m.selectedFileIndex < 0 || m.selectedFileIndex >= len(m.fileList) {
		return false
	}
	return m.filename == stripExt(m.fileList[m.selectedFileIndex])
}

func (m model) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeEdit
		m.filename = ""
		m.promptErr = ""
		return m, nil

	case msg.String() == "up":
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 && m.promptMatchesList() {
			if m.selectedFileIndex <= 0 {
				m.selectedFileIndex = len(m.fileList) - 1
			} else {
				m.selectedFileIndex--
			}
			m.filename = stripExt(m.fileList[m.selectedFileIndex])
		}
		return m, nil

	case msg.String() == "down":
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 && m.promptMatchesList() {
			if m.selectedFileIndex < 0 || m.selectedFileIndex >= len(m.fileList)-1 {
				m.selectedFileIndex = 0
			} else {
				m.selectedFileIndex++
			}
			m.filename = stripExt(m.fileList[m.selectedFileIndex])
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		filename := strings.TrimSpace(m.filename)
		if m.fileOp == FileOpOpen && m.selectedFileIndex >= 0 && m.selectedFileIndex < len(m.fileList) && m.promptMatchesList() {
			filename = m.fileList[m.selectedFileIndex]
		}
		switch m.fileOp {
		case FileOpOpen:
			if filename == "" {
				m.promptErr = "enter a filename"
				return m, nil
			}
			return m.finishOpen(ensureExt(filename, textExt))
		case FileOpExport:
			return m.finishExport(filename)
		default:
			return m.finishSave(filename)
		}

	case msg.Type == tea.KeyBackspace:
		if len(m.filename) > 0 {
			m.filename = m.filename[:len(m.filename)-1]
			m.selectedFileIndex = -1
		}
		return m, nil

	default:
		keyStr := msg.String()
		if len(keyStr) == 1 || keyStr == " " {
			m.filename += keyStr
			m.selectedFileIndex = -1
			m.promptErr = ""
		}
		return m, nil
	}
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmOpen:
			m.mode = ModeEdit
			m.startOpenPrompt()
			return m, nil
		case ConfirmNew:
			m.mode = ModeEdit
			m.newDocument()
			return m, nil
		default:
			m.watch.close()
			return m, tea.Quit
		}
	case "n", "N", "escape":
		m.mode = ModeEdit
		return m, nil
	}
	return m, nil
}
