package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	errorCardStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("160")).
			Foreground(lipgloss.Color("203")).
			Padding(0, 1)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Italic(true)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228"))
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.width < 1 || m.height < 2 {
		return ""
	}

	bodyHeight := m.height - 1
	editorW := m.splitWidth
	if editorW > m.width-minPaneWidth {
		editorW = m.width - minPaneWidth
	}
	if editorW < minPaneWidth {
		editorW = minPaneWidth
	}
	previewW := m.width - editorW

	editor := paneStyle.Width(editorW - 2).Height(bodyHeight - 2).Render(m.editorView(editorW-2, bodyHeight-2))
	preview := paneStyle.Width(previewW - 2).Height(bodyHeight - 2).Render(m.previewView(previewW-2, bodyHeight-2))

	body := lipgloss.JoinHorizontal(lipgloss.Top, editor, preview)
	return body + "\n" + m.statusView()
}

// editorView paints the buffer with a block cursor, scrolled so the
// cursor stays visible.
func (m model) editorView(width, height int) string {
	lines := strings.Split(m.text, "\n")
	row, col := m.cursorRowCol()

	// Overlay the cursor cell.
	cur := []rune(lines[row])
	if col < len(cur) {
		cur[col] = '█'
		lines[row] = string(cur)
	} else {
		lines[row] = string(cur) + "█"
	}

	start := 0
	if row >= height {
		start = row - height + 1
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}

	out := make([]string, 0, height)
	for _, line := range lines[start:end] {
		if len(line) > width {
			line = line[:width]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m model) previewView(width, height int) string {
	if m.pipe.renderErr != nil {
		return errorCardStyle.Render("render error\n\n" + m.pipe.renderErr.Error())
	}
	if m.pipe.empty || m.pipe.artifact == nil {
		return placeholderStyle.Render("empty diagram")
	}

	out := make([]string, 0, height)
	for i, line := range m.pipe.artifact.Lines {
		if i >= height {
			break
		}
		if len(line) > width {
			line = line[:width]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m model) statusView() string {
	switch m.mode {
	case ModeFileInput:
		var verb string
		switch m.fileOp {
		case FileOpOpen:
			verb = "open"
		case FileOpExport:
			verb = "export"
		default:
			verb = "save as"
		}
		line := promptStyle.Render(fmt.Sprintf("%s: %s█", verb, m.filename))
		if m.promptErr != "" {
			line += "  " + failStyle.Render(m.promptErr)
		} else if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			line += dimStyle.Render("  (up/down to pick, enter to open, esc to cancel)")
		} else {
			line += dimStyle.Render("  (enter to confirm, esc to cancel)")
		}
		return line

	case ModeConfirm:
		var q string
		switch m.confirmAction {
		case ConfirmOpen:
			q = fmt.Sprintf("discard unsaved changes to %s and open another file? (y/n)", m.doc.DisplayName())
		case ConfirmNew:
			q = fmt.Sprintf("discard unsaved changes to %s? (y/n)", m.doc.DisplayName())
		default:
			q = fmt.Sprintf("quit without saving %s? (y/n)", m.doc.DisplayName())
		}
		return promptStyle.Render(q)
	}

	name := m.doc.DisplayName()
	if m.doc.Dirty() {
		name += "*"
	}
	row, col := m.cursorRowCol()
	left := fmt.Sprintf(" %s  %d:%d  %s  %s", name, row+1, col+1, m.pipe.kind, m.st.Mode())

	if m.notice.text != "" {
		var style lipgloss.Style
		switch m.notice.kind {
		case noticeSuccess:
			style = successStyle
		case noticeError:
			style = failStyle
		default:
			style = infoStyle
		}
		return left + "  " + style.Render(m.notice.text)
	}
	return left + dimStyle.Render("  ctrl+g help")
}

func (m model) helpView() string {
	helpLines := []string{
		"Diaterm Help",
		"============",
		"",
		"Type diagram source in the left pane; the preview on the right",
		"re-renders shortly after you stop typing.",
		"",
		"File Operations:",
		"----------------",
		"  Ctrl+S           Save (in place when the file was opened or saved here)",
		"  Ctrl+O           Open a diagram file",
		"  Ctrl+N           New document",
		"  Ctrl+E           Export preview as PNG image",
		"",
		"Rendering:",
		"----------",
		"  Ctrl+R           Re-render now",
		"  Ctrl+T           Cycle renderer (sequence / flowchart / flowchart-sketch)",
		"  Ctrl+Y           Copy rendered image to clipboard",
		"  Ctrl+B           Copy diagram source to clipboard",
		"",
		"Editing:",
		"--------",
		"  Arrows           Move cursor",
		"  Home/End         Jump to line start/end",
		"  Ctrl+Z / Ctrl+X  Undo / redo",
		"  Alt+H / Alt+L    Shrink / grow the editor pane",
		"",
		"Sequence grammar:",
		"  title: Checkout",
		"  Client -> Server: request",
		"  Server --> Client: response   (dashed)",
		"  participant Gateway           (declare order explicitly)",
		"",
		"Flowchart grammar:",
		"  start: Receive order",
		"  start -> check: has items",
		"  check -> start                (backward edges loop around)",
		"",
		"Lines starting with # are comments in both grammars.",
		"",
		"General:",
		"  Ctrl+G or F1     Toggle this help screen",
		"  Ctrl+Q/Ctrl+C    Quit",
	}
	return strings.Join(helpLines, "\n")
}
