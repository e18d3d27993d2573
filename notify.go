package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeError
)

// notice is a transient status-line message.
type notice struct {
	text string
	kind noticeKind
}

// noticeExpiredMsg dismisses a notice. The sequence guard keeps an old
// expiry from clearing a newer notice.
type noticeExpiredMsg struct {
	seq int
}

func (m *model) notify(text string, kind noticeKind) tea.Cmd {
	m.notice = notice{text: text, kind: kind}
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
