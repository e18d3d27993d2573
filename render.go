package main

import (
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RendererKind selects which diagram grammar and drawing style the
// preview uses.
type RendererKind int

const (
	rendererSequence RendererKind = iota
	rendererFlowchart
	rendererFlowchartSketch
)

func (k RendererKind) String() string {
	switch k {
	case rendererSequence:
		return "sequence"
	case rendererFlowchart:
		return "flowchart"
	default:
		return "flowchart-sketch"
	}
}

func (k RendererKind) next() RendererKind {
	switch k {
	case rendererSequence:
		return rendererFlowchart
	case rendererFlowchart:
		return rendererFlowchartSketch
	default:
		return rendererSequence
	}
}

// Artifact is the output of a successful render: the text-mode preview
// plus the image used for PNG export and clipboard copies.
type Artifact struct {
	Lines  []string
	Image  image.Image
	Width  int
	Height int
	CopyOK bool
}

// Renderer turns diagram source into an artifact.
type Renderer interface {
	Render(text string) (*Artifact, error)
}

func rendererFor(kind RendererKind) Renderer {
	switch kind {
	case rendererSequence:
		return &sequenceRenderer{}
	case rendererFlowchart:
		return &flowchartRenderer{theme: themeClean}
	default:
		return &flowchartRenderer{theme: themeSketch}
	}
}

// renderTickMsg fires when a debounce window elapses. Stale ticks
// carry an old sequence number and are dropped.
type renderTickMsg struct {
	seq int
}

// renderPipeline debounces edits and keeps the last good artifact
// around so exports and the preview survive transient parse errors.
type renderPipeline struct {
	kind      RendererKind
	window    time.Duration
	seq       int
	artifact  *Artifact
	renderErr error
	empty     bool

	// render is swappable for tests.
	render func(kind RendererKind, text string) (*Artifact, error)
}

func newRenderPipeline() renderPipeline {
	return renderPipeline{
		window: debounceWindow,
		empty:  true,
		render: func(kind RendererKind, text string) (*Artifact, error) {
			return rendererFor(kind).Render(text)
		},
	}
}

// schedule starts (or restarts) the debounce window. Each call bumps
// the sequence, so only the tick from the latest edit survives.
func (p *renderPipeline) schedule() tea.Cmd {
	p.seq++
	seq := p.seq
	return tea.Tick(p.window, func(time.Time) tea.Msg {
		return renderTickMsg{seq: seq}
	})
}

// current reports whether a tick belongs to the most recent schedule.
func (p *renderPipeline) current(msg renderTickMsg) bool {
	return msg.seq == p.seq
}

// cancel invalidates any pending tick without scheduling a new one.
func (p *renderPipeline) cancel() {
	p.seq++
}

// run renders text now and returns a notice-worthy message, or "".
// Empty input clears the preview without invoking a renderer. A failed
// render records the error but keeps the previous artifact.
func (p *renderPipeline) run(text string) string {
	if strings.TrimSpace(text) == "" {
		p.empty = true
		p.artifact = nil
		p.renderErr = nil
		return ""
	}
	p.empty = false
	art, err := p.render(p.kind, text)
	if err != nil {
		p.renderErr = err
		return err.Error()
	}
	art.CopyOK = clipboardAvailable()
	p.artifact = art
	p.renderErr = nil
	return ""
}
