package main

import (
	"fmt"
	"strings"
)

// sequenceRenderer draws participant lifelines with horizontal message
// arrows between them.
//
// Grammar, one statement per line:
//
//	title: Checkout flow
//	participant Client
//	Client -> Server: request
//	Server --> Client: response
//
// Dashed arrows use "-->". Blank lines and lines starting with "#" are
// ignored. Participants are declared implicitly by messages in order
// of first appearance.
type sequenceRenderer struct{}

type seqMessage struct {
	from, to string
	text     string
	dashed   bool
}

type seqDiagram struct {
	title        string
	participants []string
	messages     []seqMessage
}

func (d *seqDiagram) addParticipant(name string) {
	for _, p := range d.participants {
		if p == name {
			return
		}
	}
	d.participants = append(d.participants, name)
}

func (d *seqDiagram) index(name string) int {
	for i, p := range d.participants {
		if p == name {
			return i
		}
	}
	return -1
}

func parseSequence(text string) (*seqDiagram, error) {
	d := &seqDiagram{}
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "title:"); ok {
			d.title = strings.TrimSpace(rest)
			continue
		}
		if rest, ok := strings.CutPrefix(line, "participant "); ok {
			name := strings.TrimSpace(rest)
			if name == "" {
				return nil, fmt.Errorf("line %d: participant needs a name", i+1)
			}
			d.addParticipant(name)
			continue
		}
		from, target, dashed, ok := splitArrow(line)
		if !ok {
			return nil, fmt.Errorf("line %d: cannot parse %q", i+1, line)
		}
		to := target
		msg := ""
		if t, m, found := strings.Cut(target, ":"); found {
			to = strings.TrimSpace(t)
			msg = strings.TrimSpace(m)
		}
		if from == "" || to == "" {
			return nil, fmt.Errorf("line %d: cannot parse %q", i+1, line)
		}
		if from == to {
			return nil, fmt.Errorf("line %d: self-messages are not supported", i+1)
		}
		d.addParticipant(from)
		d.addParticipant(to)
		d.messages = append(d.messages, seqMessage{from: from, to: to, text: msg, dashed: dashed})
	}
	if len(d.participants) == 0 {
		return nil, fmt.Errorf("no participants or messages found")
	}
	return d, nil
}

// splitArrow cuts a message line at its arrow. "-->" is checked before
// "->" so dashed arrows are not misread as plain ones.
func splitArrow(line string) (from, rest string, dashed, ok bool) {
	if f, r, found := strings.Cut(line, "-->"); found {
		return strings.TrimSpace(f), strings.TrimSpace(r), true, true
	}
	if f, r, found := strings.Cut(line, "->"); found {
		return strings.TrimSpace(f), strings.TrimSpace(r), false, true
	}
	return "", "", false, false
}

func (r *sequenceRenderer) Render(text string) (*Artifact, error) {
	d, err := parseSequence(text)
	if err != nil {
		return nil, err
	}
	s := layoutSequence(d)
	lines := s.renderLines()
	dc, err := s.renderImage(themeClean)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Lines:  lines,
		Image:  dc.Image(),
		Width:  dc.Width(),
		Height: dc.Height(),
	}, nil
}

func layoutSequence(d *seqDiagram) *scene {
	n := len(d.participants)

	// Box widths follow participant names; column gaps stretch to fit
	// the longest message label crossing them.
	boxW := make([]int, n)
	for i, p := range d.participants {
		boxW[i] = len(p) + 4
	}
	gap := make([]int, n)
	for i := range gap {
		gap[i] = 6
	}
	for _, m := range d.messages {
		a, b := d.index(m.from), d.index(m.to)
		if a > b {
			a, b = b, a
		}
		span := 0
		for i := a; i < b; i++ {
			span += gap[i]
		}
		for i := a + 1; i < b; i++ {
			span += boxW[i]
		}
		need := len(m.text) + 4
		if need > span && b == a+1 {
			gap[a] = need
		}
	}

	centers := make([]int, n)
	x := 0
	for i := 0; i < n; i++ {
		centers[i] = x + boxW[i]/2
		x += boxW[i]
		if i < n-1 {
			x += gap[i]
		}
	}

	s := &scene{}
	top := 0
	if d.title != "" {
		s.addLabel(label{x: 0, y: 0, text: d.title})
		top = 2
	}

	boxH := 3
	lifeTop := top + boxH
	lifeBottom := lifeTop + 1 + len(d.messages)*3
	if len(d.messages) == 0 {
		lifeBottom = lifeTop + 2
	}

	// Lifelines first so message arrows overwrite them at crossings.
	for i := range d.participants {
		s.addSeg(seg{x1: centers[i], y1: lifeTop, x2: centers[i], y2: lifeBottom, dashed: true})
	}

	for mi, m := range d.messages {
		y := lifeTop + 2 + mi*3
		a, b := d.index(m.from), d.index(m.to)
		x1, x2 := centers[a], centers[b]
		s.addSeg(seg{x1: x1, y1: y, x2: x2, y2: y, dashed: m.dashed, headEnd: true})
		if m.text != "" {
			lo := x1
			if x2 < lo {
				lo = x2
			}
			width := x2 - x1
			if width < 0 {
				width = -width
			}
			lx := lo + (width-len(m.text))/2
			if lx < 0 {
				lx = 0
			}
			s.addLabel(label{x: lx, y: y - 1, text: m.text})
		}
	}

	// Participant boxes top and bottom bracket the lifelines.
	for i, p := range d.participants {
		bx := centers[i] - boxW[i]/2
		s.addBox(box{x: bx, y: top, w: boxW[i], h: boxH, lines: []string{p}})
		s.addBox(box{x: bx, y: lifeBottom, w: boxW[i], h: boxH, lines: []string{p}})
	}

	return s
}
