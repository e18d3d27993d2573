package main

import (
	"fmt"
	"strings"
)

// flowchartRenderer stacks nodes vertically and routes edges along
// side rails.
//
// Grammar, one statement per line:
//
//	start: Receive order
//	check: Validate
//	start -> check: has items
//	check -> done
//	a -> b -> c: label on last hop
//
// "id: label" declares a node; a bare id names a node with itself as
// the label. Chained arrows expand to pairwise edges with any label
// attached to the final hop. Blank lines and "#" comments are ignored.
type flowchartRenderer struct {
	theme Theme
}

type flowNode struct {
	id    string
	label string
}

type flowEdge struct {
	from, to string
	label    string
}

type flowGraph struct {
	nodes []flowNode
	edges []flowEdge
}

func (g *flowGraph) addNode(id, label string) {
	for i, n := range g.nodes {
		if n.id == id {
			if label != "" {
				g.nodes[i].label = label
			}
			return
		}
	}
	if label == "" {
		label = id
	}
	g.nodes = append(g.nodes, flowNode{id: id, label: label})
}

func (g *flowGraph) index(id string) int {
	for i, n := range g.nodes {
		if n.id == id {
			return i
		}
	}
	return -1
}

func parseFlowchart(text string) (*flowGraph, error) {
	g := &flowGraph{}
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "->") {
			// Node declaration or bare id.
			if id, lbl, found := strings.Cut(line, ":"); found {
				id = strings.TrimSpace(id)
				lbl = strings.TrimSpace(lbl)
				if id == "" || lbl == "" {
					return nil, fmt.Errorf("line %d: cannot parse %q", i+1, line)
				}
				g.addNode(id, lbl)
			} else {
				g.addNode(line, "")
			}
			continue
		}

		// Edge chain, label allowed after the last hop only.
		edgeLabel := ""
		body := line
		lastArrow := strings.LastIndex(line, "->")
		if colon := strings.Index(line[lastArrow:], ":"); colon >= 0 {
			at := lastArrow + colon
			edgeLabel = strings.TrimSpace(line[at+1:])
			body = line[:at]
		}
		parts := strings.Split(body, "->")
		ids := make([]string, 0, len(parts))
		for _, p := range parts {
			id := strings.TrimSpace(p)
			if id == "" {
				return nil, fmt.Errorf("line %d: cannot parse %q", i+1, line)
			}
			ids = append(ids, id)
		}
		for j := 0; j < len(ids)-1; j++ {
			from, to := ids[j], ids[j+1]
			if from == to {
				return nil, fmt.Errorf("line %d: self-loops are not supported", i+1)
			}
			g.addNode(from, "")
			g.addNode(to, "")
			lbl := ""
			if j == len(ids)-2 {
				lbl = edgeLabel
			}
			g.edges = append(g.edges, flowEdge{from: from, to: to, label: lbl})
		}
	}
	if len(g.nodes) == 0 {
		return nil, fmt.Errorf("no nodes found")
	}
	return g, nil
}

func (r *flowchartRenderer) Render(text string) (*Artifact, error) {
	g, err := parseFlowchart(text)
	if err != nil {
		return nil, err
	}
	s := layoutFlowchart(g)
	lines := s.renderLines()
	dc, err := s.renderImage(r.theme)
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

func layoutFlowchart(g *flowGraph) *scene {
	n := len(g.nodes)

	maxW := 0
	for _, node := range g.nodes {
		if w := len(node.label) + 4; w > maxW {
			maxW = w
		}
	}

	// Backward edges route up the left side, so reserve rail room for
	// them before placing the node column.
	backward := 0
	for _, e := range g.edges {
		a, b := g.index(e.from), g.index(e.to)
		if b <= a {
			backward++
		}
	}
	left := 1 + backward*2
	centerX := left + maxW/2
	rightBase := left + maxW + 1

	// Nodes stack top to bottom, five rows apart.
	s := &scene{}
	boxY := make([]int, n)
	for i, node := range g.nodes {
		y := 1 + i*5
		boxY[i] = y
		w := len(node.label) + 4
		s.addBox(box{x: centerX - w/2, y: y, w: w, h: 3, lines: []string{node.label}})
	}

	rightRail := 0
	leftRail := 0
	for _, e := range g.edges {
		a, b := g.index(e.from), g.index(e.to)
		switch {
		case b == a+1:
			// Straight hop down the spine. The head stops one row
			// short of the target box so its border is not clobbered.
			y1 := boxY[a] + 3
			y2 := boxY[b] - 1
			s.addSeg(seg{x1: centerX, y1: y1, x2: centerX, y2: y2, headEnd: true})
			if e.label != "" {
				s.addLabel(label{x: centerX + 2, y: (y1 + y2) / 2, text: e.label})
			}
		case b > a+1:
			// Forward skip: out the right side, down, back in.
			rail := rightBase + rightRail*2
			rightRail++
			y1 := boxY[a] + 1
			y2 := boxY[b] + 1
			x1 := centerX + (len(g.nodes[a].label)+4)/2
			x2 := centerX + (len(g.nodes[b].label)+4)/2
			s.addSeg(seg{x1: x1, y1: y1, x2: rail, y2: y1})
			s.addSeg(seg{x1: rail, y1: y1, x2: rail, y2: y2})
			s.addSeg(seg{x1: rail, y1: y2, x2: x2 + 1, y2: y2, headEnd: true})
			if e.label != "" {
				s.addLabel(label{x: rail + 2, y: (y1 + y2) / 2, text: e.label})
			}
		default:
			// Backward: out the left side, up, back in.
			leftRail++
			rail := left - leftRail*2
			if rail < 0 {
				rail = 0
			}
			y1 := boxY[a] + 1
			y2 := boxY[b] + 1
			x1 := centerX - (len(g.nodes[a].label)+4)/2
			x2 := centerX - (len(g.nodes[b].label)+4)/2
			s.addSeg(seg{x1: x1, y1: y1, x2: rail, y2: y1})
			s.addSeg(seg{x1: rail, y1: y1, x2: rail, y2: y2})
			s.addSeg(seg{x1: rail, y1: y2, x2: x2 - 1, y2: y2, headEnd: true})
			if e.label != "" {
				s.addLabel(label{x: rail + 1, y: (y1 + y2) / 2, text: e.label})
			}
		}
	}

	return s
}
