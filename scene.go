package main

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Theme controls the image painter's line treatment.
type Theme int

const (
	themeClean Theme = iota
	themeSketch
)

// Character cell dimensions (pixels per character).
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

type box struct {
	x, y, w, h int
	lines      []string
}

type seg struct {
	x1, y1, x2, y2 int
	dashed         bool
	headStart      bool
	headEnd        bool
}

type label struct {
	x, y int
	text string
}

// scene is the layout renderers build: boxes, line segments and free
// labels in character-cell coordinates. It paints itself either as
// rune rows for the preview pane or as an image for export.
type scene struct {
	w, h   int
	boxes  []box
	segs   []seg
	labels []label
}

func (s *scene) grow(x, y int) {
	if x+1 > s.w {
		s.w = x + 1
	}
	if y+1 > s.h {
		s.h = y + 1
	}
}

func (s *scene) addBox(b box) {
	s.boxes = append(s.boxes, b)
	s.grow(b.x+b.w-1, b.y+b.h-1)
}

func (s *scene) addSeg(g seg) {
	s.segs = append(s.segs, g)
	s.grow(g.x1, g.y1)
	s.grow(g.x2, g.y2)
}

func (s *scene) addLabel(l label) {
	s.labels = append(s.labels, l)
	s.grow(l.x+len(l.text)-1, l.y)
}

// renderLines paints the scene as rows of runes. Segments go down
// first, then boxes, then labels, so box borders and text win over
// crossing lines.
func (s *scene) renderLines() []string {
	grid := make([][]rune, s.h)
	for y := range grid {
		grid[y] = make([]rune, s.w)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	for _, g := range s.segs {
		s.drawSeg(grid, g)
	}
	for _, b := range s.boxes {
		s.drawBox(grid, b)
	}
	for _, l := range s.labels {
		for i, r := range l.text {
			s.put(grid, l.x+i, l.y, r)
		}
	}
	lines := make([]string, s.h)
	for y := range grid {
		lines[y] = string(grid[y])
	}
	return lines
}

func (s *scene) put(grid [][]rune, x, y int, r rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
}

func (s *scene) drawSeg(grid [][]rune, g seg) {
	if g.y1 == g.y2 {
		lo, hi := g.x1, g.x2
		if lo > hi {
			lo, hi = hi, lo
		}
		for x := lo; x <= hi; x++ {
			if g.dashed && (x-lo)%2 == 1 {
				continue
			}
			s.put(grid, x, g.y1, '-')
		}
	} else {
		lo, hi := g.y1, g.y2
		if lo > hi {
			lo, hi = hi, lo
		}
		for y := lo; y <= hi; y++ {
			if g.dashed && (y-lo)%2 == 1 {
				continue
			}
			s.put(grid, g.x1, y, '|')
		}
	}
	if g.headEnd {
		s.put(grid, g.x2, g.y2, headRune(g.x1, g.y1, g.x2, g.y2))
	}
	if g.headStart {
		s.put(grid, g.x1, g.y1, headRune(g.x2, g.y2, g.x1, g.y1))
	}
}

func headRune(fromX, fromY, toX, toY int) rune {
	switch {
	case toX > fromX:
		return '>'
	case toX < fromX:
		return '<'
	case toY > fromY:
		return 'v'
	default:
		return '^'
	}
}

func (s *scene) drawBox(grid [][]rune, b box) {
	for x := b.x; x < b.x+b.w; x++ {
		s.put(grid, x, b.y, '-')
		s.put(grid, x, b.y+b.h-1, '-')
	}
	for y := b.y; y < b.y+b.h; y++ {
		s.put(grid, b.x, y, '|')
		s.put(grid, b.x+b.w-1, y, '|')
	}
	s.put(grid, b.x, b.y, '+')
	s.put(grid, b.x+b.w-1, b.y, '+')
	s.put(grid, b.x, b.y+b.h-1, '+')
	s.put(grid, b.x+b.w-1, b.y+b.h-1, '+')
	for i, line := range b.lines {
		tx := b.x + (b.w-len(line))/2
		for j, r := range line {
			s.put(grid, tx+j, b.y+1+i, r)
		}
	}
}

// jitter perturbs image coordinates for the sketch theme. The source
// is fixed so the same scene always draws the same wobble.
type jitter struct {
	rng *rand.Rand
	amp float64
}

func newJitter(theme Theme) *jitter {
	if theme != themeSketch {
		return &jitter{amp: 0}
	}
	return &jitter{rng: rand.New(rand.NewSource(1)), amp: 1.5}
}

func (j *jitter) shift(v float64) float64 {
	if j.amp == 0 {
		return v
	}
	return v + (j.rng.Float64()*2-1)*j.amp
}

// renderImage paints the scene onto a white canvas with black strokes,
// one character cell per 8x16 pixel block.
func (s *scene) renderImage(theme Theme) (*gg.Context, error) {
	imageWidth := int(float64(s.w+2) * cellWidth)
	imageHeight := int(float64(s.h+2) * cellHeight)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	j := newJitter(theme)
	// One cell of padding keeps strokes off the image edge.
	px := func(x int) float64 { return float64(x+1) * cellWidth }
	py := func(y int) float64 { return float64(y+1) * cellHeight }

	dc.SetLineWidth(1.0)
	for _, g := range s.segs {
		x1, y1 := j.shift(px(g.x1)), j.shift(py(g.y1))
		x2, y2 := j.shift(px(g.x2)), j.shift(py(g.y2))
		if g.dashed {
			dc.SetDash(4, 4)
		}
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		dc.SetDash()
		if g.headEnd {
			drawArrowheadImage(dc, x1, y1, x2, y2)
		}
		if g.headStart {
			drawArrowheadImage(dc, x2, y2, x1, y1)
		}
	}

	for _, b := range s.boxes {
		x := j.shift(px(b.x))
		y := j.shift(py(b.y))
		w := float64(b.w) * cellWidth
		h := float64(b.h) * cellHeight
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()
		for i, line := range b.lines {
			tw, _ := dc.MeasureString(line)
			tx := x + (w-tw)/2
			dc.DrawString(line, tx, y+float64(i+2)*cellHeight-4)
		}
	}

	for _, l := range s.labels {
		dc.DrawString(l.text, px(l.x), py(l.y)+cellHeight-4)
	}

	return dc, nil
}

// drawArrowheadImage fills a triangle pointing from (fx,fy) toward
// (tx,ty) with its tip at the destination.
func drawArrowheadImage(dc *gg.Context, fx, fy, tx, ty float64) {
	dx := tx - fx
	dy := ty - fy
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	arrowSize := 6.0
	arrowAngle := 0.5 // radians

	baseX1 := tx - arrowSize*dx + arrowSize*dy*arrowAngle
	baseY1 := ty - arrowSize*dy - arrowSize*dx*arrowAngle
	baseX2 := tx - arrowSize*dx - arrowSize*dy*arrowAngle
	baseY2 := ty - arrowSize*dy + arrowSize*dx*arrowAngle

	dc.MoveTo(tx, ty)
	dc.LineTo(baseX1, baseY1)
	dc.LineTo(baseX2, baseY2)
	dc.ClosePath()
	dc.Fill()
}
