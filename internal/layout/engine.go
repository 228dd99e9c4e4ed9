// Package layout places the decision hierarchy on a 2D canvas: one box per
// slot, one labelled curve per edge, and the canvas extents around them.
// Depth runs along X and breadth along Y.
package layout

import (
	"math"
	"sync"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
)

// Options controls node geometry and spacing.
type Options struct {
	NodeWidth  float64
	NodeHeight float64

	// Spacing factors multiply the node size to get the distance between
	// neighbouring slots along each axis.
	BreadthSpacing float64
	DepthSpacing   float64

	// Separation between neighbours, in units of breadth spacing.
	SiblingSeparation float64
	CousinSeparation  float64

	Margin        float64
	// ExtentSpacing multiplies the node size when sizing the canvas.
	ExtentSpacing float64

	FontSize    float64
	LineHeight  float64 // in ems
	TextPadding float64 // horizontal padding subtracted from NodeWidth

	LabelFontSize float64
	LabelOffset   float64
	LabelPadding  float64
	YesLabel      string
	NoLabel       string

	ArrowLength float64
	ArrowWidth  float64
}

// DefaultOptions returns the stock geometry.
func DefaultOptions() Options {
	return Options{
		NodeWidth:         180,
		NodeHeight:        80,
		BreadthSpacing:    1.5,
		DepthSpacing:      1.8,
		SiblingSeparation: 1.2,
		CousinSeparation:  1.8,
		Margin:            40,
		ExtentSpacing:     1.8,
		FontSize:          12,
		LineHeight:        1.2,
		TextPadding:       24,
		LabelFontSize:     11,
		LabelOffset:       10,
		LabelPadding:      3,
		YesLabel:          "Да",
		NoLabel:           "Нет",
		ArrowLength:       8,
		ArrowWidth:        8,
	}
}

// Line is one wrapped line of node text. Offset is the baseline position
// relative to the box center.
type Line struct {
	Text   string
	Offset Point
	Width  float64
}

// Box is the placement of one hierarchy slot.
type Box struct {
	Slot   *tree.Node
	Center Point
	W, H   float64
	Lines  []Line
}

// Rect returns the box outline.
func (b *Box) Rect() Rect { return RectAround(b.Center, b.W, b.H) }

// Edge is a parent-to-child connection drawn as a cubic curve.
type Edge struct {
	From, To *Box
	Choice   dataset.Choice
	Label    string

	Start, C1, C2, End Point
	Arrow              [3]Point // tip first

	LabelAt  Point // center of the label text
	LabelBox Rect
}

// Result is a complete layout for one viewport size.
type Result struct {
	Boxes []*Box // slot pre-order
	Edges []*Edge
	// Bounds encloses every box.
	Bounds Rect

	TreeWidth     float64
	TreeHeight    float64
	MaxDepth      int
	MaxLevelWidth int

	byKey map[string]*Box
}

// Box returns the placement of the slot with the given key.
func (r *Result) Box(key string) (*Box, bool) {
	b, ok := r.byKey[key]
	return b, ok
}

// HitTest returns the topmost box containing p.
func (r *Result) HitTest(p Point) (*Box, bool) {
	for i := len(r.Boxes) - 1; i >= 0; i-- {
		if r.Boxes[i].Rect().Contains(p) {
			return r.Boxes[i], true
		}
	}
	return nil, false
}

// Engine lays out hierarchies. Placements depend only on the hierarchy and
// are memoized; extents are recomputed for each viewport size.
type Engine struct {
	opts    Options
	measure Measurer

	mu    sync.Mutex
	cache map[*tree.Hierarchy]*Result
}

// NewEngine returns an engine with the given options and text measurer.
func NewEngine(opts Options, m Measurer) *Engine {
	return &Engine{opts: opts, measure: m, cache: make(map[*tree.Hierarchy]*Result)}
}

// Options returns the engine geometry.
func (e *Engine) Options() Options { return e.opts }

// Layout places h for a viewport of the given size. The returned result
// shares boxes and edges with other results for h; callers must not modify them.
func (e *Engine) Layout(h *tree.Hierarchy, viewport Size) *Result {
	base := e.placement(h)
	res := *base
	o := e.opts
	res.TreeWidth = math.Max(viewport.W-2*o.Margin, float64(res.MaxDepth)*o.NodeWidth*o.ExtentSpacing)
	res.TreeHeight = math.Max(viewport.H-2*o.Margin, float64(res.MaxLevelWidth)*o.NodeHeight*o.ExtentSpacing)
	return &res
}

func (e *Engine) placement(h *tree.Hierarchy) *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	if r, ok := e.cache[h]; ok {
		return r
	}
	r := e.place(h)
	e.cache[h] = r
	return r
}

func (e *Engine) separation(a, b *tree.Node) float64 {
	if a.Parent == b.Parent {
		return e.opts.SiblingSeparation
	}
	return e.opts.CousinSeparation
}

func (e *Engine) place(h *tree.Hierarchy) *Result {
	o := e.opts
	breadth := tidy(h, e.separation)
	dx := o.NodeHeight * o.BreadthSpacing
	dy := o.NodeWidth * o.DepthSpacing

	res := &Result{
		Boxes:         make([]*Box, 0, h.Len()),
		MaxDepth:      h.MaxDepth(),
		MaxLevelWidth: h.MaxLevelWidth(),
		byKey:         make(map[string]*Box, h.Len()),
	}
	for _, s := range h.Slots() {
		b := &Box{
			Slot:   s,
			Center: Point{X: float64(s.Depth) * dy, Y: breadth[s.Index] * dx},
			W:      o.NodeWidth,
			H:      o.NodeHeight,
			Lines:  e.lines(s.Decision.Text()),
		}
		res.Boxes = append(res.Boxes, b)
		res.byKey[s.Key] = b
		res.Bounds = res.Bounds.Union(b.Rect())
	}
	for _, s := range h.Slots() {
		for _, c := range s.Children {
			res.Edges = append(res.Edges, e.edge(res.byKey[s.Key], res.byKey[c.Key], c.Branch))
		}
	}
	return res
}

// lines wraps text and centers the block vertically on the box center.
func (e *Engine) lines(text string) []Line {
	o := e.opts
	wrapped := Wrap(text, o.NodeWidth-o.TextPadding, o.FontSize, e.measure)
	step := o.FontSize * o.LineHeight
	top := -step * float64(len(wrapped)-1) / 2
	// Shift from the middle of a line to its baseline.
	baseline := o.FontSize * 0.35
	out := make([]Line, len(wrapped))
	for i, t := range wrapped {
		out[i] = Line{
			Text:   t,
			Offset: Point{X: 0, Y: top + float64(i)*step + baseline},
			Width:  e.measure.Measure(t, o.FontSize),
		}
	}
	return out
}

func (e *Engine) edge(from, to *Box, c dataset.Choice) *Edge {
	o := e.opts
	start := Point{X: from.Center.X + from.W/2, Y: from.Center.Y}
	end := Point{X: to.Center.X - to.W/2, Y: to.Center.Y}
	mx := (start.X + end.X) / 2
	ed := &Edge{
		From:   from,
		To:     to,
		Choice: c,
		Label:  o.YesLabel,
		Start:  start,
		C1:     Point{X: mx, Y: start.Y},
		C2:     Point{X: mx, Y: end.Y},
		End:    end,
	}
	if c == dataset.No {
		ed.Label = o.NoLabel
	}

	ed.Arrow = arrowhead(ed.C2, end, o.ArrowLength, o.ArrowWidth)

	mid := cubic(ed.Start, ed.C1, ed.C2, ed.End, 0.5)
	ed.LabelAt = mid.Add(upwardNormal(cubicTangent(ed.Start, ed.C1, ed.C2, ed.End, 0.5)).Scale(o.LabelOffset))
	w := e.measure.Measure(ed.Label, o.LabelFontSize)
	ed.LabelBox = RectAround(ed.LabelAt, w, o.LabelFontSize*o.LineHeight).Inset(o.LabelPadding)
	return ed
}

// arrowhead returns a triangle whose tip sits at tip, pointing away from from.
func arrowhead(from, tip Point, length, width float64) [3]Point {
	d := tip.Sub(from)
	l := d.Len()
	if l == 0 {
		d, l = Point{X: 1}, 1
	}
	u := d.Scale(1 / l)
	n := Point{X: -u.Y, Y: u.X}
	base := tip.Sub(u.Scale(length))
	return [3]Point{
		tip,
		base.Add(n.Scale(width / 2)),
		base.Sub(n.Scale(width / 2)),
	}
}

// upwardNormal returns the unit normal of tangent t that points up the screen.
func upwardNormal(t Point) Point {
	l := t.Len()
	if l == 0 {
		return Point{Y: -1}
	}
	n := Point{X: -t.Y / l, Y: t.X / l}
	switch {
	case n.Y > 0:
		return n.Scale(-1)
	case n.Y == 0:
		return Point{Y: -1}
	}
	return n
}
