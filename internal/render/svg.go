package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo/float"
)

// errWriter remembers the first write error, since the SVG canvas drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG draws the scene as a standalone SVG document of the scene's size.
func WriteSVG(w io.Writer, sc *Scene) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(sc.Size.W, sc.Size.H, `font-family="Inter, Helvetica, Arial, sans-serif"`)
	canvas.Title(sc.Question)
	if sc.Edition != nil {
		canvas.Desc("Рекомендуемая редакция: " + sc.Edition.Name)
	}
	canvas.Rect(0, 0, sc.Size.W, sc.Size.H, "fill:#ffffff")
	canvas.Gtransform(sc.Transform.String())
	for _, c := range sc.Commands {
		drawCommand(canvas, c)
	}
	canvas.Gend()
	canvas.End()
	return ew.err
}

func drawCommand(canvas *svg.SVG, c Command) {
	attrs := []string{}
	if c.Class != "" {
		attrs = append(attrs, fmt.Sprintf(`class=%q`, c.Class))
	}
	if c.Key != "" {
		attrs = append(attrs, fmt.Sprintf(`data-key=%q`, c.Key))
	}
	attrs = append(attrs, paintStyle(c))

	switch c.Op {
	case OpPath:
		canvas.Path(c.D, attrs...)
	case OpPolygon:
		xs := make([]float64, len(c.Points))
		ys := make([]float64, len(c.Points))
		for i, p := range c.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		canvas.Polygon(xs, ys, attrs...)
	case OpRect:
		r := c.Rect
		if c.Radius > 0 {
			canvas.Roundrect(r.X, r.Y, r.W, r.H, c.Radius, c.Radius, attrs...)
		} else {
			canvas.Rect(r.X, r.Y, r.W, r.H, attrs...)
		}
	case OpText:
		canvas.Text(c.At.X, c.At.Y, c.Text, attrs...)
	}
}

func paintStyle(c Command) string {
	var b strings.Builder
	if c.Fill != "" {
		fmt.Fprintf(&b, "fill:%s;", c.Fill)
	} else {
		b.WriteString("fill:none;")
	}
	if c.FillOpacity > 0 {
		fmt.Fprintf(&b, "fill-opacity:%.2f;", c.FillOpacity)
	}
	if c.Stroke != "" {
		fmt.Fprintf(&b, "stroke:%s;stroke-width:%.1f;", c.Stroke, c.StrokeWidth)
	}
	if c.Op == OpText {
		fmt.Fprintf(&b, "font-size:%.0fpx;text-anchor:middle;", c.FontSize)
		if c.Bold {
			b.WriteString("font-weight:bold;")
		}
	}
	return b.String()
}
