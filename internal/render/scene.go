package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/layout"
	"github.com/ziadkadry99/edition-advisor/internal/viewport"
)

// Style is the visual state of a node box.
type Style string

const (
	StyleQuestion Style = "question"
	StyleTerminal Style = "terminal"
	StyleOnPath   Style = "on-path"
	StyleCurrent  Style = "current"
)

// Paint is the colour set for one node style.
type Paint struct {
	Fill   string
	Stroke string
	Text   string
}

// Palette maps node styles to colours, plus edge colours.
type Palette struct {
	Nodes      map[Style]Paint
	Edge       string
	EdgeOnPath string
	Arrow      string
	Label      string
	LabelBack  string
}

// DefaultPalette returns the stock colours.
func DefaultPalette() Palette {
	return Palette{
		Nodes: map[Style]Paint{
			StyleQuestion: {Fill: "#f3f4f6", Stroke: "#d1d5db", Text: "#1f2937"},
			StyleTerminal: {Fill: "#10b981", Stroke: "#059669", Text: "#ffffff"},
			StyleOnPath:   {Fill: "#e0e7ff", Stroke: "#6366f1", Text: "#1f2937"},
			StyleCurrent:  {Fill: "#4f46e5", Stroke: "#4338ca", Text: "#ffffff"},
		},
		Edge:       "#a5b4fc",
		EdgeOnPath: "#4f46e5",
		Arrow:      "#6366f1",
		Label:      "#6366f1",
		LabelBack:  "#ffffff",
	}
}

// Op is the kind of a draw command.
type Op string

const (
	OpPath    Op = "path"
	OpPolygon Op = "polygon"
	OpRect    Op = "rect"
	OpText    Op = "text"
)

// Command is one drawing instruction in layout coordinates. Consumers apply
// the scene transform themselves.
type Command struct {
	Op    Op     `json:"op"`
	Class string `json:"class,omitempty"`
	Key   string `json:"key,omitempty"` // hierarchy slot the command belongs to

	D      string         `json:"d,omitempty"`
	Points []layout.Point `json:"points,omitempty"`
	Rect   layout.Rect    `json:"rect,omitempty"`
	Radius float64        `json:"radius,omitempty"`

	Text     string       `json:"text,omitempty"`
	At       layout.Point `json:"at,omitempty"`
	FontSize float64      `json:"fontSize,omitempty"`
	Bold     bool         `json:"bold,omitempty"`

	Fill        string  `json:"fill,omitempty"`
	FillOpacity float64 `json:"fillOpacity,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Via     dataset.Choice `json:"via,omitempty"` // answer that led here
	Current bool           `json:"current"`
}

// Scene is everything a host needs to draw one frame.
type Scene struct {
	Size layout.Size
	// Extent is the tree canvas from the layout: never smaller than the
	// viewport less its margins, nor than the levels and widest level need.
	Extent    layout.Size
	Transform viewport.Transform
	Commands  []Command

	Breadcrumb []Crumb
	CurrentID  string
	Question   string
	CanYes     bool
	CanNo      bool
	Edition    *dataset.Edition
	Progress   int
	FullTree   bool
}

const crumbLimit = 30

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "..."
}

func curve(ed *layout.Edge) string {
	return fmt.Sprintf("M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f",
		ed.Start.X, ed.Start.Y, ed.C1.X, ed.C1.Y, ed.C2.X, ed.C2.Y, ed.End.X, ed.End.Y)
}

// commands builds the draw list: edges, arrowheads, edge labels, then nodes
// and their text, so that boxes paint over curve ends.
func commands(res *layout.Result, opts layout.Options, pal Palette, styles map[string]Style, onPath map[string]bool) []Command {
	out := make([]Command, 0, len(res.Edges)*4+len(res.Boxes)*3)

	for _, ed := range res.Edges {
		stroke, width := pal.Edge, 2.0
		if onPath[ed.To.Slot.Key] {
			stroke, width = pal.EdgeOnPath, 3.0
		}
		out = append(out, Command{
			Op: OpPath, Class: "link", Key: ed.To.Slot.Key,
			D: curve(ed), Stroke: stroke, StrokeWidth: width,
		})
	}
	for _, ed := range res.Edges {
		out = append(out, Command{
			Op: OpPolygon, Class: "arrow", Key: ed.To.Slot.Key,
			Points: ed.Arrow[:], Fill: pal.Arrow,
		})
	}
	for _, ed := range res.Edges {
		out = append(out,
			Command{
				Op: OpRect, Class: "edge-label-bg", Key: ed.To.Slot.Key,
				Rect: ed.LabelBox, Radius: 3, Fill: pal.LabelBack, FillOpacity: 0.8,
			},
			Command{
				Op: OpText, Class: "edge-label", Key: ed.To.Slot.Key,
				Text: ed.Label, At: layout.Point{X: ed.LabelAt.X, Y: ed.LabelAt.Y + opts.LabelFontSize*0.35},
				FontSize: opts.LabelFontSize, Bold: true, Fill: pal.Label,
			},
		)
	}

	for _, b := range res.Boxes {
		st := styles[b.Slot.Key]
		paint := pal.Nodes[st]
		out = append(out, Command{
			Op: OpRect, Class: "node " + string(st), Key: b.Slot.Key,
			Rect: b.Rect(), Radius: 8, Fill: paint.Fill, Stroke: paint.Stroke, StrokeWidth: 2,
		})
		for _, l := range b.Lines {
			out = append(out, Command{
				Op: OpText, Class: "node-text", Key: b.Slot.Key,
				Text: l.Text, At: b.Center.Add(l.Offset), FontSize: opts.FontSize, Fill: paint.Text,
			})
		}
	}
	return out
}
