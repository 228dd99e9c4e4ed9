package render

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/layout"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
	"github.com/ziadkadry99/edition-advisor/internal/viewport"
)

var testSize = layout.Size{W: 800, H: 600}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSurface(t *testing.T, observer func(*dataset.Edition)) *Surface {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	s := NewSurface(dataset.Default(), layout.NewEngine(layout.DefaultOptions(), layout.RuneMeasurer(0.6)),
		Options{Profile: viewport.Explorer, Clock: clock, Logger: quietLogger()}, observer)
	if err := s.Mount(testSize); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	s.Settle()
	return s
}

func findCommand(sc *Scene, op Op, key string) (Command, bool) {
	for _, c := range sc.Commands {
		if c.Op == op && c.Key == key && c.Class != "edge-label-bg" {
			return c, true
		}
	}
	return Command{}, false
}

func TestMountRequiresSize(t *testing.T) {
	s := NewSurface(dataset.Default(), layout.NewEngine(layout.DefaultOptions(), layout.RuneMeasurer(0.6)), Options{Logger: quietLogger()}, nil)
	if err := s.Mount(layout.Size{}); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("Mount(0x0) = %v, want ErrNotMounted", err)
	}
	if _, err := s.Frame(); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Frame before mount = %v", err)
	}
	if _, err := s.Click(layout.Point{}); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Click before mount = %v", err)
	}
	// A later resize with a real size mounts it.
	if err := s.Resize(testSize); err != nil || !s.Mounted() {
		t.Errorf("Resize after zero mount: %v mounted=%v", err, s.Mounted())
	}
}

func TestInitialFrame(t *testing.T) {
	s := newTestSurface(t, nil)
	sc, err := s.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if sc.CurrentID != dataset.RootID || !sc.CanYes || !sc.CanNo || sc.Progress != 0 || sc.Edition != nil {
		t.Errorf("unexpected initial scene: %+v", sc)
	}
	if want := (viewport.Transform{Scale: 0.8, X: 400, Y: 300}); sc.Transform != want {
		t.Errorf("transform %+v, want %+v", sc.Transform, want)
	}
	if len(sc.Breadcrumb) != 1 || !sc.Breadcrumb[0].Current {
		t.Errorf("breadcrumb %+v", sc.Breadcrumb)
	}
	root, ok := findCommand(sc, OpRect, "root")
	if !ok || root.Class != "node current" {
		t.Errorf("root rect %+v", root)
	}
	if s.LastFrame() != sc {
		t.Error("LastFrame should return the latest scene")
	}
}

func TestAnswerMovesHighlightAndViewport(t *testing.T) {
	s := newTestSurface(t, nil)
	for _, c := range []dataset.Choice{dataset.No, dataset.Yes} {
		if err := s.Answer(c); err != nil {
			t.Fatalf("Answer(%s): %v", c, err)
		}
	}
	if s.CurrentKey() != "root/no/yes" {
		t.Fatalf("current key %q", s.CurrentKey())
	}
	if !s.Viewport().Animating() {
		t.Error("answer should start a centering animation")
	}
	s.Settle()

	sc, err := s.Frame()
	if err != nil {
		t.Fatal(err)
	}
	styles := map[string]string{
		"root":        "node on-path",
		"root/no":     "node on-path",
		"root/no/yes": "node current",
		"root/yes":    "node question",
		"root/no/no":  "node terminal",
	}
	for key, want := range styles {
		c, ok := findCommand(sc, OpRect, key)
		if !ok || c.Class != want {
			t.Errorf("%s: class %q, want %q", key, c.Class, want)
		}
	}
	cur, _ := findCommand(sc, OpRect, "root/no/yes")
	center := sc.Transform.Apply(cur.Rect.Center())
	if math.Abs(center.X-400) > 1e-6 || math.Abs(center.Y-300) > 1e-6 {
		t.Errorf("current node drawn at %v, want viewport center", center)
	}
	link, _ := findCommand(sc, OpPath, "root/no/yes")
	if link.StrokeWidth != 3 {
		t.Errorf("on-path link width %v", link.StrokeWidth)
	}

	if len(sc.Breadcrumb) != 3 || sc.Breadcrumb[1].Via != dataset.No || sc.Breadcrumb[2].Via != dataset.Yes {
		t.Errorf("breadcrumb %+v", sc.Breadcrumb)
	}
}

func TestTerminalNotifiesObserver(t *testing.T) {
	var got []*dataset.Edition
	s := newTestSurface(t, func(ed *dataset.Edition) { got = append(got, ed) })
	_ = s.Answer(dataset.No)
	_ = s.Answer(dataset.No)

	if len(got) != 2 || got[0] != nil || got[1] == nil || got[1].ID != "community" {
		t.Fatalf("observer calls %+v", got)
	}
	sc, err := s.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if sc.Progress != 100 || sc.CanYes || sc.CanNo || sc.Edition.ID != "community" {
		t.Errorf("terminal scene %+v", sc)
	}

	s.Reset()
	if got[len(got)-1] != nil {
		t.Error("reset should notify nil")
	}
	if s.CurrentKey() != "root" {
		t.Errorf("after reset current key %q", s.CurrentKey())
	}
}

func TestClick(t *testing.T) {
	s := newTestSurface(t, nil)
	sc, _ := s.Frame()
	box, ok := findCommand(sc, OpRect, "root/yes")
	if !ok {
		t.Fatal("no rect for root/yes")
	}
	id, err := s.Click(sc.Transform.Apply(box.Rect.Center()))
	if err != nil || id != "fstek_cert_node" {
		t.Fatalf("Click = %q, %v", id, err)
	}
	if s.Machine().Current().ID() != "fstek_cert_node" {
		t.Errorf("click did not move traversal")
	}

	id, err = s.Click(layout.Point{X: 0, Y: 0})
	if err != nil || id != "" {
		t.Errorf("click on empty canvas = %q, %v", id, err)
	}
	if s.Machine().Current().ID() != "fstek_cert_node" {
		t.Error("a miss must not change state")
	}
}

func TestToggleFullTree(t *testing.T) {
	s := newTestSurface(t, nil)
	if !s.ToggleFullTree() {
		t.Fatal("expected full-tree mode")
	}
	s.Settle()
	if k := s.Viewport().Transform().Scale; k >= 0.8 || k < viewport.Explorer.MinScale {
		t.Errorf("fitted scale %v", k)
	}
	_ = s.Answer(dataset.Yes)
	s.Settle()
	if k := s.Viewport().Transform().Scale; k >= 0.8 {
		t.Errorf("answer in full-tree mode should keep the fit, scale %v", k)
	}

	if s.ToggleFullTree() {
		t.Fatal("expected follow mode")
	}
	s.Settle()
	if k := s.Viewport().Transform().Scale; k != 0.8 {
		t.Errorf("refocused scale %v", k)
	}
}

func TestBackAndJump(t *testing.T) {
	s := newTestSurface(t, nil)
	if err := s.Answer(dataset.No); err != nil {
		t.Fatal(err)
	}
	if err := s.JumpTo("vm_node"); err != nil {
		t.Fatal(err)
	}
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Machine().Current().ID() != "registry_node" {
		t.Errorf("back went to %s", s.Machine().Current().ID())
	}
	if s.CurrentKey() != "root/no" {
		t.Errorf("current slot %s", s.CurrentKey())
	}
	if err := s.JumpTo("nope"); err == nil {
		t.Error("expected error for unknown node")
	}
}

func TestFrameRecoversFromPanic(t *testing.T) {
	var reported error
	s := newTestSurface(t, nil)
	s.onError = func(err error) { reported = err }
	good, err := s.Frame()
	if err != nil {
		t.Fatal(err)
	}

	s.result = nil
	sc, err := s.Frame()
	if !errors.Is(err, ErrFrame) || sc != nil {
		t.Fatalf("Frame = %v, %v; want ErrFrame", sc, err)
	}
	if !errors.Is(reported, ErrFrame) {
		t.Errorf("error callback got %v", reported)
	}
	if s.LastFrame() != good {
		t.Error("last good frame should survive a failed frame")
	}
}

func TestResizeToZeroUnmounts(t *testing.T) {
	s := newTestSurface(t, nil)
	if err := s.Resize(layout.Size{W: 0, H: 600}); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("Resize = %v", err)
	}
	if s.Mounted() {
		t.Error("surface should be unmounted")
	}
}

func TestWriteSVG(t *testing.T) {
	s := newTestSurface(t, nil)
	_ = s.Answer(dataset.No)
	s.Settle()
	sc, _ := s.Frame()

	var buf bytes.Buffer
	if err := WriteSVG(&buf, sc); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<svg", "</svg>",
		`transform="` + sc.Transform.String() + `"`,
		`class="node current" data-key="root/no"`,
		`class="link"`,
		"Требуется ли наличие",
		"Да", "Нет",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGReportsWriteErrors(t *testing.T) {
	s := newTestSurface(t, nil)
	sc, _ := s.Frame()
	if err := WriteSVG(failingWriter{}, sc); err == nil {
		t.Error("expected write error")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 30, "short"},
		{"Требуется ли сертификация ФСТЭК?", 10, "Требуется..."},
		{"exactly", 7, "exactly"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestStaticScene(t *testing.T) {
	engine := layout.NewEngine(layout.DefaultOptions(), layout.RuneMeasurer(0.6))
	sc, err := StaticScene(dataset.Default(), engine, "basic_result", Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("StaticScene: %v", err)
	}
	if sc.CurrentID != "basic_result" || sc.Edition == nil || sc.Edition.ID != "basic" || !sc.FullTree {
		t.Errorf("scene %+v", sc)
	}
	o := engine.Options()
	h := tree.Build(dataset.Default())
	minW := float64(h.MaxDepth())*o.NodeWidth*o.ExtentSpacing + 2*o.Margin
	minH := float64(h.MaxLevelWidth())*o.NodeHeight*o.ExtentSpacing + 2*o.Margin
	if sc.Size.W < minW-1e-6 || sc.Size.H < minH-1e-6 {
		t.Errorf("canvas %v smaller than the layout extents %.0fx%.0f", sc.Size, minW, minH)
	}
	if math.Abs(sc.Extent.W-(sc.Size.W-2*o.Margin)) > 1e-6 || math.Abs(sc.Extent.H-(sc.Size.H-2*o.Margin)) > 1e-6 {
		t.Errorf("extent %v does not fill canvas %v", sc.Extent, sc.Size)
	}

	// Every node rect lies inside the canvas.
	canvas := layout.Rect{W: sc.Size.W, H: sc.Size.H}
	for _, c := range sc.Commands {
		if c.Op != OpRect || !strings.HasPrefix(c.Class, "node") {
			continue
		}
		lo := sc.Transform.Apply(layout.Point{X: c.Rect.X, Y: c.Rect.Y})
		hi := sc.Transform.Apply(layout.Point{X: c.Rect.X + c.Rect.W, Y: c.Rect.Y + c.Rect.H})
		if !canvas.Contains(lo) || !canvas.Contains(hi) {
			t.Errorf("%s drawn outside canvas: %v..%v in %v", c.Key, lo, hi, sc.Size)
		}
	}

	if _, err := StaticScene(dataset.Default(), engine, "missing", Options{}); err == nil {
		t.Error("expected error for unknown node")
	}
}

func TestSurfacesShareHierarchy(t *testing.T) {
	ds := dataset.Default()
	engine := layout.NewEngine(layout.DefaultOptions(), layout.RuneMeasurer(0.6))
	h := tree.Build(ds)
	a := NewSurface(ds, engine, Options{Hierarchy: h, Logger: quietLogger()}, nil)
	b := NewSurface(ds, engine, Options{Hierarchy: h, Logger: quietLogger()}, nil)
	if a.hier != h || b.hier != h {
		t.Error("surfaces did not use the given hierarchy")
	}
	if c := NewSurface(ds, engine, Options{Logger: quietLogger()}, nil); c.hier == nil || c.hier == h {
		t.Error("surface without a hierarchy should build its own")
	}
}
