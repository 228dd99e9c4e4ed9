// Package render binds traversal, layout and viewport together and turns
// their combined state into declarative frames.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/layout"
	"github.com/ziadkadry99/edition-advisor/internal/traversal"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
	"github.com/ziadkadry99/edition-advisor/internal/viewport"
)

var (
	// ErrNotMounted is returned while the viewport has no usable size.
	ErrNotMounted = errors.New("surface not mounted")
	// ErrFrame is returned when building a frame panicked.
	ErrFrame = errors.New("frame failed")
)

// Options configures a surface.
type Options struct {
	// Hierarchy is the drawn tree of the dataset. Surfaces sharing an engine
	// should share it too, since the engine memoizes per hierarchy. Nil
	// builds a new one.
	Hierarchy *tree.Hierarchy
	Profile   viewport.Profile
	Palette  Palette
	FullTree bool
	Clock    func() time.Time
	Logger   *slog.Logger
	// OnFrameError is called after a failed frame has been recovered.
	OnFrameError func(error)
}

// Surface is the binding layer hosts talk to. It owns a traversal machine and
// a viewport controller and is driven from a single goroutine.
type Surface struct {
	machine *traversal.Machine
	hier    *tree.Hierarchy
	engine  *layout.Engine
	view    *viewport.Controller
	palette Palette
	log     *slog.Logger
	onError func(error)

	observer traversal.Observer

	fullTree bool
	size     layout.Size
	mounted  bool
	result   *layout.Result

	currentKey string
	onPath     map[string]bool

	last *Scene
}

// NewSurface returns an unmounted surface positioned at the root. observer
// receives every resolved edition, or nil, and may be nil itself.
func NewSurface(ds *dataset.Dataset, engine *layout.Engine, opts Options, observer traversal.Observer) *Surface {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	pal := opts.Palette
	if pal.Nodes == nil {
		pal = DefaultPalette()
	}
	prof := opts.Profile
	if prof.Name == "" {
		prof = viewport.Explorer
	}
	hier := opts.Hierarchy
	if hier == nil {
		hier = tree.Build(ds)
	}
	s := &Surface{
		hier:     hier,
		engine:   engine,
		view:     viewport.New(prof, opts.Clock),
		palette:  pal,
		log:      log,
		onError:  opts.OnFrameError,
		observer: observer,
		fullTree: opts.FullTree,
	}
	s.machine = traversal.New(ds, s.transitioned)
	s.highlight()
	return s
}

// Machine exposes the traversal state for read access.
func (s *Surface) Machine() *traversal.Machine { return s.machine }

// Viewport exposes the viewport controller.
func (s *Surface) Viewport() *viewport.Controller { return s.view }

// Mounted reports whether the surface has a usable size.
func (s *Surface) Mounted() bool { return s.mounted }

// FullTree reports whether whole-tree mode is on.
func (s *Surface) FullTree() bool { return s.fullTree }

// Mount gives the surface its first size and frames the tree. A zero size
// leaves it unmounted; the host calls Mount or Resize again once it knows
// its dimensions.
func (s *Surface) Mount(size layout.Size) error {
	if size.Empty() {
		s.mounted = false
		return ErrNotMounted
	}
	s.relayout(size)
	s.mounted = true
	if s.fullTree {
		s.view.FitAll(s.result.Bounds)
	} else {
		s.view.Focus(s.currentCenter())
	}
	return nil
}

// Resize re-measures the viewport, relays out and reframes.
func (s *Surface) Resize(size layout.Size) error {
	if !s.mounted {
		return s.Mount(size)
	}
	if size.Empty() {
		s.mounted = false
		s.size = size
		return ErrNotMounted
	}
	s.relayout(size)
	s.frame()
	return nil
}

func (s *Surface) relayout(size layout.Size) {
	s.size = size
	s.view.Resize(size)
	s.result = s.engine.Layout(s.hier, size)
}

// Answer forwards a yes/no answer to the traversal.
func (s *Surface) Answer(c dataset.Choice) error { return s.machine.Answer(c) }

// Reset returns the traversal to the root.
func (s *Surface) Reset() { s.machine.Reset() }

// Back steps to the previous node on the path.
func (s *Surface) Back() error { return s.machine.Back() }

// JumpTo moves the traversal to any reachable node.
func (s *Surface) JumpTo(id string) error { return s.machine.JumpTo(id) }

// Click handles a click at a screen point. It returns the id of the node hit,
// or an empty string when the click missed every node.
func (s *Surface) Click(at layout.Point) (string, error) {
	if !s.mounted {
		return "", ErrNotMounted
	}
	box, ok := s.result.HitTest(s.view.Transform().Invert(at))
	if !ok {
		return "", nil
	}
	id := box.Slot.Decision.ID()
	if err := s.machine.JumpTo(id); err != nil {
		return id, err
	}
	return id, nil
}

// ToggleFullTree switches between following the current node and showing
// the whole tree, and returns the new mode.
func (s *Surface) ToggleFullTree() bool {
	s.fullTree = !s.fullTree
	if s.mounted {
		if s.fullTree {
			s.view.FitAll(s.result.Bounds)
		} else {
			s.view.Focus(s.currentCenter())
		}
	}
	return s.fullTree
}

func (s *Surface) ZoomIn()    { s.view.ZoomIn() }
func (s *Surface) ZoomOut()   { s.view.ZoomOut() }
func (s *Surface) ResetZoom() { s.view.ZoomReset() }

// Wheel zooms around a screen point.
func (s *Surface) Wheel(deltaY float64, at layout.Point) { s.view.Wheel(deltaY, at) }

// Drag pans by a screen delta.
func (s *Surface) Drag(dx, dy float64) { s.view.Drag(dx, dy) }

// Tick advances viewport animation and reports whether more frames are due.
func (s *Surface) Tick(now time.Time) bool { return s.view.Tick(now) }

// Settle finishes any running animation immediately.
func (s *Surface) Settle() { s.view.Finish() }

// transitioned is the machine's observer. It refreshes highlighting, moves
// the viewport, then forwards the edition.
func (s *Surface) transitioned(ed *dataset.Edition) {
	s.highlight()
	if s.mounted {
		s.frame()
	}
	if s.observer != nil {
		s.observer(ed)
	}
}

// frame points the viewport at the current node, or the whole tree.
func (s *Surface) frame() {
	if s.fullTree {
		s.view.FitAll(s.result.Bounds)
		return
	}
	s.view.CenterOn(s.currentCenter())
}

func (s *Surface) highlight() {
	slots, err := s.hier.Locate(s.machine.Path())
	if err != nil || len(slots) == 0 {
		s.log.Warn("path not found in hierarchy", "path", s.machine.Path().String(), "error", err)
		s.currentKey = s.hier.Root().Key
		s.onPath = map[string]bool{s.currentKey: true}
		return
	}
	s.onPath = make(map[string]bool, len(slots))
	for _, n := range slots {
		s.onPath[n.Key] = true
	}
	s.currentKey = slots[len(slots)-1].Key
}

// CurrentKey returns the hierarchy slot drawn as current.
func (s *Surface) CurrentKey() string { return s.currentKey }

func (s *Surface) currentCenter() layout.Point {
	if b, ok := s.result.Box(s.currentKey); ok {
		return b.Center
	}
	return layout.Point{}
}

func (s *Surface) style(n *tree.Node) Style {
	switch {
	case n.Key == s.currentKey:
		return StyleCurrent
	case s.onPath[n.Key]:
		return StyleOnPath
	case n.Decision.IsTerminal():
		return StyleTerminal
	}
	return StyleQuestion
}

// Frame builds the scene for the current state. A failure while drawing is
// logged and reported, and the previous frame stays available via LastFrame.
func (s *Surface) Frame() (sc *Scene, err error) {
	if !s.mounted {
		return nil, ErrNotMounted
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFrame, r)
			s.log.Error("render frame failed", "error", err, "current", s.machine.Current().ID())
			if s.onError != nil {
				s.onError(err)
			}
			sc = nil
		}
	}()
	sc = s.build()
	s.last = sc
	return sc, nil
}

// LastFrame returns the most recent successful scene, or nil.
func (s *Surface) LastFrame() *Scene { return s.last }

func (s *Surface) build() *Scene {
	styles := make(map[string]Style, s.hier.Len())
	for _, n := range s.hier.Slots() {
		styles[n.Key] = s.style(n)
	}

	path := s.machine.Path()
	choices := path.Choices()
	crumbs := make([]Crumb, len(path))
	for i, n := range path {
		crumbs[i] = Crumb{ID: n.ID(), Label: truncate(n.Text(), crumbLimit), Current: i == len(path)-1}
		if i > 0 && i-1 < len(choices) {
			crumbs[i].Via = choices[i-1]
		}
	}

	cur := s.machine.Current()
	return &Scene{
		Size:       s.size,
		Extent:     layout.Size{W: s.result.TreeWidth, H: s.result.TreeHeight},
		Transform:  s.view.Transform(),
		Commands:   commands(s.result, s.engine.Options(), s.palette, styles, s.onPath),
		Breadcrumb: crumbs,
		CurrentID:  cur.ID(),
		Question:   cur.Text(),
		CanYes:     s.machine.CanAnswer(dataset.Yes),
		CanNo:      s.machine.CanAnswer(dataset.No),
		Edition:    s.machine.Edition(),
		Progress:   s.machine.Progress(),
		FullTree:   s.fullTree,
	}
}

// StaticScene draws the whole tree at scale 1 on a canvas sized to fit it,
// with nodeID as the current node. An empty nodeID means the root.
func StaticScene(ds *dataset.Dataset, engine *layout.Engine, nodeID string, opts Options) (*Scene, error) {
	opts.FullTree = true
	s := NewSurface(ds, engine, opts, nil)
	if nodeID != "" {
		if err := s.JumpTo(nodeID); err != nil {
			return nil, err
		}
	}
	m := engine.Options().Margin
	natural := engine.Layout(s.hier, layout.Size{})
	bounds := natural.Bounds
	inner := layout.Size{W: max(bounds.W, natural.TreeWidth), H: max(bounds.H, natural.TreeHeight)}
	s.relayout(layout.Size{W: inner.W + 2*m, H: inner.H + 2*m})
	s.mounted = true
	// The tree sits centered in the canvas.
	s.view.Set(viewport.Transform{
		Scale: 1,
		X:     m + (inner.W-bounds.W)/2 - bounds.X,
		Y:     m + (inner.H-bounds.H)/2 - bounds.Y,
	})
	return s.Frame()
}
