// Package viewport owns the pan/zoom transform between layout space and the
// screen, and animates programmatic changes to it.
package viewport

import (
	"fmt"
	"math"
	"time"

	"github.com/ziadkadry99/edition-advisor/internal/layout"
)

// Transform maps layout space to screen space: screen = layout*Scale + (X, Y).
type Transform struct {
	Scale float64 `json:"k"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Identity is the unit transform.
var Identity = Transform{Scale: 1}

// Apply maps a layout point to the screen.
func (t Transform) Apply(p layout.Point) layout.Point {
	return layout.Point{X: p.X*t.Scale + t.X, Y: p.Y*t.Scale + t.Y}
}

// Invert maps a screen point back to layout space.
func (t Transform) Invert(p layout.Point) layout.Point {
	return layout.Point{X: (p.X - t.X) / t.Scale, Y: (p.Y - t.Y) / t.Scale}
}

// String renders the transform as an SVG transform attribute value.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%.2f,%.2f) scale(%.4f)", t.X, t.Y, t.Scale)
}

type animation struct {
	from, to Transform
	start    time.Time
	duration time.Duration
}

// Controller holds the current transform. At most one animation runs at a
// time; any new programmatic request replaces it. Not safe for concurrent use.
type Controller struct {
	profile Profile
	clock   func() time.Time

	size    layout.Size
	current Transform
	anim    *animation
}

// New returns a controller at the identity transform. A nil clock uses time.Now.
func New(p Profile, clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	return &Controller{profile: p, clock: clock, current: Identity}
}

// Profile returns the controller's profile.
func (c *Controller) Profile() Profile { return c.profile }

// Size returns the viewport size.
func (c *Controller) Size() layout.Size { return c.size }

// Resize records new viewport dimensions. The transform is left as is.
func (c *Controller) Resize(s layout.Size) { c.size = s }

// Transform returns the transform for the most recent frame.
func (c *Controller) Transform() Transform { return c.current }

// Target returns where the running animation will end, or the current transform.
func (c *Controller) Target() Transform {
	if c.anim != nil {
		return c.anim.to
	}
	return c.current
}

// Animating reports whether an animation is in flight.
func (c *Controller) Animating() bool { return c.anim != nil }

// Set jumps to t without animating.
func (c *Controller) Set(t Transform) {
	c.anim = nil
	t.Scale = c.profile.Clamp(t.Scale)
	c.current = t
}

// CenterOn brings p to the middle of the viewport at the current scale.
func (c *Controller) CenterOn(p layout.Point) {
	c.animateTo(c.centered(p, c.Target().Scale), c.profile.CenterDuration)
}

// CenterOnAt brings p to the middle of the viewport at scale k.
func (c *Controller) CenterOnAt(p layout.Point, k float64) {
	c.animateTo(c.centered(p, k), c.profile.CenterDuration)
}

// Focus centers p at the profile's focus scale, as done when a tree first appears.
func (c *Controller) Focus(p layout.Point) {
	c.animateTo(c.centered(p, c.profile.FocusScale), c.profile.FocusDuration)
}

// FitAll scales and centers so that bounds, plus margins, fill most of the viewport.
func (c *Controller) FitAll(bounds layout.Rect) {
	if c.size.Empty() || bounds.W <= 0 || bounds.H <= 0 {
		return
	}
	m := c.profile.FitMargin
	sx := c.size.W / (bounds.W + 2*m)
	sy := c.size.H / (bounds.H + 2*m)
	k := math.Min(sx, sy) * c.profile.FitFill
	c.animateTo(c.centered(bounds.Center(), k), c.profile.FitDuration)
}

// ZoomBy multiplies the scale by f, keeping the viewport center fixed.
func (c *Controller) ZoomBy(f float64) {
	c.zoomTo(c.Target().Scale*f, c.profile.ZoomDuration)
}

// ZoomIn zooms in one step.
func (c *Controller) ZoomIn() { c.ZoomBy(c.profile.ZoomInFactor) }

// ZoomOut zooms out one step.
func (c *Controller) ZoomOut() { c.ZoomBy(c.profile.ZoomOutFactor) }

// ZoomReset returns to scale 1 around the viewport center.
func (c *Controller) ZoomReset() { c.zoomTo(1, c.profile.ResetDuration) }

func (c *Controller) zoomTo(k float64, d time.Duration) {
	center := c.Target().Invert(c.screenCenter())
	c.animateTo(c.centered(center, k), d)
}

// Wheel zooms continuously around the screen point at, without animation.
func (c *Controller) Wheel(deltaY float64, at layout.Point) {
	t := c.current
	k := c.profile.Clamp(t.Scale * math.Pow(2, -deltaY*c.profile.WheelSpeed))
	ratio := k / t.Scale
	c.anim = nil
	c.current = Transform{
		Scale: k,
		X:     at.X - (at.X-t.X)*ratio,
		Y:     at.Y - (at.Y-t.Y)*ratio,
	}
}

// Drag pans by a screen-space delta, without animation.
func (c *Controller) Drag(dx, dy float64) {
	c.anim = nil
	c.current.X += dx
	c.current.Y += dy
}

// Finish jumps to the end of the running animation.
func (c *Controller) Finish() {
	if c.anim != nil {
		c.current = c.anim.to
		c.anim = nil
	}
}

// Tick advances the running animation to now and reports whether it is
// still running afterwards.
func (c *Controller) Tick(now time.Time) bool {
	a := c.anim
	if a == nil {
		return false
	}
	elapsed := now.Sub(a.start)
	if elapsed >= a.duration {
		c.current = a.to
		c.anim = nil
		return false
	}
	if elapsed < 0 {
		elapsed = 0
	}
	t := easeCubicInOut(float64(elapsed) / float64(a.duration))
	c.current = c.interpolate(a.from, a.to, t)
	return true
}

func (c *Controller) animateTo(to Transform, d time.Duration) {
	if c.size.Empty() {
		return
	}
	to.Scale = c.profile.Clamp(to.Scale)
	if d <= 0 {
		c.anim = nil
		c.current = to
		return
	}
	c.anim = &animation{from: c.current, to: to, start: c.clock(), duration: d}
}

// centered returns the transform showing layout point p at the viewport center at scale k.
func (c *Controller) centered(p layout.Point, k float64) Transform {
	k = c.profile.Clamp(k)
	sc := c.screenCenter()
	return Transform{Scale: k, X: sc.X - p.X*k, Y: sc.Y - p.Y*k}
}

func (c *Controller) screenCenter() layout.Point {
	return layout.Point{X: c.size.W / 2, Y: c.size.H / 2}
}

// interpolate blends the layout-space view centers linearly and the scale
// geometrically, so zooming feels uniform.
func (c *Controller) interpolate(from, to Transform, t float64) Transform {
	sc := c.screenCenter()
	c0 := from.Invert(sc)
	c1 := to.Invert(sc)
	k := from.Scale * math.Pow(to.Scale/from.Scale, t)
	p := layout.Point{X: c0.X + (c1.X-c0.X)*t, Y: c0.Y + (c1.Y-c0.Y)*t}
	return Transform{Scale: k, X: sc.X - p.X*k, Y: sc.Y - p.Y*k}
}

func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
