package viewport

import (
	"fmt"
	"time"
)

// Profile fixes the zoom range and animation timings of a controller.
type Profile struct {
	Name string

	MinScale   float64
	MaxScale   float64
	FocusScale float64 // scale used when first focusing a node

	FocusDuration  time.Duration
	CenterDuration time.Duration
	FitDuration    time.Duration
	ZoomDuration   time.Duration
	ResetDuration  time.Duration

	ZoomInFactor  float64
	ZoomOutFactor float64

	FitFill    float64 // share of the viewport the fitted tree may occupy
	FitMargin  float64 // padding added around the tree before fitting
	WheelSpeed float64 // scale exponent per wheel delta unit
}

// Explorer is the default profile.
var Explorer = Profile{
	Name:           "explorer",
	MinScale:       0.3,
	MaxScale:       3.0,
	FocusScale:     0.8,
	FocusDuration:  800 * time.Millisecond,
	CenterDuration: 500 * time.Millisecond,
	FitDuration:    800 * time.Millisecond,
	ZoomDuration:   300 * time.Millisecond,
	ResetDuration:  500 * time.Millisecond,
	ZoomInFactor:   1.2,
	ZoomOutFactor:  0.8,
	FitFill:        0.9,
	FitMargin:      40,
	WheelSpeed:     0.002,
}

// Compact has a narrower zoom range and a closer initial focus.
var Compact = Profile{
	Name:           "compact",
	MinScale:       0.5,
	MaxScale:       2.0,
	FocusScale:     1.2,
	FocusDuration:  800 * time.Millisecond,
	CenterDuration: 500 * time.Millisecond,
	FitDuration:    800 * time.Millisecond,
	ZoomDuration:   300 * time.Millisecond,
	ResetDuration:  500 * time.Millisecond,
	ZoomInFactor:   1.2,
	ZoomOutFactor:  0.8,
	FitFill:        0.9,
	FitMargin:      40,
	WheelSpeed:     0.002,
}

// ProfileByName returns the named profile.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case Explorer.Name, "":
		return Explorer, nil
	case Compact.Name:
		return Compact, nil
	}
	return Profile{}, fmt.Errorf("unknown viewport profile %q: must be explorer or compact", name)
}

// Clamp limits k to the profile's scale range.
func (p Profile) Clamp(k float64) float64 {
	return min(max(k, p.MinScale), p.MaxScale)
}
