// Package dashboard serves the browser advisor: an HTML host page, a small
// REST API over the dataset, and live websocket sessions that stream frames.
package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/layout"
	"github.com/ziadkadry99/edition-advisor/internal/metrics"
	"github.com/ziadkadry99/edition-advisor/internal/render"
	"github.com/ziadkadry99/edition-advisor/internal/site"
	"github.com/ziadkadry99/edition-advisor/internal/tree"
	"github.com/ziadkadry99/edition-advisor/internal/viewport"
)

// Options tunes live sessions.
type Options struct {
	Profile       viewport.Profile
	FullTree      bool
	InitialDelay  time.Duration // before the first layout of a session
	ResizeWait    time.Duration // quiet period that coalesces resizes
	FrameInterval time.Duration // between animation frames
	APITimeout    time.Duration
}

// DefaultOptions returns the stock session timings.
func DefaultOptions() Options {
	return Options{
		Profile:       viewport.Explorer,
		InitialDelay:  100 * time.Millisecond,
		ResizeWait:    150 * time.Millisecond,
		FrameInterval: 16 * time.Millisecond,
		APITimeout:    30 * time.Second,
	}
}

// Dashboard provides the advisor UI and its API.
type Dashboard struct {
	ds       *dataset.Dataset
	engine   *layout.Engine
	mu       sync.RWMutex
	opts     Options
	metrics  *metrics.Metrics
	log      *slog.Logger
	renderer *site.Renderer
	hier     *tree.Hierarchy
}

// New creates a new Dashboard. m may be nil.
func New(ds *dataset.Dataset, engine *layout.Engine, opts Options, m *metrics.Metrics, log *slog.Logger) (*Dashboard, error) {
	if log == nil {
		log = slog.Default()
	}
	r, err := site.NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		ds:       ds,
		hier:     tree.Build(ds),
		engine:   engine,
		opts:     opts,
		metrics:  m,
		log:      log,
		renderer: r,
	}, nil
}

// SetOptions replaces the options used by sessions opened from now on.
func (d *Dashboard) SetOptions(opts Options) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opts = opts
}

func (d *Dashboard) options() Options {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.opts
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/ws/advisor", d.handleAdvisor)

	r.Group(func(r chi.Router) {
		if timeout := d.options().APITimeout; timeout > 0 {
			r.Use(middleware.Timeout(timeout))
		}
		r.Get("/", d.ServeIndex)
		r.Get("/compare", d.handleComparePage)
		r.Route("/api", func(r chi.Router) {
			r.Get("/tree", d.handleTree)
			r.Get("/path", d.handlePath)
			r.Get("/editions", d.handleEditions)
			r.Get("/editions/{id}", d.handleEdition)
			r.Get("/compare", d.handleCompare)
			r.Get("/render.svg", d.handleRenderSVG)
			r.Get("/diagram.mmd", d.handleDiagram)
		})
	})
}

func (d *Dashboard) surfaceOptions(opts Options) render.Options {
	return render.Options{
		Hierarchy: d.hier,
		Profile:   opts.Profile,
		FullTree:  opts.FullTree,
		Logger:    d.log,
		OnFrameError: func(error) {
			if d.metrics != nil {
				d.metrics.RenderFailed()
			}
		},
	}
}
