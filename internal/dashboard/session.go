package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/layout"
	"github.com/ziadkadry99/edition-advisor/internal/render"
	"github.com/ziadkadry99/edition-advisor/internal/viewport"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type   string  `json:"type"` // answer, reset, back, jump, click, wheel, drag, zoom_in, zoom_out, reset_zoom, toggle_full_tree, resize
	Choice string  `json:"choice,omitempty"`
	ID     string  `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`

	invalid error
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type    string        `json:"type"` // hello, frame or error
	Session string        `json:"session,omitempty"`
	Frame   *frameMessage `json:"frame,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type frameMessage struct {
	SVG        string             `json:"svg"`
	CurrentID  string             `json:"currentId"`
	Question   string             `json:"question"`
	Breadcrumb []render.Crumb     `json:"breadcrumb"`
	CanYes     bool               `json:"canYes"`
	CanNo      bool               `json:"canNo"`
	Edition    *dataset.Edition   `json:"edition,omitempty"`
	Progress   int                `json:"progress"`
	FullTree   bool               `json:"fullTree"`
	Transform  viewport.Transform `json:"transform"`
	Extent     extent             `json:"extent"`
}

// extent is the size of the laid-out tree canvas.
type extent struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// session is one connected browser. The loop goroutine is the only one that
// touches the surface or writes to the connection.
type session struct {
	id      string
	d       *Dashboard
	opts    Options
	conn    *websocket.Conn
	surface *render.Surface
	resized chan layout.Size
}

func (d *Dashboard) handleAdvisor(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	opts := d.options()
	s := &session{
		id:      uuid.NewString(),
		d:       d,
		opts:    opts,
		conn:    conn,
		resized: make(chan layout.Size),
	}
	s.surface = render.NewSurface(d.ds, d.engine, d.surfaceOptions(opts), s.resolved)

	if d.metrics != nil {
		d.metrics.SessionOpened()
		defer d.metrics.SessionClosed()
	}
	log := d.log.With("session", s.id)
	log.Info("advisor session started")
	if err := s.run(context.WithoutCancel(r.Context())); err != nil {
		log.Warn("advisor session ended", "error", err)
		return
	}
	log.Info("advisor session ended")
}

func (s *session) resolved(ed *dataset.Edition) {
	if ed != nil && s.d.metrics != nil {
		s.d.metrics.Resolved(ed.ID)
	}
}

// run drives the session until the peer goes away. A normal close is not an
// error.
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inbox := make(chan clientMessage)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.read(gCtx, inbox) })
	g.Go(func() error { return s.loop(gCtx, inbox) })
	g.Go(func() error {
		<-gCtx.Done()
		s.conn.Close()
		return nil
	})

	err := g.Wait()
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
		errors.Is(err, net.ErrClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *session) read(ctx context.Context, inbox chan<- clientMessage) error {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			msg = clientMessage{invalid: errors.New("invalid message format")}
		}
		select {
		case inbox <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *session) loop(ctx context.Context, inbox <-chan clientMessage) error {
	opts := s.opts
	debounced := debounce.New(opts.ResizeWait)

	start := time.NewTimer(opts.InitialDelay)
	defer start.Stop()
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.send(serverMessage{Type: "hello", Session: s.id}); err != nil {
		return err
	}

	ready := false
	var pending layout.Size
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-start.C:
			ready = true
			if !pending.Empty() {
				if err := s.resize(pending); err != nil {
					return err
				}
			}

		case size := <-s.resized:
			if !ready {
				pending = size
				continue
			}
			if err := s.resize(size); err != nil {
				return err
			}

		case now := <-ticker.C:
			if s.surface.Mounted() && s.surface.Viewport().Animating() {
				s.surface.Tick(now)
				if err := s.sendFrame(); err != nil {
					return err
				}
			}

		case msg := <-inbox:
			if msg.Type == "resize" {
				size := layout.Size{W: msg.W, H: msg.H}
				if opts.ResizeWait <= 0 {
					if !ready {
						pending = size
					} else if err := s.resize(size); err != nil {
						return err
					}
					continue
				}
				debounced(func() {
					select {
					case s.resized <- size:
					case <-ctx.Done():
					}
				})
				continue
			}
			if err := s.handle(msg); err != nil {
				if sendErr := s.send(serverMessage{Type: "error", Error: err.Error()}); sendErr != nil {
					return sendErr
				}
				continue
			}
			if err := s.sendFrame(); err != nil {
				return err
			}
		}
	}
}

func (s *session) resize(size layout.Size) error {
	if err := s.surface.Resize(size); err != nil {
		// Hidden container; nothing to draw until it has a size again.
		return nil
	}
	return s.sendFrame()
}

// handle applies one client message to the surface.
func (s *session) handle(msg clientMessage) error {
	if msg.invalid != nil {
		return msg.invalid
	}
	var err error
	switch msg.Type {
	case "answer":
		var c dataset.Choice
		if c, err = dataset.ParseChoice(msg.Choice); err == nil {
			err = s.surface.Answer(c)
		}
	case "reset":
		s.surface.Reset()
	case "back":
		err = s.surface.Back()
	case "jump":
		err = s.surface.JumpTo(msg.ID)
	case "click":
		var id string
		if id, err = s.surface.Click(layout.Point{X: msg.X, Y: msg.Y}); err == nil && id == "" {
			return nil
		}
	case "wheel":
		s.surface.Wheel(msg.DeltaY, layout.Point{X: msg.X, Y: msg.Y})
		return nil
	case "drag":
		s.surface.Drag(msg.DX, msg.DY)
		return nil
	case "zoom_in":
		s.surface.ZoomIn()
		return nil
	case "zoom_out":
		s.surface.ZoomOut()
		return nil
	case "reset_zoom":
		s.surface.ResetZoom()
		return nil
	case "toggle_full_tree":
		s.surface.ToggleFullTree()
		return nil
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err == nil && s.d.metrics != nil {
		s.d.metrics.Transition(msg.Type)
	}
	return err
}

func (s *session) sendFrame() error {
	if !s.surface.Mounted() {
		return nil
	}
	start := time.Now()
	sc, err := s.surface.Frame()
	if err != nil {
		return s.send(serverMessage{Type: "error", Error: err.Error()})
	}
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, sc); err != nil {
		return s.send(serverMessage{Type: "error", Error: err.Error()})
	}
	if s.d.metrics != nil {
		s.d.metrics.ObserveFrame(start)
	}
	return s.send(serverMessage{Type: "frame", Frame: &frameMessage{
		SVG:        buf.String(),
		CurrentID:  sc.CurrentID,
		Question:   sc.Question,
		Breadcrumb: sc.Breadcrumb,
		CanYes:     sc.CanYes,
		CanNo:      sc.CanNo,
		Edition:    sc.Edition,
		Progress:   sc.Progress,
		FullTree:   sc.FullTree,
		Transform:  sc.Transform,
		Extent:     extent{Width: sc.Extent.W, Height: sc.Extent.H},
	}})
}

func (s *session) send(msg serverMessage) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}
