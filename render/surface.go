package render

import (
	"image"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/solo-pong/constants"
	"github.com/lixenwraith/solo-pong/core"
	"github.com/lixenwraith/solo-pong/status"
)

// Surface is the thread-safe drawing target shared by every game component
//
// Architecture:
//   - One dedicated mutex guards the framebuffer, every draw primitive and every present
//   - Batch groups several primitives under one acquisition so erase+draw pairs are never presented half-done
//   - A background loop presents at a fixed cadence while armed; Start/Stop only flip the arm flag
type Surface struct {
	mu        sync.Mutex
	canvas    *Canvas
	presenter Presenter
	period    time.Duration

	armed    atomic.Bool
	opened   atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	statPresents *atomic.Int64
	statErrors   *atomic.Int64
}

// SurfaceOption customizes a Surface at construction
type SurfaceOption func(*surfaceOptions)

type surfaceOptions struct {
	period   time.Duration
	stroke   int
	registry *status.Registry
}

// WithPeriod sets the present loop cadence
func WithPeriod(d time.Duration) SurfaceOption {
	return func(o *surfaceOptions) { o.period = d }
}

// WithStroke sets the line stroke width
func WithStroke(px int) SurfaceOption {
	return func(o *surfaceOptions) { o.stroke = px }
}

// WithRegistry publishes render.presents and render.errors to reg
func WithRegistry(reg *status.Registry) SurfaceOption {
	return func(o *surfaceOptions) { o.registry = reg }
}

// NewSurface creates a surface of the given size, presentation disarmed and loop not running
func NewSurface(width, height int, presenter Presenter, opts ...SurfaceOption) *Surface {
	o := surfaceOptions{
		period: constants.PresentInterval,
		stroke: constants.PaddleHeight,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = status.NewRegistry()
	}
	if presenter == nil {
		presenter = Discard
	}

	return &Surface{
		canvas:       newCanvas(width, height, o.stroke),
		presenter:    presenter,
		period:       o.period,
		stopChan:     make(chan struct{}),
		statPresents: o.registry.Ints.Get("render.presents"),
		statErrors:   o.registry.Ints.Get("render.errors"),
	}
}

// Width returns the framebuffer width
func (s *Surface) Width() int {
	return s.canvas.frame.Bounds().Dx()
}

// Height returns the framebuffer height
func (s *Surface) Height() int {
	return s.canvas.frame.Bounds().Dy()
}

// Batch runs fn with exclusive access to the canvas
// fn must not call other Surface methods, the mutex is not reentrant
func (s *Surface) Batch(fn func(c *Canvas)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.canvas)
}

// Fill paints the whole surface
func (s *Surface) Fill(col core.RGB) {
	s.Batch(func(c *Canvas) { c.Fill(col) })
}

// DrawLine paints a line
func (s *Surface) DrawLine(x0, y0, x1, y1 int, col core.RGB) {
	s.Batch(func(c *Canvas) { c.DrawLine(x0, y0, x1, y1, col) })
}

// DrawRect paints a filled rectangle
func (s *Surface) DrawRect(x, y, w, h int, col core.RGB) {
	s.Batch(func(c *Canvas) { c.DrawRect(x, y, w, h, col) })
}

// DrawCircle paints a filled circle
func (s *Surface) DrawCircle(cx, cy, radius int, col core.RGB) {
	s.Batch(func(c *Canvas) { c.DrawCircle(cx, cy, radius, col) })
}

// DrawText renders text with its box top-left at (x, y)
func (s *Surface) DrawText(text string, x, y int, col core.RGB) {
	s.Batch(func(c *Canvas) { c.DrawText(text, x, y, col) })
}

// PresentNow flushes the framebuffer immediately, regardless of the armed state
func (s *Surface) PresentNow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presentLocked()
}

func (s *Surface) presentLocked() error {
	if err := s.presenter.Present(s.canvas.frame); err != nil {
		s.statErrors.Add(1)
		return err
	}
	s.statPresents.Add(1)
	return nil
}

// Start arms the periodic present loop
func (s *Surface) Start() {
	s.armed.Store(true)
}

// Stop disarms the periodic present loop without waiting for a present in progress
func (s *Surface) Stop() {
	s.armed.Store(false)
}

// Armed reports whether periodic presentation is enabled
func (s *Surface) Armed() bool {
	return s.armed.Load()
}

// Open launches the background present loop, no-op if already open
func (s *Surface) Open() {
	if !s.opened.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	core.Go(s.presentLoop)
}

// Close terminates the present loop and waits for it to exit
func (s *Surface) Close() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Surface) presentLoop() {
	defer s.wg.Done()

	tk := time.NewTicker(s.period)
	defer tk.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-tk.C:
			if !s.armed.Load() {
				continue
			}
			s.mu.Lock()
			// Re-check under lock: Stop may land while waiting for a batch
			if s.armed.Load() {
				if err := s.presentLocked(); err != nil {
					log.Printf("render: present failed: %v", err)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Snapshot returns a copy of the framebuffer
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.canvas.frame
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// At returns a pixel color
func (s *Surface) At(x, y int) core.RGB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.At(x, y)
}
