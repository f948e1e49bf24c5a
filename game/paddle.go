package game

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/solo-pong/config"
	"github.com/lixenwraith/solo-pong/render"
	"github.com/lixenwraith/solo-pong/vmath"
)

// Paddle is the bottom bar moved by the encoder and shortened on every hit
type Paddle struct {
	surface Surface

	displayWidth int
	y            int
	height       int
	initial      int
	floor        int
	step         int
	shrink       int

	// moving drops a Move that overlaps another Move, mu only guards the geometry
	moving atomic.Bool

	mu    sync.Mutex
	left  int
	width int
}

// NewPaddle creates a paddle at its initial position, nothing is drawn until Reset
func NewPaddle(cfg *config.Config, surface Surface) *Paddle {
	initial := cfg.PaddleInitial()
	return &Paddle{
		surface:      surface,
		displayWidth: cfg.Width,
		y:            cfg.Height - cfg.PaddleHeight,
		height:       cfg.PaddleHeight,
		initial:      initial,
		floor:        cfg.PaddleFloor(),
		step:         cfg.PaddleIncrement,
		shrink:       cfg.PaddleShrink,
		left:         initial,
		width:        initial,
	}
}

// Span returns the covered interval [left, right)
func (p *Paddle) Span() (left, right int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.left, p.left + p.width
}

// Width returns the current width
func (p *Paddle) Width() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width
}

// MoveLeft shifts the paddle one step left, dropped if another move is in progress
func (p *Paddle) MoveLeft() bool {
	return p.move(-p.step)
}

// MoveRight shifts the paddle one step right, dropped if another move is in progress
func (p *Paddle) MoveRight() bool {
	return p.move(p.step)
}

func (p *Paddle) move(delta int) bool {
	if !p.moving.CompareAndSwap(false, true) {
		return false
	}
	defer p.moving.Store(false)

	p.mu.Lock()
	defer p.mu.Unlock()

	oldLeft := p.left
	newLeft := vmath.Clamp(oldLeft+delta, 0, p.displayWidth-p.width)
	if newLeft == oldLeft {
		return false
	}
	p.left = newLeft

	w := p.width
	d := newLeft - oldLeft
	p.surface.Batch(func(c *render.Canvas) {
		switch {
		case vmath.Abs(d) >= w:
			c.DrawRect(oldLeft, p.y, w, p.height, ColorBackground)
			c.DrawRect(newLeft, p.y, w, p.height, ColorPaddle)
		case d > 0:
			c.DrawRect(oldLeft, p.y, d, p.height, ColorBackground)
			c.DrawRect(oldLeft+w, p.y, d, p.height, ColorPaddle)
		default:
			c.DrawRect(newLeft+w, p.y, -d, p.height, ColorBackground)
			c.DrawRect(newLeft, p.y, -d, p.height, ColorPaddle)
		}
	})
	return true
}

// Shrink narrows the paddle by one step, never below the floor, and returns the new width
func (p *Paddle) Shrink() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	newWidth := max(p.width-p.shrink, p.floor)
	if newWidth >= p.width {
		return p.width
	}

	left, oldWidth := p.left, p.width
	p.width = newWidth
	p.surface.Batch(func(c *render.Canvas) {
		c.DrawRect(left+newWidth, p.y, oldWidth-newWidth, p.height, ColorBackground)
	})
	return newWidth
}

// Reset restores the initial width and position and repaints the paddle row
func (p *Paddle) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.left = p.initial
	p.width = p.initial
	p.surface.Batch(func(c *render.Canvas) {
		c.DrawRect(0, p.y, p.displayWidth, p.height, ColorBackground)
		c.DrawRect(p.left, p.y, p.width, p.height, ColorPaddle)
	})
}
