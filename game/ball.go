package game

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/config"
	"github.com/lixenwraith/solo-pong/constants"
	"github.com/lixenwraith/solo-pong/core"
	"github.com/lixenwraith/solo-pong/engine"
	"github.com/lixenwraith/solo-pong/physics"
	"github.com/lixenwraith/solo-pong/render"
	"github.com/lixenwraith/solo-pong/vmath"
)

// BallState is the ball lifecycle phase
type BallState uint8

const (
	BallIdle BallState = iota
	BallMoving
	BallExploding
)

func (s BallState) String() string {
	switch s {
	case BallIdle:
		return "idle"
	case BallMoving:
		return "moving"
	case BallExploding:
		return "exploding"
	}
	return fmt.Sprintf("BallState(%d)", s)
}

// Ball owns position, velocity and the collision rules evaluated on every tick
//
// Concurrency:
//   - mu guards position and velocity; Tick only TryLocks it so overlapping ticks coalesce
//   - The explosion animation runs inside the tick that detected the miss
//   - Lock order is ball, then paddle, then surface
type Ball struct {
	surface Surface
	sound   Sounder
	clock   engine.Clock
	paddle  *Paddle
	score   *ScoreKeeper

	size       int
	minX, maxX int
	minY, maxY int
	band       physics.Band

	explosionFrames int
	frameDelay      time.Duration

	state  *engine.Machine[BallState]
	ticker *engine.Ticker

	mu     sync.Mutex
	rng    *vmath.FastRand
	x, y   int
	dx, dy int

	statTicks   *atomic.Int64
	statSkipped *atomic.Int64
	statHits    *atomic.Int64
	statBounces *atomic.Int64
}

// NewBall creates an idle ball; a nil score makes the ball non-scoring
func NewBall(cfg *config.Config, deps Deps, paddle *Paddle, score *ScoreKeeper) *Ball {
	deps = deps.withDefaults(cfg.Seed)
	reg := deps.Registry

	b := &Ball{
		surface:         deps.Surface,
		sound:           deps.Sound,
		clock:           deps.Clock,
		paddle:          paddle,
		score:           score,
		size:            cfg.BallSize,
		minX:            0,
		maxX:            cfg.MaxX(),
		minY:            cfg.BannerHeight,
		maxY:            cfg.MaxY(),
		band:            physics.Band{Min: cfg.VelocityMin, Max: cfg.VelocityMax},
		explosionFrames: cfg.ExplosionFrames,
		frameDelay:      cfg.ExplosionFrameDelay,
		rng:             deps.Rand,
		statTicks:       reg.Ints.Get("physics.ticks"),
		statSkipped:     reg.Ints.Get("physics.skipped"),
		statHits:        reg.Ints.Get("physics.hits"),
		statBounces:     reg.Ints.Get("physics.bounces"),
	}

	b.state = engine.NewMachine(BallIdle).
		Allow(BallIdle, BallMoving).
		Allow(BallMoving, BallExploding, BallIdle).
		Allow(BallExploding, BallIdle)
	b.ticker = engine.NewTicker(cfg.TickInterval, b.Tick)

	b.x = b.minX + (b.maxX-b.minX)/2
	b.y = b.minY + constants.BallStartOffset
	return b
}

// State returns the lifecycle phase
func (b *Ball) State() BallState {
	return b.state.Current()
}

// OnStateChange registers a listener run synchronously on every phase change
func (b *Ball) OnStateChange(fn func(from, to BallState)) {
	b.state.OnTransition(fn)
}

// Position returns the top-left corner
func (b *Ball) Position() (x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.x, b.y
}

// Velocity returns the per-tick displacement
func (b *Ball) Velocity() (dx, dy int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dx, b.dy
}

// Bounds returns the allowed range of the top-left corner
func (b *Ball) Bounds() (minX, minY, maxX, maxY int) {
	return b.minX, b.minY, b.maxX, b.maxY
}

// Scoring reports whether hits are counted
func (b *Ball) Scoring() bool {
	return b.score != nil
}

// Reset waits for an in-flight tick, returns to idle and spawns the ball below the banner
func (b *Ball) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.state.Is(BallIdle) {
		if err := b.state.Transition(BallIdle); err != nil {
			log.Printf("physics: reset: %v", err)
		}
	}

	oldX, oldY := b.x, b.y
	span := (b.maxX - b.minX) - 2*constants.BallStartOffset
	b.x = b.minX + constants.BallStartOffset + b.rng.Intn(span)
	b.y = b.minY + constants.BallStartOffset
	b.dx = b.rng.Sign() * b.rng.Range(b.band.Min, b.band.Max)
	b.dy = b.rng.Range(b.band.Min, b.band.Max)

	b.redraw(oldX, oldY)
}

// Place sets position and velocity directly, position is clamped to the bounds
func (b *Ball) Place(x, y, dx, dy int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	oldX, oldY := b.x, b.y
	b.x = vmath.Clamp(x, b.minX, b.maxX)
	b.y = vmath.Clamp(y, b.minY, b.maxY)
	b.dx, b.dy = dx, dy
	b.redraw(oldX, oldY)
}

// StartMoving enters the moving phase and arms the ticker
func (b *Ball) StartMoving() error {
	if err := b.state.TransitionFrom(BallIdle, BallMoving); err != nil {
		return err
	}
	b.ticker.Start()
	return nil
}

// StopMoving disarms the ticker without waiting for a running tick
func (b *Ball) StopMoving() {
	b.ticker.Stop()
}

// WaitStopped blocks until the ticker loop has exited, must not be called from a tick
func (b *Ball) WaitStopped() {
	b.ticker.Wait()
}

// Tick advances the ball one step and resolves collisions
func (b *Ball) Tick() {
	if !b.mu.TryLock() {
		b.statSkipped.Add(1)
		return
	}
	defer b.mu.Unlock()

	if !b.state.Is(BallMoving) {
		return
	}
	b.statTicks.Add(1)

	cx := b.x + b.size/2

	if b.y >= b.maxY {
		left, right := b.paddle.Span()
		if cx < left || cx >= right {
			b.explode()
			return
		}
		b.dy = -vmath.Abs(b.dy)
		b.dx, b.dy = physics.PerturbPaddleHit(b.dx, b.dy, physics.ThirdOf(cx, left, right), b.rng)
		b.statHits.Add(1)
		if b.score != nil {
			b.score.Increment()
		}
		b.paddle.Shrink()
		b.sound.Emit(audio.EventPaddleHit)
	} else {
		if b.x >= b.maxX {
			b.dx = -vmath.Abs(b.dx)
			b.dy = physics.Jitter(b.dy, b.rng)
			b.bounce()
		} else if b.x <= b.minX {
			b.dx = vmath.Abs(b.dx)
			b.dy = physics.Jitter(b.dy, b.rng)
			b.bounce()
		}
		if b.y <= b.minY {
			b.dy = vmath.Abs(b.dy)
			b.dx = physics.Jitter(b.dx, b.rng)
			b.bounce()
		}
	}

	b.dx = b.band.Clamp(b.dx)
	b.dy = b.band.Clamp(b.dy)

	oldX, oldY := b.x, b.y
	b.x = vmath.Clamp(b.x+b.dx, b.minX, b.maxX)
	b.y = vmath.Clamp(b.y+b.dy, b.minY, b.maxY)
	if b.x != oldX || b.y != oldY {
		b.redraw(oldX, oldY)
	}
}

func (b *Ball) bounce() {
	b.statBounces.Add(1)
	b.sound.Emit(audio.EventBorderHit)
}

// redraw erases the glyph at (oldX, oldY) and draws it at the current position, mu held
func (b *Ball) redraw(oldX, oldY int) {
	x, y, size := b.x, b.y, b.size
	b.surface.Batch(func(c *render.Canvas) {
		c.DrawRect(oldX, oldY, size, size, ColorBackground)
		c.DrawCircle(x+size/2, y+size/2, (size-1)/2, ColorBall)
	})
}

// explode runs the miss sequence, mu held
func (b *Ball) explode() {
	b.surface.Stop()
	b.ticker.Stop()
	b.sound.Emit(audio.EventGameOver)

	if err := b.state.TransitionFrom(BallMoving, BallExploding); err != nil {
		log.Printf("physics: explode: %v", err)
		return
	}

	cx, cy := b.x+b.size/2, b.y+b.size/2
	r := constants.ExplosionStartRadius
	for i := 0; i < b.explosionFrames; i++ {
		radius := r
		b.surface.Batch(func(c *render.Canvas) {
			c.DrawCircle(cx, cy, radius, core.RGBYellow)
			c.DrawCircle(cx, cy, radius*7/10, core.RGBOrange)
			c.DrawCircle(cx, cy, radius*4/10, core.RGBRed)
			c.DrawCircle(cx, cy, radius*2/10, core.RGBBlack)
		})
		if err := b.surface.PresentNow(); err != nil {
			log.Printf("physics: explosion frame %d: %v", i, err)
		}
		b.clock.Sleep(b.frameDelay)
		r *= 2
	}

	if err := b.state.TransitionFrom(BallExploding, BallIdle); err != nil {
		log.Printf("physics: explode: %v", err)
	}
}
