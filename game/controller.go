package game

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/config"
	"github.com/lixenwraith/solo-pong/engine"
	"github.com/lixenwraith/solo-pong/input"
	"github.com/lixenwraith/solo-pong/render"
)

// RoundState is the phase of the current round
type RoundState uint8

const (
	RoundIdle RoundState = iota
	RoundPlaying
	RoundExploding
)

func (s RoundState) String() string {
	switch s {
	case RoundIdle:
		return "idle"
	case RoundPlaying:
		return "playing"
	case RoundExploding:
		return "exploding"
	}
	return fmt.Sprintf("RoundState(%d)", s)
}

// Controller wires encoder input to the round lifecycle
// It implements input.Encoder
type Controller struct {
	surface Surface
	sound   Sounder

	paddle *Paddle
	ball   *Ball
	score  *ScoreKeeper
	banner *Banner

	rotary *input.RotaryFilter
	click  *input.Window
	round  *engine.Machine[RoundState]

	statRounds *atomic.Int64
	statBest   *atomic.Int64
}

var _ input.Encoder = (*Controller)(nil)

// NewController builds every game component around the shared surface
func NewController(cfg *config.Config, deps Deps) *Controller {
	deps = deps.withDefaults(cfg.Seed)

	c := &Controller{
		surface:    deps.Surface,
		sound:      deps.Sound,
		score:      NewScoreKeeper(),
		banner:     NewBanner(cfg, deps.Surface),
		paddle:     NewPaddle(cfg, deps.Surface),
		click:      input.NewWindow(deps.Clock, cfg.ClickDebounce),
		statRounds: deps.Registry.Ints.Get("round.played"),
		statBest:   deps.Registry.Ints.Get("round.best"),
	}
	c.ball = NewBall(cfg, deps, c.paddle, c.score)
	c.rotary = input.NewRotaryFilter(
		input.NewWindow(deps.Clock, cfg.RotationDebounce),
		cfg.InvertRotation,
		c.movePaddle,
	)

	c.round = engine.NewMachine(RoundIdle).
		Allow(RoundIdle, RoundPlaying).
		Allow(RoundPlaying, RoundExploding).
		Allow(RoundExploding, RoundIdle)

	c.score.OnChange(c.banner.OnScoreChanged)
	c.ball.OnStateChange(c.onBallState)
	return c
}

// Ball exposes the ball for frontends and tests
func (c *Controller) Ball() *Ball { return c.ball }

// Paddle exposes the paddle for frontends and tests
func (c *Controller) Paddle() *Paddle { return c.paddle }

// Score exposes the score keeper
func (c *Controller) Score() *ScoreKeeper { return c.score }

// State returns the round phase
func (c *Controller) State() RoundState {
	return c.round.Current()
}

// OnStateChange registers a listener for round transitions
func (c *Controller) OnStateChange(fn func(from, to RoundState)) {
	c.round.OnTransition(fn)
}

// Boot paints the start screen and plays the power-on tones
func (c *Controller) Boot() {
	c.surface.Batch(func(cv *render.Canvas) { cv.Fill(ColorBackground) })
	c.banner.ShowStart()
	if err := c.surface.PresentNow(); err != nil {
		log.Printf("game: boot present: %v", err)
	}
	c.sound.Emit(audio.EventBoot, audio.EventReady)
}

// Clicked starts a new round, ignored outside idle and inside the click window
func (c *Controller) Clicked() {
	if !c.click.Trigger() {
		return
	}
	if err := c.round.TransitionFrom(RoundIdle, RoundPlaying); err != nil {
		return
	}

	c.surface.Stop()
	c.ball.StopMoving()

	c.surface.Batch(func(cv *render.Canvas) { cv.Fill(ColorBackground) })
	c.paddle.Reset()
	c.score.Reset()
	c.ball.Reset()
	c.rotary.Reset()
	c.banner.ShowScore(0)

	if err := c.ball.StartMoving(); err != nil {
		log.Printf("game: start round: %v", err)
	}
	c.surface.Start()
	c.sound.Emit(audio.EventStart)
	c.statRounds.Add(1)
}

// Rotated forwards a detent to the paddle while a round is being played
func (c *Controller) Rotated(dir input.Direction) {
	if !c.round.Is(RoundPlaying) {
		return
	}
	c.rotary.Rotate(dir)
}

func (c *Controller) movePaddle(side input.Side) {
	if side == input.Right {
		c.paddle.MoveRight()
	} else {
		c.paddle.MoveLeft()
	}
}

func (c *Controller) onBallState(from, to BallState) {
	switch {
	case to == BallExploding:
		if err := c.round.TransitionFrom(RoundPlaying, RoundExploding); err != nil {
			log.Printf("game: %v", err)
		}
	case from == BallExploding && to == BallIdle:
		c.gameOver()
	}
}

func (c *Controller) gameOver() {
	final := c.score.Score()
	for {
		best := c.statBest.Load()
		if int64(final) <= best || c.statBest.CompareAndSwap(best, int64(final)) {
			break
		}
	}

	c.banner.ShowRestart(final)
	if err := c.surface.PresentNow(); err != nil {
		log.Printf("game: game over present: %v", err)
	}
	if err := c.round.TransitionFrom(RoundExploding, RoundIdle); err != nil {
		log.Printf("game: %v", err)
	}
}

// Shutdown stops the ticker and the present loop and waits for tones
func (c *Controller) Shutdown() {
	c.ball.StopMoving()
	c.ball.WaitStopped()
	c.surface.Stop()
	if w, ok := c.sound.(interface{ Wait() }); ok {
		w.Wait()
	}
}
