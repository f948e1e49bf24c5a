package game

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/config"
	"github.com/lixenwraith/solo-pong/engine"
	"github.com/lixenwraith/solo-pong/render"
	"github.com/lixenwraith/solo-pong/status"
	"github.com/lixenwraith/solo-pong/vmath"
)

// recordingSounder keeps every emitted event in order
type recordingSounder struct {
	mu     sync.Mutex
	events []audio.Event
}

func (s *recordingSounder) Emit(evs ...audio.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evs...)
}

func (s *recordingSounder) Events() []audio.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audio.Event(nil), s.events...)
}

func (s *recordingSounder) Count(ev audio.Event) int {
	n := 0
	for _, e := range s.Events() {
		if e == ev {
			n++
		}
	}
	return n
}

// countingPresenter counts presents
type countingPresenter struct {
	mu sync.Mutex
	n  int
}

func (p *countingPresenter) Present(*image.RGBA) error {
	p.mu.Lock()
	p.n++
	p.mu.Unlock()
	return nil
}

func (p *countingPresenter) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n
}

type fixture struct {
	cfg       *config.Config
	surface   *render.Surface
	presenter *countingPresenter
	sound     *recordingSounder
	clock     *engine.MockTimeProvider
	reg       *status.Registry
	deps      Deps
}

func testConfig() *config.Config {
	cfg := config.Default()
	// Ticks are driven by hand
	cfg.TickInterval = time.Hour
	cfg.Seed = 1
	return cfg
}

func newFixture(cfg *config.Config) *fixture {
	f := &fixture{
		cfg:       cfg,
		presenter: &countingPresenter{},
		sound:     &recordingSounder{},
		clock:     engine.NewMockTimeProvider(time.Unix(0, 0)),
		reg:       status.NewRegistry(),
	}
	f.surface = render.NewSurface(cfg.Width, cfg.Height, f.presenter, render.WithRegistry(f.reg))
	f.deps = Deps{
		Surface:  f.surface,
		Sound:    f.sound,
		Clock:    f.clock,
		Registry: f.reg,
		Rand:     vmath.NewFastRand(1),
	}
	return f
}

func (f *fixture) newBall(t *testing.T) (*Ball, *Paddle, *ScoreKeeper) {
	t.Helper()
	paddle := NewPaddle(f.cfg, f.surface)
	paddle.Reset()
	score := NewScoreKeeper()
	ball := NewBall(f.cfg, f.deps, paddle, score)
	if err := ball.StartMoving(); err != nil {
		t.Fatalf("StartMoving: %v", err)
	}
	t.Cleanup(ball.StopMoving)
	return ball, paddle, score
}
