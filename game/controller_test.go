package game

import (
	"sync"
	"testing"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/input"
)

func newTestController(t *testing.T) (*Controller, *fixture) {
	t.Helper()
	f := newFixture(testConfig())
	c := NewController(f.cfg, f.deps)
	t.Cleanup(c.Shutdown)
	return c, f
}

type roundLog struct {
	mu  sync.Mutex
	log []string
}

func (l *roundLog) record(from, to RoundState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log = append(l.log, from.String()+"->"+to.String())
}

// TestBoot verifies the start screen is presented and power-on tones play in order
func TestBoot(t *testing.T) {
	c, f := newTestController(t)
	c.Boot()

	if f.presenter.Count() != 1 {
		t.Errorf("expected 1 immediate present, got %d", f.presenter.Count())
	}
	if f.surface.At(0, 0) != ColorBanner {
		t.Error("start banner not drawn")
	}
	ev := f.sound.Events()
	if len(ev) != 2 || ev[0] != audio.EventBoot || ev[1] != audio.EventReady {
		t.Errorf("expected boot then ready, got %v", ev)
	}
	if c.State() != RoundIdle {
		t.Errorf("expected idle after boot, got %v", c.State())
	}
}

// TestClickStartsRound verifies a click in idle starts a round and later clicks are ignored
func TestClickStartsRound(t *testing.T) {
	c, f := newTestController(t)
	rl := &roundLog{}
	c.OnStateChange(rl.record)
	c.Boot()

	c.Clicked()
	if c.State() != RoundPlaying {
		t.Fatalf("expected playing, got %v", c.State())
	}
	if c.Ball().State() != BallMoving {
		t.Errorf("ball should be moving, got %v", c.Ball().State())
	}
	if !f.surface.Armed() {
		t.Error("present loop should be armed")
	}
	if c.Score().Score() != 0 {
		t.Errorf("score should start at 0, got %d", c.Score().Score())
	}
	if f.sound.Count(audio.EventStart) != 1 {
		t.Errorf("expected start tone, got %v", f.sound.Events())
	}

	// Inside the click window
	c.Clicked()
	// Outside the window but mid-round
	f.clock.Advance(f.cfg.ClickDebounce)
	c.Clicked()

	if f.sound.Count(audio.EventStart) != 1 {
		t.Errorf("clicks during a round must be ignored, got %d starts", f.sound.Count(audio.EventStart))
	}
	if len(rl.log) != 1 || rl.log[0] != "idle->playing" {
		t.Errorf("round transitions: %v", rl.log)
	}
	if got := f.reg.Ints.Get("round.played").Load(); got != 1 {
		t.Errorf("round.played: expected 1, got %d", got)
	}
}

// TestRotationMovesPaddle verifies debounced rotation reaches the paddle only while playing
func TestRotationMovesPaddle(t *testing.T) {
	c, f := newTestController(t)

	c.Rotated(input.Clockwise)
	if l, _ := c.Paddle().Span(); l != 80 {
		t.Fatalf("rotation in idle moved the paddle to %d", l)
	}

	c.Clicked()
	c.Rotated(input.Clockwise)
	c.Rotated(input.Clockwise)
	if l, _ := c.Paddle().Span(); l != 110 {
		t.Errorf("two detents in one window should move once, left=%d", l)
	}

	f.clock.Advance(f.cfg.RotationDebounce)
	c.Rotated(input.CounterClockwise)
	f.clock.Advance(f.cfg.RotationDebounce)
	if l, _ := c.Paddle().Span(); l != 110 {
		t.Errorf("reversal should need two detents, left=%d", l)
	}
	c.Rotated(input.CounterClockwise)
	if l, _ := c.Paddle().Span(); l != 80 {
		t.Errorf("second reversed detent should move left, left=%d", l)
	}
}

// TestRoundLifecycle verifies a miss ends the round, shows the restart banner and allows a new round
func TestRoundLifecycle(t *testing.T) {
	c, f := newTestController(t)
	rl := &roundLog{}
	c.OnStateChange(rl.record)

	c.Clicked()
	ball := c.Ball()

	c.Score().Set(4)
	_, _, _, maxY := ball.Bounds()
	ball.Place(0, maxY, 7, 7)
	presents := f.presenter.Count()
	ball.Tick()

	if c.State() != RoundIdle {
		t.Fatalf("expected idle after game over, got %v", c.State())
	}
	want := []string{"idle->playing", "playing->exploding", "exploding->idle"}
	if len(rl.log) != len(want) {
		t.Fatalf("round transitions: got %v, want %v", rl.log, want)
	}
	for i := range want {
		if rl.log[i] != want[i] {
			t.Errorf("transition %d: got %s, want %s", i, rl.log[i], want[i])
		}
	}
	// Explosion frames plus the restart banner
	if got := f.presenter.Count() - presents; got != f.cfg.ExplosionFrames+1 {
		t.Errorf("expected %d presents, got %d", f.cfg.ExplosionFrames+1, got)
	}
	if got := f.reg.Ints.Get("round.best").Load(); got != 4 {
		t.Errorf("round.best: expected 4, got %d", got)
	}
	if c.Score().Score() != 4 {
		t.Errorf("final score should be kept until restart, got %d", c.Score().Score())
	}

	f.clock.Advance(f.cfg.ClickDebounce)
	c.Clicked()
	if c.State() != RoundPlaying || c.Score().Score() != 0 {
		t.Errorf("restart: state=%v score=%d", c.State(), c.Score().Score())
	}
	if w := c.Paddle().Width(); w != f.cfg.PaddleInitial() {
		t.Errorf("restart should restore paddle width, got %d", w)
	}
}

// TestHitsScoreDuringRound verifies paddle hits raise the score shown on the banner
func TestHitsScoreDuringRound(t *testing.T) {
	c, _ := newTestController(t)
	c.Clicked()

	ball := c.Ball()
	_, _, _, maxY := ball.Bounds()
	for i := 1; i <= 3; i++ {
		l, r := c.Paddle().Span()
		ball.Place((l+r)/2-5, maxY, 7, 7)
		ball.Tick()
		if c.Score().Score() != i {
			t.Fatalf("hit %d: score %d", i, c.Score().Score())
		}
	}
	if c.State() != RoundPlaying {
		t.Errorf("hits must keep the round playing, got %v", c.State())
	}
}
