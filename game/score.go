package game

import (
	"strconv"
	"sync"

	"github.com/lixenwraith/solo-pong/config"
	"github.com/lixenwraith/solo-pong/constants"
	"github.com/lixenwraith/solo-pong/render"
)

// ScoreKeeper counts paddle hits of the current round
type ScoreKeeper struct {
	mu        sync.Mutex
	score     int
	listeners []func(old, cur int)
}

// NewScoreKeeper creates a keeper at zero
func NewScoreKeeper() *ScoreKeeper {
	return &ScoreKeeper{}
}

// OnChange registers a listener run synchronously after every committed change
func (s *ScoreKeeper) OnChange(fn func(old, cur int)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Score returns the current value
func (s *ScoreKeeper) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Increment adds one and returns the new score
func (s *ScoreKeeper) Increment() int {
	s.mu.Lock()
	return s.commit(s.score + 1)
}

// Reset sets the score to zero
func (s *ScoreKeeper) Reset() {
	s.mu.Lock()
	s.commit(0)
}

// Set replaces the score, negative values clamp to zero
func (s *ScoreKeeper) Set(n int) int {
	s.mu.Lock()
	return s.commit(n)
}

// commit is entered with mu held and releases it before notifying
func (s *ScoreKeeper) commit(n int) int {
	n = max(n, 0)
	old := s.score
	s.score = n
	listeners := append([]func(int, int){}, s.listeners...)
	s.mu.Unlock()

	if old != n {
		for _, fn := range listeners {
			fn(old, n)
		}
	}
	return n
}

// Banner is the top strip holding the prompt or the score, the ball bounces off its lower edge
type Banner struct {
	surface Surface
	width   int
	height  int
	textY   int
	scoreX  int
}

// NewBanner creates a banner across the top of the display
func NewBanner(cfg *config.Config, surface Surface) *Banner {
	return &Banner{
		surface: surface,
		width:   cfg.Width,
		height:  cfg.BannerHeight,
		textY:   max((cfg.BannerHeight-constants.BannerFontHeight)/2, 0),
		scoreX:  cfg.Width / 2,
	}
}

func (b *Banner) strip(c *render.Canvas, text string) {
	c.DrawRect(0, 0, b.width, b.height, ColorBanner)
	c.DrawText(text, constants.BannerTextX, b.textY, ColorBannerText)
}

// ShowStart draws the power-on prompt
func (b *Banner) ShowStart() {
	b.surface.Batch(func(c *render.Canvas) {
		b.strip(c, constants.StartText)
	})
}

// ShowScore draws the score label and value
func (b *Banner) ShowScore(n int) {
	b.surface.Batch(func(c *render.Canvas) {
		b.strip(c, constants.ScoreText)
		c.DrawText(strconv.Itoa(n), b.scoreX, b.textY, ColorBannerText)
	})
}

// ShowRestart draws the restart prompt keeping the final score visible
func (b *Banner) ShowRestart(finalScore int) {
	b.surface.Batch(func(c *render.Canvas) {
		b.strip(c, constants.RestartText)
		digits := strconv.Itoa(finalScore)
		x := b.width - constants.BannerTextX - c.TextWidth(digits)
		c.DrawText(digits, x, b.textY, ColorBannerText)
	})
}

// OnScoreChanged erases the old digits and draws the new ones in one batch
func (b *Banner) OnScoreChanged(old, cur int) {
	b.surface.Batch(func(c *render.Canvas) {
		prev := strconv.Itoa(old)
		c.DrawRect(b.scoreX, b.textY, c.TextWidth(prev), c.TextHeight(), ColorBanner)
		c.DrawText(strconv.Itoa(cur), b.scoreX, b.textY, ColorBannerText)
	})
}
