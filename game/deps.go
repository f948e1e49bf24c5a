// Package game holds the Solo Pong rules: ball physics, the shrinking paddle,
// scoring and the round lifecycle that ties them to input and sound
package game

import (
	"time"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/core"
	"github.com/lixenwraith/solo-pong/engine"
	"github.com/lixenwraith/solo-pong/render"
	"github.com/lixenwraith/solo-pong/status"
	"github.com/lixenwraith/solo-pong/vmath"
)

// Surface is the drawing target, *render.Surface satisfies it
type Surface interface {
	Batch(fn func(c *render.Canvas))
	Start()
	Stop()
	PresentNow() error
}

// Sounder plays game events, *audio.SoundGenerator satisfies it
type Sounder interface {
	Emit(evs ...audio.Event)
}

type silentSounder struct{}

func (silentSounder) Emit(...audio.Event) {}

// Deps bundles collaborators shared by game components
type Deps struct {
	Surface  Surface
	Sound    Sounder
	Clock    engine.Clock
	Registry *status.Registry
	Rand     *vmath.FastRand
}

func (d Deps) withDefaults(seed int64) Deps {
	if d.Sound == nil {
		d.Sound = silentSounder{}
	}
	if d.Clock == nil {
		d.Clock = engine.NewTimeProvider()
	}
	if d.Registry == nil {
		d.Registry = status.NewRegistry()
	}
	if d.Rand == nil {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		d.Rand = vmath.NewFastRand(uint64(seed))
	}
	return d
}

// Palette
var (
	ColorBackground = core.RGBBlack
	ColorBall       = core.RGBWhite
	ColorPaddle     = core.RGBGreen
	ColorBanner     = core.RGBBlue
	ColorBannerText = core.RGBWhite
)
