package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/solo-pong/constants"
	"github.com/lixenwraith/solo-pong/core"
	"github.com/lixenwraith/solo-pong/engine"
	"github.com/lixenwraith/solo-pong/status"
)

var (
	// ErrVoicesBusy is returned by Play when every voice slot is taken
	ErrVoicesBusy = errors.New("sound: all voices busy")

	// ErrUnknownEvent is returned by Play for events outside the tone table
	ErrUnknownEvent = errors.New("sound: unknown event")
)

// SoundGenerator turns game events into tone sequences on short-lived workers
//
// Architecture:
//   - Play never blocks: it claims a voice slot and hands the sequence to a worker
//   - Workers hold the driver lock for a whole sequence so beeps never interleave on one piezo
//   - Volume switches are sampled at dispatch time
type SoundGenerator struct {
	driver ToneDriver
	in1    Switch
	in2    Switch
	clock  engine.Clock

	voices   chan struct{}
	driverMu sync.Mutex
	wg       sync.WaitGroup

	statPlayed  *atomic.Int64
	statDropped *atomic.Int64
	statFailed  *atomic.Int64
}

// GeneratorOption customizes a SoundGenerator
type GeneratorOption func(*SoundGenerator)

// WithVoices bounds concurrent tone workers
func WithVoices(n int) GeneratorOption {
	return func(g *SoundGenerator) {
		if n > 0 {
			g.voices = make(chan struct{}, n)
		}
	}
}

// WithClock sets the clock used for gaps between notes
func WithClock(c engine.Clock) GeneratorOption {
	return func(g *SoundGenerator) { g.clock = c }
}

// WithRegistry publishes sound.* metrics to reg
func WithRegistry(reg *status.Registry) GeneratorOption {
	return func(g *SoundGenerator) { g.bindMetrics(reg) }
}

// NewSoundGenerator creates a generator; in1 and in2 are the volume switches
func NewSoundGenerator(driver ToneDriver, in1, in2 Switch, opts ...GeneratorOption) *SoundGenerator {
	if driver == nil {
		driver = NullDriver{}
	}
	g := &SoundGenerator{
		driver: driver,
		in1:    in1,
		in2:    in2,
		clock:  engine.NewTimeProvider(),
		voices: make(chan struct{}, constants.MaxVoices),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.statPlayed == nil {
		g.bindMetrics(status.NewRegistry())
	}
	return g
}

func (g *SoundGenerator) bindMetrics(reg *status.Registry) {
	g.statPlayed = reg.Ints.Get("sound.played")
	g.statDropped = reg.Ints.Get("sound.dropped")
	g.statFailed = reg.Ints.Get("sound.failed")
}

// Mode samples the volume switches
func (g *SoundGenerator) Mode() VolumeMode {
	return ResolveVolume(g.in1, g.in2)
}

// Play dispatches the tone sequence of ev without blocking
func (g *SoundGenerator) Play(ev Event) error {
	return g.PlayChain(ev)
}

// PlayChain dispatches several events on one voice so they sound in order
func (g *SoundGenerator) PlayChain(evs ...Event) error {
	if len(evs) == 0 {
		return nil
	}
	var notes []Note
	for _, ev := range evs {
		n := ev.Notes()
		if n == nil {
			return fmt.Errorf("%w: %d", ErrUnknownEvent, ev)
		}
		notes = append(notes, n...)
	}
	ev := evs[0]

	select {
	case g.voices <- struct{}{}:
	default:
		g.statDropped.Add(1)
		return fmt.Errorf("%w: %s", ErrVoicesBusy, ev)
	}

	mode := g.Mode()
	g.wg.Add(1)
	core.Go(func() {
		defer g.wg.Done()
		defer func() { <-g.voices }()
		defer core.Guard("sound")
		g.render(ev, mode, notes)
	})
	return nil
}

// Emit plays evs in order and logs a dispatch failure, for callers that cannot act on it
func (g *SoundGenerator) Emit(evs ...Event) {
	if err := g.PlayChain(evs...); err != nil {
		log.Printf("sound: %v", err)
	}
}

func (g *SoundGenerator) render(ev Event, mode VolumeMode, notes []Note) {
	g.driverMu.Lock()
	defer g.driverMu.Unlock()

	for _, n := range notes {
		if err := g.driver.PlayTone(mode.Apply(n)); err != nil {
			g.statFailed.Add(1)
			log.Printf("sound: %s tone %.0fHz failed: %v", ev, n.Frequency, err)
			return
		}
		if n.Gap > 0 {
			g.clock.Sleep(n.Gap)
		}
	}
	g.statPlayed.Add(1)
}

// Wait blocks until every dispatched sequence has finished
func (g *SoundGenerator) Wait() {
	g.wg.Wait()
}
