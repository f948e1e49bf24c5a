package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/solo-pong/constants"
)

// ErrSpeakerClosed is returned when playing on an uninitialized speaker
var ErrSpeakerClosed = errors.New("speaker: not initialized")

// SpeakerDriver plays tones through the system audio device via beep
type SpeakerDriver struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	amplitude   float64
	initialized bool
}

// NewSpeakerDriver creates a driver; call Init before playing
func NewSpeakerDriver(sampleRate int) *SpeakerDriver {
	if sampleRate <= 0 {
		sampleRate = constants.SampleRate
	}
	return &SpeakerDriver{
		rate:      beep.SampleRate(sampleRate),
		amplitude: constants.ToneAmplitude,
	}
}

// Init opens the audio device
func (d *SpeakerDriver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}
	if err := speaker.Init(d.rate, d.rate.N(constants.SpeakerBuffer)); err != nil {
		return fmt.Errorf("speaker: init: %w", err)
	}
	d.initialized = true
	return nil
}

// PlayTone blocks until the tone has been streamed
func (d *SpeakerDriver) PlayTone(t Tone) error {
	if t.Duration <= 0 {
		return nil
	}

	d.mu.Lock()
	ready := d.initialized
	d.mu.Unlock()
	if !ready {
		return ErrSpeakerClosed
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(
		newVolume(NewToneStreamer(t, d.rate), d.amplitude),
		beep.Callback(func() { close(done) }),
	))
	<-done
	return nil
}

// Close stops playback and releases the device
func (d *SpeakerDriver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	d.initialized = false
}
