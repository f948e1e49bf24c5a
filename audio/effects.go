package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// pwmOscillator generates a unipolar pulse train like a PWM pin driving a piezo
// The output is high for the first duty percent of each period and zero otherwise
type pwmOscillator struct {
	freq     float64
	duty     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewToneStreamer creates the oscillator for one tone at the given rate
func NewToneStreamer(t Tone, rate beep.SampleRate) beep.Streamer {
	duty := float64(t.Duty) / 100
	if duty > 1 {
		duty = 1
	}
	return &pwmOscillator{
		freq:     t.Frequency,
		duty:     duty,
		duration: rate.N(t.Duration),
		rate:     rate,
	}
}

func (o *pwmOscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		if o.phase < o.duty {
			val = 1.0
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *pwmOscillator) Err() error { return nil }

// math.Log2(0) is -Inf, so 0 volume is mapped to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
