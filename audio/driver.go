package audio

// ToneDriver emits one tone, blocking for its duration
// Zero-duration tones are no-ops for every driver
type ToneDriver interface {
	PlayTone(t Tone) error
}

// ToneDriverFunc adapts a function to ToneDriver
type ToneDriverFunc func(t Tone) error

func (f ToneDriverFunc) PlayTone(t Tone) error { return f(t) }

// NullDriver discards every tone
type NullDriver struct{}

func (NullDriver) PlayTone(Tone) error { return nil }
