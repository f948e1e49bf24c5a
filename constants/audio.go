package constants

import "time"

// Tone Table
const (
	BorderHitFrequency = 1500.0
	BorderHitDuration  = 10 * time.Millisecond

	PaddleHitFrequency = 1300.0
	PaddleHitDuration  = 10 * time.Millisecond

	GameOverFrequency = 50.0
	GameOverDuration  = 500 * time.Millisecond

	StartFrequency = 2000.0
	StartDuration  = 2 * time.Millisecond
	StartGap       = 10 * time.Millisecond

	BootFrequency = 4000.0
	BootDuration  = 2 * time.Millisecond

	ReadyFrequency = 1200.0
	ReadyDuration  = 1 * time.Millisecond
	ReadyGap       = 10 * time.Millisecond
)

// Volume Modes
const (
	// DutySilent, DutySoft and DutyNormal are PWM duty cycles in percent
	DutySilent = 0
	DutySoft   = 1
	DutyNormal = 20

	// SoftDuration replaces every nonzero tone duration in soft mode
	SoftDuration = 1 * time.Millisecond
)

// Audio Engine
const (
	// MaxVoices bounds concurrently dispatched tone workers
	MaxVoices = 4

	// SampleRate is used by the speaker and WAV drivers
	SampleRate = 44100

	// SpeakerBuffer is the beep speaker buffer length
	SpeakerBuffer = 50 * time.Millisecond

	// ToneAmplitude is the peak level of the PWM oscillator in [0, 1]
	ToneAmplitude = 0.5
)
