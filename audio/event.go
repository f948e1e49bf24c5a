package audio

import (
	"time"

	"github.com/lixenwraith/solo-pong/constants"
)

// Event names a game sound
type Event uint8

const (
	EventBorderHit Event = iota
	EventPaddleHit
	EventGameOver
	EventStart
	EventBoot
	EventReady
	eventCount
)

var eventNames = [eventCount]string{
	EventBorderHit: "border_hit",
	EventPaddleHit: "paddle_hit",
	EventGameOver:  "game_over",
	EventStart:     "start",
	EventBoot:      "boot",
	EventReady:     "ready",
}

func (e Event) String() string {
	if e < eventCount {
		return eventNames[e]
	}
	return "unknown"
}

// Note is one entry of an event's tone sequence, Gap is the silence after it
type Note struct {
	Frequency float64
	Duration  time.Duration
	Gap       time.Duration
}

// Tone is a note resolved against the volume mode, ready for a driver
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Duty      int // PWM duty cycle in percent
}

// Silent reports whether the tone produces no output
func (t Tone) Silent() bool {
	return t.Duration <= 0 || t.Duty <= 0
}

var eventNotes = [eventCount][]Note{
	EventBorderHit: {{Frequency: constants.BorderHitFrequency, Duration: constants.BorderHitDuration}},
	EventPaddleHit: {{Frequency: constants.PaddleHitFrequency, Duration: constants.PaddleHitDuration}},
	EventGameOver:  {{Frequency: constants.GameOverFrequency, Duration: constants.GameOverDuration}},
	EventStart: {
		{Frequency: constants.StartFrequency, Duration: constants.StartDuration, Gap: constants.StartGap},
		{Frequency: constants.StartFrequency, Duration: constants.StartDuration},
	},
	EventBoot: {{Frequency: constants.BootFrequency, Duration: constants.BootDuration}},
	EventReady: {
		{Frequency: constants.ReadyFrequency, Duration: constants.ReadyDuration, Gap: constants.ReadyGap},
		{Frequency: constants.ReadyFrequency, Duration: constants.ReadyDuration},
	},
}

// Notes returns the tone sequence of an event, nil for unknown events
func (e Event) Notes() []Note {
	if e >= eventCount {
		return nil
	}
	return eventNotes[e]
}
