package audio

import (
	"github.com/lixenwraith/solo-pong/constants"
)

// Switch is a two-state input, sampled on every play
type Switch interface {
	State() bool
}

// SwitchFunc adapts a function to Switch
type SwitchFunc func() bool

func (f SwitchFunc) State() bool { return f() }

// VolumeMode selects duty and duration scaling
type VolumeMode uint8

const (
	VolumeSilent VolumeMode = iota
	VolumeSoft
	VolumeNormal
)

func (m VolumeMode) String() string {
	switch m {
	case VolumeSilent:
		return "silent"
	case VolumeSoft:
		return "soft"
	case VolumeNormal:
		return "normal"
	}
	return "unknown"
}

// ResolveVolume maps the two switch inputs to a mode
// Input 1 high wins, then input 2 high means silent, otherwise soft; nil reads low
func ResolveVolume(in1, in2 Switch) VolumeMode {
	if in1 != nil && in1.State() {
		return VolumeNormal
	}
	if in2 != nil && in2.State() {
		return VolumeSilent
	}
	return VolumeSoft
}

// Duty returns the PWM duty cycle in percent
func (m VolumeMode) Duty() int {
	switch m {
	case VolumeNormal:
		return constants.DutyNormal
	case VolumeSoft:
		return constants.DutySoft
	}
	return constants.DutySilent
}

// Apply resolves a note into a tone
// Silent drops the duration, soft shortens any nonzero duration, normal keeps it
func (m VolumeMode) Apply(n Note) Tone {
	t := Tone{Frequency: n.Frequency, Duration: n.Duration, Duty: m.Duty()}
	switch m {
	case VolumeSilent:
		t.Duration = 0
	case VolumeSoft:
		if t.Duration > 0 {
			t.Duration = constants.SoftDuration
		}
	}
	return t
}
