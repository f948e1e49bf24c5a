package audio

import (
	"sync/atomic"
)

// VolumeSwitches emulates the two hardware volume inputs for keyboard frontends
type VolumeSwitches struct {
	in1 atomic.Bool
	in2 atomic.Bool
}

// NewVolumeSwitches starts in mode
func NewVolumeSwitches(mode VolumeMode) *VolumeSwitches {
	s := &VolumeSwitches{}
	s.Set(mode)
	return s
}

// Input1 is high in normal mode
func (s *VolumeSwitches) Input1() Switch {
	return SwitchFunc(s.in1.Load)
}

// Input2 is high in silent mode
func (s *VolumeSwitches) Input2() Switch {
	return SwitchFunc(s.in2.Load)
}

// Mode resolves the current switch positions
func (s *VolumeSwitches) Mode() VolumeMode {
	return ResolveVolume(s.Input1(), s.Input2())
}

// Set moves both switches to select mode
func (s *VolumeSwitches) Set(mode VolumeMode) {
	switch mode {
	case VolumeNormal:
		s.in1.Store(true)
		s.in2.Store(false)
	case VolumeSilent:
		s.in1.Store(false)
		s.in2.Store(true)
	default:
		s.in1.Store(false)
		s.in2.Store(false)
	}
}

// Cycle steps normal -> soft -> silent -> normal and returns the new mode
func (s *VolumeSwitches) Cycle() VolumeMode {
	next := VolumeNormal
	switch s.Mode() {
	case VolumeNormal:
		next = VolumeSoft
	case VolumeSoft:
		next = VolumeSilent
	}
	s.Set(next)
	return next
}
