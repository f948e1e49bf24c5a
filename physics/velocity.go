// Package physics holds the integer velocity rules of the ball: band clamping,
// wall jitter and the paddle-third deflection
package physics

import "github.com/lixenwraith/solo-pong/vmath"

// Rand is the randomness source used by perturbations, *vmath.FastRand satisfies it
type Rand interface {
	Intn(n int) int
}

// Band bounds the magnitude of each velocity component
type Band struct {
	Min, Max int
}

// Clamp limits |v| to the band keeping the sign, zero maps to +Min
func (b Band) Clamp(v int) int {
	if v < 0 {
		return -vmath.Clamp(-v, b.Min, b.Max)
	}
	return vmath.Clamp(v, b.Min, b.Max)
}

// Contains reports whether |v| lies in the band
func (b Band) Contains(v int) bool {
	a := vmath.Abs(v)
	return a >= b.Min && a <= b.Max
}

// Jitter shifts v by -1, 0 or +1
func Jitter(v int, rng Rand) int {
	return v + rng.Intn(3) - 1
}

// Third identifies which part of the paddle the ball landed on
type Third uint8

const (
	ThirdLeft Third = iota
	ThirdMiddle
	ThirdRight
)

func (t Third) String() string {
	switch t {
	case ThirdLeft:
		return "left"
	case ThirdMiddle:
		return "middle"
	case ThirdRight:
		return "right"
	}
	return "unknown"
}

// ThirdOf classifies cx within [left, right)
func ThirdOf(cx, left, right int) Third {
	w := right - left
	switch {
	case cx < left+w/3:
		return ThirdLeft
	case cx >= right-w/3:
		return ThirdRight
	default:
		return ThirdMiddle
	}
}

// PerturbPaddleHit deflects the velocity after the vertical component has been flipped
// Outer thirds push dx outward by 1-2 and may flatten |dy| by 1
// The middle third nudges dx by one either way and may steepen |dy| by 1
// The result is not clamped
func PerturbPaddleHit(dx, dy int, third Third, rng Rand) (int, int) {
	sy := vmath.Sign(dy)
	if sy == 0 {
		sy = -1
	}
	mag := vmath.Abs(dy)

	switch third {
	case ThirdLeft:
		dx -= 1 + rng.Intn(2)
		mag -= rng.Intn(2)
	case ThirdRight:
		dx += 1 + rng.Intn(2)
		mag -= rng.Intn(2)
	default:
		if rng.Intn(2) == 0 {
			dx--
		} else {
			dx++
		}
		mag += rng.Intn(2)
	}
	return dx, sy * mag
}
