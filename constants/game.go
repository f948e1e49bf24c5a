package constants

import "time"

// Display Geometry
const (
	// DisplayWidth and DisplayHeight match the 240x240 ST7789 panel
	DisplayWidth  = 240
	DisplayHeight = 240
)

// Game Loop Timing Constants
const (
	// TickInterval is the physics update interval
	TickInterval = 200 * time.Millisecond

	// PresentInterval is the cadence of the background present loop
	PresentInterval = 93 * time.Millisecond
)

// Ball Constants
const (
	// BallSize is the ball diameter in pixels
	BallSize = 10

	// BallStartOffset is the distance from the banner edge where a new round spawns the ball
	BallStartOffset = 5

	// VelocityMin and VelocityMax bound each velocity component after any perturbation
	VelocityMin = 7
	VelocityMax = 13
)

// Paddle Constants
const (
	PaddleHeight    = 3
	PaddleIncrement = 30
	PaddleShrink    = 3

	// PaddleFloorDivisor gives the minimum paddle width as DisplayWidth/PaddleFloorDivisor
	PaddleFloorDivisor = 24

	// PaddleInitialDivisor gives the starting width and position as DisplayWidth/PaddleInitialDivisor
	PaddleInitialDivisor = 3
)

// Explosion Animation
const (
	ExplosionFrames      = 4
	ExplosionFrameDelay  = 100 * time.Millisecond
	ExplosionStartRadius = 4
)

// Input Debounce Windows
const (
	RotationDebounce = 100 * time.Millisecond
	ClickDebounce    = 500 * time.Millisecond
)
