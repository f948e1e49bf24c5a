package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/solo-pong/constants"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config aggregates all tunable game parameters
type Config struct {
	// Display
	Width, Height int

	// Timing
	TickInterval    time.Duration
	PresentInterval time.Duration

	// Ball
	BallSize    int
	VelocityMin int
	VelocityMax int

	// Paddle
	PaddleHeight       int
	PaddleIncrement    int
	PaddleShrink       int
	PaddleFloorDivisor int

	// Banner
	BannerHeight int

	// Explosion
	ExplosionFrames     int
	ExplosionFrameDelay time.Duration

	// Input
	RotationDebounce time.Duration
	ClickDebounce    time.Duration
	InvertRotation   bool

	// Audio
	MaxVoices int

	// Seed for ball randomization, 0 seeds from the clock
	Seed int64
}

// Default returns the configuration of the reference hardware
func Default() *Config {
	return &Config{
		Width:               constants.DisplayWidth,
		Height:              constants.DisplayHeight,
		TickInterval:        constants.TickInterval,
		PresentInterval:     constants.PresentInterval,
		BallSize:            constants.BallSize,
		VelocityMin:         constants.VelocityMin,
		VelocityMax:         constants.VelocityMax,
		PaddleHeight:        constants.PaddleHeight,
		PaddleIncrement:     constants.PaddleIncrement,
		PaddleShrink:        constants.PaddleShrink,
		PaddleFloorDivisor:  constants.PaddleFloorDivisor,
		BannerHeight:        constants.BannerHeight,
		ExplosionFrames:     constants.ExplosionFrames,
		ExplosionFrameDelay: constants.ExplosionFrameDelay,
		RotationDebounce:    constants.RotationDebounce,
		ClickDebounce:       constants.ClickDebounce,
		MaxVoices:           constants.MaxVoices,
	}
}

// Load returns Default overridden by SOLOPONG_* environment variables
// Unparsable values are ignored and the default is kept
func Load() *Config {
	cfg := Default()

	envInt("SOLOPONG_WIDTH", &cfg.Width)
	envInt("SOLOPONG_HEIGHT", &cfg.Height)
	envInt("SOLOPONG_MAX_VOICES", &cfg.MaxVoices)
	envMillis("SOLOPONG_TICK_MS", &cfg.TickInterval)
	envMillis("SOLOPONG_PRESENT_MS", &cfg.PresentInterval)
	envMillis("SOLOPONG_ROTATION_DEBOUNCE_MS", &cfg.RotationDebounce)
	envMillis("SOLOPONG_CLICK_DEBOUNCE_MS", &cfg.ClickDebounce)

	if v := os.Getenv("SOLOPONG_INVERT_ROTATION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.InvertRotation = b
		}
	}

	if v := os.Getenv("SOLOPONG_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}

	// Band format: "min,max"
	if v := os.Getenv("SOLOPONG_VELOCITY_BAND"); v != "" {
		lo, hi, ok := strings.Cut(v, ",")
		if ok {
			minV, err1 := strconv.Atoi(strings.TrimSpace(lo))
			maxV, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 == nil && err2 == nil && minV > 0 && minV <= maxV {
				cfg.VelocityMin = minV
				cfg.VelocityMax = maxV
			}
		}
	}

	return cfg
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

func envMillis(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = time.Duration(n) * time.Millisecond
		}
	}
}

// Validate checks structural consistency of the geometry and timing
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: display %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.BallSize <= 0 || c.BallSize >= c.Width:
		return fmt.Errorf("%w: ball size %d", ErrInvalidConfig, c.BallSize)
	case c.MaxY() <= c.BannerHeight:
		return fmt.Errorf("%w: no room between banner and paddle (maxY %d, banner %d)", ErrInvalidConfig, c.MaxY(), c.BannerHeight)
	case c.VelocityMin <= 0 || c.VelocityMin > c.VelocityMax:
		return fmt.Errorf("%w: velocity band [%d, %d]", ErrInvalidConfig, c.VelocityMin, c.VelocityMax)
	case c.PaddleFloorDivisor <= 0 || c.PaddleFloor() <= 0:
		return fmt.Errorf("%w: paddle floor divisor %d", ErrInvalidConfig, c.PaddleFloorDivisor)
	case c.PaddleShrink < 0 || c.PaddleIncrement <= 0:
		return fmt.Errorf("%w: paddle step %d/%d", ErrInvalidConfig, c.PaddleIncrement, c.PaddleShrink)
	case c.TickInterval <= 0 || c.PresentInterval <= 0:
		return fmt.Errorf("%w: intervals must be positive", ErrInvalidConfig)
	case c.MaxVoices <= 0:
		return fmt.Errorf("%w: max voices %d", ErrInvalidConfig, c.MaxVoices)
	}
	return nil
}

// MaxX is the largest ball x (top-left corner)
func (c *Config) MaxX() int {
	return c.Width - c.BallSize
}

// MaxY is the paddle line for the ball top-left corner
func (c *Config) MaxY() int {
	return c.Height - c.BallSize - c.PaddleHeight
}

// PaddleFloor is the minimum paddle width
func (c *Config) PaddleFloor() int {
	return c.Width / c.PaddleFloorDivisor
}

// PaddleInitial is the starting paddle width and left position
func (c *Config) PaddleInitial() int {
	return c.Width / constants.PaddleInitialDivisor
}
