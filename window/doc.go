// Package window runs the game in a desktop window through ebiten
// Builds with the headless tag get a stand-in that never opens
package window

import "errors"

// ErrUnavailable is returned by Run in builds without a window system
var ErrUnavailable = errors.New("window: built with the headless tag")
