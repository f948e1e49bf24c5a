// Package terminal renders the game framebuffer into a tcell screen and turns
// key presses into encoder events.
//
// Features:
//   - Half-block cells: every terminal cell shows two vertically stacked pixels
//   - Nearest-neighbour scaling of the square framebuffer to the largest fitting grid
//   - Arrow keys as rotary detents, Enter/Space as the knob click, 'v' cycles the volume switches
//   - The screen is registered with the crash handler so a panic restores the terminal
package terminal
