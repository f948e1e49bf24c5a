// Package hardware binds the game to Raspberry Pi class boards through periph.io:
// a quadrature rotary encoder with push button, two volume switches, a piezo on a
// PWM pin and an SSD1306 OLED on I²C.
package hardware
