package constants

// Banner Layout
const (
	// BannerHeight is the height of the top strip, the ball bounces off its lower edge
	BannerHeight = 18

	// BannerTextX is the left margin of banner text
	BannerTextX = 5

	// BannerFontHeight is the glyph height of the banner font (basicfont 7x13)
	BannerFontHeight = 13
)

// Banner Texts
const (
	StartText   = "Press knob to start"
	RestartText = "Press to restart"
	ScoreText   = "SCORE:"
)
