// Package ui renders terminal output for esaudit.
package ui

import "fmt"

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent = 74  // blue
	colorCmd    = 250 // light gray
	colorMuted  = 245 // medium gray
	colorPass   = 114 // green
	colorFail   = 203 // red
)

const (
	markPass = "✓"
	markFail = "✗"
)

var noColor bool

func render(color int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	return render(colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return render(colorMuted, s)
}

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string {
	return render(colorCmd, s)
}

// RenderPass returns "✓ s" with a green mark.
func RenderPass(s string) string {
	return render(colorPass, markPass) + " " + s
}

// RenderFail returns "✗ s" with a red mark.
func RenderFail(s string) string {
	return render(colorFail, markFail) + " " + s
}

// SetColor turns ANSI output on or off globally.
func SetColor(enabled bool) {
	noColor = !enabled
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	SetColor(false)
}

// ColorEnabled reports whether Render* functions emit ANSI sequences.
func ColorEnabled() bool {
	return !noColor
}
