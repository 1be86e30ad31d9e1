// Package terminal answers questions about the terminal the maps are
// printed to.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// EnvNoColor disables colour output when set to any value
const EnvNoColor = "NO_COLOR"

// GetSize returns the width and height of the terminal behind f.
// Falls back to defaults if f is not a terminal.
func GetSize(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// ColorEnabled returns true if output written to f should be coloured
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
