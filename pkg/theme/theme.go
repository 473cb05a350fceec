// Package theme holds the ANSI colour scheme used for match output.
//
// The sequences are the GNU grep defaults (GREP_COLORS ms=01;31, fn=35,
// se=36), each followed by an erase-to-end-of-line so that background
// colours do not bleed across wrapped lines.
package theme

const (
	matchStart     = "\x1b[01;31m\x1b[K"
	fileStart      = "\x1b[35m\x1b[K"
	separatorStart = "\x1b[36m\x1b[K"
	reset          = "\x1b[m\x1b[K"
)

// Match highlights a matched substring.
func Match(s string) string {
	return matchStart + s + reset
}

// File colours a file name prefix.
func File(s string) string {
	return fileStart + s + reset
}

// Separator colours the separator between file name and line.
func Separator(s string) string {
	return separatorStart + s + reset
}

// Theme bundles the three wrapping functions.
type Theme struct {
	Match     func(string) string
	File      func(string) string
	Separator func(string) string
}

func plain(s string) string { return s }

// Plain leaves every string untouched.
var Plain = Theme{Match: plain, File: plain, Separator: plain}

// Color is the GNU grep default scheme.
var Color = Theme{Match: Match, File: File, Separator: Separator}

// For returns Color when enabled, Plain otherwise.
func For(enabled bool) Theme {
	if enabled {
		return Color
	}
	return Plain
}
