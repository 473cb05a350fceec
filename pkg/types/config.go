package types

import "fmt"

// MatchConfig controls how a pattern is compiled and applied to a line.
type MatchConfig struct {
	Pattern        string // search text or expression
	IgnoreCase     bool   // fold case at compile time
	Invert         bool   // select non-matching lines
	ExtendedRegexp bool   // false = pattern is matched as literal text
}

// RunConfig is the resolved configuration of one invocation.
type RunConfig struct {
	MatchConfig

	// Files is the initial work-list. Empty with Recursive set means
	// "walk the current directory".
	Files []string

	// Recursive descends into directory operands.
	Recursive bool

	// Color wraps matches, file names and separators in ANSI escapes.
	Color bool

	// Exclude holds gitignore-style patterns applied to walked paths.
	Exclude []string

	// Include holds globs; when set, walked files must match one of them.
	Include []string
}

// ColorMode is the value of the --color flag.
type ColorMode string

const (
	ColorNever  ColorMode = "never"
	ColorAlways ColorMode = "always"
	ColorAuto   ColorMode = "auto"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorNever, ColorAlways, ColorAuto:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want always, never or auto)", s)
}

// Enabled resolves the mode to a boolean. isTerminal is consulted only for
// ColorAuto.
func (m ColorMode) Enabled(isTerminal bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorAuto:
		return isTerminal
	default:
		return false
	}
}
