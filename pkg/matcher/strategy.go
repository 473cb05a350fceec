package matcher

import "github.com/dlclark/regexp2"

// Strategy selects how a pattern becomes a regular expression.
type Strategy int

const (
	// StrategyLiteral escapes every metacharacter so the pattern matches as text.
	StrategyLiteral Strategy = iota
	// StrategyExtended compiles the pattern as written.
	StrategyExtended
)

func (s Strategy) String() string {
	switch s {
	case StrategyLiteral:
		return "literal"
	case StrategyExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// Mode is a strategy plus its case-folding flag. It is fixed at compile
// time; nothing on the per-line path inspects it.
type Mode struct {
	Strategy Strategy
	FoldCase bool
}

// ModeFor derives the mode from the two user-facing flags.
func ModeFor(extendedRegexp, ignoreCase bool) Mode {
	mode := Mode{Strategy: StrategyLiteral, FoldCase: ignoreCase}
	if extendedRegexp {
		mode.Strategy = StrategyExtended
	}
	return mode
}

func (m Mode) options(base regexp2.RegexOptions) regexp2.RegexOptions {
	if m.FoldCase {
		return base | regexp2.IgnoreCase
	}
	return base
}

func (m Mode) String() string {
	if m.FoldCase {
		return m.Strategy.String() + "/fold"
	}
	return m.Strategy.String()
}
