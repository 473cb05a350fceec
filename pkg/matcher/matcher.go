// Package matcher turns a pattern into a line predicate and renders hits.
package matcher

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/grepr/pkg/prefilter"
	"github.com/praetorian-inc/grepr/pkg/theme"
	"github.com/praetorian-inc/grepr/pkg/types"
)

// Separator sits between the file label and the line in multi-file output.
const Separator = ":"

// Matcher decides whether a line is selected and formats it for output.
// It holds no mutable state and may be shared.
type Matcher struct {
	pattern string
	mode    Mode
	invert  bool
	re      *regexp2.Regexp
	pf      *prefilter.Prefilter // literal case-sensitive mode only
}

// Compile builds a non-inverting Matcher. Literal patterns never fail;
// extended patterns fail with *InvalidPatternError when malformed.
func Compile(pattern string, extendedRegexp, ignoreCase bool) (*Matcher, error) {
	return compileMode(pattern, ModeFor(extendedRegexp, ignoreCase))
}

// New compiles cfg and applies its inversion flag.
func New(cfg types.MatchConfig) (*Matcher, error) {
	m, err := Compile(cfg.Pattern, cfg.ExtendedRegexp, cfg.IgnoreCase)
	if err != nil {
		return nil, err
	}
	m.invert = cfg.Invert
	return m, nil
}

func compileMode(pattern string, mode Mode) (*Matcher, error) {
	m := &Matcher{pattern: pattern, mode: mode}

	var err error
	switch mode.Strategy {
	case StrategyLiteral:
		m.re, err = regexp2.Compile(quoteMeta(pattern), mode.options(regexp2.None))
		if !mode.FoldCase {
			m.pf = prefilter.New([]string{pattern})
		}
	case StrategyExtended:
		m.re, err = compileExtended(pattern, mode)
	default:
		return nil, fmt.Errorf("unknown match strategy %d", mode.Strategy)
	}
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}

	return m, nil
}

// compileExtended prefers the default parser, whose \w, \d and \s classes
// are Unicode-aware, and falls back to RE2 mode for syntax only it accepts
// ((?P<name>...) groups). The default parser silently drops POSIX bracket
// classes such as [:alpha:], so patterns containing one go to RE2 mode first.
func compileExtended(pattern string, mode Mode) (*regexp2.Regexp, error) {
	order := []regexp2.RegexOptions{regexp2.None, regexp2.RE2}
	if strings.Contains(pattern, "[:") {
		order[0], order[1] = order[1], order[0]
	}
	re, err := regexp2.Compile(pattern, mode.options(order[0]))
	if err != nil {
		re, err = regexp2.Compile(pattern, mode.options(order[1]))
	}
	return re, err
}

// regexMeta lists the characters regexp2 treats specially outside a class.
const regexMeta = `\.+*?()|[]{}^$# `

// quoteMeta escapes regex metacharacters and leaves every other rune as
// written. regexp2.Escape rewrites non-printable runes as \uXXX, which the
// parser rejects for code points that do not fit four hex digits.
func quoteMeta(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) * 2)
	for _, r := range pattern {
		if strings.ContainsRune(regexMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Pattern returns the pattern as supplied by the caller.
func (m *Matcher) Pattern() string { return m.pattern }

// Mode returns the compiled strategy.
func (m *Matcher) Mode() Mode { return m.mode }

// Inverted reports whether non-matching lines are selected.
func (m *Matcher) Inverted() bool { return m.invert }

// Matches reports whether line is selected, honouring inversion.
func (m *Matcher) Matches(line string) (bool, error) {
	hit, err := m.hit(line)
	if err != nil {
		return false, err
	}
	return hit != m.invert, nil
}

func (m *Matcher) hit(line string) (bool, error) {
	if m.pf != nil && !m.pf.MayMatch([]byte(line)) {
		return false, nil
	}
	hit, err := m.re.MatchString(line)
	if err != nil {
		return false, fmt.Errorf("matching %q: %w", m.pattern, err)
	}
	return hit, nil
}

// Format renders a selected line. With color on and no inversion every
// non-overlapping occurrence is highlighted, leftmost first. With multiFile
// the line is prefixed by fileLabel and the separator, themed when color
// is on.
func (m *Matcher) Format(line, fileLabel string, multiFile, color bool) (string, error) {
	th := theme.For(color)

	if color && !m.invert {
		highlighted, err := m.Highlight(line, th)
		if err != nil {
			return "", err
		}
		line = highlighted
	}

	if multiFile {
		return th.File(fileLabel) + th.Separator(Separator) + line, nil
	}
	return line, nil
}

// Highlight wraps every match in line with th.Match. Zero-length matches
// are left alone.
func (m *Matcher) Highlight(line string, th theme.Theme) (string, error) {
	out, err := m.re.ReplaceFunc(line, func(match regexp2.Match) string {
		s := match.String()
		if s == "" {
			return s
		}
		return th.Match(s)
	}, -1, -1)
	if err != nil {
		return "", fmt.Errorf("highlighting %q: %w", m.pattern, err)
	}
	return out, nil
}
