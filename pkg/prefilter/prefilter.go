package prefilter

import (
	"github.com/cloudflare/ahocorasick"
)

// Prefilter uses Aho-Corasick to reject input that contains none of a set of
// literal keywords before a more expensive regex runs.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string // keyword at each index
}

// New creates a prefilter from keywords. Duplicates are dropped. An empty
// keyword matches everything, so its presence turns the prefilter into a
// pass-through.
func New(keywords []string) *Prefilter {
	pf := &Prefilter{}

	seen := make(map[string]bool)
	for _, kw := range keywords {
		if kw == "" {
			// Empty string occurs in every input
			pf.keywords = nil
			return pf
		}
		if !seen[kw] {
			seen[kw] = true
			pf.keywords = append(pf.keywords, kw)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// MayMatch reports whether content contains at least one keyword.
// A pass-through prefilter always returns true. Safe for concurrent use.
func (pf *Prefilter) MayMatch(content []byte) bool {
	if pf.matcher == nil {
		return true
	}
	return len(pf.matcher.MatchThreadSafe(content)) > 0
}
