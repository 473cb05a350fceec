package matcher

import "fmt"

// InvalidPatternError reports a pattern the regex engine rejected.
// It is the only fatal error of a run and is raised before any file is read.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}
