package enum

import (
	"context"
	"fmt"
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// Enumerator discovers the files beneath a directory.
type Enumerator interface {
	// Enumerate yields the label of every regular file beneath root, in
	// walk order. Returning an error from callback stops the walk.
	Enumerate(ctx context.Context, root string, callback func(label string) error) error
}

// Config for enumeration.
type Config struct {
	// Exclude holds gitignore-style patterns matched against paths relative
	// to the walk root. Matching files are skipped and matching directories
	// are not descended into.
	Exclude []string

	// Include holds doublestar globs. When set, only files whose base name
	// or relative path matches one of them are yielded.
	Include []string
}

// Validate checks the include globs.
func (c Config) Validate() error {
	for _, p := range c.Include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid include pattern %q", p)
		}
	}
	return nil
}

// included reports whether a walked file passes the include globs.
func (c Config) included(rel string) bool {
	if len(c.Include) == 0 {
		return true
	}
	base := path.Base(rel)
	for _, p := range c.Include {
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
