// Package grepr searches files for lines matching a pattern, with the
// output format, ordering and verdict of traditional grep.
//
// # Basic Usage
//
//	ok, err := grepr.Grep("pipe", []string{"a.txt", "b.txt"})
//	if err != nil {
//	    log.Fatal(err) // invalid pattern
//	}
//	if !ok {
//	    os.Exit(2)
//	}
//
// # Capturing Output
//
// Results go to os.Stdout and error lines to os.Stderr unless redirected:
//
//	var out, errs bytes.Buffer
//	ok, err := grepr.Grep(`err(or)?`, nil,
//	    grepr.WithExtendedRegexp(),
//	    grepr.WithRecursive(),
//	    grepr.WithOutput(&out, &errs),
//	)
package grepr

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/praetorian-inc/grepr/pkg/logger"
	"github.com/praetorian-inc/grepr/pkg/matcher"
	"github.com/praetorian-inc/grepr/pkg/search"
	"github.com/praetorian-inc/grepr/pkg/types"
)

// Re-export commonly used types for convenience.
type (
	// MatchConfig controls how a pattern is compiled and applied.
	MatchConfig = types.MatchConfig

	// RunConfig is the resolved configuration of one search.
	RunConfig = types.RunConfig

	// InvalidPatternError is returned when an extended pattern does not
	// compile. No output is produced in that case.
	InvalidPatternError = matcher.InvalidPatternError
)

// grepConfig holds options for a single Grep call.
type grepConfig struct {
	run    types.RunConfig
	stdout io.Writer
	stderr io.Writer
	log    logger.Logger
	fs     afero.Fs
}

// Option configures a Grep call.
type Option func(*grepConfig)

// WithIgnoreCase matches without regard to letter case.
func WithIgnoreCase() Option {
	return func(c *grepConfig) {
		c.run.IgnoreCase = true
	}
}

// WithInvertMatch selects lines that do not match.
func WithInvertMatch() Option {
	return func(c *grepConfig) {
		c.run.Invert = true
	}
}

// WithExtendedRegexp treats the pattern as a regular expression instead of
// literal text.
func WithExtendedRegexp() Option {
	return func(c *grepConfig) {
		c.run.ExtendedRegexp = true
	}
}

// WithRecursive descends into directories. With no files the current
// directory is searched.
func WithRecursive() Option {
	return func(c *grepConfig) {
		c.run.Recursive = true
	}
}

// WithColor wraps matches, file names and separators in ANSI escapes.
func WithColor() Option {
	return func(c *grepConfig) {
		c.run.Color = true
	}
}

// WithExclude skips walked paths matching any gitignore-style pattern.
// Paths passed to Grep directly are never excluded.
func WithExclude(patterns ...string) Option {
	return func(c *grepConfig) {
		c.run.Exclude = append(c.run.Exclude, patterns...)
	}
}

// WithInclude restricts walked files to those whose base name or relative
// path matches one of the doublestar globs.
func WithInclude(globs ...string) Option {
	return func(c *grepConfig) {
		c.run.Include = append(c.run.Include, globs...)
	}
}

// WithOutput redirects selected lines to stdout and error lines to stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *grepConfig) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithLogger enables diagnostic logging.
func WithLogger(l logger.Logger) Option {
	return func(c *grepConfig) {
		c.log = l
	}
}

// WithFs searches fsys instead of the operating system's filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(c *grepConfig) {
		c.fs = fsys
	}
}

// Grep searches files for pattern and reports whether at least one line was
// selected with no errors. An error is returned only when the pattern is
// invalid or output cannot be written.
func Grep(pattern string, files []string, opts ...Option) (bool, error) {
	return GrepContext(context.Background(), pattern, files, opts...)
}

// GrepContext is Grep with a context checked between paths.
func GrepContext(ctx context.Context, pattern string, files []string, opts ...Option) (bool, error) {
	config := &grepConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	config.run.Pattern = pattern
	config.run.Files = files

	for _, opt := range opts {
		opt(config)
	}

	var searchOpts []search.Option
	if config.log != nil {
		searchOpts = append(searchOpts, search.WithLogger(config.log))
	}
	if config.fs != nil {
		searchOpts = append(searchOpts, search.WithFs(config.fs))
	}
	return search.Run(ctx, config.run, config.stdout, config.stderr, searchOpts...)
}
