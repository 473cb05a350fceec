// Package search drives a grep run: it resolves the work-list into files,
// applies the matcher line by line, and writes results and errors to two
// separate channels.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"syscall"

	"github.com/spf13/afero"

	"github.com/praetorian-inc/grepr/pkg/enum"
	"github.com/praetorian-inc/grepr/pkg/logger"
	"github.com/praetorian-inc/grepr/pkg/matcher"
	"github.com/praetorian-inc/grepr/pkg/types"
)

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the diagnostic logger. Diagnostics never go to the
// output or error channels.
func WithLogger(l logger.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// WithFs runs against fsys instead of the operating system's filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(d *Driver) {
		d.fs = fsys
	}
}

// WithEnumerator replaces the filesystem walker used for directories.
func WithEnumerator(e enum.Enumerator) Option {
	return func(d *Driver) {
		d.enum = e
	}
}

// Driver runs one configuration against the filesystem.
// A Driver is not safe for concurrent use.
type Driver struct {
	cfg    types.RunConfig
	stdout io.Writer
	stderr io.Writer
	log    logger.Logger
	fs     afero.Fs
	enum   enum.Enumerator

	matcher   *matcher.Matcher
	work      *WorkList
	state     RunState
	multiFile bool
}

// NewDriver creates a Driver writing matches to stdout and error lines to
// stderr.
func NewDriver(cfg types.RunConfig, stdout, stderr io.Writer, opts ...Option) *Driver {
	d := &Driver{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logger.NewNoOpLogger()
	}
	if d.fs == nil {
		d.fs = afero.NewOsFs()
	}
	if d.enum == nil {
		d.enum = enum.NewFilesystemEnumerator(d.fs, d.walkConfig(), d.log)
	}
	return d
}

func (d *Driver) walkConfig() enum.Config {
	return enum.Config{Exclude: d.cfg.Exclude, Include: d.cfg.Include}
}

// Run is a convenience wrapper around NewDriver(...).Run.
func Run(ctx context.Context, cfg types.RunConfig, stdout, stderr io.Writer, opts ...Option) (bool, error) {
	return NewDriver(cfg, stdout, stderr, opts...).Run(ctx)
}

// Run processes the work-list and reports whether at least one line was
// selected with no errors.
//
// The returned error is non-nil only for conditions that abort the run:
// an invalid pattern or include glob (before any output), a cancelled
// context, or a failed write to either channel. Missing files,
// directories and unreadable paths are reported on the error channel and
// the run continues.
func (d *Driver) Run(ctx context.Context) (bool, error) {
	m, err := matcher.New(d.cfg.MatchConfig)
	if err != nil {
		return false, err
	}
	if err := d.walkConfig().Validate(); err != nil {
		return false, err
	}
	d.matcher = m
	d.state = RunState{}
	d.work = NewWorkList(d.cfg.Files)
	d.multiFile = d.isMultiFile()

	d.log.LogDebug(fmt.Sprintf("pattern %q mode=%s invert=%t multi-file=%t",
		m.Pattern(), m.Mode(), m.Inverted(), d.multiFile))

	if d.cfg.Recursive && len(d.cfg.Files) == 0 {
		if err := d.expand(ctx, ""); err != nil {
			return false, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		path, ok := d.work.Next()
		if !ok {
			break
		}
		if err := d.process(ctx, path); err != nil {
			return false, err
		}
	}

	d.log.LogDebug(fmt.Sprintf("visited %d paths selected=%t error=%t",
		d.work.Len(), d.state.Selected(), d.state.HadError()))
	return d.state.Success(), nil
}

// State returns the latches of the most recent Run.
func (d *Driver) State() RunState { return d.state }

// isMultiFile decides once, before any path is processed, whether output
// lines carry a file prefix: more than one operand, or a recursive run
// that will expand a directory.
func (d *Driver) isMultiFile() bool {
	if len(d.cfg.Files) > 1 {
		return true
	}
	if !d.cfg.Recursive {
		return false
	}
	if len(d.cfg.Files) == 0 {
		return true
	}
	info, err := d.fs.Stat(d.cfg.Files[0])
	return err == nil && info.IsDir()
}

func (d *Driver) process(ctx context.Context, path string) error {
	info, err := d.fs.Stat(path)
	if err != nil {
		return d.pathError(path, err)
	}

	if info.IsDir() {
		if !d.cfg.Recursive {
			return d.errorLine(path, "Is a directory")
		}
		return d.expand(ctx, path)
	}

	return d.searchFile(path)
}

// expand appends every file beneath dir to the work-list. An empty dir
// walks the current directory without a root marker on the labels.
func (d *Driver) expand(ctx context.Context, dir string) error {
	before := d.work.Len()
	err := d.enum.Enumerate(ctx, dir, func(label string) error {
		d.work.Append(label)
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		display := dir
		if display == "" {
			display = "."
		}
		return d.pathError(display, err)
	}
	d.log.LogDebug(fmt.Sprintf("expanded %q into %d files, %d queued",
		dir, d.work.Len()-before, d.work.Remaining()))
	return nil
}

func (d *Driver) searchFile(path string) error {
	content, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return d.pathError(path, err)
	}

	if isBinary(content) {
		d.log.LogDebug(fmt.Sprintf("%s: treating as binary", path))
		return d.outputLine(fmt.Sprintf("Binary file %s matches", path))
	}

	var matchErr error
	err = eachLine(content, func(line string) (bool, error) {
		ok, err := d.matcher.Matches(line)
		if err != nil {
			matchErr = err
			return false, nil
		}
		if !ok {
			return true, nil
		}
		formatted, err := d.matcher.Format(line, path, d.multiFile, d.cfg.Color)
		if err != nil {
			matchErr = err
			return false, nil
		}
		return true, d.outputLine(formatted)
	})
	if err != nil {
		return err
	}
	if matchErr != nil {
		return d.errorLine(path, matchErr.Error())
	}
	return nil
}

func (d *Driver) outputLine(s string) error {
	d.state.MarkSelected()
	if _, err := fmt.Fprintln(d.stdout, s); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (d *Driver) errorLine(path, reason string) error {
	d.state.MarkError()
	if _, err := fmt.Fprintf(d.stderr, "grep: %s: %s\n", path, reason); err != nil {
		return fmt.Errorf("writing error: %w", err)
	}
	return nil
}

func (d *Driver) pathError(path string, err error) error {
	d.log.LogDebug(fmt.Sprintf("%s: %v", path, err))
	return d.errorLine(path, describe(err))
}

// describe maps a filesystem error to grep's wording.
func describe(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return "No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	case errors.Is(err, syscall.EISDIR):
		return "Is a directory"
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
