package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/praetorian-inc/grepr/pkg/logger"
	"github.com/praetorian-inc/grepr/pkg/search"
	"github.com/praetorian-inc/grepr/pkg/types"
)

const (
	exitSuccess = 0
	exitFailure = 2
)

// errNoSelection ends a run that selected nothing or hit a path error.
// Everything worth saying has already been written, so it is never printed.
var errNoSelection = errors.New("no lines selected")

var (
	ignoreCase     bool
	invertMatch    bool
	extendedRegexp bool
	recursive      bool
	colorFlag      string
	excludeFlags   []string
	includeFlags   []string
	logLevel       string
)

// newRootCmd builds the command and binds its flags to the package
// variables, resetting them to their defaults.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grepr [flags] PATTERN [FILE...]",
		Short: "Search files for lines matching a pattern",
		Long: `grepr prints the lines of each FILE that contain PATTERN.

PATTERN is literal text unless -E is given. With -r, directories are searched
recursively, and with no FILE the current directory is searched.

Exit status is 0 if a line is selected and no error occurred, 2 otherwise.`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGrep,
	}
	cmd.SetVersionTemplate(versionString())

	flags := cmd.Flags()
	flags.BoolVarP(&ignoreCase, "ignore-case", "i", false, "Ignore case distinctions in patterns and data")
	flags.BoolVarP(&invertMatch, "invert-match", "v", false, "Select non-matching lines")
	flags.BoolVarP(&extendedRegexp, "extended-regexp", "E", false, "PATTERN is an extended regular expression")
	flags.BoolVarP(&recursive, "recursive", "r", false, "Search directories recursively")
	flags.StringVar(&colorFlag, "color", string(types.ColorNever), "Highlight matches: always, never or auto")
	flags.Lookup("color").NoOptDefVal = string(types.ColorAuto)
	flags.StringArrayVar(&excludeFlags, "exclude", nil, "Skip walked paths matching a gitignore-style pattern (repeatable)")
	flags.StringArrayVar(&includeFlags, "include", nil, "Search only walked files matching a glob (repeatable)")
	flags.StringVar(&logLevel, "log-level", logger.DefaultLevel, "Diagnostic log level: trace, debug, info, warn, error")

	return cmd
}

func runGrep(cmd *cobra.Command, args []string) error {
	mode, err := types.ParseColorMode(colorFlag)
	if err != nil {
		return err
	}
	if !logger.ValidLevel(logLevel) {
		return fmt.Errorf("invalid log level %q", logLevel)
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	log := logger.NewConsoleLogger(stderr, logLevel)

	cfg := types.RunConfig{
		MatchConfig: types.MatchConfig{
			Pattern:        args[0],
			IgnoreCase:     ignoreCase,
			Invert:         invertMatch,
			ExtendedRegexp: extendedRegexp,
		},
		Files:     args[1:],
		Recursive: recursive,
		Color:     mode.Enabled(colorTerminal(stdout)),
		Exclude:   excludeFlags,
		Include:   includeFlags,
	}
	log.LogDebug(fmt.Sprintf("color=%s resolved to %t", mode, cfg.Color))

	ok, err := search.Run(cmd.Context(), cfg, stdout, stderr, search.WithLogger(log))
	if err != nil {
		return err
	}
	if !ok {
		return errNoSelection
	}
	return nil
}

// colorTerminal reports whether w is a terminal that accepts colour.
func colorTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errNoSelection) {
			fmt.Fprintf(stderr, "grep: %v\n", err)
		}
		return exitFailure
	}
	return exitSuccess
}
