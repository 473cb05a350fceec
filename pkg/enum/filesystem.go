package enum

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"

	"github.com/praetorian-inc/grepr/pkg/logger"
)

// FilesystemEnumerator walks a directory tree on an afero filesystem.
//
// Within each directory, files are yielded in lexical order before any
// subdirectory is entered; subdirectories are then walked in lexical order.
type FilesystemEnumerator struct {
	fs     afero.Fs
	config Config
	ignore *gitignore.GitIgnore
	log    logger.Logger
}

// NewFilesystemEnumerator creates a new filesystem enumerator. A nil fsys
// walks the operating system's filesystem.
func NewFilesystemEnumerator(fsys afero.Fs, config Config, log logger.Logger) *FilesystemEnumerator {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	e := &FilesystemEnumerator{fs: fsys, config: config, log: log}
	if len(config.Exclude) > 0 {
		e.ignore = gitignore.CompileIgnoreLines(config.Exclude...)
	}
	return e
}

// Enumerate walks root and calls callback with the label of every file.
//
// An empty root walks the current directory and labels are the bare
// relative paths ("sub/a.txt"). Otherwise labels are root joined to the
// relative path with a single forward slash ("dir/sub/a.txt"). An error is
// returned only when root itself cannot be read, the context is cancelled,
// or callback fails.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, root string, callback func(label string) error) error {
	base := root
	if base == "" {
		base = "."
	}
	return e.walk(ctx, base, root, "", callback)
}

func (e *FilesystemEnumerator) walk(ctx context.Context, base, root, rel string, callback func(label string) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	dirPath := filepath.Join(base, filepath.FromSlash(rel))
	entries, err := afero.ReadDir(e.fs, dirPath)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("reading directory %s: %w", dirPath, err)
		}
		e.log.LogDebug(fmt.Sprintf("skipping unreadable directory %s: %v", dirPath, err))
		return nil
	}

	var subdirs []string
	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name())

		if entry.IsDir() {
			if e.excluded(childRel, true) {
				continue
			}
			subdirs = append(subdirs, childRel)
			continue
		}

		switch {
		case entry.Mode()&os.ModeSymlink != 0:
			// Dangling links are yielded and reported by the reader.
			info, err := e.fs.Stat(filepath.Join(dirPath, entry.Name()))
			if err == nil && info.IsDir() {
				e.log.LogDebug(fmt.Sprintf("not following directory symlink %s", childRel))
				continue
			}
		case !entry.Mode().IsRegular():
			e.log.LogDebug(fmt.Sprintf("skipping special file %s", childRel))
			continue
		}

		if e.excluded(childRel, false) || !e.config.included(childRel) {
			continue
		}
		if err := callback(label(root, childRel)); err != nil {
			return err
		}
	}

	for _, sub := range subdirs {
		if err := e.walk(ctx, base, root, sub, callback); err != nil {
			return err
		}
	}
	return nil
}

// excluded reports whether rel matches an exclude pattern. Directories are
// also tested with a trailing slash so "name/" patterns apply to them.
func (e *FilesystemEnumerator) excluded(rel string, isDir bool) bool {
	if e.ignore == nil {
		return false
	}
	candidates := []string{rel}
	if isDir {
		candidates = append(candidates, rel+"/")
	}
	for _, c := range candidates {
		if ok, how := e.ignore.MatchesPathHow(c); ok {
			if how != nil {
				e.log.LogDebug(fmt.Sprintf("excluding %s (pattern %q)", rel, how.Line))
			}
			return true
		}
	}
	return false
}

// label joins the walk root and a slash-separated relative path.
func label(root, rel string) string {
	if root == "" {
		return rel
	}
	return strings.TrimSuffix(root, "/") + "/" + rel
}
