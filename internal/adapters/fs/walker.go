// Package fs provides file system adapters for walking and measuring directory trees.
package fs

import (
	iofs "io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Entry is a non-directory entry found while walking a tree.
// Info comes from Lstat, so a symbolic link describes the link itself.
type Entry struct {
	Path string
	Info iofs.FileInfo
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Walk yields every non-directory entry below root, skipping entries whose
// base name matches one of the ignore patterns.
//
// Symbolic links are yielded as entries and never followed. Errors met along
// the way are yielded with an empty Entry and do not stop the walk, so the
// caller can keep what was gathered for the remaining entries.
func (w *Walker) Walk(root string, ignores []string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				if !yield(Entry{}, zerr.With(zerr.Wrap(err, "failed to read entry"), "path", path)) {
					return filepath.SkipAll
				}
				// Keep whatever ReadDir returned before failing.
				return nil
			}

			if skip, skipAction := w.shouldSkip(path, root, d, ignores); skip {
				return skipAction
			}

			if d.IsDir() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				if !yield(Entry{}, zerr.With(zerr.Wrap(err, "failed to stat entry"), "path", path)) {
					return filepath.SkipAll
				}
				return nil
			}

			if !yield(Entry{Path: path, Info: info}, nil) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// shouldSkip checks if an entry matches an ignore pattern.
// Returns whether to skip, with filepath.SkipDir for directories and nil for files.
// The root itself is never skipped.
func (w *Walker) shouldSkip(path, root string, d iofs.DirEntry, ignores []string) (bool, error) {
	if path == root {
		return false, nil
	}

	name := d.Name()
	for _, ignore := range ignores {
		matched, _ := filepath.Match(ignore, name)
		if matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
