package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SizeProbe = (*Probe)(nil)

// Probe implements ports.SizeProbe on top of the Walker.
type Probe struct {
	walker  *Walker
	ignores []string
}

// NewProbe creates a new Probe.
func NewProbe(walker *Walker) *Probe {
	return &Probe{walker: walker}
}

// WithIgnores returns a copy of the probe that skips entries matching patterns.
func (p *Probe) WithIgnores(patterns []string) ports.SizeProbe {
	return &Probe{
		walker:  p.walker,
		ignores: slices.Clone(patterns),
	}
}

// Measure sums the logical size of every regular file below root.
//
// Symbolic links count their own size and are never followed, which also keeps
// link cycles from being walked. A root that is itself a link is resolved once.
func (p *Probe) Measure(root string) domain.SizeResult {
	root, err := p.openRoot(root)
	if err != nil {
		return failure(root, err)
	}

	var res domain.SizeResult
	for entry, err := range p.walker.Walk(root, p.ignores) {
		if err != nil {
			res.Partial = true
			res.Unreadable++
			continue
		}

		mode := entry.Info.Mode()
		if mode.IsRegular() || mode&iofs.ModeSymlink != 0 {
			res.Bytes += uint64(entry.Info.Size()) //nolint:gosec // Sizes reported by Lstat are never negative
		}
	}

	return res
}

// openRoot checks that root is a readable directory and returns the path to walk.
func (p *Probe) openRoot(root string) (string, error) {
	info, err := os.Lstat(root)
	if err != nil {
		return root, err
	}

	if info.Mode()&iofs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return root, err
		}
		root = resolved
		if info, err = os.Stat(root); err != nil {
			return root, err
		}
	}

	if !info.IsDir() {
		return root, domain.ErrNotDirectory
	}

	f, err := os.Open(root) //nolint:gosec // Path comes from the resolver
	if err != nil {
		return root, err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	entries, err := f.ReadDir(1)
	if err != nil && !errors.Is(err, io.EOF) {
		return root, err
	}

	// Listing needs read permission, reaching the entries needs search permission.
	if len(entries) > 0 {
		if _, err := entries[0].Info(); errors.Is(err, iofs.ErrPermission) {
			return root, err
		}
	}

	return root, nil
}

func failure(root string, err error) domain.SizeResult {
	var kind domain.FailureKind
	var sentinel error

	switch {
	case errors.Is(err, domain.ErrNotDirectory):
		return domain.SizeFailed(domain.FailureNotDirectory, zerr.With(err, "path", root))
	case errors.Is(err, iofs.ErrNotExist):
		kind, sentinel = domain.FailureNotFound, domain.ErrPathNotFound
	case errors.Is(err, iofs.ErrPermission):
		kind, sentinel = domain.FailurePermissionDenied, domain.ErrPermissionDenied
	default:
		kind, sentinel = domain.FailureUnreadable, domain.ErrPathUnreadable
	}

	return domain.SizeFailed(kind, zerr.With(zerr.Wrap(err, sentinel.Error()), "path", root))
}
