// Package packagefile resolves dependencies from an already-resolved package list.
package packagefile

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.PackageResolver = (*Resolver)(nil)

// Listfile represents the structure of a package list file.
// JSON input is accepted as well, since it is a subset of YAML.
type Listfile struct {
	Packages []PackageDTO `yaml:"packages"`
}

// PackageDTO represents one resolved package in the list.
type PackageDTO struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Path    string `yaml:"path"`
}

// Resolver implements ports.PackageResolver by reading a package list file.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve reads req.PackagesFile. Relative paths resolve against the file's directory.
func (r *Resolver) Resolve(ctx context.Context, req ports.ResolveRequest) ([]domain.ResolvedPackage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(req.PackagesFile) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPackageListReadFailed.Error()), "path", req.PackagesFile)
	}

	var list Listfile
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPackageListParseFailed.Error()), "path", req.PackagesFile)
	}

	dir := filepath.Dir(req.PackagesFile)
	pkgs := make([]domain.ResolvedPackage, 0, len(list.Packages))
	for i, dto := range list.Packages {
		if dto.Name == "" || dto.Version == "" || dto.Path == "" {
			return nil, zerr.With(zerr.With(domain.ErrInvalidPackageEntry, "index", i), "path", req.PackagesFile)
		}

		root := dto.Path
		if !filepath.IsAbs(root) {
			root = filepath.Join(dir, root)
		}

		pkgs = append(pkgs, domain.ResolvedPackage{
			Name:     dto.Name,
			Version:  dto.Version,
			RootPath: root,
		})
	}

	return pkgs, nil
}
