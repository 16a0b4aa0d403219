// Package cargo resolves Rust dependencies through `cargo metadata`.
package cargo

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/Masterminds/semver"
	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/zerr"
)

// Program is the cargo executable name.
const Program = "cargo"

var _ ports.PackageResolver = (*Resolver)(nil)

// Resolver implements ports.PackageResolver on top of `cargo metadata`.
type Resolver struct {
	runner ports.CommandRunner
	logger ports.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(runner ports.CommandRunner, logger ports.Logger) *Resolver {
	return &Resolver{
		runner: runner,
		logger: logger,
	}
}

// Resolve runs cargo metadata for req.ManifestPath.
//
// By default every non-workspace package of the resolved graph is returned.
// With req.DirectOnly only the normal dependencies declared by workspace
// members are returned, each at the highest version present in the graph.
func (r *Resolver) Resolve(ctx context.Context, req ports.ResolveRequest) ([]domain.ResolvedPackage, error) {
	meta, err := r.metadata(ctx, req.ManifestPath)
	if err != nil {
		return nil, err
	}

	if req.DirectOnly {
		return r.direct(meta), nil
	}
	return closure(meta), nil
}

// Args returns the cargo arguments used for manifestPath.
func Args(manifestPath string) []string {
	args := []string{"metadata", "--format-version", "1", "--all-features"}
	if manifestPath != "" {
		args = append(args, "--manifest-path", manifestPath)
	}
	return args
}

func (r *Resolver) metadata(ctx context.Context, manifestPath string) (*Metadata, error) {
	out, err := r.runner.Run(ctx, ports.Command{
		Name: Program,
		Args: Args(manifestPath),
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCargoMetadataFailed.Error()), "manifest_path", manifestPath)
	}

	var meta Metadata
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCargoMetadataParseFailed.Error())
	}
	return &meta, nil
}

func closure(meta *Metadata) []domain.ResolvedPackage {
	members := memberSet(meta)

	pkgs := make([]domain.ResolvedPackage, 0, len(meta.Packages))
	for _, p := range meta.Packages {
		if members[p.ID] {
			continue
		}
		pkgs = append(pkgs, toResolved(p))
	}
	return pkgs
}

func (r *Resolver) direct(meta *Metadata) []domain.ResolvedPackage {
	members := memberSet(meta)

	byName := make(map[string][]Package)
	for _, p := range meta.Packages {
		byName[p.Name] = append(byName[p.Name], p)
	}

	seen := make(map[string]bool)
	var pkgs []domain.ResolvedPackage
	for _, member := range meta.Packages {
		if !members[member.ID] {
			continue
		}
		for _, dep := range member.Dependencies {
			if !dep.Normal() || seen[dep.Name] {
				continue
			}
			seen[dep.Name] = true

			latest, ok := highest(byName[dep.Name])
			if !ok {
				if r.logger != nil {
					r.logger.Warn("dependency " + dep.Name + " of " + member.Name + " is not in the resolved graph")
				}
				continue
			}
			pkgs = append(pkgs, toResolved(latest))
		}
	}

	if pkgs == nil {
		pkgs = []domain.ResolvedPackage{}
	}
	return pkgs
}

// highest picks the package with the greatest semantic version.
// Versions that do not parse lose against any that do.
func highest(candidates []Package) (Package, bool) {
	if len(candidates) == 0 {
		return Package{}, false
	}

	best := candidates[0]
	bestVer, _ := semver.NewVersion(best.Version)
	for _, c := range candidates[1:] {
		v, err := semver.NewVersion(c.Version)
		if err != nil {
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best, bestVer = c, v
		}
	}
	return best, true
}

func memberSet(meta *Metadata) map[string]bool {
	members := make(map[string]bool, len(meta.WorkspaceMembers))
	for _, id := range meta.WorkspaceMembers {
		members[id] = true
	}
	return members
}

func toResolved(p Package) domain.ResolvedPackage {
	return domain.ResolvedPackage{
		Name:     p.Name,
		Version:  p.Version,
		RootPath: filepath.Dir(p.ManifestPath),
	}
}
