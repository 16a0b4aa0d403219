package ports

import (
	"context"

	"go.trai.ch/depsize/internal/core/domain"
)

// ResolveRequest selects the project and the listing mode for a resolver.
type ResolveRequest struct {
	// ManifestPath points at the project manifest. Empty means the working directory.
	ManifestPath string
	// PackagesFile points at an already-resolved package list.
	PackagesFile string
	// DirectOnly limits the result to direct dependencies of the project.
	DirectOnly bool
}

// PackageResolver hands out the resolved dependency closure of a project.
//
// Implementations delegate the actual resolution to an external tool or file;
// no version constraint solving happens in this module.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PackageResolver interface {
	// Resolve returns one entry per dependency edge target. The order is
	// insignificant and duplicates are allowed.
	Resolve(ctx context.Context, req ResolveRequest) ([]domain.ResolvedPackage, error)
}
