package ports

import "go.trai.ch/depsize/internal/core/domain"

// SizeProbe measures the logical size of a directory subtree.
//
//go:generate go run go.uber.org/mock/mockgen -source=probe.go -destination=mocks/mock_probe.go -package=mocks
type SizeProbe interface {
	// Measure walks root and sums the size of every file below it.
	//
	// It never panics and never reports an unreadable root as an empty package:
	// a root that is missing, unreadable or not a directory yields a failed result.
	// Errors below the root produce a partial result instead.
	Measure(root string) domain.SizeResult

	// WithIgnores returns a probe that skips entries whose base name matches
	// one of the glob patterns.
	WithIgnores(patterns []string) SizeProbe
}
