// Package index deduplicates resolved packages before they are measured.
package index

import "go.trai.ch/depsize/internal/core/domain"

// Dedupe keeps the first entry for every package key, preserving input order.
//
// Entries that repeat a key with a different root path are dropped and
// reported as inconsistencies; the first path wins. Feeding the result back
// into Dedupe returns it unchanged with no inconsistencies.
func Dedupe(pkgs []domain.ResolvedPackage) ([]domain.ResolvedPackage, []domain.ResolverInconsistency) {
	seen := make(map[domain.PackageKey]string, len(pkgs))
	unique := make([]domain.ResolvedPackage, 0, len(pkgs))
	var warnings []domain.ResolverInconsistency

	for _, pkg := range pkgs {
		key := pkg.Key()
		kept, ok := seen[key]
		if !ok {
			seen[key] = pkg.RootPath
			unique = append(unique, pkg)
			continue
		}

		if kept != pkg.RootPath {
			warnings = append(warnings, domain.ResolverInconsistency{
				Key:         key,
				KeptPath:    kept,
				IgnoredPath: pkg.RootPath,
			})
		}
	}

	return unique, warnings
}
