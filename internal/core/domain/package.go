// Package domain defines the core types of the dependency size report.
package domain

import "fmt"

// ResolvedPackage is a dependency package as handed over by the resolver:
// an exact version and the directory holding its source checkout.
type ResolvedPackage struct {
	Name     string
	Version  string
	RootPath string
}

// Key returns the identity used to deduplicate the package.
func (p ResolvedPackage) Key() PackageKey {
	return PackageKey{Name: p.Name, Version: p.Version}
}

// PackageKey identifies one on-disk copy of a package.
// Resolution guarantees a single checkout per (name, version).
type PackageKey struct {
	Name    string
	Version string
}

// String renders the key as name@version.
func (k PackageKey) String() string {
	return fmt.Sprintf("%s@%s", k.Name, k.Version)
}

// Less orders keys by name, then version, both compared byte-wise.
func (k PackageKey) Less(o PackageKey) bool {
	if k.Name != o.Name {
		return k.Name < o.Name
	}
	return k.Version < o.Version
}

// ResolverInconsistency records two resolved entries that share a key but
// point at different directories. The first path wins.
type ResolverInconsistency struct {
	Key         PackageKey
	KeptPath    string
	IgnoredPath string
}

// String describes the inconsistency for log output.
func (r ResolverInconsistency) String() string {
	return fmt.Sprintf("%s resolved to both %s and %s, using %s", r.Key, r.KeptPath, r.IgnoredPath, r.KeptPath)
}
