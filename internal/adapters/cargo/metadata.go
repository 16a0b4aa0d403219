package cargo

// Metadata is the subset of `cargo metadata --format-version 1` output used here.
type Metadata struct {
	Packages         []Package `json:"packages"`
	WorkspaceMembers []string  `json:"workspace_members"`
}

// Package is one entry of the metadata package set.
type Package struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	ManifestPath string       `json:"manifest_path"`
	Dependencies []Dependency `json:"dependencies"`
}

// Dependency is a dependency declaration of a package manifest.
type Dependency struct {
	Name string `json:"name"`
	Req  string `json:"req"`
	// Kind is empty for normal dependencies, "dev" or "build" otherwise.
	Kind     string `json:"kind"`
	Rename   string `json:"rename"`
	Optional bool   `json:"optional"`
}

// Normal reports whether d is a regular (non-dev, non-build) dependency.
func (d Dependency) Normal() bool {
	return d.Kind == "" || d.Kind == "normal"
}
