package config

// Configfile represents the structure of the depsize.yaml configuration file.
type Configfile struct {
	Version      string   `yaml:"version"`
	Concurrency  int      `yaml:"concurrency"`
	Ignore       []string `yaml:"ignore"`
	ManifestPath string   `yaml:"manifest_path"`
	Packages     string   `yaml:"packages"`
	DirectOnly   bool     `yaml:"direct_only"`
}
