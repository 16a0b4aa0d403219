package domain

// Config holds the run settings read from depsize.yaml and the command line.
type Config struct {
	// Concurrency bounds the number of packages measured at once.
	// Zero selects the number of available CPUs.
	Concurrency int
	// Ignore lists base-name glob patterns skipped while walking a package.
	Ignore       []string
	ManifestPath string
	PackagesFile string
	DirectOnly   bool
}
