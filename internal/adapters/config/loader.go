// Package config provides the configuration loader for depsize.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up when no path is given.
const DefaultFileName = "depsize.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path. A missing file yields the defaults.
// Relative paths inside the file are resolved against the file's directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.Config{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Configfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if file.Concurrency < 0 {
		return nil, zerr.With(zerr.With(domain.ErrInvalidConcurrency, "concurrency", file.Concurrency), "path", path)
	}

	dir := filepath.Dir(path)
	cfg := &domain.Config{
		Concurrency:  file.Concurrency,
		Ignore:       file.Ignore,
		ManifestPath: resolvePath(dir, file.ManifestPath),
		PackagesFile: resolvePath(dir, file.Packages),
		DirectOnly:   file.DirectOnly,
	}

	if l.Logger != nil {
		l.Logger.Info("loaded configuration from " + path)
	}

	return cfg, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
