package packagefile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsize/internal/adapters/packagefile"
	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolve_YAML(t *testing.T) {
	path := writeList(t, `
packages:
  - name: serde
    version: 1.0.188
    path: /opt/registry/serde-1.0.188
  - name: libc
    version: 0.2.150
    path: vendor/libc
`)

	pkgs, err := packagefile.NewResolver().Resolve(context.Background(), ports.ResolveRequest{PackagesFile: path})
	require.NoError(t, err)

	assert.Equal(t, []domain.ResolvedPackage{
		{Name: "serde", Version: "1.0.188", RootPath: "/opt/registry/serde-1.0.188"},
		{Name: "libc", Version: "0.2.150", RootPath: filepath.Join(filepath.Dir(path), "vendor", "libc")},
	}, pkgs)
}

func TestResolve_JSON(t *testing.T) {
	path := writeList(t, `{"packages": [{"name": "a", "version": "1.0", "path": "/a"}]}`)

	pkgs, err := packagefile.NewResolver().Resolve(context.Background(), ports.ResolveRequest{PackagesFile: path})
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedPackage{{Name: "a", Version: "1.0", RootPath: "/a"}}, pkgs)
}

func TestResolve_Empty(t *testing.T) {
	pkgs, err := packagefile.NewResolver().Resolve(context.Background(), ports.ResolveRequest{
		PackagesFile: writeList(t, "packages: []\n"),
	})
	require.NoError(t, err)
	assert.Empty(t, pkgs)
	assert.NotNil(t, pkgs)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
			wantErr: "failed to read package list",
		},
		{
			name:    "malformed",
			path:    func(t *testing.T) string { return writeList(t, "packages: {") },
			wantErr: "failed to parse package list",
		},
		{
			name: "entry without version",
			path: func(t *testing.T) string {
				return writeList(t, "packages:\n  - name: a\n    path: /a\n")
			},
			wantErr: "package entry requires name, version and path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := packagefile.NewResolver().Resolve(context.Background(), ports.ResolveRequest{PackagesFile: tt.path(t)})
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestResolve_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := packagefile.NewResolver().Resolve(ctx, ports.ResolveRequest{PackagesFile: writeList(t, "packages: []")})
	require.ErrorIs(t, err, context.Canceled)
}
