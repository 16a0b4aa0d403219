package report_test

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsize/internal/adapters/report"
	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
)

func entry(name, version string, result domain.SizeResult) domain.ReportEntry {
	return domain.ReportEntry{
		Package: domain.ResolvedPackage{Name: name, Version: version, RootPath: "/pkgs/" + name},
		Result:  result,
	}
}

func render(t *testing.T, r *domain.Report) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, report.NewBuilder().Render(buf, r, ports.RenderOptions{NoColor: true}))
	return buf.Bytes()
}

func TestBuilder_Render(t *testing.T) {
	notFound := errors.New("package path not found")
	denied := errors.New("permission denied")

	tests := []struct {
		name    string
		entries []domain.ReportEntry
	}{
		{
			name: "scenario_dedupe",
			entries: []domain.ReportEntry{
				entry("b", "2.0", domain.SizeOK(2048)),
				entry("a", "1.0", domain.SizeOK(1000)),
			},
		},
		{
			name: "scenario_missing",
			entries: []domain.ReportEntry{
				entry("c", "1.0", domain.SizeFailed(domain.FailureNotFound, notFound)),
			},
		},
		{
			name:    "empty",
			entries: nil,
		},
		{
			name: "mixed",
			entries: []domain.ReportEntry{
				entry("zstd", "0.13.0", domain.SizeFailed(domain.FailurePermissionDenied, denied)),
				entry("serde", "1.0.188", domain.SizeResult{Bytes: 1_200_000, Partial: true, Unreadable: 2}),
				entry("very-long-crate-name-for-width", "10.20.30", domain.SizeOK(2684354560)),
				entry("libc", "0.2.150", domain.SizeOK(3932160)),
				entry("serde", "1.0.100", domain.SizeOK(512)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := goldie.New(t)
			g.Assert(t, tt.name, render(t, domain.NewReport(tt.entries)))
		})
	}
}

func TestBuilder_Render_IndependentOfInputOrder(t *testing.T) {
	entries := []domain.ReportEntry{
		entry("a", "1.0", domain.SizeOK(1000)),
		entry("a", "0.9", domain.SizeOK(10)),
		entry("B", "1.0", domain.SizeOK(1)),
		entry("b", "2.0", domain.SizeOK(2048)),
	}

	want := render(t, domain.NewReport(slices.Clone(entries)))

	reversed := slices.Clone(entries)
	slices.Reverse(reversed)
	got := render(t, &domain.Report{Entries: reversed, GrandTotal: 3059})

	assert.Equal(t, string(want), string(got))
	assert.Equal(t, []string{
		"B (1.0)                   : 1.00B (1 bytes)",
		"a (0.9)                   : 10.00B (10 bytes)",
		"a (1.0)                   : 1000.00B (1000 bytes)",
		"b (2.0)                   : 2.00KB (2048 bytes)",
		"Total size: 2.99KB (3059 bytes)",
	}, lines(got))
}

func TestBuilder_Render_DoesNotReorderReport(t *testing.T) {
	r := &domain.Report{Entries: []domain.ReportEntry{
		entry("b", "1.0", domain.SizeOK(1)),
		entry("a", "1.0", domain.SizeOK(1)),
	}}

	render(t, r)

	assert.Equal(t, "b", r.Entries[0].Package.Name)
}

func TestBuilder_Render_PlainWhenNotTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	r := domain.NewReport([]domain.ReportEntry{
		entry("c", "1.0", domain.SizeFailed(domain.FailureNotFound, errors.New("missing"))),
	})

	buf := &bytes.Buffer{}
	require.NoError(t, report.NewBuilder().Render(buf, r, ports.RenderOptions{}))

	assert.Equal(t, string(render(t, r)), buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestBuilder_Render_WriteError(t *testing.T) {
	err := report.NewBuilder().Render(failingWriter{}, domain.NewReport(nil), ports.RenderOptions{NoColor: true})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to render report")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func lines(b []byte) []string {
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}
