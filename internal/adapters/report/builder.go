// Package report renders the dependency size report as text.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/depsize/internal/ui/output"
	"go.trai.ch/depsize/internal/ui/style"
	"go.trai.ch/zerr"
)

// MinLabelWidth is the narrowest package column.
const MinLabelWidth = 25

var _ ports.ReportRenderer = (*Builder)(nil)

// Builder implements ports.ReportRenderer.
//
// The output is one line per package, sorted by name and version, then an
// optional failure summary and the total line:
//
//	a (1.0)                   : 1000.00B (1000 bytes)
//	b (2.0)                   : 2.00KB (2048 bytes)
//	c (1.0)                   : FAILED (not found)
//	Failed: 1 package(s) could not be measured
//	Total size: 2.98KB (3048 bytes)
type Builder struct{}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Render writes report to w. Colors are only used when w is a terminal,
// NO_COLOR is unset and opts.NoColor is false.
func (b *Builder) Render(w io.Writer, report *domain.Report, opts ports.RenderOptions) error {
	var out *termenv.Output
	if opts.NoColor {
		out = output.NewWithProfile(w, termenv.Ascii)
	} else {
		out = output.New(w)
	}

	entries := slices.Clone(report.Entries)
	domain.SortEntries(entries)

	width := labelWidth(entries)

	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%-*s : %s\n", width, label(e.Package), value(out, e.Result))
	}

	if report.Failures > 0 {
		summary := fmt.Sprintf("Failed: %d package(s) could not be measured", report.Failures)
		sb.WriteString(out.String(summary).Foreground(out.Color(string(style.Red))).String())
		sb.WriteString("\n")
	}

	total := "Total size: " + FormatSize(report.GrandTotal)
	sb.WriteString(out.String(total).Bold().String())
	sb.WriteString("\n")

	if _, err := out.WriteString(sb.String()); err != nil {
		return zerr.Wrap(err, domain.ErrRenderFailed.Error())
	}
	return nil
}

func value(out *termenv.Output, r domain.SizeResult) string {
	if !r.OK() {
		failed := fmt.Sprintf("FAILED (%s)", r.Failure)
		return out.String(failed).Foreground(out.Color(string(style.Red))).String()
	}

	size := FormatSize(r.Bytes)
	if r.Partial {
		note := fmt.Sprintf(" [partial: %d unreadable]", r.Unreadable)
		size += out.String(note).Foreground(out.Color(string(style.Yellow))).String()
	}
	return size
}

func label(p domain.ResolvedPackage) string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Version)
}

func labelWidth(entries []domain.ReportEntry) int {
	width := MinLabelWidth
	for _, e := range entries {
		width = max(width, utf8.RuneCountInString(label(e.Package)))
	}
	return width
}
