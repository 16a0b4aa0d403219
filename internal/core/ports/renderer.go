package ports

import (
	"io"

	"go.trai.ch/depsize/internal/core/domain"
)

// RenderOptions tunes the presentation of a report.
type RenderOptions struct {
	// NoColor forces plain text even when writing to a terminal.
	NoColor bool
}

// ReportRenderer writes a finished report for the user.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type ReportRenderer interface {
	// Render writes one line per package followed by the total line.
	Render(w io.Writer, report *domain.Report, opts RenderOptions) error
}
