// Package aggregator measures packages concurrently and joins the results into a report.
package aggregator

import (
	"context"
	"fmt"
	"runtime"

	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures a single aggregation run.
type Options struct {
	// Concurrency bounds the number of packages measured at once.
	// Values below one select runtime.NumCPU().
	Concurrency int
	// Ignores are base-name glob patterns skipped inside every package.
	Ignores []string
}

// Aggregator drives the size probe over a set of unique packages.
type Aggregator struct {
	probe     ports.SizeProbe
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Aggregator.
func New(probe ports.SizeProbe, telemetry ports.Telemetry, logger ports.Logger) *Aggregator {
	return &Aggregator{
		probe:     probe,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Aggregate measures every package and returns the joined report.
//
// Measurements run on a bounded pool and Aggregate returns only after every
// dispatched measurement has finished. The context is checked before each
// dispatch: once it is done, the remaining packages are marked as canceled and
// the context error is returned together with the still complete report.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	pkgs []domain.ResolvedPackage,
	opts Options,
) (*domain.Report, error) {
	probe := a.probe
	if len(opts.Ignores) > 0 {
		probe = probe.WithIgnores(opts.Ignores)
	}

	// Each worker owns results[i]; the group is the only synchronization.
	results := make([]domain.SizeResult, len(pkgs))

	g := new(errgroup.Group)
	g.SetLimit(concurrency(opts.Concurrency))

	var canceled error
	for i, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			canceled = err
			markCanceled(results[i:], err)
			break
		}

		g.Go(func() error {
			results[i] = a.measure(ctx, probe, pkg)
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]domain.ReportEntry, len(pkgs))
	for i, pkg := range pkgs {
		entries[i] = domain.ReportEntry{Package: pkg, Result: results[i]}
	}

	report := domain.NewReport(entries)
	a.logProblems(report)

	return report, canceled
}

func (a *Aggregator) measure(ctx context.Context, probe ports.SizeProbe, pkg domain.ResolvedPackage) domain.SizeResult {
	_, vertex := a.telemetry.Record(ctx, pkg.Key().String())

	res := probe.Measure(pkg.RootPath)

	switch {
	case !res.OK():
		vertex.Log(domain.LogLevelError, string(res.Failure))
		vertex.Complete(res.Err)
	case res.Partial:
		vertex.Log(domain.LogLevelWarn, fmt.Sprintf("%d entries could not be read", res.Unreadable))
		vertex.Complete(nil)
	default:
		vertex.Complete(nil)
	}

	return res
}

// logProblems reports failed and partial packages in report order.
func (a *Aggregator) logProblems(report *domain.Report) {
	for _, e := range report.Entries {
		key := e.Package.Key().String()
		switch {
		case !e.Result.OK():
			a.logger.Warn(fmt.Sprintf("could not measure %s: %v", key, e.Result.Err))
		case e.Result.Partial:
			a.logger.Warn(fmt.Sprintf("%s measured partially, %d entries could not be read", key, e.Result.Unreadable))
		}
	}
}

func markCanceled(results []domain.SizeResult, cause error) {
	err := zerr.Wrap(cause, domain.ErrMeasurementCanceled.Error())
	for i := range results {
		results[i] = domain.SizeFailed(domain.FailureCanceled, err)
	}
}

func concurrency(n int) int {
	if n < 1 {
		return runtime.NumCPU()
	}
	return n
}
