package aggregator_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsize/internal/adapters/fs"
	"go.trai.ch/depsize/internal/adapters/report"
	"go.trai.ch/depsize/internal/adapters/telemetry"
	"go.trai.ch/depsize/internal/core/domain"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/depsize/internal/core/ports/mocks"
	"go.trai.ch/depsize/internal/engine/aggregator"
	"go.trai.ch/depsize/internal/engine/index"
	"go.uber.org/mock/gomock"
)

func pkg(name, version, root string) domain.ResolvedPackage {
	return domain.ResolvedPackage{Name: name, Version: version, RootPath: root}
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o600))
}

func TestAggregate_GrandTotalExcludesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProbe := mocks.NewMockSizeProbe(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	notFound := errors.New("package path not found")
	mockProbe.EXPECT().Measure("/pkgs/a").Return(domain.SizeOK(1000))
	mockProbe.EXPECT().Measure("/pkgs/b").Return(domain.SizeResult{Bytes: 2048, Partial: true, Unreadable: 1})
	mockProbe.EXPECT().Measure("/missing").Return(domain.SizeFailed(domain.FailureNotFound, notFound))

	mockLogger.EXPECT().Warn("b@2.0 measured partially, 1 entries could not be read")
	mockLogger.EXPECT().Warn("could not measure c@1.0: package path not found")

	agg := aggregator.New(mockProbe, telemetry.NewNoOp(), mockLogger)
	got, err := agg.Aggregate(context.Background(), []domain.ResolvedPackage{
		pkg("c", "1.0", "/missing"),
		pkg("b", "2.0", "/pkgs/b"),
		pkg("a", "1.0", "/pkgs/a"),
	}, aggregator.Options{Concurrency: 2})
	require.NoError(t, err)

	assert.Equal(t, uint64(3048), got.GrandTotal)
	assert.Equal(t, 1, got.Failures)
	assert.Equal(t, 1, got.Partials)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, "a", got.Entries[0].Package.Name)
	assert.Equal(t, "b", got.Entries[1].Package.Name)
	assert.Equal(t, "c", got.Entries[2].Package.Name)
	assert.Equal(t, domain.FailureNotFound, got.Entries[2].Result.Failure)
}

func TestAggregate_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProbe := mocks.NewMockSizeProbe(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	got, err := aggregator.New(mockProbe, telemetry.NewNoOp(), mockLogger).
		Aggregate(context.Background(), nil, aggregator.Options{})
	require.NoError(t, err)

	assert.Empty(t, got.Entries)
	assert.Equal(t, uint64(0), got.GrandTotal)
	assert.True(t, got.Complete())
}

func TestAggregate_AppliesIgnores(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProbe := mocks.NewMockSizeProbe(ctrl)
	ignoring := mocks.NewMockSizeProbe(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockProbe.EXPECT().WithIgnores([]string{".git"}).Return(ignoring)
	ignoring.EXPECT().Measure("/pkgs/a").Return(domain.SizeOK(10))

	got, err := aggregator.New(mockProbe, telemetry.NewNoOp(), mockLogger).
		Aggregate(context.Background(), []domain.ResolvedPackage{pkg("a", "1.0", "/pkgs/a")},
			aggregator.Options{Concurrency: 1, Ignores: []string{".git"}})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.GrandTotal)
}

func TestAggregate_RecordsTelemetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProbe := mocks.NewMockSizeProbe(ctrl)
	mockTelemetry := mocks.NewMockTelemetry(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	okVertex := mocks.NewMockVertex(ctrl)
	failedVertex := mocks.NewMockVertex(ctrl)

	cause := errors.New("permission denied on package path")
	mockProbe.EXPECT().Measure("/pkgs/a").Return(domain.SizeOK(1))
	mockProbe.EXPECT().Measure("/pkgs/b").Return(domain.SizeFailed(domain.FailurePermissionDenied, cause))

	mockTelemetry.EXPECT().Record(gomock.Any(), "a@1.0").Return(context.Background(), okVertex)
	mockTelemetry.EXPECT().Record(gomock.Any(), "b@1.0").Return(context.Background(), failedVertex)

	okVertex.EXPECT().Complete(nil)
	failedVertex.EXPECT().Log(domain.LogLevelError, "permission denied")
	failedVertex.EXPECT().Complete(cause)

	mockLogger.EXPECT().Warn(gomock.Any())

	_, err := aggregator.New(mockProbe, mockTelemetry, mockLogger).
		Aggregate(context.Background(), []domain.ResolvedPackage{
			pkg("a", "1.0", "/pkgs/a"),
			pkg("b", "1.0", "/pkgs/b"),
		}, aggregator.Options{Concurrency: 1})
	require.NoError(t, err)
}

func TestAggregate_RespectsConcurrencyLimit(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockProbe := mocks.NewMockSizeProbe(ctrl)
		mockLogger := mocks.NewMockLogger(ctrl)

		var inFlight, peak atomic.Int32
		mockProbe.EXPECT().Measure(gomock.Any()).Times(20).DoAndReturn(func(string) domain.SizeResult {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return domain.SizeOK(1)
		})

		pkgs := make([]domain.ResolvedPackage, 20)
		for i := range pkgs {
			pkgs[i] = pkg("p", string(rune('a'+i)), "/pkgs")
		}

		got, err := aggregator.New(mockProbe, telemetry.NewNoOp(), mockLogger).
			Aggregate(context.Background(), pkgs, aggregator.Options{Concurrency: 3})
		require.NoError(t, err)

		assert.Equal(t, uint64(20), got.GrandTotal)
		assert.Equal(t, int32(3), peak.Load())
	})
}

func TestAggregate_CancellationMarksRemaining(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockProbe := mocks.NewMockSizeProbe(ctrl)
		mockLogger := mocks.NewMockLogger(ctrl)

		release := make(chan struct{})
		mockProbe.EXPECT().Measure("/pkgs/a").DoAndReturn(func(string) domain.SizeResult {
			<-release
			return domain.SizeOK(100)
		})
		mockProbe.EXPECT().Measure("/pkgs/b").Return(domain.SizeOK(200))
		mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		type outcome struct {
			report *domain.Report
			err    error
		}
		done := make(chan outcome, 1)

		go func() {
			r, err := aggregator.New(mockProbe, telemetry.NewNoOp(), mockLogger).
				Aggregate(ctx, []domain.ResolvedPackage{
					pkg("a", "1.0", "/pkgs/a"),
					pkg("b", "1.0", "/pkgs/b"),
					pkg("c", "1.0", "/pkgs/c"),
				}, aggregator.Options{Concurrency: 1})
			done <- outcome{report: r, err: err}
		}()

		// a is running and b waits for a free slot.
		synctest.Wait()
		cancel()
		close(release)

		res := <-done
		require.ErrorIs(t, res.err, context.Canceled)
		require.Len(t, res.report.Entries, 3)

		assert.True(t, res.report.Entries[0].Result.OK())
		assert.True(t, res.report.Entries[1].Result.OK())
		assert.Equal(t, domain.FailureCanceled, res.report.Entries[2].Result.Failure)
		require.ErrorIs(t, res.report.Entries[2].Result.Err, context.Canceled)
		assert.Equal(t, uint64(300), res.report.GrandTotal)
		assert.Equal(t, 1, res.report.Failures)
	})
}

func TestAggregate_AlreadyCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProbe := mocks.NewMockSizeProbe(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := aggregator.New(mockProbe, telemetry.NewNoOp(), mockLogger).
		Aggregate(ctx, []domain.ResolvedPackage{pkg("a", "1.0", "/a"), pkg("b", "1.0", "/b")}, aggregator.Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, got.Failures)
	assert.Equal(t, uint64(0), got.GrandTotal)
}

// The scenarios below run against the real filesystem probe.

func newFSAggregator(t *testing.T) *aggregator.Aggregator {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return aggregator.New(fs.NewProbe(fs.NewWalker()), telemetry.NewNoOp(), mockLogger)
}

func TestScenario_DuplicatesCountedOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "src", "lib.rs"), 600)
	writeFile(t, filepath.Join(root, "a", "Cargo.toml"), 400)
	writeFile(t, filepath.Join(root, "b", "lib.rs"), 2048)

	unique, warnings := index.Dedupe([]domain.ResolvedPackage{
		pkg("a", "1.0", filepath.Join(root, "a")),
		pkg("a", "1.0", filepath.Join(root, "a")),
		pkg("b", "2.0", filepath.Join(root, "b")),
	})
	require.Empty(t, warnings)
	require.Len(t, unique, 2)

	got, err := newFSAggregator(t).Aggregate(context.Background(), unique, aggregator.Options{Concurrency: 4})
	require.NoError(t, err)

	assert.Equal(t, uint64(1000), got.Entries[0].Result.Bytes)
	assert.Equal(t, uint64(2048), got.Entries[1].Result.Bytes)
	assert.Equal(t, uint64(3048), got.GrandTotal)
}

func TestScenario_MissingPath(t *testing.T) {
	got, err := newFSAggregator(t).Aggregate(context.Background(), []domain.ResolvedPackage{
		pkg("c", "1.0", filepath.Join(t.TempDir(), "missing")),
	}, aggregator.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, got.Failures)
	assert.Equal(t, uint64(0), got.GrandTotal)
	assert.Equal(t, domain.FailureNotFound, got.Entries[0].Result.Failure)
}

func TestScenario_ConcurrencyDoesNotChangeOutput(t *testing.T) {
	root := t.TempDir()
	var pkgs []domain.ResolvedPackage
	for i := range 12 {
		name := string(rune('a' + i))
		writeFile(t, filepath.Join(root, name, "lib.rs"), 100*(i+1))
		writeFile(t, filepath.Join(root, name, "nested", "mod.rs"), 7*i)
		pkgs = append(pkgs, pkg(name, "0.1.0", filepath.Join(root, name)))
	}
	pkgs = append(pkgs, pkg("zz", "0.0.1", filepath.Join(root, "missing")))

	renderAt := func(limit int) string {
		r, err := newFSAggregator(t).Aggregate(context.Background(), pkgs, aggregator.Options{Concurrency: limit})
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		require.NoError(t, report.NewBuilder().Render(buf, r, ports.RenderOptions{NoColor: true}))
		return buf.String()
	}

	assert.Equal(t, renderAt(1), renderAt(8))
}
