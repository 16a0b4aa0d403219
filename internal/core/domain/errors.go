package domain

import "go.trai.ch/zerr"

var (
	// ErrPathNotFound is returned when a package root does not exist.
	ErrPathNotFound = zerr.New("package path not found")

	// ErrPermissionDenied is returned when a package root cannot be read.
	ErrPermissionDenied = zerr.New("permission denied on package path")

	// ErrNotDirectory is returned when a package root is not a directory.
	ErrNotDirectory = zerr.New("package path is not a directory")

	// ErrPathUnreadable is returned when a package root fails for any other reason.
	ErrPathUnreadable = zerr.New("package path is unreadable")

	// ErrMeasurementCanceled is attached to packages that were not measured before cancellation.
	ErrMeasurementCanceled = zerr.New("measurement canceled")

	// ErrIncompleteReport is returned when at least one package could not be measured.
	ErrIncompleteReport = zerr.New("some packages could not be measured")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConcurrency is returned when the worker limit is negative.
	ErrInvalidConcurrency = zerr.New("concurrency must be a positive number")

	// ErrPackageListReadFailed is returned when a package list file cannot be read.
	ErrPackageListReadFailed = zerr.New("failed to read package list")

	// ErrPackageListParseFailed is returned when a package list file cannot be parsed.
	ErrPackageListParseFailed = zerr.New("failed to parse package list")

	// ErrInvalidPackageEntry is returned when a package list entry lacks a name, version or path.
	ErrInvalidPackageEntry = zerr.New("package entry requires name, version and path")

	// ErrCommandFailed is returned when an external program exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCargoMetadataFailed is returned when `cargo metadata` cannot be run.
	ErrCargoMetadataFailed = zerr.New("failed to run cargo metadata")

	// ErrCargoMetadataParseFailed is returned when the cargo metadata output is not valid.
	ErrCargoMetadataParseFailed = zerr.New("failed to parse cargo metadata")

	// ErrResolveFailed is returned when the dependency set cannot be resolved.
	ErrResolveFailed = zerr.New("failed to resolve dependencies")

	// ErrRenderFailed is returned when the report cannot be written.
	ErrRenderFailed = zerr.New("failed to render report")
)
