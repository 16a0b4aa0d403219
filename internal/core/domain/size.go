package domain

// FailureKind classifies why a package could not be measured.
type FailureKind string

const (
	// FailureNone marks a successful, possibly partial, measurement.
	FailureNone FailureKind = ""
	// FailureNotFound indicates the package root does not exist.
	FailureNotFound FailureKind = "not found"
	// FailurePermissionDenied indicates the package root could not be read.
	FailurePermissionDenied FailureKind = "permission denied"
	// FailureNotDirectory indicates the package root is not a directory.
	FailureNotDirectory FailureKind = "not a directory"
	// FailureUnreadable covers any other error on the package root.
	FailureUnreadable FailureKind = "unreadable"
	// FailureCanceled marks a package that was never measured because the run was canceled.
	FailureCanceled FailureKind = "canceled"
)

// SizeResult is the outcome of measuring one package directory.
//
// A result is either OK, carrying the summed logical size of the subtree, or
// failed, carrying a FailureKind and the underlying error. An OK result may be
// Partial when some entries below the root could not be read; Bytes then holds
// everything that was measured.
type SizeResult struct {
	Bytes      uint64
	Partial    bool
	Unreadable int
	Failure    FailureKind
	Err        error
}

// SizeOK builds a complete result.
func SizeOK(bytes uint64) SizeResult {
	return SizeResult{Bytes: bytes}
}

// SizeFailed builds a failed result.
func SizeFailed(kind FailureKind, err error) SizeResult {
	return SizeResult{Failure: kind, Err: err}
}

// OK reports whether the package was measured.
func (r SizeResult) OK() bool {
	return r.Failure == FailureNone
}
