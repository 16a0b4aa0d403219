package domain

import "sort"

// ReportEntry pairs a package with its measurement.
type ReportEntry struct {
	Package ResolvedPackage
	Result  SizeResult
}

// Report is the outcome of one run.
type Report struct {
	Entries    []ReportEntry
	GrandTotal uint64
	Failures   int
	Partials   int
}

// NewReport builds a report from entries, sorting them and computing the totals.
// Failed entries are counted but never added to GrandTotal.
func NewReport(entries []ReportEntry) *Report {
	r := &Report{Entries: entries}
	SortEntries(r.Entries)

	for _, e := range r.Entries {
		if !e.Result.OK() {
			r.Failures++
			continue
		}
		r.GrandTotal += e.Result.Bytes
		if e.Result.Partial {
			r.Partials++
		}
	}

	return r
}

// Complete reports whether every package was measured.
func (r *Report) Complete() bool {
	return r.Failures == 0
}

// SortEntries orders entries by package name, then version.
func SortEntries(entries []ReportEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Package.Key().Less(entries[j].Package.Key())
	})
}
