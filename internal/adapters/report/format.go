package report

import (
	"fmt"

	"github.com/c2h5oh/datasize"
)

// FormatSize renders n in the largest 1024-based unit whose value is at
// least one, with two decimals, followed by the exact byte count.
//
//	FormatSize(1024) == "1.00KB (1024 bytes)"
//	FormatSize(1000) == "1000.00B (1000 bytes)"
func FormatSize(n uint64) string {
	size := datasize.ByteSize(n)

	switch {
	case size >= datasize.GB:
		return fmt.Sprintf("%.2fGB (%d bytes)", size.GBytes(), n)
	case size >= datasize.MB:
		return fmt.Sprintf("%.2fMB (%d bytes)", size.MBytes(), n)
	case size >= datasize.KB:
		return fmt.Sprintf("%.2fKB (%d bytes)", size.KBytes(), n)
	default:
		return fmt.Sprintf("%.2fB (%d bytes)", float64(n), n)
	}
}
