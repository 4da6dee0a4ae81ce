// Package report renders the run summary delivered by notification.
package report

import (
	"fmt"
	"math"
)

var byteUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// ScaleBytes picks the largest unit that keeps the scaled magnitude >= 1.
// Non-positive counts are returned unscaled in bytes.
func ScaleBytes(bytes int64) (float64, string) {
	if bytes <= 0 {
		return float64(bytes), "B"
	}

	idx := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(byteUnits) {
		idx = len(byteUnits) - 1
	}

	return float64(bytes) / math.Pow(1024, float64(idx)), byteUnits[idx]
}

// FormatBytes renders a byte count like "2.0 MB (2097152)".
func FormatBytes(bytes int64) string {
	v, unit := ScaleBytes(bytes)
	return fmt.Sprintf("%.1f %s (%d)", v, unit, bytes)
}

// FormatRate renders a bytes-per-second figure like "1.5 MB/s".
func FormatRate(bytesPerSec float64) string {
	v, unit := ScaleBytes(int64(bytesPerSec))
	return fmt.Sprintf("%.1f %s/s", v, unit)
}
