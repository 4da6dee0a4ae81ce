package report

import (
	"math"
	"testing"
)

func TestScaleBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		wantVal  float64
		wantUnit string
	}{
		{0, 0, "B"},
		{-5, -5, "B"},
		{1, 1, "B"},
		{1023, 1023, "B"},
		{1024, 1.0, "KB"},
		{1048576, 1.0, "MB"},
		{2097152, 2.0, "MB"},
		{1073741824, 1.0, "GB"},
		{1099511627776, 1.0, "TB"},
		// Beyond the table: clamp to TB rather than overflow.
		{1125899906842624, 1024.0, "TB"},
	}

	for _, tt := range tests {
		val, unit := ScaleBytes(tt.bytes)
		if unit != tt.wantUnit {
			t.Errorf("ScaleBytes(%d) unit = %q, want %q", tt.bytes, unit, tt.wantUnit)
		}
		if math.Abs(val-tt.wantVal) > 1e-9 {
			t.Errorf("ScaleBytes(%d) value = %v, want %v", tt.bytes, val, tt.wantVal)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(2097152); got != "2.0 MB (2097152)" {
		t.Errorf("FormatBytes(2097152) = %q", got)
	}
	if got := FormatBytes(0); got != "0.0 B (0)" {
		t.Errorf("FormatBytes(0) = %q", got)
	}
}
