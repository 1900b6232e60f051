package conv

import (
	"math"
	"testing"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		limit  uint32
		want   uint32
		wantOK bool
	}{
		{"zero", "0", 1000, 0, true},
		{"single digit", "7", 1000, 7, true},
		{"multi digit", "125", 1000, 125, true},
		{"leading zeros", "007", 1000, 7, true},
		{"at limit", "1000", 1000, 1000, true},
		{"above limit", "1001", 1000, 0, false},
		{"huge", "99999999999999999999999", math.MaxUint32, 0, false},
		{"empty", "", 1000, 0, false},
		{"sign", "-1", 1000, 0, false},
		{"space", " 1", 1000, 0, false},
		{"letters", "1a", 1000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCount(tt.input, tt.limit)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseCount(%q, %d) = (%d, %v), want (%d, %v)",
					tt.input, tt.limit, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSpanLen(t *testing.T) {
	tests := []struct {
		lo, hi uint32
		want   int
	}{
		{0, 0, 1},
		{1, 1, 1},
		{0, 10, 11},
		{3, 5, 3},
	}
	for _, tt := range tests {
		if got := SpanLen(tt.lo, tt.hi); got != tt.want {
			t.Errorf("SpanLen(%d, %d) = %d, want %d", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestSpanLenPanicsOnInvertedRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("SpanLen(5, 3) did not panic")
		}
	}()
	SpanLen(5, 3)
}
