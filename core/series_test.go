package core_test

import (
	"testing"

	"github.com/katalvlaran/fluxcast/core"
)

// TestSeriesHelpers covers the scalar folds on Series.
func TestSeriesHelpers(t *testing.T) {
	s := core.Series{1, -2, 3, 4}

	if got := s.Sum(); got != 6 {
		t.Errorf("Sum = %g; want 6", got)
	}
	if got := s.Mean(); got != 1.5 {
		t.Errorf("Mean = %g; want 1.5", got)
	}
	if got := s.MaxVal(); got != 4 {
		t.Errorf("MaxVal = %g; want 4", got)
	}
	if got := s.MinVal(); got != -2 {
		t.Errorf("MinVal = %g; want -2", got)
	}

	neg := s.Neg()
	if neg[1] != 2 {
		t.Errorf("Neg[1] = %g; want 2", neg[1])
	}
	// Neg must not alias the original.
	if s[1] != -2 {
		t.Errorf("Neg mutated receiver: s[1] = %g", s[1])
	}

	sum := s.Add(core.Series{1, 1, 1, 1})
	if sum.Sum() != 10 {
		t.Errorf("Add sum = %g; want 10", sum.Sum())
	}
}

// TestSeriesEmpty verifies zero-value behavior of nil series.
func TestSeriesEmpty(t *testing.T) {
	var s core.Series
	if s.Sum() != 0 || s.Mean() != 0 || s.MaxVal() != 0 || s.MinVal() != 0 {
		t.Error("nil series folds should all be 0")
	}
	if s.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
	z := core.Zeros(3)
	if len(z) != 3 || z.Sum() != 0 {
		t.Errorf("Zeros(3) = %v", z)
	}
}
