package core

// Series is a time series with one value per timestep.
// A nil Series means "no values fixed"; Zeros produces an explicit all-zero
// series of a given length.
type Series []float64

// Zeros returns an all-zero Series of length n.
func Zeros(n int) Series {
	return make(Series, n)
}

// Clone returns an independent copy of s. A nil receiver yields nil.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)

	return out
}

// Sum returns the sum of all values; 0 for an empty or nil series.
func (s Series) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}

	return total
}

// Mean returns the arithmetic mean; 0 for an empty or nil series.
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return 0
	}

	return s.Sum() / float64(len(s))
}

// Scale returns a new Series with every value multiplied by f.
func (s Series) Scale(f float64) Series {
	out := make(Series, len(s))
	for i, v := range s {
		out[i] = v * f
	}

	return out
}

// Neg returns a new Series with every value negated.
func (s Series) Neg() Series {
	return s.Scale(-1)
}

// Add returns the element-wise sum of s and t. The shorter length wins; this
// only matters for malformed inputs, validated lengths are always equal.
func (s Series) Add(t Series) Series {
	n := len(s)
	if len(t) < n {
		n = len(t)
	}
	out := make(Series, n)
	for i := 0; i < n; i++ {
		out[i] = s[i] + t[i]
	}

	return out
}

// MaxVal returns the largest value; 0 for an empty or nil series.
func (s Series) MaxVal() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}

	return m
}

// MinVal returns the smallest value; 0 for an empty or nil series.
func (s Series) MinVal() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}

	return m
}
