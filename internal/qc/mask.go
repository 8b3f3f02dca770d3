// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package qc

// Mask is a per-element failure mask in the flat row-major order of the
// variable it was computed for. True means the element failed the check.
type Mask []bool

// NewMask returns an all-false mask of n elements.
func NewMask(n int) Mask {
	return make(Mask, n)
}

// Any reports whether at least one element failed.
func (m Mask) Any() bool {
	for _, failed := range m {
		if failed {
			return true
		}
	}
	return false
}

// Count returns the number of failed elements.
func (m Mask) Count() int {
	n := 0
	for _, failed := range m {
		if failed {
			n++
		}
	}
	return n
}

// Or returns the element-wise union of m and other. Both must have the same
// length.
func (m Mask) Or(other Mask) Mask {
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] || other[i]
	}
	return out
}
