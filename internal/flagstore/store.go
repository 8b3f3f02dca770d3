// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package flagstore

import (
	"fmt"
	"sort"
	"sync"
)

// MaxBit is the highest bit position a flag array can hold.
const MaxBit = 32

// Assessment values understood by downstream consumers.
const (
	AssessmentBad           = "Bad"
	AssessmentIndeterminate = "Indeterminate"
)

// BitInfo documents one bit of a variable's flag array.
type BitInfo struct {
	Bit        int
	Assessment string
	Meaning    string
}

// Mask returns the flag value for a 1-indexed bit position.
func Mask(bit int) (uint32, error) {
	if bit < 1 || bit > MaxBit {
		return 0, fmt.Errorf("bit %d out of range [1, %d]", bit, MaxBit)
	}
	return uint32(1) << (bit - 1), nil
}

// Store is an in-memory QualityFlagStore.
//
// The store maintains two maps keyed by variable name:
//   - flags: one accumulated bitmask per element
//   - bits: metadata per bit position
type Store struct {
	mu    sync.RWMutex
	flags map[string][]uint32
	bits  map[string]map[int]BitInfo
	order []string
}

// New creates a new, empty flag store.
func New() *Store {
	return &Store{
		flags: make(map[string][]uint32),
		bits:  make(map[string]map[int]BitInfo),
	}
}

// ensure returns the flag array for variable, allocating n zeroed entries on
// first use. Caller holds the write lock.
func (s *Store) ensure(variable string, n int) ([]uint32, error) {
	arr, ok := s.flags[variable]
	if !ok {
		arr = make([]uint32, n)
		s.flags[variable] = arr
		s.order = append(s.order, variable)
		return arr, nil
	}
	if len(arr) != n {
		return nil, fmt.Errorf("variable %q has %d flag entries, got mask of %d", variable, len(arr), n)
	}
	return arr, nil
}

// Set turns on bit for every element where mask is true. The flag array is
// created on first use with len(mask) entries; later masks must match it.
func (s *Store) Set(variable string, bit int, mask []bool) error {
	value, err := Mask(bit)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	arr, err := s.ensure(variable, len(mask))
	if err != nil {
		return err
	}
	for i, failed := range mask {
		if failed {
			arr[i] |= value
		}
	}
	return nil
}

// Describe records the metadata of a bit. Describing the same bit twice with
// identical metadata is a no-op; conflicting metadata is an error.
func (s *Store) Describe(variable string, info BitInfo) error {
	if _, err := Mask(info.Bit); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byBit, ok := s.bits[variable]
	if !ok {
		byBit = make(map[int]BitInfo)
		s.bits[variable] = byBit
	}
	if prev, ok := byBit[info.Bit]; ok {
		if prev != info {
			return fmt.Errorf("bit %d of %q already describes %q (%s)", info.Bit, variable, prev.Meaning, prev.Assessment)
		}
		return nil
	}
	byBit[info.Bit] = info
	return nil
}

// Flags returns a copy of the flag array of a variable, or nil when the
// variable has never been flagged.
func (s *Store) Flags(variable string) []uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	arr, ok := s.flags[variable]
	if !ok {
		return nil
	}
	return append([]uint32(nil), arr...)
}

// Bits returns the bit metadata of a variable sorted by bit position.
func (s *Store) Bits(variable string) []BitInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byBit := s.bits[variable]
	out := make([]BitInfo, 0, len(byBit))
	for _, info := range byBit {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bit < out[j].Bit })
	return out
}

// Variables returns the names of every variable that holds flags or bit
// metadata, in the order they were first touched.
func (s *Store) Variables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]string(nil), s.order...)
	for name := range s.bits {
		if _, ok := s.flags[name]; !ok {
			out = append(out, name)
		}
	}
	// Variables described but never flagged have no first-touch position.
	sort.SliceStable(out[len(s.order):], func(i, j int) bool {
		return out[len(s.order)+i] < out[len(s.order)+j]
	})
	return out
}

// Count returns the number of elements of variable with bit set.
func (s *Store) Count(variable string, bit int) int {
	value, err := Mask(bit)
	if err != nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, f := range s.flags[variable] {
		if f&value != 0 {
			n++
		}
	}
	return n
}
