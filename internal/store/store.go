// Package store keeps in-memory per-type statistics for a parse run.
package store

import "sort"

// Store accumulates record counts by type.
type Store struct {
	counts map[uint16]int
	total  int
}

// New creates a new statistics store.
func New() *Store {
	return &Store{
		counts: make(map[uint16]int),
	}
}

// Add counts one record of the given type.
func (s *Store) Add(rrtype uint16) {
	s.counts[rrtype]++
	s.total++
}

// Count returns the number of records seen for a type.
func (s *Store) Count(rrtype uint16) int {
	return s.counts[rrtype]
}

// Total returns the number of records seen overall.
func (s *Store) Total() int {
	return s.total
}

// Iterate visits the per-type counts in ascending type order.
func (s *Store) Iterate(f func(rrtype uint16, count int)) {
	types := make([]uint16, 0, len(s.counts))
	for t := range s.counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		f(t, s.counts[t])
	}
}
