// Package bloom provides identifier deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for identifier deduplication. It backs the
// best-effort duplicate suppression in the discovery log: a false positive
// only skips a redundant append, a false negative only repeats one.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewDiscoveryFilter creates a filter sized for a discovery pass. Wikipedia
// has on the order of a hundred thousand map-referenced articles per
// language, so a million entries at 1% leaves generous headroom while a
// false positive costs only one unpropagated identifier this run.
func NewDiscoveryFilter() *Filter {
	return NewFilter(1_000_000, 0.01)
}

// Add adds a key to the filter.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test returns true if the key might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}

// TestOrAdd tests for the key and adds it in one pass. It returns true if
// the key might already have been present.
func (f *Filter) TestOrAdd(key string) bool {
	return f.f.TestOrAddString(key)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
