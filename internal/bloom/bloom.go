// Package bloom backs the reserved bloom-filter slot on sst.Table.
//
// The core build and read paths never populate or consult a Filter —
// SeekToKey and the builder have no bloom-filter-aware code at all.
// This package exists so the reserved slot has a real, working
// implementation on hand for a layer above the core (e.g. a future
// read-amplification optimization) to attach, rather than being a
// type-only placeholder.
package bloom

import bloomfilter "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter over opaque key bytes.
type Filter struct {
	inner *bloomfilter.BloomFilter
}

// NewFilter creates a Filter sized for expectedKeys entries at the
// given target false-positive rate.
func NewFilter(expectedKeys uint, falsePositiveRate float64) *Filter {
	return &Filter{inner: bloomfilter.NewWithEstimates(expectedKeys, falsePositiveRate)}
}

// Add records key in the filter.
func (f *Filter) Add(key []byte) {
	f.inner.Add(key)
}

// MayContain reports whether key might be present. A false result is
// authoritative; a true result is not.
func (f *Filter) MayContain(key []byte) bool {
	return f.inner.Test(key)
}
