package block

import "bytes"

// Iterator is a forward cursor over a Block's entries.
//
// The current key is held in an owned buffer rather than borrowed from
// the block's data: Seek re-borrows the block during its binary
// search, and an owned key buffer keeps iterator state stable across
// those transient re-borrows. An empty key buffer denotes an invalid
// cursor.
type Iterator struct {
	block *Block
	key   []byte // owned; empty means invalid
	value []byte // view into block.data
	idx   int
}

// NewIteratorAndSeekToFirst creates an Iterator over block and positions
// it at the first entry.
func NewIteratorAndSeekToFirst(b *Block) *Iterator {
	it := &Iterator{block: b}
	it.SeekToIndex(0)
	return it
}

// NewIteratorAndSeekToKey creates an Iterator over block and positions
// it at the smallest entry with key >= target, or invalidates it if no
// such entry exists.
func NewIteratorAndSeekToKey(b *Block, target []byte) *Iterator {
	it := &Iterator{block: b}
	it.seekToKey(target)
	return it
}

// IsValid reports whether the iterator is positioned at an entry.
func (it *Iterator) IsValid() bool {
	return len(it.key) > 0
}

// Key returns the current entry's key, or an empty slice if invalid.
func (it *Iterator) Key() []byte {
	if !it.IsValid() {
		return nil
	}
	return it.key
}

// Value returns the current entry's value, or an empty slice if invalid.
func (it *Iterator) Value() []byte {
	if !it.IsValid() {
		return nil
	}
	return it.value
}

// SeekToIndex positions the iterator at entry i, or invalidates it if i
// is out of range.
func (it *Iterator) SeekToIndex(i int) {
	if i < 0 || i >= it.block.NumEntries() {
		it.invalidate()
		return
	}
	key, value, err := it.block.EntryAt(i)
	if err != nil {
		it.invalidate()
		return
	}
	it.key = append(it.key[:0], key...)
	it.value = value
	it.idx = i
}

// Next advances the iterator to the following entry, invalidating it
// once the last entry has been passed.
func (it *Iterator) Next() {
	it.SeekToIndex(it.idx + 1)
}

func (it *Iterator) invalidate() {
	it.key = it.key[:0]
	it.value = nil
}

// seekToKey performs a binary search over the block's offset index for
// the smallest index whose key is >= target, then positions the
// iterator there (or invalidates it if every key is smaller).
func (it *Iterator) seekToKey(target []byte) {
	n := it.block.NumEntries()
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		key, _, err := it.block.EntryAt(mid)
		if err != nil {
			it.invalidate()
			return
		}
		if bytes.Compare(key, target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	it.SeekToIndex(lo)
}
