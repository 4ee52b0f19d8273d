package sst

import (
	"bytes"

	"github.com/kvforge/lsmtree/internal/block"
)

// Iterator provides seek/scan access across an SST's blocks.
type Iterator struct {
	table   *Table
	blkIter *block.Iterator
	blkIdx  int
}

// NewIteratorAndSeekToFirst creates an Iterator positioned at the
// table's first entry.
func NewIteratorAndSeekToFirst(t *Table) (*Iterator, error) {
	it := &Iterator{table: t}
	if err := it.SeekToFirst(); err != nil {
		return nil, err
	}
	return it, nil
}

// NewIteratorAndSeekToKey creates an Iterator positioned at the
// smallest key >= target, or invalid if no such key exists.
func NewIteratorAndSeekToKey(t *Table, target []byte) (*Iterator, error) {
	it := &Iterator{table: t}
	if err := it.SeekToKey(target); err != nil {
		return nil, err
	}
	return it, nil
}

// IsValid reports whether the iterator is positioned at an entry.
func (it *Iterator) IsValid() bool {
	return it.blkIdx < len(it.table.meta) && it.blkIter != nil && it.blkIter.IsValid()
}

// Key returns the current entry's key, or nil if invalid.
func (it *Iterator) Key() []byte {
	if !it.IsValid() {
		return nil
	}
	return it.blkIter.Key()
}

// Value returns the current entry's value, or nil if invalid.
func (it *Iterator) Value() []byte {
	if !it.IsValid() {
		return nil
	}
	return it.blkIter.Value()
}

// SeekToFirst positions the iterator at the table's first entry.
func (it *Iterator) SeekToFirst() error {
	blk, err := it.table.readBlock(0)
	if err != nil {
		return err
	}
	it.blkIdx = 0
	it.blkIter = block.NewIteratorAndSeekToFirst(blk)
	return nil
}

// findBlockIdx returns the smallest block index i such that
// meta[i].LastKey >= key, or len(meta) if no such block exists.
func (it *Iterator) findBlockIdx(key []byte) int {
	meta := it.table.meta
	lo, hi := 0, len(meta)
	for lo < hi {
		mid := (lo + hi) / 2
		if bytes.Compare(meta[mid].LastKey, key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// SeekToKey positions the iterator at the smallest emitted key >=
// target. If target is greater than the table's last key, the
// iterator becomes invalid.
//
// A target in the gap between two blocks (after meta[i].LastKey,
// before meta[i+1].FirstKey) selects block i+1, since that is the
// first block whose LastKey >= target, and the inner seek lands on its
// first entry. If the inner seek nonetheless ends up invalid,
// SeekToKey advances to the next block's first entry.
func (it *Iterator) SeekToKey(target []byte) error {
	idx := it.findBlockIdx(target)
	if idx >= len(it.table.meta) {
		it.blkIdx = idx
		it.blkIter = nil
		return nil
	}

	blk, err := it.table.readBlock(idx)
	if err != nil {
		return err
	}
	it.blkIdx = idx
	it.blkIter = block.NewIteratorAndSeekToKey(blk, target)

	if !it.blkIter.IsValid() {
		return it.advanceToNextBlock()
	}
	return nil
}

// Next advances to the following entry, crossing block boundaries
// transparently. Fails with ErrInvalidIterator if called while
// already invalid.
func (it *Iterator) Next() error {
	if !it.IsValid() {
		return ErrInvalidIterator
	}
	it.blkIter.Next()
	if it.blkIter.IsValid() {
		return nil
	}
	return it.advanceToNextBlock()
}

// advanceToNextBlock moves past the current (exhausted) block to the
// first entry of the next one, repeating until it finds a non-empty
// block or runs out of blocks.
func (it *Iterator) advanceToNextBlock() error {
	for {
		it.blkIdx++
		if it.blkIdx >= len(it.table.meta) {
			it.blkIter = nil
			return nil
		}
		blk, err := it.table.readBlock(it.blkIdx)
		if err != nil {
			return err
		}
		it.blkIter = block.NewIteratorAndSeekToFirst(blk)
		if it.blkIter.IsValid() {
			return nil
		}
	}
}
