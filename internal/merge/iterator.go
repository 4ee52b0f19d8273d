// Package merge implements the k-way merge iterator that unifies
// several ordered sources into one sorted stream, breaking ties by
// source priority and collapsing duplicate keys to a single winner.
package merge

import (
	"bytes"
	"container/heap"
	"errors"
)

// ErrInvalidIterator is returned by Next when the merge iterator is
// already invalid (has no current entry, whether from reaching the
// end or from a prior error).
var ErrInvalidIterator = errors.New("merge: next called on an iterator that has errored")

// Source is an ordered iterator a merge Iterator can multiplex.
type Source interface {
	Valid() bool
	Key() []byte
	Value() []byte
	Next() error
}

// Iterator merges k Sources into a single sorted, deduplicated stream.
//
// Source priority is the source's position in the input slice passed
// to NewIterator: lower index wins ties, modeling "fresher data" in
// LSM terms. For any key present in multiple sources, only the
// lowest-priority-index source's value is emitted; the others are
// silently advanced past that key.
type Iterator struct {
	heap    *sourceHeap
	current *heapItem
	err     error
}

// NewIterator constructs a merge Iterator over sources. Invalid
// sources are skipped at construction; the rest are ordered by
// (key ascending, source priority ascending) and the smallest is
// popped into the current position.
func NewIterator(sources []Source) *Iterator {
	h := &sourceHeap{}
	for i, s := range sources {
		if s.Valid() {
			h.items = append(h.items, heapItem{priority: i, src: s})
		}
	}
	heap.Init(h)

	mi := &Iterator{heap: h}
	mi.popCurrent()
	return mi
}

// IsValid reports whether the iterator is positioned at an entry.
func (mi *Iterator) IsValid() bool {
	return mi.current != nil && mi.err == nil
}

// Key returns the current entry's key, or nil if invalid.
func (mi *Iterator) Key() []byte {
	if !mi.IsValid() {
		return nil
	}
	return mi.current.src.Key()
}

// Value returns the current entry's value, or nil if invalid.
func (mi *Iterator) Value() []byte {
	if !mi.IsValid() {
		return nil
	}
	return mi.current.src.Value()
}

// Error returns any error encountered while merging.
func (mi *Iterator) Error() error {
	return mi.err
}

// Next advances the merge to the next distinct key.
//
// Before moving current's own source, Next drains every other source
// still sitting on current's key: each is advanced past it (and
// dropped from the heap if it errors or runs out), so that no
// dominated duplicate is ever emitted. Only then does current's
// source advance, get pushed back into the heap if still valid, and
// the new smallest entry becomes current.
func (mi *Iterator) Next() error {
	if !mi.IsValid() {
		return ErrInvalidIterator
	}

	currKey := mi.current.src.Key()
	for mi.heap.Len() > 0 && bytes.Equal(mi.heap.items[0].src.Key(), currKey) {
		top := mi.heap.items[0].src
		if err := top.Next(); err != nil {
			heap.Pop(mi.heap)
			mi.current = nil
			mi.err = err
			return err
		}
		if !top.Valid() {
			heap.Pop(mi.heap)
		} else {
			heap.Fix(mi.heap, 0)
		}
	}

	cur := mi.current
	if err := cur.src.Next(); err != nil {
		mi.current = nil
		mi.err = err
		return err
	}
	if cur.src.Valid() {
		heap.Push(mi.heap, *cur)
	}
	mi.popCurrent()
	return nil
}

// popCurrent pops the smallest entry from the heap into current, or
// clears current if the heap is empty.
func (mi *Iterator) popCurrent() {
	if mi.heap.Len() == 0 {
		mi.current = nil
		return
	}
	item, _ := heap.Pop(mi.heap).(heapItem)
	mi.current = &item
}

// heapItem pairs a source with its construction-time priority.
type heapItem struct {
	priority int
	src      Source
}

// sourceHeap orders heapItems by (key ascending, priority ascending),
// i.e. on a tie the lower-indexed (fresher) source comes first.
type sourceHeap struct {
	items []heapItem
}

func (h *sourceHeap) Len() int { return len(h.items) }

func (h *sourceHeap) Less(i, j int) bool {
	c := bytes.Compare(h.items[i].src.Key(), h.items[j].src.Key())
	if c != 0 {
		return c < 0
	}
	return h.items[i].priority < h.items[j].priority
}

func (h *sourceHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *sourceHeap) Push(x any) {
	item, _ := x.(heapItem)
	h.items = append(h.items, item)
}

func (h *sourceHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
