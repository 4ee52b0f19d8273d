package block

// Builder accumulates key/value entries for a single block, targeting a
// soft size budget in bytes.
//
// The first entry is always accepted, even if it alone exceeds
// blockSize — a block can never be empty as long as at least one
// entry was offered to it. Every entry after the first is rejected
// (Add returns false, builder state unchanged) whenever appending it
// would push the encoded block past blockSize.
//
// Callers must supply keys in strictly ascending order; Builder does
// not check this (violating it is undefined behavior from the block's
// perspective, per the block's own sortedness invariant).
type Builder struct {
	data      []byte
	offsets   []uint16
	blockSize int
}

// NewBuilder creates a Builder targeting the given soft block size in bytes.
func NewBuilder(blockSize int) *Builder {
	return &Builder{blockSize: blockSize}
}

// IsEmpty reports whether any entry has been added.
func (b *Builder) IsEmpty() bool {
	return len(b.offsets) == 0
}

// EstimatedSize returns the size in bytes the block would occupy if
// encoded right now: data ‖ offsets ‖ count.
func (b *Builder) EstimatedSize() int {
	return len(b.data) + 2*len(b.offsets) + 2
}

// Add attempts to append (key, value) to the block. It returns true if
// the entry was accepted. The first entry is always accepted; later
// entries are rejected once accepting them would exceed the builder's
// target block size, leaving the builder's contents untouched.
func (b *Builder) Add(key, value []byte) bool {
	if !b.IsEmpty() {
		grown := b.EstimatedSize() + encodedEntryLen(key, value) + 2
		if grown > b.blockSize {
			return false
		}
	}

	offset := uint16(len(b.data))
	b.data = appendEntry(b.data, key, value)
	b.offsets = append(b.offsets, offset)
	return true
}

// Build consumes the builder and produces its Block.
func (b *Builder) Build() *Block {
	return &Block{
		data:    b.data,
		offsets: b.offsets,
	}
}
