package sst

import (
	"github.com/kvforge/lsmtree/internal/block"
	"github.com/kvforge/lsmtree/internal/bloom"
	"github.com/kvforge/lsmtree/internal/cache"
	"github.com/kvforge/lsmtree/internal/encoding"
	"github.com/kvforge/lsmtree/internal/vfs"
)

// Builder assembles an SST from a stream of keys supplied in
// non-decreasing order. Keys must arrive globally sorted; the builder
// relies on this to maintain meta[i].LastKey < meta[i+1].FirstKey.
type Builder struct {
	blockSize int

	active   *block.Builder
	firstKey []byte
	lastKey  []byte

	data []byte
	meta []BlockMeta
}

// NewBuilder creates a Builder targeting the given soft per-block size
// in bytes.
func NewBuilder(blockSize int) *Builder {
	return &Builder{
		blockSize: blockSize,
		active:    block.NewBuilder(blockSize),
	}
}

// Add appends (key, value) to the table being built.
//
// If the active block still has room, the entry joins it. Otherwise
// the active block is sealed — its meta is recorded and its encoded
// bytes appended to the data buffer — and a fresh block is started
// with this entry as its first (which must succeed, per the block
// builder's first-entry rule).
func (b *Builder) Add(key, value []byte) {
	if b.active.Add(key, value) {
		b.lastKey = append(b.lastKey[:0], key...)
		if len(b.firstKey) == 0 {
			b.firstKey = append(b.firstKey[:0], key...)
		}
		return
	}

	b.sealActiveBlock()

	b.active = block.NewBuilder(b.blockSize)
	b.active.Add(key, value)
	b.firstKey = append([]byte(nil), key...)
	b.lastKey = append([]byte(nil), key...)
}

// sealActiveBlock records the active block's meta and appends its
// encoded bytes to the data buffer. No-op if the active block is empty.
func (b *Builder) sealActiveBlock() {
	if b.active.IsEmpty() {
		return
	}
	b.meta = append(b.meta, BlockMeta{
		Offset:   uint64(len(b.data)),
		FirstKey: b.firstKey,
		LastKey:  b.lastKey,
	})
	b.data = append(b.data, b.active.Build().Encode()...)
}

// EstimatedSize returns an underestimate of the built file's size that
// ignores the still-open block and the meta section overhead; data
// dominates, so this is acceptable for flush-threshold decisions.
func (b *Builder) EstimatedSize() int {
	return len(b.data)
}

// Build finalizes the table: seals any open block, appends the meta
// section and its trailing offset, writes the result to path through
// fs, and returns the resulting Table.
//
// c may be nil, in which case the returned Table never caches blocks.
func (b *Builder) Build(id uint64, c *cache.Cache, fs vfs.FS, path string) (*Table, error) {
	b.sealActiveBlock()

	if len(b.meta) == 0 {
		return nil, ErrEmptyTable
	}

	metaOffset := uint64(len(b.data))
	b.data = append(b.data, encodeMetaSection(b.meta)...)
	b.data = encoding.AppendUint32(b.data, uint32(metaOffset))

	w, err := fs.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(b.data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	file, err := fs.OpenRandomAccess(path)
	if err != nil {
		return nil, err
	}

	return &Table{
		file:       file,
		meta:       b.meta,
		metaOffset: metaOffset,
		id:         id,
		cache:      c,
		firstKey:   b.meta[0].FirstKey,
		lastKey:    b.meta[len(b.meta)-1].LastKey,
		bloom:      (*bloom.Filter)(nil),
	}, nil
}
