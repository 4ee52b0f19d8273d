package sst

import (
	"github.com/kvforge/lsmtree/internal/block"
	"github.com/kvforge/lsmtree/internal/bloom"
	"github.com/kvforge/lsmtree/internal/cache"
	"github.com/kvforge/lsmtree/internal/encoding"
	"github.com/kvforge/lsmtree/internal/vfs"
)

// Table is an immutable, sealed SST: a file object, its ordered block
// meta sequence, and the attributes derived from them.
//
// Once built or opened, a Table is read-only; it is safe for
// concurrent readers (multiple Iterators over the same Table may run
// in separate goroutines).
type Table struct {
	file       vfs.RandomAccessFile
	meta       []BlockMeta
	metaOffset uint64
	id         uint64
	cache      *cache.Cache

	firstKey []byte
	lastKey  []byte

	// bloom is the reserved bloom-filter slot: always nil unless
	// attached out-of-band via AttachBloomFilter. The core read path
	// never consults it.
	bloom *bloom.Filter

	// maxTS is the reserved maximum-timestamp slot. Always zero; no
	// code in this package ever sets or reads it for anything other
	// than MaxTimestamp().
	maxTS uint64
}

// Open reads an existing SST file: its trailing meta_offset, the meta
// section it points to, and derives FirstKey/LastKey from it. It does
// not read any data blocks eagerly.
func Open(fs vfs.FS, path string, id uint64, c *cache.Cache) (*Table, error) {
	file, err := fs.OpenRandomAccess(path)
	if err != nil {
		return nil, err
	}

	size := file.Size()
	if size < 4 {
		_ = file.Close()
		return nil, ErrCorruptMeta
	}

	var trailer [4]byte
	if _, err := file.ReadAt(trailer[:], size-4); err != nil {
		_ = file.Close()
		return nil, err
	}
	metaOffset := uint64(encoding.Uint32(trailer[:]))
	if metaOffset > uint64(size-4) {
		_ = file.Close()
		return nil, ErrCorruptMeta
	}

	metaBuf := make([]byte, size-4-int64(metaOffset))
	if _, err := file.ReadAt(metaBuf, int64(metaOffset)); err != nil {
		_ = file.Close()
		return nil, err
	}
	meta, err := decodeMetaSection(metaBuf)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if len(meta) == 0 {
		_ = file.Close()
		return nil, ErrCorruptMeta
	}

	return &Table{
		file:       file,
		meta:       meta,
		metaOffset: metaOffset,
		id:         id,
		cache:      c,
		firstKey:   meta[0].FirstKey,
		lastKey:    meta[len(meta)-1].LastKey,
	}, nil
}

// ID returns this table's identifier, used as part of the block cache key.
func (t *Table) ID() uint64 {
	return t.id
}

// NumBlocks returns the number of data blocks in the table.
func (t *Table) NumBlocks() int {
	return len(t.meta)
}

// FirstKey returns the smallest key stored in the table.
func (t *Table) FirstKey() []byte {
	return t.firstKey
}

// LastKey returns the largest key stored in the table.
func (t *Table) LastKey() []byte {
	return t.lastKey
}

// MaxTimestamp returns the reserved maximum-timestamp slot. Always 0
// in this core implementation.
func (t *Table) MaxTimestamp() uint64 {
	return t.maxTS
}

// AttachBloomFilter attaches a bloom filter to this table out of band
// (not produced by Builder.Build). It is never called by the core
// build/read path.
func (t *Table) AttachBloomFilter(f *bloom.Filter) {
	t.bloom = f
}

// MayContain reports whether key might be present in the table. With
// no filter attached (the core path's default), it conservatively
// returns true.
func (t *Table) MayContain(key []byte) bool {
	if t.bloom == nil {
		return true
	}
	return t.bloom.MayContain(key)
}

// Close releases the table's underlying file object.
func (t *Table) Close() error {
	return t.file.Close()
}

// blockByteRange returns the [start, end) byte range of block i within
// the file, derived from adjacent meta offsets (or metaOffset for the
// last block).
func (t *Table) blockByteRange(i int) (start, end uint64) {
	start = t.meta[i].Offset
	if i+1 < len(t.meta) {
		end = t.meta[i+1].Offset
	} else {
		end = t.metaOffset
	}
	return start, end
}

// readBlock returns the decoded block at index i, consulting the cache
// first when one is configured and inserting on miss.
func (t *Table) readBlock(i int) (*block.Block, error) {
	key := cache.Key{SSTID: t.id, BlockIndex: i}
	if t.cache != nil {
		if blk, ok := t.cache.Get(key); ok {
			return blk, nil
		}
	}

	start, end := t.blockByteRange(i)
	buf := make([]byte, end-start)
	if _, err := t.file.ReadAt(buf, int64(start)); err != nil {
		return nil, err
	}
	blk, err := block.Decode(buf)
	if err != nil {
		return nil, err
	}

	if t.cache != nil {
		t.cache.Put(key, blk)
	}
	return blk, nil
}
