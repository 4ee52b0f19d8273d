// Package sst implements the sorted string table: an immutable file
// composed of a sequence of blocks plus a meta index that enables
// block-granularity seeking.
//
// SST file layout:
//
//	[block 0][block 1] ... [block n-1][meta section][meta_offset: u32 BE]
//
// The trailing four bytes locate the meta section; individual blocks
// are located through their BlockMeta's Offset field.
package sst

import (
	"errors"

	"github.com/kvforge/lsmtree/internal/encoding"
)

// ErrCorruptMeta is returned when the meta section or file trailer
// cannot be parsed.
var ErrCorruptMeta = errors.New("sst: corrupted meta section")

// ErrEmptyTable is returned by Builder.Build when no key was ever added.
var ErrEmptyTable = errors.New("sst: cannot build an empty table")

// ErrInvalidIterator is returned by Iterator.Next when called on an
// iterator that is not currently positioned at an entry.
var ErrInvalidIterator = errors.New("sst: next called on invalid iterator")

// BlockMeta describes one block's location and key range within an SST.
//
// The meta sequence is ordered by Offset, and by construction
// meta[i].LastKey < meta[i+1].FirstKey.
type BlockMeta struct {
	Offset   uint64
	FirstKey []byte
	LastKey  []byte
}

// encodeMetaSection serializes a meta sequence as:
//
//	n_blocks      : u32 BE
//	then, per block:
//	  offset        : u32 BE
//	  first_key_len : u16 BE
//	  first_key     : bytes
//	  last_key_len  : u16 BE
//	  last_key      : bytes
//
// The leading count makes the section self-describing: a reader never
// needs to guess where it ends by arithmetic alone, though the
// trailing meta_offset suffix (§6) still bounds it redundantly.
func encodeMetaSection(meta []BlockMeta) []byte {
	out := encoding.AppendUint32(nil, uint32(len(meta)))
	for _, m := range meta {
		out = encoding.AppendUint32(out, uint32(m.Offset))
		out = encoding.AppendUint16(out, uint16(len(m.FirstKey)))
		out = append(out, m.FirstKey...)
		out = encoding.AppendUint16(out, uint16(len(m.LastKey)))
		out = append(out, m.LastKey...)
	}
	return out
}

// decodeMetaSection parses a meta section produced by encodeMetaSection.
func decodeMetaSection(buf []byte) ([]BlockMeta, error) {
	if len(buf) < 4 {
		return nil, ErrCorruptMeta
	}
	n := int(encoding.Uint32(buf))
	buf = buf[4:]

	meta := make([]BlockMeta, 0, n)
	for i := 0; i < n; i++ {
		if len(buf) < 4+2 {
			return nil, ErrCorruptMeta
		}
		offset := uint64(encoding.Uint32(buf))
		buf = buf[4:]

		firstLen := int(encoding.Uint16(buf))
		buf = buf[2:]
		if len(buf) < firstLen+2 {
			return nil, ErrCorruptMeta
		}
		firstKey := buf[:firstLen]
		buf = buf[firstLen:]

		lastLen := int(encoding.Uint16(buf))
		buf = buf[2:]
		if len(buf) < lastLen {
			return nil, ErrCorruptMeta
		}
		lastKey := buf[:lastLen]
		buf = buf[lastLen:]

		meta = append(meta, BlockMeta{
			Offset:   offset,
			FirstKey: append([]byte(nil), firstKey...),
			LastKey:  append([]byte(nil), lastKey...),
		})
	}
	return meta, nil
}
