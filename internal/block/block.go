// Package block implements the sorted block format: the atomic unit of
// on-disk storage and caching for an SST file.
//
// A Block holds a sorted, self-describing sequence of key/value entries,
// addressable through an offset index. Entries never repeat a key within
// a single block.
//
// Record layout (at offsets[i] within data):
//
//	key_len    : u16 BE
//	key        : key_len bytes
//	value_len  : u16 BE
//	value      : value_len bytes
//
// Block-on-wire layout (produced by Encode):
//
//	data ‖ offsets[0] (u16 BE) ‖ offsets[1] (u16 BE) ‖ ... ‖ offsets[n-1] (u16 BE) ‖ n (u16 BE)
package block

import (
	"errors"

	"github.com/kvforge/lsmtree/internal/encoding"
)

// ErrCorrupted is returned when block bytes fail to decode: a truncated
// trailer, an offset count that doesn't fit the buffer, or an offset
// that points past the data section.
var ErrCorrupted = errors.New("block: corrupted block")

// Entry is a decoded key/value pair.
type Entry struct {
	Key   []byte
	Value []byte
}

// Block is a decoded, immutable view over on-disk block bytes.
//
// data holds the entry records back to back; offsets holds the byte
// offset of each entry's start within data, in ascending key order.
type Block struct {
	data    []byte
	offsets []uint16
}

// NumEntries returns the number of entries in the block.
func (b *Block) NumEntries() int {
	return len(b.offsets)
}

// OffsetAt returns the i-th entry's start offset into Data().
func (b *Block) OffsetAt(i int) uint16 {
	return b.offsets[i]
}

// Data returns the encoded entry bytes (excluding the offset index and trailer).
func (b *Block) Data() []byte {
	return b.data
}

// EntryAt decodes the entry starting at offsets[i].
// Returns ErrCorrupted if the record is truncated.
func (b *Block) EntryAt(i int) (key, value []byte, err error) {
	if i < 0 || i >= len(b.offsets) {
		return nil, nil, ErrCorrupted
	}
	return decodeEntry(b.data[b.offsets[i]:])
}

// decodeEntry parses a single record from the front of buf and returns
// its key and value slices (views into buf).
func decodeEntry(buf []byte) (key, value []byte, err error) {
	if len(buf) < 2 {
		return nil, nil, ErrCorrupted
	}
	keyLen := int(encoding.Uint16(buf))
	buf = buf[2:]
	if len(buf) < keyLen+2 {
		return nil, nil, ErrCorrupted
	}
	key = buf[:keyLen]
	buf = buf[keyLen:]

	valueLen := int(encoding.Uint16(buf))
	buf = buf[2:]
	if len(buf) < valueLen {
		return nil, nil, ErrCorrupted
	}
	value = buf[:valueLen]
	return key, value, nil
}

// encodedEntryLen returns the number of bytes appendEntry would append
// for the given key/value, without allocating.
func encodedEntryLen(key, value []byte) int {
	return 2 + len(key) + 2 + len(value)
}

// appendEntry appends the wire encoding of (key, value) to dst.
func appendEntry(dst, key, value []byte) []byte {
	dst = encoding.AppendUint16(dst, uint16(len(key)))
	dst = append(dst, key...)
	dst = encoding.AppendUint16(dst, uint16(len(value)))
	dst = append(dst, value...)
	return dst
}

// Encode serializes the block to its on-disk byte representation:
// data ‖ offsets (u16 BE each) ‖ n (u16 BE).
func (b *Block) Encode() []byte {
	out := make([]byte, 0, len(b.data)+2*len(b.offsets)+2)
	out = append(out, b.data...)
	for _, off := range b.offsets {
		out = encoding.AppendUint16(out, off)
	}
	out = encoding.AppendUint16(out, uint16(len(b.offsets)))
	return out
}

// Decode parses raw on-disk bytes into a Block. It is a pure function:
// Decode(Encode(b)) reproduces b's data and offsets exactly.
//
// Fails with ErrCorrupted if the buffer is too short to hold a trailer,
// the trailing entry count implies an offset vector larger than the
// buffer, or any offset points past the data section it bounds.
func Decode(raw []byte) (*Block, error) {
	if len(raw) < 2 {
		return nil, ErrCorrupted
	}
	n := int(encoding.Uint16(raw[len(raw)-2:]))
	trailerLen := 2 + 2*n
	if trailerLen > len(raw) {
		return nil, ErrCorrupted
	}
	dataEnd := len(raw) - trailerLen
	offBuf := raw[dataEnd : len(raw)-2]

	offsets := make([]uint16, n)
	for i := 0; i < n; i++ {
		off := encoding.Uint16(offBuf[2*i:])
		if int(off) > dataEnd {
			return nil, ErrCorrupted
		}
		offsets[i] = off
	}

	return &Block{
		data:    raw[:dataEnd],
		offsets: offsets,
	}, nil
}
