// Package encoding provides the fixed-width binary encoding primitives
// shared by the block and sst packages.
//
// All multi-byte integers in this engine's on-disk formats are
// big-endian, matching the u16/u32 BE layout of the block, block-meta,
// and SST footer records.
package encoding

import "encoding/binary"

// PutUint16 writes a big-endian uint16 into dst.
// REQUIRES: len(dst) >= 2.
func PutUint16(dst []byte, v uint16) {
	binary.BigEndian.PutUint16(dst, v)
}

// Uint16 reads a big-endian uint16 from src.
// REQUIRES: len(src) >= 2.
func Uint16(src []byte) uint16 {
	return binary.BigEndian.Uint16(src)
}

// AppendUint16 appends a big-endian uint16 to dst and returns the extended slice.
func AppendUint16(dst []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, v)
}

// PutUint32 writes a big-endian uint32 into dst.
// REQUIRES: len(dst) >= 4.
func PutUint32(dst []byte, v uint32) {
	binary.BigEndian.PutUint32(dst, v)
}

// Uint32 reads a big-endian uint32 from src.
// REQUIRES: len(src) >= 4.
func Uint32(src []byte) uint32 {
	return binary.BigEndian.Uint32(src)
}

// AppendUint32 appends a big-endian uint32 to dst and returns the extended slice.
func AppendUint32(dst []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, v)
}

// AppendUint64 appends a big-endian uint64 to dst and returns the extended slice.
func AppendUint64(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

// Uint64 reads a big-endian uint64 from src.
// REQUIRES: len(src) >= 8.
func Uint64(src []byte) uint64 {
	return binary.BigEndian.Uint64(src)
}
