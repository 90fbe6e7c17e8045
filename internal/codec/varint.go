// Package codec provides the little-endian fixed-width and varint
// encodings that the key and batch formats are built out of. Every
// other component in this module is a pure consumer of these helpers.
package codec

import "encoding/binary"

// PutFixed32 appends a little-endian uint32 to dst.
func PutFixed32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// PutFixed64 appends a little-endian uint64 to dst.
func PutFixed64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

// GetFixed32 reads a little-endian uint32 from the front of src.
func GetFixed32(src []byte) (v uint32, rest []byte, ok bool) {
	if len(src) < 4 {
		return 0, src, false
	}
	return binary.LittleEndian.Uint32(src), src[4:], true
}

// GetFixed64 reads a little-endian uint64 from the front of src.
func GetFixed64(src []byte) (v uint64, rest []byte, ok bool) {
	if len(src) < 8 {
		return 0, src, false
	}
	return binary.LittleEndian.Uint64(src), src[8:], true
}

// PutVarint32 appends the LEB128 varint encoding of v to dst.
func PutVarint32(dst []byte, v uint32) []byte {
	return binary.AppendUvarint(dst, uint64(v))
}

// GetVarint32 decodes a varint32 from the front of src.
func GetVarint32(src []byte) (v uint32, rest []byte, ok bool) {
	x, n := binary.Uvarint(src)
	if n <= 0 || x > 1<<32-1 {
		return 0, src, false
	}
	return uint32(x), src[n:], true
}

// PutLengthPrefixedSlice appends varint32(len(s)) followed by s itself.
func PutLengthPrefixedSlice(dst []byte, s []byte) []byte {
	dst = PutVarint32(dst, uint32(len(s)))
	return append(dst, s...)
}

// GetLengthPrefixedSlice reads a varint32-prefixed byte slice from the
// front of src. The returned slice aliases src; callers that need to
// retain it beyond src's lifetime must copy.
func GetLengthPrefixedSlice(src []byte) (s []byte, rest []byte, ok bool) {
	n, rest, ok := GetVarint32(src)
	if !ok || uint32(len(rest)) < n {
		return nil, src, false
	}
	return rest[:n], rest[n:], true
}
