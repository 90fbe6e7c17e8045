package keys

import "github.com/datnguyenzzz/nogodb-mvcore/internal/codec"

// lookupKeyInlineSize is the small-buffer-optimization constant: 200
// bytes keeps almost all point reads allocation-free. The inline array
// lives directly in the struct.
const lookupKeyInlineSize = 200

// LookupKey is the ephemeral encoded query key built once per point
// read. It offers three views over the same backing buffer:
// MemtableKey (the varint-length-prefixed form memtable expects),
// InternalKey (the form a table iterator expects), and UserKey (just
// the user-key bytes).
type LookupKey struct {
	buf          []byte
	space        [lookupKeyInlineSize]byte
	userKeyStart int
	mode         Mode
}

func (lk *LookupKey) build(userKey []byte, seq SeqNum, vt ValidTime, hasValidTime bool) {
	trailer := TrailerLen
	if hasValidTime {
		trailer = MVTrailerLen
	}
	internalLen := len(userKey) + trailer

	// A varint32 of internalLen is at most 5 bytes; reserve generously
	// up front so the single capacity check below is exact.
	want := internalLen + 5
	var buf []byte
	if want <= len(lk.space) {
		buf = lk.space[:0]
	} else {
		buf = make([]byte, 0, want)
	}

	buf = codec.PutVarint32(buf, uint32(internalLen))
	lk.userKeyStart = len(buf)
	buf = append(buf, userKey...)
	buf = codec.PutFixed64(buf, pack(seq, KeyKindMax))
	if hasValidTime {
		buf = codec.PutFixed64(buf, uint64(vt))
	}
	lk.buf = buf
}

// NewLookupKey builds a SingleVersion lookup key for (userKey, seq).
func NewLookupKey(userKey []byte, seq SeqNum) *LookupKey {
	lk := &LookupKey{mode: SingleVersion}
	lk.build(userKey, seq, 0, false)
	return lk
}

// NewMVLookupKey builds a MultiVersion lookup key for (userKey, seq, vt).
func NewMVLookupKey(userKey []byte, seq SeqNum, vt ValidTime) *LookupKey {
	lk := &LookupKey{mode: MultiVersion}
	lk.build(userKey, seq, vt, true)
	return lk
}

// MemtableKey returns the full buffer, varint length prefix included:
// what the memtable's keyed map expects as a key.
func (lk *LookupKey) MemtableKey() []byte { return lk.buf }

// InternalKey returns the buffer starting just past the varint length:
// what a table iterator's Seek expects.
func (lk *LookupKey) InternalKey() []byte { return lk.buf[lk.userKeyStart:] }

// UserKey returns just the user-key bytes.
func (lk *LookupKey) UserKey() []byte {
	trailer := TrailerLen
	if lk.mode == MultiVersion {
		trailer = MVTrailerLen
	}
	return lk.buf[lk.userKeyStart : len(lk.buf)-trailer]
}
