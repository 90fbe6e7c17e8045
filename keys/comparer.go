package keys

import (
	"bytes"

	"github.com/datnguyenzzz/nogodb-mvcore/internal/codec"
)

// Comparer is the user-supplied total order over raw []byte keys.
// Separator/Successor are the block-builder shortening helpers: a
// comparer that cannot usefully shorten a key may simply append it
// unchanged (see bytewiseComparer).
type Comparer interface {
	Name() string
	Compare(a, b []byte) int
	// Separator appends x to dst such that a <= x && x < b.
	Separator(dst, a, b []byte) []byte
	// Successor appends x to dst such that x >= b.
	Successor(dst, b []byte) []byte
}

// bytewiseComparer is the default Comparer: plain lexicographic byte
// order.
type bytewiseComparer struct{}

// NewBytewiseComparer returns the default lexicographic Comparer.
func NewBytewiseComparer() Comparer { return bytewiseComparer{} }

func (bytewiseComparer) Name() string { return "leveldb.BytewiseComparator" }

func (bytewiseComparer) Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

func (bytewiseComparer) Separator(dst, a, b []byte) []byte {
	var prefixLen int
	n := min(len(a), len(b))
	for prefixLen = 0; prefixLen < n && a[prefixLen] == b[prefixLen]; prefixLen++ {
	}
	if prefixLen >= n || a[prefixLen] >= b[prefixLen] {
		return append(dst, a...)
	}
	if prefixLen < len(b)-1 || a[prefixLen]+1 < b[prefixLen] {
		dst = append(dst, a[:prefixLen+1]...)
		dst[len(dst)-1]++
		return dst
	}
	// a[prefixLen]+1 == b[prefixLen] and b ends there: find the first byte
	// after prefixLen that isn't already 0xff and bump that instead.
	for prefixLen++; prefixLen < len(a); prefixLen++ {
		if a[prefixLen] != 0xff {
			dst = append(dst, a[:prefixLen+1]...)
			dst[len(dst)-1]++
			return dst
		}
	}
	return append(dst, a...)
}

func (bytewiseComparer) Successor(dst, b []byte) []byte {
	for i, v := range b {
		if v < 0xff {
			dst = append(dst, b[:i+1]...)
			dst[len(dst)-1]++
			return dst
		}
	}
	return append(dst, b...)
}

// InternalKeyComparer lifts a user Comparer into the internal-key
// space: it orders by user key, then by sequence number descending,
// then (in MultiVersion mode) by valid time descending.
type InternalKeyComparer struct {
	User Comparer
	Mode Mode
}

// NewInternalKeyComparer builds the adapter for the given user
// comparer and mode.
func NewInternalKeyComparer(user Comparer, mode Mode) *InternalKeyComparer {
	return &InternalKeyComparer{User: user, Mode: mode}
}

// Name is the on-disk comparator name; the internal layer is otherwise
// invisible to storage.
func (c *InternalKeyComparer) Name() string { return "leveldb.InternalKeyComparator" }

func tailWord(k []byte, trailerLen int) uint64 {
	v, _, _ := codec.GetFixed64(k[len(k)-trailerLen : len(k)-trailerLen+8])
	return v
}

// Compare orders two raw encoded internal keys.
func (c *InternalKeyComparer) Compare(a, b []byte) int {
	trailer := c.Mode.trailerLen()
	if r := c.User.Compare(ExtractUserKey(a, c.Mode), ExtractUserKey(b, c.Mode)); r != 0 {
		return r
	}

	at, bt := tailWord(a, trailer), tailWord(b, trailer)
	if at != bt {
		if at > bt {
			return -1 // newer sequence number (and, on a tie, larger kind) sorts first
		}
		return 1
	}

	if c.Mode == MultiVersion {
		avt, _, _ := codec.GetFixed64(a[len(a)-8:])
		bvt, _, _ := codec.GetFixed64(b[len(b)-8:])
		if avt != bvt {
			if avt > bvt {
				return -1 // larger valid time sorts first
			}
			return 1
		}
	}

	// Identical user key, tail, and (if MV) valid time: truly equal keys.
	return 0
}

// FindShortestSeparator appends to dst a key x such that start <= x <
// limit, preferring the shortest user key the underlying comparer can
// produce. If no shortening is possible it appends start unchanged.
func (c *InternalKeyComparer) FindShortestSeparator(dst, start, limit []byte) []byte {
	userStart := ExtractUserKey(start, c.Mode)
	userLimit := ExtractUserKey(limit, c.Mode)

	tmp := c.User.Separator(nil, userStart, userLimit)
	if len(tmp) < len(userStart) && c.User.Compare(userStart, tmp) < 0 {
		dst = append(dst, tmp...)
		dst = codec.PutFixed64(dst, pack(MaxSeqNum, KeyKindMax))
		if c.Mode == MultiVersion {
			dst = codec.PutFixed64(dst, uint64(MinValidTime))
		}
		return dst
	}
	return append(dst, start...)
}

// FindShortSuccessor appends to dst a key x such that x >= key,
// preferring the shortest user key the underlying comparer can
// produce. If no shortening is possible it appends key unchanged.
func (c *InternalKeyComparer) FindShortSuccessor(dst, key []byte) []byte {
	userKey := ExtractUserKey(key, c.Mode)

	tmp := c.User.Successor(nil, userKey)
	if len(tmp) < len(userKey) && c.User.Compare(userKey, tmp) < 0 {
		dst = append(dst, tmp...)
		dst = codec.PutFixed64(dst, pack(MaxSeqNum, KeyKindMax))
		if c.Mode == MultiVersion {
			dst = codec.PutFixed64(dst, uint64(MinValidTime))
		}
		return dst
	}
	return append(dst, key...)
}

// Separator is the block-builder entry point used when narrowing an
// index-block boundary key between k and other: it rebuilds a decoded
// InternalKey rather than handing back raw bytes, since that is the
// shape an index writer needs from its comparer.
func (k *InternalKey) Separator(cmp *InternalKeyComparer, other *InternalKey) *InternalKey {
	raw := cmp.FindShortestSeparator(nil, k.AppendTo(nil), other.AppendTo(nil))
	if nk, ok := ParseInternalKey(raw, cmp.Mode); ok {
		return &nk
	}
	return k
}

// Successor is the block-builder entry point used when an index block
// is being closed out with no following key to separate against.
func (k *InternalKey) Successor(cmp *InternalKeyComparer) *InternalKey {
	raw := cmp.FindShortSuccessor(nil, k.AppendTo(nil))
	if nk, ok := ParseInternalKey(raw, cmp.Mode); ok {
		return &nk
	}
	return k
}

var _ Comparer = bytewiseComparer{}
