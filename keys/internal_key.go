// Package keys implements the internal-key byte layout, the comparator
// adapter that orders internal keys, the filter-policy adapter that
// projects internal keys to user keys, and the lookup-key temporary
// encoding used for point reads. Everything here is pure, in-memory
// byte manipulation: no I/O, no goroutines, no shared mutable state
// beyond what a caller explicitly passes in.
package keys

import (
	"fmt"
	"strings"

	"github.com/datnguyenzzz/nogodb-mvcore/internal/codec"
)

// Mode selects whether an InternalKey (and the comparator built over
// it) carries a valid-time field. It is a property of the comparator
// instance; mixing SingleVersion-encoded and MultiVersion-encoded keys
// through the same comparator is undefined.
type Mode uint8

const (
	SingleVersion Mode = iota
	MultiVersion
)

func (m Mode) String() string {
	if m == MultiVersion {
		return "MultiVersion"
	}
	return "SingleVersion"
}

func (m Mode) trailerLen() int {
	if m == MultiVersion {
		return MVTrailerLen
	}
	return TrailerLen
}

// SeqNum is a 56-bit monotone counter: a key with a higher sequence
// number takes precedence over an equal user key with a lower one.
type SeqNum uint64

// MaxSeqNum is the largest sequence number the trailer can carry.
const MaxSeqNum SeqNum = 1<<56 - 1

// KeyKind is the one-byte value-type discriminant packed into the
// trailer alongside the sequence number.
type KeyKind uint8

const (
	KeyKindDelete KeyKind = 0x00
	KeyKindSet    KeyKind = 0x01

	// KeyKindMax is the sentinel used when packing a lookup-key trailer:
	// it sorts a seek at or after the newest real entry for a user key.
	KeyKindMax = KeyKindSet
)

func (k KeyKind) String() string {
	switch k {
	case KeyKindDelete:
		return "Deletion"
	case KeyKindSet:
		return "Value"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// ValidTime is the application-defined logical time coordinate carried
// by MultiVersion-mode keys.
type ValidTime uint64

const MinValidTime ValidTime = 0

// TrailerLen / MVTrailerLen are the encoded trailer sizes: 8 bytes for
// SingleVersion (seq+kind), 16 for MultiVersion (seq+kind, valid time).
const (
	TrailerLen   = 8
	MVTrailerLen = 16
)

// InternalKey is the user key extended with a sequence number and kind,
// and, in MultiVersion mode, a valid time. It is the decoded, in-memory
// counterpart of the on-the-wire trailer format; Encode/AppendTo
// produce the wire bytes that the comparator and filter adapters
// actually operate over.
type InternalKey struct {
	UserKey      []byte
	Trailer      uint64 // pack(Seq, Kind)
	HasValidTime bool
	ValidTime    ValidTime
}

func pack(seq SeqNum, kind KeyKind) uint64 {
	if seq > MaxSeqNum {
		violation("keys: sequence number %d exceeds MaxSeqNum", seq)
	}
	if kind > KeyKindMax {
		violation("keys: key kind %d exceeds KeyKindMax", kind)
	}
	return (uint64(seq) << 8) | uint64(kind)
}

func unpack(trailer uint64) (SeqNum, KeyKind) {
	return SeqNum(trailer >> 8), KeyKind(trailer & 0xFF)
}

// MakeKey builds a SingleVersion InternalKey.
func MakeKey(userKey []byte, seq SeqNum, kind KeyKind) InternalKey {
	return InternalKey{UserKey: userKey, Trailer: pack(seq, kind)}
}

// MakeMVKey builds a MultiVersion InternalKey.
func MakeMVKey(userKey []byte, seq SeqNum, kind KeyKind, vt ValidTime) InternalKey {
	return InternalKey{UserKey: userKey, Trailer: pack(seq, kind), HasValidTime: true, ValidTime: vt}
}

func (k InternalKey) SeqNum() SeqNum {
	seq, _ := unpack(k.Trailer)
	return seq
}

func (k InternalKey) KeyKind() KeyKind {
	_, kind := unpack(k.Trailer)
	return kind
}

// Size is the length of the encoded key: the user key plus an 8 or
// 16-byte trailer.
func (k InternalKey) Size() int {
	n := len(k.UserKey) + TrailerLen
	if k.HasValidTime {
		n += 8
	}
	return n
}

// AppendTo appends the wire encoding of k to buf and returns the
// extended slice.
func (k InternalKey) AppendTo(buf []byte) []byte {
	buf = append(buf, k.UserKey...)
	buf = codec.PutFixed64(buf, k.Trailer)
	if k.HasValidTime {
		buf = codec.PutFixed64(buf, uint64(k.ValidTime))
	}
	return buf
}

// Encode returns the wire encoding of k as a freshly allocated slice.
func (k InternalKey) Encode() []byte {
	return k.AppendTo(make([]byte, 0, k.Size()))
}

// ExtractUserKey returns the user-key prefix of a raw encoded internal
// key. It panics (a logic violation, not a corruption) if raw is
// shorter than mode's trailer.
func ExtractUserKey(raw []byte, mode Mode) []byte {
	trailer := mode.trailerLen()
	if len(raw) < trailer {
		violation("keys: internal key of length %d shorter than trailer %d", len(raw), trailer)
	}
	return raw[:len(raw)-trailer]
}

// ParseInternalKey decodes a raw encoded internal key. ok is false
// when raw is shorter than mode's trailer or the kind byte is not one
// of the defined KeyKinds ("unparseable", per spec; this is not a
// corruption in the write-batch sense, just a failed parse).
func ParseInternalKey(raw []byte, mode Mode) (key InternalKey, ok bool) {
	trailer := mode.trailerLen()
	if len(raw) < trailer {
		return InternalKey{}, false
	}
	n := len(raw) - trailer
	trailerWord := leUint64(raw[n : n+8])
	_, kind := unpack(trailerWord)
	if kind > KeyKindMax {
		return InternalKey{}, false
	}
	key = InternalKey{
		UserKey: raw[:n:n],
		Trailer: trailerWord,
	}
	if mode == MultiVersion {
		key.HasValidTime = true
		key.ValidTime = ValidTime(leUint64(raw[n+8 : n+16]))
	}
	return key, true
}

func leUint64(b []byte) uint64 {
	v, _, _ := codec.GetFixed64(b)
	return v
}

// String renders the decoded key as 'escaped_user_key' @ seq : kind.
func (k InternalKey) String() string {
	seq, kind := unpack(k.Trailer)
	return fmt.Sprintf("'%s' @ %d : %s", escape(k.UserKey), seq, kind)
}

// DebugBytes renders a raw, possibly-corrupt encoded internal key for
// diagnostics. It never fails: unparseable input renders as
// "(bad)"+escape(raw).
func DebugBytes(raw []byte, mode Mode) string {
	if key, ok := ParseInternalKey(raw, mode); ok {
		return key.String()
	}
	return "(bad)" + escape(raw)
}

// escape turns non-printable bytes into \xHH.
func escape(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, "\\x%02x", c)
		}
	}
	return sb.String()
}
