package batch

import (
	"github.com/datnguyenzzz/nogodb-mvcore/internal/codec"
	"github.com/datnguyenzzz/nogodb-mvcore/keys"
)

// Handler is the SingleVersion batch-handler capability set: Iterate
// dispatches one callback per record, in insertion order.
type Handler interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// MVHandler is the MultiVersion counterpart, each callback additionally
// carrying the record's valid time.
type MVHandler interface {
	PutMV(key []byte, vt keys.ValidTime, value []byte) error
	DeleteMV(key []byte, vt keys.ValidTime) error
}

// Iterate parses b's records and dispatches each to h, in insertion
// order. It reports the first malformed record and does not attempt
// partial recovery; the number of dispatched records must equal the
// header count exactly or iteration fails with a CorruptionError.
func (b *Batch) Iterate(h Handler) error {
	b.requireMode(keys.SingleVersion, "Iterate")
	input := b.buf
	if len(input) < headerLen {
		return keys.NewCorruptionError(keys.CorruptBadHeader, "malformed WriteBatch (too small)")
	}
	input = input[headerLen:]

	var found uint32
	for len(input) > 0 {
		found++
		tag := keys.KeyKind(input[0])
		input = input[1:]
		switch tag {
		case keys.KeyKindSet:
			key, rest, ok := codec.GetLengthPrefixedSlice(input)
			if !ok {
				return keys.NewCorruptionError(keys.CorruptTruncatedRecord, "bad WriteBatch Put")
			}
			value, rest2, ok := codec.GetLengthPrefixedSlice(rest)
			if !ok {
				return keys.NewCorruptionError(keys.CorruptTruncatedRecord, "bad WriteBatch Put")
			}
			if err := h.Put(key, value); err != nil {
				return err
			}
			input = rest2
		case keys.KeyKindDelete:
			key, rest, ok := codec.GetLengthPrefixedSlice(input)
			if !ok {
				return keys.NewCorruptionError(keys.CorruptTruncatedRecord, "bad WriteBatch Delete")
			}
			if err := h.Delete(key); err != nil {
				return err
			}
			input = rest
		default:
			return keys.NewCorruptionError(keys.CorruptUnknownTag, "unknown WriteBatch tag")
		}
	}

	if found != b.Count() {
		return keys.NewCorruptionError(keys.CorruptCountMismatch, "WriteBatch has wrong count")
	}
	return nil
}

// IterateMV is Iterate's MultiVersion counterpart: each record also
// carries a valid time, serialized immediately after the key.
func (b *Batch) IterateMV(h MVHandler) error {
	b.requireMode(keys.MultiVersion, "IterateMV")
	input := b.buf
	if len(input) < headerLen {
		return keys.NewCorruptionError(keys.CorruptBadHeader, "malformed WriteBatchMV (too small)")
	}
	input = input[headerLen:]

	var found uint32
	for len(input) > 0 {
		found++
		tag := keys.KeyKind(input[0])
		input = input[1:]
		switch tag {
		case keys.KeyKindSet:
			key, rest, ok := codec.GetLengthPrefixedSlice(input)
			if !ok {
				return keys.NewCorruptionError(keys.CorruptTruncatedRecord, "bad WriteBatchMV Put")
			}
			vt, rest, ok2 := codec.GetFixed64(rest)
			if !ok2 {
				return keys.NewCorruptionError(keys.CorruptTruncatedRecord, "bad WriteBatchMV Put")
			}
			value, rest, ok3 := codec.GetLengthPrefixedSlice(rest)
			if !ok3 {
				return keys.NewCorruptionError(keys.CorruptTruncatedRecord, "bad WriteBatchMV Put")
			}
			if err := h.PutMV(key, keys.ValidTime(vt), value); err != nil {
				return err
			}
			input = rest
		case keys.KeyKindDelete:
			key, rest, ok := codec.GetLengthPrefixedSlice(input)
			if !ok {
				return keys.NewCorruptionError(keys.CorruptTruncatedRecord, "bad WriteBatchMV Delete")
			}
			vt, rest, ok2 := codec.GetFixed64(rest)
			if !ok2 {
				return keys.NewCorruptionError(keys.CorruptTruncatedRecord, "bad WriteBatchMV Delete")
			}
			if err := h.DeleteMV(key, keys.ValidTime(vt)); err != nil {
				return err
			}
			input = rest
		default:
			return keys.NewCorruptionError(keys.CorruptUnknownTag, "unknown WriteBatchMV tag")
		}
	}

	if found != b.Count() {
		return keys.NewCorruptionError(keys.CorruptCountMismatch, "WriteBatchMV has wrong count")
	}
	return nil
}
