// Package batch implements the framed write-batch record log: Put and
// Delete records (optionally carrying a valid-time field), a
// (sequence, count) header, iteration/replay, and insertion into a
// memtable via a sequence-assigning handler.
package batch

import (
	"github.com/datnguyenzzz/nogodb-mvcore/internal/bufpool"
	"github.com/datnguyenzzz/nogodb-mvcore/internal/codec"
	"github.com/datnguyenzzz/nogodb-mvcore/keys"
)

// headerLen is the fixed (sequence: fixed64, count: fixed32) header
// every batch carries, even when empty.
const headerLen = 12

// Batch is a self-describing byte buffer: the first 12 bytes are
// always the header, followed by zero or more records. It is built for
// one keys.Mode and every record appended to it uses that mode's
// layout (SV: tag, key, [value]; MV: tag, key, valid time, [value]).
type Batch struct {
	mode keys.Mode
	buf  []byte
}

// New returns an empty batch for the given mode, with a zeroed 12-byte
// header.
func New(mode keys.Mode) *Batch {
	b := &Batch{mode: mode}
	b.buf = freshHeader()
	return b
}

func freshHeader() []byte {
	buf := bufpool.Get(headerLen)[:headerLen]
	clear(buf)
	return buf
}

// Mode reports the batch's SV/MV mode.
func (b *Batch) Mode() keys.Mode { return b.mode }

// Sequence returns the starting sequence number recorded in the
// header.
func (b *Batch) Sequence() keys.SeqNum {
	v, _, _ := codec.GetFixed64(b.buf[0:8])
	return keys.SeqNum(v)
}

// SetSequence overwrites the header's starting sequence number.
func (b *Batch) SetSequence(seq keys.SeqNum) {
	tmp := codec.PutFixed64(nil, uint64(seq))
	copy(b.buf[0:8], tmp)
}

// Count returns the number of records recorded in the header.
func (b *Batch) Count() uint32 {
	v, _, _ := codec.GetFixed32(b.buf[8:12])
	return v
}

func (b *Batch) setCount(n uint32) {
	tmp := codec.PutFixed32(nil, n)
	copy(b.buf[8:12], tmp)
}

// ApproximateSize is the current byte length of the batch.
func (b *Batch) ApproximateSize() int { return len(b.buf) }

// Clear resets the batch to a fresh 12-byte zero header, returning its
// previous buffer to the pool.
func (b *Batch) Clear() {
	bufpool.Put(b.buf)
	b.buf = freshHeader()
}

// SetContents replaces b's backing buffer wholesale, e.g. after
// reading a batch off the WAL. raw must be at least headerLen bytes;
// a shorter buffer is a logic violation, not a corruption, since it
// indicates the caller never wrote a valid frame at all.
func (b *Batch) SetContents(raw []byte) {
	if len(raw) < headerLen {
		violation("batch: SetContents given a buffer shorter than the %d-byte header", headerLen)
	}
	bufpool.Put(b.buf)
	b.buf = raw
}

// Put appends a SingleVersion Put record and increments the header
// count. Panics (a logic violation) if the batch is in MultiVersion
// mode.
func (b *Batch) Put(key, value []byte) {
	b.requireMode(keys.SingleVersion, "Put")
	b.buf = append(b.buf, byte(keys.KeyKindSet))
	b.buf = codec.PutLengthPrefixedSlice(b.buf, key)
	b.buf = codec.PutLengthPrefixedSlice(b.buf, value)
	b.setCount(b.Count() + 1)
}

// Delete appends a SingleVersion Delete record and increments the
// header count.
func (b *Batch) Delete(key []byte) {
	b.requireMode(keys.SingleVersion, "Delete")
	b.buf = append(b.buf, byte(keys.KeyKindDelete))
	b.buf = codec.PutLengthPrefixedSlice(b.buf, key)
	b.setCount(b.Count() + 1)
}

// PutMV appends a MultiVersion Put record: tag, key, valid time, value.
func (b *Batch) PutMV(key []byte, vt keys.ValidTime, value []byte) {
	b.requireMode(keys.MultiVersion, "PutMV")
	b.buf = append(b.buf, byte(keys.KeyKindSet))
	b.buf = codec.PutLengthPrefixedSlice(b.buf, key)
	b.buf = codec.PutFixed64(b.buf, uint64(vt))
	b.buf = codec.PutLengthPrefixedSlice(b.buf, value)
	b.setCount(b.Count() + 1)
}

// DeleteMV appends a MultiVersion Delete record: tag, key, valid time.
func (b *Batch) DeleteMV(key []byte, vt keys.ValidTime) {
	b.requireMode(keys.MultiVersion, "DeleteMV")
	b.buf = append(b.buf, byte(keys.KeyKindDelete))
	b.buf = codec.PutLengthPrefixedSlice(b.buf, key)
	b.buf = codec.PutFixed64(b.buf, uint64(vt))
	b.setCount(b.Count() + 1)
}

// Append concatenates source's records onto b: the sequence field is
// left untouched (the caller owns sequence management), and the count
// is the sum of both batches' counts.
func (b *Batch) Append(source *Batch) {
	if source.mode != b.mode {
		violation("batch: cannot append a %v batch onto a %v batch", source.mode, b.mode)
	}
	b.setCount(b.Count() + source.Count())
	b.buf = append(b.buf, source.buf[headerLen:]...)
}

func (b *Batch) requireMode(want keys.Mode, op string) {
	if b.mode != want {
		violation("batch: %s called on a batch not opened in the matching mode", op)
	}
}
