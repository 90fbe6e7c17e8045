package batch

import "github.com/datnguyenzzz/nogodb-mvcore/keys"

// MemtableAdder is the memtable contract SingleVersion batches are
// inserted into; the memtable implementation itself lives elsewhere.
type MemtableAdder interface {
	Add(seq keys.SeqNum, kind keys.KeyKind, key, value []byte) error
}

// MVMemtableAdder is the MultiVersion counterpart.
type MVMemtableAdder interface {
	AddMV(seq keys.SeqNum, kind keys.KeyKind, key []byte, vt keys.ValidTime, value []byte) error
}

// memtableInserter owns the running sequence counter assigned to each
// dispatched record: the first record gets b's starting sequence, and
// each subsequent one is one higher.
type memtableInserter struct {
	seq keys.SeqNum
	mem MemtableAdder
}

func (ins *memtableInserter) Put(key, value []byte) error {
	if err := ins.mem.Add(ins.seq, keys.KeyKindSet, key, value); err != nil {
		return err
	}
	ins.seq++
	return nil
}

func (ins *memtableInserter) Delete(key []byte) error {
	if err := ins.mem.Add(ins.seq, keys.KeyKindDelete, key, nil); err != nil {
		return err
	}
	ins.seq++
	return nil
}

// InsertInto replays b's records into mem, assigning sequence numbers
// b.Sequence(), b.Sequence()+1, ... in insertion order.
func InsertInto(b *Batch, mem MemtableAdder) error {
	ins := &memtableInserter{seq: b.Sequence(), mem: mem}
	return b.Iterate(ins)
}

type mvMemtableInserter struct {
	seq keys.SeqNum
	mem MVMemtableAdder
}

func (ins *mvMemtableInserter) PutMV(key []byte, vt keys.ValidTime, value []byte) error {
	if err := ins.mem.AddMV(ins.seq, keys.KeyKindSet, key, vt, value); err != nil {
		return err
	}
	ins.seq++
	return nil
}

func (ins *mvMemtableInserter) DeleteMV(key []byte, vt keys.ValidTime) error {
	if err := ins.mem.AddMV(ins.seq, keys.KeyKindDelete, key, vt, nil); err != nil {
		return err
	}
	ins.seq++
	return nil
}

// InsertIntoMV is InsertInto's MultiVersion counterpart.
func InsertIntoMV(b *Batch, mem MVMemtableAdder) error {
	ins := &mvMemtableInserter{seq: b.Sequence(), mem: mem}
	return b.IterateMV(ins)
}
