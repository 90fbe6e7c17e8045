package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytewiseComparer_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want int
	}{
		{"equal empty", []byte{}, []byte{}, 0},
		{"equal non-empty", []byte("hello"), []byte("hello"), 0},
		{"a < b", []byte("apple"), []byte("banana"), -1},
		{"a > b", []byte("zebra"), []byte("yellow"), 1},
		{"prefix - a < b", []byte("foo"), []byte("foobar"), -1},
	}
	c := NewBytewiseComparer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Compare(tt.a, tt.b)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, bytes.Compare(tt.a, tt.b), got)
		})
	}
}

func TestBytewiseComparer_Separator(t *testing.T) {
	c := NewBytewiseComparer()
	tests := []struct {
		name string
		a, b []byte
		want []byte
	}{
		{"equal inputs", []byte("hello"), []byte("hello"), []byte("hello")},
		{"consecutive bytes", []byte("apple"), []byte("banana"), []byte("b")},
		{"a fully 0xff", []byte{0xFF, 0xFF}, []byte{0xFF, 0xFF, 0x01}, []byte{0xFF, 0xFF}},
		{"bump first non-ff", []byte{0x01, 0xFF, 0x03}, []byte{0x02}, []byte{0x01, 0xFF, 0x04}},
		{"a > b returns a", []byte("z"), []byte("a"), []byte("z")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Separator(nil, tt.a, tt.b)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBytewiseComparer_Successor(t *testing.T) {
	c := NewBytewiseComparer()
	tests := []struct {
		name string
		b    []byte
		want []byte
	}{
		{"single byte", []byte{0x01}, []byte{0x02}},
		{"multiple bytes", []byte{0x01, 0x02, 0x03}, []byte{0x02}},
		{"all 0xff", []byte{0xFF, 0xFF}, []byte{0xFF, 0xFF}},
		{"ascii string", []byte("hello"), []byte("i")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Successor(nil, tt.b)
			assert.Equal(t, tt.want, got)
		})
	}
}

func rawKey(t *testing.T, cmp *InternalKeyComparer, userKey string, seq SeqNum, kind KeyKind, vt ValidTime) []byte {
	t.Helper()
	if cmp.Mode == MultiVersion {
		return MakeMVKey([]byte(userKey), seq, kind, vt).Encode()
	}
	return MakeKey([]byte(userKey), seq, kind).Encode()
}

func TestInternalKeyComparer_OrdersByUserKeyFirst(t *testing.T) {
	cmp := NewInternalKeyComparer(NewBytewiseComparer(), SingleVersion)
	a := rawKey(t, cmp, "a", 5, KeyKindSet, 0)
	b := rawKey(t, cmp, "b", 1, KeyKindSet, 0)
	assert.Negative(t, cmp.Compare(a, b))
	assert.Positive(t, cmp.Compare(b, a))
}

func TestInternalKeyComparer_NewerSequenceSortsFirst(t *testing.T) {
	cmp := NewInternalKeyComparer(NewBytewiseComparer(), SingleVersion)
	newer := rawKey(t, cmp, "k", 10, KeyKindSet, 0)
	older := rawKey(t, cmp, "k", 3, KeyKindSet, 0)
	assert.Negative(t, cmp.Compare(newer, older), "newer sequence must sort before older for the same user key")
	assert.Positive(t, cmp.Compare(older, newer))
}

func TestInternalKeyComparer_TieBreaksOnKindWhenSeqEqual(t *testing.T) {
	cmp := NewInternalKeyComparer(NewBytewiseComparer(), SingleVersion)
	set := rawKey(t, cmp, "k", 4, KeyKindSet, 0)
	del := rawKey(t, cmp, "k", 4, KeyKindDelete, 0)
	// Larger kind value sorts first: KeyKindSet(1) before KeyKindDelete(0).
	assert.Negative(t, cmp.Compare(set, del))
}

func TestInternalKeyComparer_EqualKeysCompareZero(t *testing.T) {
	cmp := NewInternalKeyComparer(NewBytewiseComparer(), SingleVersion)
	a := rawKey(t, cmp, "k", 4, KeyKindSet, 0)
	b := rawKey(t, cmp, "k", 4, KeyKindSet, 0)
	assert.Equal(t, 0, cmp.Compare(a, b))
}

func TestInternalKeyComparer_MVValidTimeDescendingTieBreak(t *testing.T) {
	cmp := NewInternalKeyComparer(NewBytewiseComparer(), MultiVersion)
	newer := rawKey(t, cmp, "k", 4, KeyKindSet, 100)
	older := rawKey(t, cmp, "k", 4, KeyKindSet, 10)
	assert.Negative(t, cmp.Compare(newer, older), "larger valid time must sort first on a sequence tie")
}

func TestInternalKeyComparer_FindShortestSeparator_SandwichProperty(t *testing.T) {
	cmp := NewInternalKeyComparer(NewBytewiseComparer(), SingleVersion)
	start := rawKey(t, cmp, "apple", 5, KeyKindSet, 0)
	limit := rawKey(t, cmp, "banana", 5, KeyKindSet, 0)

	sep := cmp.FindShortestSeparator(nil, start, limit)
	assert.LessOrEqual(t, cmp.Compare(start, sep), 0)
	assert.Less(t, cmp.Compare(sep, limit), 0)
}

func TestInternalKeyComparer_FindShortSuccessor_GreaterOrEqual(t *testing.T) {
	cmp := NewInternalKeyComparer(NewBytewiseComparer(), SingleVersion)
	key := rawKey(t, cmp, "hello", 5, KeyKindSet, 0)
	succ := cmp.FindShortSuccessor(nil, key)
	assert.LessOrEqual(t, cmp.Compare(key, succ), 0)
}

func TestInternalKey_SeparatorAndSuccessorMethods(t *testing.T) {
	cmp := NewInternalKeyComparer(NewBytewiseComparer(), SingleVersion)
	a := MakeKey([]byte("apple"), 5, KeyKindSet)
	b := MakeKey([]byte("banana"), 5, KeyKindSet)

	sep := a.Separator(cmp, &b)
	require := assert.New(t)
	require.LessOrEqual(cmp.Compare(a.Encode(), sep.Encode()), 0)
	require.Less(cmp.Compare(sep.Encode(), b.Encode()), 0)

	succ := a.Successor(cmp)
	require.LessOrEqual(cmp.Compare(a.Encode(), succ.Encode()), 0)
}
