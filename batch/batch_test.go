package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datnguyenzzz/nogodb-mvcore/keys"
)

func TestNew_EmptyBatchHasZeroHeader(t *testing.T) {
	b := New(keys.SingleVersion)
	assert.Equal(t, keys.SeqNum(0), b.Sequence())
	assert.Equal(t, uint32(0), b.Count())
	assert.Equal(t, 12, b.ApproximateSize())
}

func TestSetSequence(t *testing.T) {
	b := New(keys.SingleVersion)
	b.SetSequence(keys.SeqNum(123))
	assert.Equal(t, keys.SeqNum(123), b.Sequence())
}

func TestPutAndDelete_IncrementCountAndSize(t *testing.T) {
	b := New(keys.SingleVersion)
	b.Put([]byte("k1"), []byte("v1"))
	assert.Equal(t, uint32(1), b.Count())

	b.Delete([]byte("k2"))
	assert.Equal(t, uint32(2), b.Count())

	assert.Greater(t, b.ApproximateSize(), 12)
}

func TestPut_PanicsInMultiVersionMode(t *testing.T) {
	b := New(keys.MultiVersion)
	assert.Panics(t, func() {
		b.Put([]byte("k"), []byte("v"))
	})
}

func TestPutMV_PanicsInSingleVersionMode(t *testing.T) {
	b := New(keys.SingleVersion)
	assert.Panics(t, func() {
		b.PutMV([]byte("k"), keys.ValidTime(1), []byte("v"))
	})
}

func TestClear_ResetsToZeroHeader(t *testing.T) {
	b := New(keys.SingleVersion)
	b.SetSequence(5)
	b.Put([]byte("k"), []byte("v"))

	b.Clear()

	assert.Equal(t, keys.SeqNum(0), b.Sequence())
	assert.Equal(t, uint32(0), b.Count())
	assert.Equal(t, 12, b.ApproximateSize())
}

func TestSetContents_ReplacesBuffer(t *testing.T) {
	src := New(keys.SingleVersion)
	src.SetSequence(9)
	src.Put([]byte("a"), []byte("b"))

	dst := New(keys.SingleVersion)
	dst.SetContents(src.buf)

	assert.Equal(t, keys.SeqNum(9), dst.Sequence())
	assert.Equal(t, uint32(1), dst.Count())
}

func TestSetContents_PanicsOnShortBuffer(t *testing.T) {
	b := New(keys.SingleVersion)
	assert.Panics(t, func() {
		b.SetContents([]byte{1, 2, 3})
	})
}

func TestAppend_ConcatenatesRecordsAndSumsCounts(t *testing.T) {
	a := New(keys.SingleVersion)
	a.Put([]byte("k1"), []byte("v1"))

	b := New(keys.SingleVersion)
	b.Put([]byte("k2"), []byte("v2"))
	b.Delete([]byte("k3"))

	a.Append(b)
	assert.Equal(t, uint32(3), a.Count())

	var got []string
	require.NoError(t, a.Iterate(recorder(&got)))
	assert.Equal(t, []string{"put k1=v1", "put k2=v2", "del k3"}, got)
}

func TestAppend_PanicsOnModeMismatch(t *testing.T) {
	a := New(keys.SingleVersion)
	b := New(keys.MultiVersion)
	assert.Panics(t, func() {
		a.Append(b)
	})
}

type recordingHandler struct {
	out *[]string
}

func (h recordingHandler) Put(key, value []byte) error {
	*h.out = append(*h.out, "put "+string(key)+"="+string(value))
	return nil
}

func (h recordingHandler) Delete(key []byte) error {
	*h.out = append(*h.out, "del "+string(key))
	return nil
}

func recorder(out *[]string) Handler {
	return recordingHandler{out: out}
}
