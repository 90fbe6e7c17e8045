package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed32_RoundTrip(t *testing.T) {
	buf := PutFixed32(nil, 0xDEADBEEF)
	v, rest, ok := GetFixed32(buf)
	require.True(t, ok)
	assert.Equal(t, uint32(0xDEADBEEF), v)
	assert.Empty(t, rest)
}

func TestFixed64_RoundTrip(t *testing.T) {
	buf := PutFixed64(nil, 0x0102030405060708)
	v, rest, ok := GetFixed64(buf)
	require.True(t, ok)
	assert.Equal(t, uint64(0x0102030405060708), v)
	assert.Empty(t, rest)
}

func TestGetFixed32_TooShort(t *testing.T) {
	_, _, ok := GetFixed32([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestGetFixed64_TooShort(t *testing.T) {
	_, _, ok := GetFixed64(make([]byte, 7))
	assert.False(t, ok)
}

func TestVarint32_RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 300, 1 << 20, 1<<32 - 1} {
		buf := PutVarint32(nil, v)
		got, rest, ok := GetVarint32(buf)
		require.True(t, ok)
		assert.Equal(t, v, got)
		assert.Empty(t, rest)
	}
}

func TestGetVarint32_EmptyInput(t *testing.T) {
	_, _, ok := GetVarint32(nil)
	assert.False(t, ok)
}

func TestLengthPrefixedSlice_RoundTrip(t *testing.T) {
	buf := PutLengthPrefixedSlice(nil, []byte("hello"))
	buf = PutLengthPrefixedSlice(buf, []byte("world"))

	s1, rest, ok := GetLengthPrefixedSlice(buf)
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), s1)

	s2, rest, ok := GetLengthPrefixedSlice(rest)
	require.True(t, ok)
	assert.Equal(t, []byte("world"), s2)
	assert.Empty(t, rest)
}

func TestLengthPrefixedSlice_TruncatedData(t *testing.T) {
	buf := PutVarint32(nil, 10)
	buf = append(buf, []byte("short")...)
	_, _, ok := GetLengthPrefixedSlice(buf)
	assert.False(t, ok)
}
