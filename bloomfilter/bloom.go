// Package bloomfilter is a concrete keys.FilterPolicy: a blocked Bloom
// filter exposed through a single-call CreateFilter, rather than a
// split add-then-build writer, since that is the shape the
// filter-policy contract expects.
package bloomfilter

import (
	"encoding/binary"

	"github.com/datnguyenzzz/nogodb-mvcore/internal/bufpool"
)

const (
	defaultBitsPerKey = 10
	blockBytesSize    = 64 // one CPU cache line
	blockBitsSize     = 8 * blockBytesSize
)

// Policy is a blocked Bloom filter with a configurable bits-per-key
// budget. The zero value uses defaultBitsPerKey.
type Policy struct {
	BitsPerKey int
}

// New returns a Policy using the default bits-per-key budget.
func New() *Policy {
	return &Policy{BitsPerKey: defaultBitsPerKey}
}

func (p *Policy) bitsPerKey() int {
	if p.BitsPerKey <= 0 {
		return defaultBitsPerKey
	}
	return p.BitsPerKey
}

func (p *Policy) Name() string { return "nogodb.BuiltinBloomFilter" }

// CreateFilter builds a single encoded filter for the given keys and
// appends it to dst.
func (p *Policy) CreateFilter(keys [][]byte, dst []byte) []byte {
	hashes := make([]uint32, len(keys))
	for i, k := range keys {
		hashes[i] = bloomHash(k)
	}
	return build(hashes, p.bitsPerKey(), dst)
}

func build(hashes []uint32, bitsPerKey int, dst []byte) []byte {
	numKeys := len(hashes)

	var nBlocks int
	// 1. calculate number of cache lines to fit all the added keys (round up).
	nBlocks = (numKeys*bitsPerKey + blockBitsSize - 1) / blockBitsSize
	// Make nBlocks odd so more bits are involved in choosing a block.
	if nBlocks%2 == 0 {
		nBlocks++
	}
	if nBlocks == 0 {
		nBlocks = 1
	}
	nBytes := nBlocks * blockBytesSize

	base := len(dst)
	wantLen := base + nBytes + 5

	buf := bufpool.Get(wantLen)
	buf = append(buf[:0], dst...)
	buf = append(buf, make([]byte, nBytes+5)...)
	freeSpaces := buf[base : base+nBytes]

	nProbes := calculateProbes(bitsPerKey)
	for _, h := range hashes {
		delta := h>>17 | h<<15
		b := (h % uint32(nBlocks)) * blockBitsSize
		for pr := byte(0); pr < nProbes; pr++ {
			bitPos := b + (h % blockBitsSize)
			freeSpaces[bitPos/8] |= 1 << (bitPos % 8)
			h += delta
		}
	}
	buf[base+nBytes] = nProbes
	binary.LittleEndian.PutUint32(buf[base+nBytes+1:], uint32(nBlocks))

	return buf
}

// KeyMayMatch reports whether filter may contain key. False positives
// are possible; false negatives are not.
func (p *Policy) KeyMayMatch(key, filter []byte) bool {
	if len(filter) <= 5 {
		return false
	}
	n := len(filter) - 5
	nProbes := filter[n]
	nBlocks := binary.LittleEndian.Uint32(filter[n+1:])
	if nBlocks == 0 {
		return false
	}
	cacheLineBits := 8 * (uint32(n) / nBlocks)

	h := bloomHash(key)
	delta := h>>17 | h<<15
	b := (h % nBlocks) * cacheLineBits
	for j := byte(0); j < nProbes; j++ {
		bitPos := b + (h % cacheLineBits)
		if filter[bitPos/8]&(1<<(bitPos%8)) == 0 {
			return false
		}
		h += delta
	}
	return true
}

func calculateProbes(bitsPerKey int) byte {
	n := byte(float64(bitsPerKey) * 0.69) // ~= ln(2)
	if n < 1 {
		n = 1
	}
	if n > 30 {
		n = 30
	}
	return n
}

// bloomHash hashes b, matching RocksDB/LevelDB's bloom hash (including
// its sign-extension quirk on the trailing 1-3 bytes).
func bloomHash(b []byte) uint32 {
	const (
		seed = 0xbc9f1d34
		m    = 0xc6a4a793
	)
	h := uint32(seed) ^ uint32(uint64(uint32(len(b))*m))
	for ; len(b) >= 4; b = b[4:] {
		h += uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		h *= m
		h ^= h >> 16
	}

	switch len(b) {
	case 3:
		h += uint32(int8(b[2])) << 16
		fallthrough
	case 2:
		h += uint32(int8(b[1])) << 8
		fallthrough
	case 1:
		h += uint32(int8(b[0]))
		h *= m
		h ^= h >> 24
	}
	return h
}
