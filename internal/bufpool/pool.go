// Package bufpool is a sync.Pool-backed byte-slice pool. The write
// batch takes its 12-byte header buffer from it and returns its whole
// buffer on Clear/SetContents; the bloom filter builder takes its
// output buffer from it. Records appended to a batch grow the buffer
// through plain append, not through the pool.
package bufpool

import (
	"math/bits"
	"sync"
)

const maximumPoolCnt = 17

// pools contains pools for slices of byte of various capacities.
//
//	pools[0] is for capacities from 0 upto 256
//	pools[1] is for capacities from 257 upto 512
//	pools[2] is for capacities from 513 upto 1024
//	...
//	pools[n] is for capacities from 2^(n+7)+1 to 2^(n+8)
//
// Limit the maximum capacity to 2^24, since there are no performance
// benefits in caching byte slices with bigger capacities.
var pools [maximumPoolCnt]sync.Pool

// Get returns a []byte with length 0 and capacity >= dataLen, either
// recycled from the pool or freshly allocated.
func Get(dataLen int) []byte {
	id, poolCap := getPoolIDAndCapacity(dataLen)
	if b := pools[id].Get(); b != nil {
		if buf := b.([]byte); cap(buf) >= dataLen {
			return buf
		}
	}
	return make([]byte, 0, max(poolCap, dataLen))
}

// Put returns buf to the pool sized for its capacity. Buffers whose
// capacity exceeds the largest pool class are dropped rather than
// pooled.
func Put(buf []byte) {
	capacity := cap(buf)
	id, poolCap := getPoolIDAndCapacity(capacity)
	if capacity > poolCap {
		return
	}
	buf = buf[:0]
	pools[id].Put(buf)
}

func getPoolIDAndCapacity(size int) (int, int) {
	size--
	size = max(size, 0)
	size >>= 8
	id := bits.Len(uint(size))
	id = min(id, maximumPoolCnt-1)
	return id, 1 << (id + 8)
}
