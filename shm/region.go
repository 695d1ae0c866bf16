// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shm

const cacheLine = 64

// Layout describes where a placement-constructed ring queue's fields
// live inside a mapped region: one cache line for the write sequence,
// one cache line per reader slot (so concurrent readers never share a
// line and invalidate each other), then the slot buffer itself.
type Layout struct {
	ReadersOffset int
	BufferOffset  int
	Size          int
}

// Compute returns the Layout for a queue with the given per-element
// size in bytes, slot capacity, and reader count. maxReaders is 1 for
// a unicast queue, which still reserves one full cache line for its
// single read sequence.
func Compute(elemSize, capacity, maxReaders int) Layout {
	readersOffset := cacheLine
	bufferOffset := readersOffset + maxReaders*cacheLine
	size := bufferOffset + elemSize*capacity
	return Layout{
		ReadersOffset: readersOffset,
		BufferOffset:  bufferOffset,
		Size:          size,
	}
}
