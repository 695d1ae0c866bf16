// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// SPMCBroadcast is a single-producer fan-out ring queue: every pushed
// element is delivered once to every registered reader, each tracking
// its own independent sequence.
//
// The producer's available space is governed by the slowest reader.
// minReadCache is a producer-local, non-atomic snapshot of that bound,
// refreshed by a full scan only when the cache is exhausted, so the
// fast path costs no scan once the cache is warm.
type SPMCBroadcast[T any] struct {
	_              pad
	writeSeq       *atomix.Uint64
	_              pad
	readers        readers
	_              pad
	minReadCache   uint64 // producer-local only
	_              pad
	buffer         []T
	mask           uint64
	capacity       uint64
	updateInterval uint64
	overwrite      bool
}

// NewSPMCBroadcast creates a single-producer fan-out queue. Capacity
// rounds up to the next power of two and must exceed updateInterval;
// panics if capacity < 2, maxReaders < 1, or a caller-supplied
// updateInterval >= capacity. A zero updateInterval selects 64, capped
// below capacity for small queues.
func NewSPMCBroadcast[T any](capacity, maxReaders int, overwrite bool, updateInterval uint64) *SPMCBroadcast[T] {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	if maxReaders < 1 {
		panic("ringq: maxReaders must be >= 1")
	}
	n := uint64(roundToPow2(capacity))
	if updateInterval == 0 {
		updateInterval = 64
		if updateInterval >= n {
			updateInterval = n - 1
		}
	}
	if updateInterval >= n {
		panic("ringq: updateInterval must be less than capacity")
	}
	return &SPMCBroadcast[T]{
		writeSeq:       new(atomix.Uint64),
		readers:        newReaders(maxReaders),
		buffer:         make([]T, n),
		mask:           n - 1,
		capacity:       n,
		updateInterval: updateInterval,
		overwrite:      overwrite,
	}
}

// Enqueue adds an element (producer goroutine only). In refuse-mode,
// returns ErrWouldBlock once the slowest reader would be overrun; in
// overwrite mode it never refuses.
func (q *SPMCBroadcast[T]) Enqueue(elem *T) error {
	w := q.writeSeq.LoadRelaxed()

	if !q.overwrite && cacheExhausted(&q.minReadCache, q.readers.minPos, func(mr uint64) bool { return w >= mr+q.capacity }) {
		return ErrWouldBlock
	}

	q.buffer[w&q.mask] = *elem
	q.writeSeq.StoreRelease(w + 1)
	return nil
}

// Dequeue returns the next element for reader. See
// [BroadcastConsumer.Dequeue] for the refuse-when-empty and
// overwrite-tolerant outcomes.
func (q *SPMCBroadcast[T]) Dequeue(reader int) (T, error) {
	r := q.readers.slots[reader].pos.LoadRelaxed()
	w := q.writeSeq.LoadAcquire()

	if q.overwrite && w > r+q.capacity {
		r = w - q.capacity
		q.readers.slots[reader].pos.StoreRelease(r)
		var zero T
		return zero, ErrDataLost
	}

	if r >= w {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := q.buffer[r&q.mask]
	q.readers.slots[reader].pos.StoreRelease(r + 1)
	return elem, nil
}

// Cap returns the queue's usable capacity.
func (q *SPMCBroadcast[T]) Cap() int {
	return int(q.capacity)
}

// MaxReaders returns the number of reader slots this queue supports.
func (q *SPMCBroadcast[T]) MaxReaders() int {
	return q.readers.count()
}

func (q *SPMCBroadcast[T]) GetReadPos(reader int) uint64 {
	return q.readers.GetReadPos(reader)
}

func (q *SPMCBroadcast[T]) SetReadPos(reader int, pos uint64) {
	q.readers.SetReadPos(reader, pos)
}

func (q *SPMCBroadcast[T]) FetchAddReadPos(reader int, n uint64) uint64 {
	return q.readers.FetchAddReadPos(reader, n)
}

func (q *SPMCBroadcast[T]) FetchSubReadPos(reader int, n uint64) uint64 {
	return q.readers.FetchSubReadPos(reader, n)
}
