// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// SPSC is a single-producer single-consumer bounded ring queue.
//
// Lamport's ring buffer: writeSeq and readSeq are each owned by one
// side and only ever read with acquire semantics by the other. Each
// side keeps a local, non-atomic cache of the peer's counter so the
// common case costs one atomic load per operation, not two.
//
// Both Enqueue and Dequeue are wait-free: this is the one core with no
// CAS loop anywhere in its path.
type SPSC[T any] struct {
	_          pad
	writeSeq   atomix.Uint64 // producer-owned
	_          pad
	cachedRead uint64 // producer's cached view of readSeq
	_          pad
	readSeq    atomix.Uint64 // consumer-owned
	_          pad
	cachedWrite uint64 // consumer's cached view of writeSeq
	_          pad
	buffer     []T
	mask       uint64
}

// NewSPSC creates a single-producer single-consumer queue. Capacity
// rounds up to the next power of two; panics if capacity < 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &SPSC[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// Enqueue adds an element (producer goroutine only).
func (q *SPSC[T]) Enqueue(elem *T) error {
	w := q.writeSeq.LoadRelaxed()
	if cacheExhausted(&q.cachedRead, q.readSeq.LoadAcquire, func(cr uint64) bool { return w-cr > q.mask }) {
		return ErrWouldBlock
	}
	q.buffer[w&q.mask] = *elem
	q.writeSeq.StoreRelease(w + 1)
	return nil
}

// Dequeue removes and returns an element (consumer goroutine only).
func (q *SPSC[T]) Dequeue() (T, error) {
	r := q.readSeq.LoadRelaxed()
	if cacheExhausted(&q.cachedWrite, q.writeSeq.LoadAcquire, func(cw uint64) bool { return r >= cw }) {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := q.buffer[r&q.mask]
	var zero T
	q.buffer[r&q.mask] = zero
	q.readSeq.StoreRelease(r + 1)
	return elem, nil
}

// Cap returns the queue's usable capacity.
func (q *SPSC[T]) Cap() int {
	return int(q.mask + 1)
}
