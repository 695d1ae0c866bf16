// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// SPMC is a single-producer multi-consumer bounded ring queue.
//
// The single producer writes sequentially with no CAS of its own;
// consumers race [claimRead] to claim a slot. As in MPSC, the per-slot
// stamp means a consumer that wins the CAS but has not yet copied the
// payload out never lets the producer believe the slot is free again
// prematurely.
type SPMC[T any] struct {
	_        pad
	readSeq  atomix.Uint64 // consumers CAS here to claim a slot
	_        pad
	writeSeq atomix.Uint64 // producer-owned
	_        pad
	buffer   []slot[T]
	mask     uint64
	capacity uint64
}

// NewSPMC creates a single-producer multi-consumer queue. Capacity
// rounds up to the next power of two; panics if capacity < 2.
func NewSPMC[T any](capacity int) *SPMC[T] {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &SPMC[T]{
		buffer:   newSlots[T](n),
		mask:     n - 1,
		capacity: n,
	}
}

// Enqueue adds an element (producer goroutine only). Returns
// ErrWouldBlock if the queue is full.
func (q *SPMC[T]) Enqueue(elem *T) error {
	w := q.writeSeq.LoadRelaxed()
	s := &q.buffer[w&q.mask]

	if s.seq.LoadAcquire() != w {
		return ErrWouldBlock
	}

	s.data = *elem
	s.seq.StoreRelease(w + 1)
	q.writeSeq.StoreRelease(w + 1)

	return nil
}

// Dequeue removes and returns an element (any number of consumer
// goroutines). Returns (zero-value, ErrWouldBlock) if the queue is
// empty.
func (q *SPMC[T]) Dequeue() (T, error) {
	return claimRead(&q.readSeq, q.buffer, q.mask, q.capacity)
}

// Cap returns the queue's usable capacity.
func (q *SPMC[T]) Cap() int {
	return int(q.capacity)
}
