// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// MPSC is a multi-producer single-consumer bounded ring queue.
//
// Producers race [claimWrite] to reserve a slot; the single consumer
// reads sequentially with no atomic RMW of its own, gating on the same
// per-slot stamp claimWrite uses to hand a slot off. A producer that
// wins the CAS on writeSeq but is preempted before writing its slot
// never lets the consumer observe that slot as ready, because the
// consumer gates on the per-slot stamp, not on writeSeq directly —
// this resolves the MPSC torn-write hazard.
type MPSC[T any] struct {
	_        pad
	readSeq  atomix.Uint64 // consumer reads sequentially
	_        pad
	writeSeq atomix.Uint64 // producers CAS here to reserve a slot
	_        pad
	buffer   []slot[T]
	mask     uint64
	capacity uint64
}

// NewMPSC creates a multi-producer single-consumer queue. Capacity
// rounds up to the next power of two; panics if capacity < 2.
func NewMPSC[T any](capacity int) *MPSC[T] {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &MPSC[T]{
		buffer:   newSlots[T](n),
		mask:     n - 1,
		capacity: n,
	}
}

// Enqueue adds an element (any number of producer goroutines).
// Returns ErrWouldBlock if the queue is full.
func (q *MPSC[T]) Enqueue(elem *T) error {
	return claimWrite(&q.writeSeq, q.buffer, q.mask, elem)
}

// Dequeue removes and returns an element (single consumer goroutine
// only). Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPSC[T]) Dequeue() (T, error) {
	r := q.readSeq.LoadRelaxed()
	s := &q.buffer[r&q.mask]
	seq := s.seq.LoadAcquire()

	if seq != r+1 {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := s.data
	var zero T
	s.data = zero
	s.seq.StoreRelease(r + q.capacity)
	q.readSeq.StoreRelease(r + 1)

	return elem, nil
}

// Cap returns the queue's usable capacity.
func (q *MPSC[T]) Cap() int {
	return int(q.capacity)
}
