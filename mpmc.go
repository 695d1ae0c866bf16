// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// MPMC is a multi-producer multi-consumer bounded ring queue.
//
// Both sides CAS against their own sequence counter via [claimWrite]
// and [claimRead]; the per-slot stamp is the handoff point between
// them and provides full ABA protection independent of the value
// stored. A producer that wins the CAS on writeSeq but has not yet
// stored its payload holds the slot at a sequence consumers can't yet
// claim, and symmetrically for a consumer mid-read on readSeq.
type MPMC[T any] struct {
	_        pad
	writeSeq atomix.Uint64 // producers CAS here
	_        pad
	readSeq  atomix.Uint64 // consumers CAS here
	_        pad
	buffer   []slot[T]
	mask     uint64
	capacity uint64
}

// NewMPMC creates a multi-producer multi-consumer queue. Capacity
// rounds up to the next power of two; panics if capacity < 2.
func NewMPMC[T any](capacity int) *MPMC[T] {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &MPMC[T]{
		buffer:   newSlots[T](n),
		mask:     n - 1,
		capacity: n,
	}
}

// Enqueue adds an element (any number of producer goroutines).
// Returns ErrWouldBlock if the queue is full.
func (q *MPMC[T]) Enqueue(elem *T) error {
	return claimWrite(&q.writeSeq, q.buffer, q.mask, elem)
}

// Dequeue removes and returns an element (any number of consumer
// goroutines). Returns (zero-value, ErrWouldBlock) if the queue is
// empty.
func (q *MPMC[T]) Dequeue() (T, error) {
	return claimRead(&q.readSeq, q.buffer, q.mask, q.capacity)
}

// Cap returns the queue's usable capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.capacity)
}
