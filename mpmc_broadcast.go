// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPMCBroadcast combines the MPSC producer path with the broadcast
// fan-out consumer path: any number of producers race a CAS loop to
// reserve a slot, and every registered reader independently observes
// every published item exactly once.
//
// Because the producer side is not exclusive, the slowest-reader scan
// that bounds capacity is redone on every enqueue attempt against the
// sequence the CAS is about to contend for — there is no lazy cache
// here the way there is in SPMCBroadcast, since a cached bound could
// be stale by the time a second producer's CAS lands on the same
// generation.
//
// Readers gate on the slot's own sequence stamp rather than a shared
// write counter, the same torn-write resolution used by MPSC and
// MPMC: a producer that wins the reservation CAS but has not yet
// finished writing the slot cannot make any reader believe otherwise.
type MPMCBroadcast[T any] struct {
	_         pad
	writeSeq  atomix.Uint64
	_         pad
	readers   readers
	_         pad
	buffer    []slot[T]
	mask      uint64
	capacity  uint64
	overwrite bool
}

// NewMPMCBroadcast creates a multi-producer fan-out queue. Capacity
// rounds up to the next power of two; panics if capacity < 2 or
// maxReaders < 1.
func NewMPMCBroadcast[T any](capacity, maxReaders int, overwrite bool) *MPMCBroadcast[T] {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	if maxReaders < 1 {
		panic("ringq: maxReaders must be >= 1")
	}
	n := uint64(roundToPow2(capacity))
	return &MPMCBroadcast[T]{
		readers:   newReaders(maxReaders),
		buffer:    newSlots[T](n),
		mask:      n - 1,
		capacity:  n,
		overwrite: overwrite,
	}
}

// Enqueue adds an element (any number of producer goroutines).
//
// Unlike the unicast cores, there is no per-slot "freed by the
// consumer" signal to wait on here: broadcast readers copy rather than
// claim, so a slot is always available to the next CAS winner. The
// only admission control is the slowest-reader scan in refuse mode,
// and it uses the same w the CAS below contends for, so no stale scan
// result can survive past the iteration it was taken in.
func (q *MPMCBroadcast[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		w := q.writeSeq.LoadAcquire()
		if !q.overwrite {
			min := q.readers.minPos()
			if w >= min+q.capacity {
				return ErrWouldBlock
			}
		}
		if q.writeSeq.CompareAndSwapAcqRel(w, w+1) {
			s := &q.buffer[w&q.mask]
			s.data = *elem
			s.seq.StoreRelease(w + 1)
			return nil
		}
		sw.Once()
	}
}

// Dequeue returns the next element for reader. See
// [BroadcastConsumer.Dequeue] for the refuse-when-empty and
// overwrite-tolerant outcomes.
func (q *MPMCBroadcast[T]) Dequeue(reader int) (T, error) {
	r := q.readers.slots[reader].pos.LoadRelaxed()
	s := &q.buffer[r&q.mask]
	seq := s.seq.LoadAcquire()
	diff := int64(seq) - int64(r+1)

	if diff == 0 {
		elem := s.data
		q.readers.slots[reader].pos.StoreRelease(r + 1)
		return elem, nil
	}

	if diff < 0 {
		var zero T
		return zero, ErrWouldBlock
	}

	if !q.overwrite {
		var zero T
		return zero, ErrWouldBlock
	}

	w := q.writeSeq.LoadAcquire()
	newR := w - q.capacity
	q.readers.slots[reader].pos.StoreRelease(newR)
	var zero T
	return zero, ErrDataLost
}

// Cap returns the queue's usable capacity.
func (q *MPMCBroadcast[T]) Cap() int {
	return int(q.capacity)
}

// MaxReaders returns the number of reader slots this queue supports.
func (q *MPMCBroadcast[T]) MaxReaders() int {
	return q.readers.count()
}

func (q *MPMCBroadcast[T]) GetReadPos(reader int) uint64 {
	return q.readers.GetReadPos(reader)
}

func (q *MPMCBroadcast[T]) SetReadPos(reader int, pos uint64) {
	q.readers.SetReadPos(reader, pos)
}

func (q *MPMCBroadcast[T]) FetchAddReadPos(reader int, n uint64) uint64 {
	return q.readers.FetchAddReadPos(reader, n)
}

func (q *MPMCBroadcast[T]) FetchSubReadPos(reader int, n uint64) uint64 {
	return q.readers.FetchSubReadPos(reader, n)
}
