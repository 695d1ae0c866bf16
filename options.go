// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Options configures queue creation and algorithm selection.
type Options struct {
	singleProducer bool
	singleConsumer bool

	broadcast      bool
	overwrite      bool
	maxReaders     int
	updateInterval uint64

	capacity int
}

// Builder creates queues with fluent configuration.
//
// The builder selects the concurrency variant from the
// producer/consumer constraints and, for broadcast mode, the reader
// count and delivery discipline.
//
// Example:
//
//	// SPSC queue (optimal for single producer/consumer)
//	q := ringq.BuildSPSC[Event](ringq.New(1024).SingleProducer().SingleConsumer())
//
//	// MPMC queue (default, general purpose)
//	q := ringq.BuildMPMC[Request](ringq.New(4096))
//
//	// Single-producer fan-out to 8 readers, overwrite-tolerant
//	q := ringq.BuildSPMCBroadcast[Tick](
//	    ringq.New(1024).SingleProducer().Broadcast().MaxReaders(8).Overwrite(),
//	)
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity. Capacity
// rounds up to the next power of two. Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
// Meaningless in combination with Broadcast, since every broadcast
// reader dequeues independently.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Broadcast selects fan-out delivery: every element is delivered once
// to every reader instead of once to whichever consumer claims it.
func (b *Builder) Broadcast() *Builder {
	b.opts.broadcast = true
	return b
}

// Overwrite selects the overwrite delivery discipline for a broadcast
// queue: the producer never refuses on full, and a reader more than
// Capacity behind observes ErrDataLost and has its position snapped
// forward. Has no effect outside Broadcast().
func (b *Builder) Overwrite() *Builder {
	b.opts.overwrite = true
	return b
}

// MaxReaders sets the number of reader slots for a broadcast queue.
// Required before Build for broadcast queues; ignored otherwise.
func (b *Builder) MaxReaders(n int) *Builder {
	b.opts.maxReaders = n
	return b
}

// UpdateInterval sets the update interval recorded by a
// single-producer broadcast queue, which must be less than its
// capacity. Zero selects the default of 64, capped below capacity.
// The interval does not change when the slowest-reader cache is
// refreshed: the producer rescans only once the cached bound no
// longer shows room. Ignored by multi-producer broadcast queues,
// which rescan on every attempt regardless.
func (b *Builder) UpdateInterval(n uint64) *Builder {
	b.opts.updateInterval = n
	return b
}

// Build creates a Queue[T] with automatic algorithm selection from
// the producer/consumer constraints.
//
//	SingleProducer + SingleConsumer → SPSC
//	SingleProducer only             → SPMC
//	SingleConsumer only             → MPSC
//	Neither                         → MPMC
//
// Panics if Broadcast() was set; use BuildSPMCBroadcast or
// BuildMPMCBroadcast instead, since broadcast queues implement
// BroadcastQueue, not Queue.
func Build[T any](b *Builder) Queue[T] {
	if b.opts.broadcast {
		panic("ringq: Build does not support Broadcast(); use BuildSPMCBroadcast or BuildMPMCBroadcast")
	}
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewSPSC[T](b.opts.capacity)
	case b.opts.singleProducer:
		return NewSPMC[T](b.opts.capacity)
	case b.opts.singleConsumer:
		return NewMPSC[T](b.opts.capacity)
	default:
		return NewMPMC[T](b.opts.capacity)
	}
}

// BuildSPSC creates an SPSC queue with compile-time type safety.
// Panics unless the builder was configured with
// SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("ringq: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return NewSPSC[T](b.opts.capacity)
}

// BuildMPSC creates an MPSC queue with compile-time type safety.
// Panics unless the builder was configured with SingleConsumer() and
// without SingleProducer().
func BuildMPSC[T any](b *Builder) *MPSC[T] {
	if b.opts.singleProducer || !b.opts.singleConsumer {
		panic("ringq: BuildMPSC requires SingleConsumer() without SingleProducer()")
	}
	return NewMPSC[T](b.opts.capacity)
}

// BuildSPMC creates an SPMC queue with compile-time type safety.
// Panics unless the builder was configured with SingleProducer() and
// without SingleConsumer().
func BuildSPMC[T any](b *Builder) *SPMC[T] {
	if !b.opts.singleProducer || b.opts.singleConsumer {
		panic("ringq: BuildSPMC requires SingleProducer() without SingleConsumer()")
	}
	return NewSPMC[T](b.opts.capacity)
}

// BuildMPMC creates an MPMC queue with compile-time type safety.
// Panics if the builder has any producer/consumer constraint set.
func BuildMPMC[T any](b *Builder) *MPMC[T] {
	if b.opts.singleProducer || b.opts.singleConsumer {
		panic("ringq: BuildMPMC requires no constraints")
	}
	return NewMPMC[T](b.opts.capacity)
}

// BuildSPMCBroadcast creates a single-producer fan-out queue. Panics
// unless the builder was configured with SingleProducer(),
// Broadcast(), and MaxReaders(n > 0).
func BuildSPMCBroadcast[T any](b *Builder) *SPMCBroadcast[T] {
	if !b.opts.singleProducer || !b.opts.broadcast {
		panic("ringq: BuildSPMCBroadcast requires SingleProducer().Broadcast()")
	}
	if b.opts.maxReaders < 1 {
		panic("ringq: BuildSPMCBroadcast requires MaxReaders(n) with n >= 1")
	}
	return NewSPMCBroadcast[T](b.opts.capacity, b.opts.maxReaders, b.opts.overwrite, b.opts.updateInterval)
}

// BuildMPMCBroadcast creates a multi-producer fan-out queue. Panics
// unless the builder was configured with Broadcast() and
// MaxReaders(n > 0).
func BuildMPMCBroadcast[T any](b *Builder) *MPMCBroadcast[T] {
	if !b.opts.broadcast {
		panic("ringq: BuildMPMCBroadcast requires Broadcast()")
	}
	if b.opts.maxReaders < 1 {
		panic("ringq: BuildMPMCBroadcast requires MaxReaders(n) with n >= 1")
	}
	return NewMPMCBroadcast[T](b.opts.capacity, b.opts.maxReaders, b.opts.overwrite)
}
