// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq provides bounded, lock-free ring-buffer queues for
// intra- and inter-process message passing.
//
// Six variants cover every combination of producer count, consumer
// count, and delivery discipline:
//
//   - SPSC: one producer, one consumer, wait-free on both sides.
//   - MPSC: many producers (CAS), one consumer.
//   - SPMC: one producer, many consumers racing (CAS) for each item.
//   - SPMC broadcast: one producer, every registered reader sees
//     every item exactly once.
//   - MPMC: many producers (CAS), many consumers racing (CAS).
//   - MPMC broadcast: many producers, fan-out delivery.
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := ringq.NewSPSC[Event](1024)
//	q := ringq.NewMPMC[*Request](4096)
//
// The builder auto-selects the unicast variant from constraints:
//
//	q := ringq.Build[Event](ringq.New(1024).SingleProducer().SingleConsumer())  // → SPSC
//	q := ringq.Build[Event](ringq.New(1024).SingleConsumer())                   // → MPSC
//	q := ringq.Build[Event](ringq.New(1024).SingleProducer())                   // → SPMC
//	q := ringq.Build[Event](ringq.New(1024))                                    // → MPMC
//
// Broadcast queues are built explicitly, since they implement
// [BroadcastQueue] rather than [Queue]:
//
//	q := ringq.BuildSPMCBroadcast[Tick](
//	    ringq.New(1024).SingleProducer().Broadcast().MaxReaders(8),
//	)
//
// # Basic Usage
//
//	q := ringq.NewMPMC[int](1024)
//
//	value := 42
//	err := q.Enqueue(&value)
//	if ringq.IsWouldBlock(err) {
//	    // queue is full
//	}
//
//	elem, err := q.Dequeue()
//	if ringq.IsWouldBlock(err) {
//	    // queue is empty
//	}
//
// # Common Patterns
//
// Pipeline stage (SPSC):
//
//	q := ringq.NewSPSC[Data](1024)
//
//	go func() { // producer
//	    backoff := iox.Backoff{}
//	    for data := range input {
//	        for q.Enqueue(&data) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	go func() { // consumer
//	    backoff := iox.Backoff{}
//	    for {
//	        data, err := q.Dequeue()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(data)
//	    }
//	}()
//
// Market-data fan-out (SPMC broadcast, overwrite-tolerant):
//
//	q := ringq.BuildSPMCBroadcast[Tick](
//	    ringq.New(4096).SingleProducer().Broadcast().MaxReaders(len(subscribers)).Overwrite(),
//	)
//
//	go func() { // single feed handler
//	    for tick := range feed {
//	        q.Enqueue(&tick)
//	    }
//	}()
//
//	for i, sub := range subscribers {
//	    go func(reader int, sub Subscriber) {
//	        for {
//	            tick, err := q.Dequeue(reader)
//	            switch {
//	            case err == nil:
//	                sub.Handle(tick)
//	            case ringq.IsDataLost(err):
//	                sub.Resync()
//	            default:
//	                runtime.Gosched()
//	            }
//	        }
//	    }(i, sub)
//	}
//
// # Error Handling
//
// Queues return [ErrWouldBlock] when an operation cannot proceed
// immediately; this is sourced from [code.hybscloud.com/iox] for
// ecosystem consistency. Broadcast consumers additionally return
// [ErrDataLost] when the producer has lapped them in overwrite mode.
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !ringq.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
//	ringq.IsWouldBlock(err)  // true if queue full/empty
//	ringq.IsDataLost(err)    // true if a broadcast reader missed overwritten data
//	ringq.IsSemantic(err)    // true if control flow signal, not a failure
//	ringq.IsNonFailure(err)  // true if nil, ErrWouldBlock, or ErrDataLost
//
// # Capacity and Length
//
// Capacity rounds up to the next power of two:
//
//	q := ringq.NewMPMC[int](3)     // actual capacity: 4
//	q := ringq.NewMPMC[int](1000)  // actual capacity: 1024
//
// Minimum capacity is 2. Panics if capacity < 2.
//
// Length is intentionally not provided: an accurate count in a
// lock-free queue requires cross-core synchronization the algorithms
// are specifically designed to avoid. Track counts in application
// logic when needed.
//
// # Thread Safety
//
//   - SPSC: one producer goroutine, one consumer goroutine.
//   - MPSC: any number of producer goroutines, one consumer goroutine.
//   - SPMC, SPMC broadcast: one producer goroutine, any number of
//     consumer goroutines.
//   - MPMC, MPMC broadcast: any number of producer and consumer
//     goroutines.
//
// Violating these constraints causes undefined behavior, not a
// reported error.
//
// # Shared Memory
//
// The [go.ringq.dev/ringq/shm] subpackage maps a named POSIX or
// Win32 memory object so that a queue placement-constructed into it
// can be shared by separate processes. All of a queue's state lives
// in plain atomics and a flat slot array, so once initialized it
// requires no further coordination beyond the bytes themselves.
// [ShmBroadcastSize], [InitializeSPMCBroadcast], and
// [AttachSPMCBroadcast] build a fan-out queue directly over a
// [go.ringq.dev/ringq/shm.Region]'s bytes: the creating process calls
// Initialize once to format the segment, every other process attaches
// with Attach, and the returned handle's lifetime is tied to the
// mapping it was built over, not to the Go heap.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives
// (mutex, channel, WaitGroup) but cannot observe happens-before
// relationships established purely through acquire-release atomics on
// separate memory locations. These queues are correct under the
// C11/C++11-style memory model they're built on, but the detector may
// still flag false positives on the generic [T] variants. Tests that
// trigger this skip themselves when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomics with explicit memory
// ordering, and [code.hybscloud.com/spin] for cooperative spin-wait in
// CAS retry loops.
package ringq
