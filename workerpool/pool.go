// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package workerpool is a pool of worker goroutines draining an MPMC
// ring queue of type-erased tasks — a worked example of driving
// [go.ringq.dev/ringq] rather than a component the queue package
// itself depends on.
package workerpool

import (
	"log/slog"
	"runtime"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"go.ringq.dev/ringq"
)

// task is the heap-allocated, type-erased unit of work: a zero-
// argument callable that reports its own result into whatever future
// Submit created for it.
type task func()

// Pool is a fixed-size pool of workers draining an [ringq.MPMC] queue
// of tasks. The zero value is not usable; construct with New.
type Pool struct {
	queue   *ringq.MPMC[task]
	wg      sync.WaitGroup
	stopped atomix.Bool
	log     *slog.Logger
}

// New starts a pool of n workers pulling from a queue of the given
// capacity (rounded up to a power of two). A nil logger falls back to
// [slog.Default].
func New(n, capacity int, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}
	p := &Pool{
		queue: ringq.NewMPMC[task](capacity),
		log:   log,
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	backoff := iox.Backoff{}
	for {
		t, err := p.queue.Dequeue()
		if err != nil {
			if p.stopped.LoadAcquire() {
				return
			}
			backoff.Wait()
			continue
		}
		backoff.Reset()
		p.run(t)
	}
}

func (p *Pool) run(t task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("workerpool: task panicked", "recover", r, "stack", string(debugStack()))
		}
	}()
	t()
}

func debugStack() []byte {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return buf[:n]
}

// Submit enqueues fn and returns a [Future] for its result. Submit
// busy-retries with a cooperative yield while the queue is full; it
// does not itself distinguish a full queue from a pool that has
// stopped accepting work, since both look identical from the caller's
// side until the future resolves or the caller gives up.
func Submit[T any](p *Pool, fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	backoff := iox.Backoff{}
	t := task(func() {
		val, err := fn()
		f.deliver(val, err)
	})
	for p.queue.Enqueue(&t) != nil {
		backoff.Wait()
	}
	return f
}

// Stop flips the cooperative stop flag and waits for every worker to
// drain the queue and exit. Submit must not be called concurrently
// with or after Stop; in-flight tasks already queued are still run.
func (p *Pool) Stop() {
	p.stopped.CompareAndSwapAcqRel(false, true)
	p.wg.Wait()
}
