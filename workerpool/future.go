// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package workerpool

// Future is the one-shot result of a task submitted to a [Pool]. It
// is safe to call Get from any number of goroutines; all of them
// observe the same value once the task completes.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) deliver(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Get blocks until the task completes and returns its result. Unlike
// every queue operation in this module, Get is intentionally a
// suspension point — a future has exactly one producer and is
// pointless without a way to wait for it.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.val, f.err
}

// Done returns a channel closed when the result is available, for
// callers that want to select on multiple futures or a cancellation
// signal alongside it.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
