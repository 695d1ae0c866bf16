// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"go.ringq.dev/ringq"
)

// TestSPSCFillDrainRefill fills a capacity-4 queue, confirms a fifth
// push fails, then shows one pop frees exactly one slot: push 0..3
// succeed, push 4 fails, pop returns 0 and frees a slot, push 4
// succeeds, remaining pops return 1..4 in order, then the queue
// reports empty.
func TestSPSCFillDrainRefill(t *testing.T) {
	q := ringq.NewSPSC[int](4)
	if q.Cap() != 4 {
		t.Fatalf("Cap() = %d, want 4", q.Cap())
	}

	for i := 0; i < 4; i++ {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", v, err)
		}
	}
	v := 4
	if err := q.Enqueue(&v); !ringq.IsWouldBlock(err) {
		t.Fatalf("Enqueue(4) on full queue: got %v, want ErrWouldBlock", err)
	}

	got, err := q.Dequeue()
	if err != nil || got != 0 {
		t.Fatalf("Dequeue() = (%d, %v), want (0, nil)", got, err)
	}

	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue(4) after freeing a slot: %v", err)
	}

	for _, want := range []int{1, 2, 3, 4} {
		got, err := q.Dequeue()
		if err != nil || got != want {
			t.Fatalf("Dequeue() = (%d, %v), want (%d, nil)", got, err, want)
		}
	}

	if _, err := q.Dequeue(); !ringq.IsWouldBlock(err) {
		t.Fatalf("Dequeue() on empty queue: got %v, want ErrWouldBlock", err)
	}
}

func TestSPSCRoundsCapacityToPowerOfTwo(t *testing.T) {
	q := ringq.NewSPSC[int](3)
	if q.Cap() != 4 {
		t.Fatalf("Cap() = %d, want 4", q.Cap())
	}
}

func TestSPSCPanicsOnSmallCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewSPSC(1) did not panic")
		}
	}()
	ringq.NewSPSC[int](1)
}

// TestSPSCOrderUnderConcurrency checks that a single producer and
// single consumer observe items strictly in push order.
func TestSPSCOrderUnderConcurrency(t *testing.T) {
	const n = 20000
	q := ringq.NewSPSC[int](64)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		for i := 0; i < n; i++ {
			v := i
			for q.Enqueue(&v) != nil {
				backoff.Wait()
			}
			backoff.Reset()
		}
	}()

	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		deadline := time.Now().Add(10 * time.Second)
		for i := 0; i < n; i++ {
			var got int
			for {
				v, err := q.Dequeue()
				if err == nil {
					got = v
					break
				}
				if time.Now().After(deadline) {
					t.Errorf("timed out waiting for item %d", i)
					return
				}
				backoff.Wait()
			}
			backoff.Reset()
			if got != i {
				t.Errorf("Dequeue() = %d, want %d", got, i)
			}
		}
	}()

	wg.Wait()
}

// tagPair is a two-write handoff: a producer pushes {id, 0} then
// {id, 1} for the same id, and a consumer must never observe the
// second without having already observed the first. Shared by the
// ordering tests across the CAS-free and CAS-based cores.
type tagPair struct {
	id  int
	tag int
}

// TestSPSCObservesTagZeroBeforeTagOne pushes {i,0} then {i,1} for every
// i and checks the consumer never sees tag 1 for an id before it has
// already seen tag 0 for that same id. SPSC's release/acquire handoff
// on writeSeq/readSeq is what rules out the consumer observing a
// slot's payload before the producer's two writes to it have both
// landed.
func TestSPSCObservesTagZeroBeforeTagOne(t *testing.T) {
	const n = 20000
	q := ringq.NewSPSC[tagPair](64)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		for i := 0; i < n; i++ {
			for _, tag := range [2]int{0, 1} {
				v := tagPair{id: i, tag: tag}
				for q.Enqueue(&v) != nil {
					backoff.Wait()
				}
				backoff.Reset()
			}
		}
	}()

	go func() {
		defer wg.Done()
		sawTagZero := make([]bool, n)
		backoff := iox.Backoff{}
		deadline := time.Now().Add(10 * time.Second)
		for i := 0; i < 2*n; i++ {
			var p tagPair
			for {
				v, err := q.Dequeue()
				if err == nil {
					p = v
					break
				}
				if time.Now().After(deadline) {
					t.Errorf("timed out waiting for item %d", i)
					return
				}
				backoff.Wait()
			}
			backoff.Reset()
			switch p.tag {
			case 0:
				sawTagZero[p.id] = true
			case 1:
				if !sawTagZero[p.id] {
					t.Errorf("observed tag 1 for id %d before tag 0", p.id)
					return
				}
			}
		}
	}()

	wg.Wait()
}
