// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"go.ringq.dev/ringq"
)

func TestMPSCBasic(t *testing.T) {
	q := ringq.NewMPSC[int](4)

	for i := 0; i < 4; i++ {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", v, err)
		}
	}
	v := 4
	if err := q.Enqueue(&v); !ringq.IsWouldBlock(err) {
		t.Fatalf("Enqueue on full queue: got %v, want ErrWouldBlock", err)
	}

	for want := 0; want < 4; want++ {
		got, err := q.Dequeue()
		if err != nil || got != want {
			t.Fatalf("Dequeue() = (%d, %v), want (%d, nil)", got, err, want)
		}
	}
	if _, err := q.Dequeue(); !ringq.IsWouldBlock(err) {
		t.Fatalf("Dequeue on empty queue: got %v, want ErrWouldBlock", err)
	}
}

// TestMPSCNoLossNoDuplication checks that for many producers and one
// consumer, the multiset of consumed values equals the multiset
// pushed, with no duplicates.
func TestMPSCNoLossNoDuplication(t *testing.T) {
	if ringq.RaceEnabled {
		t.Skip("lock-free ordering is invisible to the race detector")
	}

	const numProducers = 8
	const perProducer = 2000
	const total = numProducers * perProducer

	q := ringq.NewMPSC[int](1024)
	seen := make([]atomix.Int32, total)

	var wg sync.WaitGroup
	wg.Add(numProducers)
	for p := 0; p < numProducers; p++ {
		go func(id int) {
			defer wg.Done()
			backoff := iox.Backoff{}
			for i := 0; i < perProducer; i++ {
				v := id*perProducer + i
				for q.Enqueue(&v) != nil {
					backoff.Wait()
				}
				backoff.Reset()
			}
		}(p)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		backoff := iox.Backoff{}
		deadline := time.Now().Add(15 * time.Second)
		consumed := 0
		for consumed < total {
			v, err := q.Dequeue()
			if err != nil {
				if time.Now().After(deadline) {
					t.Errorf("timed out after consuming %d/%d", consumed, total)
					return
				}
				backoff.Wait()
				continue
			}
			backoff.Reset()
			seen[v].Add(1)
			consumed++
		}
	}()

	wg.Wait()
	<-done

	for i := range seen {
		if seen[i].Load() != 1 {
			t.Errorf("value %d seen %d times, want 1", i, seen[i].Load())
		}
	}
}
