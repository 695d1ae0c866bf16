// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package ringq_test

import (
	"fmt"
	"os"
	"testing"

	"go.ringq.dev/ringq"
	"go.ringq.dev/ringq/shm"
)

// TestSPMCBroadcastSharedMemoryRoundTrip stands in for a two-process
// deployment with two independent mappings of the same named segment:
// one handle initializes and writes, the other attaches and reads.
// Neither handle's queue is heap-allocated; both are placement
// constructed over their own mapping's bytes, and values written
// through one are visible through the other because the bytes, not a
// Go value, are what's shared.
func TestSPMCBroadcastSharedMemoryRoundTrip(t *testing.T) {
	const capacity, maxReaders = 16, 1
	name := fmt.Sprintf("/ringq-broadcast-test-%d", os.Getpid())
	size := ringq.ShmBroadcastSize[int64](capacity, maxReaders)

	writerRegion, err := shm.Create(name, size)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer writerRegion.Destroy()

	writer := ringq.InitializeSPMCBroadcast[int64](writerRegion.Data(), capacity, maxReaders, false, 0)

	readerRegion, err := shm.Open(name, size)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer readerRegion.Close()

	reader := ringq.AttachSPMCBroadcast[int64](readerRegion.Data(), capacity, maxReaders, false, 0)

	for i := int64(0); i < capacity; i++ {
		v := i
		if err := writer.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", v, err)
		}
	}

	for want := int64(0); want < capacity; want++ {
		got, err := reader.Dequeue(0)
		if err != nil || got != want {
			t.Fatalf("Dequeue() = (%d, %v), want (%d, nil)", got, err, want)
		}
	}

	if _, err := reader.Dequeue(0); !ringq.IsWouldBlock(err) {
		t.Fatalf("Dequeue() on drained queue = %v, want ErrWouldBlock", err)
	}

	// The writer's own view of the reader's position also crosses the
	// mapping boundary: it was advanced by the other process's handle.
	if got := writer.GetReadPos(0); got != capacity {
		t.Fatalf("writer's GetReadPos(0) = %d, want %d", got, capacity)
	}
}
