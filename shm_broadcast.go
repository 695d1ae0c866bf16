// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"unsafe"

	"code.hybscloud.com/atomix"

	"go.ringq.dev/ringq/shm"
)

// ShmBroadcastSize returns the number of bytes a mapped region must
// provide to back a SPMCBroadcast[T] of the given capacity and reader
// count via [InitializeSPMCBroadcast] or [AttachSPMCBroadcast].
func ShmBroadcastSize[T any](capacity, maxReaders int) int {
	var zero T
	n := roundToPow2(capacity)
	return shm.Compute(int(unsafe.Sizeof(zero)), n, maxReaders).Size
}

// placeSPMCBroadcast builds a SPMCBroadcast[T] whose writeSeq, reader
// positions, and slot buffer are not heap-allocated but point directly
// into data, at the offsets shm.Compute assigns them. data must be at
// least ShmBroadcastSize(capacity, maxReaders) bytes and must outlive
// the returned queue; the caller (InitializeSPMCBroadcast or
// AttachSPMCBroadcast) is responsible for formatting or validating the
// bytes before readers and writers touch them concurrently.
func placeSPMCBroadcast[T any](data []byte, capacity, maxReaders int, overwrite bool, updateInterval uint64) *SPMCBroadcast[T] {
	n := roundToPow2(capacity)
	var zero T
	layout := shm.Compute(int(unsafe.Sizeof(zero)), n, maxReaders)
	if len(data) < layout.Size {
		panic("ringq: shared region too small for this layout")
	}

	base := unsafe.Pointer(&data[0])
	writeSeq := (*atomix.Uint64)(base)
	readerSlots := unsafe.Slice((*broadcastReader)(unsafe.Add(base, layout.ReadersOffset)), maxReaders)
	buffer := unsafe.Slice((*T)(unsafe.Add(base, layout.BufferOffset)), n)

	if updateInterval == 0 {
		updateInterval = 64
		if updateInterval >= uint64(n) {
			updateInterval = uint64(n) - 1
		}
	}

	return &SPMCBroadcast[T]{
		writeSeq:       writeSeq,
		readers:        readers{slots: readerSlots},
		buffer:         buffer,
		mask:           uint64(n) - 1,
		capacity:       uint64(n),
		updateInterval: updateInterval,
		overwrite:      overwrite,
	}
}

// InitializeSPMCBroadcast formats data as a fresh SPMCBroadcast[T] and
// returns a handle placement-constructed over it: the write sequence
// and every reader position are reset to zero before the queue is
// handed back, so this must be called exactly once per segment, by
// whichever side creates it. Concurrent callers attaching to the same
// segment must use [AttachSPMCBroadcast] instead, after the
// initializing side has published that it is done.
//
// Panics if capacity < 2, maxReaders < 1, or data is shorter than
// [ShmBroadcastSize] requires.
func InitializeSPMCBroadcast[T any](data []byte, capacity, maxReaders int, overwrite bool, updateInterval uint64) *SPMCBroadcast[T] {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	if maxReaders < 1 {
		panic("ringq: maxReaders must be >= 1")
	}
	q := placeSPMCBroadcast[T](data, capacity, maxReaders, overwrite, updateInterval)
	q.writeSeq.StoreRelaxed(0)
	for i := range q.readers.slots {
		q.readers.slots[i].pos.StoreRelaxed(0)
	}
	return q
}

// AttachSPMCBroadcast returns a handle placement-constructed over data
// that another process has already initialized with
// [InitializeSPMCBroadcast]. It performs no writes of its own: the
// returned queue shares live state with every other handle over the
// same bytes, mapped or not by the same call to mmap.
//
// Panics if capacity < 2, maxReaders < 1, or data is shorter than
// [ShmBroadcastSize] requires.
func AttachSPMCBroadcast[T any](data []byte, capacity, maxReaders int, overwrite bool, updateInterval uint64) *SPMCBroadcast[T] {
	if capacity < 2 {
		panic("ringq: capacity must be >= 2")
	}
	if maxReaders < 1 {
		panic("ringq: maxReaders must be >= 1")
	}
	return placeSPMCBroadcast[T](data, capacity, maxReaders, overwrite, updateInterval)
}
