// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shm maps a named shared-memory object so a ring queue from
// [go.ringq.dev/ringq] can be placement-constructed into it and
// shared across processes.
//
// A Region holds no owning pointers and requires no serialization: a
// queue's entire state is plain atomics and a flat slot array, so once
// the first process has initialized the bytes, every other process
// that maps the same name under the same layout sees a live queue.
// Recompiling a participant with a different capacity, reader count,
// or element representation silently invalidates the mapping — this
// package cannot detect that and does not try to.
//
//	size := ringq.ShmBroadcastSize[Tick](1024, 1)
//	region, err := shm.Create("/ticks", size)
//	if err != nil {
//	    return err
//	}
//	defer region.Destroy()
//	q := ringq.InitializeSPMCBroadcast[Tick](region.Data(), 1024, 1, false, 0)
//
//	// A subscriber process, started first or last:
//	var region *shm.Region
//	for {
//	    region, err = shm.Open("/ticks", size)
//	    if err == nil {
//	        break
//	    }
//	    time.Sleep(10 * time.Millisecond)
//	}
//	defer region.Close()
//	sub := ringq.AttachSPMCBroadcast[Tick](region.Data(), 1024, 1, false, 0)
package shm
