// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// broadcastReader holds one reader's position, cache-line padded so
// that N readers advancing concurrently never invalidate each other's
// line.
type broadcastReader struct {
	pos atomix.Uint64
	_   padShort
}

// readers is the fixed-size, padded array of reader positions shared
// by SPMCBroadcast and MPMCBroadcast, along with the four recovery
// primitives they expose.
type readers struct {
	slots []broadcastReader
}

func newReaders(maxReaders int) readers {
	rs := readers{slots: make([]broadcastReader, maxReaders)}
	return rs
}

func (rs *readers) count() int {
	return len(rs.slots)
}

// minPos scans every reader and returns the smallest position, the
// lower bound a producer must respect before it may reuse a slot.
func (rs *readers) minPos() uint64 {
	min := rs.slots[0].pos.LoadAcquire()
	for i := 1; i < len(rs.slots); i++ {
		p := rs.slots[i].pos.LoadAcquire()
		if p < min {
			min = p
		}
	}
	return min
}

func (rs *readers) GetReadPos(reader int) uint64 {
	return rs.slots[reader].pos.LoadAcquire()
}

func (rs *readers) SetReadPos(reader int, pos uint64) {
	rs.slots[reader].pos.StoreRelease(pos)
}

func (rs *readers) FetchAddReadPos(reader int, n uint64) uint64 {
	return rs.slots[reader].pos.AddAcqRel(n) - n
}

func (rs *readers) FetchSubReadPos(reader int, n uint64) uint64 {
	before := rs.slots[reader].pos.LoadAcquire()
	for {
		after := before - n
		if rs.slots[reader].pos.CompareAndSwapAcqRel(before, after) {
			return before
		}
		before = rs.slots[reader].pos.LoadAcquire()
	}
}
