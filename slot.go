// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// slot is one ring buffer cell under the sequence-stamp discipline
// shared by MPSC, SPMC, and MPMC: the stamp is the handoff point
// between sides that don't otherwise coordinate, bumped forward by
// whichever side is done with the cell, independent of the payload
// value stored in it.
type slot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort
}

// newSlots allocates n slots, each stamped with its own index — the
// "ready for producer generation i" state every CAS-based core starts
// from.
func newSlots[T any](n uint64) []slot[T] {
	s := make([]slot[T], n)
	for i := uint64(0); i < n; i++ {
		s[i].seq.StoreRelaxed(i)
	}
	return s
}
