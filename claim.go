// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// claimWrite races against any number of other producers CASing *pos
// to reserve the slot at the current generation, writes *elem into
// it, and stamps the slot ready for a reader. MPSC and MPMC share this
// exact shape; they differ only in how the reader side frees a slot,
// never in how a writer claims one.
//
// Returns ErrWouldBlock once the slot's stamp is behind the
// generation *pos is asking for, meaning the reader side has not yet
// freed it. That subsumes an explicit capacity check against the
// reader's own counter, since the stamp already encodes exactly that.
func claimWrite[T any](pos *atomix.Uint64, buf []slot[T], mask uint64, elem *T) error {
	sw := spin.Wait{}
	for {
		w := pos.LoadAcquire()
		s := &buf[w&mask]
		diff := int64(s.seq.LoadAcquire()) - int64(w)

		switch {
		case diff == 0:
			if pos.CompareAndSwapAcqRel(w, w+1) {
				s.data = *elem
				s.seq.StoreRelease(w + 1)
				return nil
			}
		case diff < 0:
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// claimRead races against any number of other readers CASing *pos to
// claim the slot at the current generation, copies its payload out,
// and frees it for generation pos+capacity by stamping the slot's
// sequence forward. SPMC and MPMC share this exact shape.
func claimRead[T any](pos *atomix.Uint64, buf []slot[T], mask, capacity uint64) (T, error) {
	sw := spin.Wait{}
	for {
		r := pos.LoadAcquire()
		s := &buf[r&mask]
		diff := int64(s.seq.LoadAcquire()) - int64(r+1)

		switch {
		case diff == 0:
			if pos.CompareAndSwapAcqRel(r, r+1) {
				elem := s.data
				var zero T
				s.data = zero
				s.seq.StoreRelease(r + capacity)
				return elem, nil
			}
		case diff < 0:
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}
