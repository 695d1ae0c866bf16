// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Enqueue: the queue is full. For unicast Dequeue: the queue is
// empty. For broadcast Dequeue: the reader has caught up to the
// producer — compare with ErrDataLost, the other non-success outcome
// broadcast readers can see.
//
// ErrWouldBlock is a control flow signal, not a failure. This is an
// alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if ringq.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrDataLost is returned by a broadcast reader's Dequeue when the
// producer has advanced more than Capacity items ahead of it. The
// reader's position has already been snapped forward to the earliest
// sequence still retained by the ring; the next Dequeue call resumes
// from there. ErrDataLost only occurs on overwrite-mode broadcast queues —
// refuse-when-full and unicast queues never drop accepted data.
var ErrDataLost = errors.New("ringq: reader missed overwritten data")

// IsWouldBlock reports whether err indicates the operation would
// block. Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsDataLost reports whether err indicates a broadcast reader missed
// data that was overwritten before it could be read.
func IsDataLost(err error) bool {
	return errors.Is(err, ErrDataLost)
}

// IsSemantic reports whether err is a control flow signal rather than
// a failure. Delegates to [iox.IsSemantic] and additionally recognizes
// ErrDataLost.
func IsSemantic(err error) bool {
	return IsDataLost(err) || iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure outcome:
// nil, ErrWouldBlock, or ErrDataLost.
func IsNonFailure(err error) bool {
	return IsDataLost(err) || iox.IsNonFailure(err)
}
