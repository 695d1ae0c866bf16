// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// cacheExhausted reports whether a side's local, non-atomic cache of
// a peer-owned bound has run out: exhausted is checked against cached
// first, and only reloaded via reload (an atomic load, or a full
// reader scan) when the cached value no longer proves there's room to
// proceed. SPSC's Enqueue/Dequeue and SPMCBroadcast's Enqueue are all
// this same double-checked-cache shape pointed at a different peer,
// which is why it's pulled out once rather than written three times.
func cacheExhausted(cached *uint64, reload func() uint64, exhausted func(uint64) bool) bool {
	if exhausted(*cached) {
		*cached = reload()
		return exhausted(*cached)
	}
	return false
}
