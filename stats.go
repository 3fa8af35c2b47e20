/*
@Description: Atomic counters for packet-plane runtime diagnostics
*/

package rtlink

import (
	"fmt"
	"sync/atomic"
)

// Stats holds every atomic diagnostic counter for the packet-plane
// runtime. All fields are uint64 and must be accessed through the
// atomic package; adapted from the teacher's Snmp struct with fields
// renamed to this domain (no KCP/FEC/retransmission counters, since
// retransmission and FEC are explicit Non-goals here).
type Stats struct {
	TxPackets uint64 // packets successfully handed to the kernel
	TxBytes   uint64
	TxDropped uint64 // TX ring full or send failed, packet discarded

	RxPackets uint64 // datagrams successfully read from the socket
	RxBytes   uint64
	RxDropped uint64 // RX ring full, frame not queued (still decoded and delivered)

	CrcErrors    uint64 // decode() rejected with CrcMismatch
	DecodeErrors uint64 // decode() rejected for any other reason

	UnstableTransitions uint64 // Healthy/Lost -> Unstable transitions observed
	LossEvents          uint64 // Healthy/Unstable -> Lost transitions observed
}

// NewStats returns a zeroed Stats instance.
func NewStats() *Stats {
	return new(Stats)
}

// Header returns column headers matching Copy()'s field order.
func (s *Stats) Header() []string {
	return []string{
		"TxPackets", "TxBytes", "TxDropped",
		"RxPackets", "RxBytes", "RxDropped",
		"CrcErrors", "DecodeErrors",
		"UnstableTransitions", "LossEvents",
	}
}

// ToSlice renders a thread-safe snapshot as strings, for logging.
func (s *Stats) ToSlice() []string {
	c := s.Copy()
	return []string{
		fmt.Sprint(c.TxPackets), fmt.Sprint(c.TxBytes), fmt.Sprint(c.TxDropped),
		fmt.Sprint(c.RxPackets), fmt.Sprint(c.RxBytes), fmt.Sprint(c.RxDropped),
		fmt.Sprint(c.CrcErrors), fmt.Sprint(c.DecodeErrors),
		fmt.Sprint(c.UnstableTransitions), fmt.Sprint(c.LossEvents),
	}
}

// Copy returns a consistent-enough snapshot using atomic loads.
func (s *Stats) Copy() *Stats {
	d := NewStats()
	d.TxPackets = atomic.LoadUint64(&s.TxPackets)
	d.TxBytes = atomic.LoadUint64(&s.TxBytes)
	d.TxDropped = atomic.LoadUint64(&s.TxDropped)
	d.RxPackets = atomic.LoadUint64(&s.RxPackets)
	d.RxBytes = atomic.LoadUint64(&s.RxBytes)
	d.RxDropped = atomic.LoadUint64(&s.RxDropped)
	d.CrcErrors = atomic.LoadUint64(&s.CrcErrors)
	d.DecodeErrors = atomic.LoadUint64(&s.DecodeErrors)
	d.UnstableTransitions = atomic.LoadUint64(&s.UnstableTransitions)
	d.LossEvents = atomic.LoadUint64(&s.LossEvents)
	return d
}

// Reset atomically zeroes every counter.
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.TxPackets, 0)
	atomic.StoreUint64(&s.TxBytes, 0)
	atomic.StoreUint64(&s.TxDropped, 0)
	atomic.StoreUint64(&s.RxPackets, 0)
	atomic.StoreUint64(&s.RxBytes, 0)
	atomic.StoreUint64(&s.RxDropped, 0)
	atomic.StoreUint64(&s.CrcErrors, 0)
	atomic.StoreUint64(&s.DecodeErrors, 0)
	atomic.StoreUint64(&s.UnstableTransitions, 0)
	atomic.StoreUint64(&s.LossEvents, 0)
}
