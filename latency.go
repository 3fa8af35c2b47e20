/*
@Description: Wrap-tolerant latency percentile sampler
*/

package rtlink

import (
	"math"
	"sort"
	"sync/atomic"
)

// LatencySamplerCapacity is the default sample ring capacity.
const LatencySamplerCapacity = 100000

// LatencyStats is the result of a snapshot+compute pass over a
// LatencySampler: percentiles by nearest-rank, plus min/max/mean/stdev,
// all reported in microseconds.
type LatencyStats struct {
	Count    uint64
	MinUs    float64
	MaxUs    float64
	MeanUs   float64
	StdevUs  float64
	P50Us    float64
	P95Us    float64
	P99Us    float64
	P999Us   float64
	P9999Us  float64
}

// LatencySampler is a single-producer, single-consumer circular
// nanosecond sample store with on-demand percentile aggregation. No
// sort, no allocation on the record path.
type LatencySampler struct {
	samples [LatencySamplerCapacity]uint64

	writeIdx atomic.Uint64
	_        cachePad
	total    atomic.Uint64
	_        cachePad
}

// NewLatencySampler returns an empty sampler.
func NewLatencySampler() *LatencySampler {
	return &LatencySampler{}
}

// Record stores a latency sample in nanoseconds. O(1), two atomic
// writes, safe from a single producer.
func (s *LatencySampler) Record(sampleNs uint64) {
	idx := s.writeIdx.Load()
	s.samples[idx] = sampleNs
	s.writeIdx.Store((idx + 1) % LatencySamplerCapacity) // release publish
	s.total.Add(1)
}

// RecordDelta records the elapsed nanoseconds between start and end.
func (s *LatencySampler) RecordDelta(startNs, endNs int64) {
	if endNs < startNs {
		return
	}
	s.Record(uint64(endNs - startNs))
}

// Snapshot takes a best-effort consistent copy of the ring and
// computes percentile statistics. The acquire/release pair guarantees
// individual sample integrity but not a globally consistent snapshot;
// the final sample or two may be "in flight" (spec.md §4.5/§9), which
// is acceptable for latency reporting.
func (s *LatencySampler) Snapshot() LatencyStats {
	total := s.total.Load()
	if total == 0 {
		return LatencyStats{}
	}

	n := total
	if n > LatencySamplerCapacity {
		n = LatencySamplerCapacity
	}

	sorted := make([]uint64, n)
	if total <= LatencySamplerCapacity {
		copy(sorted, s.samples[:n])
	} else {
		writePos := s.writeIdx.Load()
		firstPart := LatencySamplerCapacity - writePos
		copy(sorted[:firstPart], s.samples[writePos:])
		copy(sorted[firstPart:], s.samples[:writePos])
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum, sumSq float64
	for _, v := range sorted {
		us := float64(v) / 1000.0
		sum += us
		sumSq += us * us
	}
	nf := float64(n)
	mean := sum / nf
	var stdev float64
	if n > 1 {
		variance := (sumSq - (sum*sum)/nf) / (nf - 1)
		stdev = math.Sqrt(math.Max(0, variance))
	}

	return LatencyStats{
		Count:   total,
		MinUs:   float64(sorted[0]) / 1000.0,
		MaxUs:   float64(sorted[n-1]) / 1000.0,
		MeanUs:  mean,
		StdevUs: stdev,
		P50Us:   percentileUs(sorted, 50),
		P95Us:   percentileUs(sorted, 95),
		P99Us:   percentileUs(sorted, 99),
		P999Us:  percentileUs(sorted, 99.9),
		P9999Us: percentileUs(sorted, 99.99),
	}
}

// percentileUs computes the p-th percentile of sorted (ascending, ns)
// using the nearest-rank method and converts to microseconds.
func percentileUs(sorted []uint64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	rank := int(math.Ceil(p * float64(n) / 100.0))
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return float64(sorted[rank-1]) / 1000.0
}

// Reset clears the sampler.
func (s *LatencySampler) Reset() {
	s.writeIdx.Store(0)
	s.total.Store(0)
}
