/*
@Description: Diagnostic counter tests
*/

package rtlink

import "testing"

func TestStatsCopyIsIndependentSnapshot(t *testing.T) {
	s := NewStats()
	s.TxPackets = 5
	s.RxBytes = 100

	c := s.Copy()
	s.TxPackets = 9
	if c.TxPackets != 5 {
		t.Errorf("Copy snapshot mutated by a later write: got %d, want 5", c.TxPackets)
	}
	if c.RxBytes != 100 {
		t.Errorf("RxBytes = %d, want 100", c.RxBytes)
	}
}

func TestStatsReset(t *testing.T) {
	s := NewStats()
	s.TxPackets, s.CrcErrors, s.LossEvents = 1, 2, 3
	s.Reset()
	c := s.Copy()
	if c.TxPackets != 0 || c.CrcErrors != 0 || c.LossEvents != 0 {
		t.Errorf("Reset left nonzero counters: %+v", c)
	}
}

func TestStatsHeaderAndToSliceAlign(t *testing.T) {
	s := NewStats()
	s.TxPackets = 42
	header := s.Header()
	values := s.ToSlice()
	if len(header) != len(values) {
		t.Fatalf("Header has %d columns, ToSlice has %d", len(header), len(values))
	}
	if values[0] != "42" {
		t.Errorf("ToSlice[0] = %q, want \"42\" (TxPackets)", values[0])
	}
}
