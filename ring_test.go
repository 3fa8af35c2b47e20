/*
@Description: Lock-free SPSC ring buffer tests
*/

package rtlink

import (
	"encoding/binary"
	"testing"
)

func TestRingPushPopRoundTrip(t *testing.T) {
	r := NewRing()
	data := []byte("hello ring")
	if !r.Push(data) {
		t.Fatalf("push failed on empty ring")
	}

	out := make([]byte, RingSlotMaxBytes)
	n, ok := r.Pop(out)
	if !ok {
		t.Fatalf("pop failed after a successful push")
	}
	if string(out[:n]) != string(data) {
		t.Errorf("popped %q, want %q", out[:n], data)
	}
	if !r.Empty() {
		t.Errorf("ring not empty after draining its only slot")
	}
}

func TestRingPopOnEmptyFails(t *testing.T) {
	r := NewRing()
	out := make([]byte, 16)
	if _, ok := r.Pop(out); ok {
		t.Errorf("pop on empty ring succeeded")
	}
}

func TestRingRejectsOversizedPayload(t *testing.T) {
	r := NewRing()
	if r.Push(make([]byte, RingSlotMaxBytes+1)) {
		t.Errorf("push accepted a payload larger than a slot")
	}
}

func TestRingPopRejectsShortOutBuffer(t *testing.T) {
	r := NewRing()
	r.Push([]byte("twelve bytes"))
	out := make([]byte, 4)
	if _, ok := r.Pop(out); ok {
		t.Errorf("pop into an undersized buffer succeeded")
	}
}

func TestRingFullness(t *testing.T) {
	r := NewRing()
	payload := []byte("x")

	for i := 0; i < RingCapacity-1; i++ {
		if !r.Push(payload) {
			t.Fatalf("push %d/%d failed before the ring should be full", i+1, RingCapacity-1)
		}
	}
	if !r.Full() {
		t.Fatalf("ring not reported full after %d pushes", RingCapacity-1)
	}
	if r.Push(payload) {
		t.Errorf("push succeeded on a full ring")
	}

	out := make([]byte, 16)
	r.Pop(out)
	if r.Full() {
		t.Errorf("ring still reported full after draining one slot")
	}
	if !r.Push(payload) {
		t.Errorf("push failed with one free slot available")
	}
}

func TestRingConcurrentSPSC(t *testing.T) {
	r := NewRing()
	const total = 20000

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 16)
		var expect uint32
		for expect < total {
			n, ok := r.Pop(buf)
			if !ok {
				continue
			}
			if n != 4 {
				t.Errorf("unexpected popped length %d", n)
				return
			}
			got := binary.LittleEndian.Uint32(buf[:4])
			if got != expect {
				t.Errorf("out-of-order/duplicate/lost item: got %d, want %d", got, expect)
				return
			}
			expect++
		}
	}()

	frame := make([]byte, 4)
	for i := uint32(0); i < total; i++ {
		binary.LittleEndian.PutUint32(frame, i)
		for !r.Push(frame) {
			// ring momentarily full; retry until the consumer drains it
		}
	}
	<-done
}
