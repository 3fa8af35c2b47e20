/*
@Description: UDP endpoint loopback tests
*/

package rtlink

import (
	"testing"
	"time"
)

func endpointPairConfig(srcPort, dstPort uint16) *Config {
	cfg := DefaultConfig()
	cfg.SrcAddr = "127.0.0.1"
	cfg.SrcPort = srcPort
	cfg.DstAddr = "127.0.0.1"
	cfg.DstPort = dstPort
	return cfg
}

func TestEndpointSendReceiveRoundTrip(t *testing.T) {
	cfgA := endpointPairConfig(58231, 58232)
	cfgB := endpointPairConfig(58232, 58231)

	epA, err := NewEndpoint(cfgA)
	if err != nil {
		t.Fatalf("new endpoint A: %v", err)
	}
	defer epA.Close()

	epB, err := NewEndpoint(cfgB)
	if err != nil {
		t.Fatalf("new endpoint B: %v", err)
	}
	defer epB.Close()

	msg := []byte("ping")
	if _, err := epA.Send(msg); err != nil {
		t.Fatalf("send: %v", err)
	}

	buf := make([]byte, 64)
	n, err := epB.Receive(buf, time.Second)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if string(buf[:n]) != string(msg) {
		t.Errorf("received %q, want %q", buf[:n], msg)
	}
}

func TestEndpointReceiveTimeoutIsTransient(t *testing.T) {
	cfgA := endpointPairConfig(58233, 58234)
	cfgB := endpointPairConfig(58234, 58233)

	epA, err := NewEndpoint(cfgA)
	if err != nil {
		t.Fatalf("new endpoint A: %v", err)
	}
	defer epA.Close()
	epB, err := NewEndpoint(cfgB)
	if err != nil {
		t.Fatalf("new endpoint B: %v", err)
	}
	defer epB.Close()

	buf := make([]byte, 64)
	_, err = epA.Receive(buf, 20*time.Millisecond)
	if err == nil {
		t.Fatalf("expected a timeout error with no peer traffic")
	}
	if !IsTransientRecvErr(err) {
		t.Errorf("IsTransientRecvErr(%v) = false, want true", err)
	}
}

func TestIsTransientRecvErrNil(t *testing.T) {
	if IsTransientRecvErr(nil) {
		t.Errorf("IsTransientRecvErr(nil) = true, want false")
	}
}
