/*
@Description: Endpoint parsing tests
*/

package rtlink

import "testing"

func TestParseEndpointValid(t *testing.T) {
	addr, port, err := ParseEndpoint("192.168.1.10:9000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != "192.168.1.10" || port != 9000 {
		t.Errorf("got (%s, %d), want (192.168.1.10, 9000)", addr, port)
	}
}

func TestParseEndpointRejectsMissingPort(t *testing.T) {
	if _, _, err := ParseEndpoint("192.168.1.10"); err == nil {
		t.Errorf("expected an error for a missing port")
	}
}

func TestParseEndpointRejectsNonIPv4(t *testing.T) {
	if _, _, err := ParseEndpoint("::1:9000"); err == nil {
		t.Errorf("expected an error for a non-IPv4 host")
	}
}

func TestParseEndpointRejectsHostname(t *testing.T) {
	if _, _, err := ParseEndpoint("localhost:9000"); err == nil {
		t.Errorf("expected an error for a hostname, ParseEndpoint requires a dotted-quad address")
	}
}

func TestParseEndpointRejectsOutOfRangePort(t *testing.T) {
	if _, _, err := ParseEndpoint("127.0.0.1:0"); err == nil {
		t.Errorf("expected an error for port 0")
	}
	if _, _, err := ParseEndpoint("127.0.0.1:70000"); err == nil {
		t.Errorf("expected an error for port 70000")
	}
}
