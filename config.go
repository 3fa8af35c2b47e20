/*
@Description: Runtime configuration for the packet-plane peer
*/

package rtlink

import (
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidEndpoint is returned by ParseEndpoint for a malformed
// "addr:port" argument (spec.md §6).
var ErrInvalidEndpoint = errors.New("rtlink: invalid endpoint, expected ipv4:port")

// Config groups every tunable of the packet-plane runtime: socket
// endpoints, timing constants, RT-scheduling parameters and buffer
// sizes. Mirrors the teacher's flat Config-struct idiom: plain fields,
// no functional options.
type Config struct {
	// Endpoints
	SrcAddr string
	SrcPort uint16
	DstAddr string
	DstPort uint16

	// Socket buffers
	RecvBufferBytes int
	SendBufferBytes int
	RecvTimeout     time.Duration

	// DSCP codepoint applied to outgoing datagrams (written to the upper
	// six bits of the IPv4 TOS byte), 0 disables.
	DSCP int

	// Link-health (C2)
	CommTimeout         time.Duration
	ExpectedInterval    time.Duration
	IntervalToleranceUs uint32

	// Periodic scheduler (C7)
	TxInterval     time.Duration
	HealthInterval time.Duration
	StatsInterval  time.Duration

	// Thread manager (C6) scheduling
	RxCPU      int // negative disables affinity
	TxCPU      int
	RxPriority int // 1-99
	TxPriority int
}

// DefaultConfig returns a Config populated with spec.md defaults.
func DefaultConfig() *Config {
	return &Config{
		RecvBufferBytes:     2 * 1024 * 1024,
		SendBufferBytes:     1 * 1024 * 1024,
		RecvTimeout:         100 * time.Millisecond,
		DSCP:                0,
		CommTimeout:         1000 * time.Millisecond,
		ExpectedInterval:    100 * time.Millisecond,
		IntervalToleranceUs: 5000,
		TxInterval:          100 * time.Millisecond,
		HealthInterval:      200 * time.Millisecond,
		StatsInterval:       250 * time.Millisecond,
		RxCPU:               -1,
		TxCPU:               -1,
		RxPriority:          80,
		TxPriority:          70,
	}
}

// ParseEndpoint splits "addr:port" into an IPv4 dotted-quad address and
// a 1-65535 port, per spec.md §6's command-line contract.
func ParseEndpoint(s string) (addr string, port uint16, err error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return "", 0, errors.Wrap(ErrInvalidEndpoint, err.Error())
	}
	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		return "", 0, errors.Wrap(ErrInvalidEndpoint, "not an IPv4 address: "+host)
	}
	p, err := strconv.Atoi(portStr)
	if err != nil || p < 1 || p > 65535 {
		return "", 0, errors.Wrap(ErrInvalidEndpoint, "port out of range: "+portStr)
	}
	return ip.String(), uint16(p), nil
}
