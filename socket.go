/*
@Description: Connected UDP datagram endpoint
*/

package rtlink

import (
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// Endpoint is a datagram socket bound to a source address and
// connected to a destination peer, so that subsequent send/recv use a
// pre-pinned remote (spec.md §4.4). Kernel-level unreachable ICMPs
// surface as ECONNREFUSED on a later send/recv and are treated as
// transient by the caller.
type Endpoint struct {
	conn *net.UDPConn
}

// NewEndpoint creates an IPv4/UDP socket, sets SO_REUSEADDR and the
// configured buffer sizes, binds to (srcAddr, srcPort) and connects to
// (dstAddr, dstPort).
func NewEndpoint(cfg *Config) (*Endpoint, error) {
	dialer := net.Dialer{
		LocalAddr: &net.UDPAddr{
			IP:   net.ParseIP(cfg.SrcAddr),
			Port: int(cfg.SrcPort),
		},
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}

	dst := net.JoinHostPort(cfg.DstAddr, strconv.Itoa(int(cfg.DstPort)))
	c, err := dialer.Dial("udp4", dst)
	if err != nil {
		return nil, errors.Wrap(ErrConnectFail, err.Error())
	}
	udpConn, ok := c.(*net.UDPConn)
	if !ok {
		c.Close()
		return nil, errors.WithStack(ErrSocketCreateFail)
	}

	if err := udpConn.SetReadBuffer(cfg.RecvBufferBytes); err != nil {
		return nil, errors.Wrap(ErrSetSocketBufferFail, err.Error())
	}
	if err := udpConn.SetWriteBuffer(cfg.SendBufferBytes); err != nil {
		return nil, errors.Wrap(ErrSetSocketBufferFail, err.Error())
	}

	if cfg.DSCP != 0 {
		pc := ipv4.NewConn(udpConn)
		// Best-effort traffic-class tagging; not required for
		// correctness so failures are not propagated.
		_ = pc.SetTOS(cfg.DSCP << 2)
	}

	return &Endpoint{conn: udpConn}, nil
}

// Send forwards data to the connected peer without copying.
func (e *Endpoint) Send(data []byte) (int, error) {
	n, err := e.conn.Write(data)
	if err != nil {
		return n, errors.Wrap(ErrSendFail, err.Error())
	}
	return n, nil
}

// Receive blocks until a datagram arrives, the configured receive
// timeout elapses, or the socket is closed. Transient errors
// (EAGAIN/EWOULDBLOCK/EINTR/ECONNREFUSED, surfaced by net as a timeout
// or syscall.Errno) are the caller's responsibility to classify via
// IsTransientRecvErr.
func (e *Endpoint) Receive(buf []byte, timeout time.Duration) (int, error) {
	if err := e.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, errors.Wrap(ErrRecvFail, err.Error())
	}
	return e.conn.Read(buf)
}

// IsTransientRecvErr reports whether err represents a transient,
// ignorable RX condition per spec.md §7: EAGAIN, EWOULDBLOCK, EINTR,
// ECONNREFUSED, or a read-deadline timeout.
func IsTransientRecvErr(err error) bool {
	if err == nil {
		return false
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EAGAIN ||
			errno == syscall.EWOULDBLOCK ||
			errno == syscall.EINTR ||
			errno == syscall.ECONNREFUSED
	}
	return false
}

// Close releases the underlying socket.
func (e *Endpoint) Close() error {
	return e.conn.Close()
}
