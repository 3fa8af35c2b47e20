/*
@Description: Error taxonomy for the packet-plane runtime
*/

package rtlink

import "errors"

// Codec errors (C1)
var (
	ErrInvalidDataPointer = errors.New("rtlink: invalid data pointer")
	ErrDataTooLarge       = errors.New("rtlink: payload exceeds maximum data length")
	ErrBufferTooSmall     = errors.New("rtlink: buffer too small for encoded frame")
	ErrInvalidPacket      = errors.New("rtlink: malformed packet")
	ErrCrcMismatch        = errors.New("rtlink: crc32 mismatch")
)

// Link-health errors (C2)
var (
	ErrUnstableCommunication = errors.New("rtlink: unstable communication")
	ErrLossOfCommunication   = errors.New("rtlink: loss of communication")
)

// Socket errors (C4)
var (
	ErrSocketCreateFail = errors.New("rtlink: socket create failed")
	ErrBindFail         = errors.New("rtlink: bind failed")
	ErrConnectFail      = errors.New("rtlink: connect failed")
	ErrSendFail         = errors.New("rtlink: send failed")
	ErrRecvFail         = errors.New("rtlink: recv failed")
)

// Scheduler/timer errors (C7)
var (
	ErrTimerCreateFail = errors.New("rtlink: timer create failed")
	ErrSetTimeFail     = errors.New("rtlink: timer set failed")
	ErrReadFail        = errors.New("rtlink: timer read failed")
	ErrEventCreateFail = errors.New("rtlink: event create failed")
	ErrAddEventFail    = errors.New("rtlink: add event failed")
)

// Thread/affinity errors (C6)
var (
	ErrThreadCreateFail    = errors.New("rtlink: thread create failed")
	ErrSetAffinityFail     = errors.New("rtlink: set affinity failed")
	ErrSetSchedulerFail    = errors.New("rtlink: set scheduler failed")
	ErrSetSocketBufferFail = errors.New("rtlink: set socket buffer failed")
)
