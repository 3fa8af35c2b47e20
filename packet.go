/*
@Description: Wire frame codec for the packet-plane runtime
*/

package rtlink

import (
	"encoding/binary"
	"hash/crc32"
)

const (
	// HeaderSize is unique_id(4) + lifesign(2) + data_length(2).
	HeaderSize = 8
	// FooterSize is the trailing crc32(4).
	FooterSize = 4
	// FrameOverhead is header + footer bytes around the payload.
	FrameOverhead = HeaderSize + FooterSize
	// MaxPayloadSize is the largest payload a frame may carry.
	MaxPayloadSize = 256
)

var crcTable = crc32.IEEETable

// TxPacket is the transmit-side view of the wire frame: a unique id, an
// auto-advancing lifesign, and a non-owning view of the current
// payload. Borrowed payload memory must outlive Encode.
type TxPacket struct {
	uniqueID uint32
	lifesign uint16
	data     []byte
	crc32    uint32
}

// NewTxPacket returns a TxPacket with the given identifier and lifesign
// starting at zero.
func NewTxPacket(uniqueID uint32) *TxPacket {
	return &TxPacket{uniqueID: uniqueID}
}

// SetDataPointer installs a non-owning view of the payload to encode
// next. The caller must keep the backing array alive until Encode
// returns.
func (p *TxPacket) SetDataPointer(data []byte) {
	p.data = data
}

// UniqueID returns the packet's identifier.
func (p *TxPacket) UniqueID() uint32 { return p.uniqueID }

// Lifesign returns the next lifesign value that Encode will emit.
func (p *TxPacket) Lifesign() uint16 { return p.lifesign }

// Crc32 returns the CRC emitted by the most recent Encode call.
func (p *TxPacket) Crc32() uint32 { return p.crc32 }

// Encode writes the wire frame into buf and returns the number of
// bytes written. On success the lifesign is post-incremented with
// natural 16-bit wraparound.
func (p *TxPacket) Encode(buf []byte) (int, error) {
	if buf == nil {
		return 0, ErrInvalidDataPointer
	}
	n := len(p.data)
	if n > MaxPayloadSize {
		return 0, ErrDataTooLarge
	}
	total := FrameOverhead + n
	if len(buf) < total {
		return 0, ErrBufferTooSmall
	}

	binary.LittleEndian.PutUint32(buf[0:4], p.uniqueID)
	binary.LittleEndian.PutUint16(buf[4:6], p.lifesign)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(n))
	if n > 0 {
		copy(buf[HeaderSize:HeaderSize+n], p.data)
	}

	crc := crc32.Checksum(buf[:HeaderSize+n], crcTable)
	binary.LittleEndian.PutUint32(buf[HeaderSize+n:HeaderSize+n+FooterSize], crc)

	p.crc32 = crc
	p.lifesign++ // wraps naturally at 16 bits
	return total, nil
}

// RxPacket is the receive-side view: the most recently decoded unique
// id and payload view, plus link-health state (§4.2). Decode never
// copies the payload; the returned view aliases buf and is valid only
// until the caller recycles it.
type RxPacket struct {
	uniqueID   uint32
	dataLength uint16
	data       []byte
	crc32      uint32

	health LinkHealth
}

// NewRxPacket returns an RxPacket with link-health defaults per
// spec.md §4.2 and seeds the monitor's creation time.
func NewRxPacket(cfg *Config) *RxPacket {
	p := &RxPacket{}
	p.health.init(cfg)
	return p
}

// Decode validates and parses buf as a wire frame. On success it
// updates the link-health monitor from the decoded lifesign and
// exposes a non-owning view of the payload within buf.
func (p *RxPacket) Decode(buf []byte) error {
	if len(buf) < HeaderSize+FooterSize {
		return ErrInvalidPacket
	}

	dataLength := binary.LittleEndian.Uint16(buf[6:8])
	if dataLength > MaxPayloadSize {
		return ErrDataTooLarge
	}
	total := FrameOverhead + int(dataLength)
	if len(buf) < total {
		return ErrInvalidPacket
	}

	crc := crc32.Checksum(buf[:HeaderSize+int(dataLength)], crcTable)
	wireCrc := binary.LittleEndian.Uint32(buf[HeaderSize+int(dataLength) : total])
	if crc != wireCrc {
		return ErrCrcMismatch
	}

	p.uniqueID = binary.LittleEndian.Uint32(buf[0:4])
	lifesign := binary.LittleEndian.Uint16(buf[4:6])
	p.dataLength = dataLength
	p.data = buf[HeaderSize : HeaderSize+int(dataLength)]
	p.crc32 = crc

	p.health.onDecode(lifesign)
	return nil
}

// UniqueID returns the most recently decoded identifier.
func (p *RxPacket) UniqueID() uint32 { return p.uniqueID }

// DataLength returns the most recently decoded payload length.
func (p *RxPacket) DataLength() uint16 { return p.dataLength }

// Data returns a non-owning view of the most recently decoded payload.
func (p *RxPacket) Data() []byte { return p.data }

// Crc32 returns the CRC validated by the most recent Decode call.
func (p *RxPacket) Crc32() uint32 { return p.crc32 }

// Health returns the link-health monitor driven by successful decodes.
func (p *RxPacket) Health() *LinkHealth { return &p.health }
