// internal/frame/crsf.go
package frame

import "github.com/tamzrod/joystick2crsf/internal/rc"

// CRSF RC_CHANNELS_PACKED frame geometry.
const (
	crsfDest         = 0xC8
	crsfTypeChannels = 0x16
	crsfPayloadLen   = 22 // 16 channels x 11 bits
	crsfFrameLen     = 24 // length byte value: type + payload + crc
	crsfTotalLen     = crsfFrameLen + 2
)

// BufferSize is the largest frame any Packer emits; callers size their
// scratch buffer with it once and reuse it every emission.
const BufferSize = mavFrameLen

// Packer turns a channel vector into one wire frame. Implementations write
// into dst (at least BufferSize bytes) and return the frame length.
type Packer interface {
	Pack(ch rc.ChannelVector, dst []byte) int
}

// ChannelsPacker emits the 26-byte CRSF channels frame.
type ChannelsPacker struct{}

func (ChannelsPacker) Pack(ch rc.ChannelVector, dst []byte) int {
	dst[0] = crsfDest
	dst[1] = crsfFrameLen
	dst[2] = crsfTypeChannels
	packChannels(ch, dst[3:3+crsfPayloadLen])
	dst[crsfFrameLen+1] = crc8(dst[2 : crsfFrameLen+1])
	return crsfTotalLen
}

// packChannels bit-packs 16 11-bit values little-endian: slot 0 occupies
// bits 0..10 of the payload, slot 1 starts at bit 11, and so on.
func packChannels(ch rc.ChannelVector, out []byte) {
	for i := range out {
		out[i] = 0
	}
	bit := uint(0)
	for i := 0; i < 16; i++ {
		byteIdx := bit >> 3
		off := bit & 7
		v := uint32(ch[i]) & 0x7FF

		out[byteIdx] |= byte(v << off)
		if byteIdx+1 < crsfPayloadLen {
			out[byteIdx+1] |= byte(v >> (8 - off))
		}
		if off >= 6 && byteIdx+2 < crsfPayloadLen {
			out[byteIdx+2] |= byte(v >> (16 - off))
		}
		bit += 11
	}
}
