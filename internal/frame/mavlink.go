// internal/frame/mavlink.go
package frame

import "github.com/tamzrod/joystick2crsf/internal/rc"

// MAVLink v2 RC_CHANNELS_OVERRIDE framing.
const (
	mavSTX        = 0xFD
	mavMsgID      = 70 // RC_CHANNELS_OVERRIDE
	mavPayloadLen = 18 // target ids + 8 channels LE16
	mavHdrLen     = 10
	mavFrameLen   = mavHdrLen + mavPayloadLen + 2

	// CRC extra for msgid 70, folded into the checksum so receivers detect
	// message-definition drift.
	mavCRCExtra = 124

	mavMinUS = 1000
	mavMaxUS = 2000
)

// OverridePacker emits MAVLink RC_CHANNELS_OVERRIDE frames carrying the
// first 8 output channels in microseconds. The sequence counter wraps at 256
// and persists for the packer's lifetime.
type OverridePacker struct {
	SysID        uint8
	CompID       uint8
	TargetSysID  uint8
	TargetCompID uint8

	seq uint8
}

func (p *OverridePacker) Pack(ch rc.ChannelVector, dst []byte) int {
	dst[0] = mavSTX
	dst[1] = mavPayloadLen
	dst[2] = 0 // incompat flags
	dst[3] = 0 // compat flags
	dst[4] = p.seq
	dst[5] = p.SysID
	dst[6] = p.CompID
	dst[7] = byte(mavMsgID)
	dst[8] = byte(mavMsgID >> 8)
	dst[9] = byte(mavMsgID >> 16)
	p.seq++

	off := mavHdrLen
	dst[off] = p.TargetSysID
	dst[off+1] = p.TargetCompID
	off += 2
	for i := 0; i < 8; i++ {
		us := channelToUS(ch[i])
		dst[off] = byte(us)
		dst[off+1] = byte(us >> 8)
		off += 2
	}

	crc := crcX25(dst[mavHdrLen : mavHdrLen+mavPayloadLen])
	crc = crcX25Byte(crc, byte(mavMsgID))
	crc = crcX25Byte(crc, byte(mavMsgID>>8))
	crc = crcX25Byte(crc, byte(mavMsgID>>16))
	crc = crcX25Byte(crc, mavCRCExtra)
	dst[off] = byte(crc)
	dst[off+1] = byte(crc >> 8)
	return off + 2
}

// channelToUS converts an RC channel value to a pulse width in microseconds,
// pegging at the endpoints and rounding half-up in between.
func channelToUS(v uint16) uint16 {
	if v <= rc.ChanMin {
		return mavMinUS
	}
	if v >= rc.ChanMax {
		return mavMaxUS
	}
	const span = rc.ChanMax - rc.ChanMin
	scaled := (int32(v-rc.ChanMin)*(mavMaxUS-mavMinUS) + span/2) / span
	out := int32(mavMinUS) + scaled
	if out < mavMinUS {
		out = mavMinUS
	} else if out > mavMaxUS {
		out = mavMaxUS
	}
	return uint16(out)
}
