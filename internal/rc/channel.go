// internal/rc/channel.go
package rc

// RC channel value range as used on the wire. ChanMid is the value a
// centered stick produces; the range midpoint rounds up to match it.
const (
	ChanMin = 172
	ChanMax = 1811
	ChanMid = (ChanMin + ChanMax + 1) / 2 // 992

	chanRange = ChanMax - ChanMin
)

// ChannelVector is one frame's worth of scaled channel values.
// Every element stays within [ChanMin, ChanMax].
type ChannelVector [16]uint16

// RawVector carries the pre-scaling controller readings for the same slots:
// axes in [-32768, 32767], buttons in {0,1}, D-pad in {-32767, 0, 32767}.
type RawVector [16]int32

// ScaleAxis maps a signed 16-bit axis reading onto the RC channel range.
// Endpoints peg exactly; interior values round half-up.
func ScaleAxis(v int32) uint16 {
	if v <= -32768 {
		return ChanMin
	}
	if v >= 32767 {
		return ChanMax
	}
	shifted := uint64(v + 32768)
	rounded := (shifted*chanRange + 32767) / 65535
	out := uint32(ChanMin + rounded)
	if out > ChanMax {
		out = ChanMax
	}
	return uint16(out)
}

// ScaleBool maps a digital input to the channel endpoints.
func ScaleBool(on bool) uint16 {
	if on {
		return ChanMax
	}
	return ChanMin
}

// ClipDead zeroes values strictly inside the symmetric deadband.
// A non-positive threshold disables the band.
func ClipDead(v int32, thr int) int32 {
	if thr > 0 && v > -int32(thr) && v < int32(thr) {
		return 0
	}
	return v
}

// Invert reflects a channel value about the mechanical center.
func Invert(v uint16) uint16 {
	return ChanMin + ChanMax - v
}
