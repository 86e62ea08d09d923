// internal/rc/arm.go
package rc

import "time"

// Press-to-latch thresholds: a source value above armThreshold counts as a
// press, and a press held for armHoldTime latches.
const (
	armThreshold = 1709
	armHoldTime  = 1000 * time.Millisecond
)

// ArmLatch is the sticky-arm state for one output slot. A long press latches
// the channel HIGH; once latched, a brief tap releases it. Zero value is
// disarmed.
type ArmLatch struct {
	sticky      bool
	pressActive bool
	pressStart  time.Time
}

// Update advances the latch with the post-map source value for the arm slot
// and reports whether the output is engaged (HIGH).
func (a *ArmLatch) Update(input uint16, now time.Time) bool {
	high := input > armThreshold
	if high {
		if !a.pressActive {
			a.pressStart = now
			a.pressActive = true
		} else if !a.sticky {
			if now.Sub(a.pressStart) >= armHoldTime {
				a.sticky = true
			}
		}
	} else if a.pressActive {
		if a.sticky && now.Sub(a.pressStart) < armHoldTime {
			a.sticky = false
		}
		a.pressActive = false
	}
	return a.sticky || high
}

// Apply overwrites the arm slot with the latch outcome, honoring the slot's
// inversion, and mirrors 1/0 into the raw vector.
func (a *ArmLatch) Apply(ch *ChannelVector, raw *RawVector, slot int, engaged, inverted bool) {
	highValue := uint16(ChanMax)
	lowValue := uint16(ChanMin)
	if inverted {
		highValue, lowValue = lowValue, highValue
	}
	if engaged {
		ch[slot] = highValue
		raw[slot] = 1
	} else {
		ch[slot] = lowValue
		raw[slot] = 0
	}
}
