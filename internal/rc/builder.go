// internal/rc/builder.go
package rc

// Hat direction bitmask as reported by Controller.Hat.
const (
	HatUp    = 0x01
	HatRight = 0x02
	HatDown  = 0x04
	HatLeft  = 0x08
)

// Controller abstracts the attached game controller.
// The builder depends on per-tick primitive reads only.
type Controller interface {
	AxisCount() int
	ButtonCount() int
	HatCount() int
	Axis(i int) int32 // signed 16-bit reading
	Button(i int) bool
	Hat(i int) byte // Hat* bitmask
}

// Build samples the controller into the fixed slot layout:
//
//	0..3  axes 0, 1 (negated), 2, 5 (negated)
//	4..5  axes 3, 4
//	6..7  D-pad X, Y
//	8..15 buttons 0..7
//
// Deadbands apply per slot to axes 0..5 before scaling.
func Build(c Controller, dead [16]int) (ChannelVector, RawVector) {
	var ch ChannelVector
	var raw RawVector

	raw[0] = ClipDead(c.Axis(0), dead[0])
	raw[1] = ClipDead(c.Axis(1), dead[1])
	raw[2] = ClipDead(c.Axis(2), dead[2])
	raw[3] = ClipDead(c.Axis(5), dead[3])
	ch[0] = ScaleAxis(raw[0])
	ch[1] = ScaleAxis(-raw[1])
	ch[2] = ScaleAxis(raw[2])
	ch[3] = ScaleAxis(-raw[3])

	raw[4] = ClipDead(c.Axis(3), dead[4])
	raw[5] = ClipDead(c.Axis(4), dead[5])
	ch[4] = ScaleAxis(raw[4])
	ch[5] = ScaleAxis(raw[5])

	dpx, dpy := dpad(c)
	raw[6] = int32(dpx) * 32767
	raw[7] = int32(dpy) * 32767
	ch[6] = ScaleAxis(raw[6])
	ch[7] = ScaleAxis(raw[7])

	for i := 8; i < 16; i++ {
		if c.Button(i - 8) {
			raw[i] = 1
		}
		ch[i] = ScaleBool(raw[i] != 0)
	}

	return ch, raw
}

// dpad resolves the D-pad as {-1,0,+1} per axis. Priority: hat 0, then
// spare axes 6/7, then buttons 11..14 on pads that expose the D-pad that way.
func dpad(c Controller) (x, y int) {
	switch {
	case c.HatCount() > 0:
		h := c.Hat(0)
		if h&HatRight != 0 {
			x = 1
		} else if h&HatLeft != 0 {
			x = -1
		}
		if h&HatUp != 0 {
			y = 1
		} else if h&HatDown != 0 {
			y = -1
		}

	case c.AxisCount() >= 8:
		x = int(c.Axis(6) / 32767)
		y = int(-c.Axis(7) / 32767)

	case c.ButtonCount() >= 15:
		if c.Button(11) {
			y = 1
		} else if c.Button(12) {
			y = -1
		}
		if c.Button(13) {
			x = -1
		} else if c.Button(14) {
			x = 1
		}
	}
	return x, y
}
