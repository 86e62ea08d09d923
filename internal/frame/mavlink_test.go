// internal/frame/mavlink_test.go
package frame

import (
	"math/rand"
	"testing"

	"github.com/tamzrod/joystick2crsf/internal/rc"
)

// crcX25Ref is an independent X.25 CRC built the forward/reflect way, used
// to cross-check the right-shift implementation.
func crcX25Ref(data []byte) uint16 {
	reflect8 := func(b byte) byte {
		var r byte
		for i := 0; i < 8; i++ {
			if b&(1<<i) != 0 {
				r |= 1 << (7 - i)
			}
		}
		return r
	}
	reflect16 := func(v uint16) uint16 {
		var r uint16
		for i := 0; i < 16; i++ {
			if v&(1<<i) != 0 {
				r |= 1 << (15 - i)
			}
		}
		return r
	}

	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(reflect8(b)) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return reflect16(crc)
}

func TestCrcX25_KnownVector(t *testing.T) {
	// Check value for "123456789" without the final xor-out (the MCRF4XX
	// variant MAVLink uses); xoring with 0xFFFF yields the X.25 value 0x906E.
	got := crcX25([]byte("123456789"))
	if got != 0x6F91 {
		t.Fatalf("crcX25(123456789) = %#04x, want 0x6f91", got)
	}
	if got^0xFFFF != 0x906E {
		t.Fatalf("crcX25(123456789)^0xFFFF = %#04x, want 0x906e", got^0xFFFF)
	}
}

func TestCrcX25_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 500; iter++ {
		data := make([]byte, 18)
		rng.Read(data)
		if got, want := crcX25(data), crcX25Ref(data); got != want {
			t.Fatalf("iter %d: crcX25 = %#04x, want %#04x", iter, got, want)
		}
	}
}

func TestChannelToUS(t *testing.T) {
	cases := []struct {
		in   uint16
		want uint16
	}{
		{rc.ChanMin, 1000},
		{100, 1000}, // below range pegs
		{rc.ChanMax, 2000},
		{2000, 2000}, // above range pegs
	}
	for _, c := range cases {
		if got := channelToUS(c.in); got != c.want {
			t.Fatalf("channelToUS(%d) = %d, want %d", c.in, got, c.want)
		}
	}

	// Midpoint lands on 1500 within rounding.
	got := channelToUS(rc.ChanMid)
	if got < 1499 || got > 1501 {
		t.Fatalf("channelToUS(%d) = %d, want 1500 +/- 1", rc.ChanMid, got)
	}
}

func TestOverridePack_Layout(t *testing.T) {
	p := &OverridePacker{SysID: 255, CompID: 190, TargetSysID: 1, TargetCompID: 2}
	var ch rc.ChannelVector
	for i := range ch {
		ch[i] = rc.ChanMin
	}
	buf := make([]byte, BufferSize)

	n := p.Pack(ch, buf)
	if n != 30 {
		t.Fatalf("frame length = %d, want 30", n)
	}
	if buf[0] != 0xFD || buf[1] != 18 || buf[2] != 0 || buf[3] != 0 {
		t.Fatalf("header = % X", buf[:4])
	}
	if buf[4] != 0 {
		t.Fatalf("first seq = %d, want 0", buf[4])
	}
	if buf[5] != 255 || buf[6] != 190 {
		t.Fatalf("sysid/compid = %d/%d", buf[5], buf[6])
	}
	if buf[7] != 70 || buf[8] != 0 || buf[9] != 0 {
		t.Fatalf("msgid bytes = % X, want 46 00 00", buf[7:10])
	}
	if buf[10] != 1 || buf[11] != 2 {
		t.Fatalf("target ids = %d/%d", buf[10], buf[11])
	}
	for i := 0; i < 8; i++ {
		lo, hi := buf[12+2*i], buf[13+2*i]
		if us := uint16(lo) | uint16(hi)<<8; us != 1000 {
			t.Fatalf("channel %d = %d us, want 1000", i+1, us)
		}
	}

	// Trailing CRC folds payload, msgid LE24, and the CRC extra.
	crc := crcX25Ref(buf[10:28])
	for _, b := range []byte{70, 0, 0, mavCRCExtra} {
		crc = crcX25Byte(crc, b)
	}
	if got := uint16(buf[28]) | uint16(buf[29])<<8; got != crc {
		t.Fatalf("frame crc = %#04x, want %#04x", got, crc)
	}
}

func TestOverridePack_SeqWraps(t *testing.T) {
	p := &OverridePacker{}
	var ch rc.ChannelVector
	buf := make([]byte, BufferSize)

	for i := 0; i < 256; i++ {
		p.Pack(ch, buf)
		if buf[4] != byte(i) {
			t.Fatalf("seq = %d, want %d", buf[4], i)
		}
	}
	p.Pack(ch, buf)
	if buf[4] != 0 {
		t.Fatalf("seq did not wrap: %d", buf[4])
	}
}
