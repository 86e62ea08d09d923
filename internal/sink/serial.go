// internal/sink/serial.go
package sink

import (
	"errors"
	"fmt"
	"io"
	"log"
	"syscall"
	"time"

	"github.com/goburrow/serial"
)

// Baud rates the bridge accepts. Anything else falls back to 115200.
var supportedBauds = map[int]bool{
	9600:   true,
	19200:  true,
	38400:  true,
	57600:  true,
	115200: true,
	230400: true,
	400000: true,
}

// Serial writes frames to a UART in raw 8N1 mode. The short read timeout
// keeps the stats-mode RX drain from stalling the tick loop.
type Serial struct {
	port serial.Port
	rx   []byte // partial debug line carried between drains
}

// OpenSerial opens the device at the requested baud rate, falling back to
// 115200 with a warning when the rate is not supported.
func OpenSerial(device string, baud int) (*Serial, error) {
	if !supportedBauds[baud] {
		log.Printf("serial: unsupported baud %d, falling back to 115200", baud)
		baud = 115200
	}
	port, err := serial.Open(&serial.Config{
		Address:  device,
		BaudRate: baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", device, err)
	}
	return &Serial{port: port, rx: make([]byte, 0, 256)}, nil
}

// Send writes the whole frame. EINTR retries immediately, EAGAIN retries
// after 1 ms, a zero-length write is an error, anything else is fatal.
func (s *Serial) Send(frame []byte) (bool, error) {
	off := 0
	for off < len(frame) {
		n, err := s.port.Write(frame[off:])
		if n > 0 {
			off += n
			continue
		}
		switch {
		case err == nil:
			return false, errors.New("serial: zero-length write")
		case errors.Is(err, syscall.EINTR):
			continue
		case errors.Is(err, syscall.EAGAIN), errors.Is(err, syscall.EWOULDBLOCK):
			time.Sleep(time.Millisecond)
			continue
		default:
			return false, fmt.Errorf("serial: write: %w", err)
		}
	}
	return true, nil
}

// Drain reads whatever the peer sent back and prints completed ASCII lines.
// Inbound traffic is debug output only; bytes beyond the line buffer drop.
func (s *Serial) Drain(out io.Writer) {
	var tmp [64]byte
	for {
		n, err := s.port.Read(tmp[:])
		for i := 0; i < n; i++ {
			if len(s.rx) < cap(s.rx) {
				s.rx = append(s.rx, tmp[i])
			}
			if tmp[i] == '\n' {
				out.Write(s.rx)
				s.rx = s.rx[:0]
			}
		}
		if err != nil || n == 0 {
			return
		}
	}
}

// Close releases the port.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}
