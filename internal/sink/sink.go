// internal/sink/sink.go
package sink

import (
	"errors"
	"syscall"
)

// Dispatcher owns the optional wire sinks and fans one packed frame out per
// emitting tick. Transient conditions are absorbed inside the sinks; an error
// from Dispatch is fatal for the whole loop.
type Dispatcher struct {
	Serial *Serial
	UDP    *UDP

	SerialCount uint64
	UDPCount    uint64
}

// Dispatch sends the frame to every configured sink, UDP first.
func (d *Dispatcher) Dispatch(frame []byte) error {
	if d.UDP != nil {
		sent, err := d.UDP.Send(frame)
		if err != nil {
			return err
		}
		if sent {
			d.UDPCount++
		}
	}
	if d.Serial != nil {
		sent, err := d.Serial.Send(frame)
		if err != nil {
			return err
		}
		if sent {
			d.SerialCount++
		}
	}
	return nil
}

// Active reports whether any wire sink is configured.
func (d *Dispatcher) Active() bool {
	return d.Serial != nil || d.UDP != nil
}

// ResetCounts clears the per-second frame counters.
func (d *Dispatcher) ResetCounts() {
	d.SerialCount = 0
	d.UDPCount = 0
}

// isTransient reports whether err is a retryable kernel condition.
func isTransient(err error) bool {
	return errors.Is(err, syscall.EINTR) ||
		errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EWOULDBLOCK)
}
