// internal/pad/pad.go
package pad

import (
	"fmt"

	"github.com/0xcafed00d/joystick"
)

// Device wraps one attached game controller behind rc.Controller. One Update
// per tick refreshes the cached state; everything else reads the cache.
//
// The joystick backend folds hat switches into spare axes on Linux, so
// HatCount reports zero and the D-pad resolves through the axis fallback.
type Device struct {
	js    joystick.Joystick
	index int
	state joystick.State
}

// Open attaches to the controller at the given index.
func Open(index int) (*Device, error) {
	js, err := joystick.Open(index)
	if err != nil {
		return nil, fmt.Errorf("pad: open joystick %d: %w", index, err)
	}
	return &Device{js: js, index: index}, nil
}

// Name reports the controller's self-described name.
func (d *Device) Name() string { return d.js.Name() }

// Update samples the controller. An error means the device detached.
func (d *Device) Update() error {
	state, err := d.js.Read()
	if err != nil {
		return fmt.Errorf("pad: joystick %d: %w", d.index, err)
	}
	d.state = state
	return nil
}

func (d *Device) AxisCount() int   { return d.js.AxisCount() }
func (d *Device) ButtonCount() int { return d.js.ButtonCount() }
func (d *Device) HatCount() int    { return 0 }

func (d *Device) Axis(i int) int32 {
	if i < 0 || i >= len(d.state.AxisData) {
		return 0
	}
	return int32(d.state.AxisData[i])
}

func (d *Device) Button(i int) bool {
	if i < 0 || i >= 32 {
		return false
	}
	return d.state.Buttons&(1<<uint(i)) != 0
}

func (d *Device) Hat(i int) byte { return 0 }

// Close releases the controller handle.
func (d *Device) Close() {
	if d.js != nil {
		d.js.Close()
		d.js = nil
	}
}
