// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// helper to write a config file and load it
func loadString(t *testing.T, content string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "joystick2crfs.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Rate != 125 {
		t.Fatalf("default rate = %d", cfg.Rate)
	}
	if cfg.Protocol != ProtocolCRSF {
		t.Fatalf("default protocol = %v", cfg.Protocol)
	}
	if !cfg.UDPEnabled || cfg.UDPTarget != "192.168.0.1:14550" {
		t.Fatalf("default udp = %v %q", cfg.UDPEnabled, cfg.UDPTarget)
	}
	if cfg.ArmToggle != 4 {
		t.Fatalf("default arm_toggle slot = %d", cfg.ArmToggle)
	}
	for i, v := range cfg.Map {
		if v != i {
			t.Fatalf("default map[%d] = %d", i, v)
		}
	}
}

func TestLoad_BasicKeys(t *testing.T) {
	cfg := loadString(t, `
# comment line
rate = 250
protocol = mavlink
serial_enabled = yes
serial_device = /dev/ttyACM0
serial_baud = 57600
udp_enabled = off
sse_enabled = 1
sse_bind = *:8070
sse_path = /events
joystick_index = 2
rescan_interval = 10
`)
	if cfg.Rate != 250 {
		t.Fatalf("rate = %d", cfg.Rate)
	}
	if cfg.Protocol != ProtocolMavlink {
		t.Fatalf("protocol = %v", cfg.Protocol)
	}
	if !cfg.SerialEnabled || cfg.SerialDevice != "/dev/ttyACM0" || cfg.SerialBaud != 57600 {
		t.Fatalf("serial = %v %q %d", cfg.SerialEnabled, cfg.SerialDevice, cfg.SerialBaud)
	}
	if cfg.UDPEnabled {
		t.Fatalf("udp_enabled not switched off")
	}
	if !cfg.SSEEnabled || cfg.SSEBind != "*:8070" || cfg.SSEPath != "/events" {
		t.Fatalf("sse = %v %q %q", cfg.SSEEnabled, cfg.SSEBind, cfg.SSEPath)
	}
	if cfg.JoystickIndex != 2 || cfg.RescanInterval != 10 {
		t.Fatalf("joystick_index=%d rescan=%d", cfg.JoystickIndex, cfg.RescanInterval)
	}
}

func TestLoad_BoolLiterals(t *testing.T) {
	for _, lit := range []string{"1", "true", "YES", "On"} {
		cfg := loadString(t, "stats = "+lit+"\n")
		if !cfg.Stats {
			t.Fatalf("literal %q not true", lit)
		}
	}
	for _, lit := range []string{"0", "False", "no", "OFF"} {
		cfg := loadString(t, "udp_enabled = "+lit+"\n")
		if cfg.UDPEnabled {
			t.Fatalf("literal %q not false", lit)
		}
	}
	// Unparseable booleans keep the default.
	cfg := loadString(t, "udp_enabled = maybe\n")
	if !cfg.UDPEnabled {
		t.Fatalf("bad bool literal overwrote default")
	}
}

func TestLoad_Lists(t *testing.T) {
	cfg := loadString(t, `
map = 2,1,3
invert = 1,16
deadband = 100,200,-300
`)
	if cfg.Map[0] != 1 || cfg.Map[1] != 0 || cfg.Map[2] != 2 || cfg.Map[3] != 3 {
		t.Fatalf("map = %v", cfg.Map)
	}
	if !cfg.Invert[0] || !cfg.Invert[15] || cfg.Invert[1] {
		t.Fatalf("invert = %v", cfg.Invert)
	}
	if cfg.Dead[0] != 100 || cfg.Dead[1] != 200 || cfg.Dead[2] != 300 {
		t.Fatalf("deadband = %v", cfg.Dead)
	}
}

func TestLoad_ArmToggle(t *testing.T) {
	if cfg := loadString(t, "arm_toggle = 5\n"); cfg.ArmToggle != 4 {
		t.Fatalf("arm_toggle 5 -> %d", cfg.ArmToggle)
	}
	if cfg := loadString(t, "arm_toggle = 0\n"); cfg.ArmToggle != -1 {
		t.Fatalf("arm_toggle 0 -> %d", cfg.ArmToggle)
	}
	// Out of range keeps the default.
	if cfg := loadString(t, "arm_toggle = 42\n"); cfg.ArmToggle != 4 {
		t.Fatalf("arm_toggle 42 -> %d", cfg.ArmToggle)
	}
}

func TestLoad_ValuelessLineIgnored(t *testing.T) {
	// A bare key without '=' must not flip the flag or abort the load.
	cfg := loadString(t, "stats\nrate = 50\n")
	if cfg.Stats {
		t.Fatalf("value-less line set stats")
	}
	if cfg.Rate != 50 {
		t.Fatalf("rate = %d", cfg.Rate)
	}
}

func TestLoad_UnknownKeyTolerated(t *testing.T) {
	cfg := loadString(t, "no_such_key = 1\nrate = 50\n")
	if cfg.Rate != 50 {
		t.Fatalf("rate = %d", cfg.Rate)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.conf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate_Rate(t *testing.T) {
	for _, rate := range []int{50, 125, 250} {
		cfg := Defaults()
		cfg.Rate = rate
		if err := Validate(&cfg); err != nil {
			t.Fatalf("rate %d rejected: %v", rate, err)
		}
	}
	cfg := Defaults()
	cfg.Rate = 100
	if err := Validate(&cfg); err == nil {
		t.Fatalf("rate 100 accepted")
	}
}

func TestNormalize_Clamps(t *testing.T) {
	cfg := Defaults()
	cfg.MavlinkSysID = 300
	cfg.MavlinkCompID = -5
	cfg.RescanInterval = 0
	cfg.JoystickIndex = -1
	Normalize(&cfg)

	if cfg.MavlinkSysID != 255 {
		t.Fatalf("mavlink_sysid = %d", cfg.MavlinkSysID)
	}
	if cfg.MavlinkCompID != 0 {
		t.Fatalf("mavlink_compid = %d", cfg.MavlinkCompID)
	}
	if cfg.RescanInterval != 5 {
		t.Fatalf("rescan_interval = %d", cfg.RescanInterval)
	}
	if cfg.JoystickIndex != 0 {
		t.Fatalf("joystick_index = %d", cfg.JoystickIndex)
	}
}
