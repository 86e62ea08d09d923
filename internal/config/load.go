// internal/config/load.go
package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Load reads the key=value configuration file on top of Defaults().
// Unknown keys and unparseable values warn and keep the previous value; the
// only load-time failure is an unreadable file. Validate and Normalize run
// afterwards.
func Load(path string) (*Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		SkipUnrecognizableLines: true, // a line without '=' is ignored, not an error
	}, path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}

	cfg := Defaults()
	for _, key := range f.Section("").Keys() {
		name := key.Name()
		val := strings.TrimSpace(key.String())

		switch name {
		case "rate":
			cfg.Rate = atoi(val)
		case "stats":
			setBool(&cfg.Stats, val)
		case "simulation":
			setBool(&cfg.Simulation, val)
		case "channels":
			setBool(&cfg.Channels, val)
		case "protocol":
			switch strings.ToLower(val) {
			case "crsf":
				cfg.Protocol = ProtocolCRSF
			case "mavlink":
				cfg.Protocol = ProtocolMavlink
			default:
				log.Printf("config: %s: protocol must be 'crsf' or 'mavlink'", path)
			}
		case "serial_enabled":
			setBool(&cfg.SerialEnabled, val)
		case "serial_device":
			cfg.SerialDevice = val
		case "serial_baud":
			cfg.SerialBaud = atoi(val)
		case "udp_enabled":
			setBool(&cfg.UDPEnabled, val)
		case "udp_target":
			cfg.UDPTarget = val
		case "sse_enabled":
			setBool(&cfg.SSEEnabled, val)
		case "sse_bind":
			cfg.SSEBind = val
		case "sse_path":
			cfg.SSEPath = val
		case "arm_toggle":
			switch n := atoi(val); {
			case n >= 1 && n <= 16:
				cfg.ArmToggle = n - 1
			case n <= 0:
				cfg.ArmToggle = -1
			default:
				log.Printf("config: %s: arm_toggle must be 1-16 (or 0 to disable)", path)
			}
		case "mavlink_sysid":
			cfg.MavlinkSysID = atoi(val)
		case "mavlink_compid":
			cfg.MavlinkCompID = atoi(val)
		case "mavlink_target_sysid":
			cfg.MavlinkTargetSysID = atoi(val)
		case "mavlink_target_compid":
			cfg.MavlinkTargetCompID = atoi(val)
		case "map":
			cfg.Map = parseMapList(val)
		case "invert":
			cfg.Invert = parseInvertList(val)
		case "deadband":
			cfg.Dead = parseDeadList(val)
		case "joystick_index":
			cfg.JoystickIndex = atoi(val)
		case "rescan_interval":
			cfg.RescanInterval = atoi(val)
		default:
			log.Printf("config: %s: unknown key %q", path, name)
		}
	}

	return &cfg, nil
}

// atoi parses a decimal integer, tolerating garbage as zero.
func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// setBool assigns the recognized boolean literals and leaves dst untouched
// otherwise.
func setBool(dst *bool, s string) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	}
}

// parseMapList parses "map": up to 16 comma-separated 1-based source slots.
// Missing or out-of-range entries stay identity.
func parseMapList(s string) [16]int {
	var out [16]int
	for i := range out {
		out[i] = i
	}
	if s == "" {
		return out
	}
	for idx, tok := range strings.Split(s, ",") {
		if idx >= 16 {
			break
		}
		if v := atoi(tok); v >= 1 && v <= 16 {
			out[idx] = v - 1
		}
	}
	return out
}

// parseInvertList parses "invert": comma-separated 1-based slot indices.
func parseInvertList(s string) [16]bool {
	var out [16]bool
	if s == "" {
		return out
	}
	for _, tok := range strings.Split(s, ",") {
		if v := atoi(tok); v >= 1 && v <= 16 {
			out[v-1] = true
		}
	}
	return out
}

// parseDeadList parses "deadband": up to 16 positional thresholds.
func parseDeadList(s string) [16]int {
	var out [16]int
	if s == "" {
		return out
	}
	for i, tok := range strings.Split(s, ",") {
		if i >= 16 {
			break
		}
		v := atoi(tok)
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}
