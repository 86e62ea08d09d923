// internal/config/config.go
package config

// Protocol selects the wire frame family.
type Protocol int

const (
	ProtocolCRSF Protocol = iota
	ProtocolMavlink
)

func (p Protocol) String() string {
	if p == ProtocolMavlink {
		return "mavlink"
	}
	return "crsf"
}

// Config is the full runtime configuration. It is loaded once per supervisor
// cycle and never mutated afterwards.
type Config struct {
	Rate       int // 50 | 125 | 250 Hz
	Stats      bool
	Simulation bool // suppresses serial open
	Channels   bool // print channel dump every emission
	Protocol   Protocol

	SerialEnabled bool
	SerialDevice  string
	SerialBaud    int

	UDPEnabled bool
	UDPTarget  string // host:port or [ipv6]:port

	SSEEnabled bool
	SSEBind    string // host:port; empty host or "*" binds the wildcard
	SSEPath    string

	MavlinkSysID        int
	MavlinkCompID       int
	MavlinkTargetSysID  int
	MavlinkTargetCompID int

	Map    [16]int  // output slot -> source slot
	Invert [16]bool // per output slot
	Dead   [16]int  // per slot deadband, non-negative

	ArmToggle      int // slot index, -1 disables
	JoystickIndex  int
	RescanInterval int // seconds
}

// Defaults returns the built-in configuration used before any file is read.
func Defaults() Config {
	cfg := Config{
		Rate:                125,
		Protocol:            ProtocolCRSF,
		SerialDevice:        "/dev/ttyUSB0",
		SerialBaud:          115200,
		UDPEnabled:          true,
		UDPTarget:           "192.168.0.1:14550",
		SSEBind:             "127.0.0.1:8070",
		SSEPath:             "/sse",
		MavlinkSysID:        255,
		MavlinkCompID:       190,
		MavlinkTargetSysID:  1,
		MavlinkTargetCompID: 1,
		ArmToggle:           4,
		RescanInterval:      5,
	}
	for i := range cfg.Map {
		cfg.Map[i] = i
	}
	return cfg
}
