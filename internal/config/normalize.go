// internal/config/normalize.go
package config

import "log"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.RescanInterval <= 0 {
		cfg.RescanInterval = 5
	}
	if cfg.JoystickIndex < 0 {
		cfg.JoystickIndex = 0
	}
	if cfg.ArmToggle < -1 || cfg.ArmToggle > 15 {
		cfg.ArmToggle = -1
	}

	clampID(&cfg.MavlinkSysID, "mavlink_sysid")
	clampID(&cfg.MavlinkCompID, "mavlink_compid")
	clampID(&cfg.MavlinkTargetSysID, "mavlink_target_sysid")
	clampID(&cfg.MavlinkTargetCompID, "mavlink_target_compid")
}

func clampID(v *int, name string) {
	if *v >= 0 && *v <= 255 {
		return
	}
	log.Printf("config: %s must be 0-255; clamping", name)
	if *v < 0 {
		*v = 0
	} else {
		*v = 255
	}
}
