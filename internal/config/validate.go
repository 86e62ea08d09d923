// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	switch cfg.Rate {
	case 50, 125, 250:
	default:
		return fmt.Errorf("config: rate must be 50, 125, or 250 (got %d)", cfg.Rate)
	}
	return nil
}
