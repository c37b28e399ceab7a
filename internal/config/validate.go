// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

const maxDeviceAddress = 247

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values mean "use the default" and are accepted here; Normalize fills them in.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if cfg.Device.Address > maxDeviceAddress {
		return fmt.Errorf("device.address %d out of range (1..%d)", cfg.Device.Address, maxDeviceAddress)
	}
	if cfg.Device.TimeoutMs < 0 {
		return fmt.Errorf("device.timeout_ms must not be negative")
	}

	// ------------------------------------------------------------
	// LINK
	// ------------------------------------------------------------

	l := cfg.Link

	if l.Baud < 0 {
		return fmt.Errorf("link.baud must be positive")
	}
	if l.DataBits != 0 && (l.DataBits < 5 || l.DataBits > 8) {
		return fmt.Errorf("link.data_bits %d out of range (5..8)", l.DataBits)
	}
	if l.StopBits != 0 && l.StopBits != 1 && l.StopBits != 2 {
		return fmt.Errorf("link.stop_bits %d invalid (1 or 2)", l.StopBits)
	}
	switch strings.ToUpper(l.Parity) {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("link.parity %q invalid (N, E or O)", l.Parity)
	}
	if l.RS485.DelayRtsBeforeSendMs < 0 || l.RS485.DelayRtsAfterSendMs < 0 {
		return fmt.Errorf("link.rs485 delays must not be negative")
	}

	// ------------------------------------------------------------
	// DIRECTION
	// ------------------------------------------------------------

	switch cfg.Direction.Mode {
	case "", DirectionNone:
	case DirectionGPIO:
		if cfg.Direction.GPIOValuePath == "" {
			return fmt.Errorf("direction.gpio_value_path is required when direction.mode is %q", DirectionGPIO)
		}
		if l.RS485.Enabled {
			return fmt.Errorf("direction.mode %q and link.rs485.enabled are mutually exclusive", DirectionGPIO)
		}
	default:
		return fmt.Errorf("direction.mode %q unknown (none or gpio)", cfg.Direction.Mode)
	}

	// ------------------------------------------------------------
	// POLL / LOG
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll.interval_ms must not be negative")
	}

	if cfg.Log.Level != "" {
		if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}
