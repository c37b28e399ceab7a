// internal/config/normalize.go
package config

import "strings"

// Factory defaults of the heater's RS-485 interface.
const (
	DefaultAddress   uint8 = 247
	DefaultBaud            = 19200
	DefaultDataBits        = 8
	DefaultParity          = "N"
	DefaultStopBits        = 1
	DefaultTimeoutMs       = 1000
	DefaultListen          = ":8000"
	DefaultLogLevel        = "info"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if cfg.Device.Address == 0 {
		cfg.Device.Address = DefaultAddress
	}
	if cfg.Device.TimeoutMs == 0 {
		cfg.Device.TimeoutMs = DefaultTimeoutMs
	}

	// ------------------------------------------------------------
	// LINK
	// ------------------------------------------------------------

	if cfg.Link.Baud == 0 {
		cfg.Link.Baud = DefaultBaud
	}
	if cfg.Link.DataBits == 0 {
		cfg.Link.DataBits = DefaultDataBits
	}
	if cfg.Link.StopBits == 0 {
		cfg.Link.StopBits = DefaultStopBits
	}
	cfg.Link.Parity = strings.ToUpper(cfg.Link.Parity)
	if cfg.Link.Parity == "" {
		cfg.Link.Parity = DefaultParity
	}

	// ------------------------------------------------------------
	// DIRECTION / HTTP / LOG
	// ------------------------------------------------------------

	if cfg.Direction.Mode == "" {
		cfg.Direction.Mode = DirectionNone
	}
	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = DefaultListen
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
