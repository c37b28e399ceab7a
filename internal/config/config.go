// internal/config/config.go
package config

import "time"

type Config struct {
	Device    DeviceConfig    `yaml:"device"`
	Link      LinkConfig      `yaml:"link"`
	Direction DirectionConfig `yaml:"direction"`
	Poll      PollConfig      `yaml:"poll"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Address   uint8 `yaml:"address"` // 0 = factory default (247)
	TimeoutMs int   `yaml:"timeout_ms"`
}

// Timeout returns the per-transaction response timeout.
func (d DeviceConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutMs) * time.Millisecond
}

// ---- LINK ----

type LinkConfig struct {
	// Endpoint is a serial device path, or tcp://host:port for an RTU-over-TCP gateway.
	Endpoint string      `yaml:"endpoint"`
	Baud     int         `yaml:"baud"`
	DataBits int         `yaml:"data_bits"`
	Parity   string      `yaml:"parity"` // N | E | O
	StopBits int         `yaml:"stop_bits"`
	RS485    RS485Config `yaml:"rs485"`
}

// RS485Config selects kernel-driven RTS direction control.
type RS485Config struct {
	Enabled              bool `yaml:"enabled"`
	DelayRtsBeforeSendMs int  `yaml:"delay_rts_before_send_ms"`
	DelayRtsAfterSendMs  int  `yaml:"delay_rts_after_send_ms"`
}

// ---- DIRECTION ----

const (
	DirectionNone = "none"
	DirectionGPIO = "gpio"
)

// DirectionConfig selects manual transceiver direction control.
type DirectionConfig struct {
	Mode          string `yaml:"mode"`
	GPIOValuePath string `yaml:"gpio_value_path"`
	ActiveLow     bool   `yaml:"active_low"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"` // 0 disables polling
}

func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// ---- HTTP ----

type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
}
