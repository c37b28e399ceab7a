// cmd/smartheater/connect.go
package main

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/smartheater/internal/config"
	"github.com/tamzrod/smartheater/internal/direction"
	"github.com/tamzrod/smartheater/internal/session"
	"github.com/tamzrod/smartheater/internal/simulator"
	"github.com/tamzrod/smartheater/internal/transport/modbus"
)

// loadConfig runs the Load -> overrides -> Validate -> Normalize pipeline
// and applies the log level.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	// command-line overrides
	if portName != "" {
		cfg.Link.Endpoint = portName
	}
	if baudRate != 0 {
		cfg.Link.Baud = baudRate
	}
	if address != 0 {
		cfg.Device.Address = address
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	level, _ := log.ParseLevel(cfg.Log.Level)
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	if level >= log.DebugLevel {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return cfg, nil
}

// openSession builds the session for cfg.
// The returned closer releases the transport, the direction line and the frame-trace pipe.
func openSession(cfg *config.Config) (*session.Session, func() error, error) {
	if simulate {
		log.Info("using simulated heater")
		return session.New(simulator.NewHeater(), cfg.Device.Address), func() error { return nil }, nil
	}

	if cfg.Link.Endpoint == "" {
		return nil, nil, errors.New("no link endpoint: use --port or link.endpoint in the config file")
	}

	var closers []io.Closer

	// ---- direction control ----
	var line direction.Line = direction.Nop{}
	if cfg.Direction.Mode == config.DirectionGPIO {
		g, err := direction.OpenGPIO(cfg.Direction.GPIOValuePath, cfg.Direction.ActiveLow)
		if err != nil {
			return nil, nil, err
		}
		line = g
		closers = append(closers, g)
	}

	// ---- frame traces ----
	trace := log.StandardLogger().WriterLevel(log.DebugLevel)
	closers = append(closers, trace)

	mc := modbus.Config{
		Endpoint: cfg.Link.Endpoint,
		UnitID:   cfg.Device.Address,
		Timeout:  cfg.Device.Timeout(),
		BaudRate: cfg.Link.Baud,
		DataBits: cfg.Link.DataBits,
		StopBits: cfg.Link.StopBits,
		Parity:   cfg.Link.Parity,
		RS485: modbus.RS485{
			Enabled:            cfg.Link.RS485.Enabled,
			DelayRtsBeforeSend: time.Duration(cfg.Link.RS485.DelayRtsBeforeSendMs) * time.Millisecond,
			DelayRtsAfterSend:  time.Duration(cfg.Link.RS485.DelayRtsAfterSendMs) * time.Millisecond,
			RtsHighDuringSend:  cfg.Link.RS485.Enabled,
		},
		Logger: stdlog.New(trace, "modbus: ", 0),
	}
	if _, manual := line.(*direction.GPIO); manual {
		mc.AssertTransmit = line.AssertTransmit
		mc.ReleaseTransmit = line.ReleaseTransmit
	}

	tr, err := modbus.New(mc)
	if err != nil {
		closeAll(closers)
		return nil, nil, err
	}
	closers = append([]io.Closer{tr}, closers...)

	log.WithFields(log.Fields{
		"endpoint": cfg.Link.Endpoint,
		"unit":     cfg.Device.Address,
		"baud":     cfg.Link.Baud,
		"framing":  fmt.Sprintf("%d%s%d", cfg.Link.DataBits, cfg.Link.Parity, cfg.Link.StopBits),
	}).Debug("link open")

	return session.New(tr, cfg.Device.Address), func() error { return closeAll(closers) }, nil
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// withSession loads the configuration, opens a session and runs fn against it.
func withSession(fn func(*session.Session) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, closeFn, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.Warnf("close: %v", err)
		}
	}()

	return fn(s)
}
