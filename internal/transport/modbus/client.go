// internal/transport/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
)

// Client is the register transport for one heater on one link.
// It serializes transactions because the bus is half-duplex.
type Client struct {
	mu      sync.Mutex
	handler handler
	client  registerClient
}

// handler is the part of a goburrow client handler the transport drives.
type handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// registerClient is the subset of modbus.Client used for holding registers.
type registerClient interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// RS485 mirrors serial.RS485Config for kernel-driven RTS direction control.
type RS485 struct {
	Enabled            bool
	DelayRtsBeforeSend time.Duration
	DelayRtsAfterSend  time.Duration
	RtsHighDuringSend  bool
	RtsHighAfterSend   bool
	RxDuringTx         bool
}

// Config is the link configuration.
//
// Endpoint is a serial device path (RTU) or tcp://host:port (Modbus TCP gateway).
// AssertTransmit and ReleaseTransmit are optional and bound to this link only.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration

	BaudRate int
	DataBits int
	StopBits int
	Parity   string
	RS485    RS485

	AssertTransmit  func() error
	ReleaseTransmit func() error

	// Logger receives goburrow frame traces. Nil disables them.
	Logger *log.Logger
}

const defaultTimeout = time.Second

// New creates a connected transport.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus transport: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	var h handler
	if addr, ok := tcpAddress(cfg.Endpoint); ok {
		th := modbus.NewTCPClientHandler(addr)
		th.SlaveId = cfg.UnitID
		th.Timeout = cfg.Timeout
		th.Logger = cfg.Logger
		h = th
	} else {
		rh := modbus.NewRTUClientHandler(cfg.Endpoint)
		rh.SlaveId = cfg.UnitID
		rh.Timeout = cfg.Timeout
		rh.Logger = cfg.Logger
		if cfg.BaudRate > 0 {
			rh.BaudRate = cfg.BaudRate
		}
		if cfg.DataBits > 0 {
			rh.DataBits = cfg.DataBits
		}
		if cfg.StopBits > 0 {
			rh.StopBits = cfg.StopBits
		}
		if cfg.Parity != "" {
			rh.Parity = cfg.Parity
		}
		rh.RS485 = serial.RS485Config{
			Enabled:            cfg.RS485.Enabled,
			DelayRtsBeforeSend: cfg.RS485.DelayRtsBeforeSend,
			DelayRtsAfterSend:  cfg.RS485.DelayRtsAfterSend,
			RtsHighDuringSend:  cfg.RS485.RtsHighDuringSend,
			RtsHighAfterSend:   cfg.RS485.RtsHighAfterSend,
			RxDuringTx:         cfg.RS485.RxDuringTx,
		}
		h = rh
	}

	h = withDirection(h, cfg.AssertTransmit, cfg.ReleaseTransmit)

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus transport: connect %s: %w", cfg.Endpoint, err)
	}

	return newClient(h), nil
}

func newClient(h handler) *Client {
	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}
}

// Close releases the underlying port or connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// ReadRegisters reads count holding registers starting at address.
func (c *Client) ReadRegisters(address, count uint16) ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.client.ReadHoldingRegisters(address, count)
	if err != nil {
		return nil, wrapError("read", address, err)
	}
	if len(raw) != 2*int(count) {
		return nil, wrapError("read", address, fmt.Errorf(
			"modbus: got %d bytes for %d registers", len(raw), count,
		))
	}
	return unpackRegisters(raw), nil
}

// WriteRegisters writes words to consecutive holding registers starting at address.
func (c *Client) WriteRegisters(address uint16, words []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	qty := uint16(len(words))
	payload := packRegisters(words)

	if _, err := c.client.WriteMultipleRegisters(address, qty, payload); err != nil {
		return wrapError("write", address, err)
	}
	return nil
}

func tcpAddress(endpoint string) (string, bool) {
	for _, scheme := range []string{"tcp://", "socket://"} {
		if strings.HasPrefix(endpoint, scheme) {
			return strings.TrimPrefix(endpoint, scheme), true
		}
	}
	return "", false
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
