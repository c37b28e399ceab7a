// internal/direction/direction.go
package direction

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Line drives the DE/RE input of an RS-485 transceiver.
// Assert enables the driver before a frame; Release returns the line to receive.
type Line interface {
	AssertTransmit() error
	ReleaseTransmit() error
	io.Closer
}

// GPIO drives a sysfs GPIO value file ("1" = transmit, "0" = receive).
// Each GPIO is bound to one transport; nothing is shared between links.
type GPIO struct {
	mu        sync.Mutex
	f         io.WriterAt
	closer    io.Closer
	path      string
	activeLow bool
}

// OpenGPIO opens the value file and puts the line into receive.
func OpenGPIO(path string, activeLow bool) (*GPIO, error) {
	if path == "" {
		return nil, errors.New("direction: gpio value path required")
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("direction: open %s: %w", path, err)
	}

	g := &GPIO{f: f, closer: f, path: path, activeLow: activeLow}
	if err := g.ReleaseTransmit(); err != nil {
		_ = f.Close()
		return nil, err
	}

	log.WithField("path", path).Debug("direction: gpio line ready")
	return g, nil
}

// AssertTransmit enables the transceiver driver.
func (g *GPIO) AssertTransmit() error { return g.set(true) }

// ReleaseTransmit disables the transceiver driver.
func (g *GPIO) ReleaseTransmit() error { return g.set(false) }

// Close releases the line and closes the value file.
func (g *GPIO) Close() error {
	relErr := g.ReleaseTransmit()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closer == nil {
		return relErr
	}
	err := g.closer.Close()
	g.closer = nil
	g.f = nil
	if err != nil {
		return err
	}
	return relErr
}

func (g *GPIO) set(transmit bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.f == nil {
		return fmt.Errorf("direction: %s closed", g.path)
	}

	level := transmit != g.activeLow
	v := []byte("0")
	if level {
		v = []byte("1")
	}

	if _, err := g.f.WriteAt(v, 0); err != nil {
		return fmt.Errorf("direction: write %s: %w", g.path, err)
	}
	return nil
}

// Nop is a Line for links whose transceiver switches direction by itself.
type Nop struct{}

func (Nop) AssertTransmit() error  { return nil }
func (Nop) ReleaseTransmit() error { return nil }
func (Nop) Close() error           { return nil }
