// internal/transport/modbus/direction.go
package modbus

import "fmt"

// directedHandler brackets every frame with transceiver direction callbacks.
// Release always runs once assert succeeded, even if Send fails or panics.
type directedHandler struct {
	handler
	assert  func() error
	release func() error
}

func withDirection(h handler, assert, release func() error) handler {
	if assert == nil && release == nil {
		return h
	}
	return &directedHandler{handler: h, assert: assert, release: release}
}

func (d *directedHandler) Send(aduRequest []byte) (aduResponse []byte, err error) {
	if d.assert != nil {
		if err := d.assert(); err != nil {
			return nil, fmt.Errorf("modbus: assert transmit: %w", err)
		}
	}

	if d.release != nil {
		defer func() {
			if rerr := d.release(); rerr != nil && err == nil {
				err = fmt.Errorf("modbus: release transmit: %w", rerr)
			}
		}()
	}

	return d.handler.Send(aduRequest)
}
