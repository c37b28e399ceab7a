// internal/transport/modbus/errors.go
package modbus

import (
	"errors"
	"fmt"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"

	"github.com/tamzrod/smartheater/internal/status"
)

// wrapError classifies a goburrow failure into a status-coded error.
func wrapError(op string, address uint16, err error) error {
	code := status.Classify(err)

	var me *modbus.ModbusError
	switch {
	case errors.As(err, &me):
		code = status.FromException(me.ExceptionCode)
	case errors.Is(err, serial.ErrTimeout):
		code = status.Timeout
	}

	return &status.Error{
		Code: code,
		Err:  fmt.Errorf("modbus %s 0x%04X: %w", op, address, err),
	}
}
