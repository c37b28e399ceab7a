// internal/status/classify.go
package status

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
)

// Classify extracts a best-effort status code from an error without assuming concrete types.
// Errors that expose no code and are not recognizable timeouts map to Unknown.
func Classify(err error) Code {
	if err == nil {
		return Success
	}

	type coder interface{ StatusCode() Code }
	type exceptionCoder interface{ ExceptionCode() uint8 }

	var c coder
	if errors.As(err, &c) {
		return c.StatusCode()
	}
	var e exceptionCoder
	if errors.As(err, &e) {
		return FromException(e.ExceptionCode())
	}

	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Timeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return Timeout
	case strings.Contains(msg, "crc"):
		return CRCError
	}

	return Unknown
}

// FromException maps a Modbus exception code reported by the device.
func FromException(code uint8) Code {
	switch code {
	case 0x02:
		return IllegalAddress
	case 0x03:
		return IllegalValue
	default:
		return Unknown
	}
}

// Error is a transaction failure with its classified code.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "transaction failed: " + e.Code.String()
	}
	return "transaction failed: " + e.Code.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode implements the coder contract used by Classify.
func (e *Error) StatusCode() Code { return e.Code }

// Wrap attaches the classified code to err. A nil err stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Code: Classify(err), Err: err}
}
