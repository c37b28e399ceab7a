// internal/status/classify_test.go
package status

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type exceptionErr struct{ code uint8 }

func (e exceptionErr) Error() string        { return fmt.Sprintf("exception %d", e.code) }
func (e exceptionErr) ExceptionCode() uint8 { return e.code }

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Success},
		{"coder", &Error{Code: CRCError}, CRCError},
		{"wrapped coder", fmt.Errorf("read: %w", &Error{Code: IllegalValue}), IllegalValue},
		{"exception 2", exceptionErr{2}, IllegalAddress},
		{"exception 3", exceptionErr{3}, IllegalValue},
		{"exception 4", exceptionErr{4}, Unknown},
		{"deadline", fmt.Errorf("read: %w", os.ErrDeadlineExceeded), Timeout},
		{"context", context.DeadlineExceeded, Timeout},
		{"net timeout", timeoutErr{}, Timeout},
		{"serial timeout text", errors.New("serial: timeout"), Timeout},
		{"crc text", errors.New("modbus: response crc '1' does not match expected '2'"), CRCError},
		{"other", errors.New("boom"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil))

	base := errors.New("serial: timeout")
	err := Wrap(base)
	assert.Equal(t, Timeout, Classify(err))
	assert.ErrorIs(t, err, base)

	// already classified errors keep their code
	pre := &Error{Code: IllegalAddress, Err: base}
	assert.Same(t, pre, Wrap(pre))
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "illegal-address", IllegalAddress.String())
	assert.Equal(t, "transport-timeout", Timeout.String())
	assert.Equal(t, "unknown", Code(0x77).String())
	assert.True(t, Success.OK())
	assert.False(t, Timeout.OK())

	b, err := CRCError.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "transport-crc-error", string(b))
}
