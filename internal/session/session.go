// internal/session/session.go
package session

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/smartheater/internal/registers"
	"github.com/tamzrod/smartheater/internal/status"
)

// Transport abstracts the register transactions the session needs.
// The session depends on geometry only.
type Transport interface {
	ReadRegisters(address, count uint16) ([]uint16, error)
	WriteRegisters(address uint16, words []uint16) error
}

// Session drives exactly one heater over an exclusively owned transport.
//
// Every operation is one blocking transaction (operating time: three).
// The outcome of the most recent transaction is retained as the session status
// until the next transaction overwrites it or a caller clears it.
// Transactions are serialized; a session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	tr      Transport
	address uint8
	last    status.Code
	log     *log.Entry
}

// New creates a session for the device at address.
func New(tr Transport, address uint8) *Session {
	return &Session{
		tr:      tr,
		address: address,
		last:    status.Success,
		log:     log.WithField("unit", address),
	}
}

// Address returns the device address this session talks to.
func (s *Session) Address() uint8 { return s.address }

// Status returns the status of the last transaction.
// With clear set, the stored status is reset to Success after reading it.
func (s *Session) Status(clear bool) status.Code {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.last
	if clear {
		s.last = status.Success
	}
	return c
}

// ClearStatus resets the stored status to Success.
func (s *Session) ClearStatus() {
	s.mu.Lock()
	s.last = status.Success
	s.mu.Unlock()
}

// ---- transaction primitives (caller holds s.mu) ----

func (s *Session) read(d registers.Descriptor) ([]uint16, error) {
	words, err := s.tr.ReadRegisters(d.Address, uint16(d.Words))
	if err == nil && len(words) < d.Words {
		err = &status.Error{
			Code: status.Unknown,
			Err:  fmt.Errorf("short response: got %d words, want %d", len(words), d.Words),
		}
	}

	s.last = status.Classify(err)
	if err != nil {
		s.log.WithFields(log.Fields{
			"attribute": d.Name,
			"address":   fmt.Sprintf("0x%04X", d.Address),
			"status":    s.last,
		}).Debugf("read failed: %v", err)
		return nil, fmt.Errorf("read %s: %w", d.Name, status.Wrap(err))
	}
	return words, nil
}

func (s *Session) write(d registers.Descriptor, words []uint16) status.Code {
	err := s.tr.WriteRegisters(d.Address, words)

	s.last = status.Classify(err)
	if err != nil {
		s.log.WithFields(log.Fields{
			"attribute": d.Name,
			"address":   fmt.Sprintf("0x%04X", d.Address),
			"status":    s.last,
		}).Debugf("write failed: %v", err)
	}
	return s.last
}

// ---- errors ----

// ErrNotReadable is returned by Read for write-only attributes.
var ErrNotReadable = errors.New("session: attribute not readable")

// ErrNotWritable is returned by Write for read-only attributes.
var ErrNotWritable = errors.New("session: attribute not writable")

// ErrValueRange is returned by Write when a value does not fit the register width.
var ErrValueRange = errors.New("session: value does not fit register")
