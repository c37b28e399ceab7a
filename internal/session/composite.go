// internal/session/composite.go
package session

import (
	"github.com/tamzrod/smartheater/internal/codec"
	"github.com/tamzrod/smartheater/internal/registers"
	"github.com/tamzrod/smartheater/internal/status"
)

// RelayConfiguration is the setup block of one relay.
type RelayConfiguration struct {
	ActualPower      uint16 `json:"actual_power"`
	OperatingSeconds uint32 `json:"operating_seconds"`
	SwitchingCycles  uint32 `json:"switching_cycles"`
	MinOnTime        uint16 `json:"min_on_time"`
	MinOffTime       uint16 `json:"min_off_time"`
}

// RelayOperatingTime holds the operating-seconds counter of every relay.
type RelayOperatingTime struct {
	Seconds [registers.RelayCount]uint32 `json:"seconds"`
}

// ErrorEntry is one record of the device error log.
type ErrorEntry struct {
	OperatingHour   uint32 `json:"operating_hour"`
	OperatingSecond uint16 `json:"operating_second"`
	Code            uint16 `json:"code"`
}

// Identity bundles the basic device information block.
type Identity struct {
	ManufacturerID  uint16 `json:"manufacturer_id"`
	ProductID       uint16 `json:"product_id"`
	ProductVersion  uint16 `json:"product_version"`
	FirmwareVersion uint16 `json:"firmware_version"`
	VendorName      string `json:"vendor_name"`
	ProductName     string `json:"product_name"`
	SerialNumber    string `json:"serial_number"`
	ProductionDate  uint32 `json:"production_date"`
}

// RelayConfiguration reads the 7-word configuration block of relay r (0: 500W, 1: 1000W, 2: 2000W).
// On failure the zero value is returned.
func (s *Session) RelayConfiguration(r int) (RelayConfiguration, error) {
	d, err := registers.RelayConfiguration(r)
	if err != nil {
		return RelayConfiguration{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.read(d)
	if err != nil {
		return RelayConfiguration{}, err
	}

	return RelayConfiguration{
		ActualPower:      w[registers.RelayOffsetActualPower],
		OperatingSeconds: codec.DecodeU32(codec.Words2(w[registers.RelayOffsetOperatingSeconds:])),
		SwitchingCycles:  codec.DecodeU32(codec.Words2(w[registers.RelayOffsetSwitchingCycles:])),
		MinOnTime:        w[registers.RelayOffsetMinOnTime],
		MinOffTime:       w[registers.RelayOffsetMinOffTime],
	}, nil
}

// SetRelayMinOnTime writes the minimum on-time (seconds) of relay r.
// An invalid index performs no transaction and leaves the session status untouched.
func (s *Session) SetRelayMinOnTime(r int, seconds uint16) status.Code {
	d, err := registers.RelayMinOnTime(r)
	if err != nil {
		return status.InvalidIndex
	}
	return s.writeWords(d, []uint16{seconds})
}

// SetRelayMinOffTime writes the minimum off-time (seconds) of relay r.
func (s *Session) SetRelayMinOffTime(r int, seconds uint16) status.Code {
	d, err := registers.RelayMinOffTime(r)
	if err != nil {
		return status.InvalidIndex
	}
	return s.writeWords(d, []uint16{seconds})
}

// RelayOperatingTime reads the counters of all relays, one transaction each.
// A failed counter stays zero; the first error is returned after all reads ran.
// The session status reflects the last of the three transactions.
func (s *Session) RelayOperatingTime() (RelayOperatingTime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out RelayOperatingTime
	var first error

	for r := 0; r < registers.RelayCount; r++ {
		d, _ := registers.RelayOperatingTime(r)

		w, err := s.read(d)
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		out.Seconds[r] = codec.DecodeU32(codec.Words2(w))
	}

	return out, first
}

// ErrorEntry reads error-log slot i (0..9). On failure the zero value is returned.
func (s *Session) ErrorEntry(i int) (ErrorEntry, error) {
	d, err := registers.ErrorData(i)
	if err != nil {
		return ErrorEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.read(d)
	if err != nil {
		return ErrorEntry{}, err
	}

	return ErrorEntry{
		OperatingHour:   codec.DecodeU32(codec.Words2(w[registers.ErrorOffsetOperatingHour:])),
		OperatingSecond: w[registers.ErrorOffsetOperatingSecond],
		Code:            w[registers.ErrorOffsetCode],
	}, nil
}

// ErrorLog reads every error-log slot in order.
// Failed slots stay zero; the first error is returned after all reads ran.
func (s *Session) ErrorLog() ([]ErrorEntry, error) {
	out := make([]ErrorEntry, registers.ErrorSlots)
	var first error

	for i := range out {
		e, err := s.ErrorEntry(i)
		if err != nil && first == nil {
			first = err
		}
		out[i] = e
	}
	return out, first
}

// Identity reads the basic device information block, one attribute per transaction.
// Failed fields hold their sentinel; the first error is returned after all reads ran.
func (s *Session) Identity() (Identity, error) {
	var id Identity
	var first error

	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	var err error
	id.ManufacturerID, err = s.ManufacturerID()
	keep(err)
	id.ProductID, err = s.ProductID()
	keep(err)
	id.ProductVersion, err = s.ProductVersion()
	keep(err)
	id.FirmwareVersion, err = s.FirmwareVersion()
	keep(err)
	id.VendorName, err = s.VendorName()
	keep(err)
	id.ProductName, err = s.ProductName()
	keep(err)
	id.SerialNumber, err = s.SerialNumber()
	keep(err)
	id.ProductionDate, err = s.ProductionDate()
	keep(err)

	return id, first
}
