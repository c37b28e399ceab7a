// internal/session/scalar.go
package session

import (
	"github.com/tamzrod/smartheater/internal/codec"
	"github.com/tamzrod/smartheater/internal/registers"
	"github.com/tamzrod/smartheater/internal/status"
)

func (s *Session) readU16(a registers.Attribute) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.read(registers.MustLookup(a))
	if err != nil {
		return SentinelU16, err
	}
	return codec.DecodeU16(w[0]), nil
}

func (s *Session) readI16(a registers.Attribute) (int16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.read(registers.MustLookup(a))
	if err != nil {
		return SentinelI16(a), err
	}
	return codec.DecodeI16(w[0]), nil
}

func (s *Session) readU32(a registers.Attribute) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.read(registers.MustLookup(a))
	if err != nil {
		return SentinelU32, err
	}
	return codec.DecodeU32(codec.Words2(w)), nil
}

func (s *Session) readI32(a registers.Attribute) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.read(registers.MustLookup(a))
	if err != nil {
		return SentinelI32, err
	}
	return codec.DecodeI32(codec.Words2(w)), nil
}

func (s *Session) readText(a registers.Attribute) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.read(registers.MustLookup(a))
	if err != nil {
		return SentinelText, err
	}
	return codec.DecodeText32(codec.Words16(w)), nil
}

func (s *Session) writeWords(d registers.Descriptor, words []uint16) status.Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(d, words)
}

// ---- basic device information ----

// ManufacturerID reads 0x2000. E.G.O. heaters report 0x14EF.
func (s *Session) ManufacturerID() (uint16, error) { return s.readU16(registers.ManufacturerID) }

// ProductID reads the E.G.O. product id.
func (s *Session) ProductID() (uint16, error) { return s.readU16(registers.ProductID) }

// ProductVersion reads the E.G.O. variant id.
func (s *Session) ProductVersion() (uint16, error) { return s.readU16(registers.ProductVersion) }

// FirmwareVersion reads the firmware revision (0x64 = 1.00).
func (s *Session) FirmwareVersion() (uint16, error) { return s.readU16(registers.FirmwareVersion) }

func (s *Session) VendorName() (string, error)   { return s.readText(registers.VendorName) }
func (s *Session) ProductName() (string, error)  { return s.readText(registers.ProductName) }
func (s *Session) SerialNumber() (string, error) { return s.readText(registers.SerialNumber) }

// ProductionDate reads the BCD-encoded assembly date (0xYYYYMMDD).
// Use codec.BCDDate to interpret it.
func (s *Session) ProductionDate() (uint32, error) { return s.readU32(registers.ProductionDate) }

// RelayCount reads the number of relays fitted. Should be 3.
func (s *Session) RelayCount() (uint16, error) { return s.readU16(registers.RelaisCount) }

// ---- configuration ----

// TemperatureMinValue reads the boiler temperature (°C) below which the heater
// warms regardless of available solar power. 0 = off.
func (s *Session) TemperatureMinValue() (uint16, error) {
	return s.readU16(registers.TemperatureMinValue)
}

func (s *Session) SetTemperatureMinValue(v uint16) status.Code {
	return s.writeWords(registers.MustLookup(registers.TemperatureMinValue), []uint16{v})
}

// TemperatureMaxValue reads the hard upper water temperature limit (°C).
func (s *Session) TemperatureMaxValue() (uint16, error) {
	return s.readU16(registers.TemperatureMaxValue)
}

func (s *Session) SetTemperatureMaxValue(v uint16) status.Code {
	return s.writeWords(registers.MustLookup(registers.TemperatureMaxValue), []uint16{v})
}

// TemperatureNominalValue reads the desired water temperature (°C).
// 0 selects the hardware potentiometer.
func (s *Session) TemperatureNominalValue() (uint16, error) {
	return s.readU16(registers.TemperatureNominalValue)
}

func (s *Session) SetTemperatureNominalValue(v uint16) status.Code {
	return s.writeWords(registers.MustLookup(registers.TemperatureNominalValue), []uint16{v})
}

// PowerNominalValue reads the desired heating power in watts.
// -1 means follow HomeTotalPower. A failed read returns -99.
func (s *Session) PowerNominalValue() (int16, error) {
	return s.readI16(registers.PowerNominalValue)
}

func (s *Session) SetPowerNominalValue(v int16) status.Code {
	return s.writeWords(registers.MustLookup(registers.PowerNominalValue), []uint16{uint16(v)})
}

// HomeTotalPower reads the household power balance in watts as last written by the meter.
// Negative values mean the home is feeding back to the grid.
func (s *Session) HomeTotalPower() (int32, error) {
	return s.readI32(registers.HomeTotalPower)
}

func (s *Session) SetHomeTotalPower(v int32) status.Code {
	w := codec.EncodeI32(v)
	return s.writeWords(registers.MustLookup(registers.HomeTotalPower), w[:])
}

// ---- operating information ----

func (s *Session) RestartCounter() (uint32, error) { return s.readU32(registers.RestartCounter) }

// ActualTemperaturePCB reads the control board temperature (°C).
func (s *Session) ActualTemperaturePCB() (int16, error) {
	return s.readI16(registers.ActualTemperaturePCB)
}

func (s *Session) TotalOperatingSeconds() (uint32, error) {
	return s.readU32(registers.TotalOperatingSeconds)
}

func (s *Session) ErrorCounter() (uint32, error) { return s.readU32(registers.ErrorCounter) }

// ActualTemperatureBoiler reads the water temperature in the boiler (°C).
func (s *Session) ActualTemperatureBoiler() (int16, error) {
	return s.readI16(registers.ActualTemperatureBoiler)
}

// ActualTemperatureExternalSensor1 reads the first optional sensor (°C).
// See registers.ClassifySensor for the special values.
func (s *Session) ActualTemperatureExternalSensor1() (int16, error) {
	return s.readI16(registers.ActualTemperatureExternalSensor1)
}

func (s *Session) ActualTemperatureExternalSensor2() (int16, error) {
	return s.readI16(registers.ActualTemperatureExternalSensor2)
}

// UserTemperatureNominal reads the potentiometer setpoint (°C).
func (s *Session) UserTemperatureNominal() (int16, error) {
	return s.readI16(registers.UserTemperatureNominal)
}

// RelayStatus reads the relay bitfield.
func (s *Session) RelayStatus() (registers.RelayStatus, error) {
	v, err := s.readU16(registers.RelaisStatus)
	return registers.RelayStatus(v), err
}
