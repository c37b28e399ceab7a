// internal/session/session_test.go
package session_test

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/smartheater/internal/codec"
	"github.com/tamzrod/smartheater/internal/registers"
	"github.com/tamzrod/smartheater/internal/session"
	"github.com/tamzrod/smartheater/internal/simulator"
	"github.com/tamzrod/smartheater/internal/status"
)

func newSession(t *testing.T) (*session.Session, *simulator.Device) {
	t.Helper()
	dev := simulator.NewHeater()
	return session.New(dev, registers.DefaultDeviceAddress), dev
}

func exception(code uint8) error {
	return &status.Error{Code: status.FromException(code), Err: errors.New("device exception")}
}

// ------------------------------------------------------------
// reads
// ------------------------------------------------------------

func TestReadScalars(t *testing.T) {
	s, _ := newSession(t)

	id, err := s.ManufacturerID()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x14EF), id)

	fw, err := s.FirmwareVersion()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x64), fw)

	boiler, err := s.ActualTemperatureBoiler()
	require.NoError(t, err)
	assert.Equal(t, int16(52), boiler)

	p, err := s.PowerNominalValue()
	require.NoError(t, err)
	assert.Equal(t, registers.PowerNominalAuto, p)

	secs, err := s.TotalOperatingSeconds()
	require.NoError(t, err)
	assert.Equal(t, uint32(3600), secs)

	assert.Equal(t, status.Success, s.Status(false))
}

func TestReadExternalSensorSpecialValues(t *testing.T) {
	s, _ := newSession(t)

	v1, err := s.ActualTemperatureExternalSensor1()
	require.NoError(t, err)
	assert.Equal(t, registers.SensorStateNotAttached, registers.ClassifySensor(v1))

	v2, err := s.ActualTemperatureExternalSensor2()
	require.NoError(t, err)
	assert.Equal(t, registers.SensorStateNotSupported, registers.ClassifySensor(v2))
}

func TestReadText(t *testing.T) {
	s, dev := newSession(t)

	vendor, err := s.VendorName()
	require.NoError(t, err)
	assert.Equal(t, "E.G.O.", vendor)

	full := "0123456789abcdef0123456789abcdef"
	dev.SetText(0x2024, full)
	sn, err := s.SerialNumber()
	require.NoError(t, err)
	assert.Equal(t, full, sn)
}

func TestProductionDateWordOrder(t *testing.T) {
	s, dev := newSession(t)
	dev.Set(0x2034, 0x1502, 0x3040)

	v, err := s.ProductionDate()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x30401502), v)
}

func TestProductionDateBCD(t *testing.T) {
	s, _ := newSession(t)

	v, err := s.ProductionDate()
	require.NoError(t, err)

	date, err := codec.BCDDate(v)
	require.NoError(t, err)
	assert.Equal(t, "2015-03-04", date.Format("2006-01-02"))
}

func TestRelayStatus(t *testing.T) {
	s, dev := newSession(t)
	dev.Set(0x1408, 0b101)

	st, err := s.RelayStatus()
	require.NoError(t, err)
	assert.True(t, st.On(0))
	assert.False(t, st.On(1))
	assert.True(t, st.On(2))
}

// ------------------------------------------------------------
// failures and sentinels
// ------------------------------------------------------------

func TestReadFailureReturnsSentinel(t *testing.T) {
	cases := []struct {
		name string
		read func(*session.Session) (any, error)
		want any
	}{
		{"ManufacturerId", func(s *session.Session) (any, error) { return s.ManufacturerID() }, uint16(0xFFFF)},
		{"RelaisCount", func(s *session.Session) (any, error) { return s.RelayCount() }, uint16(0xFFFF)},
		{"PowerNominalValue", func(s *session.Session) (any, error) { return s.PowerNominalValue() }, int16(-99)},
		{"ActualTemperaturePCB", func(s *session.Session) (any, error) { return s.ActualTemperaturePCB() }, int16(-99)},
		{"UserTemperatureNominal", func(s *session.Session) (any, error) { return s.UserTemperatureNominal() }, int16(-99)},
		{"ActualTemperatureBoiler", func(s *session.Session) (any, error) { return s.ActualTemperatureBoiler() }, int16(-1)},
		{"ExternalSensor1", func(s *session.Session) (any, error) { return s.ActualTemperatureExternalSensor1() }, int16(-1)},
		{"ExternalSensor2", func(s *session.Session) (any, error) { return s.ActualTemperatureExternalSensor2() }, int16(-1)},
		{"HomeTotalPower", func(s *session.Session) (any, error) { return s.HomeTotalPower() }, int32(0)},
		{"RestartCounter", func(s *session.Session) (any, error) { return s.RestartCounter() }, uint32(0)},
		{"VendorName", func(s *session.Session) (any, error) { return s.VendorName() }, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, dev := newSession(t)
			dev.FailNext(os.ErrDeadlineExceeded)

			v, err := tc.read(s)
			require.Error(t, err)
			assert.Equal(t, tc.want, v)
			assert.Equal(t, status.Timeout, s.Status(false))
		})
	}
}

func TestReadFailureErrorCarriesStatus(t *testing.T) {
	s, dev := newSession(t)
	dev.FailNext(exception(0x02))

	_, err := s.ManufacturerID()
	require.Error(t, err)
	assert.Equal(t, status.IllegalAddress, status.Classify(err))
	assert.Contains(t, err.Error(), "ManufacturerId")
}

func TestShortResponseIsUnknown(t *testing.T) {
	s, dev := newSession(t)
	dev.Set(0x2004, 'E'<<8|'.')

	tr := &shortTransport{Device: dev}
	s = session.New(tr, registers.DefaultDeviceAddress)

	v, err := s.VendorName()
	require.Error(t, err)
	assert.Equal(t, "", v)
	assert.Equal(t, status.Unknown, s.Status(false))
}

type shortTransport struct{ *simulator.Device }

func (t *shortTransport) ReadRegisters(address, count uint16) ([]uint16, error) {
	return t.Device.ReadRegisters(address, 1)
}

// ------------------------------------------------------------
// status lifecycle
// ------------------------------------------------------------

func TestStatusRetainedUntilCleared(t *testing.T) {
	s, dev := newSession(t)
	dev.FailNext(exception(0x03))

	_, _ = s.ProductID()
	assert.Equal(t, status.IllegalValue, s.Status(false))
	assert.Equal(t, status.IllegalValue, s.Status(false))

	assert.Equal(t, status.IllegalValue, s.Status(true))
	assert.Equal(t, status.Success, s.Status(false))
}

func TestSuccessOverwritesFailure(t *testing.T) {
	s, dev := newSession(t)
	dev.FailNext(errors.New("bad crc"))

	_, err := s.RelayCount()
	require.Error(t, err)
	assert.Equal(t, status.CRCError, s.Status(false))

	n, err := s.RelayCount()
	require.NoError(t, err)
	assert.Equal(t, uint16(3), n)
	assert.Equal(t, status.Success, s.Status(false))
}

func TestClearStatus(t *testing.T) {
	s, dev := newSession(t)
	dev.FailNext(errors.New("boom"))

	_, _ = s.ProductID()
	require.Equal(t, status.Unknown, s.Status(false))

	s.ClearStatus()
	assert.Equal(t, status.Success, s.Status(false))
}

// ------------------------------------------------------------
// writes
// ------------------------------------------------------------

func TestWriteScalars(t *testing.T) {
	s, dev := newSession(t)

	assert.Equal(t, status.Success, s.SetTemperatureMaxValue(75))
	w, _ := dev.Get(0x120A)
	assert.Equal(t, uint16(75), w)

	assert.Equal(t, status.Success, s.SetPowerNominalValue(-1))
	w, _ = dev.Get(0x1300)
	assert.Equal(t, uint16(0xFFFF), w)

	got, err := s.TemperatureMaxValue()
	require.NoError(t, err)
	assert.Equal(t, uint16(75), got)
}

func TestWriteHomeTotalPower(t *testing.T) {
	s, dev := newSession(t)

	require.Equal(t, status.Success, s.SetHomeTotalPower(-2500))

	calls := dev.Calls()
	last := calls[len(calls)-1]
	assert.True(t, last.Write)
	assert.Equal(t, uint16(0x1301), last.Address)
	assert.Equal(t, []uint16{0xF63C, 0xFFFF}, last.Words)

	v, err := s.HomeTotalPower()
	require.NoError(t, err)
	assert.Equal(t, int32(-2500), v)
}

func TestWriteFailureReturnsCode(t *testing.T) {
	s, dev := newSession(t)
	dev.FailNext(exception(0x03))

	assert.Equal(t, status.IllegalValue, s.SetTemperatureNominalValue(200))
	assert.Equal(t, status.IllegalValue, s.Status(false))
}

// ------------------------------------------------------------
// relay and error-log addressing
// ------------------------------------------------------------

func TestRelayMinTimesAddressing(t *testing.T) {
	s, dev := newSession(t)
	dev.Reset()

	require.Equal(t, status.Success, s.SetRelayMinOnTime(1, 90))
	require.Equal(t, status.Success, s.SetRelayMinOffTime(2, 120))

	calls := dev.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, uint16(0x1025), calls[0].Address)
	assert.Equal(t, []uint16{90}, calls[0].Words)
	assert.Equal(t, uint16(0x1046), calls[1].Address)
	assert.Equal(t, []uint16{120}, calls[1].Words)
}

func TestInvalidRelayIndexPerformsNoTransaction(t *testing.T) {
	s, dev := newSession(t)
	dev.FailNext(exception(0x02))
	_, _ = s.ProductID()
	dev.Reset()

	assert.Equal(t, status.InvalidIndex, s.SetRelayMinOnTime(3, 10))
	assert.Equal(t, status.InvalidIndex, s.SetRelayMinOffTime(-1, 10))

	_, err := s.RelayConfiguration(5)
	assert.ErrorIs(t, err, registers.ErrInvalidIndex)

	_, err = s.ErrorEntry(10)
	assert.ErrorIs(t, err, registers.ErrInvalidIndex)

	assert.Empty(t, dev.Calls())
	assert.Equal(t, status.IllegalAddress, s.Status(false))
}

func TestRelayConfiguration(t *testing.T) {
	s, dev := newSession(t)
	dev.Set(0x1020, 1000, 0x5678, 0x0001, 42, 0, 30, 45)

	cfg, err := s.RelayConfiguration(1)
	require.NoError(t, err)
	assert.Equal(t, session.RelayConfiguration{
		ActualPower:      1000,
		OperatingSeconds: 0x00015678,
		SwitchingCycles:  42,
		MinOnTime:        30,
		MinOffTime:       45,
	}, cfg)
}

func TestRelayConfigurationFailure(t *testing.T) {
	s, dev := newSession(t)
	dev.FailAt(0x1040, os.ErrDeadlineExceeded)

	cfg, err := s.RelayConfiguration(2)
	require.Error(t, err)
	assert.Equal(t, session.RelayConfiguration{}, cfg)
	assert.Equal(t, status.Timeout, s.Status(false))
}

func TestRelayOperatingTime(t *testing.T) {
	s, dev := newSession(t)
	dev.Reset()

	ot, err := s.RelayOperatingTime()
	require.NoError(t, err)
	assert.Equal(t, [3]uint32{100, 200, 300}, ot.Seconds)

	calls := dev.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, uint16(0x1409), calls[0].Address)
	assert.Equal(t, uint16(0x140B), calls[1].Address)
	assert.Equal(t, uint16(0x140D), calls[2].Address)
}

func TestRelayOperatingTimePartialFailure(t *testing.T) {
	s, dev := newSession(t)
	dev.FailAt(0x140B, exception(0x02))

	ot, err := s.RelayOperatingTime()
	require.Error(t, err)
	assert.Equal(t, [3]uint32{100, 0, 300}, ot.Seconds)
	// the third read succeeded and overwrote the status
	assert.Equal(t, status.Success, s.Status(false))
}

func TestErrorEntry(t *testing.T) {
	s, dev := newSession(t)
	dev.Set(0x1500+4*3, 0x0010, 0x0002, 1799, 0x0042)

	e, err := s.ErrorEntry(3)
	require.NoError(t, err)
	assert.Equal(t, session.ErrorEntry{OperatingHour: 0x00020010, OperatingSecond: 1799, Code: 0x42}, e)
}

func TestErrorLog(t *testing.T) {
	s, dev := newSession(t)
	dev.Set(0x1500, 7, 0, 1, 0x11)
	dev.FailAt(0x1500+4*9, errors.New("timed out"))

	entries, err := s.ErrorLog()
	require.Error(t, err)
	require.Len(t, entries, registers.ErrorSlots)
	assert.Equal(t, uint16(0x11), entries[0].Code)
	assert.Equal(t, session.ErrorEntry{}, entries[9])
	assert.Equal(t, status.Timeout, s.Status(false))
}

func TestIdentity(t *testing.T) {
	s, dev := newSession(t)
	dev.FailAt(0x2014, errors.New("crc mismatch"))

	id, err := s.Identity()
	require.Error(t, err)
	assert.Equal(t, status.CRCError, status.Classify(err))
	assert.Equal(t, uint16(0x14EF), id.ManufacturerID)
	assert.Equal(t, "E.G.O.", id.VendorName)
	assert.Equal(t, "", id.ProductName)
	assert.Equal(t, "SH-000123", id.SerialNumber)
	assert.Equal(t, uint32(0x20150304), id.ProductionDate)
}

// ------------------------------------------------------------
// generic dispatch
// ------------------------------------------------------------

func TestGenericRead(t *testing.T) {
	s, _ := newSession(t)

	v, err := s.Read(registers.ProductName)
	require.NoError(t, err)
	assert.Equal(t, "Smart Heater", v)

	v, err = s.Read(registers.ActualTemperaturePCB)
	require.NoError(t, err)
	assert.Equal(t, int16(35), v)

	v, err = s.Read(registers.HomeTotalPower)
	require.NoError(t, err)
	assert.Equal(t, int32(0), v)
}

func TestGenericReadFailureSentinel(t *testing.T) {
	s, dev := newSession(t)
	dev.FailNext(os.ErrDeadlineExceeded)

	v, err := s.Read(registers.PowerNominalValue)
	require.Error(t, err)
	assert.Equal(t, session.Sentinel(registers.PowerNominalValue), v)
}

func TestGenericWrite(t *testing.T) {
	s, dev := newSession(t)

	c, err := s.Write(registers.PowerNominalValue, -1)
	require.NoError(t, err)
	assert.Equal(t, status.Success, c)

	c, err = s.Write(registers.HomeTotalPower, 1200)
	require.NoError(t, err)
	assert.Equal(t, status.Success, c)
	lo, _ := dev.Get(0x1301)
	hi, _ := dev.Get(0x1302)
	assert.Equal(t, uint16(1200), lo)
	assert.Equal(t, uint16(0), hi)
}

func TestGenericWriteRejects(t *testing.T) {
	s, dev := newSession(t)
	dev.Reset()

	_, err := s.Write(registers.ManufacturerID, 1)
	assert.ErrorIs(t, err, session.ErrNotWritable)

	_, err = s.Write(registers.TemperatureMaxValue, 70000)
	assert.ErrorIs(t, err, session.ErrValueRange)

	_, err = s.Write(registers.PowerNominalValue, -40000)
	assert.ErrorIs(t, err, session.ErrValueRange)

	assert.Empty(t, dev.Calls())
}

func TestGenericWriteFailure(t *testing.T) {
	s, dev := newSession(t)
	dev.FailNext(exception(0x03))

	c, err := s.Write(registers.TemperatureMinValue, 10)
	require.Error(t, err)
	assert.Equal(t, status.IllegalValue, c)
}

// ------------------------------------------------------------
// concurrency
// ------------------------------------------------------------

type serialCheck struct {
	*simulator.Device
	mu     sync.Mutex
	active int
	max    int
}

func (c *serialCheck) ReadRegisters(address, count uint16) ([]uint16, error) {
	c.mu.Lock()
	c.active++
	if c.active > c.max {
		c.max = c.active
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.active--
		c.mu.Unlock()
	}()
	return c.Device.ReadRegisters(address, count)
}

func TestTransactionsAreSerialized(t *testing.T) {
	tr := &serialCheck{Device: simulator.NewHeater()}
	s := session.New(tr, 1)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.RelayOperatingTime()
			_, _ = s.ActualTemperatureBoiler()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, tr.max)
	assert.Equal(t, uint8(1), s.Address())
}
