// internal/registers/values.go
package registers

// ---- EXTERNAL SENSOR SPECIAL VALUES ----

const (
	// SensorNotSupported means no sensor can be attached to this heater model.
	SensorNotSupported uint16 = 0x8000
	// SensorNotAttached means no sensor is attached.
	SensorNotAttached uint16 = 0x8001
	// SensorMalfunction means a sensor is present but malfunctioning.
	SensorMalfunction uint16 = 0x8002
)

// SensorState classifies a raw external-sensor reading.
type SensorState uint8

const (
	SensorOK SensorState = iota
	SensorStateNotSupported
	SensorStateNotAttached
	SensorStateMalfunction
)

func (s SensorState) String() string {
	switch s {
	case SensorOK:
		return "ok"
	case SensorStateNotSupported:
		return "not supported"
	case SensorStateNotAttached:
		return "not attached"
	case SensorStateMalfunction:
		return "malfunction"
	default:
		return "unknown"
	}
}

// ClassifySensor maps an external-sensor temperature to its state.
func ClassifySensor(v int16) SensorState {
	switch uint16(v) {
	case SensorNotSupported:
		return SensorStateNotSupported
	case SensorNotAttached:
		return SensorStateNotAttached
	case SensorMalfunction:
		return SensorStateMalfunction
	default:
		return SensorOK
	}
}

// ---- RELAY STATUS BITFIELD ----

// RelayStatus is the bitfield read from RelaisStatus; bit r set means relay r is on.
type RelayStatus uint16

// On reports whether relay r is switched on. Out-of-range relays report false.
func (s RelayStatus) On(r int) bool {
	if r < 0 || r >= RelayCount {
		return false
	}
	return s&(1<<uint(r)) != 0
}

// ---- SPECIAL SETPOINTS ----

// PowerNominalAuto tells the heater to follow HomeTotalPower and use as much power as possible.
const PowerNominalAuto int16 = -1

// TemperatureNominalPotentiometer selects the hardware potentiometer as the setpoint source.
const TemperatureNominalPotentiometer uint16 = 0
