// internal/session/sentinel.go
package session

import "github.com/tamzrod/smartheater/internal/registers"

// Failed reads return a fixed sentinel per attribute together with the error.

// SentinelU16 is returned by failed unsigned 16-bit reads.
const SentinelU16 uint16 = 0xFFFF

// SentinelU32 is returned by failed unsigned 32-bit reads.
const SentinelU32 uint32 = 0

// SentinelI32 is returned by failed signed 32-bit reads.
const SentinelI32 int32 = 0

// SentinelText is returned by failed text reads.
const SentinelText = ""

var sentinelI16 = map[registers.Attribute]int16{
	registers.PowerNominalValue:                -99,
	registers.ActualTemperaturePCB:             -99,
	registers.UserTemperatureNominal:           -99,
	registers.ActualTemperatureBoiler:          -1,
	registers.ActualTemperatureExternalSensor1: -1,
	registers.ActualTemperatureExternalSensor2: -1,
}

// SentinelI16 returns the failure value of a signed 16-bit attribute.
func SentinelI16(a registers.Attribute) int16 {
	if v, ok := sentinelI16[a]; ok {
		return v
	}
	return -1
}

// Sentinel returns the failure value of any fixed-address attribute.
func Sentinel(a registers.Attribute) any {
	d, ok := registers.Lookup(a)
	if !ok {
		return nil
	}
	switch d.Kind {
	case registers.KindU16:
		return SentinelU16
	case registers.KindI16:
		return SentinelI16(a)
	case registers.KindU32, registers.KindBCDU32:
		return SentinelU32
	case registers.KindI32:
		return SentinelI32
	case registers.KindText32:
		return SentinelText
	default:
		return nil
	}
}
