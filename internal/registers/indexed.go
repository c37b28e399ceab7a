// internal/registers/indexed.go
package registers

import "fmt"

// ---- RELAY BLOCKS ----

// RelayCount is the number of relays on the heater (0: 500W, 1: 1000W, 2: 2000W).
const RelayCount = 3

// relayBase holds the first register of each relay configuration block.
var relayBase = [RelayCount]uint16{0x1000, 0x1020, 0x1040}

// Offsets inside a relay configuration block.
const (
	RelayOffsetActualPower      = 0
	RelayOffsetOperatingSeconds = 1 // u32, 2 words
	RelayOffsetSwitchingCycles  = 3 // u32, 2 words
	RelayOffsetMinOnTime        = 5
	RelayOffsetMinOffTime       = 6

	// RelayConfigurationWords is the full block read in one transaction.
	RelayConfigurationWords = 7
)

// relayOperatingTime holds the u32 per-relay operating-seconds counters.
var relayOperatingTime = [RelayCount]uint16{0x1409, 0x140B, 0x140D}

// RelayOperatingTimeWords is the width of one operating-time counter.
const RelayOperatingTimeWords = 2

// ---- ERROR LOG ----

// ErrorSlots is the number of entries in the device error log.
const ErrorSlots = 10

// errorDataBase is the first register of error slot 0; slots are errorDataStride apart.
const (
	errorDataBase   uint16 = 0x1500
	errorDataStride uint16 = 4
)

// Offsets inside an error slot.
const (
	ErrorOffsetOperatingHour   = 0 // u32, 2 words
	ErrorOffsetOperatingSecond = 2
	ErrorOffsetCode            = 3

	// ErrorDataWords is the full slot read in one transaction.
	ErrorDataWords = 4
)

func checkRelay(r int) error {
	if r < 0 || r >= RelayCount {
		return fmt.Errorf("%w: relay %d (want 0..%d)", ErrInvalidIndex, r, RelayCount-1)
	}
	return nil
}

// RelayConfiguration returns the descriptor of relay r's configuration block.
func RelayConfiguration(r int) (Descriptor, error) {
	if err := checkRelay(r); err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Name:    fmt.Sprintf("RelaisConfiguration[%d]", r),
		Address: relayBase[r],
		Words:   RelayConfigurationWords,
		Kind:    KindComposite,
		Access:  Read,
	}, nil
}

// RelayMinOnTime returns the write-only minimum-on-time register of relay r.
func RelayMinOnTime(r int) (Descriptor, error) {
	if err := checkRelay(r); err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Name:    fmt.Sprintf("RelaisMinOnTime[%d]", r),
		Address: relayBase[r] + RelayOffsetMinOnTime,
		Words:   1,
		Kind:    KindU16,
		Access:  Write,
	}, nil
}

// RelayMinOffTime returns the write-only minimum-off-time register of relay r.
func RelayMinOffTime(r int) (Descriptor, error) {
	if err := checkRelay(r); err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Name:    fmt.Sprintf("RelaisMinOffTime[%d]", r),
		Address: relayBase[r] + RelayOffsetMinOffTime,
		Words:   1,
		Kind:    KindU16,
		Access:  Write,
	}, nil
}

// RelayOperatingTime returns the operating-seconds counter of relay r.
func RelayOperatingTime(r int) (Descriptor, error) {
	if err := checkRelay(r); err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Name:    fmt.Sprintf("RelaisOperatingTime[%d]", r),
		Address: relayOperatingTime[r],
		Words:   RelayOperatingTimeWords,
		Kind:    KindU32,
		Access:  Read,
	}, nil
}

// ErrorData returns the descriptor of error-log slot i.
func ErrorData(i int) (Descriptor, error) {
	if i < 0 || i >= ErrorSlots {
		return Descriptor{}, fmt.Errorf("%w: error slot %d (want 0..%d)", ErrInvalidIndex, i, ErrorSlots-1)
	}
	return Descriptor{
		Name:    fmt.Sprintf("ErrorData[%d]", i),
		Address: errorDataBase + uint16(i)*errorDataStride,
		Words:   ErrorDataWords,
		Kind:    KindComposite,
		Access:  Read,
	}, nil
}
