// internal/status/constants.go
package status

// Transaction status codes.
// Values follow the Modbus exception numbering for device-reported failures
// and the 0xE0 range for link failures. They MUST NOT be renumbered.

// Code is the outcome of one register transaction.
type Code uint8

// Success means the transaction completed and the response was accepted.
const Success Code = 0x00

// IllegalAddress means the device rejected the register address (exception 0x02).
const IllegalAddress Code = 0x02

// IllegalValue means the device rejected the written value (exception 0x03).
const IllegalValue Code = 0x03

// Timeout means no valid response arrived within the transport timeout.
const Timeout Code = 0xE2

// CRCError means a response arrived with a bad checksum.
const CRCError Code = 0xE3

// InvalidIndex means a relay or error-slot index was outside the register table.
// No transaction is performed for it.
const InvalidIndex Code = 0xF0

// Unknown covers every other failure.
const Unknown Code = 0xFF

var names = map[Code]string{
	Success:        "success",
	IllegalAddress: "illegal-address",
	IllegalValue:   "illegal-value",
	Timeout:        "transport-timeout",
	CRCError:       "transport-crc-error",
	InvalidIndex:   "invalid-index",
	Unknown:        "unknown",
}

func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "unknown"
}

// OK reports whether the code is Success.
func (c Code) OK() bool { return c == Success }

// MarshalText renders the code by name.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
