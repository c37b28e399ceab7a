// internal/registers/catalog.go
package registers

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Register layout of the E.G.O. Smart Heater.
// These values define the wire contract and MUST NOT be configurable.

// DefaultDeviceAddress is the factory Modbus unit address of the heater.
const DefaultDeviceAddress uint8 = 247

// MaxDeviceAddress is the highest valid RTU unit address.
const MaxDeviceAddress uint8 = 247

// ErrInvalidIndex is returned for relay or error-slot indices outside the table.
var ErrInvalidIndex = errors.New("registers: invalid index")

// Kind selects how the words of a register are decoded.
type Kind uint8

const (
	KindU16 Kind = iota
	KindI16
	KindU32
	KindI32
	KindBCDU32
	KindText32
	KindComposite
)

var kindNames = [...]string{
	KindU16:       "u16",
	KindI16:       "i16",
	KindU32:       "u32",
	KindI32:       "i32",
	KindBCDU32:    "bcd-u32",
	KindText32:    "text32",
	KindComposite: "composite",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Words returns the word count implied by a scalar kind.
// Composites have no implied width and return 0.
func (k Kind) Words() int {
	switch k {
	case KindU16, KindI16:
		return 1
	case KindU32, KindI32, KindBCDU32:
		return 2
	case KindText32:
		return 16
	default:
		return 0
	}
}

// Access describes which transactions an attribute supports.
type Access uint8

const (
	Read Access = 1 << iota
	Write

	ReadWrite = Read | Write
)

func (a Access) String() string {
	switch a {
	case Read:
		return "r"
	case Write:
		return "w"
	case ReadWrite:
		return "rw"
	default:
		return "-"
	}
}

// Readable reports whether the attribute can be read.
func (a Access) Readable() bool { return a&Read != 0 }

// Writable reports whether the attribute can be written.
func (a Access) Writable() bool { return a&Write != 0 }

// Descriptor is the immutable geometry of one logical attribute.
type Descriptor struct {
	Name    string
	Address uint16
	Words   int
	Kind    Kind
	Access  Access
}

// Attribute identifies a scalar or text attribute with a fixed address.
// Relay- and slot-indexed attributes are addressed through the functions below.
type Attribute uint8

const (
	ManufacturerID Attribute = iota
	ProductID
	ProductVersion
	FirmwareVersion
	VendorName
	ProductName
	SerialNumber
	ProductionDate
	RelaisCount

	TemperatureMinValue
	TemperatureMaxValue
	TemperatureNominalValue
	PowerNominalValue
	HomeTotalPower

	RestartCounter
	ActualTemperaturePCB
	TotalOperatingSeconds
	ErrorCounter
	ActualTemperatureBoiler
	ActualTemperatureExternalSensor1
	ActualTemperatureExternalSensor2
	UserTemperatureNominal
	RelaisStatus

	numAttributes
)

var catalog = [numAttributes]Descriptor{
	// ---- basic device information ----
	ManufacturerID:  {Name: "ManufacturerId", Address: 0x2000, Words: 1, Kind: KindU16, Access: Read},
	ProductID:       {Name: "ProductId", Address: 0x2001, Words: 1, Kind: KindU16, Access: Read},
	ProductVersion:  {Name: "ProductVersion", Address: 0x2002, Words: 1, Kind: KindU16, Access: Read},
	FirmwareVersion: {Name: "FirmwareVersion", Address: 0x2003, Words: 1, Kind: KindU16, Access: Read},
	VendorName:      {Name: "VendorName", Address: 0x2004, Words: 16, Kind: KindText32, Access: Read},
	ProductName:     {Name: "ProductName", Address: 0x2014, Words: 16, Kind: KindText32, Access: Read},
	SerialNumber:    {Name: "SerialNumber", Address: 0x2024, Words: 16, Kind: KindText32, Access: Read},
	ProductionDate:  {Name: "ProductionDate", Address: 0x2034, Words: 2, Kind: KindBCDU32, Access: Read},
	RelaisCount:     {Name: "RelaisCount", Address: 0x1204, Words: 1, Kind: KindU16, Access: Read},

	// ---- configuration ----
	TemperatureMinValue:     {Name: "TemperatureMinValue", Address: 0x1209, Words: 1, Kind: KindU16, Access: ReadWrite},
	TemperatureMaxValue:     {Name: "TemperatureMaxValue", Address: 0x120A, Words: 1, Kind: KindU16, Access: ReadWrite},
	TemperatureNominalValue: {Name: "TemperatureNominalValue", Address: 0x120B, Words: 1, Kind: KindU16, Access: ReadWrite},
	PowerNominalValue:       {Name: "PowerNominalValue", Address: 0x1300, Words: 1, Kind: KindI16, Access: ReadWrite},
	HomeTotalPower:          {Name: "HomeTotalPower", Address: 0x1301, Words: 2, Kind: KindI32, Access: ReadWrite},

	// ---- operating information ----
	RestartCounter:                   {Name: "RestartCounter", Address: 0x1202, Words: 2, Kind: KindU32, Access: Read},
	ActualTemperaturePCB:             {Name: "ActualTemperaturePCB", Address: 0x1205, Words: 1, Kind: KindI16, Access: Read},
	TotalOperatingSeconds:            {Name: "TotalOperatingSeconds", Address: 0x1400, Words: 2, Kind: KindU32, Access: Read},
	ErrorCounter:                     {Name: "ErrorCounter", Address: 0x1402, Words: 2, Kind: KindU32, Access: Read},
	ActualTemperatureBoiler:          {Name: "ActualTemperatureBoiler", Address: 0x1404, Words: 1, Kind: KindI16, Access: Read},
	ActualTemperatureExternalSensor1: {Name: "ActualTemperatureExternalSensor1", Address: 0x1405, Words: 1, Kind: KindI16, Access: Read},
	ActualTemperatureExternalSensor2: {Name: "ActualTemperatureExternalSensor2", Address: 0x1406, Words: 1, Kind: KindI16, Access: Read},
	UserTemperatureNominal:           {Name: "UserTemperatureNominal", Address: 0x1407, Words: 1, Kind: KindI16, Access: Read},
	RelaisStatus:                     {Name: "RelaisStatus", Address: 0x1408, Words: 1, Kind: KindU16, Access: Read},
}

var byName = func() map[string]Attribute {
	m := make(map[string]Attribute, numAttributes)
	for i := range catalog {
		m[strings.ToLower(catalog[i].Name)] = Attribute(i)
	}
	return m
}()

// Lookup returns the descriptor of a fixed-address attribute.
// Unknown attributes return ok=false.
func Lookup(a Attribute) (Descriptor, bool) {
	if a >= numAttributes {
		return Descriptor{}, false
	}
	return catalog[a], true
}

// MustLookup is Lookup for attributes known at compile time.
func MustLookup(a Attribute) Descriptor {
	d, ok := Lookup(a)
	if !ok {
		panic(fmt.Sprintf("registers: unknown attribute %d", a))
	}
	return d
}

// Parse resolves an attribute by its catalog name, case-insensitively.
func Parse(name string) (Attribute, error) {
	a, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("registers: unknown attribute %q", name)
	}
	return a, nil
}

func (a Attribute) String() string {
	if d, ok := Lookup(a); ok {
		return d.Name
	}
	return fmt.Sprintf("attribute(%d)", uint8(a))
}

// All returns every fixed-address descriptor, ordered by address.
func All() []Descriptor {
	out := make([]Descriptor, 0, numAttributes)
	out = append(out, catalog[:]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// Attributes returns every fixed-address attribute in declaration order.
func Attributes() []Attribute {
	out := make([]Attribute, numAttributes)
	for i := range out {
		out[i] = Attribute(i)
	}
	return out
}
