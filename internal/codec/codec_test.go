// internal/codec/codec_test.go
package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeU32_LowWordFirst(t *testing.T) {
	assert.Equal(t, uint32(0x30401502), DecodeU32([2]uint16{0x1502, 0x3040}))
}

func TestDecodeU32_OrderSensitive(t *testing.T) {
	pairs := [][2]uint16{
		{0x1502, 0x3040},
		{0x0100, 0xFF00},
		{0xABCD, 0x1234},
	}
	for _, p := range pairs {
		swapped := [2]uint16{p[1], p[0]}
		assert.NotEqual(t, DecodeU32(p), DecodeU32(swapped), "pair %04X/%04X", p[0], p[1])
	}
}

func TestU32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0xFFFF, 0x10000, 0x20140515, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF}
	for _, v := range values {
		assert.Equal(t, v, DecodeU32(EncodeU32(v)))
	}

	words := [][2]uint16{{0, 0}, {0xFFFF, 0}, {0, 0xFFFF}, {0x1502, 0x3040}}
	for _, w := range words {
		assert.Equal(t, w, EncodeU32(DecodeU32(w)))
	}
}

func TestI32RoundTrip(t *testing.T) {
	values := []int32{0, -1, -2500, 2500, -2147483648, 2147483647}
	for _, v := range values {
		assert.Equal(t, v, DecodeI32(EncodeI32(v)))
	}
	assert.Equal(t, int32(-1), DecodeI32([2]uint16{0xFFFF, 0xFFFF}))
	assert.Equal(t, [2]uint16{0xF63C, 0xFFFF}, EncodeI32(-2500))
}

func TestDecode16(t *testing.T) {
	assert.Equal(t, uint16(0x14EF), DecodeU16(0x14EF))
	assert.Equal(t, int16(-1), DecodeI16(0xFFFF))
	assert.Equal(t, int16(-32768), DecodeI16(0x8000))
	assert.Equal(t, int16(55), DecodeI16(55))
}

func TestDecodeText32_StopsAtFirstZero(t *testing.T) {
	for k := 0; k <= TextBytes; k++ {
		var b [TextBytes]byte
		for i := range b {
			b[i] = 'A'
		}
		if k < TextBytes {
			b[k] = 0
		}

		var words [TextWords]uint16
		for i := range words {
			words[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
		}

		got := DecodeText32(words)
		require.Len(t, got, k, "first zero at %d", k)
	}
}

func TestDecodeText32_Bounds(t *testing.T) {
	var zero [TextWords]uint16
	assert.Equal(t, "", DecodeText32(zero))

	var full [TextWords]uint16
	for i := range full {
		full[i] = 0x4142
	}
	assert.Equal(t, strings.Repeat("AB", 16), DecodeText32(full))
}

func TestText32RoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "E.G.O.", want: "E.G.O."},
		{in: "Smart Heater SM1000", want: "Smart Heater SM1000"},
		{in: "odd", want: "odd"},
		{in: "", want: ""},
		{in: strings.Repeat("x", 40), want: strings.Repeat("x", 32)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeText32(EncodeText32(tt.in)))
	}

	w := EncodeText32("E.G.O.")
	assert.Equal(t, uint16('E')<<8|uint16('.'), w[0])
	assert.Equal(t, uint16(0), w[3])
}

func TestWordsHelpers(t *testing.T) {
	assert.Equal(t, [2]uint16{1, 0}, Words2([]uint16{1}))
	assert.Equal(t, [2]uint16{1, 2}, Words2([]uint16{1, 2, 3}))

	w := Words16([]uint16{0x4100})
	assert.Equal(t, "A", DecodeText32(w))
}

func TestBCDDate(t *testing.T) {
	got, err := BCDDate(0x20140515)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2014, time.May, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = BCDDate(0x2014051A)
	assert.Error(t, err)

	_, err = BCDDate(0x20141315)
	assert.Error(t, err)

	_, err = BCDDate(0x20140230)
	assert.Error(t, err)
}

func TestBCDDigits(t *testing.T) {
	d, err := BCDDigits(0x30401502)
	require.NoError(t, err)
	assert.Equal(t, [8]int{3, 0, 4, 0, 1, 5, 0, 2}, d)
}
