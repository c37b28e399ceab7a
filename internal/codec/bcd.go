// internal/codec/bcd.go
package codec

import (
	"fmt"
	"time"
)

// BCDDigits unpacks a BCD-encoded value into its eight decimal digits, most significant first.
func BCDDigits(v uint32) ([8]int, error) {
	var d [8]int
	for i := 0; i < 8; i++ {
		n := int((v >> (28 - 4*uint(i))) & 0xF)
		if n > 9 {
			return d, fmt.Errorf("codec: bcd nibble %d of 0x%08X is 0x%X", i, v, n)
		}
		d[i] = n
	}
	return d, nil
}

// BCDDate interprets a BCD value laid out as 0xYYYYMMDD.
func BCDDate(v uint32) (time.Time, error) {
	d, err := BCDDigits(v)
	if err != nil {
		return time.Time{}, err
	}

	year := d[0]*1000 + d[1]*100 + d[2]*10 + d[3]
	month := d[4]*10 + d[5]
	day := d[6]*10 + d[7]

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("codec: bcd date 0x%08X: month %d out of range", v, month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("codec: bcd date 0x%08X: day %d out of range", v, day)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("codec: bcd date 0x%08X: day %d not in month %d", v, day, month)
	}
	return t, nil
}
