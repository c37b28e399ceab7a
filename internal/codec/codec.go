// internal/codec/codec.go
package codec

// Word codec for the heater's register layout.
//
// Each transport word is a big-endian byte pair.
// 32-bit values span two words and arrive low word first.
// Text fields span 16 words (32 bytes), high byte of each word first.
// No IO. No state.

// TextWords is the number of transport words in a fixed-length text field.
const TextWords = 16

// TextBytes is the byte capacity of a fixed-length text field.
const TextBytes = TextWords * 2

// DecodeU16 returns the word unchanged.
func DecodeU16(w uint16) uint16 { return w }

// DecodeI16 reinterprets the word as two's-complement.
func DecodeI16(w uint16) int16 { return int16(w) }

// DecodeU32 reassembles a 32-bit value from [low, high] transport words.
func DecodeU32(words [2]uint16) uint32 {
	return uint32(words[1])<<16 | uint32(words[0])
}

// DecodeI32 is DecodeU32 reinterpreted as two's-complement.
func DecodeI32(words [2]uint16) int32 {
	return int32(DecodeU32(words))
}

// EncodeU32 is the inverse of DecodeU32.
func EncodeU32(v uint32) [2]uint16 {
	return [2]uint16{uint16(v), uint16(v >> 16)}
}

// EncodeI32 is the inverse of DecodeI32.
func EncodeI32(v int32) [2]uint16 {
	return EncodeU32(uint32(v))
}

// DecodeText32 unpacks 16 words into bytes and stops at the first zero byte.
func DecodeText32(words [TextWords]uint16) string {
	var b [TextBytes]byte
	for i, w := range words {
		b[2*i] = byte(w >> 8)
		b[2*i+1] = byte(w)
	}

	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// EncodeText32 packs s into 16 words, truncating at 32 bytes and zero-padding the rest.
func EncodeText32(s string) [TextWords]uint16 {
	var out [TextWords]uint16

	b := []byte(s)
	if len(b) > TextBytes {
		b = b[:TextBytes]
	}

	for i := 0; i < TextBytes; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}
	return out
}

// Words2 copies the first two words of a register slice into a fixed array.
// Missing words read as zero.
func Words2(regs []uint16) [2]uint16 {
	var w [2]uint16
	copy(w[:], regs)
	return w
}

// Words16 copies the first sixteen words of a register slice into a fixed array.
// Missing words read as zero.
func Words16(regs []uint16) [TextWords]uint16 {
	var w [TextWords]uint16
	copy(w[:], regs)
	return w
}
