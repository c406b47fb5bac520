// number_format.go - Unsigned integer to text conversion

package main

// Longest rendering the format engine asks for: 2^64-1 in decimal is 20
// digits, plus one slot for the terminator the C runtime kept.
const numberBufferSize = len("18446744073709551615") + 1

// numberBuffer is the per-call scratch space for numeric conversions.
type numberBuffer [numberBufferSize]byte

const (
	minRadix = 2
	maxRadix = 16
)

// AppendUint64 appends the base-radix rendering of number to dst, most
// significant digit first, lowercase a-f for digit values 10-15. Radix
// outside [2,16] yields no result: dst is returned unchanged with ok false.
func AppendUint64(dst []byte, number uint64, radix int) ([]byte, bool) {
	if radix < minRadix || radix > maxRadix {
		return dst, false
	}

	start := len(dst)
	r := uint64(radix)
	for {
		c := UMod64(number, r)
		if c < 10 {
			dst = append(dst, byte(c)+'0')
		} else {
			dst = append(dst, byte(c-10)+'a')
		}

		number = UDiv64(number, r)
		if number == 0 {
			break
		}
	}

	reverseBytes(dst[start:])
	return dst, true
}

// AppendUint32 is the narrow entry point; it forwards to AppendUint64.
func AppendUint32(dst []byte, number uint32, radix int) ([]byte, bool) {
	return AppendUint64(dst, uint64(number), radix)
}

// FormatUint returns number rendered in the given radix.
func FormatUint(number uint64, radix int) (string, bool) {
	var buf [64]byte
	out, ok := AppendUint64(buf[:0], number, radix)
	if !ok {
		return "", false
	}
	return string(out), true
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
