package woff2

import "fmt"

// appendUIntBase128 appends v in the variable length UIntBase128
// encoding: big-endian groups of 7 bits, high bit set on all but the
// last byte, no leading zero groups.
func appendUIntBase128(b []byte, v uint32) []byte {
	var tmp [5]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			break
		}
	}
	for j := i; j < len(tmp)-1; j++ {
		tmp[j] |= 0x80
	}
	return append(b, tmp[i:]...)
}

// readUIntBase128 decodes a UIntBase128 value from the start of data and
// returns the value and the number of bytes consumed.
func readUIntBase128(data []byte) (uint32, int, error) {
	var acc uint32
	for i := 0; i < 5; i++ {
		if i >= len(data) {
			return 0, 0, ErrTruncated
		}
		c := data[i]
		if i == 0 && c == 0x80 {
			return 0, 0, fmt.Errorf("woff2: UIntBase128 with leading zeros")
		}
		if acc&0xfe000000 != 0 {
			return 0, 0, fmt.Errorf("woff2: UIntBase128 overflows 32 bits")
		}
		acc = acc<<7 | uint32(c&0x7f)
		if c&0x80 == 0 {
			return acc, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("woff2: UIntBase128 longer than 5 bytes")
}
