package core

// utoa converts an unsigned integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}

const hexDigits = "0123456789ABCDEF"

// hex32 formats a 32-bit value as 0x-prefixed, zero-padded hex
func hex32(n uint32) string {
	buf := [10]byte{'0', 'x'}
	for i := 9; i >= 2; i-- {
		buf[i] = hexDigits[n&0xF]
		n >>= 4
	}
	return string(buf[:])
}
