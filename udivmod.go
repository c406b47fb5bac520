// udivmod.go - 64-bit unsigned divide/modulo built from 32-bit arithmetic

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

/*
udivmod.go - Wide Unsigned Division

The console runtime is written for machines whose native divide is only
32 bits wide. Every 64-bit division and modulo in the runtime goes through
UDiv64/UMod64 instead of the Go operators so the narrow-machine behaviour is
explicit and testable on the host.

Supported domain:
- dividend < divisor                  -> quotient 0, remainder dividend
- dividend and divisor both 32-bit    -> native 32-bit divide
- divisor an exact power of two       -> shift / mask
- divisor fits 32 bits                -> shift-subtract long division
- anything else                       -> unsupported, both results are 0

Division by zero is undefined. Callers never divide by zero; the routines
return 0 instead of faulting.
*/

package main

const (
	udivNarrowMax = 0xFFFFFFFF

	// Highest exponent probed when testing for a power-of-two divisor.
	udivMaxPow2Shift = 62
)

// UDiv64 returns dividend / divisor.
func UDiv64(dividend, divisor uint64) uint64 {
	q, _, _ := udivmod64(dividend, divisor)
	return q
}

// UMod64 returns dividend % divisor. For unsupported divisors the remainder
// is left at its initial value of 0.
func UMod64(dividend, divisor uint64) uint64 {
	_, r, _ := udivmod64(dividend, divisor)
	return r
}

// udivmod64 computes quotient and remainder together. ok is false when the
// divisor falls outside the supported domain.
func udivmod64(dividend, divisor uint64) (quotient, remainder uint64, ok bool) {
	if divisor == 0 {
		return 0, 0, false
	}
	if dividend < divisor {
		return 0, dividend, true
	}

	if dividend <= udivNarrowMax && divisor <= udivNarrowMax {
		n, d := uint32(dividend), uint32(divisor)
		return uint64(n / d), uint64(n % d), true
	}

	if shift, isPow2 := pow2Shift(divisor); isPow2 {
		return dividend >> shift, dividend & (divisor - 1), true
	}

	if divisor <= udivNarrowMax {
		q, r := udivNarrow(dividend, uint32(divisor))
		return q, uint64(r), true
	}

	// Not a power of two and wider than 32 bits: unwilling to compute.
	return 0, 0, false
}

// pow2Shift finds the smallest i in [1,62] with 1<<i >= divisor and reports
// whether 1<<i is exactly the divisor.
func pow2Shift(divisor uint64) (uint, bool) {
	var i uint
	var pwr2 uint64
	for i = 1; i <= udivMaxPow2Shift; i++ {
		pwr2 = 1 << i
		if pwr2 >= divisor {
			break
		}
	}
	return i, pwr2 == divisor
}

// udivNarrow is restoring binary long division of a 64-bit dividend by a
// 32-bit divisor. The partial remainder never exceeds 33 bits, so each step
// needs nothing wider than a 32-bit compare and subtract plus a carry bit.
func udivNarrow(dividend uint64, divisor uint32) (uint64, uint32) {
	var quotient uint64
	var rem uint32

	for bit := 63; bit >= 0; bit-- {
		carry := rem >> 31
		rem = rem<<1 | uint32(dividend>>uint(bit))&1
		quotient <<= 1
		if carry != 0 || rem >= divisor {
			rem -= divisor
			quotient |= 1
		}
	}
	return quotient, rem
}
