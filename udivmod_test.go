// udivmod_test.go - Tests for the wide unsigned divider

package main

import (
	"math/rand/v2"
	"testing"
)

func TestUDiv64_Table(t *testing.T) {
	tests := []struct {
		name     string
		dividend uint64
		divisor  uint64
		quot     uint64
		rem      uint64
	}{
		{"smaller dividend", 5, 7, 0, 5},
		{"zero dividend", 0, 3, 0, 0},
		{"narrow", 1000, 7, 142, 6},
		{"narrow max", 0xFFFFFFFF, 10, 429496729, 5},
		{"power of two 2^10", 0x1_0000_0400, 1024, 0x400001, 0},
		{"power of two 2^30", 0x4_0000_0000, 1 << 30, 16, 0},
		{"power of two with remainder", 0x1_2345_6789, 1 << 16, 0x12345, 0x6789},
		{"power of two 2^62", 0xFFFFFFFFFFFFFFFF, 1 << 62, 3, 1<<62 - 1},
		{"wide by one", 0xDEADBEEFCAFEBABE, 1, 0xDEADBEEFCAFEBABE, 0},
		{"wide by ten", 18446744073709551615, 10, 1844674407370955161, 5},
		{"wide by sixteen", 0xDEADBEEF, 16, 0xDEADBEE, 0xF},
		{"wide by narrow max", 0xFFFFFFFF_FFFFFFFF, 0xFFFFFFFF, 0x1_0000_0001, 0},
		{"wide by three", 1 << 40, 3, (1 << 40) / 3, (1 << 40) % 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UDiv64(tt.dividend, tt.divisor); got != tt.quot {
				t.Errorf("UDiv64(%#x, %#x): got %#x, want %#x", tt.dividend, tt.divisor, got, tt.quot)
			}
			if got := UMod64(tt.dividend, tt.divisor); got != tt.rem {
				t.Errorf("UMod64(%#x, %#x): got %#x, want %#x", tt.dividend, tt.divisor, got, tt.rem)
			}
		})
	}
}

func TestUDiv64_UnsupportedDivisorReturnsZero(t *testing.T) {
	divisors := []uint64{
		0x1_0000_0001,
		0x3_0000_0000,
		0xFFFFFFFF_FFFFFFFF,
		1 << 63, // beyond the power-of-two probe
	}
	for _, d := range divisors {
		if got := UDiv64(0xFFFFFFFF_FFFFFFFF, d); got != 0 {
			t.Errorf("UDiv64(max, %#x): got %#x, want 0", d, got)
		}
		if got := UMod64(0xFFFFFFFF_FFFFFFFF, d); got != 0 {
			t.Errorf("UMod64(max, %#x): got %#x, want 0", d, got)
		}
		if _, _, ok := udivmod64(0xFFFFFFFF_FFFFFFFF, d); ok {
			t.Errorf("udivmod64(max, %#x): reported supported", d)
		}
	}
}

func TestUDiv64_UnsupportedDivisorAboveDividend(t *testing.T) {
	// dividend < divisor is answered before the domain check
	if got := UMod64(5, 0x3_0000_0000); got != 5 {
		t.Errorf("UMod64(5, 0x300000000): got %d, want 5", got)
	}
}

func TestUDiv64_DivideByZero(t *testing.T) {
	if got := UDiv64(42, 0); got != 0 {
		t.Errorf("UDiv64(42, 0): got %d, want 0", got)
	}
	if got := UMod64(42, 0); got != 0 {
		t.Errorf("UMod64(42, 0): got %d, want 0", got)
	}
}

func TestUDiv64_DivisionIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	check := func(u, v uint64) {
		t.Helper()
		q := UDiv64(u, v)
		r := UMod64(u, v)
		if q*v+r != u || r >= v {
			t.Fatalf("identity broken for %#x / %#x: q=%#x r=%#x", u, v, q, r)
		}
		if q != u/v || r != u%v {
			t.Fatalf("%#x / %#x: got (%#x, %#x), want (%#x, %#x)", u, v, q, r, u/v, u%v)
		}
	}

	for range 5000 {
		u := rng.Uint64()
		v := uint64(rng.Uint32())
		if v == 0 {
			v = 1
		}
		check(u, v)
		check(u, 1<<rng.UintN(udivMaxPow2Shift+1))
		check(u>>rng.UintN(64), v)
	}
}

func TestUDivNarrow_LargeRemainder(t *testing.T) {
	// Partial remainders here carry into bit 32 on most steps.
	q, r := udivNarrow(0xFFFFFFFF_FFFFFFFE, 0xFFFFFFFF)
	if q != 0x1_0000_0000 || r != 0xFFFFFFFE {
		t.Errorf("udivNarrow: got (%#x, %#x), want (0x100000000, 0xfffffffe)", q, r)
	}
}

func BenchmarkUDiv64_Narrow(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = UDiv64(0xDEADBEEFCAFEBABE, 10)
	}
}
