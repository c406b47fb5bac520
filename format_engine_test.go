// format_engine_test.go - Tests for the printf-style format engine

package main

import (
	"strings"
	"testing"
)

// recordingSink captures output and the call pattern that produced it.
type recordingSink struct {
	sb    strings.Builder
	calls []string
}

func (r *recordingSink) PutChar(c byte) {
	r.sb.WriteByte(c)
	r.calls = append(r.calls, "c:"+string(c))
}

func (r *recordingSink) PutString(s string) {
	r.sb.WriteString(s)
	r.calls = append(r.calls, "s:"+s)
}

func (r *recordingSink) String() string { return r.sb.String() }

func sprintf(format string, args ...Arg) (string, int) {
	var r recordingSink
	n := Printf(&r, format, args...)
	return r.String(), n
}

// =============================================================================
// Conversions
// =============================================================================

func TestPrintf_Conversions(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []Arg
		want   string
	}{
		{"zero padded decimal", "%010u", []Arg{NarrowArg(42)}, "0000000042"},
		{"space padded decimal", "%5u|", []Arg{NarrowArg(42)}, "   42|"},
		{"width narrower than digits", "%2u", []Arg{NarrowArg(12345)}, "12345"},
		{"wide hex", "%lx", []Arg{WideArg(0xDEADBEEF)}, "deadbeef"},
		{"wide hex padded", "%016lx", []Arg{WideArg(0x100000000)}, "0000000100000000"},
		{"wide decimal max", "%lu", []Arg{WideArg(18446744073709551615)}, "18446744073709551615"},
		{"narrow hex", "%08x", []Arg{NarrowArg(0xbeef)}, "0000beef"},
		{"narrow of wide keeps low bits", "%x", []Arg{WideArg(0x1_2345_6789)}, "23456789"},
		{"text", "%s", []Arg{TextArg("hi")}, "hi"},
		{"text ignores width", "%10s|", []Arg{TextArg("hi")}, "hi|"},
		{"text ignores zero width", "%05s|", []Arg{TextArg("hi")}, "hi|"},
		{"percent", "100%%", nil, "100%"},
		{"literal only", "plain text\n", nil, "plain text\n"},
		{"two digit width max", "%99u", []Arg{NarrowArg(1)}, strings.Repeat(" ", 98) + "1"},
		{"third width digit is the conversion", "%123u", []Arg{NarrowArg(7)}, "u"},
		{"zero", "%u %x %lu", []Arg{NarrowArg(0), NarrowArg(0), WideArg(0)}, "0 0 0"},
		{"mixed", "%s=%04x (%lu)\n", []Arg{TextArg("ax"), NarrowArg(0x1f), WideArg(1 << 40)}, "ax=001f (1099511627776)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := sprintf(tt.format, tt.args...)
			if got != tt.want {
				t.Errorf("Printf(%q): got %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestPrintf_UnknownConversionConsumesNothing(t *testing.T) {
	got, n := sprintf("[%z][%u]", NarrowArg(42))
	if got != "[][42]" {
		t.Errorf("got %q, want %q", got, "[][42]")
	}
	if n != 1 {
		t.Errorf("consumed: got %d, want 1", n)
	}
}

func TestPrintf_UnknownConversionWithFlags(t *testing.T) {
	got, n := sprintf("%08lq%u", NarrowArg(5))
	if got != "5" || n != 1 {
		t.Errorf("got %q/%d, want %q/1", got, n, "5")
	}
}

func TestPrintf_TruncatedSpecifierStops(t *testing.T) {
	formats := []string{"ab%", "ab%0", "ab%1", "ab%12", "ab%l", "ab%08l"}
	for _, f := range formats {
		got, n := sprintf(f, NarrowArg(1))
		if got != "ab" || n != 0 {
			t.Errorf("Printf(%q): got %q/%d, want %q/0", f, got, n, "ab")
		}
	}
}

func TestPrintf_ExhaustedArgsEmitNothing(t *testing.T) {
	got, n := sprintf("<%5u><%s>", NarrowArg(3))
	if got != "<    3><>" {
		t.Errorf("got %q, want %q", got, "<    3><>")
	}
	if n != 1 {
		t.Errorf("consumed: got %d, want 1", n)
	}
}

func TestPrintf_KindMismatch(t *testing.T) {
	got, _ := sprintf("%u|%s|", TextArg("x"), NarrowArg(9))
	if got != "0||" {
		t.Errorf("got %q, want %q", got, "0||")
	}
}

// =============================================================================
// Output granularity
// =============================================================================

func TestPrintf_CallGranularity(t *testing.T) {
	var r recordingSink
	Printf(&r, "a%04u%s%%", NarrowArg(7), TextArg("xy"))

	want := []string{"c:a", "c:0", "c:0", "c:0", "s:7", "s:xy", "c:%"}
	if strings.Join(r.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls: got %v, want %v", r.calls, want)
	}
}

func TestPrintf_ConsoleCursorAccess(t *testing.T) {
	c, cur := newTestConsole()
	c.Printf("%s%u", TextArg("ab"), NarrowArg(12))

	// One PutString per conversion, each reading and writing the cursor once.
	if cur.Gets != 2 || cur.Sets != 2 {
		t.Errorf("cursor accesses: got %d gets/%d sets, want 2/2", cur.Gets, cur.Sets)
	}
	if cur.Row != 0 || cur.Column != 4 {
		t.Errorf("cursor: got (%d,%d), want (0,4)", cur.Row, cur.Column)
	}
}
