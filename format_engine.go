// format_engine.go - printf-style format string engine for the boot console

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
format_engine.go - Format String Engine

Grammar, one conversion per '%':

	%%                    literal '%'
	%[0][w[w]][l]conv     conv is s, u or x

- '0' selects zero padding, otherwise space padding
- w is a one or two digit minimum field width (first digit 1-9)
- 'l' selects the 64-bit argument, otherwise the 32-bit one
- 's' prints text verbatim; width and padding are parsed but not applied
- 'u' and 'x' print unsigned decimal / lowercase hex, left padded to width

An unknown conversion letter is skipped without consuming an argument, so
later conversions pick up the argument it would have used. A format that
ends inside a specifier stops the whole call.

Literal characters and padding go out one at a time through PutChar;
rendered numbers and text arguments go out through PutString. Nothing is
buffered beyond the per-conversion number scratch.
*/

package main

const (
	ZERO_PAD_FLAG  = 1 << 0
	LONG_TYPE_FLAG = 1 << 1
)

// CharSink receives formatted output. Console implements it.
type CharSink interface {
	PutChar(c byte)
	PutString(s string)
}

// ArgKind tags the value carried by an Arg.
type ArgKind uint8

const (
	ArgText ArgKind = iota
	ArgNarrow
	ArgWide
)

// Arg is one positional argument for Printf.
type Arg struct {
	Kind  ArgKind
	Text  string
	Value uint64
}

// TextArg wraps a string for %s.
func TextArg(s string) Arg { return Arg{Kind: ArgText, Text: s} }

// NarrowArg wraps a 32-bit value for %u / %x.
func NarrowArg(v uint32) Arg { return Arg{Kind: ArgNarrow, Value: uint64(v)} }

// WideArg wraps a 64-bit value for %lu / %lx.
func WideArg(v uint64) Arg { return Arg{Kind: ArgWide, Value: v} }

func (a Arg) narrow() uint32 {
	if a.Kind == ArgText {
		return 0
	}
	return uint32(a.Value)
}

func (a Arg) wide() uint64 {
	if a.Kind == ArgText {
		return 0
	}
	return a.Value
}

func (a Arg) text() string {
	if a.Kind != ArgText {
		return ""
	}
	return a.Text
}

// formatSpec describes a single conversion while it is being parsed.
type formatSpec struct {
	flags uint8
	width int
	conv  byte
}

func (fs formatSpec) zeroPad() bool { return fs.flags&ZERO_PAD_FLAG != 0 }
func (fs formatSpec) wide() bool    { return fs.flags&LONG_TYPE_FLAG != 0 }

// argCursor hands out arguments in order.
type argCursor struct {
	args []Arg
	next int
}

func (ac *argCursor) take() (Arg, bool) {
	if ac.next >= len(ac.args) {
		return Arg{}, false
	}
	a := ac.args[ac.next]
	ac.next++
	return a, true
}

// Printf writes format to out, expanding conversions from args. It returns
// the number of arguments consumed.
func Printf(out CharSink, format string, args ...Arg) int {
	ac := argCursor{args: args}
	i := 0

	for i < len(format) {
		c := format[i]
		if c != '%' {
			out.PutChar(c)
			i++
			continue
		}

		i++
		if i >= len(format) {
			break
		}
		c = format[i]

		if c == '%' {
			out.PutChar(c)
			i++
			continue
		}

		var spec formatSpec

		if c == '0' {
			spec.flags |= ZERO_PAD_FLAG
			i++
			if i >= len(format) {
				break
			}
			c = format[i]
		}

		if c >= '1' && c <= '9' {
			spec.width = int(c - '0')
			i++
			if i >= len(format) {
				break
			}
			c = format[i]

			if c >= '0' && c <= '9' {
				spec.width = spec.width*10 + int(c-'0')
				i++
				if i >= len(format) {
					break
				}
				c = format[i]
			}
		}

		if c == 'l' {
			spec.flags |= LONG_TYPE_FLAG
			i++
			if i >= len(format) {
				break
			}
			c = format[i]
		}

		i++
		spec.conv = c
		emitConversion(out, spec, &ac)
	}

	return ac.next
}

// emitConversion renders one parsed specifier. Unknown conversions consume
// nothing and print nothing.
func emitConversion(out CharSink, spec formatSpec, ac *argCursor) {
	var nbuf numberBuffer
	var digits []byte

	switch spec.conv {
	case 's':
		a, ok := ac.take()
		if !ok {
			return
		}
		out.PutString(a.text())
		return
	case 'u', 'x':
		a, ok := ac.take()
		if !ok {
			return
		}
		radix := 10
		if spec.conv == 'x' {
			radix = 16
		}
		if spec.wide() {
			digits, _ = AppendUint64(nbuf[:0], a.wide(), radix)
		} else {
			digits, _ = AppendUint32(nbuf[:0], a.narrow(), radix)
		}
	default:
		return
	}

	if spec.width > len(digits) {
		pad := byte(' ')
		if spec.zeroPad() {
			pad = '0'
		}
		for j := len(digits); j < spec.width; j++ {
			out.PutChar(pad)
		}
	}
	out.PutString(string(digits))
}
