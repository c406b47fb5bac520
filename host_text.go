// host_text.go - Moving screen text between the machine and the host

package main

import "unicode/utf8"

// pasteBytes turns host clipboard text into console input: CRLF and CR
// become LF, runes are mapped to code page 437 and unmappable runes are
// dropped. At most max bytes are returned.
func pasteBytes(raw []byte, max int) []byte {
	out := make([]byte, 0, min(len(raw), max))
	for i := 0; i < len(raw) && len(out) < max; {
		if raw[i] == '\r' {
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			out = append(out, '\n')
			i++
			continue
		}
		r, size := utf8.DecodeRune(raw[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if r < 0x80 {
			out = append(out, byte(r))
			continue
		}
		if b, ok := encodeGlyph(r); ok {
			out = append(out, b)
		}
	}
	return out
}

// trimTrailingBlankLines drops empty lines from the bottom of the screen.
func trimTrailingBlankLines(lines []string) []string {
	n := len(lines)
	for n > 0 && lines[n-1] == "" {
		n--
	}
	return lines[:n]
}
