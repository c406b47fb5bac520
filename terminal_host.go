// terminal_host.go - Host terminal presentation of the text screen

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	ansiConsoleColor = "\033[1;33m" // CONSOLE_ATTR: yellow on black
	ansiReset        = "\033[0m"
)

// TerminalHost writes snapshots of the emulated screen to a host stream.
// On an interactive terminal wide enough for the screen the dump is framed
// and coloured like the VGA output; otherwise the lines go out plain so the
// output can be piped and compared.
type TerminalHost struct {
	out   io.Writer
	fd    int
	isTTY bool
}

// NewTerminalHost creates a host adapter writing to f.
func NewTerminalHost(f *os.File) *TerminalHost {
	fd := int(f.Fd())
	return &TerminalHost{
		out:   f,
		fd:    fd,
		isTTY: term.IsTerminal(fd),
	}
}

// NewWriterHost creates a host adapter for a non-terminal writer.
func NewWriterHost(w io.Writer) *TerminalHost {
	return &TerminalHost{out: w, fd: -1}
}

// IsTerminal reports whether the output is an interactive terminal.
func (h *TerminalHost) IsTerminal() bool {
	return h.isTTY
}

// Width returns the terminal width in columns, or 0 when unknown.
func (h *TerminalHost) Width() int {
	if !h.isTTY {
		return 0
	}
	w, _, err := term.GetSize(h.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal_host: failed to get size: %v\n", err)
		return 0
	}
	return w
}

// Dump prints the screen lines. Trailing blank rows are dropped in plain
// mode; the framed view always shows all 25 rows.
func (h *TerminalHost) Dump(lines []string) error {
	bw := bufio.NewWriter(h.out)
	if h.Width() >= CONSOLE_COLS+2 {
		writeFramed(bw, lines)
	} else {
		for _, line := range trimTrailingBlankLines(lines) {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("terminal dump: %w", err)
	}
	return nil
}

func writeFramed(w *bufio.Writer, lines []string) {
	border := strings.Repeat("─", CONSOLE_COLS)
	w.WriteString("┌" + border + "┐\n")
	for _, line := range lines {
		pad := max(CONSOLE_COLS-utf8.RuneCountInString(line), 0)
		w.WriteString("│" + ansiConsoleColor + line + strings.Repeat(" ", pad) + ansiReset + "│\n")
	}
	w.WriteString("└" + border + "┘\n")
}
