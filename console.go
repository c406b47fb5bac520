// console.go - 80x25 memory-mapped text console with scrolling

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
console.go - Boot Console

The console writes glyph/attribute pairs straight into the text window of
the display (0xB8000 on a PC) and keeps the cursor in the display's CRTC
registers rather than in its own state. Each call reads the cursor through
the CursorAccessor, steps the character state machine and writes the cursor
back, so a Console value holds no state between calls.

Character state machine:
- '\n'        column 0, next row
- '\t'        column += 4, one wrap to the next row if past column 80
- >= ' '      store (glyph, 0x0E) at the cursor, advance, wrap at column 80
- other < ' ' dropped
After every character, a row past 24 scrolls the screen up by one line.

A Console is not safe for concurrent use: the cursor read-modify-write and
the cell stores race if two callers interleave. Machine serialises access
when more than one goroutine drives the same console.
*/

package main

const (
	CONSOLE_COLS     = VGA_TEXT_COLS
	CONSOLE_ROWS     = VGA_TEXT_ROWS
	CONSOLE_LAST_ROW = CONSOLE_ROWS - 1
	CONSOLE_ATTR     = 0x0E // yellow on black
	CONSOLE_TAB      = 4

	consoleCellBytes = 2
	consoleRowBytes  = CONSOLE_COLS * consoleCellBytes
)

// CursorAccessor reads and writes the hardware cursor.
type CursorAccessor interface {
	GetPosition() (row, column int)
	SetPosition(row, column int)
}

// TextMemory is the byte-addressed view of the display memory.
type TextMemory interface {
	Read8(addr uint32) uint8
	Write8(addr uint32, value uint8)
}

// Console renders characters into a text framebuffer.
type Console struct {
	mem    TextMemory
	base   uint32
	cursor CursorAccessor
}

// NewConsole returns a console over the framebuffer at base in mem.
func NewConsole(mem TextMemory, base uint32, cursor CursorAccessor) *Console {
	return &Console{
		mem:    mem,
		base:   base,
		cursor: cursor,
	}
}

// PutChar writes one character, reading and writing the cursor once.
func (c *Console) PutChar(ch byte) {
	row, col := c.cursor.GetPosition()
	row, col = c.step(row, col, ch)
	c.cursor.SetPosition(row, col)
}

// PutString writes s, reading the cursor on entry and writing it back on exit.
func (c *Console) PutString(s string) {
	row, col := c.cursor.GetPosition()
	for i := 0; i < len(s); i++ {
		row, col = c.step(row, col, s[i])
	}
	c.cursor.SetPosition(row, col)
}

// Write implements io.Writer with PutString semantics.
func (c *Console) Write(p []byte) (int, error) {
	row, col := c.cursor.GetPosition()
	for _, ch := range p {
		row, col = c.step(row, col, ch)
	}
	c.cursor.SetPosition(row, col)
	return len(p), nil
}

// Printf formats onto the console. See format_engine.go for the grammar.
func (c *Console) Printf(format string, args ...Arg) int {
	return Printf(c, format, args...)
}

// Clear blanks every row and homes the cursor.
func (c *Console) Clear() {
	for row := 0; row < CONSOLE_ROWS; row++ {
		c.blankRow(row)
	}
	c.cursor.SetPosition(0, 0)
}

// step advances the state machine by one character.
func (c *Console) step(row, col int, ch byte) (int, int) {
	switch {
	case ch == '\n':
		col = 0
		row++
	case ch == '\t':
		col += CONSOLE_TAB
		if col > CONSOLE_COLS {
			col -= CONSOLE_COLS
			row++
		}
	case ch >= ' ':
		c.putCell(row, col, ch, CONSOLE_ATTR)
		col++
		if col == CONSOLE_COLS {
			col = 0
			row++
		}
	}

	if row > CONSOLE_LAST_ROW {
		row = c.scrollUp()
	}
	return row, col
}

func (c *Console) cellAddr(row, col int) uint32 {
	return c.base + uint32((row*CONSOLE_COLS+col)*consoleCellBytes)
}

func (c *Console) putCell(row, col int, glyph, attr byte) {
	addr := c.cellAddr(row, col)
	c.mem.Write8(addr, glyph)
	c.mem.Write8(addr+1, attr)
}

// scrollUp moves rows 1..24 to 0..23, blanks row 24 and returns the new row.
func (c *Console) scrollUp() int {
	src := c.base + consoleRowBytes
	n := uint32(consoleRowBytes * CONSOLE_LAST_ROW)
	for i := uint32(0); i < n; i++ {
		c.mem.Write8(c.base+i, c.mem.Read8(src+i))
	}
	c.blankRow(CONSOLE_LAST_ROW)
	return CONSOLE_LAST_ROW
}

func (c *Console) blankRow(row int) {
	for col := 0; col < CONSOLE_COLS; col++ {
		c.putCell(row, col, ' ', CONSOLE_ATTR)
	}
}
