// machine.go - Boot console machine: bus, VGA and console wired together

package main

import "sync"

// Machine owns the emulated address space, the VGA text display and the
// console that writes to it. The console itself is single-threaded; the
// Machine mutex serialises the shell, Lua scripts and the window's key
// handler so their cursor read-modify-write sequences never interleave.
type Machine struct {
	mu sync.Mutex

	Bus     *MachineBus
	VGA     *VGAEngine
	Cursor  CursorAccessor
	Console *Console
}

// NewMachine builds a machine with the VGA mapped into the bus and the
// console cursor kept in the CRTC.
func NewMachine() *Machine {
	bus := NewMachineBus()
	vga := NewVGAEngine()

	bus.MapIO(VGA_BASE, VGA_REG_END,
		vga.HandleRead,
		vga.HandleWrite)
	bus.MapIO(VGA_TEXT_WINDOW, VGA_TEXT_WINDOW+VGA_TEXT_SIZE-1,
		vga.HandleTextRead,
		vga.HandleTextWrite)
	bus.SealMappings()

	cursor := NewCRTCCursor(bus)
	m := &Machine{
		Bus:     bus,
		VGA:     vga,
		Cursor:  cursor,
		Console: NewConsole(bus, VGA_TEXT_WINDOW, cursor),
	}
	m.Console.Clear()
	return m
}

// Do runs fn with exclusive access to the console.
func (m *Machine) Do(fn func(c *Console)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.Console)
}

func (m *Machine) PutChar(ch byte) {
	m.Do(func(c *Console) { c.PutChar(ch) })
}

func (m *Machine) PutString(s string) {
	m.Do(func(c *Console) { c.PutString(s) })
}

func (m *Machine) Printf(format string, args ...Arg) int {
	var n int
	m.Do(func(c *Console) { n = c.Printf(format, args...) })
	return n
}

func (m *Machine) Clear() {
	m.Do(func(c *Console) { c.Clear() })
}

// SetCursor moves the cursor, clamping to the visible screen.
func (m *Machine) SetCursor(row, col int) {
	row = min(max(row, 0), CONSOLE_LAST_ROW)
	col = min(max(col, 0), CONSOLE_COLS-1)
	m.mu.Lock()
	m.Cursor.SetPosition(row, col)
	m.mu.Unlock()
}

// CursorPosition returns the current cursor row and column.
func (m *Machine) CursorPosition() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Cursor.GetPosition()
}

// TextLines returns the visible screen as UTF-8 lines.
func (m *Machine) TextLines() []string {
	return m.VGA.TextLines()
}

// HandleKey feeds one byte of keyboard input to the console. Backspace
// steps the cursor back over the previous cell and blanks it.
func (m *Machine) HandleKey(b byte) {
	if b != '\b' {
		m.PutChar(b)
		return
	}
	m.Do(func(c *Console) {
		row, col := m.Cursor.GetPosition()
		switch {
		case col > 0:
			col--
		case row > 0:
			row--
			col = CONSOLE_COLS - 1
		default:
			return
		}
		c.putCell(row, col, ' ', CONSOLE_ATTR)
		m.Cursor.SetPosition(row, col)
	})
}
