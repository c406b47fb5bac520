// cursor.go - Cursor accessors for the boot console

package main

// RegisterBus is the 32-bit register view used to program the CRTC.
type RegisterBus interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, value uint32)
}

// CRTCCursor keeps the console cursor in the VGA CRTC cursor location
// registers, programmed through the index/data pair the way a PC driver
// uses ports 0x3D4/0x3D5.
type CRTCCursor struct {
	bus RegisterBus
}

// NewCRTCCursor returns an accessor that talks to the CRTC over bus.
func NewCRTCCursor(bus RegisterBus) *CRTCCursor {
	return &CRTCCursor{bus: bus}
}

// GetPosition reads the cursor location and splits it into row and column.
func (c *CRTCCursor) GetPosition() (int, int) {
	c.bus.Write32(VGA_CRTC_INDEX, VGA_CRTC_CURSOR_HI)
	hi := c.bus.Read32(VGA_CRTC_DATA) & 0xFF
	c.bus.Write32(VGA_CRTC_INDEX, VGA_CRTC_CURSOR_LO)
	lo := c.bus.Read32(VGA_CRTC_DATA) & 0xFF

	offset := int(hi<<8 | lo)
	return offset / VGA_TEXT_COLS, offset % VGA_TEXT_COLS
}

// SetPosition stores row*80+column into the cursor location registers.
func (c *CRTCCursor) SetPosition(row, column int) {
	offset := uint32(row*VGA_TEXT_COLS+column) & 0xFFFF

	c.bus.Write32(VGA_CRTC_INDEX, VGA_CRTC_CURSOR_LO)
	c.bus.Write32(VGA_CRTC_DATA, offset&0xFF)
	c.bus.Write32(VGA_CRTC_INDEX, VGA_CRTC_CURSOR_HI)
	c.bus.Write32(VGA_CRTC_DATA, offset>>8)
}

// MemoryCursor is a plain in-memory cursor for headless use and tests.
// It counts accesses so callers can check how often the console touches it.
type MemoryCursor struct {
	Row    int
	Column int

	Gets int
	Sets int
}

func (m *MemoryCursor) GetPosition() (int, int) {
	m.Gets++
	return m.Row, m.Column
}

func (m *MemoryCursor) SetPosition(row, column int) {
	m.Sets++
	m.Row = row
	m.Column = column
}
