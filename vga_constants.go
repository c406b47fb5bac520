// vga_constants.go - VGA text-mode register addresses and constants

package main

// VGA register block
const (
	VGA_BASE    = 0xF1000
	VGA_REG_END = 0xF13FF

	VGA_MODE   = 0xF1000 // Mode select (only 0x03 text is implemented)
	VGA_STATUS = 0xF1004 // Status (bit 0=vsync, bit 3=retrace)
	VGA_CTRL   = 0xF1008 // Control (bit 0=enable)

	// CRTC registers (0x3D4/0x3D5 equivalent)
	VGA_CRTC_INDEX    = 0xF1020 // CRTC index
	VGA_CRTC_DATA     = 0xF1024 // CRTC data
	VGA_CRTC_STARTHI  = 0xF1028 // Start address high
	VGA_CRTC_STARTLO  = 0xF102C // Start address low
	VGA_CRTC_CURSORHI = 0xF1030 // Cursor location high (direct)
	VGA_CRTC_CURSORLO = 0xF1034 // Cursor location low (direct)

	// DAC/Palette registers (0x3C8/0x3C9 equivalent)
	VGA_DAC_WINDEX = 0xF1058 // Write index
	VGA_DAC_DATA   = 0xF105C // DAC data (R,G,B sequence)

	// Text mode buffer
	VGA_TEXT_WINDOW = 0xB8000
	VGA_TEXT_SIZE   = 0x8000 // 32KB, of which the first 4000 bytes are visible
)

const VGA_MODE_TEXT = 0x03 // 80x25 text, 16 colors

// Status bits
const (
	VGA_STATUS_VSYNC   = 1 << 0
	VGA_STATUS_RETRACE = 1 << 3
)

const VGA_CTRL_ENABLE = 1 << 0

// CRTC register indices
const (
	VGA_CRTC_CURSOR_ST  = 0x0A // Cursor start scan line (bit 5 = cursor off)
	VGA_CRTC_CURSOR_END = 0x0B // Cursor end scan line
	VGA_CRTC_START_HI   = 0x0C
	VGA_CRTC_START_LO   = 0x0D
	VGA_CRTC_CURSOR_HI  = 0x0E // Cursor location high
	VGA_CRTC_CURSOR_LO  = 0x0F // Cursor location low
	VGA_CRTC_REG_COUNT  = 25

	VGA_CRTC_CURSOR_DISABLE = 1 << 5
)

// Dimensions
const (
	VGA_TEXT_COLS   = 80
	VGA_TEXT_ROWS   = 25
	VGA_CELL_WIDTH  = 8
	VGA_CELL_HEIGHT = 16

	VGA_TEXT_WIDTH  = VGA_TEXT_COLS * VGA_CELL_WIDTH   // 640
	VGA_TEXT_HEIGHT = VGA_TEXT_ROWS * VGA_CELL_HEIGHT // 400

	VGA_TEXT_VISIBLE_BYTES = VGA_TEXT_COLS * VGA_TEXT_ROWS * 2
)

const (
	VGA_PALETTE_SIZE = 16 // text mode uses the 16 attribute colors
)
