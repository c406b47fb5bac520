// video_vga.go - VGA text-mode display for the boot console machine

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
video_vga.go - IBM VGA Text Mode Emulation

This module implements the part of an IBM VGA that a boot console needs:
- Mode 03h: 80x25 character cells, 2 bytes per cell (glyph, attribute)
- Text window mapped at 0xB8000
- CRTC register file with index/data access, cursor location at 0x0E/0x0F
- 16-entry attribute palette programmable through the DAC
- RGBA rendering of the text screen for the display backends

Signal Flow:
1. The console writes glyph/attribute pairs into the text window
2. The console moves the cursor through CRTC 0x0E/0x0F
3. A backend collects frames via GetFrame() and presents them

Glyph bytes are code page 437. Frames are rasterised with the basicfont
7x13 face centred in 8x16 cells; TextLines decodes the same bytes to UTF-8
for terminal dumps and the clipboard.
*/

package main

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"
)

// VGAEngine implements the VGA text mode as a standalone device.
type VGAEngine struct {
	mutex sync.RWMutex

	mode    uint8
	control uint8
	status  uint8

	// DAC write state machine
	dacWriteIndex uint8
	dacWritePhase uint8 // 0=R, 1=G, 2=B

	// Palette (16 entries x 3 components, 6-bit values)
	palette [VGA_PALETTE_SIZE * 3]uint8

	crtcIndex uint8
	crtcRegs  [VGA_CRTC_REG_COUNT]uint8

	textBuffer [VGA_TEXT_SIZE]uint8

	vsync bool
	frame *image.RGBA
}

// NewVGAEngine returns an enabled VGA in text mode with a blank screen.
func NewVGAEngine() *VGAEngine {
	vga := &VGAEngine{
		mode:    VGA_MODE_TEXT,
		control: VGA_CTRL_ENABLE,
		frame:   image.NewRGBA(image.Rect(0, 0, VGA_TEXT_WIDTH, VGA_TEXT_HEIGHT)),
	}

	// Underline cursor on the last two scan lines
	vga.crtcRegs[VGA_CRTC_CURSOR_ST] = VGA_CELL_HEIGHT - 2
	vga.crtcRegs[VGA_CRTC_CURSOR_END] = VGA_CELL_HEIGHT - 1

	vga.initDefaultPalette()
	return vga
}

// initDefaultPalette loads the standard 16 text colors.
func (v *VGAEngine) initDefaultPalette() {
	standardColors := [VGA_PALETTE_SIZE][3]uint8{
		{0, 0, 0},    // 0: Black
		{0, 0, 42},   // 1: Blue
		{0, 42, 0},   // 2: Green
		{0, 42, 42},  // 3: Cyan
		{42, 0, 0},   // 4: Red
		{42, 0, 42},  // 5: Magenta
		{42, 21, 0},  // 6: Brown
		{42, 42, 42}, // 7: Light Gray
		{21, 21, 21}, // 8: Dark Gray
		{21, 21, 63}, // 9: Light Blue
		{21, 63, 21}, // 10: Light Green
		{21, 63, 63}, // 11: Light Cyan
		{63, 21, 21}, // 12: Light Red
		{63, 21, 63}, // 13: Light Magenta
		{63, 63, 21}, // 14: Yellow
		{63, 63, 63}, // 15: White
	}

	for i, c := range standardColors {
		v.palette[i*3+0] = c[0]
		v.palette[i*3+1] = c[1]
		v.palette[i*3+2] = c[2]
	}
}

// HandleRead handles register reads
func (v *VGAEngine) HandleRead(addr uint32) uint32 {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	switch addr {
	case VGA_MODE:
		return uint32(v.mode)
	case VGA_STATUS:
		return uint32(v.status)
	case VGA_CTRL:
		return uint32(v.control)
	case VGA_CRTC_INDEX:
		return uint32(v.crtcIndex)
	case VGA_CRTC_DATA:
		if v.crtcIndex < VGA_CRTC_REG_COUNT {
			return uint32(v.crtcRegs[v.crtcIndex])
		}
		return 0
	case VGA_CRTC_STARTHI:
		return uint32(v.crtcRegs[VGA_CRTC_START_HI])
	case VGA_CRTC_STARTLO:
		return uint32(v.crtcRegs[VGA_CRTC_START_LO])
	case VGA_CRTC_CURSORHI:
		return uint32(v.crtcRegs[VGA_CRTC_CURSOR_HI])
	case VGA_CRTC_CURSORLO:
		return uint32(v.crtcRegs[VGA_CRTC_CURSOR_LO])
	case VGA_DAC_WINDEX:
		return uint32(v.dacWriteIndex)
	}
	return 0
}

// HandleWrite handles register writes
func (v *VGAEngine) HandleWrite(addr uint32, value uint32) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	switch addr {
	case VGA_MODE:
		// Only text mode exists; other modes are latched but render as text.
		v.mode = uint8(value)
	case VGA_STATUS:
		// Status is read-only
	case VGA_CTRL:
		v.control = uint8(value)
	case VGA_CRTC_INDEX:
		v.crtcIndex = uint8(value)
	case VGA_CRTC_DATA:
		if v.crtcIndex < VGA_CRTC_REG_COUNT {
			v.crtcRegs[v.crtcIndex] = uint8(value)
		}
	case VGA_CRTC_STARTHI:
		v.crtcRegs[VGA_CRTC_START_HI] = uint8(value)
	case VGA_CRTC_STARTLO:
		v.crtcRegs[VGA_CRTC_START_LO] = uint8(value)
	case VGA_CRTC_CURSORHI:
		v.crtcRegs[VGA_CRTC_CURSOR_HI] = uint8(value)
	case VGA_CRTC_CURSORLO:
		v.crtcRegs[VGA_CRTC_CURSOR_LO] = uint8(value)
	case VGA_DAC_WINDEX:
		v.dacWriteIndex = uint8(value)
		v.dacWritePhase = 0
	case VGA_DAC_DATA:
		v.writeDACData(uint8(value))
	}
}

// writeDACData writes a component to the DAC palette
func (v *VGAEngine) writeDACData(value uint8) {
	value &= 0x3F

	idx := int(v.dacWriteIndex)*3 + int(v.dacWritePhase)
	if idx < len(v.palette) {
		v.palette[idx] = value
	}

	v.dacWritePhase++
	if v.dacWritePhase >= 3 {
		v.dacWritePhase = 0
		v.dacWriteIndex++
	}
}

// HandleTextRead handles reads from the text window
func (v *VGAEngine) HandleTextRead(addr uint32) uint32 {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	offset := addr - VGA_TEXT_WINDOW
	if offset < VGA_TEXT_SIZE {
		return uint32(v.textBuffer[offset])
	}
	return 0
}

// HandleTextWrite handles writes to the text window
func (v *VGAEngine) HandleTextWrite(addr uint32, value uint32) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	offset := addr - VGA_TEXT_WINDOW
	if offset < VGA_TEXT_SIZE {
		v.textBuffer[offset] = uint8(value)
	}
}

// Cell returns the glyph and attribute stored at row, col.
func (v *VGAEngine) Cell(row, col int) (uint8, uint8) {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	off := v.startAddressInternal()*2 + uint32((row*VGA_TEXT_COLS+col)*2)
	if off+1 >= VGA_TEXT_SIZE {
		return 0, 0
	}
	return v.textBuffer[off], v.textBuffer[off+1]
}

// GetStartAddress returns the display start address (in cells) from CRTC
func (v *VGAEngine) GetStartAddress() uint32 {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return v.startAddressInternal()
}

func (v *VGAEngine) startAddressInternal() uint32 {
	return uint32(v.crtcRegs[VGA_CRTC_START_HI])<<8 | uint32(v.crtcRegs[VGA_CRTC_START_LO])
}

// GetCursorOffset returns the raw CRTC cursor location in cells.
func (v *VGAEngine) GetCursorOffset() uint16 {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return v.cursorOffsetInternal()
}

func (v *VGAEngine) cursorOffsetInternal() uint16 {
	return uint16(v.crtcRegs[VGA_CRTC_CURSOR_HI])<<8 | uint16(v.crtcRegs[VGA_CRTC_CURSOR_LO])
}

// GetCursorPosition returns cursor row and column
func (v *VGAEngine) GetCursorPosition() (int, int) {
	offset := v.GetCursorOffset()
	return int(offset / VGA_TEXT_COLS), int(offset % VGA_TEXT_COLS)
}

// CursorVisible reports whether the CRTC cursor-disable bit is clear.
func (v *VGAEngine) CursorVisible() bool {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return v.crtcRegs[VGA_CRTC_CURSOR_ST]&VGA_CRTC_CURSOR_DISABLE == 0
}

// GetPaletteEntry returns RGB values for a palette entry (6-bit values)
func (v *VGAEngine) GetPaletteEntry(index uint8) (uint8, uint8, uint8) {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	idx := int(index&0x0F) * 3
	return v.palette[idx], v.palette[idx+1], v.palette[idx+2]
}

// Expand6BitTo8Bit converts a 6-bit VGA value to 8-bit
func Expand6BitTo8Bit(val uint8) uint8 {
	return (val << 2) | (val >> 4)
}

func (v *VGAEngine) colorInternal(index uint8) color.RGBA {
	idx := int(index&0x0F) * 3
	return color.RGBA{
		R: Expand6BitTo8Bit(v.palette[idx]),
		G: Expand6BitTo8Bit(v.palette[idx+1]),
		B: Expand6BitTo8Bit(v.palette[idx+2]),
		A: 255,
	}
}

// glyphRune maps a code page 437 glyph byte to the rune drawn for it.
func glyphRune(glyph uint8) rune {
	if glyph == 0 {
		return ' '
	}
	return charmap.CodePage437.DecodeByte(glyph)
}

// encodeGlyph maps a rune to its code page 437 glyph byte.
func encodeGlyph(r rune) (byte, bool) {
	return charmap.CodePage437.EncodeRune(r)
}

// TextLines decodes the visible screen into 25 UTF-8 lines with trailing
// blanks removed.
func (v *VGAEngine) TextLines() []string {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	start := v.startAddressInternal() * 2
	lines := make([]string, VGA_TEXT_ROWS)
	var sb strings.Builder
	for row := 0; row < VGA_TEXT_ROWS; row++ {
		sb.Reset()
		for col := 0; col < VGA_TEXT_COLS; col++ {
			off := start + uint32((row*VGA_TEXT_COLS+col)*2)
			if off >= VGA_TEXT_SIZE {
				break
			}
			sb.WriteRune(glyphRune(v.textBuffer[off]))
		}
		lines[row] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

// RenderFrame rasterises the text screen into RGBA pixels.
func (v *VGAEngine) RenderFrame() []uint8 {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	face := basicfont.Face7x13
	start := v.startAddressInternal() * 2
	cursor := int(v.cursorOffsetInternal())
	cursorOn := v.crtcRegs[VGA_CRTC_CURSOR_ST]&VGA_CRTC_CURSOR_DISABLE == 0
	cursorFirst := int(v.crtcRegs[VGA_CRTC_CURSOR_ST] & 0x1F)
	cursorLast := int(v.crtcRegs[VGA_CRTC_CURSOR_END] & 0x1F)

	for row := 0; row < VGA_TEXT_ROWS; row++ {
		for col := 0; col < VGA_TEXT_COLS; col++ {
			off := start + uint32((row*VGA_TEXT_COLS+col)*2)
			var char, attr uint8
			if off+1 < VGA_TEXT_SIZE {
				char = v.textBuffer[off]
				attr = v.textBuffer[off+1]
			}

			fg := v.colorInternal(attr & 0x0F)
			bg := v.colorInternal((attr >> 4) & 0x0F)

			x0 := col * VGA_CELL_WIDTH
			y0 := row * VGA_CELL_HEIGHT
			cell := image.Rect(x0, y0, x0+VGA_CELL_WIDTH, y0+VGA_CELL_HEIGHT)
			fillRect(v.frame, cell, bg)

			if r := glyphRune(char); r != ' ' {
				d := font.Drawer{
					Dst:  v.frame,
					Src:  image.NewUniform(fg),
					Face: face,
					Dot:  fixed.P(x0, y0+face.Ascent+2),
				}
				d.DrawString(string(r))
			}

			if cursorOn && row*VGA_TEXT_COLS+col == cursor {
				for y := cursorFirst; y <= cursorLast && y < VGA_CELL_HEIGHT; y++ {
					fillRect(v.frame, image.Rect(x0, y0+y, x0+VGA_CELL_WIDTH, y0+y+1), fg)
				}
			}
		}
	}

	out := make([]uint8, len(v.frame.Pix))
	copy(out, v.frame.Pix)
	return out
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
			i += 4
		}
	}
}

// -----------------------------------------------------------------------------
// VideoSource Interface Implementation
// -----------------------------------------------------------------------------

// GetFrame returns the current rendered frame, or nil while disabled.
func (v *VGAEngine) GetFrame() []byte {
	if !v.IsEnabled() {
		return nil
	}
	return v.RenderFrame()
}

// IsEnabled returns whether the VGA output is enabled
func (v *VGAEngine) IsEnabled() bool {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return v.control&VGA_CTRL_ENABLE != 0
}

// GetDimensions returns frame dimensions in pixels
func (v *VGAEngine) GetDimensions() (int, int) {
	return VGA_TEXT_WIDTH, VGA_TEXT_HEIGHT
}

// SignalVSync toggles the vsync status bits once per presented frame.
func (v *VGAEngine) SignalVSync() {
	v.mutex.Lock()
	v.vsync = !v.vsync
	if v.vsync {
		v.status |= VGA_STATUS_VSYNC | VGA_STATUS_RETRACE
	} else {
		v.status &^= VGA_STATUS_VSYNC | VGA_STATUS_RETRACE
	}
	v.mutex.Unlock()
}
