//go:build !headless

// video_backend_ebiten.go - Ebiten window backend for the boot console

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

package main

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "video:ebiten")
}

type EbitenOutput struct {
	running     atomic.Bool
	window      *ebiten.Image
	width       int
	height      int
	format      PixelFormat
	fullscreen  bool
	scale       int
	windowedW   int
	windowedH   int
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  atomic.Uint64
	refreshRate int
	vsyncChan   chan struct{}
	done        chan struct{}
	keyHandler  func(byte)

	clipboardOnce sync.Once
	clipboardOK   bool
	showStatusBar bool

	// copySource returns the screen text for Ctrl+Shift+C.
	copySource func() []string
	// cursorSource reports the cursor for the status bar.
	cursorSource func() (int, int)
}

func NewEbitenOutput() (VideoOutput, error) {
	return &EbitenOutput{
		width:         VGA_TEXT_WIDTH,
		height:        VGA_TEXT_HEIGHT,
		format:        PixelFormatRGBA,
		scale:         1,
		windowedW:     VGA_TEXT_WIDTH,
		windowedH:     VGA_TEXT_HEIGHT,
		frameBuffer:   make([]byte, VGA_TEXT_WIDTH*VGA_TEXT_HEIGHT*4),
		refreshRate:   60,
		vsyncChan:     make(chan struct{}, 1),
		done:          make(chan struct{}),
		showStatusBar: true,
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running.Load() {
		return nil
	}
	eo.bufferMutex.Lock()
	eo.done = make(chan struct{})
	fullscreen := eo.fullscreen
	eo.bufferMutex.Unlock()
	eo.running.Store(true)
	ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	ebiten.SetWindowTitle("Boot Console (c) 2024 - 2026 Zayn Otley")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	if fullscreen {
		ebiten.SetFullscreen(true)
	}

	go func() {
		defer func() {
			eo.running.Store(false)
			eo.bufferMutex.RLock()
			done := eo.done
			eo.bufferMutex.RUnlock()
			select {
			case <-done:
			default:
				close(done)
			}
		}()
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Fprintf(os.Stderr, "Ebiten error: %v\n", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	select {
	case <-eo.vsyncChan:
	case <-eo.Done():
		return &VideoError{Operation: "start", Details: "window closed before the first frame"}
	}
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running.Store(false)
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

// Done is closed once the window has gone away.
func (eo *EbitenOutput) Done() <-chan struct{} {
	eo.bufferMutex.RLock()
	done := eo.done
	eo.bufferMutex.RUnlock()
	return done
}

func (eo *EbitenOutput) UpdateFrame(data []byte) error {
	eo.bufferMutex.Lock()
	copy(eo.frameBuffer, data)
	eo.bufferMutex.Unlock()
	return nil
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	width := config.Width
	height := config.Height
	if width <= 0 {
		width = eo.width
	}
	if height <= 0 {
		height = eo.height
	}
	if width <= 0 || height <= 0 {
		return &VideoError{
			Operation: "display config",
			Details:   fmt.Sprintf("invalid dimensions %dx%d", config.Width, config.Height),
		}
	}
	eo.width = width
	eo.height = height
	eo.format = config.PixelFormat
	eo.scale = ClampScale(config.Scale)
	newSize := eo.width * eo.height * 4

	if len(eo.frameBuffer) != newSize {
		eo.frameBuffer = make([]byte, newSize)
	}

	eo.windowedW = eo.width * eo.scale
	eo.windowedH = eo.height * eo.scale
	eo.fullscreen = config.Fullscreen
	ebiten.SetFullscreen(eo.fullscreen)
	if !eo.fullscreen {
		ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	}
	if eo.window != nil {
		eo.window.Dispose()
		eo.window = nil
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()

	return DisplayConfig{
		Width:       eo.width,
		Height:      eo.height,
		Scale:       eo.scale,
		PixelFormat: eo.format,
		RefreshRate: eo.refreshRate,
		VSync:       true,
		Fullscreen:  eo.fullscreen,
	}
}

func (eo *EbitenOutput) WaitForVSync() error {
	select {
	case <-eo.vsyncChan:
	case <-eo.Done():
	}
	return nil
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return eo.frameCount.Load()
}

func (eo *EbitenOutput) GetRefreshRate() int {
	return eo.refreshRate
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running.Load()
}

func (eo *EbitenOutput) Update() error {
	// Check if the window was closed using Ebiten's built-in detection
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	// Normal update path when window is open
	if !eo.running.Load() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.bufferMutex.Lock()
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		if !eo.fullscreen {
			ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
		}
		eo.bufferMutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.bufferMutex.Lock()
		eo.showStatusBar = !eo.showStatusBar
		eo.bufferMutex.Unlock()
	}
	eo.handleKeyboardInput()
	return nil
}

func (eo *EbitenOutput) SetKeyHandler(fn func(byte)) {
	eo.bufferMutex.Lock()
	eo.keyHandler = fn
	eo.bufferMutex.Unlock()
}

// SetCopySource sets the provider of the text copied by Ctrl+Shift+C.
func (eo *EbitenOutput) SetCopySource(fn func() []string) {
	eo.bufferMutex.Lock()
	eo.copySource = fn
	eo.bufferMutex.Unlock()
}

// SetCursorSource sets the provider of the cursor shown in the status bar.
func (eo *EbitenOutput) SetCursorSource(fn func() (int, int)) {
	eo.bufferMutex.Lock()
	eo.cursorSource = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) emitByte(b byte) {
	eo.bufferMutex.RLock()
	handler := eo.keyHandler
	eo.bufferMutex.RUnlock()
	if handler != nil {
		handler(b)
	}
}

func (eo *EbitenOutput) handleKeyboardInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		eo.handleClipboardCopy()
	}

	eo.bufferMutex.RLock()
	hasHandler := eo.keyHandler != nil
	eo.bufferMutex.RUnlock()
	if !hasHandler {
		return
	}

	// Clipboard paste: Ctrl+Shift+V
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		eo.handleClipboardPaste()
	}

	// Printable input path.
	for _, r := range ebiten.AppendInputChars(nil) {
		if b, ok := runeToInputByte(r); ok {
			eo.emitByte(b)
		}
	}

	specialKeys := []ebiten.Key{
		ebiten.KeyEnter,
		ebiten.KeyNumpadEnter,
		ebiten.KeyBackspace,
		ebiten.KeyTab,
	}
	for _, key := range specialKeys {
		if inpututil.IsKeyJustPressed(key) {
			if b, ok := translateSpecialKey(key); ok {
				eo.emitByte(b)
			}
		}
	}
}

// runeToInputByte maps typed text to the code page 437 glyph byte.
func runeToInputByte(r rune) (byte, bool) {
	if r < ' ' {
		return 0, false
	}
	if r < 0x80 {
		return byte(r), true
	}
	return encodeGlyph(r)
}

func translateSpecialKey(key ebiten.Key) (byte, bool) {
	switch key {
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return '\n', true
	case ebiten.KeyBackspace:
		return '\b', true
	case ebiten.KeyTab:
		return '\t', true
	default:
		return 0, false
	}
}

func (eo *EbitenOutput) initClipboard() bool {
	eo.clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "video: clipboard unavailable: %v\n", err)
			return
		}
		eo.clipboardOK = true
	})
	return eo.clipboardOK
}

func (eo *EbitenOutput) handleClipboardPaste() {
	if !eo.initClipboard() {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	for _, b := range pasteBytes(data, 4096) {
		eo.emitByte(b)
	}
}

func (eo *EbitenOutput) handleClipboardCopy() {
	eo.bufferMutex.RLock()
	source := eo.copySource
	eo.bufferMutex.RUnlock()
	if source == nil || !eo.initClipboard() {
		return
	}
	lines := source()
	clipboard.Write(clipboard.FmtText, []byte(strings.Join(trimTrailingBlankLines(lines), "\n")+"\n"))
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}

	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	showStatusBar := eo.showStatusBar
	cursorSource := eo.cursorSource
	eo.bufferMutex.RUnlock()
	screen.DrawImage(eo.window, nil)
	if showStatusBar {
		eo.drawStatusBar(screen, cursorSource)
	}

	eo.frameCount.Add(1)
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	return eo.width, eo.height
}

func (eo *EbitenOutput) drawStatusBar(screen *ebiten.Image, cursorSource func() (int, int)) {
	face := basicfont.Face7x13
	labelColor := color.RGBA{190, 190, 190, 255}
	legendColor := color.RGBA{160, 160, 160, 255}

	barHeight := 18
	if barHeight >= eo.height {
		return
	}
	y := eo.height - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(eo.width), float64(barHeight), color.RGBA{0, 0, 0, 180})

	status := "CURSOR --,--"
	if cursorSource != nil {
		row, col := cursorSource()
		status = fmt.Sprintf("CURSOR %02d,%02d", row, col)
	}
	text.Draw(screen, status, face, 6, y+13, labelColor)

	legend := "Ctrl+Shift+C Copy  Ctrl+Shift+V Paste  F11 Fullscreen  F12 Status Bar"
	legendW := text.BoundString(face, legend).Dx()
	legendX := max(eo.width-legendW-6, 6)
	text.Draw(screen, legend, face, legendX, y+13, legendColor)
}
