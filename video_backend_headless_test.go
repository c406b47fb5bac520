//go:build headless

package main

import (
	"testing"
	"time"
)

func TestHeadlessOutput_SetDisplayConfig_StoresFullscreen(t *testing.T) {
	out := &HeadlessVideoOutput{}
	cfg := DisplayConfig{
		Width:      VGA_TEXT_WIDTH,
		Height:     VGA_TEXT_HEIGHT,
		Scale:      2,
		Fullscreen: true,
	}
	if err := out.SetDisplayConfig(cfg); err != nil {
		t.Fatalf("SetDisplayConfig returned error: %v", err)
	}
	got := out.GetDisplayConfig()
	if !got.Fullscreen {
		t.Fatal("expected Fullscreen=true")
	}
}

func TestHeadlessOutput_DisplayConfig_ClampsScale(t *testing.T) {
	out := &HeadlessVideoOutput{}
	if err := out.SetDisplayConfig(DisplayConfig{Scale: 9}); err != nil {
		t.Fatalf("SetDisplayConfig returned error: %v", err)
	}
	if got := out.GetDisplayConfig().Scale; got != MAX_DISPLAY_SCALE {
		t.Fatalf("expected Scale=%d, got %d", MAX_DISPLAY_SCALE, got)
	}
}

func TestHeadlessOutput_PresentFrames(t *testing.T) {
	m := NewMachine()
	m.PutString("frame")

	out, err := NewVideoOutput(VIDEO_BACKEND_EBITEN)
	if err != nil {
		t.Fatalf("NewVideoOutput: %v", err)
	}
	if err := out.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan struct{})
	errCh := make(chan error, 1)
	go func() { errCh <- PresentFrames(out, m.VGA, done) }()

	deadline := time.Now().Add(2 * time.Second)
	for out.GetFrameCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	close(done)
	if err := <-errCh; err != nil {
		t.Fatalf("PresentFrames: %v", err)
	}
	if out.GetFrameCount() < 2 {
		t.Fatalf("expected at least 2 frames, got %d", out.GetFrameCount())
	}

	frame := out.(*HeadlessVideoOutput).LastFrame()
	if len(frame) != VGA_TEXT_WIDTH*VGA_TEXT_HEIGHT*4 {
		t.Fatalf("frame size: got %d, want %d", len(frame), VGA_TEXT_WIDTH*VGA_TEXT_HEIGHT*4)
	}
}
