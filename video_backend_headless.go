//go:build headless

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

func init() {
	compiledFeatures = append(compiledFeatures, "video:headless")
}

type HeadlessVideoOutput struct {
	mu          sync.Mutex
	started     atomic.Bool
	config      DisplayConfig
	frameCount  uint64
	refreshRate int
	lastFrame   []byte
}

func NewEbitenOutput() (VideoOutput, error) {
	return &HeadlessVideoOutput{refreshRate: 60}, nil
}

func (h *HeadlessVideoOutput) Start() error {
	h.started.Store(true)
	return nil
}

func (h *HeadlessVideoOutput) Stop() error {
	h.started.Store(false)
	return nil
}

func (h *HeadlessVideoOutput) Close() error {
	h.started.Store(false)
	return nil
}

func (h *HeadlessVideoOutput) IsStarted() bool {
	return h.started.Load()
}

func (h *HeadlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	h.mu.Lock()
	config.Scale = ClampScale(config.Scale)
	h.config = config
	h.mu.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) GetDisplayConfig() DisplayConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

func (h *HeadlessVideoOutput) UpdateFrame(buffer []byte) error {
	h.mu.Lock()
	h.lastFrame = append(h.lastFrame[:0], buffer...)
	h.mu.Unlock()
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

// LastFrame returns a copy of the most recent frame.
func (h *HeadlessVideoOutput) LastFrame() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]byte(nil), h.lastFrame...)
}

func (h *HeadlessVideoOutput) WaitForVSync() error {
	time.Sleep(time.Second / time.Duration(h.GetRefreshRate()))
	return nil
}

func (h *HeadlessVideoOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessVideoOutput) GetRefreshRate() int {
	if h.refreshRate == 0 {
		return 60
	}
	return h.refreshRate
}
