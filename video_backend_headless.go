// video_backend_headless.go - In-memory video backend for tests and CI

package main

import "sync/atomic"

// HeadlessOutput satisfies VideoOutput without opening a window. Input
// state and the event queue are writable so tests can script them.
type HeadlessOutput struct {
	started    bool
	config     DisplayConfig
	frameCount uint64
	lastFrame  []byte
	events     []Event
	keys       map[Scancode]bool
	buttons    map[MouseButton]bool
	mouseX     int
	mouseY     int
}

func NewHeadlessOutput() (VideoOutput, error) {
	return &HeadlessOutput{
		keys:    make(map[Scancode]bool),
		buttons: make(map[MouseButton]bool),
	}, nil
}

func (h *HeadlessOutput) Start() error {
	h.started = true
	return nil
}

func (h *HeadlessOutput) Stop() error {
	h.started = false
	return nil
}

func (h *HeadlessOutput) Close() error {
	h.started = false
	return nil
}

func (h *HeadlessOutput) IsStarted() bool {
	return h.started
}

func (h *HeadlessOutput) SetDisplayConfig(config DisplayConfig) error {
	h.config = config
	return nil
}

func (h *HeadlessOutput) GetDisplayConfig() DisplayConfig {
	return h.config
}

func (h *HeadlessOutput) UpdateFrame(buffer []byte) error {
	if len(h.lastFrame) != len(buffer) {
		h.lastFrame = make([]byte, len(buffer))
	}
	copy(h.lastFrame, buffer)
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessOutput) PollEvent() (Event, bool) {
	if len(h.events) == 0 {
		return Event{}, false
	}
	ev := h.events[0]
	h.events = h.events[1:]
	return ev, true
}

func (h *HeadlessOutput) IsKeyPressed(code Scancode) bool {
	return h.keys[code]
}

func (h *HeadlessOutput) IsMouseButtonPressed(button MouseButton) bool {
	return h.buttons[button]
}

func (h *HeadlessOutput) MousePosition() (int, int) {
	return h.mouseX, h.mouseY
}

func (h *HeadlessOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

// Test hooks below: scripted input state and event injection.

func (h *HeadlessOutput) PushEvent(ev Event) {
	h.events = append(h.events, ev)
}

func (h *HeadlessOutput) SetKeyPressed(code Scancode, down bool) {
	h.keys[code] = down
}

func (h *HeadlessOutput) SetMouseButton(button MouseButton, down bool) {
	h.buttons[button] = down
}

func (h *HeadlessOutput) SetMousePos(x, y int) {
	h.mouseX = x
	h.mouseY = y
}

// LastFrame returns the most recently presented RGBA buffer.
func (h *HeadlessOutput) LastFrame() []byte {
	return h.lastFrame
}
